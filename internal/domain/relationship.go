package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrRelationshipExists   = errors.New("coach-athlete relationship already exists")
	ErrRelationshipNotFound = errors.New("coach-athlete relationship not found")
)

// CoachAthleteRelationship links an athlete to a coach. Created when an
// athlete submits the coach's code.
type CoachAthleteRelationship struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	CoachID   string    `json:"coach_id" bson:"coach_id"`
	AthleteID string    `json:"athlete_id" bson:"athlete_id"`
	CoachCode string    `json:"coach_code,omitempty" bson:"coach_code,omitempty"` // code used at link time
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type RelationshipRepository interface {
	Create(ctx context.Context, rel *CoachAthleteRelationship) error
	GetByCoach(ctx context.Context, coachID string) ([]*CoachAthleteRelationship, error)
	GetByAthlete(ctx context.Context, athleteID string) ([]*CoachAthleteRelationship, error)
	Exists(ctx context.Context, coachID, athleteID string) (bool, error)
}
