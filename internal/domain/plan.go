package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrPlanNotFound    = errors.New("training plan not found")
	ErrSessionNotFound = errors.New("training session not found")
)

type PlanStatus string

const (
	PlanDraft    PlanStatus = "draft"
	PlanActive   PlanStatus = "active"
	PlanArchived PlanStatus = "archived"
)

// TrainingPlan is a block of prescribed training a coach assigns to an
// athlete (or an athlete writes for themselves).
type TrainingPlan struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	CoachID     string     `json:"coach_id,omitempty" bson:"coach_id,omitempty"`
	AthleteID   string     `json:"athlete_id" bson:"athlete_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	StartDate   string     `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate     string     `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Status      PlanStatus `json:"status" bson:"status"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// TrainingSession is one scheduled session within a plan.
type TrainingSession struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	PlanID          string    `json:"plan_id" bson:"plan_id"`
	Title           string    `json:"title" bson:"title"`
	Date            string    `json:"date,omitempty" bson:"date,omitempty"`
	Completed       bool      `json:"completed" bson:"completed"`
	CompletionNotes string    `json:"completion_notes,omitempty" bson:"completion_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// SessionExercise is a prescribed exercise within a training session.
type SessionExercise struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	SessionID  string    `json:"session_id" bson:"session_id"`
	ExerciseID string    `json:"exercise_id,omitempty" bson:"exercise_id,omitempty"`
	Name       string    `json:"name" bson:"name"` // denormalized for display
	Sets       int       `json:"sets,omitempty" bson:"sets,omitempty"`
	Reps       int       `json:"reps,omitempty" bson:"reps,omitempty"`
	Distance   float64   `json:"distance,omitempty" bson:"distance,omitempty"` // meters
	Order      int       `json:"order" bson:"order"`
	Completed  bool      `json:"completed" bson:"completed"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

type PlanRepository interface {
	Create(ctx context.Context, plan *TrainingPlan) error
	GetByID(ctx context.Context, id string) (*TrainingPlan, error)
	GetByCoach(ctx context.Context, coachID string) ([]*TrainingPlan, error)
	GetByAthlete(ctx context.Context, athleteID string) ([]*TrainingPlan, error)
	Update(ctx context.Context, plan *TrainingPlan) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *TrainingSession) error
	GetByID(ctx context.Context, id string) (*TrainingSession, error)
	GetByPlan(ctx context.Context, planID string) ([]*TrainingSession, error)
	MarkComplete(ctx context.Context, id string, notes string) error
}

type SessionExerciseRepository interface {
	Create(ctx context.Context, exercise *SessionExercise) error
	GetBySession(ctx context.Context, sessionID string) ([]*SessionExercise, error)
	MarkComplete(ctx context.Context, id string) error
}
