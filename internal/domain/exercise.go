package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrDuplicateExercise = errors.New("exercise name already exists")
)

// Exercise is an entry in the global drill/lift catalog referenced by
// workouts and session prescriptions.
type Exercise struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`         // unique index
	Category  string    `json:"category" bson:"category"` // e.g. "Sprint Drills", "Strength", "Plyometrics"
	Equipment string    `json:"equipment,omitempty" bson:"equipment,omitempty"`
	VideoURL  string    `json:"video_url,omitempty" bson:"video_url,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *Exercise) error
	GetByID(ctx context.Context, id string) (*Exercise, error)
	List(ctx context.Context, filter map[string]interface{}) ([]*Exercise, error)
	Update(ctx context.Context, exercise *Exercise) error
	Delete(ctx context.Context, id string) error
}
