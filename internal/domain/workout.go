package domain

import (
	"errors"
	"time"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type WorkoutType string

const (
	WorkoutSpeed       WorkoutType = "Speed"
	WorkoutPower       WorkoutType = "Power"
	WorkoutEndurance   WorkoutType = "Endurance"
	WorkoutStrength    WorkoutType = "Strength"
	WorkoutTechnical   WorkoutType = "Technical"
	WorkoutRecovery    WorkoutType = "Recovery"
	WorkoutCompetition WorkoutType = "Competition"
)

// ExerciseSet is a single set within a workout exercise. Zero values
// mean the field was not logged.
type ExerciseSet struct {
	SetIndex    int     `json:"set_index" bson:"set_index"` // 1-based
	Reps        int     `json:"reps,omitempty" bson:"reps,omitempty"`
	Weight      float64 `json:"weight,omitempty" bson:"weight,omitempty"`       // kg
	Distance    float64 `json:"distance,omitempty" bson:"distance,omitempty"`   // meters
	Time        float64 `json:"time,omitempty" bson:"time,omitempty"`           // seconds
	RestSeconds int     `json:"rest_seconds,omitempty" bson:"rest_seconds,omitempty"`
	RPE         int     `json:"rpe,omitempty" bson:"rpe,omitempty"` // 1-10
}

// WorkoutExercise is one exercise entry within a workout, with its
// ordered list of sets.
type WorkoutExercise struct {
	ExerciseID string         `json:"exercise_id" bson:"exercise_id"`
	Name       string         `json:"name" bson:"name"` // denormalized for display
	Sets       []*ExerciseSet `json:"sets" bson:"sets"`
}

// Workout is a logged or planned training session.
type Workout struct {
	ID              string             `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Date            string             `json:"date" bson:"date"`
	Type            WorkoutType        `json:"type" bson:"type"`
	Exercises       []*WorkoutExercise `json:"exercises,omitempty" bson:"exercises,omitempty"`
	DurationMinutes int                `json:"duration_minutes,omitempty" bson:"duration_minutes,omitempty"`
	OverallRPE      int                `json:"overall_rpe,omitempty" bson:"overall_rpe,omitempty"` // 1-10
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Completed       bool               `json:"completed" bson:"completed"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

// TrainingStats aggregates completed workouts.
type TrainingStats struct {
	TotalWorkouts  int                 `json:"total_workouts"`
	TotalHours     float64             `json:"total_hours"`
	AverageRPE     float64             `json:"average_rpe"`
	WorkoutsByType map[WorkoutType]int `json:"workouts_by_type"`
}

// ComputeTrainingStats derives aggregate statistics from a workout
// collection. Only completed workouts count. A missing overall RPE
// contributes 0 to the average.
func ComputeTrainingStats(workouts []*Workout) TrainingStats {
	stats := TrainingStats{
		WorkoutsByType: make(map[WorkoutType]int),
	}

	totalMinutes := 0
	totalRPE := 0
	for _, w := range workouts {
		if !w.Completed {
			continue
		}
		stats.TotalWorkouts++
		totalMinutes += w.DurationMinutes
		totalRPE += w.OverallRPE
		stats.WorkoutsByType[w.Type]++
	}

	stats.TotalHours = float64(totalMinutes) / 60
	if stats.TotalWorkouts > 0 {
		stats.AverageRPE = float64(totalRPE) / float64(stats.TotalWorkouts)
	}
	return stats
}
