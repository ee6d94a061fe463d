package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTrainingStats(t *testing.T) {
	workouts := []*Workout{
		{Name: "Sprint Intervals", Type: WorkoutSpeed, DurationMinutes: 60, OverallRPE: 8, Completed: true},
		{Name: "Gym Session", Type: WorkoutStrength, DurationMinutes: 90, OverallRPE: 7, Completed: true},
		{Name: "Recovery Jog", Type: WorkoutRecovery, DurationMinutes: 30, Completed: true},
		{Name: "Planned Tempo", Type: WorkoutEndurance, DurationMinutes: 45, Completed: false},
	}

	stats := ComputeTrainingStats(workouts)

	assert.Equal(t, 3, stats.TotalWorkouts)
	assert.InDelta(t, 3.0, stats.TotalHours, 0.0001)
	assert.InDelta(t, 5.0, stats.AverageRPE, 0.0001) // (8+7+0)/3
	assert.Equal(t, 1, stats.WorkoutsByType[WorkoutSpeed])
	assert.Equal(t, 1, stats.WorkoutsByType[WorkoutStrength])
	assert.Equal(t, 1, stats.WorkoutsByType[WorkoutRecovery])
	assert.Zero(t, stats.WorkoutsByType[WorkoutEndurance])
}

func TestComputeTrainingStatsEmpty(t *testing.T) {
	stats := ComputeTrainingStats(nil)
	assert.Zero(t, stats.TotalWorkouts)
	assert.Zero(t, stats.TotalHours)
	assert.Zero(t, stats.AverageRPE)
	assert.Empty(t, stats.WorkoutsByType)
}

func TestComputeTrainingStatsAllIncomplete(t *testing.T) {
	stats := ComputeTrainingStats([]*Workout{
		{Name: "Planned A", Type: WorkoutSpeed, DurationMinutes: 60, OverallRPE: 9},
		{Name: "Planned B", Type: WorkoutPower, DurationMinutes: 45, OverallRPE: 8},
	})
	assert.Zero(t, stats.TotalWorkouts)
	assert.Zero(t, stats.TotalHours)
	assert.Zero(t, stats.AverageRPE)
}
