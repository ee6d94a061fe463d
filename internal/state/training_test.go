package state

import (
	"context"
	"testing"
	"time"

	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadyTrainingStore(t *testing.T) *TrainingStore {
	t.Helper()
	kv, _ := newTestKV(t)
	seedEmpty(t, kv, store.KeyWorkouts)

	s := NewTrainingStore(kv)
	require.NoError(t, s.Hydrate(context.Background()))
	return s
}

func TestTrainingHydrateSeedsWhenEmpty(t *testing.T) {
	kv, _ := newTestKV(t)
	s := NewTrainingStore(kv)
	require.NoError(t, s.Hydrate(context.Background()))

	require.Len(t, s.Workouts(), 1)
	assert.Nil(t, s.CurrentWorkout())
}

func TestAddWorkoutDefaultsDateToToday(t *testing.T) {
	s := newReadyTrainingStore(t)
	ctx := context.Background()

	created, err := s.AddWorkout(ctx, &domain.Workout{Name: "Tempo 300s", Type: domain.WorkoutEndurance})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, time.Now().Format(domain.DateFormat), created.Date)

	dated, err := s.AddWorkout(ctx, &domain.Workout{Name: "Gym", Date: "2026-08-01"})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", dated.Date)
}

func TestStartAndCompleteWorkout(t *testing.T) {
	s := newReadyTrainingStore(t)
	ctx := context.Background()

	created, err := s.AddWorkout(ctx, &domain.Workout{Name: "Speed session", Type: domain.WorkoutSpeed})
	require.NoError(t, err)

	require.NoError(t, s.StartWorkout(created.ID))
	require.NotNil(t, s.CurrentWorkout())
	assert.Equal(t, created.ID, s.CurrentWorkout().ID)

	require.NoError(t, s.CompleteWorkout(ctx, created.ID, 8, "felt sharp"))
	got := s.Workouts()[0]
	assert.True(t, got.Completed)
	assert.Equal(t, 8, got.OverallRPE)
	assert.Equal(t, "felt sharp", got.Notes)
	assert.Nil(t, s.CurrentWorkout())
}

func TestCompleteWorkoutClearsPointerEvenForOtherWorkout(t *testing.T) {
	s := newReadyTrainingStore(t)
	ctx := context.Background()

	first, err := s.AddWorkout(ctx, &domain.Workout{Name: "A"})
	require.NoError(t, err)
	second, err := s.AddWorkout(ctx, &domain.Workout{Name: "B"})
	require.NoError(t, err)

	require.NoError(t, s.StartWorkout(first.ID))
	require.NoError(t, s.CompleteWorkout(ctx, second.ID, 0, ""))
	assert.Nil(t, s.CurrentWorkout())
}

func TestCompleteWorkoutOptionalFields(t *testing.T) {
	s := newReadyTrainingStore(t)
	ctx := context.Background()

	created, err := s.AddWorkout(ctx, &domain.Workout{Name: "Easy run", OverallRPE: 5, Notes: "planned"})
	require.NoError(t, err)

	require.NoError(t, s.CompleteWorkout(ctx, created.ID, 0, ""))
	got := s.Workouts()[0]
	assert.True(t, got.Completed)
	assert.Equal(t, 5, got.OverallRPE)
	assert.Equal(t, "planned", got.Notes)
}

func TestStartWorkoutUnknownID(t *testing.T) {
	s := newReadyTrainingStore(t)
	assert.ErrorIs(t, s.StartWorkout("missing"), domain.ErrWorkoutNotFound)
}

func TestDeleteWorkoutClearsPointer(t *testing.T) {
	s := newReadyTrainingStore(t)
	ctx := context.Background()

	created, err := s.AddWorkout(ctx, &domain.Workout{Name: "Doomed"})
	require.NoError(t, err)
	require.NoError(t, s.StartWorkout(created.ID))

	require.NoError(t, s.DeleteWorkout(ctx, created.ID))
	assert.Nil(t, s.CurrentWorkout())
	assert.Empty(t, s.Workouts())
}

func TestCurrentWorkoutNotPersistedAcrossHydrate(t *testing.T) {
	kv, _ := newTestKV(t)
	seedEmpty(t, kv, store.KeyWorkouts)
	ctx := context.Background()

	s := NewTrainingStore(kv)
	require.NoError(t, s.Hydrate(ctx))

	created, err := s.AddWorkout(ctx, &domain.Workout{Name: "Session"})
	require.NoError(t, err)
	require.NoError(t, s.StartWorkout(created.ID))

	// A fresh container over the same durable store sees the workout
	// but not the active-session pointer.
	reloaded := NewTrainingStore(kv)
	require.NoError(t, reloaded.Hydrate(ctx))
	assert.Len(t, reloaded.Workouts(), 1)
	assert.Nil(t, reloaded.CurrentWorkout())
}

func TestUpdateWorkoutMerge(t *testing.T) {
	s := newReadyTrainingStore(t)
	ctx := context.Background()

	created, err := s.AddWorkout(ctx, &domain.Workout{Name: "Original", DurationMinutes: 60})
	require.NoError(t, err)

	name := "Renamed"
	rpe := 9
	require.NoError(t, s.UpdateWorkout(ctx, created.ID, WorkoutUpdate{Name: &name, OverallRPE: &rpe}))

	got := s.Workouts()[0]
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, 9, got.OverallRPE)
	assert.Equal(t, 60, got.DurationMinutes)
}

func TestWorkoutsByDateRange(t *testing.T) {
	s := newReadyTrainingStore(t)
	ctx := context.Background()

	for _, date := range []string{"2026-08-01", "2026-08-10", "2026-08-20"} {
		_, err := s.AddWorkout(ctx, &domain.Workout{Name: "W " + date, Date: date})
		require.NoError(t, err)
	}

	got := s.WorkoutsByDateRange("2026-08-01", "2026-08-10")
	require.Len(t, got, 2)
	assert.Equal(t, "2026-08-01", got[0].Date)
	assert.Equal(t, "2026-08-10", got[1].Date)

	assert.Empty(t, s.WorkoutsByDateRange("2026-09-01", "2026-09-30"))
}

func TestTrainingStats(t *testing.T) {
	s := newReadyTrainingStore(t)
	ctx := context.Background()

	_, err := s.AddWorkout(ctx, &domain.Workout{Name: "Done", Type: domain.WorkoutSpeed, DurationMinutes: 60, OverallRPE: 8, Completed: true})
	require.NoError(t, err)
	_, err = s.AddWorkout(ctx, &domain.Workout{Name: "Planned", Type: domain.WorkoutSpeed, DurationMinutes: 45})
	require.NoError(t, err)

	stats := s.Stats()
	assert.Equal(t, 1, stats.TotalWorkouts)
	assert.InDelta(t, 1.0, stats.TotalHours, 0.0001)
	assert.Equal(t, 1, stats.WorkoutsByType[domain.WorkoutSpeed])
}
