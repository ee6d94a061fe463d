package repository

import (
	"context"
	"testing"

	"github.com/strideworks/trackside/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepositoryCRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoPlanRepository(db)
	ctx := context.Background()

	plan := &domain.TrainingPlan{
		CoachID:   "coach-1",
		AthleteID: "athlete-1",
		Title:     "Pre-season block",
		StartDate: "2026-09-01",
		EndDate:   "2026-10-15",
	}
	require.NoError(t, repo.Create(ctx, plan))
	require.NotEmpty(t, plan.ID)
	assert.Equal(t, domain.PlanDraft, plan.Status)

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pre-season block", got.Title)

	got.Status = domain.PlanActive
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanActive, updated.Status)

	byCoach, err := repo.GetByCoach(ctx, "coach-1")
	require.NoError(t, err)
	require.Len(t, byCoach, 1)

	byAthlete, err := repo.GetByAthlete(ctx, "athlete-1")
	require.NoError(t, err)
	require.Len(t, byAthlete, 1)

	_, err = repo.GetByID(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestCachedPlanRepositoryReadThrough(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db, cleanup := setupTestDB(t)
	defer cleanup()

	cache := setupTestCache(t)
	repo := NewCachedPlanRepository(NewMongoPlanRepository(db), cache)
	ctx := context.Background()

	plan := &domain.TrainingPlan{CoachID: "coach-2", AthleteID: "athlete-2", Title: "Speed block"}
	require.NoError(t, repo.Create(ctx, plan))

	// First read populates the cache.
	first, err := repo.GetByCoach(ctx, "coach-2")
	require.NoError(t, err)
	require.Len(t, first, 1)

	var cached []*domain.TrainingPlan
	require.NoError(t, cache.Get(ctx, PlanListKey("coach", "coach-2"), &cached))
	require.Len(t, cached, 1)

	// A mutation invalidates both owners' lists.
	plan.Title = "Speed block v2"
	require.NoError(t, repo.Update(ctx, plan))
	assert.Error(t, cache.Get(ctx, PlanListKey("coach", "coach-2"), &cached))
	assert.Error(t, cache.Get(ctx, PlanListKey("athlete", "athlete-2"), &cached))

	// Next read sees the update and repopulates.
	second, err := repo.GetByCoach(ctx, "coach-2")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Speed block v2", second[0].Title)
}

func TestSessionRepositoryMarkComplete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoSessionRepository(db)
	ctx := context.Background()

	session := &domain.TrainingSession{PlanID: "plan-1", Title: "Accel day", Date: "2026-09-03"}
	require.NoError(t, repo.Create(ctx, session))
	require.NotEmpty(t, session.ID)

	require.NoError(t, repo.MarkComplete(ctx, session.ID, "all reps hit"))

	got, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, "all reps hit", got.CompletionNotes)

	err = repo.MarkComplete(ctx, "ffffffffffffffffffffffff", "")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRelationshipRepositoryUniqueness(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoRelationshipRepository(db)
	ctx := context.Background()

	rel := &domain.CoachAthleteRelationship{CoachID: "coach-1", AthleteID: "athlete-1"}
	require.NoError(t, repo.Create(ctx, rel))

	exists, err := repo.Exists(ctx, "coach-1", "athlete-1")
	require.NoError(t, err)
	assert.True(t, exists)

	dup := &domain.CoachAthleteRelationship{CoachID: "coach-1", AthleteID: "athlete-1"}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrRelationshipExists)

	byCoach, err := repo.GetByCoach(ctx, "coach-1")
	require.NoError(t, err)
	require.Len(t, byCoach, 1)
}
