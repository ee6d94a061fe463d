package repository

import (
	"context"
	"testing"

	"github.com/strideworks/trackside/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepositoryLookups(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoProfileRepository(db)
	ctx := context.Background()

	profile := &domain.UserProfile{
		Username:      "sprinthead",
		Email:         "sprinthead@example.com",
		FirebaseUID:   "firebase-123",
		Role:          domain.RoleAthlete,
		PrimaryEvents: []string{"100m", "200m"},
	}
	require.NoError(t, repo.Create(ctx, profile))
	require.NotEmpty(t, profile.ID)

	byUID, err := repo.GetByFirebaseUID(ctx, "firebase-123")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, byUID.ID)

	byEmail, err := repo.GetByEmail(ctx, "sprinthead@example.com")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, byEmail.ID)

	_, err = repo.GetByFirebaseUID(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfileRepositoryCoachCode(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoProfileRepository(db)
	ctx := context.Background()

	coach := &domain.UserProfile{Username: "coach", Role: domain.RoleCoach}
	require.NoError(t, repo.Create(ctx, coach))

	require.NoError(t, repo.SetCoachCode(ctx, coach.ID, "TRK-A1B2C3"))

	got, err := repo.GetByCoachCode(ctx, "TRK-A1B2C3")
	require.NoError(t, err)
	assert.Equal(t, coach.ID, got.ID)

	_, err = repo.GetByCoachCode(ctx, "TRK-MISSING")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
