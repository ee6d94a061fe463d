package state

import (
	"context"
	"testing"

	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadyProfileStore(t *testing.T) *ProfileStore {
	t.Helper()
	kv, _ := newTestKV(t)

	s := NewProfileStore(kv)
	require.NoError(t, s.Hydrate(context.Background()))
	return s
}

func TestProfileHydrateSeedsWhenEmpty(t *testing.T) {
	s := newReadyProfileStore(t)

	p := s.Profile()
	require.NotNil(t, p)
	assert.Equal(t, domain.RoleAthlete, p.Role)
	assert.Contains(t, p.PrimaryEvents, "100m")
}

func TestProfileHydrateLoadsStored(t *testing.T) {
	kv, _ := newTestKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Save(ctx, store.KeyUserProfile, &domain.UserProfile{
		ID:       "profile-1",
		Username: "sprinthead",
		Age:      23,
		Role:     domain.RoleCoach,
	}))

	s := NewProfileStore(kv)
	require.NoError(t, s.Hydrate(ctx))
	assert.Equal(t, "sprinthead", s.Profile().Username)
	assert.True(t, s.IsCoach())
}

func TestUpdateUserMerge(t *testing.T) {
	s := newReadyProfileStore(t)
	ctx := context.Background()

	username := "hurdler"
	age := 21
	require.NoError(t, s.UpdateUser(ctx, ProfileUpdate{Username: &username, Age: &age}))

	p := s.Profile()
	assert.Equal(t, "hurdler", p.Username)
	assert.Equal(t, 21, p.Age)
	// Untouched fields survive the merge.
	assert.Contains(t, p.PrimaryEvents, "100m")
}

func TestUpdateExperienceLevel(t *testing.T) {
	s := newReadyProfileStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateExperienceLevel(ctx, "200m", domain.LevelAdvanced))
	assert.Equal(t, domain.LevelAdvanced, s.Profile().ExperienceLevels["200m"])
}

func TestUpdatePersonalRecordOverwrites(t *testing.T) {
	s := newReadyProfileStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpdatePersonalRecord(ctx, "100m", 12.10, "2026-05-01", "Regionals"))
	require.NoError(t, s.UpdatePersonalRecord(ctx, "100m", 11.87, "2026-08-15", "Nationals"))

	pr := s.Profile().PersonalRecords["100m"]
	assert.Equal(t, 11.87, pr.Value)
	assert.Equal(t, "2026-08-15", pr.Date)
	assert.Equal(t, "Nationals", pr.Location)
}

func TestSwitchRole(t *testing.T) {
	s := newReadyProfileStore(t)
	ctx := context.Background()

	assert.True(t, s.IsAthlete())
	require.NoError(t, s.SwitchRole(ctx, domain.RoleCoach))
	assert.True(t, s.IsCoach())
	assert.False(t, s.IsAthlete())
}

func TestIsProfileComplete(t *testing.T) {
	s := newReadyProfileStore(t)
	ctx := context.Background()

	// Seed profile has username and events but no age.
	assert.False(t, s.IsProfileComplete())

	age := 19
	require.NoError(t, s.UpdateUser(ctx, ProfileUpdate{Age: &age}))
	assert.True(t, s.IsProfileComplete())
}

func TestSetAvatarURL(t *testing.T) {
	s := newReadyProfileStore(t)

	require.NoError(t, s.SetAvatarURL(context.Background(), "https://cdn.example.com/avatars/me.png"))
	assert.Equal(t, "https://cdn.example.com/avatars/me.png", s.Profile().AvatarURL)
}

func TestProfileNotReady(t *testing.T) {
	kv, _ := newTestKV(t)
	s := NewProfileStore(kv)

	username := "x"
	assert.ErrorIs(t, s.UpdateUser(context.Background(), ProfileUpdate{Username: &username}), domain.ErrNotReady)
	assert.False(t, s.IsAuthenticated())
}
