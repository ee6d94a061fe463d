package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/strideworks/trackside/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRelationshipRepo is an in-memory RelationshipRepository.
type memRelationshipRepo struct {
	rels   []*domain.CoachAthleteRelationship
	nextID int
}

func (m *memRelationshipRepo) Create(ctx context.Context, rel *domain.CoachAthleteRelationship) error {
	m.nextID++
	rel.ID = fmt.Sprintf("rel-%d", m.nextID)
	if rel.CreatedAt.IsZero() {
		rel.CreatedAt = time.Now()
	}
	m.rels = append(m.rels, rel)
	return nil
}

func (m *memRelationshipRepo) GetByCoach(ctx context.Context, coachID string) ([]*domain.CoachAthleteRelationship, error) {
	var out []*domain.CoachAthleteRelationship
	for _, r := range m.rels {
		if r.CoachID == coachID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRelationshipRepo) GetByAthlete(ctx context.Context, athleteID string) ([]*domain.CoachAthleteRelationship, error) {
	var out []*domain.CoachAthleteRelationship
	for _, r := range m.rels {
		if r.AthleteID == athleteID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRelationshipRepo) Exists(ctx context.Context, coachID, athleteID string) (bool, error) {
	for _, r := range m.rels {
		if r.CoachID == coachID && r.AthleteID == athleteID {
			return true, nil
		}
	}
	return false, nil
}

func TestEnsureCoachCode(t *testing.T) {
	repo := newMemProfileRepo()
	ctx := context.Background()

	coach := &domain.UserProfile{Username: "coach", Role: domain.RoleCoach}
	require.NoError(t, repo.Create(ctx, coach))

	svc := NewRosterService(repo, &memRelationshipRepo{}, newTestCache(t))

	code, err := svc.EnsureCoachCode(ctx, coach.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "TRK-"))
	assert.Len(t, code, 10)

	// A second call returns the same code.
	again, err := svc.EnsureCoachCode(ctx, coach.ID)
	require.NoError(t, err)
	assert.Equal(t, code, again)
}

func TestLinkAthlete(t *testing.T) {
	repo := newMemProfileRepo()
	ctx := context.Background()

	coach := &domain.UserProfile{Username: "coach", Role: domain.RoleCoach}
	require.NoError(t, repo.Create(ctx, coach))
	athlete := &domain.UserProfile{Username: "athlete", Role: domain.RoleAthlete}
	require.NoError(t, repo.Create(ctx, athlete))

	svc := NewRosterService(repo, &memRelationshipRepo{}, newTestCache(t))

	code, err := svc.EnsureCoachCode(ctx, coach.ID)
	require.NoError(t, err)

	rel, err := svc.LinkAthlete(ctx, athlete.ID, code)
	require.NoError(t, err)
	assert.Equal(t, coach.ID, rel.CoachID)
	assert.Equal(t, athlete.ID, rel.AthleteID)

	// Linking twice is rejected.
	_, err = svc.LinkAthlete(ctx, athlete.ID, code)
	assert.ErrorIs(t, err, domain.ErrRelationshipExists)

	// Unknown code is rejected.
	_, err = svc.LinkAthlete(ctx, athlete.ID, "TRK-NOPE")
	assert.Error(t, err)

	// Coaches cannot link to themselves.
	_, err = svc.LinkAthlete(ctx, coach.ID, code)
	assert.Error(t, err)
}

func TestCoachAthletesRoster(t *testing.T) {
	repo := newMemProfileRepo()
	relRepo := &memRelationshipRepo{}
	ctx := context.Background()

	coach := &domain.UserProfile{Username: "coach", Role: domain.RoleCoach}
	require.NoError(t, repo.Create(ctx, coach))

	var athleteIDs []string
	for i := 0; i < 3; i++ {
		a := &domain.UserProfile{Username: fmt.Sprintf("athlete-%d", i), Role: domain.RoleAthlete}
		require.NoError(t, repo.Create(ctx, a))
		athleteIDs = append(athleteIDs, a.ID)
		require.NoError(t, relRepo.Create(ctx, &domain.CoachAthleteRelationship{
			CoachID:   coach.ID,
			AthleteID: a.ID,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}))
	}

	svc := NewRosterService(repo, relRepo, newTestCache(t))

	entries, err := svc.CoachAthletes(ctx, coach.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Newest link first.
	assert.Equal(t, athleteIDs[2], entries[0].Profile.ID)
	assert.Equal(t, athleteIDs[0], entries[2].Profile.ID)

	// Second call hits the cache and returns the same view.
	cached, err := svc.CoachAthletes(ctx, coach.ID)
	require.NoError(t, err)
	assert.Len(t, cached, 3)
}

func TestRosterDropsMissingProfiles(t *testing.T) {
	repo := newMemProfileRepo()
	relRepo := &memRelationshipRepo{}
	ctx := context.Background()

	coach := &domain.UserProfile{Username: "coach", Role: domain.RoleCoach}
	require.NoError(t, repo.Create(ctx, coach))

	athlete := &domain.UserProfile{Username: "athlete", Role: domain.RoleAthlete}
	require.NoError(t, repo.Create(ctx, athlete))

	require.NoError(t, relRepo.Create(ctx, &domain.CoachAthleteRelationship{CoachID: coach.ID, AthleteID: athlete.ID}))
	require.NoError(t, relRepo.Create(ctx, &domain.CoachAthleteRelationship{CoachID: coach.ID, AthleteID: "deleted-profile"}))

	svc := NewRosterService(repo, relRepo, newTestCache(t))

	entries, err := svc.CoachAthletes(ctx, coach.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, athlete.ID, entries[0].Profile.ID)
}
