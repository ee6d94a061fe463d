package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"sort"
	"time"

	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/repository"
	"golang.org/x/sync/errgroup"
)

const rosterCacheTTL = 2 * time.Minute

// RosterService manages coach-athlete relationships. Athletes link to a
// coach by submitting the coach's code.
type RosterService struct {
	profileRepo domain.ProfileRepository
	relRepo     domain.RelationshipRepository
	cache       *repository.RedisCache
}

func NewRosterService(
	profileRepo domain.ProfileRepository,
	relRepo domain.RelationshipRepository,
	cache *repository.RedisCache,
) *RosterService {
	return &RosterService{
		profileRepo: profileRepo,
		relRepo:     relRepo,
		cache:       cache,
	}
}

// RosterEntry is one linked profile in a roster view.
type RosterEntry struct {
	Profile  *domain.UserProfile `json:"profile"`
	LinkedAt time.Time           `json:"linked_at"`
}

// EnsureCoachCode returns the coach's code, generating and persisting
// one on first use.
func (s *RosterService) EnsureCoachCode(ctx context.Context, coachID string) (string, error) {
	profile, err := s.profileRepo.GetByID(ctx, coachID)
	if err != nil {
		return "", err
	}
	if profile.CoachCode != "" {
		return profile.CoachCode, nil
	}

	code, err := generateCoachCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate coach code: %w", err)
	}
	if err := s.profileRepo.SetCoachCode(ctx, coachID, code); err != nil {
		return "", err
	}
	return code, nil
}

// LinkAthlete creates the coach-athlete relationship named by the code.
func (s *RosterService) LinkAthlete(ctx context.Context, athleteID, coachCode string) (*domain.CoachAthleteRelationship, error) {
	coach, err := s.profileRepo.GetByCoachCode(ctx, coachCode)
	if err != nil {
		return nil, fmt.Errorf("unknown coach code: %w", err)
	}
	if coach.ID == athleteID {
		return nil, fmt.Errorf("cannot link to yourself")
	}

	exists, err := s.relRepo.Exists(ctx, coach.ID, athleteID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrRelationshipExists
	}

	rel := &domain.CoachAthleteRelationship{
		CoachID:   coach.ID,
		AthleteID: athleteID,
		CoachCode: coachCode,
	}
	if err := s.relRepo.Create(ctx, rel); err != nil {
		return nil, err
	}

	// both roster views are now stale
	_ = s.cache.Delete(ctx,
		repository.RosterKey("coach", coach.ID),
		repository.RosterKey("athlete", athleteID),
	)
	return rel, nil
}

// CoachAthletes returns a coach's linked athletes, newest link first.
func (s *RosterService) CoachAthletes(ctx context.Context, coachID string) ([]*RosterEntry, error) {
	key := repository.RosterKey("coach", coachID)

	var cached []*RosterEntry
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	rels, err := s.relRepo.GetByCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}

	entries, err := s.inflate(ctx, rels, func(rel *domain.CoachAthleteRelationship) string {
		return rel.AthleteID
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, entries, rosterCacheTTL)
	return entries, nil
}

// AthleteCoaches returns an athlete's linked coaches.
func (s *RosterService) AthleteCoaches(ctx context.Context, athleteID string) ([]*RosterEntry, error) {
	key := repository.RosterKey("athlete", athleteID)

	var cached []*RosterEntry
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	rels, err := s.relRepo.GetByAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	entries, err := s.inflate(ctx, rels, func(rel *domain.CoachAthleteRelationship) string {
		return rel.CoachID
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, entries, rosterCacheTTL)
	return entries, nil
}

// inflate fetches the linked profiles concurrently and assembles the
// roster view. A missing profile drops its entry rather than failing
// the whole view.
func (s *RosterService) inflate(ctx context.Context, rels []*domain.CoachAthleteRelationship, pick func(*domain.CoachAthleteRelationship) string) ([]*RosterEntry, error) {
	entries := make([]*RosterEntry, len(rels))

	g, gCtx := errgroup.WithContext(ctx)
	for i, rel := range rels {
		g.Go(func() error {
			profile, err := s.profileRepo.GetByID(gCtx, pick(rel))
			if err != nil {
				return nil
			}
			entries[i] = &RosterEntry{Profile: profile, LinkedAt: rel.CreatedAt}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*RosterEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LinkedAt.After(out[j].LinkedAt) })
	return out, nil
}

// generateCoachCode creates a random 6-character code.
func generateCoachCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = charset[b[i]%byte(len(charset))]
	}
	return "TRK-" + string(b), nil
}
