package service

import (
	"context"
	"fmt"
	"time"

	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/repository"
)

const sessionCacheTTL = 5 * time.Minute

// PlanService orchestrates training plans, their sessions and session
// exercises. Completion handlers invalidate the dependent cached lists:
// completing a session drops both the session list and the parent plan
// list.
type PlanService struct {
	planRepo     *repository.CachedPlanRepository
	sessionRepo  domain.SessionRepository
	exerciseRepo domain.SessionExerciseRepository
	catalogRepo  domain.ExerciseRepository
	cache        *repository.RedisCache
}

func NewPlanService(
	planRepo *repository.CachedPlanRepository,
	sessionRepo domain.SessionRepository,
	exerciseRepo domain.SessionExerciseRepository,
	catalogRepo domain.ExerciseRepository,
	cache *repository.RedisCache,
) *PlanService {
	return &PlanService{
		planRepo:     planRepo,
		sessionRepo:  sessionRepo,
		exerciseRepo: exerciseRepo,
		catalogRepo:  catalogRepo,
		cache:        cache,
	}
}

// CreatePlan creates a plan owned by the acting user. Coaches assign
// plans to their athletes; athletes write plans for themselves.
func (s *PlanService) CreatePlan(ctx context.Context, plan *domain.TrainingPlan, actorID string, role domain.Role) (*domain.TrainingPlan, error) {
	if role == domain.RoleCoach {
		plan.CoachID = actorID
		if plan.AthleteID == "" {
			return nil, fmt.Errorf("athlete_id is required for coach-created plans")
		}
	} else {
		plan.AthleteID = actorID
		plan.CoachID = ""
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ListPlans returns the acting user's plans for their current role.
func (s *PlanService) ListPlans(ctx context.Context, actorID string, role domain.Role) ([]*domain.TrainingPlan, error) {
	if role == domain.RoleCoach {
		return s.planRepo.GetByCoach(ctx, actorID)
	}
	return s.planRepo.GetByAthlete(ctx, actorID)
}

// UpdatePlan applies changes to an existing plan.
func (s *PlanService) UpdatePlan(ctx context.Context, plan *domain.TrainingPlan) error {
	existing, err := s.planRepo.GetByID(ctx, plan.ID)
	if err != nil {
		return err
	}
	// ownership fields are immutable
	plan.CoachID = existing.CoachID
	plan.AthleteID = existing.AthleteID
	return s.planRepo.Update(ctx, plan)
}

// CreateSession adds a session to a plan and drops the plan's cached
// session list.
func (s *PlanService) CreateSession(ctx context.Context, session *domain.TrainingSession) (*domain.TrainingSession, error) {
	if _, err := s.planRepo.GetByID(ctx, session.PlanID); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, repository.SessionListKey(session.PlanID))
	return session, nil
}

// ListSessions returns a plan's sessions through the request cache.
func (s *PlanService) ListSessions(ctx context.Context, planID string) ([]*domain.TrainingSession, error) {
	key := repository.SessionListKey(planID)

	var sessions []*domain.TrainingSession
	if err := s.cache.Get(ctx, key, &sessions); err == nil {
		return sessions, nil
	}

	sessions, err := s.sessionRepo.GetByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, sessions, sessionCacheTTL)
	return sessions, nil
}

// CompleteSession marks a session complete with optional notes, then
// invalidates the session list and the parent plan list.
func (s *PlanService) CompleteSession(ctx context.Context, sessionID string, notes string) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.sessionRepo.MarkComplete(ctx, sessionID, notes); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, repository.SessionListKey(session.PlanID))
	s.planRepo.InvalidateFor(ctx, session.PlanID)
	return nil
}

// AddSessionExercise prescribes an exercise within a session. A catalog
// reference inflates the denormalized name.
func (s *PlanService) AddSessionExercise(ctx context.Context, exercise *domain.SessionExercise) (*domain.SessionExercise, error) {
	if _, err := s.sessionRepo.GetByID(ctx, exercise.SessionID); err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}

	if exercise.ExerciseID != "" {
		catalog, err := s.catalogRepo.GetByID(ctx, exercise.ExerciseID)
		if err == nil {
			exercise.Name = catalog.Name
		}
	}
	if exercise.Name == "" {
		return nil, fmt.Errorf("exercise name or catalog reference is required")
	}

	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// ListSessionExercises returns a session's prescriptions in order.
func (s *PlanService) ListSessionExercises(ctx context.Context, sessionID string) ([]*domain.SessionExercise, error) {
	return s.exerciseRepo.GetBySession(ctx, sessionID)
}

// CompleteExercise marks one prescribed exercise done.
func (s *PlanService) CompleteExercise(ctx context.Context, exerciseID string) error {
	return s.exerciseRepo.MarkComplete(ctx, exerciseID)
}
