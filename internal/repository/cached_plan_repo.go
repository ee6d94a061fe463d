package repository

import (
	"context"
	"time"

	"github.com/strideworks/trackside/internal/domain"
)

const planCacheTTL = 5 * time.Minute

// CachedPlanRepository wraps MongoPlanRepository with read-through
// caching of the per-user plan lists. Mutations invalidate the affected
// lists; the next read refetches from MongoDB.
type CachedPlanRepository struct {
	mongo *MongoPlanRepository
	cache *RedisCache
}

func NewCachedPlanRepository(mongo *MongoPlanRepository, cache *RedisCache) *CachedPlanRepository {
	return &CachedPlanRepository{
		mongo: mongo,
		cache: cache,
	}
}

func (r *CachedPlanRepository) GetByCoach(ctx context.Context, coachID string) ([]*domain.TrainingPlan, error) {
	key := PlanListKey("coach", coachID)

	var plans []*domain.TrainingPlan
	if err := r.cache.Get(ctx, key, &plans); err == nil {
		return plans, nil
	}

	plans, err := r.mongo.GetByCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}

	// cache errors never block the read
	_ = r.cache.Set(ctx, key, plans, planCacheTTL)
	return plans, nil
}

func (r *CachedPlanRepository) GetByAthlete(ctx context.Context, athleteID string) ([]*domain.TrainingPlan, error) {
	key := PlanListKey("athlete", athleteID)

	var plans []*domain.TrainingPlan
	if err := r.cache.Get(ctx, key, &plans); err == nil {
		return plans, nil
	}

	plans, err := r.mongo.GetByAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, key, plans, planCacheTTL)
	return plans, nil
}

func (r *CachedPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) error {
	if err := r.mongo.Create(ctx, plan); err != nil {
		return err
	}
	r.invalidateLists(ctx, plan)
	return nil
}

func (r *CachedPlanRepository) Update(ctx context.Context, plan *domain.TrainingPlan) error {
	if err := r.mongo.Update(ctx, plan); err != nil {
		return err
	}
	r.invalidateLists(ctx, plan)
	return nil
}

// InvalidateFor drops the cached lists naming this plan. Called by the
// plan service when a session completion changes a plan's derived view.
func (r *CachedPlanRepository) InvalidateFor(ctx context.Context, planID string) {
	plan, err := r.mongo.GetByID(ctx, planID)
	if err != nil {
		return
	}
	r.invalidateLists(ctx, plan)
}

func (r *CachedPlanRepository) invalidateLists(ctx context.Context, plan *domain.TrainingPlan) {
	keys := []string{PlanListKey("athlete", plan.AthleteID)}
	if plan.CoachID != "" {
		keys = append(keys, PlanListKey("coach", plan.CoachID))
	}
	_ = r.cache.Delete(ctx, keys...)
}

// GetByID is a pass-through; individual plans are cheap to fetch.
func (r *CachedPlanRepository) GetByID(ctx context.Context, id string) (*domain.TrainingPlan, error) {
	return r.mongo.GetByID(ctx, id)
}
