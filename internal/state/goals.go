package state

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/store"
)

// GoalStore owns the goal and achievement collections. Achievements
// live here because every unlock is a side effect of a goal mutation.
type GoalStore struct {
	mu           sync.Mutex
	kv           store.Store
	status       Status
	goals        []*domain.Goal
	achievements []*domain.Achievement
}

func NewGoalStore(kv store.Store) *GoalStore {
	return &GoalStore{kv: kv}
}

// Hydrate loads both collections from the durable store, falling back
// to the seed dataset when a collection is absent or unreadable.
func (s *GoalStore) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusLoading

	var goals []*domain.Goal
	if err := s.kv.Load(ctx, store.KeyGoals, &goals); err != nil {
		if err != store.ErrNoRecord {
			logPersistErr("goals (load)", err)
		}
		goals = seedGoals()
	}
	s.goals = goals

	var achievements []*domain.Achievement
	if err := s.kv.Load(ctx, store.KeyAchievements, &achievements); err != nil {
		if err != store.ErrNoRecord {
			logPersistErr("achievements (load)", err)
		}
		achievements = nil
	}
	s.achievements = achievements

	s.status = StatusReady
	return nil
}

func (s *GoalStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Goals returns the goal collection.
func (s *GoalStore) Goals() []*domain.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Goal, len(s.goals))
	copy(out, s.goals)
	return out
}

// Achievements returns the unlocked badges.
func (s *GoalStore) Achievements() []*domain.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Achievement, len(s.achievements))
	copy(out, s.achievements)
	return out
}

// Goal returns the goal with the given id, or nil.
func (s *GoalStore) Goal(id string) *domain.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

// AddGoal appends a new goal. The first goal ever added unlocks the
// "First Goal" achievement.
func (s *GoalStore) AddGoal(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return nil, domain.ErrNotReady
	}

	g.ID = fmt.Sprintf("goal-%d", time.Now().UnixMilli())
	g.CreatedAt = time.Now().Format(domain.DateFormat)
	if g.Status == "" {
		g.Status = domain.GoalActive
	}

	wasEmpty := len(s.goals) == 0
	s.goals = append(s.goals, g)

	if wasEmpty {
		s.unlock(ctx, &domain.Achievement{
			Title:       domain.AchievementFirstGoal,
			Description: "Set your first goal",
			Icon:        "flag",
			Category:    "milestone",
			GoalID:      g.ID,
		})
	}

	logPersistErr("goals", s.kv.Save(ctx, store.KeyGoals, s.goals))
	return g, nil
}

// GoalUpdate carries the fields a partial update may touch. Nil fields
// are left untouched.
type GoalUpdate struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	Category     *domain.GoalCategory `json:"category"`
	Type         *domain.MetricType   `json:"type"`
	Event        *string              `json:"event"`
	TargetValue  *float64             `json:"target_value"`
	CurrentValue *float64             `json:"current_value"`
	Unit         *string              `json:"unit"`
	TargetDate   *string              `json:"target_date"`
	Status       *domain.GoalStatus   `json:"status"`
	Priority     *string              `json:"priority"`
	Notes        *string              `json:"notes"`
}

// UpdateGoal shallow-merges the given fields into the matching goal.
// Unknown ids are a silent no-op.
func (s *GoalStore) UpdateGoal(ctx context.Context, id string, upd GoalUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	g := s.find(id)
	if g == nil {
		return nil
	}

	if upd.Title != nil {
		g.Title = *upd.Title
	}
	if upd.Description != nil {
		g.Description = *upd.Description
	}
	if upd.Category != nil {
		g.Category = *upd.Category
	}
	if upd.Type != nil {
		g.Type = *upd.Type
	}
	if upd.Event != nil {
		g.Event = *upd.Event
	}
	if upd.TargetValue != nil {
		g.TargetValue = upd.TargetValue
	}
	if upd.CurrentValue != nil {
		g.CurrentValue = upd.CurrentValue
	}
	if upd.Unit != nil {
		g.Unit = *upd.Unit
	}
	if upd.TargetDate != nil {
		g.TargetDate = *upd.TargetDate
	}
	if upd.Status != nil {
		g.Status = *upd.Status
	}
	if upd.Priority != nil {
		g.Priority = *upd.Priority
	}
	if upd.Notes != nil {
		g.Notes = *upd.Notes
	}

	logPersistErr("goals", s.kv.Save(ctx, store.KeyGoals, s.goals))
	return nil
}

// DeleteGoal removes the matching goal. Unknown ids are a silent no-op.
func (s *GoalStore) DeleteGoal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			logPersistErr("goals", s.kv.Save(ctx, store.KeyGoals, s.goals))
			return nil
		}
	}
	return nil
}

// CompleteGoal marks the goal completed and evaluates achievement
// unlocks. Event and category checks run against the goal's state
// before this call mutated it.
func (s *GoalStore) CompleteGoal(ctx context.Context, id string, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	g := s.find(id)
	if g == nil {
		return nil
	}

	snapshot := *g

	g.Status = domain.GoalCompleted
	if notes != "" {
		g.Notes = notes
	}

	completed := 0
	for _, goal := range s.goals {
		if goal.Status == domain.GoalCompleted {
			completed++
		}
	}
	if completed == 5 {
		s.unlock(ctx, &domain.Achievement{
			Title:       domain.AchievementGoalCrusher,
			Description: "Complete five goals",
			Icon:        "trophy",
			Category:    "milestone",
			GoalID:      g.ID,
		})
	}

	switch {
	case snapshot.IsSprintEvent():
		s.unlock(ctx, &domain.Achievement{
			Title:       domain.AchievementSpeedDemon,
			Description: "Complete a sprint event goal",
			Icon:        "zap",
			Category:    "event",
			GoalID:      g.ID,
		})
	case snapshot.IsDistanceEvent():
		s.unlock(ctx, &domain.Achievement{
			Title:       domain.AchievementDistanceRunner,
			Description: "Complete a distance event goal",
			Icon:        "route",
			Category:    "event",
			GoalID:      g.ID,
		})
	case snapshot.Category == domain.CategoryTraining && snapshot.Type == domain.MetricFrequency:
		s.unlock(ctx, &domain.Achievement{
			Title:       domain.AchievementConsistentPerformer,
			Description: "Complete a training frequency goal",
			Icon:        "calendar-check",
			Category:    "habit",
			GoalID:      g.ID,
		})
	}

	logPersistErr("goals", s.kv.Save(ctx, store.KeyGoals, s.goals))
	return nil
}

// UpdateProgress records a new current value and completes the goal
// when the target is reached per the metric's direction rule. Goals
// without a target value are a silent no-op.
func (s *GoalStore) UpdateProgress(ctx context.Context, id string, current float64, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	g := s.find(id)
	if g == nil || g.TargetValue == nil {
		return nil
	}

	g.CurrentValue = &current
	if notes != "" {
		g.Notes = notes
	}

	if g.TargetReached(current) {
		g.Status = domain.GoalCompleted
		s.unlock(ctx, &domain.Achievement{
			Title:       domain.AchievementPersonalBest,
			Description: "Reach a goal target",
			Icon:        "medal",
			Category:    "performance",
			GoalID:      g.ID,
		})
	}

	logPersistErr("goals", s.kv.Save(ctx, store.KeyGoals, s.goals))
	return nil
}

// CompleteMilestone marks the named milestone completed with today's
// date. Unknown goal or milestone ids are a silent no-op.
func (s *GoalStore) CompleteMilestone(ctx context.Context, goalID, milestoneID, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	g := s.find(goalID)
	if g == nil {
		return nil
	}

	for _, m := range g.Milestones {
		if m.ID == milestoneID {
			m.Completed = true
			m.CompletedDate = time.Now().Format(domain.DateFormat)
			if notes != "" {
				m.Notes = notes
			}
			logPersistErr("goals", s.kv.Save(ctx, store.KeyGoals, s.goals))
			return nil
		}
	}
	return nil
}

// UnlockAchievement adds a badge unless one with the same title exists.
func (s *GoalStore) UnlockAchievement(ctx context.Context, a *domain.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}
	s.unlock(ctx, a)
	return nil
}

// UpcomingDeadlines returns active goals due within the given number of
// days, soonest first.
func (s *GoalStore) UpcomingDeadlines(days int) []*domain.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, days).Format(domain.DateFormat)

	var due []*domain.Goal
	for _, g := range s.goals {
		if g.Status == domain.GoalActive && g.TargetDate != "" && g.TargetDate <= cutoff {
			due = append(due, g)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].TargetDate < due[j].TargetDate })
	return due
}

// unlock appends the achievement if its title is new, then persists
// the achievement collection. Callers hold the lock.
func (s *GoalStore) unlock(ctx context.Context, a *domain.Achievement) {
	for _, existing := range s.achievements {
		if existing.Title == a.Title {
			return
		}
	}
	a.ID = newULID()
	a.UnlockedAt = time.Now()
	s.achievements = append(s.achievements, a)
	logPersistErr("achievements", s.kv.Save(ctx, store.KeyAchievements, s.achievements))
}

func (s *GoalStore) find(id string) *domain.Goal {
	for _, g := range s.goals {
		if g.ID == id {
			return g
		}
	}
	return nil
}
