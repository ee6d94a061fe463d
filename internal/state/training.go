package state

import (
	"context"
	"sync"
	"time"

	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/store"
)

// TrainingStore owns the workout collection and the single
// current-workout pointer. The pointer itself is never persisted.
type TrainingStore struct {
	mu        sync.Mutex
	kv        store.Store
	status    Status
	workouts  []*domain.Workout
	currentID string
}

func NewTrainingStore(kv store.Store) *TrainingStore {
	return &TrainingStore{kv: kv}
}

// Hydrate loads the workout collection from the durable store, falling
// back to the seed dataset when absent or unreadable.
func (s *TrainingStore) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusLoading

	var workouts []*domain.Workout
	if err := s.kv.Load(ctx, store.KeyWorkouts, &workouts); err != nil {
		if err != store.ErrNoRecord {
			logPersistErr("workouts (load)", err)
		}
		workouts = seedWorkouts()
	}
	s.workouts = workouts
	s.currentID = ""

	s.status = StatusReady
	return nil
}

func (s *TrainingStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Workouts returns the workout collection.
func (s *TrainingStore) Workouts() []*domain.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Workout, len(s.workouts))
	copy(out, s.workouts)
	return out
}

// CurrentWorkout returns the started-but-unfinished workout, or nil.
func (s *TrainingStore) CurrentWorkout() *domain.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == "" {
		return nil
	}
	return s.find(s.currentID)
}

// AddWorkout appends a new workout.
func (s *TrainingStore) AddWorkout(ctx context.Context, w *domain.Workout) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return nil, domain.ErrNotReady
	}

	w.ID = newULID()
	w.CreatedAt = time.Now()
	if w.Date == "" {
		w.Date = time.Now().Format(domain.DateFormat)
	}
	s.workouts = append(s.workouts, w)

	logPersistErr("workouts", s.kv.Save(ctx, store.KeyWorkouts, s.workouts))
	return w, nil
}

// WorkoutUpdate carries the fields a partial update may touch.
type WorkoutUpdate struct {
	Name            *string                   `json:"name"`
	Date            *string                   `json:"date"`
	Type            *domain.WorkoutType       `json:"type"`
	Exercises       []*domain.WorkoutExercise `json:"exercises"`
	DurationMinutes *int                      `json:"duration_minutes"`
	OverallRPE      *int                      `json:"overall_rpe"`
	Notes           *string                   `json:"notes"`
	Completed       *bool                     `json:"completed"`
}

// UpdateWorkout shallow-merges the given fields into the matching
// workout. Unknown ids are a silent no-op.
func (s *TrainingStore) UpdateWorkout(ctx context.Context, id string, upd WorkoutUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	w := s.find(id)
	if w == nil {
		return nil
	}

	if upd.Name != nil {
		w.Name = *upd.Name
	}
	if upd.Date != nil {
		w.Date = *upd.Date
	}
	if upd.Type != nil {
		w.Type = *upd.Type
	}
	if upd.Exercises != nil {
		w.Exercises = upd.Exercises
	}
	if upd.DurationMinutes != nil {
		w.DurationMinutes = *upd.DurationMinutes
	}
	if upd.OverallRPE != nil {
		w.OverallRPE = *upd.OverallRPE
	}
	if upd.Notes != nil {
		w.Notes = *upd.Notes
	}
	if upd.Completed != nil {
		w.Completed = *upd.Completed
	}

	logPersistErr("workouts", s.kv.Save(ctx, store.KeyWorkouts, s.workouts))
	return nil
}

// DeleteWorkout removes the matching workout. Unknown ids are a silent
// no-op. Deleting the current workout clears the pointer.
func (s *TrainingStore) DeleteWorkout(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	for i, w := range s.workouts {
		if w.ID == id {
			s.workouts = append(s.workouts[:i], s.workouts[i+1:]...)
			if s.currentID == id {
				s.currentID = ""
			}
			logPersistErr("workouts", s.kv.Save(ctx, store.KeyWorkouts, s.workouts))
			return nil
		}
	}
	return nil
}

// StartWorkout points the container at the workout being performed.
// At most one workout is current at a time.
func (s *TrainingStore) StartWorkout(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}
	if s.find(id) == nil {
		return domain.ErrWorkoutNotFound
	}
	s.currentID = id
	return nil
}

// CompleteWorkout marks the workout completed with an optional RPE and
// notes, and clears the current-workout pointer regardless of which
// workout was current.
func (s *TrainingStore) CompleteWorkout(ctx context.Context, id string, rpe int, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	w := s.find(id)
	if w == nil {
		return nil
	}

	w.Completed = true
	if rpe > 0 {
		w.OverallRPE = rpe
	}
	if notes != "" {
		w.Notes = notes
	}
	s.currentID = ""

	logPersistErr("workouts", s.kv.Save(ctx, store.KeyWorkouts, s.workouts))
	return nil
}

// WorkoutsByDateRange returns workouts whose date falls inside the
// inclusive range.
func (s *TrainingStore) WorkoutsByDateRange(start, end string) []*domain.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Workout
	for _, w := range s.workouts {
		if w.Date >= start && w.Date <= end {
			out = append(out, w)
		}
	}
	return out
}

// Stats derives aggregate statistics over completed workouts.
func (s *TrainingStore) Stats() domain.TrainingStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeTrainingStats(s.workouts)
}

func (s *TrainingStore) find(id string) *domain.Workout {
	for _, w := range s.workouts {
		if w.ID == id {
			return w
		}
	}
	return nil
}
