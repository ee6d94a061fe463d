package state

import (
	"context"
	"sync"
	"time"

	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/store"
)

// ProfileStore owns the single active user profile.
type ProfileStore struct {
	mu      sync.Mutex
	kv      store.Store
	status  Status
	profile *domain.UserProfile
}

func NewProfileStore(kv store.Store) *ProfileStore {
	return &ProfileStore{kv: kv}
}

// Hydrate loads the profile from the durable store, falling back to the
// seed profile when absent or unreadable.
func (s *ProfileStore) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusLoading

	var profile domain.UserProfile
	if err := s.kv.Load(ctx, store.KeyUserProfile, &profile); err != nil {
		if err != store.ErrNoRecord {
			logPersistErr("user-profile (load)", err)
		}
		s.profile = seedProfile()
	} else {
		s.profile = &profile
	}

	s.status = StatusReady
	return nil
}

func (s *ProfileStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Profile returns the active profile, or nil before hydration.
func (s *ProfileStore) Profile() *domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// ProfileUpdate carries the fields a partial update may touch.
type ProfileUpdate struct {
	Username      *string      `json:"username"`
	Age           *int         `json:"age"`
	PrimaryEvents []string     `json:"primary_events"`
	Role          *domain.Role `json:"role"`
}

// UpdateUser shallow-merges the given fields into the profile.
func (s *ProfileStore) UpdateUser(ctx context.Context, upd ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	if upd.Username != nil {
		s.profile.Username = *upd.Username
	}
	if upd.Age != nil {
		s.profile.Age = *upd.Age
	}
	if upd.PrimaryEvents != nil {
		s.profile.PrimaryEvents = upd.PrimaryEvents
	}
	if upd.Role != nil {
		s.profile.Role = *upd.Role
	}
	s.profile.UpdatedAt = time.Now()

	logPersistErr("user-profile", s.kv.Save(ctx, store.KeyUserProfile, s.profile))
	return nil
}

// UpdateExperienceLevel sets the experience level for one event.
func (s *ProfileStore) UpdateExperienceLevel(ctx context.Context, event string, level domain.ExperienceLevel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	if s.profile.ExperienceLevels == nil {
		s.profile.ExperienceLevels = make(map[string]domain.ExperienceLevel)
	}
	s.profile.ExperienceLevels[event] = level
	s.profile.UpdatedAt = time.Now()

	logPersistErr("user-profile", s.kv.Save(ctx, store.KeyUserProfile, s.profile))
	return nil
}

// UpdatePersonalRecord overwrites the stored record for an event. No
// history is kept; only the best per event matters.
func (s *ProfileStore) UpdatePersonalRecord(ctx context.Context, event string, value float64, date, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	if s.profile.PersonalRecords == nil {
		s.profile.PersonalRecords = make(map[string]domain.PersonalRecord)
	}
	s.profile.PersonalRecords[event] = domain.PersonalRecord{
		Value:    value,
		Date:     date,
		Location: location,
	}
	s.profile.UpdatedAt = time.Now()

	logPersistErr("user-profile", s.kv.Save(ctx, store.KeyUserProfile, s.profile))
	return nil
}

// SwitchRole toggles the coach/athlete view mode.
func (s *ProfileStore) SwitchRole(ctx context.Context, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	s.profile.Role = role
	s.profile.UpdatedAt = time.Now()

	logPersistErr("user-profile", s.kv.Save(ctx, store.KeyUserProfile, s.profile))
	return nil
}

// SetAvatarURL records the uploaded avatar's public URL.
func (s *ProfileStore) SetAvatarURL(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	s.profile.AvatarURL = url
	s.profile.UpdatedAt = time.Now()

	logPersistErr("user-profile", s.kv.Save(ctx, store.KeyUserProfile, s.profile))
	return nil
}

// IsAuthenticated reports whether a profile has been loaded.
func (s *ProfileStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile != nil
}

// IsProfileComplete reports whether the profile carries username, age
// and at least one primary event.
func (s *ProfileStore) IsProfileComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile != nil && s.profile.IsComplete()
}

func (s *ProfileStore) IsCoach() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile != nil && s.profile.Role == domain.RoleCoach
}

func (s *ProfileStore) IsAthlete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile != nil && s.profile.Role == domain.RoleAthlete
}
