package state

import (
	"context"
	"sort"
	"sync"

	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/store"
)

// RecoveryStore owns the recovery-record collection.
type RecoveryStore struct {
	mu      sync.Mutex
	kv      store.Store
	status  Status
	records []*domain.RecoveryRecord
}

func NewRecoveryStore(kv store.Store) *RecoveryStore {
	return &RecoveryStore{kv: kv}
}

// Hydrate loads the record collection from the durable store, falling
// back to the seed dataset when absent or unreadable.
func (s *RecoveryStore) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusLoading

	var records []*domain.RecoveryRecord
	if err := s.kv.Load(ctx, store.KeyRecoveryRecords, &records); err != nil {
		if err != store.ErrNoRecord {
			logPersistErr("recovery-records (load)", err)
		}
		records = seedRecoveryRecords()
	}
	s.records = records

	s.status = StatusReady
	return nil
}

func (s *RecoveryStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Records returns the recovery collection.
func (s *RecoveryStore) Records() []*domain.RecoveryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.RecoveryRecord, len(s.records))
	copy(out, s.records)
	return out
}

// AddRecord appends a daily check-in.
func (s *RecoveryStore) AddRecord(ctx context.Context, r *domain.RecoveryRecord) (*domain.RecoveryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return nil, domain.ErrNotReady
	}

	r.ID = newULID()
	s.records = append(s.records, r)

	logPersistErr("recovery-records", s.kv.Save(ctx, store.KeyRecoveryRecords, s.records))
	return r, nil
}

// DeleteRecord removes the matching record. Unknown ids are a silent
// no-op.
func (s *RecoveryStore) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady {
		return domain.ErrNotReady
	}

	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			logPersistErr("recovery-records", s.kv.Save(ctx, store.KeyRecoveryRecords, s.records))
			return nil
		}
	}
	return nil
}

// RecordsByDateRange returns records whose date falls inside the
// inclusive range, oldest first.
func (s *RecoveryStore) RecordsByDateRange(start, end string) []*domain.RecoveryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.RecoveryRecord
	for _, r := range s.records {
		if r.Date >= start && r.Date <= end {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Trend derives the recovery trend over the whole collection, oldest
// first.
func (s *RecoveryStore) Trend() domain.RecoveryTrend {
	s.mu.Lock()
	defer s.mu.Unlock()

	ordered := make([]*domain.RecoveryRecord, len(s.records))
	copy(ordered, s.records)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })
	return domain.ComputeRecoveryTrend(ordered)
}
