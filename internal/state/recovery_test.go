package state

import (
	"context"
	"testing"

	"github.com/strideworks/trackside/internal/domain"
	"github.com/strideworks/trackside/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadyRecoveryStore(t *testing.T) *RecoveryStore {
	t.Helper()
	kv, _ := newTestKV(t)
	seedEmpty(t, kv, store.KeyRecoveryRecords)

	s := NewRecoveryStore(kv)
	require.NoError(t, s.Hydrate(context.Background()))
	return s
}

func TestRecoveryHydrateSeedsWhenEmpty(t *testing.T) {
	kv, _ := newTestKV(t)
	s := NewRecoveryStore(kv)
	require.NoError(t, s.Hydrate(context.Background()))
	assert.Len(t, s.Records(), 1)
}

func TestAddRecord(t *testing.T) {
	s := newReadyRecoveryStore(t)

	created, err := s.AddRecord(context.Background(), &domain.RecoveryRecord{
		Date:          "2026-08-28",
		SleepHours:    8,
		SorenessLevel: 2,
		EnergyLevel:   8,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, s.Records(), 1)
}

func TestDeleteRecord(t *testing.T) {
	s := newReadyRecoveryStore(t)
	ctx := context.Background()

	created, err := s.AddRecord(ctx, &domain.RecoveryRecord{Date: "2026-08-28", SleepHours: 7})
	require.NoError(t, err)

	require.NoError(t, s.DeleteRecord(ctx, created.ID))
	assert.Empty(t, s.Records())
	assert.NoError(t, s.DeleteRecord(ctx, "missing"))
}

func TestRecordsByDateRange(t *testing.T) {
	s := newReadyRecoveryStore(t)
	ctx := context.Background()

	for _, date := range []string{"2026-08-20", "2026-08-05", "2026-08-12"} {
		_, err := s.AddRecord(ctx, &domain.RecoveryRecord{Date: date, SleepHours: 7})
		require.NoError(t, err)
	}

	got := s.RecordsByDateRange("2026-08-05", "2026-08-12")
	require.Len(t, got, 2)
	assert.Equal(t, "2026-08-05", got[0].Date)
	assert.Equal(t, "2026-08-12", got[1].Date)
}

func TestRecoveryTrendOrdersByDate(t *testing.T) {
	s := newReadyRecoveryStore(t)
	ctx := context.Background()

	// Inserted out of order; the trend must sort by date before
	// splitting the window.
	records := []*domain.RecoveryRecord{
		{Date: "2026-08-04", SleepHours: 8.5, SorenessLevel: 2, EnergyLevel: 9},
		{Date: "2026-08-01", SleepHours: 6, SorenessLevel: 7, EnergyLevel: 4},
		{Date: "2026-08-03", SleepHours: 8, SorenessLevel: 3, EnergyLevel: 8},
		{Date: "2026-08-02", SleepHours: 6.5, SorenessLevel: 6, EnergyLevel: 5},
	}
	for _, r := range records {
		_, err := s.AddRecord(ctx, r)
		require.NoError(t, err)
	}

	trend := s.Trend()
	assert.Equal(t, 4, trend.Records)
	assert.Equal(t, "improving", trend.Direction)
}
