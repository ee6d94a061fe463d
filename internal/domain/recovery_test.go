package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRecoveryTrendEmpty(t *testing.T) {
	trend := ComputeRecoveryTrend(nil)
	assert.Equal(t, "steady", trend.Direction)
	assert.Zero(t, trend.Records)
	assert.Zero(t, trend.AverageSleep)
}

func TestComputeRecoveryTrendSingleRecord(t *testing.T) {
	trend := ComputeRecoveryTrend([]*RecoveryRecord{
		{Date: "2026-08-01", SleepHours: 8, SorenessLevel: 3, EnergyLevel: 7},
	})
	assert.Equal(t, 1, trend.Records)
	assert.Equal(t, "steady", trend.Direction)
	assert.InDelta(t, 8.0, trend.AverageSleep, 0.0001)
	assert.InDelta(t, 3.0, trend.AverageSoreness, 0.0001)
	assert.InDelta(t, 7.0, trend.AverageEnergy, 0.0001)
}

func TestComputeRecoveryTrendImproving(t *testing.T) {
	trend := ComputeRecoveryTrend([]*RecoveryRecord{
		{Date: "2026-08-01", SleepHours: 6, SorenessLevel: 7, EnergyLevel: 4},
		{Date: "2026-08-02", SleepHours: 6.5, SorenessLevel: 6, EnergyLevel: 5},
		{Date: "2026-08-03", SleepHours: 8, SorenessLevel: 3, EnergyLevel: 8},
		{Date: "2026-08-04", SleepHours: 8.5, SorenessLevel: 2, EnergyLevel: 9},
	})
	assert.Equal(t, "improving", trend.Direction)
}

func TestComputeRecoveryTrendDeclining(t *testing.T) {
	trend := ComputeRecoveryTrend([]*RecoveryRecord{
		{Date: "2026-08-01", SleepHours: 8.5, SorenessLevel: 2, EnergyLevel: 9},
		{Date: "2026-08-02", SleepHours: 8, SorenessLevel: 3, EnergyLevel: 8},
		{Date: "2026-08-03", SleepHours: 6, SorenessLevel: 7, EnergyLevel: 4},
		{Date: "2026-08-04", SleepHours: 5.5, SorenessLevel: 8, EnergyLevel: 3},
	})
	assert.Equal(t, "declining", trend.Direction)
}

func TestComputeRecoveryTrendSteadyWithinThreshold(t *testing.T) {
	trend := ComputeRecoveryTrend([]*RecoveryRecord{
		{Date: "2026-08-01", SleepHours: 8, SorenessLevel: 3, EnergyLevel: 7},
		{Date: "2026-08-02", SleepHours: 8, SorenessLevel: 3, EnergyLevel: 7},
	})
	assert.Equal(t, "steady", trend.Direction)
}
