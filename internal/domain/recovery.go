package domain

// RecoveryRecord is a daily self-reported recovery check-in.
type RecoveryRecord struct {
	ID               string  `json:"id" bson:"_id,omitempty"`
	Date             string  `json:"date" bson:"date"`
	SleepHours       float64 `json:"sleep_hours" bson:"sleep_hours"`
	RestingHeartRate int     `json:"resting_heart_rate,omitempty" bson:"resting_heart_rate,omitempty"`
	SorenessLevel    int     `json:"soreness_level" bson:"soreness_level"` // 1-10, higher is worse
	EnergyLevel      int     `json:"energy_level" bson:"energy_level"`     // 1-10, higher is better
	Notes            string  `json:"notes,omitempty" bson:"notes,omitempty"`
}

// RecoveryTrend summarizes a window of recovery records. Direction
// compares the second half of the window against the first.
type RecoveryTrend struct {
	Records          int     `json:"records"`
	AverageSleep     float64 `json:"average_sleep"`
	AverageSoreness  float64 `json:"average_soreness"`
	AverageEnergy    float64 `json:"average_energy"`
	Direction        string  `json:"direction"` // improving | declining | steady
}

// ComputeRecoveryTrend derives the recovery trend from a record window,
// assumed ordered oldest first. Empty input yields a steady trend with
// zero averages.
func ComputeRecoveryTrend(records []*RecoveryRecord) RecoveryTrend {
	trend := RecoveryTrend{Direction: "steady"}
	if len(records) == 0 {
		return trend
	}

	trend.Records = len(records)
	var sleep, soreness, energy float64
	for _, r := range records {
		sleep += r.SleepHours
		soreness += float64(r.SorenessLevel)
		energy += float64(r.EnergyLevel)
	}
	n := float64(len(records))
	trend.AverageSleep = sleep / n
	trend.AverageSoreness = soreness / n
	trend.AverageEnergy = energy / n

	if len(records) < 2 {
		return trend
	}

	mid := len(records) / 2
	firstHalf := recoveryScore(records[:mid])
	secondHalf := recoveryScore(records[mid:])
	switch {
	case secondHalf > firstHalf+0.25:
		trend.Direction = "improving"
	case secondHalf < firstHalf-0.25:
		trend.Direction = "declining"
	}
	return trend
}

// recoveryScore condenses a record slice into a single comparable
// number: energy and sleep push it up, soreness pulls it down.
func recoveryScore(records []*RecoveryRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var total float64
	for _, r := range records {
		total += float64(r.EnergyLevel) + r.SleepHours - float64(r.SorenessLevel)
	}
	return total / float64(len(records))
}
