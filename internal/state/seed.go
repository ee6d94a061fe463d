package state

import (
	"time"

	"github.com/strideworks/trackside/internal/domain"
)

// Seed datasets adopted on first load when the durable store holds
// nothing (or holds something unreadable) for a collection.

func floatPtr(v float64) *float64 { return &v }

func seedGoals() []*domain.Goal {
	today := time.Now().Format(domain.DateFormat)
	season := time.Now().AddDate(0, 4, 0).Format(domain.DateFormat)

	return []*domain.Goal{
		{
			ID:           "goal-seed-100m",
			Title:        "Break 12 seconds in the 100m",
			Category:     domain.CategoryPerformance,
			Type:         domain.MetricTime,
			Event:        "100m",
			TargetValue:  floatPtr(11.99),
			CurrentValue: floatPtr(12.40),
			Unit:         "seconds",
			TargetDate:   season,
			Status:       domain.GoalActive,
			Priority:     "High",
			Milestones: []*domain.Milestone{
				{ID: "ms-seed-1", Title: "Consistent sub-12.3", TargetValue: 12.3, TargetDate: season},
			},
			CreatedAt: today,
		},
		{
			ID:          "goal-seed-frequency",
			Title:       "Train four times a week",
			Category:    domain.CategoryTraining,
			Type:        domain.MetricFrequency,
			TargetValue: floatPtr(4),
			Unit:        "sessions/week",
			TargetDate:  season,
			Status:      domain.GoalActive,
			Priority:    "Medium",
			CreatedAt:   today,
		},
	}
}

func seedWorkouts() []*domain.Workout {
	yesterday := time.Now().AddDate(0, 0, -1).Format(domain.DateFormat)

	return []*domain.Workout{
		{
			ID:   newULID(),
			Name: "Block starts and accelerations",
			Date: yesterday,
			Type: domain.WorkoutSpeed,
			Exercises: []*domain.WorkoutExercise{
				{
					Name: "Block Start",
					Sets: []*domain.ExerciseSet{
						{SetIndex: 1, Distance: 30, RestSeconds: 180},
						{SetIndex: 2, Distance: 30, RestSeconds: 180},
						{SetIndex: 3, Distance: 60, RestSeconds: 240},
					},
				},
			},
			DurationMinutes: 75,
			OverallRPE:      7,
			Completed:       true,
			CreatedAt:       time.Now(),
		},
	}
}

func seedProfile() *domain.UserProfile {
	return &domain.UserProfile{
		ID:            "profile-seed",
		Username:      "athlete",
		PrimaryEvents: []string{"100m"},
		ExperienceLevels: map[string]domain.ExperienceLevel{
			"100m": domain.LevelIntermediate,
		},
		PersonalRecords: map[string]domain.PersonalRecord{},
		JoinDate:        time.Now().Format(domain.DateFormat),
		Role:            domain.RoleAthlete,
		CreatedAt:       time.Now(),
	}
}

func seedRecoveryRecords() []*domain.RecoveryRecord {
	yesterday := time.Now().AddDate(0, 0, -1).Format(domain.DateFormat)

	return []*domain.RecoveryRecord{
		{
			ID:            newULID(),
			Date:          yesterday,
			SleepHours:    7.5,
			SorenessLevel: 3,
			EnergyLevel:   7,
		},
	}
}
