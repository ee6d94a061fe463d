package domain

import "time"

// Achievement titles unlocked by the goal container. The title is the
// identity of an achievement: unlocking the same title twice is a no-op.
const (
	AchievementFirstGoal           = "First Goal"
	AchievementGoalCrusher         = "Goal Crusher"
	AchievementSpeedDemon          = "Speed Demon"
	AchievementDistanceRunner      = "Distance Runner"
	AchievementConsistentPerformer = "Consistent Performer"
	AchievementPersonalBest        = "Personal Best"
)

// Achievement is an unlocked badge.
type Achievement struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"` // unique key
	Description string    `json:"description" bson:"description"`
	Icon        string    `json:"icon,omitempty" bson:"icon,omitempty"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	GoalID      string    `json:"goal_id,omitempty" bson:"goal_id,omitempty"` // originating goal, if any
	UnlockedAt  time.Time `json:"unlocked_at" bson:"unlocked_at"`
}
