package domain

import "errors"

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
)

// DateFormat is the calendar-date layout used for goal deadlines,
// workout dates and recovery records. Plain lexicographic comparison
// of two dates in this layout matches chronological order.
const DateFormat = "2006-01-02"

type GoalCategory string

const (
	CategoryPerformance GoalCategory = "Performance"
	CategoryTraining    GoalCategory = "Training"
	CategoryHealth      GoalCategory = "Health"
	CategorySkill       GoalCategory = "Skill"
)

type MetricType string

const (
	MetricTime        MetricType = "Time"
	MetricDistance    MetricType = "Distance"
	MetricFrequency   MetricType = "Frequency"
	MetricTechnique   MetricType = "Technique"
	MetricCompetition MetricType = "Competition"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "Active"
	GoalCompleted GoalStatus = "Completed"
	GoalPaused    GoalStatus = "Paused"
	GoalMissed    GoalStatus = "Missed"
)

// Milestone is a sub-checkpoint owned by its parent goal. It has no
// lifecycle of its own.
type Milestone struct {
	ID            string  `json:"id" bson:"id"`
	Title         string  `json:"title" bson:"title"`
	TargetValue   float64 `json:"target_value" bson:"target_value"`
	TargetDate    string  `json:"target_date" bson:"target_date"`
	Completed     bool    `json:"completed" bson:"completed"`
	CompletedDate string  `json:"completed_date,omitempty" bson:"completed_date,omitempty"`
	Notes         string  `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Goal is a target outcome an athlete is working toward, e.g. running
// the 100m under 11 seconds by the end of the season.
type Goal struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	Title        string       `json:"title" bson:"title"`
	Description  string       `json:"description,omitempty" bson:"description,omitempty"`
	Category     GoalCategory `json:"category" bson:"category"`
	Type         MetricType   `json:"type" bson:"type"`
	Event        string       `json:"event,omitempty" bson:"event,omitempty"` // e.g. "100m", "Long Jump"
	TargetValue  *float64     `json:"target_value,omitempty" bson:"target_value,omitempty"`
	CurrentValue *float64     `json:"current_value,omitempty" bson:"current_value,omitempty"`
	Unit         string       `json:"unit,omitempty" bson:"unit,omitempty"`
	TargetDate   string       `json:"target_date,omitempty" bson:"target_date,omitempty"`
	Status       GoalStatus   `json:"status" bson:"status"`
	Priority     string       `json:"priority,omitempty" bson:"priority,omitempty"` // High | Medium | Low
	Milestones   []*Milestone `json:"milestones,omitempty" bson:"milestones,omitempty"`
	Notes        string       `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    string       `json:"created_at" bson:"created_at"`
}

// sprint and distance running events, used for achievement unlocks
var (
	sprintEvents   = map[string]bool{"100m": true, "200m": true, "400m": true}
	distanceEvents = map[string]bool{"800m": true, "1500m": true, "5000m": true}
)

// IsSprintEvent reports whether the goal targets a sprint event.
func (g *Goal) IsSprintEvent() bool { return sprintEvents[g.Event] }

// IsDistanceEvent reports whether the goal targets a distance running event.
func (g *Goal) IsDistanceEvent() bool { return distanceEvents[g.Event] }

// TargetReached applies the metric's direction rule: for Time metrics a
// lower value is better, for everything else a higher value is better.
func (g *Goal) TargetReached(current float64) bool {
	if g.TargetValue == nil {
		return false
	}
	if g.Type == MetricTime {
		return current <= *g.TargetValue
	}
	return current >= *g.TargetValue
}

// ProgressPercentage computes how far along the goal is, clamped to
// [0,100]. Returns 0 when either value is missing. For Time metrics the
// target being reached (current <= target) counts as 100; short of that
// the improvement ratio is measured against the remaining gap.
func (g *Goal) ProgressPercentage() float64 {
	if g.TargetValue == nil || g.CurrentValue == nil {
		return 0
	}
	target := *g.TargetValue
	current := *g.CurrentValue

	if g.Type == MetricTime {
		if current <= target {
			return 100
		}
		improvement := current - target
		total := current - target
		return clampPercent((1 - improvement/total) * 100)
	}

	if target == 0 {
		return 0
	}
	return clampPercent(current / target * 100)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
