package domain

import (
	"context"
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

type Role string

const (
	RoleCoach   Role = "coach"
	RoleAthlete Role = "athlete"
)

type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "Beginner"
	LevelIntermediate ExperienceLevel = "Intermediate"
	LevelAdvanced     ExperienceLevel = "Advanced"
	LevelPro          ExperienceLevel = "Pro"
)

// PersonalRecord is an athlete's best recorded result for an event.
// Only the best per event is kept; a new record overwrites the old one.
type PersonalRecord struct {
	Value    float64 `json:"value" bson:"value"`
	Date     string  `json:"date" bson:"date"`
	Location string  `json:"location,omitempty" bson:"location,omitempty"`
}

// UserProfile is the acting user. Role is a view-mode toggle between
// coach and athlete, not an authorization boundary.
type UserProfile struct {
	ID               string                     `json:"id" bson:"_id,omitempty"`
	FirebaseUID      string                     `json:"firebase_uid,omitempty" bson:"firebase_uid,omitempty"`
	Email            string                     `json:"email,omitempty" bson:"email,omitempty"`
	Username         string                     `json:"username" bson:"username"`
	Age              int                        `json:"age" bson:"age"`
	PrimaryEvents    []string                   `json:"primary_events" bson:"primary_events"`
	ExperienceLevels map[string]ExperienceLevel `json:"experience_levels,omitempty" bson:"experience_levels,omitempty"`
	PersonalRecords  map[string]PersonalRecord  `json:"personal_records,omitempty" bson:"personal_records,omitempty"`
	JoinDate         string                     `json:"join_date" bson:"join_date"`
	Role             Role                       `json:"role" bson:"role"`
	CoachCode        string                     `json:"coach_code,omitempty" bson:"coach_code,omitempty"`
	AvatarURL        string                     `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	CreatedAt        time.Time                  `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at" bson:"updated_at"`
}

// IsComplete reports whether the profile carries the minimum identity
// needed to unlock the rest of the app.
func (p *UserProfile) IsComplete() bool {
	return p.Username != "" && p.Age > 0 && len(p.PrimaryEvents) > 0
}

// ProfileRepository defines remote persistence for user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *UserProfile) error
	GetByID(ctx context.Context, id string) (*UserProfile, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*UserProfile, error)
	GetByCoachCode(ctx context.Context, code string) (*UserProfile, error)
	Update(ctx context.Context, profile *UserProfile) error
	UpdateFirebaseUID(ctx context.Context, profileID, firebaseUID string) error
	SetCoachCode(ctx context.Context, profileID, code string) error
	SetAvatarURL(ctx context.Context, profileID, url string) error
}
