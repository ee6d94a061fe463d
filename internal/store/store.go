// Package store is the durable key-value layer behind the state
// containers. Each logical collection is one JSON document under a
// fixed key; collections are saved independently with no cross-key
// transactionality.
package store

import (
	"context"
	"errors"
)

// Collection keys.
const (
	KeyGoals           = "goals"
	KeyAchievements    = "achievements"
	KeyWorkouts        = "workouts"
	KeyUserProfile     = "user-profile"
	KeyRecoveryRecords = "recovery-records"
)

// ErrNoRecord is returned by Load when nothing is stored under the key.
var ErrNoRecord = errors.New("no stored record")

// Store reads and writes JSON-serialized collections. Load returns
// ErrNoRecord for an absent key; any other error (including a malformed
// stored value) means the caller should fall back to its seed data.
type Store interface {
	Load(ctx context.Context, key string, dest interface{}) error
	Save(ctx context.Context, key string, value interface{}) error
}
