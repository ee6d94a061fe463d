// Package state holds the injected state containers. Each container
// owns one slice of domain state, hydrates it from the durable store
// (or a built-in seed on first run), and writes every change through
// immediately. Mutations require a hydrated container.
package state

import (
	"crypto/rand"
	"log"
	"time"

	"github.com/oklog/ulid/v2"
)

// Status is the lifecycle of a state container.
type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// newULID creates a new ULID string for synthetic identifiers.
func newULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// logPersistErr reports a failed write-through. Persistence is
// fire-and-forget: the in-memory mutation stands either way.
func logPersistErr(collection string, err error) {
	if err != nil {
		log.Printf("Warning: failed to persist %s: %v", collection, err)
	}
}
