// Package session holds the per-user analysis state: one uploaded table
// per session, identified by a uuid. There is no persistence; a session
// lives in process memory until it expires or its table is replaced by a
// new upload.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/Abdeldjalil-bch/anomal/internal/dataset"
)

// Session binds one uploaded table to one user. Classification results
// are never stored here; they are recomputed on demand from the table.
type Session struct {
	ID        string
	Table     *dataset.Table
	CreatedAt time.Time
	LastSeen  time.Time
}

func newSession(t *dataset.Table, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Table:     t,
		CreatedAt: now,
		LastSeen:  now,
	}
}
