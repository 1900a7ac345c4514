package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Abdeldjalil-bch/anomal/internal/dataset"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrStoreFull = errors.New("too many active sessions")
)

// Store is the in-memory session registry. Access is guarded by a mutex;
// a background sweeper drops sessions idle past the TTL.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int

	// now is swappable for tests.
	now func() time.Time
}

// NewStore creates a session store. max caps the number of live sessions;
// ttl is the idle lifetime before a session is swept.
func NewStore(ttl time.Duration, max int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
	}
}

// Create registers a new session owning the given table.
func (s *Store) Create(t *dataset.Table) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max > 0 && len(s.sessions) >= s.max {
		return nil, ErrStoreFull
	}
	sess := newSession(t, s.now())
	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns a live session and refreshes its idle timer.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess.LastSeen = s.now()
	return sess, nil
}

// Replace swaps the table of an existing session, discarding the old one.
// Used when a user uploads a new file into the same browser session.
func (s *Store) Replace(id string, t *dataset.Table) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess.Table = t
	sess.LastSeen = s.now()
	return sess, nil
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep runs until ctx is cancelled, evicting sessions idle past the TTL
// at every interval.
func (s *Store) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.evictExpired(); n > 0 {
				slog.Debug("sessions expired", "count", n)
			}
		}
	}
}

func (s *Store) evictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}
