// Package session owns the in-memory registry of itinerary sessions.
// Each session holds exactly one Itinerary, created empty at session start
// and discarded at session end. There is no cross-session persistence;
// export is a one-way serialization, not storage.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tripintel/tripintel/internal/domain"
)

// Session pairs an itinerary with the lock that serializes its operations.
// The itinerary is single-writer: every operation — including the provider
// calls it makes — runs to completion before the next one starts.
type Session struct {
	ID uuid.UUID

	mu        sync.Mutex
	itinerary *domain.Itinerary
}

// Do runs fn with exclusive access to the session's itinerary.
func (s *Session) Do(fn func(it *domain.Itinerary) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.itinerary)
}

// Store is the registry of live sessions. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewStore returns an empty registry.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

// Create registers a new session with an empty itinerary and returns it.
func (s *Store) Create() *Session {
	sess := &Session{ID: uuid.New(), itinerary: domain.NewItinerary()}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session with the given id.
// Returns domain.ErrNotFound for unknown ids.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	return sess, nil
}

// Discard removes the session and its itinerary.
// Returns domain.ErrNotFound for unknown ids.
func (s *Store) Discard(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}
