package services

import (
	"sync"

	"github.com/dmitrijs2005/estately/internal/canonid"
	"github.com/dmitrijs2005/estately/internal/models"
)

// SessionStore holds listings that could not be written to the remote store.
// It lives for the process lifetime only; records here are lost on restart.
// Owned by the composition root and injected, so tests can swap it out.
type SessionStore struct {
	mu    sync.Mutex
	items []models.Property
}

// NewSessionStore returns an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Add appends a listing to the session collection.
func (s *SessionStore) Add(p models.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, p)
}

// Published returns a copy of all published session listings.
func (s *SessionStore) Published() []models.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.Property, 0, len(s.items))
	for _, p := range s.items {
		if p.Published {
			result = append(result, p)
		}
	}
	return result
}

// Get returns the session listing matching id under normalization, or nil.
func (s *SessionStore) Get(id string) *models.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.items {
		if canonid.Equal(p.ID, id) {
			found := p
			return &found
		}
	}
	return nil
}
