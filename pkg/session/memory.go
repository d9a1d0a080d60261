package session

import (
	"context"
	"sync"
	"time"

	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// MemoryStore keeps sessions for the lifetime of the process. It is safe for
// concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*schema.Session
}

var _ schema.SessionStore = (*MemoryStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*schema.Session),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Create creates a new session with a unique ID and returns it
func (m *MemoryStore) Create(_ context.Context, meta schema.SessionMeta) (*schema.Session, error) {
	s, err := newSession(meta)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s

	return s, nil
}

// Get returns a session by ID
func (m *MemoryStore) Get(_ context.Context, id string) (*schema.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.sessions[id]
	if !exists {
		return nil, meteo.ErrNotFound.Withf("session %q", id)
	}
	return s, nil
}

// List returns sessions, most recently modified first
func (m *MemoryStore) List(_ context.Context, req schema.ListSessionRequest) (*schema.ListSessionResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*schema.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, s)
	}
	return list(result, req), nil
}

// Delete removes a session by ID
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return meteo.ErrNotFound.Withf("session %q", id)
	}
	delete(m.sessions, id)
	return nil
}

// Write replaces the stored session and updates its modified time. The
// session must have been created by this store.
func (m *MemoryStore) Write(s *schema.Session) error {
	if s == nil {
		return meteo.ErrBadParameter.With("session is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.ID]; !exists {
		return meteo.ErrNotFound.Withf("session %q", s.ID)
	}
	s.Modified = time.Now()
	m.sessions[s.ID] = s
	return nil
}
