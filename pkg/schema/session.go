package schema

import (
	"context"
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// GeneratorMeta holds the parameters used to generate responses within a
// session
type GeneratorMeta struct {
	Provider     string     `json:"provider,omitempty" yaml:"provider"`
	Model        string     `json:"model" yaml:"model"`
	SystemPrompt string     `json:"system_prompt,omitempty" yaml:"system_prompt"`
	Temperature  *float64   `json:"temperature,omitempty" yaml:"temperature"`
	MaxTokens    uint       `json:"max_tokens,omitempty" yaml:"max_tokens"`
	Format       JSONSchema `json:"format,omitempty" yaml:"format"`
}

// SessionMeta describes a session, without its messages
type SessionMeta struct {
	Name string `json:"name,omitempty"`
	GeneratorMeta
}

// Session is a conversation with its history, owned by the caller and
// persisted through a SessionStore
type Session struct {
	ID string `json:"id"`
	SessionMeta
	Messages Conversation `json:"messages"`
	Created  time.Time    `json:"created"`
	Modified time.Time    `json:"modified"`
}

// ListSessionRequest represents a request to list sessions
type ListSessionRequest struct {
	Limit  *uint `json:"limit,omitempty"`
	Offset uint  `json:"offset,omitempty"`
}

// ListSessionResponse represents a page of sessions
type ListSessionResponse struct {
	Count  uint       `json:"count"`
	Offset uint       `json:"offset,omitzero"`
	Limit  *uint      `json:"limit,omitzero"`
	Body   []*Session `json:"body,omitzero"`
}

// SessionStore is the interface for session storage backends
type SessionStore interface {
	// Create creates a new session with a unique ID
	Create(ctx context.Context, meta SessionMeta) (*Session, error)

	// Get retrieves a session by ID, returning ErrNotFound if it does not exist
	Get(ctx context.Context, id string) (*Session, error)

	// List returns sessions ordered by last modified time, most recent first
	List(ctx context.Context, req ListSessionRequest) (*ListSessionResponse, error)

	// Delete removes a session by ID
	Delete(ctx context.Context, id string) error

	// Write persists the current state of a session
	Write(s *Session) error
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (s Session) String() string {
	return types.Stringify(s)
}

func (m SessionMeta) String() string {
	return types.Stringify(m)
}

func (r ListSessionResponse) String() string {
	return types.Stringify(r)
}
