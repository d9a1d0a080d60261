/*
session implements stores for conversation sessions, in memory and as
JSON files in a directory.
*/
package session

import (
	"sort"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	meteo "github.com/mutablelogic/go-meteo"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// newSession validates meta and returns a new session with a unique ID,
// empty conversation, and timestamps set to now
func newSession(meta schema.SessionMeta) (*schema.Session, error) {
	if meta.Model == "" {
		return nil, meteo.ErrBadParameter.With("model name is required")
	}
	now := time.Now()
	return &schema.Session{
		ID:          uuid.New().String(),
		SessionMeta: meta,
		Messages:    make(schema.Conversation, 0),
		Created:     now,
		Modified:    now,
	}, nil
}

// validateId returns ErrBadParameter unless id is a session identifier
func validateId(id string) error {
	if err := uuid.Validate(id); err != nil {
		return meteo.ErrBadParameter.Withf("invalid session id %q", id)
	}
	return nil
}

// paginate returns a slice of items bounded by offset and limit, along with
// the total count of items before pagination
func paginate[T any](items []T, offset uint, limit *uint) ([]T, uint) {
	total := uint(len(items))
	start := min(offset, total)
	end := total
	if limit != nil && *limit < total-start {
		end = start + *limit
	}
	return items[start:end], total
}

// list returns a page of sessions, most recently modified first
func list(sessions []*schema.Session, req schema.ListSessionRequest) *schema.ListSessionResponse {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Modified.After(sessions[j].Modified)
	})
	body, total := paginate(sessions, req.Offset, req.Limit)
	return &schema.ListSessionResponse{
		Count:  total,
		Offset: req.Offset,
		Limit:  req.Limit,
		Body:   body,
	}
}
