package agent

import (
	"context"

	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateSession starts a new conversation. The agent model is used when the
// meta does not name one.
func (a *Agent) CreateSession(ctx context.Context, meta schema.SessionMeta) (*schema.Session, error) {
	if meta.Model == "" {
		meta.Model = a.model.Name
		if meta.Provider == "" {
			meta.Provider = a.model.OwnedBy
		}
	}
	session, err := a.store.Create(ctx, meta)
	if err != nil {
		return nil, err
	}
	a.logger.DebugContext(ctx, "session created", "session", session.ID, "model", session.Model)
	return session, nil
}

// ResumeSession returns an existing conversation
func (a *Agent) ResumeSession(ctx context.Context, id string) (*schema.Session, error) {
	if id == "" {
		return nil, meteo.ErrBadParameter.With("session id is required")
	}
	session, err := a.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	a.logger.DebugContext(ctx, "session resumed", "session", session.ID, "messages", len(session.Messages))
	return session, nil
}

// DestroySession removes a conversation and its history
func (a *Agent) DestroySession(ctx context.Context, session *schema.Session) error {
	if session == nil {
		return meteo.ErrBadParameter.With("session is required")
	}
	if err := a.store.Delete(ctx, session.ID); err != nil {
		return err
	}
	a.logger.DebugContext(ctx, "session destroyed", "session", session.ID)
	return nil
}
