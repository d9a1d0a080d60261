package meteo

import (
	"context"

	// Packages
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is the interface that wraps basic LLM client methods
type Client interface {
	// Return the provider name
	Name() string

	// ListModels returns the list of available models
	ListModels(ctx context.Context, opts ...opt.Opt) ([]schema.Model, error)

	// GetModel returns the model with the given name
	GetModel(ctx context.Context, name string, opts ...opt.Opt) (*schema.Model, error)
}

// Generator sends messages within a conversation
type Generator interface {
	// WithSession appends the message to the conversation, sends it and appends
	// the response (stateful)
	WithSession(ctx context.Context, model schema.Model, conversation *schema.Conversation, message *schema.Message, opts ...opt.Opt) (*schema.Message, *schema.Usage, error)
}
