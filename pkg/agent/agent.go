/*
agent drives a language model through a tool-calling loop within a
conversation session, and extracts a structured answer from each turn.
*/
package agent

import (
	"log/slog"

	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	session "github.com/mutablelogic/go-meteo/pkg/session"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Agent struct {
	generator     meteo.Generator
	model         schema.Model
	toolkit       *tool.Toolkit
	store         schema.SessionStore
	contract      OutputContract
	opts          []opt.Opt
	maxIterations uint
	parallel      int
	tracer        trace.Tracer
	logger        *slog.Logger
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultMaxIterations = 10
	defaultParallel      = 4
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns an agent which generates responses with the given model. By
// default there are no tools, sessions are kept in memory and structured
// answers are submitted through an output tool.
func New(generator meteo.Generator, model schema.Model, opts ...Opt) (*Agent, error) {
	if generator == nil {
		return nil, meteo.ErrBadParameter.With("generator is required")
	}
	if model.Name == "" {
		return nil, meteo.ErrBadParameter.With("model is required")
	}
	toolkit, err := tool.NewToolkit()
	if err != nil {
		return nil, err
	}

	self := &Agent{
		generator:     generator,
		model:         model,
		toolkit:       toolkit,
		store:         session.NewMemoryStore(),
		contract:      ToolOutput{},
		maxIterations: DefaultMaxIterations,
		parallel:      defaultParallel,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(self); err != nil {
			return nil, err
		}
	}
	return self, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Model returns the default model for new sessions
func (a *Agent) Model() schema.Model {
	return a.model
}

// Toolkit returns the tools available to the model
func (a *Agent) Toolkit() *tool.Toolkit {
	return a.toolkit
}

// Store returns the session store
func (a *Agent) Store() schema.SessionStore {
	return a.store
}
