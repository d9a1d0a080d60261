package agent

import (
	"log/slog"

	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring the agent
type Opt func(*Agent) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithTools registers tools the model may call
func WithTools(tools ...tool.Tool) Opt {
	return func(a *Agent) error {
		return a.toolkit.Register(tools...)
	}
}

// WithStore sets the session store
func WithStore(store schema.SessionStore) Opt {
	return func(a *Agent) error {
		if store == nil {
			return meteo.ErrBadParameter.With("session store is required")
		}
		a.store = store
		return nil
	}
}

// WithOutput sets how structured answers are obtained from the model
func WithOutput(contract OutputContract) Opt {
	return func(a *Agent) error {
		if contract == nil {
			return meteo.ErrBadParameter.With("output contract is required")
		}
		a.contract = contract
		return nil
	}
}

// WithGeneratorOpts adds provider options to every model call. They are
// applied after the session parameters, so they take precedence.
func WithGeneratorOpts(opts ...opt.Opt) Opt {
	return func(a *Agent) error {
		if _, err := opt.Apply(opts...); err != nil {
			return err
		}
		a.opts = append(a.opts, opts...)
		return nil
	}
}

// WithMaxIterations limits the number of model calls in a single turn
func WithMaxIterations(n uint) Opt {
	return func(a *Agent) error {
		if n == 0 {
			return meteo.ErrBadParameter.With("max iterations must be at least 1")
		}
		a.maxIterations = n
		return nil
	}
}

// WithParallel limits the number of tool calls run at the same time
func WithParallel(n int) Opt {
	return func(a *Agent) error {
		if n < 1 {
			return meteo.ErrBadParameter.With("parallel must be at least 1")
		}
		a.parallel = n
		return nil
	}
}

// WithTracer sets the tracer for turn and tool spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(a *Agent) error {
		a.tracer = tracer
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Opt {
	return func(a *Agent) error {
		if logger == nil {
			return meteo.ErrBadParameter.With("logger is required")
		}
		a.logger = logger
		return nil
	}
}
