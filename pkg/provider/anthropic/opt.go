package anthropic

import (
	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
)

////////////////////////////////////////////////////////////////////////////////
// PAGINATION OPTIONS

// WithAfterId sets the cursor for forward pagination
func WithAfterId(id string) opt.Opt {
	return opt.SetString(opt.AfterIdKey, id)
}

// WithLimit sets the page size for pagination (1 to 1000)
func WithLimit(limit uint) opt.Opt {
	if limit < 1 || limit > 1000 {
		return opt.Error(meteo.ErrBadParameter.With("limit must be between 1 and 1000"))
	}
	return opt.SetUint(opt.LimitKey, limit)
}

////////////////////////////////////////////////////////////////////////////////
// MESSAGE OPTIONS

// WithPromptCaching marks the system prompt for prompt caching, so the
// prompt is not processed again on each call within a turn
func WithPromptCaching() opt.Opt {
	return opt.SetString(opt.CacheControlKey, "ephemeral")
}

// WithTemperature sets the temperature for the request (0.0 to 1.0)
func WithTemperature(value float64) opt.Opt {
	if value < 0 || value > 1 {
		return opt.Error(meteo.ErrBadParameter.With("temperature must be between 0.0 and 1.0"))
	}
	return opt.SetFloat64(opt.TemperatureKey, value)
}

// WithMaxTokens sets the maximum number of tokens to generate
func WithMaxTokens(value uint) opt.Opt {
	if value < 1 {
		return opt.Error(meteo.ErrBadParameter.With("max_tokens must be at least 1"))
	}
	return opt.SetUint(opt.MaxTokensKey, value)
}
