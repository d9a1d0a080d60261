package openmeteo

import (
	"log/slog"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	meteo "github.com/mutablelogic/go-meteo"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring the client
type Opt func(*opts) error

type opts struct {
	geocoding  string
	forecast   string
	clientOpts []client.ClientOpt
	ttl        time.Duration
	retries    uint
	backoff    time.Duration
	logger     *slog.Logger
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func applyOpts(o ...Opt) (*opts, error) {
	result := &opts{
		geocoding: geocodingEndPoint,
		forecast:  forecastEndPoint,
		ttl:       defaultCacheTTL,
		retries:   defaultRetries,
		backoff:   defaultBackoff,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range o {
		if err := opt(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithClientOpts passes options to the underlying HTTP clients
func WithClientOpts(v ...client.ClientOpt) Opt {
	return func(o *opts) error {
		o.clientOpts = append(o.clientOpts, v...)
		return nil
	}
}

// WithGeocodingEndpoint overrides the geocoding service endpoint
func WithGeocodingEndpoint(url string) Opt {
	return func(o *opts) error {
		if url == "" {
			return meteo.ErrBadParameter.With("geocoding endpoint is required")
		}
		o.geocoding = url
		return nil
	}
}

// WithForecastEndpoint overrides the forecast service endpoint
func WithForecastEndpoint(url string) Opt {
	return func(o *opts) error {
		if url == "" {
			return meteo.ErrBadParameter.With("forecast endpoint is required")
		}
		o.forecast = url
		return nil
	}
}

// WithCacheTTL sets how long forecast responses are cached. Zero disables
// the cache.
func WithCacheTTL(ttl time.Duration) Opt {
	return func(o *opts) error {
		if ttl < 0 {
			return meteo.ErrBadParameter.With("cache ttl cannot be negative")
		}
		o.ttl = ttl
		return nil
	}
}

// WithRetry sets the number of retries after the first attempt, and the
// initial backoff interval which doubles on each retry
func WithRetry(retries uint, backoff time.Duration) Opt {
	return func(o *opts) error {
		if backoff <= 0 {
			return meteo.ErrBadParameter.With("backoff must be positive")
		}
		o.retries = retries
		o.backoff = backoff
		return nil
	}
}

// WithLogger sets the logger for cache and retry diagnostics
func WithLogger(logger *slog.Logger) Opt {
	return func(o *opts) error {
		if logger == nil {
			return meteo.ErrBadParameter.With("logger is required")
		}
		o.logger = logger
		return nil
	}
}
