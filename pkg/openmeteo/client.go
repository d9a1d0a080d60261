/*
openmeteo implements an API client for the Open-Meteo geocoding and
forecast services, and exposes them as tools for LLM agents.
https://open-meteo.com/en/docs
*/
package openmeteo

import (
	"encoding/json"
	"log/slog"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	cache "github.com/mutablelogic/go-meteo/pkg/cache"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	geocoding *client.Client
	forecast  *client.Client
	cache     *cache.Cache[string, json.RawMessage]
	retries   uint
	backoff   time.Duration
	logger    *slog.Logger
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	geocodingEndPoint = "https://geocoding-api.open-meteo.com/v1"
	forecastEndPoint  = "https://api.open-meteo.com/v1"
	defaultCacheTTL   = time.Hour
	defaultRetries    = 5
	defaultBackoff    = 200 * time.Millisecond
	defaultLanguage   = "en"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client
func New(opts ...Opt) (*Client, error) {
	o, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}

	// Create the geocoding and forecast clients
	geocoding, err := client.New(append(o.clientOpts, client.OptEndpoint(o.geocoding))...)
	if err != nil {
		return nil, err
	}
	forecast, err := client.New(append(o.clientOpts, client.OptEndpoint(o.forecast))...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		geocoding: geocoding,
		forecast:  forecast,
		cache:     cache.New[string, json.RawMessage](o.ttl, 64),
		retries:   o.retries,
		backoff:   o.backoff,
		logger:    o.logger,
	}, nil
}
