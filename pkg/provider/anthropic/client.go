/*
anthropic implements a client for the Anthropic Messages API, used as the
language model behind the weather agent.
https://docs.anthropic.com/en/api/getting-started
*/
package anthropic

import (
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	meteo "github.com/mutablelogic/go-meteo"
	cache "github.com/mutablelogic/go-meteo/pkg/cache"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	catalog *cache.Cache[string, []schema.Model]
	models  *cache.Cache[string, schema.Model]
}

var _ meteo.Client = (*Client)(nil)
var _ meteo.Generator = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint      = "https://api.anthropic.com/v1"
	apiVersion    = "2023-06-01"
	modelCacheTTL = time.Hour
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new Anthropic API client with the given API key. The
// endpoint can be overridden with client.OptEndpoint.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	if apiKey == "" {
		return nil, meteo.ErrBadParameter.With("api key is required")
	}
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptHeader("x-api-key", apiKey),
		client.OptHeader("anthropic-version", apiVersion),
	}, opts...)
	c, err := client.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{
		Client:  c,
		catalog: cache.New[string, []schema.Model](modelCacheTTL, 1),
		models:  cache.New[string, schema.Model](modelCacheTTL, 40),
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the provider name
func (*Client) Name() string {
	return schema.Anthropic
}
