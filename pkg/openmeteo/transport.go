package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	// Packages
	backoff "github.com/cenkalti/backoff/v5"
	client "github.com/mutablelogic/go-client"
	meteo "github.com/mutablelogic/go-meteo"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// getCached returns the response for a request from the cache when a recent
// identical request exists, otherwise performs it and caches the response
func (c *Client) getCached(ctx context.Context, api *client.Client, path string, query url.Values, out any) error {
	key := path + "?" + query.Encode()
	data, hit, err := c.cache.Fetch(ctx, key, func(ctx context.Context, _ string) (json.RawMessage, error) {
		return c.get(ctx, api, path, query)
	})
	if err != nil {
		return err
	} else if hit {
		c.logger.DebugContext(ctx, "cache hit", "path", path, "query", query.Encode())
	}
	return decode(data, out)
}

// getUncached performs a request without consulting the cache
func (c *Client) getUncached(ctx context.Context, api *client.Client, path string, query url.Values, out any) error {
	data, err := c.get(ctx, api, path, query)
	if err != nil {
		return err
	}
	return decode(data, out)
}

// get performs a GET request, retrying transient failures with exponential
// backoff. When all attempts fail, returns ErrTransport wrapping the last
// error. Non-transient failures return ErrUpstream.
func (c *Client) get(ctx context.Context, api *client.Client, path string, query url.Values) (json.RawMessage, error) {
	var transient bool
	attempt := uint(0)
	operation := func() (json.RawMessage, error) {
		var response json.RawMessage
		attempt++
		err := api.DoWithContext(ctx, nil, &response, client.OptPath(path), client.OptQuery(query))
		if err == nil {
			return response, nil
		}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		if transient = isTransient(err); !transient {
			return nil, backoff.Permanent(err)
		}
		c.logger.DebugContext(ctx, "request failed", "path", path, "attempt", attempt, "error", err)
		return nil, err
	}

	// Exponential backoff, with jitter disabled so the schedule is predictable
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.backoff
	policy.Multiplier = 2
	policy.RandomizationFactor = 0

	response, err := backoff.Retry(ctx, operation, backoff.WithBackOff(policy), backoff.WithMaxTries(c.retries+1))
	switch {
	case err == nil:
		return response, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case transient:
		return nil, fmt.Errorf("%w: %s failed after %d attempts: %w", meteo.ErrTransport, path, attempt, err)
	default:
		return nil, fmt.Errorf("%w: %s: %w", meteo.ErrUpstream, path, err)
	}
}

// isTransient returns true for failures worth retrying: network errors and
// the HTTP statuses which indicate a temporary upstream condition
func isTransient(err error) bool {
	var httpErr httpresponse.Err
	if errors.As(err, &httpErr) {
		switch int(httpErr) {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return false
	}
	return true
}

func decode(data json.RawMessage, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return meteo.ErrUpstream.Withf("invalid response: %v", err)
	}
	return nil
}
