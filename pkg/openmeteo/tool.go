package openmeteo

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	meteo "github.com/mutablelogic/go-meteo"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type userLocation struct {
	client *Client
}

type weatherForLocation struct {
	client *Client
}

// UserLocationRequest defines the input for the geocoding tool
type UserLocationRequest struct {
	City string `json:"city" jsonschema:"Name of the city to locate"`
}

// WeatherForLocationRequest defines the input for the weather tool
type WeatherForLocationRequest struct {
	Location Location `json:"location" jsonschema:"Location returned by get_user_location"`
}

var _ tool.Tool = (*userLocation)(nil)
var _ tool.Tool = (*weatherForLocation)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the geocoding and weather tools for use with LLM agents
func NewTools(opts ...Opt) ([]tool.Tool, error) {
	client, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return client.Tools(), nil
}

// Tools returns the geocoding and weather tools backed by this client
func (c *Client) Tools() []tool.Tool {
	return []tool.Tool{
		&userLocation{client: c},
		&weatherForLocation{client: c},
	}
}

///////////////////////////////////////////////////////////////////////////////
// USER LOCATION

func (*userLocation) Name() string {
	return "get_user_location"
}

func (*userLocation) Description() string {
	return "Convert a city name into latitude and longitude using Open-Meteo Geocoding API."
}

func (*userLocation) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[UserLocationRequest](nil)
}

func (*userLocation) OutputSchema() (*jsonschema.Schema, error) {
	return jsonschema.For[Location](nil)
}

func (t *userLocation) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req UserLocationRequest
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, meteo.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	if req.City == "" {
		return nil, meteo.ErrBadParameter.With("city is required")
	}
	return t.client.Resolve(ctx, req.City)
}

///////////////////////////////////////////////////////////////////////////////
// WEATHER FOR LOCATION

func (*weatherForLocation) Name() string {
	return "get_weather_for_location"
}

func (*weatherForLocation) Description() string {
	return "Get current weather (temperature, humidity, conditions) using Open-Meteo."
}

func (*weatherForLocation) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[WeatherForLocationRequest](nil)
}

func (*weatherForLocation) OutputSchema() (*jsonschema.Schema, error) {
	return jsonschema.For[CurrentWeather](nil)
}

func (t *weatherForLocation) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req WeatherForLocationRequest
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, meteo.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	return t.client.Current(ctx, req.Location)
}
