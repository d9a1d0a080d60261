package openmeteo

import (
	"context"

	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Location is a named place with coordinates
type Location struct {
	City      string  `json:"city" jsonschema:"Name of the city"`
	Latitude  float64 `json:"latitude" jsonschema:"Latitude in decimal degrees"`
	Longitude float64 `json:"longitude" jsonschema:"Longitude in decimal degrees"`
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country,omitempty"`
		Timezone  string  `json:"timezone,omitempty"`
	} `json:"results"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Resolve returns the best matching location for a city name, or
// ErrNotFound if the geocoding service has no match
func (c *Client) Resolve(ctx context.Context, city string) (Location, error) {
	if city == "" {
		return Location{}, meteo.ErrBadParameter.With("city is required")
	}

	// Request exactly one match
	req := GeocodingRequest{Name: city, Count: 1, Language: defaultLanguage}
	var response geocodingResponse
	if err := c.getUncached(ctx, c.geocoding, "search", req.Values(), &response); err != nil {
		return Location{}, err
	}
	if len(response.Results) == 0 {
		return Location{}, meteo.ErrNotFound.Withf("city not found: %q", city)
	}

	// A match without a name cannot be a Location
	match := response.Results[0]
	if match.Name == "" {
		return Location{}, meteo.ErrUpstream.Withf("geocoding result for %q has no name", city)
	}
	return Location{
		City:      match.Name,
		Latitude:  match.Latitude,
		Longitude: match.Longitude,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (l Location) String() string {
	return types.Stringify(l)
}
