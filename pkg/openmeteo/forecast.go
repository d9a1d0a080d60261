package openmeteo

import (
	"context"

	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// CurrentWeather holds the conditions at a location for the present hour
type CurrentWeather struct {
	Temperature float64 `json:"temperature" jsonschema:"Air temperature in degrees Celsius"`
	WindSpeed   float64 `json:"wind_speed" jsonschema:"Wind speed in km/h"`
	Humidity    float64 `json:"humidity" jsonschema:"Relative humidity in percent"`
	Conditions  string  `json:"conditions" jsonschema:"Description of the weather conditions"`
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature *float64 `json:"temperature"`
		WindSpeed   *float64 `json:"windspeed"`
		WeatherCode *float64 `json:"weathercode"`
		Time        string   `json:"time,omitempty"`
	} `json:"current_weather"`
	Hourly *struct {
		Time     []string   `json:"time"`
		Humidity []*float64 `json:"relative_humidity_2m"`
	} `json:"hourly"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Current returns the current weather at a location. Responses are cached,
// so repeated calls for the same coordinates within the cache window do not
// make further requests.
func (c *Client) Current(ctx context.Context, location Location) (CurrentWeather, error) {
	req := ForecastRequest{Latitude: location.Latitude, Longitude: location.Longitude}
	var response forecastResponse
	if err := c.getCached(ctx, c.forecast, "forecast", req.Values(), &response); err != nil {
		return CurrentWeather{}, err
	}

	current := response.CurrentWeather
	switch {
	case current == nil:
		return CurrentWeather{}, meteo.ErrUpstream.With("missing current_weather")
	case current.Temperature == nil || current.WindSpeed == nil || current.WeatherCode == nil:
		return CurrentWeather{}, meteo.ErrUpstream.With("incomplete current_weather")
	case response.Hourly == nil || len(response.Hourly.Humidity) == 0 || response.Hourly.Humidity[0] == nil:
		return CurrentWeather{}, meteo.ErrUpstream.With("missing relative_humidity_2m")
	}

	return CurrentWeather{
		Temperature: *current.Temperature,
		WindSpeed:   *current.WindSpeed,
		Humidity:    *response.Hourly.Humidity[0],
		Conditions:  Describe(int(*current.WeatherCode)),
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (w CurrentWeather) String() string {
	return types.Stringify(w)
}
