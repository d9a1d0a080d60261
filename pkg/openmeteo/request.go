package openmeteo

import (
	"net/url"
	"strconv"
)

///////////////////////////////////////////////////////////////////////////////
// REQUEST TYPES

// GeocodingRequest defines the query for a place name search
type GeocodingRequest struct {
	Name     string
	Count    uint
	Language string
}

// ForecastRequest defines the query for current conditions at a location
type ForecastRequest struct {
	Latitude  float64
	Longitude float64
}

///////////////////////////////////////////////////////////////////////////////
// METHODS

// Values converts GeocodingRequest to URL query parameters
func (r *GeocodingRequest) Values() url.Values {
	result := url.Values{}
	result.Set("name", r.Name)
	if r.Count > 0 {
		result.Set("count", strconv.FormatUint(uint64(r.Count), 10))
	} else {
		result.Set("count", "1")
	}
	if r.Language != "" {
		result.Set("language", r.Language)
	}
	result.Set("format", "json")
	return result
}

// Values converts ForecastRequest to URL query parameters
func (r *ForecastRequest) Values() url.Values {
	result := url.Values{}
	result.Set("latitude", strconv.FormatFloat(r.Latitude, 'f', -1, 64))
	result.Set("longitude", strconv.FormatFloat(r.Longitude, 'f', -1, 64))
	result.Set("current_weather", "true")
	result.Set("hourly", "relative_humidity_2m")
	return result
}
