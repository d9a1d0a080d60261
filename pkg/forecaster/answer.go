package forecaster

import (
	"encoding/json"
	"fmt"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	meteo "github.com/mutablelogic/go-meteo"
	console "github.com/mutablelogic/go-meteo/pkg/console"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Variant selects the shape of the structured answer
type Variant string

// FullAnswer carries the weather fields alongside the response
type FullAnswer struct {
	PunnyResponse string   `json:"punny_response" jsonschema:"A punny response to the user"`
	Temperature   *float64 `json:"temperature" jsonschema:"Current temperature in degrees Celsius"`
	Humidity      *float64 `json:"humidity" jsonschema:"Current relative humidity in percent"`
	WindSpeed     *float64 `json:"wind_speed" jsonschema:"Current wind speed in km/h"`
	Conditions    string   `json:"conditions" jsonschema:"Current weather conditions"`
	City          string   `json:"city,omitempty" jsonschema:"The city the weather is for"`
}

// BriefAnswer carries the response and optional weather conditions
type BriefAnswer struct {
	PunnyResponse     string `json:"punny_response" jsonschema:"A punny response to the user"`
	WeatherConditions string `json:"weather_conditions,omitempty" jsonschema:"Any interesting information about the weather if available"`
}

var _ console.Reply = FullAnswer{}
var _ console.Reply = BriefAnswer{}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Full  Variant = "full"
	Brief Variant = "brief"
)

const (
	unknown = "unknown"
	prefix  = "Données: "
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// ParseVariant returns the variant with the given name
func ParseVariant(name string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(name))); v {
	case Full, Brief:
		return v, nil
	default:
		return "", meteo.ErrBadParameter.Withf("unknown format %q (expected %q or %q)", name, Full, Brief)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Schema returns the JSON schema of the answer for the variant
func (v Variant) Schema() (*jsonschema.Schema, error) {
	switch v {
	case Full:
		return jsonschema.For[FullAnswer](nil)
	case Brief:
		return jsonschema.For[BriefAnswer](nil)
	default:
		return nil, meteo.ErrBadParameter.Withf("unknown format %q", string(v))
	}
}

// Decode returns the answer for the variant from JSON
func (v Variant) Decode(data json.RawMessage) (console.Reply, error) {
	switch v {
	case Full:
		var answer FullAnswer
		if err := json.Unmarshal(data, &answer); err != nil {
			return nil, meteo.ErrUpstream.Withf("answer: %v", err)
		}
		return answer, nil
	case Brief:
		var answer BriefAnswer
		if err := json.Unmarshal(data, &answer); err != nil {
			return nil, meteo.ErrUpstream.Withf("answer: %v", err)
		}
		return answer, nil
	default:
		return nil, meteo.ErrBadParameter.Withf("unknown format %q", string(v))
	}
}

func (a FullAnswer) Response() string {
	return a.PunnyResponse
}

func (a FullAnswer) Details() string {
	return prefix + fmt.Sprintf("City: %s, Temperature: %s°C, Humidity: %s%%, Wind Speed: %s km/h, Conditions: %s",
		text(a.City),
		number(a.Temperature, 1),
		number(a.Humidity, 0),
		number(a.WindSpeed, 1),
		text(a.Conditions),
	)
}

func (a BriefAnswer) Response() string {
	return a.PunnyResponse
}

func (a BriefAnswer) Details() string {
	return prefix + text(a.WeatherConditions)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (a FullAnswer) String() string {
	return types.Stringify(a)
}

func (a BriefAnswer) String() string {
	return types.Stringify(a)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func text(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return unknown
	}
	return s
}

func number(v *float64, prec int) string {
	if v == nil {
		return unknown
	}
	return fmt.Sprintf("%.*f", prec, *v)
}
