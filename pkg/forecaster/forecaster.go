/*
forecaster answers weather questions with puns, through an agent which
can locate a city and look up its current weather.
*/
package forecaster

import (
	"context"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	meteo "github.com/mutablelogic/go-meteo"
	agent "github.com/mutablelogic/go-meteo/pkg/agent"
	console "github.com/mutablelogic/go-meteo/pkg/console"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Forecaster answers each line of a conversation within one session
type Forecaster struct {
	agent   *agent.Agent
	session *schema.Session
	variant Variant
	format  *jsonschema.Schema
}

var _ console.Responder = (*Forecaster)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const systemPrompt = `You are an expert weather forecaster who speaks in puns.

You have access to two tools:
- get_weather_for_location: retrieve real-time weather data for a specific geographic location
- get_user_location: use this to convert a city name into geographic coordinates

If the user asks for the weather, extract the city from the message and provide the current weather.
`

const fullPrompt = "Always return structured weather fields (temperature, humidity, wind_speed, conditions, city) along with a punny_response.\n"

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a forecaster which answers within the session, in the shape
// of the variant
func New(agent *agent.Agent, session *schema.Session, variant Variant) (*Forecaster, error) {
	if agent == nil {
		return nil, meteo.ErrBadParameter.With("agent is required")
	}
	if session == nil {
		return nil, meteo.ErrBadParameter.With("session is required")
	}
	format, err := variant.Schema()
	if err != nil {
		return nil, err
	}
	return &Forecaster{
		agent:   agent,
		session: session,
		variant: variant,
		format:  format,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SystemPrompt returns the system prompt for the variant
func SystemPrompt(variant Variant) string {
	if variant == Full {
		return systemPrompt + fullPrompt
	}
	return systemPrompt
}

// Session returns the conversation the forecaster answers within
func (f *Forecaster) Session() *schema.Session {
	return f.session
}

// Respond answers a line of text
func (f *Forecaster) Respond(ctx context.Context, text string) (console.Reply, error) {
	answer, err := f.agent.Chat(ctx, f.session, text, f.format)
	if err != nil {
		return nil, err
	}
	return f.variant.Decode(answer)
}
