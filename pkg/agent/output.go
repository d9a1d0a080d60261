package agent

import (
	"encoding/json"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	meteo "github.com/mutablelogic/go-meteo"
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// OutputContract is how the agent obtains an answer which conforms to a JSON
// schema, independent of how a provider enforces it
type OutputContract interface {
	// Instruction returns text appended to the system prompt
	Instruction() string

	// Options returns the generation options which request the schema
	Options(format *jsonschema.Schema) ([]opt.Opt, error)

	// Extract returns the answer in a model response, or nil if the model
	// has not answered yet. An error means the model answered, but the
	// answer does not conform to the schema.
	Extract(format *jsonschema.Schema, message *schema.Message) (json.RawMessage, error)
}

// ToolOutput asks the model to submit its answer as the input of an output
// tool, and forces tool use so every response is either a tool call or the
// answer
type ToolOutput struct{}

// NativeOutput asks the provider to constrain the response text to the
// schema
type NativeOutput struct{}

var _ OutputContract = ToolOutput{}
var _ OutputContract = NativeOutput{}

///////////////////////////////////////////////////////////////////////////////
// TOOL OUTPUT

func (ToolOutput) Instruction() string {
	return tool.OutputToolInstruction
}

func (ToolOutput) Options(format *jsonschema.Schema) ([]opt.Opt, error) {
	if format == nil {
		return nil, meteo.ErrBadParameter.With("output schema is required")
	}
	return []opt.Opt{
		tool.WithTool(tool.NewOutputTool(format)),
		opt.SetString(opt.ToolChoiceKey, "any"),
	}, nil
}

func (ToolOutput) Extract(format *jsonschema.Schema, message *schema.Message) (json.RawMessage, error) {
	for _, call := range message.ToolCalls() {
		if call.Name != tool.OutputToolName {
			continue
		}
		if err := tool.NewOutputTool(format).Validate(call.Input); err != nil {
			return nil, err
		}
		return call.Input, nil
	}
	return nil, nil
}

///////////////////////////////////////////////////////////////////////////////
// NATIVE OUTPUT

func (NativeOutput) Instruction() string {
	return "Respond only with a JSON object which conforms to the requested schema."
}

func (NativeOutput) Options(format *jsonschema.Schema) ([]opt.Opt, error) {
	if format == nil {
		return nil, meteo.ErrBadParameter.With("output schema is required")
	}
	data, err := json.Marshal(format)
	if err != nil {
		return nil, meteo.ErrBadParameter.Withf("output schema: %v", err)
	}
	return []opt.Opt{
		opt.SetString(opt.JSONSchemaKey, string(data)),
	}, nil
}

func (NativeOutput) Extract(format *jsonschema.Schema, message *schema.Message) (json.RawMessage, error) {
	if message.Result == schema.ResultToolCall {
		return nil, nil
	}
	text := unfence(message.Text())
	if text == "" {
		return nil, meteo.ErrUpstream.With("empty response")
	}
	data := json.RawMessage(text)
	if err := tool.NewOutputTool(format).Validate(data); err != nil {
		return nil, err
	}
	return data, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// unfence removes a markdown code fence around a response
func unfence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
