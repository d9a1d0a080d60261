package tool

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	meteo "github.com/mutablelogic/go-meteo"
)

///////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	// OutputToolName is the well-known name for the structured output tool.
	OutputToolName = "submit_output"

	// OutputToolInstruction is appended to the system prompt when the
	// output tool is active, directing the model to call it with the final answer.
	OutputToolInstruction = "Use available tools to gather information. When ready, only call " + OutputToolName + " with your final answer, do not output any other text."
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// OutputTool wraps a JSON schema as a tool, allowing the model to produce
// structured output by "calling" this tool with the desired data.
type OutputTool struct {
	schema *jsonschema.Schema
}

var _ Tool = (*OutputTool)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewOutputTool creates a tool whose parameter schema is the given JSON schema.
// When the model calls this tool, its arguments are the structured output.
func NewOutputTool(s *jsonschema.Schema) *OutputTool {
	return &OutputTool{schema: s}
}

///////////////////////////////////////////////////////////////////////////////
// TOOL INTERFACE

func (t *OutputTool) Name() string {
	return OutputToolName
}

func (t *OutputTool) Description() string {
	return "Submit your final structured output. Call this tool when you have completed your task and are ready to return the result."
}

func (t *OutputTool) Schema() (*jsonschema.Schema, error) {
	return t.schema, nil
}

func (t *OutputTool) OutputSchema() (*jsonschema.Schema, error) {
	return nil, nil
}

func (t *OutputTool) Run(_ context.Context, input json.RawMessage) (any, error) {
	if err := t.Validate(input); err != nil {
		return nil, err
	}
	return input, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Validate checks the submitted output against the schema
func (t *OutputTool) Validate(input json.RawMessage) error {
	if len(input) == 0 {
		return meteo.ErrBadParameter.With("empty output")
	}
	if t.schema == nil {
		return nil
	}
	return validate(t.schema, input)
}
