package tool

import (
	"context"
	"encoding/json"
	"sort"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	meteo "github.com/mutablelogic/go-meteo"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	ident "github.com/mutablelogic/go-meteo/pkg/types"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is an interface for a tool with a name, description and JSON schemas
// for its input and output
type Tool interface {
	// Return the name of the tool
	Name() string

	// Return the description of the tool
	Description() string

	// Return the JSON schema for the tool input
	Schema() (*jsonschema.Schema, error)

	// Return the JSON schema for the tool output, or nil if the output is
	// unstructured
	OutputSchema() (*jsonschema.Schema, error)

	// Run the tool with the given input as JSON (may be nil)
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

// Toolkit is a collection of tools with unique names
type Toolkit struct {
	tools map[string]Tool
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a new toolkit with the given tools.
// Returns an error if any tool has an invalid or duplicate name.
func NewToolkit(tools ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		tools: make(map[string]Tool),
	}
	if err := tk.Register(tools...); err != nil {
		return nil, err
	}
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns all tools in the toolkit, ordered by name
func (tk *Toolkit) Tools() []Tool {
	result := make([]Tool, 0, len(tk.tools))
	for _, t := range tk.tools {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Register adds one or more tools to the toolkit.
// Returns an error if any tool has an invalid or duplicate name,
// or if the name is reserved (e.g. "submit_output").
func (tk *Toolkit) Register(tools ...Tool) error {
	for _, t := range tools {
		if t == nil {
			return meteo.ErrBadParameter.With("tool cannot be nil")
		}
		name := t.Name()
		if !ident.IsIdentifier(name) {
			return meteo.ErrBadParameter.Withf("invalid tool name: %q", name)
		}
		// Reject reserved names unless the tool is the internal OutputTool
		if isReservedToolName(name) {
			if _, ok := t.(*OutputTool); !ok {
				return meteo.ErrBadParameter.Withf("reserved tool name: %q", name)
			}
		}
		if _, exists := tk.tools[name]; exists {
			return meteo.ErrConflict.Withf("duplicate tool name: %q", name)
		}
		tk.tools[name] = t
	}
	return nil
}

// Lookup returns a tool by name, or nil if not found
func (tk *Toolkit) Lookup(name string) Tool {
	return tk.tools[name]
}

// Run executes a tool by name with the given input.
// Returns an error if the tool is not found, the input does not match the
// schema, or the tool execution fails.
func (tk *Toolkit) Run(ctx context.Context, name string, input json.RawMessage) (any, error) {
	tool := tk.Lookup(name)
	if tool == nil {
		return nil, meteo.ErrNotFound.Withf("tool not found: %q", name)
	}
	if len(input) == 0 {
		input = json.RawMessage(`{}`)
	}
	if err := Validate(tool, input); err != nil {
		return nil, err
	}
	return tool.Run(ctx, input)
}

// Feedback returns a human-readable description of a tool call, including
// the tool name and its description when available.
func (tk *Toolkit) Feedback(call schema.ToolCall) string {
	if t := tk.Lookup(call.Name); t != nil && t.Description() != "" {
		return call.Name + ": " + t.Description()
	}
	return call.Name
}

// Validate checks JSON input against the input schema of a tool
func Validate(t Tool, input json.RawMessage) error {
	s, err := t.Schema()
	if err != nil {
		return meteo.ErrBadParameter.Withf("schema generation failed: %v", err)
	} else if s == nil {
		return nil
	}
	return validate(s, input)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func isReservedToolName(name string) bool {
	return name == OutputToolName
}

func validate(s *jsonschema.Schema, input json.RawMessage) error {
	var mapInput map[string]any
	if err := json.Unmarshal(input, &mapInput); err != nil {
		return meteo.ErrBadParameter.Withf("failed to unmarshal JSON input: %v", err)
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return meteo.ErrBadParameter.Withf("schema resolution failed: %v", err)
	}
	if err := resolved.Validate(mapInput); err != nil {
		return meteo.ErrBadParameter.Withf("input validation failed: %v", err)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	names := make([]string, 0, len(tk.tools))
	for _, t := range tk.Tools() {
		names = append(names, t.Name())
	}
	return types.Stringify(names)
}
