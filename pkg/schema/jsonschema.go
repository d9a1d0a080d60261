package schema

import (
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	yaml "gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// JSONSchema is a JSON-encoded schema that can be read from both JSON and
// YAML sources. A YAML node is decoded to a native value and re-encoded as
// JSON.
type JSONSchema json.RawMessage

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewJSONSchema encodes a schema
func NewJSONSchema(s *jsonschema.Schema) (JSONSchema, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return JSONSchema(data), nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Schema decodes the schema, returning nil when empty
func (s JSONSchema) Schema() (*jsonschema.Schema, error) {
	if len(s) == 0 {
		return nil, nil
	}
	var result jsonschema.Schema
	if err := json.Unmarshal(s, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

////////////////////////////////////////////////////////////////////////////////
// JSON MARSHALLING

func (s JSONSchema) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte(s), nil
}

func (s *JSONSchema) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	*s = append((*s)[:0], data...)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// YAML UNMARSHALLING

func (s *JSONSchema) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	*s = data
	return nil
}
