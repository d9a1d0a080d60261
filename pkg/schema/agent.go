package schema

import (
	"errors"
	"io"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	yaml "gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// AgentMeta describes an agent definition file, which selects the model and
// overrides the generation parameters of the console agent
type AgentMeta struct {
	GeneratorMeta `yaml:",inline"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description,omitempty" yaml:"description"`
	Tools         []string `json:"tools,omitzero" yaml:"tools"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// ReadAgentMeta decodes an agent definition from YAML. An empty document
// returns a zero value.
func ReadAgentMeta(r io.Reader) (AgentMeta, error) {
	var meta AgentMeta
	if err := yaml.NewDecoder(r).Decode(&meta); err != nil && !errors.Is(err, io.EOF) {
		return AgentMeta{}, err
	}
	return meta, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Merge returns the generator meta with non-zero fields from the agent
// definition applied on top
func (a AgentMeta) Merge(meta GeneratorMeta) GeneratorMeta {
	if a.Provider != "" {
		meta.Provider = a.Provider
	}
	if a.Model != "" {
		meta.Model = a.Model
	}
	if a.SystemPrompt != "" {
		meta.SystemPrompt = a.SystemPrompt
	}
	if a.Temperature != nil {
		meta.Temperature = types.Ptr(types.Value(a.Temperature))
	}
	if a.MaxTokens > 0 {
		meta.MaxTokens = a.MaxTokens
	}
	if len(a.Format) > 0 {
		meta.Format = a.Format
	}
	return meta
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (a AgentMeta) String() string {
	return types.Stringify(a)
}
