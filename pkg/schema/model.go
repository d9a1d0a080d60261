package schema

import (
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Represents an LLM model
type Model struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Created     time.Time      `json:"created,omitzero"`
	OwnedBy     string         `json:"owned_by,omitempty"`
	Meta        map[string]any `json:"meta,omitzero"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Provider names
const (
	Anthropic = "anthropic"
)

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Model) String() string {
	return types.Stringify(m)
}
