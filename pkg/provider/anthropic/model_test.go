package anthropic

import (
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"
)

func Test_parseModelId(t *testing.T) {
	tests := []struct {
		id, variant, version, date string
	}{
		{"claude-3-5-haiku-20241022", "haiku", "3.5", "20241022"},
		{"claude-3-haiku-20240307", "haiku", "3", "20240307"},
		{"claude-sonnet-4-5-20250929", "sonnet", "4.5", "20250929"},
		{"claude-opus-4-20250514", "opus", "4", "20250514"},
		{"claude-opus-4-6", "opus", "4.6", ""},
		{"gpt-4o", "", "", ""},
	}
	for _, test := range tests {
		t.Run(test.id, func(t *testing.T) {
			variant, version, date := parseModelId(test.id)
			assert.Equal(t, test.variant, variant)
			assert.Equal(t, test.version, version)
			assert.Equal(t, test.date, date)
		})
	}
}

func Test_toSchema(t *testing.T) {
	assert := assert.New(t)
	m := model{Id: "claude-sonnet-4-5-20250929", DisplayName: "Claude Sonnet 4.5"}.toSchema()
	assert.Equal("claude-sonnet-4-5-20250929", m.Name)
	assert.Equal("Claude Sonnet 4.5", m.Description)
	assert.Equal("anthropic", m.OwnedBy)
	assert.Equal("sonnet", m.Meta["variant"])
	assert.Equal("4.5", m.Meta["version"])
}
