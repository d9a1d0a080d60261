package main

import (
	"testing"
	"time"

	// Packages
	console "github.com/mutablelogic/go-meteo/pkg/console"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_TableSummary_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("No results", TableSummary(0, 0, 0))
	assert.Equal("All 3 rows displayed", TableSummary(3, 0, 3))
	assert.Equal("Displaying rows 11-20 of 42", TableSummary(10, 10, 42))
}

func Test_ModelTable_001(t *testing.T) {
	assert := assert.New(t)

	table := ModelTable{
		Models: []schema.Model{
			{Name: "claude-sonnet-4-5-20250929", Description: "Claude Sonnet 4.5"},
			{Name: "claude-haiku-4-5-20251001", Description: "Claude Haiku 4.5"},
		},
		CurrentModel: "claude-sonnet-4-5-20250929",
	}
	assert.Equal(2, table.Len())
	assert.Len(table.Header(), 3)
	assert.Equal(console.Bold{Value: "claude-sonnet-4-5-20250929"}, table.Row(0)[0])
	assert.Equal("claude-haiku-4-5-20251001", table.Row(1)[0])
}

func Test_SessionTable_001(t *testing.T) {
	assert := assert.New(t)

	modified := time.Now()
	table := SessionTable{Sessions: []*schema.Session{
		{ID: "a", Modified: modified},
		{ID: "b", Messages: schema.Conversation{
			{Role: schema.RoleUser, Tokens: 10},
			{Role: schema.RoleAssistant, Tokens: 5},
		}},
	}}
	assert.Equal([]any{"a", "", "-", modified}, table.Row(0))
	assert.Equal("2 (15 tokens)", table.Row(1)[2])
}
