package anthropic

import (
	"encoding/json"
	"errors"
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func Test_messagesFromConversation_001(t *testing.T) {
	assert := assert.New(t)

	conversation := schema.Conversation{
		schema.NewMessage(schema.RoleSystem, "ignored"),
		schema.NewMessage(schema.RoleUser, "Weather in Paris?"),
		{
			Role: schema.RoleAssistant,
			Content: []schema.ContentBlock{
				{ToolCall: &schema.ToolCall{ID: "call_1", Name: "get_user_location", Input: json.RawMessage(`{"city":"Paris"}`)}},
				{ToolCall: &schema.ToolCall{ID: "call_2", Name: "get_user_location"}},
			},
		},
		{Role: schema.RoleUser, Content: []schema.ContentBlock{schema.NewToolResult("call_1", "get_user_location", map[string]any{"city": "Paris"})}},
		{Role: schema.RoleUser, Content: []schema.ContentBlock{schema.NewToolError("call_2", "get_user_location", errors.New("not found"))}},
	}

	messages := anthropicMessagesFromConversation(conversation)
	require.Len(t, messages, 3)
	assert.Equal("user", messages[0].Role)
	assert.Equal("Weather in Paris?", messages[0].Content[0].Text)

	// Tool calls, with empty input sent as an empty object
	assert.Equal("assistant", messages[1].Role)
	assert.Equal(blockTypeToolUse, messages[1].Content[0].Type)
	assert.JSONEq(`{}`, string(messages[1].Content[1].Input))

	// Consecutive tool results are merged into one user turn
	assert.Equal("user", messages[2].Role)
	require.Len(t, messages[2].Content, 2)
	assert.Equal("call_1", messages[2].Content[0].ToolUseID)
	var text string
	require.NoError(t, json.Unmarshal(messages[2].Content[0].Content, &text))
	assert.JSONEq(`{"city":"Paris"}`, text)
	assert.True(messages[2].Content[1].IsError)
	assert.JSONEq(`"not found"`, string(messages[2].Content[1].Content))
}

func Test_messageFromResponse_001(t *testing.T) {
	assert := assert.New(t)

	message := messageFromResponse(&messagesResponse{
		Id:   "msg_1",
		Role: "assistant",
		Content: []anthropicContentBlock{
			{Type: blockTypeText, Text: "Let me look that up"},
			{Type: blockTypeToolUse, ID: "toolu_1", Name: "get_user_location", Input: json.RawMessage(`{"city":"Paris"}`)},
		},
		StopReason: stopReasonToolUse,
	})
	assert.Equal(schema.ResultToolCall, message.Result)
	assert.Equal("Let me look that up", message.Text())
	calls := message.ToolCalls()
	require.Len(t, calls, 1)
	assert.Equal("toolu_1", calls[0].ID)
	assert.Equal("msg_1", message.Meta["id"])
}

func Test_resultFromStopReason(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(schema.ResultStop, resultFromStopReason(stopReasonEndTurn))
	assert.Equal(schema.ResultStop, resultFromStopReason(stopReasonStopSequence))
	assert.Equal(schema.ResultMaxTokens, resultFromStopReason(stopReasonMaxTokens))
	assert.Equal(schema.ResultToolCall, resultFromStopReason(stopReasonToolUse))
	assert.Equal(schema.ResultBlocked, resultFromStopReason(stopReasonRefusal))
	assert.Equal(schema.ResultOther, resultFromStopReason(stopReasonPauseTurn))
}
