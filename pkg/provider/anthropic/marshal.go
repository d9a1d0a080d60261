package anthropic

import (
	"encoding/json"

	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// CONVERSATION → ANTHROPIC MESSAGES

// anthropicMessagesFromConversation converts a conversation to Anthropic
// messages. System messages are skipped, as the system prompt is a request
// parameter. Consecutive messages with the same role are merged, since tool
// results must follow the tool calls in a single user turn.
func anthropicMessagesFromConversation(conversation schema.Conversation) []anthropicMessage {
	messages := make([]anthropicMessage, 0, len(conversation))
	for _, msg := range conversation {
		if msg == nil || msg.Role == schema.RoleSystem {
			continue
		}
		role := msg.Role
		if role == schema.RoleTool {
			role = schema.RoleUser
		}
		blocks := make([]anthropicContentBlock, 0, len(msg.Content))
		for i := range msg.Content {
			if block := anthropicBlockFromContentBlock(&msg.Content[i]); block != nil {
				blocks = append(blocks, *block)
			}
		}
		if len(blocks) == 0 {
			continue
		}
		if n := len(messages); n > 0 && messages[n-1].Role == role {
			messages[n-1].Content = append(messages[n-1].Content, blocks...)
			continue
		}
		messages = append(messages, anthropicMessage{Role: role, Content: blocks})
	}
	return messages
}

// anthropicBlockFromContentBlock converts a content block, returning nil for
// an empty block
func anthropicBlockFromContentBlock(block *schema.ContentBlock) *anthropicContentBlock {
	switch {
	case block.Text != nil:
		if *block.Text == "" {
			return nil
		}
		return &anthropicContentBlock{
			Type: blockTypeText,
			Text: *block.Text,
		}
	case block.ToolCall != nil:
		input := block.ToolCall.Input
		if len(input) == 0 {
			input = json.RawMessage(`{}`)
		}
		return &anthropicContentBlock{
			Type:  blockTypeToolUse,
			ID:    block.ToolCall.ID,
			Name:  block.ToolCall.Name,
			Input: input,
		}
	case block.ToolResult != nil:
		result := &anthropicContentBlock{
			Type:      blockTypeToolResult,
			ToolUseID: block.ToolResult.ID,
			IsError:   block.ToolResult.IsError,
		}
		// Tool result content is either a string or content blocks, so JSON
		// objects are sent as their text
		if content := block.ToolResult.Content; len(content) > 0 {
			if content[0] == '"' {
				result.Content = content
			} else {
				result.Content, _ = json.Marshal(string(content))
			}
		}
		return result
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// ANTHROPIC RESPONSE → SCHEMA MESSAGE

// messageFromResponse converts a response to a message
func messageFromResponse(response *messagesResponse) *schema.Message {
	message := &schema.Message{
		Role:    response.Role,
		Content: make([]schema.ContentBlock, 0, len(response.Content)),
		Result:  resultFromStopReason(response.StopReason),
	}
	if message.Role == "" {
		message.Role = schema.RoleAssistant
	}
	for _, block := range response.Content {
		switch block.Type {
		case blockTypeText:
			message.Content = append(message.Content, schema.ContentBlock{
				Text: &block.Text,
			})
		case blockTypeToolUse:
			message.Content = append(message.Content, schema.ContentBlock{
				ToolCall: &schema.ToolCall{
					ID:    block.ID,
					Name:  block.Name,
					Input: block.Input,
				},
			})
		}
	}
	if response.Id != "" {
		message.Meta = map[string]any{"id": response.Id}
	}
	return message
}

// resultFromStopReason maps Anthropic stop reasons to schema.ResultType
func resultFromStopReason(reason string) schema.ResultType {
	switch reason {
	case stopReasonEndTurn, stopReasonStopSequence:
		return schema.ResultStop
	case stopReasonMaxTokens:
		return schema.ResultMaxTokens
	case stopReasonToolUse:
		return schema.ResultToolCall
	case stopReasonRefusal:
		return schema.ResultBlocked
	default:
		return schema.ResultOther
	}
}

///////////////////////////////////////////////////////////////////////////////
// TOOLS

// toolDefinitions converts tools to Anthropic tool definitions
func toolDefinitions(tools []tool.Tool) ([]toolDefinition, error) {
	result := make([]toolDefinition, 0, len(tools))
	for _, t := range tools {
		s, err := t.Schema()
		if err != nil {
			return nil, meteo.ErrBadParameter.Withf("tool %q: %v", t.Name(), err)
		}
		data := json.RawMessage(`{"type":"object"}`)
		if s != nil {
			if data, err = json.Marshal(s); err != nil {
				return nil, meteo.ErrBadParameter.Withf("tool %q: %v", t.Name(), err)
			}
		}
		result = append(result, toolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: data,
		})
	}
	return result, nil
}
