package anthropic

import (
	"encoding/json"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES - Anthropic REST API wire format
//
// Reference: https://docs.anthropic.com/en/api/messages
//            https://docs.anthropic.com/en/api/models

///////////////////////////////////////////////////////////////////////////////
// MESSAGES - REQUEST

// messagesRequest is the request body for POST /v1/messages
type messagesRequest struct {
	MaxTokens    uint               `json:"max_tokens"`
	Messages     []anthropicMessage `json:"messages"`
	Model        string             `json:"model"`
	OutputFormat *outputFormat      `json:"output_format,omitempty"`
	System       any                `json:"system,omitempty"`
	Temperature  *float64           `json:"temperature,omitempty"`
	ToolChoice   *toolChoice        `json:"tool_choice,omitempty"`
	Tools        []toolDefinition   `json:"tools,omitempty"`
}

// toolChoice specifies whether the model may or must use tools
type toolChoice struct {
	Type string `json:"type"`
}

// toolDefinition declares a tool the model may call
type toolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// outputFormat constrains the response text to a JSON schema
type outputFormat struct {
	Type   string          `json:"type"`
	Schema json.RawMessage `json:"schema"`
}

// textBlockParam is used for system prompts with cache control
type textBlockParam struct {
	Type         string        `json:"type"`
	Text         string        `json:"text"`
	CacheControl *cacheControl `json:"cache_control,omitempty"`
}

type cacheControl struct {
	Type string `json:"type"`
}

///////////////////////////////////////////////////////////////////////////////
// MESSAGES - RESPONSE

// messagesResponse is the response body from POST /v1/messages
type messagesResponse struct {
	Id           string                  `json:"id"`
	Model        string                  `json:"model"`
	Type         string                  `json:"type"`
	Role         string                  `json:"role"`
	Content      []anthropicContentBlock `json:"content"`
	StopReason   string                  `json:"stop_reason"`
	StopSequence *string                 `json:"stop_sequence,omitempty"`
	Usage        messagesUsage           `json:"usage"`
}

type messagesUsage struct {
	InputTokens              uint `json:"input_tokens"`
	OutputTokens             uint `json:"output_tokens"`
	CacheCreationInputTokens uint `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     uint `json:"cache_read_input_tokens,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// CONTENT

// anthropicMessage represents a single turn in a conversation
type anthropicMessage struct {
	Role    string                  `json:"role"`
	Content []anthropicContentBlock `json:"content"`
}

// anthropicContentBlock is a content block. Different block types use
// different subsets of fields.
type anthropicContentBlock struct {
	Type string `json:"type"`

	// text
	Text string `json:"text,omitempty"`

	// tool_use
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// tool_result
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// MODELS

// model is the response for GET /v1/models/{model_id} and each entry in the
// list response
type model struct {
	Id          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// listModelsResponse is the paginated response from GET /v1/models
type listModelsResponse struct {
	Data    []model `json:"data"`
	HasMore bool    `json:"has_more"`
	FirstId string  `json:"first_id"`
	LastId  string  `json:"last_id"`
}

///////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	stopReasonEndTurn      = "end_turn"
	stopReasonMaxTokens    = "max_tokens"
	stopReasonStopSequence = "stop_sequence"
	stopReasonToolUse      = "tool_use"
	stopReasonPauseTurn    = "pause_turn"
	stopReasonRefusal      = "refusal"
)

const (
	blockTypeText       = "text"
	blockTypeToolUse    = "tool_use"
	blockTypeToolResult = "tool_result"
)

const (
	defaultMaxTokens       = 1024
	structuredOutputsBeta  = "structured-outputs-2025-11-13"
	outputFormatJSONSchema = "json_schema"
)
