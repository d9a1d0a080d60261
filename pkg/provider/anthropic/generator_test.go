package anthropic_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"
	meteo "github.com/mutablelogic/go-meteo"
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
	anthropic "github.com/mutablelogic/go-meteo/pkg/provider/anthropic"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

type cityRequest struct {
	City string `json:"city"`
}

type cityTool struct{}

func (cityTool) Name() string                                      { return "get_user_location" }
func (cityTool) Description() string                               { return "Locate a city" }
func (cityTool) Schema() (*jsonschema.Schema, error)               { return jsonschema.For[cityRequest](nil) }
func (cityTool) OutputSchema() (*jsonschema.Schema, error)         { return nil, nil }
func (cityTool) Run(context.Context, json.RawMessage) (any, error) { return nil, nil }

var model = schema.Model{Name: "claude-sonnet-4-5-20250929"}

// newServer returns a messages endpoint which records each request body and
// answers with the given responses in turn
func newServer(t *testing.T, requests *[]map[string]any, responses ...string) *anthropic.Client {
	t.Helper()
	var n atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		body, _ := io.ReadAll(r.Body)
		var request map[string]any
		assert.NoError(t, json.Unmarshal(body, &request))
		*requests = append(*requests, request)

		i := int(n.Add(1)) - 1
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(responses[min(i, len(responses)-1)]))
	}))
	t.Cleanup(server.Close)

	c, err := anthropic.New("test-key", client.OptEndpoint(server.URL+"/v1"))
	require.NoError(t, err)
	return c
}

///////////////////////////////////////////////////////////////////////////////
// REQUEST BUILDING

func Test_GenerateRequest_001(t *testing.T) {
	assert := assert.New(t)

	toolkit, err := tool.NewToolkit(cityTool{})
	require.NoError(t, err)
	conversation := schema.Conversation{schema.NewMessage(schema.RoleUser, "Weather in Paris?")}

	request, err := anthropic.GenerateRequest(model.Name, conversation,
		opt.SetString(opt.SystemPromptKey, "You speak in puns"),
		anthropic.WithTemperature(0),
		anthropic.WithMaxTokens(512),
		opt.SetString(opt.ToolChoiceKey, "any"),
		tool.WithToolkit(toolkit),
	)
	require.NoError(t, err)
	data, err := json.Marshal(request)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal("claude-sonnet-4-5-20250929", body["model"])
	assert.Equal("You speak in puns", body["system"])
	assert.Equal(float64(0), body["temperature"])
	assert.Equal(float64(512), body["max_tokens"])
	assert.Equal(map[string]any{"type": "any"}, body["tool_choice"])
	tools, ok := body["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	assert.Equal("get_user_location", tools[0].(map[string]any)["name"])
	assert.NotNil(tools[0].(map[string]any)["input_schema"])
}

func Test_GenerateRequest_002(t *testing.T) {
	assert := assert.New(t)
	conversation := schema.Conversation{schema.NewMessage(schema.RoleUser, "hello")}

	// Default max tokens, no temperature
	request, err := anthropic.GenerateRequest(model.Name, conversation)
	require.NoError(t, err)
	data, _ := json.Marshal(request)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(float64(1024), body["max_tokens"])
	assert.NotContains(body, "temperature")
	assert.NotContains(body, "tools")

	// Tool choice without tools
	_, err = anthropic.GenerateRequest(model.Name, conversation, opt.SetString(opt.ToolChoiceKey, "any"))
	assert.ErrorIs(err, meteo.ErrBadParameter)

	// Empty conversation
	_, err = anthropic.GenerateRequest(model.Name, nil)
	assert.ErrorIs(err, meteo.ErrBadParameter)
}

func Test_GenerateRequest_003(t *testing.T) {
	assert := assert.New(t)
	conversation := schema.Conversation{schema.NewMessage(schema.RoleUser, "hello")}

	s, err := jsonschema.For[cityRequest](nil)
	require.NoError(t, err)
	data, err := json.Marshal(s)
	require.NoError(t, err)
	request, err := anthropic.GenerateRequest(model.Name, conversation,
		opt.SetString(opt.JSONSchemaKey, string(data)),
		opt.SetString(opt.SystemPromptKey, "system"),
		anthropic.WithPromptCaching(),
	)
	require.NoError(t, err)
	data, _ = json.Marshal(request)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))

	format, ok := body["output_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal("json_schema", format["type"])
	assert.NotNil(format["schema"])

	system, ok := body["system"].([]any)
	require.True(t, ok)
	assert.Equal(map[string]any{"type": "ephemeral"}, system[0].(map[string]any)["cache_control"])
}

func Test_Opts_001(t *testing.T) {
	assert := assert.New(t)
	for _, o := range []opt.Opt{
		anthropic.WithTemperature(1.5),
		anthropic.WithTemperature(-0.1),
		anthropic.WithMaxTokens(0),
		anthropic.WithLimit(0),
		anthropic.WithLimit(1001),
	} {
		_, err := opt.Apply(o)
		assert.ErrorIs(err, meteo.ErrBadParameter)
	}

	options, err := opt.Apply(anthropic.WithTemperature(1), anthropic.WithMaxTokens(1), anthropic.WithPromptCaching())
	require.NoError(t, err)
	assert.Equal(float64(1), options.GetFloat64(opt.TemperatureKey))
	assert.Equal(uint(1), options.GetUint(opt.MaxTokensKey))
	assert.Equal("ephemeral", options.GetString(opt.CacheControlKey))
}

///////////////////////////////////////////////////////////////////////////////
// ROUND TRIP

func Test_WithSession_001(t *testing.T) {
	assert := assert.New(t)
	var requests []map[string]any
	c := newServer(t, &requests,
		`{"id":"msg_1","type":"message","role":"assistant","content":[{"type":"tool_use","id":"toolu_1","name":"get_user_location","input":{"city":"Paris"}}],"stop_reason":"tool_use","usage":{"input_tokens":100,"output_tokens":20}}`,
		`{"id":"msg_2","type":"message","role":"assistant","content":[{"type":"text","text":"Paris is looking sunny!"}],"stop_reason":"end_turn","usage":{"input_tokens":150,"output_tokens":10}}`,
	)
	toolkit, err := tool.NewToolkit(cityTool{})
	require.NoError(t, err)

	var conversation schema.Conversation
	response, usage, err := c.WithSession(context.Background(), model, &conversation, schema.NewMessage(schema.RoleUser, "Weather in Paris?"), tool.WithToolkit(toolkit))
	require.NoError(t, err)
	assert.Equal(schema.ResultToolCall, response.Result)
	assert.Equal(uint(100), usage.InputTokens)
	require.Len(t, conversation, 2)
	assert.Equal(uint(100), conversation[0].Tokens)
	assert.Equal(uint(20), conversation[1].Tokens)

	// Send the tool result
	result := &schema.Message{Role: schema.RoleUser, Content: []schema.ContentBlock{
		schema.NewToolResult("toolu_1", "get_user_location", map[string]any{"city": "Paris", "latitude": 48.8566, "longitude": 2.3522}),
	}}
	response, usage, err = c.WithSession(context.Background(), model, &conversation, result, tool.WithToolkit(toolkit))
	require.NoError(t, err)
	assert.Equal(schema.ResultStop, response.Result)
	assert.Equal("Paris is looking sunny!", response.Text())
	assert.Equal(uint(10), usage.OutputTokens)
	require.Len(t, conversation, 4)
	assert.Equal(uint(160), conversation.Tokens())

	// The second request carried the whole conversation
	require.Len(t, requests, 2)
	messages, ok := requests[1]["messages"].([]any)
	require.True(t, ok)
	assert.Len(messages, 3)
}

func Test_WithSession_002(t *testing.T) {
	assert := assert.New(t)
	var requests []map[string]any
	c := newServer(t, &requests,
		`{"id":"msg_1","type":"message","role":"assistant","content":[],"stop_reason":"refusal","usage":{"input_tokens":10,"output_tokens":0}}`,
	)

	var conversation schema.Conversation
	_, _, err := c.WithSession(context.Background(), model, &conversation, schema.NewMessage(schema.RoleUser, "hello"))
	assert.ErrorIs(err, meteo.ErrRefusal)

	_, _, err = c.WithSession(context.Background(), model, &conversation, nil)
	assert.ErrorIs(err, meteo.ErrBadParameter)
	_, _, err = c.WithSession(context.Background(), model, nil, schema.NewMessage(schema.RoleUser, "hello"))
	assert.ErrorIs(err, meteo.ErrBadParameter)
}

func Test_WithSession_003(t *testing.T) {
	assert := assert.New(t)
	var requests []map[string]any
	c := newServer(t, &requests,
		`{"id":"msg_1","type":"message","role":"assistant","content":[{"type":"text","text":"It was a dark and"}],"stop_reason":"max_tokens","usage":{"input_tokens":10,"output_tokens":5}}`,
	)

	var conversation schema.Conversation
	response, _, err := c.WithSession(context.Background(), model, &conversation, schema.NewMessage(schema.RoleUser, "tell me a story"))
	assert.ErrorIs(err, meteo.ErrMaxTokens)
	require.NotNil(t, response)
	assert.Equal("It was a dark and", response.Text())
}
