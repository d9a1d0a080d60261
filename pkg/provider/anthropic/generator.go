package anthropic

import (
	"context"
	"encoding/json"

	// Packages
	client "github.com/mutablelogic/go-client"
	meteo "github.com/mutablelogic/go-meteo"
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithSession appends the message to the conversation, sends the conversation
// and appends the response (stateful)
func (c *Client) WithSession(ctx context.Context, model schema.Model, conversation *schema.Conversation, message *schema.Message, opts ...opt.Opt) (*schema.Message, *schema.Usage, error) {
	if conversation == nil {
		return nil, nil, meteo.ErrBadParameter.With("conversation is required")
	}
	if message == nil {
		return nil, nil, meteo.ErrBadParameter.With("message is required")
	}
	conversation.Append(*message)
	return c.generate(ctx, model.Name, conversation, opts...)
}

// GenerateRequest builds a messages request from options without sending
// it. Useful for testing and debugging.
func GenerateRequest(model string, conversation schema.Conversation, opts ...opt.Opt) (any, error) {
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}
	return generateRequestFromOpts(model, conversation, options)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// generate builds a request from options, sends it and appends the response
// to the conversation
func (c *Client) generate(ctx context.Context, model string, conversation *schema.Conversation, opts ...opt.Opt) (*schema.Message, *schema.Usage, error) {
	if model == "" {
		return nil, nil, meteo.ErrBadParameter.With("model is required")
	}
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, nil, err
	}

	// Build request
	request, err := generateRequestFromOpts(model, *conversation, options)
	if err != nil {
		return nil, nil, err
	}
	payload, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, nil, err
	}

	// Structured output is a beta feature
	reqopts := []client.RequestOpt{client.OptPath("messages")}
	if request.OutputFormat != nil {
		reqopts = append(reqopts, client.OptReqHeader("anthropic-beta", structuredOutputsBeta))
	}

	var response messagesResponse
	if err := c.DoWithContext(ctx, payload, &response, reqopts...); err != nil {
		return nil, nil, err
	}
	return processResponse(&response, conversation)
}

// processResponse appends the response to the conversation with its token
// counts, and maps stop reasons which need caller attention to errors
func processResponse(response *messagesResponse, conversation *schema.Conversation) (*schema.Message, *schema.Usage, error) {
	usage := &schema.Usage{
		InputTokens:  response.Usage.InputTokens + response.Usage.CacheCreationInputTokens + response.Usage.CacheReadInputTokens,
		OutputTokens: response.Usage.OutputTokens,
	}

	// Refusal: no message to append
	if response.StopReason == stopReasonRefusal {
		return nil, usage, meteo.ErrRefusal
	}

	message := messageFromResponse(response)
	conversation.AppendWithOutput(*message, usage.InputTokens, usage.OutputTokens)

	switch response.StopReason {
	case stopReasonMaxTokens:
		return message, usage, meteo.ErrMaxTokens
	case stopReasonPauseTurn:
		return message, usage, meteo.ErrPauseTurn
	}
	return message, usage, nil
}

///////////////////////////////////////////////////////////////////////////////
// REQUEST BUILDING

// generateRequestFromOpts builds a messagesRequest from the conversation
// and applied options
func generateRequestFromOpts(model string, conversation schema.Conversation, options *opt.Options) (*messagesRequest, error) {
	messages := anthropicMessagesFromConversation(conversation)
	if len(messages) == 0 {
		return nil, meteo.ErrBadParameter.With("at least one message is required")
	}

	request := &messagesRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: defaultMaxTokens,
	}

	// System prompt, plain or cached
	if system := options.GetString(opt.SystemPromptKey); system != "" {
		if cache := options.GetString(opt.CacheControlKey); cache != "" {
			request.System = []textBlockParam{{
				Type:         blockTypeText,
				Text:         system,
				CacheControl: &cacheControl{Type: cache},
			}}
		} else {
			request.System = system
		}
	}

	// Sampling
	if options.Has(opt.MaxTokensKey) {
		request.MaxTokens = options.GetUint(opt.MaxTokensKey)
	}
	if options.Has(opt.TemperatureKey) {
		v := options.GetFloat64(opt.TemperatureKey)
		request.Temperature = &v
	}

	// Output format
	if data := options.GetString(opt.JSONSchemaKey); data != "" {
		if !json.Valid([]byte(data)) {
			return nil, meteo.ErrBadParameter.With("invalid JSON schema for output format")
		}
		request.OutputFormat = &outputFormat{
			Type:   outputFormatJSONSchema,
			Schema: json.RawMessage(data),
		}
	}

	// Tools
	tools, err := toolDefinitions(tool.ToolsFromOpts(options))
	if err != nil {
		return nil, err
	}
	if len(tools) > 0 {
		request.Tools = tools
	}

	// Tool choice only makes sense with tools
	if choice := options.GetString(opt.ToolChoiceKey); choice != "" {
		if len(tools) == 0 && choice != "none" {
			return nil, meteo.ErrBadParameter.Withf("tool_choice %q requires tools", choice)
		}
		request.ToolChoice = &toolChoice{Type: choice}
	}

	return request, nil
}
