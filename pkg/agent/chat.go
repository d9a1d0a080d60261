package agent

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	meteo "github.com/mutablelogic/go-meteo"
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
	attribute "go.opentelemetry.io/otel/attribute"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Chat sends text within the session and returns the answer. When format is
// nil the session format is used, and when neither is set the answer is the
// JSON-encoded text of the final response. The session is rolled back to its
// state before the turn on any error, and written to the store on success.
func (a *Agent) Chat(ctx context.Context, session *schema.Session, text string, format *jsonschema.Schema) (answer json.RawMessage, err error) {
	if session == nil {
		return nil, meteo.ErrBadParameter.With("session is required")
	}
	ctx, endSpan := otel.StartSpan(a.tracer, ctx, "Chat",
		attribute.String("session", session.ID),
	)
	defer func() { endSpan(err) }()

	// Determine the answer schema
	if format == nil {
		if format, err = session.Format.Schema(); err != nil {
			return nil, meteo.ErrBadParameter.Withf("session format: %v", err)
		}
	}

	// Build the generation options
	opts, err := a.generateOpts(session.GeneratorMeta, format)
	if err != nil {
		return nil, err
	}
	model := a.model
	if session.Model != "" && session.Model != model.Name {
		model = schema.Model{Name: session.Model, OwnedBy: session.Provider}
	}

	// Roll back to the snapshot on any error
	snapshot := len(session.Messages)
	defer func() {
		if err != nil {
			session.Messages.Truncate(snapshot)
		}
	}()

	var usage schema.Usage
	message := schema.NewMessage(schema.RoleUser, text)
	for i := uint(0); i < a.maxIterations; i++ {
		var result *schema.Message
		var u *schema.Usage
		if result, u, err = a.generator.WithSession(ctx, model, &session.Messages, message, opts...); err != nil {
			return nil, err
		}
		usage.Add(u)

		// Extract a structured answer
		var extractErr error
		if format != nil {
			answer, extractErr = a.contract.Extract(format, result)
			if answer != nil {
				a.replaceLast(session, answer)
				return a.done(ctx, session, answer, usage, i+1)
			}
		}

		// The model stopped without calling tools
		calls := result.ToolCalls()
		if len(calls) == 0 {
			if format == nil {
				if answer, err = json.Marshal(result.Text()); err != nil {
					return nil, meteo.ErrInternalServerError.With(err)
				}
				return a.done(ctx, session, answer, usage, i+1)
			} else if extractErr != nil {
				return nil, meteo.ErrUpstream.Withf("invalid answer: %v", extractErr)
			}
			return nil, meteo.ErrUpstream.With("model stopped without an answer")
		}

		// Run the tools and send the results back
		message = &schema.Message{
			Role:    schema.RoleUser,
			Content: a.runTools(ctx, calls, format, extractErr),
		}
	}

	return nil, meteo.ErrMaxIterations.Withf("no answer after %d iterations", a.maxIterations)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// generateOpts returns the options for every model call in a turn
func (a *Agent) generateOpts(meta schema.GeneratorMeta, format *jsonschema.Schema) ([]opt.Opt, error) {
	var opts []opt.Opt

	system := meta.SystemPrompt
	if format != nil {
		if system != "" {
			system += "\n\n"
		}
		system += a.contract.Instruction()
	}
	if system != "" {
		opts = append(opts, opt.SetString(opt.SystemPromptKey, system))
	}
	if meta.Temperature != nil {
		opts = append(opts, opt.SetFloat64(opt.TemperatureKey, *meta.Temperature))
	}
	if meta.MaxTokens > 0 {
		opts = append(opts, opt.SetUint(opt.MaxTokensKey, meta.MaxTokens))
	}
	if len(a.toolkit.Tools()) > 0 {
		opts = append(opts, tool.WithToolkit(a.toolkit))
	}
	if format != nil {
		contractOpts, err := a.contract.Options(format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, contractOpts...)
	}
	return append(opts, a.opts...), nil
}

// replaceLast replaces the response which carried the answer with a plain
// assistant message, so no unanswered tool call is left in the history
func (a *Agent) replaceLast(session *schema.Session, answer json.RawMessage) {
	last := session.Messages.Last()
	if last == nil {
		return
	}
	message := schema.NewMessage(schema.RoleAssistant, string(answer))
	message.Tokens = last.Tokens
	message.Result = schema.ResultStop
	session.Messages[len(session.Messages)-1] = message
}

// done persists the session at the end of a successful turn
func (a *Agent) done(ctx context.Context, session *schema.Session, answer json.RawMessage, usage schema.Usage, iterations uint) (json.RawMessage, error) {
	if err := a.store.Write(session); err != nil {
		return nil, err
	}
	a.logger.DebugContext(ctx, "turn complete",
		"session", session.ID,
		"iterations", iterations,
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
	)
	return answer, nil
}

// runTools executes tool calls concurrently and returns their results in the
// order of the calls. A call to the output tool which failed validation is
// answered with the validation error so the model can try again.
func (a *Agent) runTools(ctx context.Context, calls []schema.ToolCall, format *jsonschema.Schema, extractErr error) []schema.ContentBlock {
	results := make([]schema.ContentBlock, len(calls))

	wg, ctx := errgroup.WithContext(ctx)
	wg.SetLimit(a.parallel)
	for i, call := range calls {
		if call.Name == tool.OutputToolName && format != nil {
			if extractErr == nil {
				extractErr = meteo.ErrBadParameter.With("output was not accepted")
			}
			results[i] = schema.NewToolError(call.ID, call.Name, extractErr)
			continue
		}
		wg.Go(func() error {
			results[i] = a.runTool(ctx, call)
			return nil
		})
	}

	// Tool errors are returned to the model, so the group never fails
	_ = wg.Wait()
	return results
}

func (a *Agent) runTool(ctx context.Context, call schema.ToolCall) schema.ContentBlock {
	var err error
	ctx, endSpan := otel.StartSpan(a.tracer, ctx, "Tool",
		attribute.String("name", call.Name),
	)
	defer func() { endSpan(err) }()

	a.logger.DebugContext(ctx, "tool call", "tool", a.toolkit.Feedback(call), "input", string(call.Input))
	output, err := a.toolkit.Run(ctx, call.Name, call.Input)
	if err != nil {
		a.logger.DebugContext(ctx, "tool error", "tool", call.Name, "error", err)
		return schema.NewToolError(call.ID, call.Name, err)
	}
	return schema.NewToolResult(call.ID, call.Name, output)
}
