package main

import (
	"context"
	"errors"
	"os"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	meteo "github.com/mutablelogic/go-meteo"
	agent "github.com/mutablelogic/go-meteo/pkg/agent"
	console "github.com/mutablelogic/go-meteo/pkg/console"
	forecaster "github.com/mutablelogic/go-meteo/pkg/forecaster"
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
	anthropic "github.com/mutablelogic/go-meteo/pkg/provider/anthropic"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
	types "github.com/mutablelogic/go-server/pkg/types"
	attribute "go.opentelemetry.io/otel/attribute"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ChatCommand struct {
	Format        string   `name:"format" enum:"full,brief" default:"full" help:"Answer format (full or brief)"`
	Output        string   `name:"output" enum:"tool,native" default:"tool" help:"How the answer is obtained from the model (tool or native)"`
	Session       string   `name:"session" help:"Resume the session with this ID" optional:""`
	Forget        bool     `name:"forget" help:"Delete the session on exit"`
	Agent         string   `name:"agent" type:"existingfile" help:"Agent definition file (YAML)" optional:""`
	Temperature   *float64 `name:"temperature" help:"Sampling temperature (0 to 1)" optional:""`
	MaxTokens     uint     `name:"max-tokens" default:"1024" help:"Maximum tokens in each response"`
	MaxIterations uint     `name:"max-iterations" default:"10" help:"Maximum model calls for each question"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ChatCommand) Run(ctx *Globals) (err error) {
	variant, err := forecaster.ParseVariant(cmd.Format)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ChatCommand",
		attribute.String("format", string(variant)),
		attribute.String("output", cmd.Output),
	)
	defer func() { endSpan(err) }()

	// Generation parameters, with the agent definition applied on top
	meta := schema.GeneratorMeta{
		Provider:     schema.Anthropic,
		Model:        ctx.Model,
		SystemPrompt: forecaster.SystemPrompt(variant),
		Temperature:  types.Ptr(types.Value(cmd.Temperature)),
		MaxTokens:    cmd.MaxTokens,
	}
	var tools []string
	if cmd.Agent != "" {
		definition, err := readAgent(cmd.Agent)
		if err != nil {
			return err
		}
		meta = definition.Merge(meta)
		tools = definition.Tools
	}

	// Provider options, which validate the generation parameters
	providerOpts, err := generatorOpts(meta)
	if err != nil {
		return err
	}

	// Model
	provider, err := ctx.Anthropic()
	if err != nil {
		return err
	}
	model, err := provider.GetModel(parent, meta.Model)
	if err != nil {
		return err
	}

	// Tools
	weather, err := ctx.OpenMeteo()
	if err != nil {
		return err
	}
	toolset, err := selectTools(weather.Tools(), tools)
	if err != nil {
		return err
	}

	// Agent
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	opts := []agent.Opt{
		agent.WithTools(toolset...),
		agent.WithStore(store),
		agent.WithMaxIterations(cmd.MaxIterations),
		agent.WithGeneratorOpts(providerOpts...),
		agent.WithTracer(ctx.tracer),
		agent.WithLogger(ctx.logger),
	}
	if cmd.Output == "native" {
		opts = append(opts, agent.WithOutput(agent.NativeOutput{}))
	}
	a, err := agent.New(provider, *model, opts...)
	if err != nil {
		return err
	}

	// Session
	session, err := cmd.session(parent, a, meta, ctx.execName)
	if err != nil {
		return err
	}
	if cmd.Forget || ctx.SessionDir == "" {
		defer func() {
			if err := a.DestroySession(context.WithoutCancel(parent), session); err != nil {
				ctx.logger.Warn("destroy session", "session", session.ID, "error", err)
			}
		}()
	} else {
		defer ctx.logger.Info("session saved", "session", session.ID, "dir", ctx.SessionDir)
	}

	// Run the loop until exit
	f, err := forecaster.New(a, session, variant)
	if err != nil {
		return err
	}
	err = newLoop().Run(parent, f)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// session resumes the session with the command ID or creates a new one. A
// resumed session takes the generation parameters of this command, so the
// system prompt always matches the answer format.
func (cmd *ChatCommand) session(ctx context.Context, a *agent.Agent, meta schema.GeneratorMeta, name string) (*schema.Session, error) {
	if cmd.Session != "" {
		session, err := a.ResumeSession(ctx, cmd.Session)
		if err != nil {
			return nil, err
		}
		refresh(session, meta)
		return session, nil
	}
	return a.CreateSession(ctx, schema.SessionMeta{
		Name:          name,
		GeneratorMeta: meta,
	})
}

// selectTools returns the named tools, or all tools when no names are given
func selectTools(all []tool.Tool, names []string) ([]tool.Tool, error) {
	if len(names) == 0 {
		return all, nil
	}
	toolkit, err := tool.NewToolkit(all...)
	if err != nil {
		return nil, err
	}
	result := make([]tool.Tool, 0, len(names))
	for _, name := range names {
		t := toolkit.Lookup(name)
		if t == nil {
			return nil, meteo.ErrNotFound.Withf("tool %q", name)
		}
		result = append(result, t)
	}
	return result, nil
}

// refresh replaces the generation parameters of a session, keeping its
// provider and model when meta names none
func refresh(session *schema.Session, meta schema.GeneratorMeta) {
	if meta.Provider == "" {
		meta.Provider = session.Provider
	}
	if meta.Model == "" {
		meta.Model = session.Model
	}
	session.GeneratorMeta = meta
}

// generatorOpts returns the provider options for every request. The system
// prompt is constant within a session, so it is cached.
func generatorOpts(meta schema.GeneratorMeta) ([]opt.Opt, error) {
	opts := []opt.Opt{
		anthropic.WithPromptCaching(),
	}
	if meta.Temperature != nil {
		opts = append(opts, anthropic.WithTemperature(*meta.Temperature))
	}
	if meta.MaxTokens > 0 {
		opts = append(opts, anthropic.WithMaxTokens(meta.MaxTokens))
	}
	if _, err := opt.Apply(opts...); err != nil {
		return nil, err
	}
	return opts, nil
}

func readAgent(path string) (schema.AgentMeta, error) {
	r, err := os.Open(path)
	if err != nil {
		return schema.AgentMeta{}, err
	}
	defer r.Close()
	return schema.ReadAgentMeta(r)
}

// newLoop returns a console loop on stdin and stdout, with a prompt and
// styling when both are terminals
func newLoop() *console.Loop {
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	width := 0
	if interactive {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w - len("Agent: ")
		}
	}
	return console.New(os.Stdin, os.Stdout,
		console.WithInteractive(interactive),
		console.WithWidth(width),
	)
}
