package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	godotenv "github.com/joho/godotenv"
	client "github.com/mutablelogic/go-client"
	meteo "github.com/mutablelogic/go-meteo"
	openmeteo "github.com/mutablelogic/go-meteo/pkg/openmeteo"
	anthropic "github.com/mutablelogic/go-meteo/pkg/provider/anthropic"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	session "github.com/mutablelogic/go-meteo/pkg/session"
	attribute "go.opentelemetry.io/otel/attribute"
	otlptracehttp "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	resource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Logging and tracing
	Log struct {
		Level  string `name:"level" enum:"debug,info,warn,error" default:"warn" help:"Log level"`
		Format string `name:"format" enum:"text,json" default:"text" help:"Log format"`
	} `embed:"" prefix:"log-"`
	OtelEndpoint string `name:"otel-endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" help:"OpenTelemetry collector endpoint for traces"`

	// Language model
	AnthropicKey string        `name:"anthropic-api-key" env:"ANTHROPIC_API_KEY" help:"Anthropic API key"`
	Model        string        `name:"model" env:"METEO_MODEL" default:"claude-sonnet-4-5-20250929" help:"Model name"`
	Timeout      time.Duration `name:"timeout" default:"2m" help:"HTTP request timeout"`

	// Sessions
	SessionDir string `name:"session-dir" env:"METEO_SESSION_DIR" type:"path" help:"Directory for persistent sessions (in-memory when not set)"`

	// Private fields
	ctx      context.Context
	logger   *slog.Logger
	tracer   trace.Tracer
	execName string
}

type CLI struct {
	Globals

	// Commands
	Chat          ChatCommand          `cmd:"" name:"chat" default:"withargs" help:"Ask the weather agent (default)." group:"CHAT"`
	ListModels    ListModelsCommand    `cmd:"" name:"models" help:"List models." group:"MODEL"`
	GetModel      GetModelCommand      `cmd:"" name:"model" help:"Get model." group:"MODEL"`
	ListSessions  ListSessionsCommand  `cmd:"" name:"sessions" help:"List sessions." group:"SESSION"`
	DeleteSession DeleteSessionCommand `cmd:"" name:"delete-session" help:"Delete a session." group:"SESSION"`
	ListTools     ListToolsCommand     `cmd:"" name:"tools" help:"List tools." group:"TOOL"`
	Version       VersionCommand       `cmd:"" name:"version" help:"Print version information."`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Read a .env file in the working directory, if there is one
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Weather agent which speaks in puns"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	cli.Globals.execName = execName()

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx

	// Logging
	cli.Globals.logger = newLogger(cli.Log.Level, cli.Log.Format, cli.Debug)

	// Tracing
	if cli.OtelEndpoint != "" {
		provider, err := newTracerProvider(ctx, cli.OtelEndpoint, cli.Globals.execName)
		cmd.FatalIfErrorf(err)
		defer func() {
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(shutdown); err != nil {
				cli.Globals.logger.Warn("trace shutdown", "error", err)
			}
		}()
		cli.Globals.tracer = provider.Tracer(cli.Globals.execName)
	}

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Anthropic returns a client for the language model
func (g *Globals) Anthropic() (*anthropic.Client, error) {
	if g.AnthropicKey == "" {
		return nil, meteo.ErrBadParameter.With("no API key configured, set --anthropic-api-key or ANTHROPIC_API_KEY")
	}
	return anthropic.New(g.AnthropicKey, g.clientOpts()...)
}

// OpenMeteo returns a client for the geocoding and forecast endpoints
func (g *Globals) OpenMeteo() (*openmeteo.Client, error) {
	return openmeteo.New(
		openmeteo.WithClientOpts(g.clientOpts()...),
		openmeteo.WithLogger(g.logger),
	)
}

// Store returns the session store, which is file-backed when a session
// directory is set
func (g *Globals) Store() (schema.SessionStore, error) {
	if g.SessionDir == "" {
		return session.NewMemoryStore(), nil
	}
	return session.NewFileStore(g.SessionDir)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (g *Globals) clientOpts() []client.ClientOpt {
	result := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		result = append(result, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.tracer != nil {
		result = append(result, client.OptTracer(g.tracer))
	}
	if g.Timeout > 0 {
		result = append(result, client.OptTimeout(g.Timeout))
	}
	return result
}

func newLogger(level, format string, debug bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil || debug {
		lvl = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newTracerProvider(ctx context.Context, endpoint, name string) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", name),
		)),
	), nil
}

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
