package main

import (
	"fmt"
	"os"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	console "github.com/mutablelogic/go-meteo/pkg/console"
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
	anthropic "github.com/mutablelogic/go-meteo/pkg/provider/anthropic"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ListModelsCommand struct {
	Limit   *uint  `name:"limit" help:"Maximum number of models to return (1 to 1000)" optional:""`
	AfterId string `name:"after" help:"Return models after this model ID" optional:""`
}

type GetModelCommand struct {
	Name string `arg:"" name:"name" help:"Model name"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListModelsCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Anthropic()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ListModelsCommand")
	defer func() { endSpan(err) }()

	// Build options
	opts := []opt.Opt{}
	if cmd.Limit != nil {
		opts = append(opts, anthropic.WithLimit(*cmd.Limit))
	}
	if cmd.AfterId != "" {
		opts = append(opts, anthropic.WithAfterId(cmd.AfterId))
	}

	// List models
	models, err := client.ListModels(parent, opts...)
	if err != nil {
		return err
	}

	// Print
	if ctx.Debug {
		fmt.Println(models)
	} else {
		if len(models) > 0 {
			if err := writeTable(ModelTable{Models: models, CurrentModel: ctx.Model}); err != nil {
				return err
			}
		}
		fmt.Println(TableSummary(len(models), 0, len(models)))
	}
	return nil
}

func (cmd *GetModelCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Anthropic()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "GetModelCommand",
		attribute.String("name", cmd.Name),
	)
	defer func() { endSpan(err) }()

	model, err := client.GetModel(parent, cmd.Name)
	if err != nil {
		return err
	}
	fmt.Println(model)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// writeTable prints a table on stdout, styled and fitted to the width when
// stdout is a terminal
func writeTable(data console.TableData) error {
	width, styled := terminalWidth(os.Stdout)
	return console.WriteTable(os.Stdout, data, width, styled)
}
