package main

import (
	"fmt"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	meteo "github.com/mutablelogic/go-meteo"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ListSessionsCommand struct {
	Limit  *uint `name:"limit" help:"Maximum number of sessions to return" optional:""`
	Offset uint  `name:"offset" help:"Offset for pagination" default:"0"`
}

type DeleteSessionCommand struct {
	ID string `arg:"" name:"id" help:"Session ID"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListSessionsCommand) Run(ctx *Globals) (err error) {
	if ctx.SessionDir == "" {
		return meteo.ErrBadParameter.With("no session directory, set --session-dir or METEO_SESSION_DIR")
	}
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ListSessionsCommand")
	defer func() { endSpan(err) }()

	// List sessions
	response, err := store.List(parent, schema.ListSessionRequest{
		Limit:  cmd.Limit,
		Offset: cmd.Offset,
	})
	if err != nil {
		return err
	}

	// Print
	if ctx.Debug {
		fmt.Println(response)
	} else {
		if len(response.Body) > 0 {
			if err := writeTable(SessionTable{Sessions: response.Body}); err != nil {
				return err
			}
		}
		fmt.Println(TableSummary(len(response.Body), int(response.Offset), int(response.Count)))
	}
	return nil
}

func (cmd *DeleteSessionCommand) Run(ctx *Globals) (err error) {
	if ctx.SessionDir == "" {
		return meteo.ErrBadParameter.With("no session directory, set --session-dir or METEO_SESSION_DIR")
	}
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "DeleteSessionCommand",
		attribute.String("id", cmd.ID),
	)
	defer func() { endSpan(err) }()

	return store.Delete(parent, cmd.ID)
}
