package main

import (
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ListToolsCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCommand) Run(ctx *Globals) error {
	weather, err := ctx.OpenMeteo()
	if err != nil {
		return err
	}
	tools := weather.Tools()
	if err := writeTable(ToolTable(tools)); err != nil {
		return err
	}
	fmt.Println(TableSummary(len(tools), 0, len(tools)))
	return nil
}
