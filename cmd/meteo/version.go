package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-meteo/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *VersionCommand) Run(ctx *Globals) error {
	fmt.Println(string(version.JSON(ctx.execName)))
	return nil
}
