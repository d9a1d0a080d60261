package main

import (
	"fmt"
	"os"

	// Packages
	console "github.com/mutablelogic/go-meteo/pkg/console"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	tool "github.com/mutablelogic/go-meteo/pkg/tool"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ModelTable lists models, highlighting the default model
type ModelTable struct {
	Models       []schema.Model
	CurrentModel string
}

// SessionTable lists sessions
type SessionTable struct {
	Sessions []*schema.Session
}

// ToolTable lists tools
type ToolTable []tool.Tool

var _ console.TableData = ModelTable{}
var _ console.TableData = SessionTable{}
var _ console.TableData = ToolTable{}

///////////////////////////////////////////////////////////////////////////////
// MODEL TABLE

func (t ModelTable) Header() []string {
	return []string{"NAME", "DESCRIPTION", "CREATED"}
}

func (t ModelTable) Len() int {
	return len(t.Models)
}

func (t ModelTable) Row(i int) []any {
	m := t.Models[i]
	row := []any{m.Name, m.Description, m.Created}
	if t.CurrentModel != "" && m.Name == t.CurrentModel {
		for j, v := range row {
			row[j] = console.Bold{Value: v}
		}
	}
	return row
}

///////////////////////////////////////////////////////////////////////////////
// SESSION TABLE

func (t SessionTable) Header() []string {
	return []string{"ID", "MODEL", "MESSAGES", "MODIFIED"}
}

func (t SessionTable) Len() int {
	return len(t.Sessions)
}

func (t SessionTable) Row(i int) []any {
	s := t.Sessions[i]
	messages := "-"
	if n := len(s.Messages); n > 0 {
		messages = fmt.Sprintf("%d (%d tokens)", n, s.Messages.Tokens())
	}
	return []any{s.ID, s.Model, messages, s.Modified}
}

///////////////////////////////////////////////////////////////////////////////
// TOOL TABLE

func (t ToolTable) Header() []string {
	return []string{"NAME", "DESCRIPTION"}
}

func (t ToolTable) Len() int {
	return len(t)
}

func (t ToolTable) Row(i int) []any {
	return []any{t[i].Name(), console.Truncate(t[i].Description(), 80)}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// TableSummary returns a human-readable summary of the rows displayed.
// length is the number of rows shown, offset is the starting row index
// and total is the total number of matching rows.
func TableSummary(length, offset, total int) string {
	if total == 0 {
		return "No results"
	}
	if offset == 0 && length >= total {
		return fmt.Sprintf("All %d rows displayed", total)
	}
	return fmt.Sprintf("Displaying rows %d-%d of %d", offset+1, offset+length, total)
}

// terminalWidth returns the width of the file when it is a terminal
func terminalWidth(f *os.File) (int, bool) {
	if !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, true
	}
	return w, true
}
