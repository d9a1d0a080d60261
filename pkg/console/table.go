package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	termenv "github.com/muesli/termenv"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TableData is implemented by lists which are printed as a table
type TableData interface {
	// Header returns the column labels
	Header() []string

	// Len returns the number of rows
	Len() int

	// Row returns the cells of row i, or nil to skip the row
	Row(i int) []any
}

// Bold marks a cell to be highlighted
type Bold struct{ Value any }

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	empty      = "-"
	timeLayout = "2006-01-02 15:04"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WriteTable writes the data as a bordered table. When width is positive
// and the table is wider, columns are wrapped to fit. Styling is only
// applied when styled is true.
func WriteTable(w io.Writer, data TableData, width int, styled bool) error {
	renderer := lipgloss.NewRenderer(w)
	if !styled {
		renderer.SetColorProfile(termenv.Ascii)
	}
	header := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	bold := renderer.NewStyle().Foreground(lipgloss.Color("11"))
	border := renderer.NewStyle().Faint(true)
	cell := renderer.NewStyle()

	t := lgtable.New().
		Headers(data.Header()...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		Wrap(true).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return header
			}
			return cell
		})
	for i := range data.Len() {
		row := data.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, len(row))
		for j, v := range row {
			if b, ok := v.(Bold); ok {
				cells[j] = bold.Render(FormatCell(b.Value))
			} else {
				cells[j] = FormatCell(v)
			}
		}
		t.Row(cells...)
	}

	// Constrain to the width only when the table does not fit
	result := t.Render()
	if width > 0 && lipgloss.Width(result) > width {
		result = t.Width(width).Render()
	}
	_, err := fmt.Fprintln(w, result)
	return err
}

// FormatCell returns the text of a table cell. Empty and zero values are
// shown as a dash.
func FormatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return empty
	case Bold:
		return FormatCell(v.Value)
	case string:
		if v = strings.TrimSpace(v); v == "" {
			return empty
		}
		return v
	case time.Time:
		if v.IsZero() {
			return empty
		}
		return v.Local().Format(timeLayout)
	case int:
		if v == 0 {
			return empty
		}
		return fmt.Sprint(v)
	case uint:
		if v == 0 {
			return empty
		}
		return fmt.Sprint(v)
	default:
		if s := fmt.Sprint(v); s != "" {
			return s
		}
		return empty
	}
}

// Truncate shortens s to at most n runes on a single line
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); n > 0 && len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
