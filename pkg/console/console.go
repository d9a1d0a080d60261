/*
console runs a line-oriented conversation over a reader and a writer,
forwarding each line to a responder and printing its reply.
*/
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	wordwrap "github.com/muesli/reflow/wordwrap"
	termenv "github.com/muesli/termenv"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Reply is a structured answer to a line of text
type Reply interface {
	// Response returns the text of the answer
	Response() string

	// Details returns a line of data printed after the response
	Details() string
}

// Responder answers lines of text
type Responder interface {
	Respond(ctx context.Context, text string) (Reply, error)
}

// Loop reads lines until the user exits or the input ends
type Loop struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	width       int
	styles      styles
}

type styles struct {
	prompt  lipgloss.Style
	agent   lipgloss.Style
	details lipgloss.Style
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Banner   = "Weather Agent (type 'exit' to quit)"
	Greeting = "Vous voulez connaître la météo ? Demandez-moi !"
	Prompt   = "You: "
	Goodbye  = "Goodbye"
	exitWord = "exit"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a loop reading from in and writing to out. By default the loop
// is not interactive, so no prompt is printed and output is not styled.
func New(in io.Reader, out io.Writer, opts ...Opt) *Loop {
	self := &Loop{
		in:  in,
		out: out,
	}
	for _, opt := range opts {
		opt(self)
	}

	// Plain output unless writing to a terminal
	renderer := lipgloss.NewRenderer(out)
	if !self.interactive {
		renderer.SetColorProfile(termenv.Ascii)
	}
	self.styles = styles{
		prompt:  renderer.NewStyle().Foreground(lipgloss.Color("14")),
		agent:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		details: renderer.NewStyle().Faint(true),
	}
	return self
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Run prints the banner and answers each line with the responder. It returns
// nil when the user types exit or the input ends, and otherwise the first
// read or responder error. Cancelling the context ends the loop with the
// context error.
func (l *Loop) Run(ctx context.Context, responder Responder) error {
	l.println(Banner)
	l.println("")
	l.println(Greeting)
	l.println("")

	// Stops the reader when the loop returns
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := l.readLines(ctx)
	for {
		if l.interactive {
			fmt.Fprint(l.out, l.styles.prompt.Render(Prompt))
		}

		var line read
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
			if !ok {
				return ctx.Err()
			}
		}
		if line.err == io.EOF {
			if l.interactive {
				l.println("")
			}
			l.println(Goodbye)
			return nil
		} else if line.err != nil {
			return line.err
		}

		// Interpret the line
		text := strings.TrimSpace(line.text)
		if text == "" {
			continue
		} else if strings.EqualFold(text, exitWord) {
			l.println(Goodbye)
			return nil
		}

		reply, err := responder.Respond(ctx, text)
		if err != nil {
			return err
		}
		l.reply(reply)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

type read struct {
	text string
	err  error
}

// readLines reads lines in the background until the input ends, so a
// blocked read does not prevent cancellation
func (l *Loop) readLines(ctx context.Context) <-chan read {
	ch := make(chan read)
	go func() {
		defer close(ch)
		send := func(r read) bool {
			select {
			case ch <- r:
				return true
			case <-ctx.Done():
				return false
			}
		}
		scanner := bufio.NewScanner(l.in)
		for scanner.Scan() {
			if !send(read{text: scanner.Text()}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			send(read{err: err})
		} else {
			send(read{err: io.EOF})
		}
	}()
	return ch
}

func (l *Loop) reply(reply Reply) {
	response := reply.Response()
	if l.width > 0 {
		response = wordwrap.String(response, l.width)
	}
	fmt.Fprintln(l.out, l.styles.agent.Render("Agent:"), response)
	l.println("")
	fmt.Fprintln(l.out, l.styles.details.Render(reply.Details()))
	l.println("")
}

func (l *Loop) println(text string) {
	fmt.Fprintln(l.out, text)
}
