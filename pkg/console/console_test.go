package console_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	// Packages
	console "github.com/mutablelogic/go-meteo/pkg/console"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

type reply struct {
	response, details string
}

func (r reply) Response() string { return r.response }
func (r reply) Details() string  { return r.details }

type responder struct {
	lines []string
	err   error
}

func (r *responder) Respond(_ context.Context, text string) (console.Reply, error) {
	r.lines = append(r.lines, text)
	if r.err != nil {
		return nil, r.err
	}
	return reply{"It's " + text, "Données: unknown"}, nil
}

const header = console.Banner + "\n\n" + console.Greeting + "\n\n"

func run(t *testing.T, input string, r *responder, opts ...console.Opt) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := console.New(strings.NewReader(input), &out, opts...).Run(context.Background(), r)
	return out.String(), err
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_Loop_001(t *testing.T) {
	assert := assert.New(t)

	// Exit in any case makes no responder call
	for _, input := range []string{"exit\n", "EXIT\n", "  Exit  \n", "eXiT\nParis\n"} {
		r := &responder{}
		out, err := run(t, input, r)
		assert.NoError(err)
		assert.Empty(r.lines)
		assert.Equal(header+console.Goodbye+"\n", out)
	}
}

func Test_Loop_002(t *testing.T) {
	assert := assert.New(t)

	r := &responder{}
	out, err := run(t, "Paris\n\n   \nexit\n", r)
	assert.NoError(err)
	assert.Equal([]string{"Paris"}, r.lines)
	assert.Equal(header+
		"Agent: It's Paris\n\n"+
		"Données: unknown\n\n"+
		console.Goodbye+"\n", out)
}

func Test_Loop_003(t *testing.T) {
	assert := assert.New(t)

	// End of input behaves like exit
	r := &responder{}
	out, err := run(t, "Lyon", r)
	assert.NoError(err)
	assert.Equal([]string{"Lyon"}, r.lines)
	assert.True(strings.HasSuffix(out, console.Goodbye+"\n"))

	out, err = run(t, "", &responder{})
	assert.NoError(err)
	assert.Equal(header+console.Goodbye+"\n", out)
}

func Test_Loop_004(t *testing.T) {
	assert := assert.New(t)

	// Responder errors end the loop
	failure := errors.New("agent failed")
	r := &responder{err: failure}
	out, err := run(t, "Paris\nLyon\n", r)
	assert.ErrorIs(err, failure)
	assert.Equal([]string{"Paris"}, r.lines)
	assert.NotContains(out, console.Goodbye)
}

func Test_Loop_005(t *testing.T) {
	assert := assert.New(t)

	// The prompt is printed before each read when interactive
	out, err := run(t, "Paris\nexit\n", &responder{}, console.WithInteractive(true))
	assert.NoError(err)
	assert.Equal(2, strings.Count(out, console.Prompt))
}

func Test_Loop_006(t *testing.T) {
	assert := assert.New(t)

	// Responses are wrapped to the width
	out, err := run(t, "the quick brown fox jumps over the lazy dog\n", &responder{}, console.WithWidth(20))
	assert.NoError(err)
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Agent:") {
			assert.LessOrEqual(len(line), len("Agent: ")+20)
		}
	}
}

func Test_Loop_007(t *testing.T) {
	// Cancelling the context ends a blocked read
	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- console.New(reader, io.Discard).Run(ctx, &responder{})
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		require.Fail(t, "loop did not end")
	}
}

func Test_Loop_008(t *testing.T) {
	// The reader stops when the loop returns with input left unread
	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		_, err := run(t, "exit\nParis\nLyon\n", &responder{})
		require.NoError(t, err)
		_, err = run(t, "Paris\nLyon\n", &responder{err: errors.New("agent failed")})
		require.Error(t, err)
	}
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 5*time.Second, 10*time.Millisecond)
}

///////////////////////////////////////////////////////////////////////////////
// TABLE

type rows [][]any

func (r rows) Header() []string { return []string{"Name", "Created", "Count"} }
func (r rows) Len() int         { return len(r) }
func (r rows) Row(i int) []any  { return r[i] }

func Test_Table_001(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	err := console.WriteTable(&out, rows{
		{console.Bold{Value: "claude-sonnet-4-5"}, time.Time{}, uint(3)},
		nil,
		{"", time.Date(2025, 9, 29, 12, 0, 0, 0, time.Local), 0},
	}, 0, false)
	require.NoError(t, err)
	assert.Contains(out.String(), "Name")
	assert.Contains(out.String(), "claude-sonnet-4-5")
	assert.Contains(out.String(), "2025-09-29 12:00")
	assert.Contains(out.String(), "-")
	assert.NotContains(out.String(), "\x1b[")
}

func Test_FormatCell_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("-", console.FormatCell(nil))
	assert.Equal("-", console.FormatCell(""))
	assert.Equal("-", console.FormatCell(0))
	assert.Equal("-", console.FormatCell(uint(0)))
	assert.Equal("-", console.FormatCell(time.Time{}))
	assert.Equal("42", console.FormatCell(42))
	assert.Equal("x", console.FormatCell(console.Bold{Value: "x"}))
	assert.Equal("a b", console.Truncate("a\n  b", 10))
	assert.Equal("abc…", console.Truncate("abcdefgh", 4))
}
