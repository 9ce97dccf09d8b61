package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbsecret/kbsecret/internal/exitcode"
)

func countLines(s string) int {
	return len(strings.Split(strings.TrimRight(s, "\n"), "\n"))
}

func withOptions(c *Context) error {
	return c.ParseOptions(sessionOptions)
}

func TestInfo_GatedByVerbose(t *testing.T) {
	res := run(t, nil, withOptions).then(func(c *Context) {
		for i := 0; i < 10; i++ {
			c.Info("quiet")
		}
	})
	require.False(t, res.exited)
	assert.Empty(t, res.stderr.String())
	assert.Empty(t, res.stdout.String())

	res = run(t, []string{"--verbose"}, withOptions).then(func(c *Context) {
		c.Info("loud")
	})
	assert.Equal(t, "Info: loud\n", res.stderr.String())
	assert.Empty(t, res.stdout.String())
}

func TestInfo_BeforeParsing(t *testing.T) {
	res := run(t, nil, func(c *Context) error { return nil }).then(func(c *Context) {
		c.Info("nobody hears this")
	})
	assert.Empty(t, res.stderr.String())
}

func TestWarn(t *testing.T) {
	res := run(t, nil, withOptions).then(func(c *Context) { c.Warn("careful") })
	assert.Equal(t, "Warning: careful\n", res.stderr.String())

	res = run(t, []string{"-w"}, withOptions).then(func(c *Context) { c.Warn("careful") })
	assert.Empty(t, res.stderr.String())
}

func TestBye(t *testing.T) {
	res := run(t, []string{"-V"}, withOptions).then(func(c *Context) { c.Bye("all done") })
	assert.True(t, res.exited)
	assert.Equal(t, exitcode.OK, res.code)
	assert.Equal(t, "Info: all done\n", res.stderr.String())

	res = run(t, nil, withOptions).then(func(c *Context) { c.Bye("all done") })
	assert.True(t, res.exited)
	assert.Equal(t, exitcode.OK, res.code)
	assert.Empty(t, res.stderr.String())
}

func TestDie_IgnoresFlags(t *testing.T) {
	res := run(t, []string{"-w"}, withOptions).then(func(c *Context) { c.Die("Broken.") })
	assert.True(t, res.exited)
	assert.Equal(t, exitcode.Failure, res.code)
	assert.Equal(t, "Fatal: Broken.\n", res.stderr.String())
}

func TestGuard_FormatsErrors(t *testing.T) {
	res := run(t, nil, withOptions).then(func(c *Context) {
		c.Guard(func() error { return errors.New("something went wrong") })
	})
	assert.Equal(t, exitcode.Failure, res.code)
	assert.Equal(t, "Fatal: Something went wrong.\n", res.stderr.String())
}

func TestGuard_FatalStaysOnOneLine(t *testing.T) {
	res := run(t, nil, withOptions).then(func(c *Context) {
		c.Guard(func() error { return errors.New("generator failed:\nexit status 2\n") })
	})
	assert.Equal(t, exitcode.Failure, res.code)
	assert.Equal(t, "Fatal: Generator failed: exit status 2.\n", res.stderr.String())
}

func TestGuard_Panics(t *testing.T) {
	res := run(t, nil, withOptions).then(func(c *Context) {
		c.Guard(func() error {
			var m map[string]int
			m["boom"]++
			return nil
		})
	})
	assert.Equal(t, exitcode.Failure, res.code)
	assert.Contains(t, res.stderr.String(), "Fatal: Assignment to entry in nil map.")
	assert.Equal(t, 1, countLines(res.stderr.String()))
}

func TestGuard_NilAndDone(t *testing.T) {
	res := run(t, nil, withOptions).then(func(c *Context) {
		c.Guard(func() error { return nil })
	})
	assert.False(t, res.exited)

	res = run(t, nil, withOptions).then(func(c *Context) {
		c.Guard(func() error { return fmt.Errorf("listed: %w", exitcode.ErrDone) })
	})
	assert.True(t, res.exited)
	assert.Equal(t, exitcode.OK, res.code)
	assert.Empty(t, res.stderr.String())
}

func TestGuard_DebugTrace(t *testing.T) {
	res := run(t, []string{"--debug"}, withOptions).then(func(c *Context) {
		c.Guard(func() error {
			return fmt.Errorf("loading: %w", exitcode.Errorf(exitcode.Schema, "bad field"))
		})
	})
	assert.Equal(t, exitcode.Failure, res.code)

	out := res.stderr.String()
	assert.Contains(t, out, "Debug: #0")
	assert.Contains(t, out, "Debug: #1 *exitcode.Error: bad field")
	assert.Contains(t, out, "goroutine")
	assert.True(t, strings.HasSuffix(out, "Fatal: Loading: bad field.\n"))
}

func TestGuard_NoTraceWithoutDebug(t *testing.T) {
	res := run(t, nil, withOptions).then(func(c *Context) {
		c.Guard(func() error { return errors.New("boom") })
	})
	assert.NotContains(t, res.stderr.String(), "Debug:")
}

func TestCreate(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := -1
	c := Create([]string{"-s", "work"}, func(c *Context) error {
		return c.ParseOptions(sessionOptions)
	}, WithStreams(nil, &stdout, &stderr), WithExit(func(c int) { code = c }))

	assert.Equal(t, -1, code)
	assert.Equal(t, "work", c.Options().String("session"))
	assert.Equal(t, "kbsecret", c.Name())
}

func TestStaticDie(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	origOut, origExit := dieOutput, dieExit
	dieOutput, dieExit = &buf, func(c int) { code = c }
	defer func() { dieOutput, dieExit = origOut, origExit }()

	Die("No context yet.")
	assert.Equal(t, exitcode.Failure, code)
	assert.Equal(t, "Fatal: No context yet.\n", buf.String())
}

func TestSentence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"no such session: work", "No such session: work."},
		{"already done.", "Already done."},
		{"really?", "Really?"},
		{"  padded  ", "Padded."},
		{"élan", "Élan."},
		{"", "An unknown error occurred."},
		{"FOO is unset", "FOO is unset."},
		{"first line\nsecond", "First line second."},
		{"exit status 1\n\n  stderr: boom\r\n", "Exit status 1 stderr: boom."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sentence(tt.in), tt.in)
	}
}

func TestIFS(t *testing.T) {
	t.Setenv("IFS", "\t")
	assert.Equal(t, "\t", IFS())

	t.Setenv("IFS", "||")
	assert.Equal(t, "||", IFS())

	t.Setenv("IFS", "")
	assert.Equal(t, ":", IFS())

	t.Setenv("IFS", "x")
	require.NoError(t, unsetenv("IFS"))
	assert.Equal(t, ":", IFS())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "parsed", Parsed.String())
	assert.Equal(t, "resolved", Resolved.String())
	assert.Equal(t, "option", FromOption.String())
	assert.Equal(t, "argument", FromArgument.String())
}
