package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbsecret/kbsecret/internal/exitcode"
)

func parseArguments(build func(a *ArgumentSpec), opts ...ParseOption) func(c *Context) error {
	return func(c *Context) error {
		return c.ParseArguments(build, opts...)
	}
}

func TestParseArguments_Strict(t *testing.T) {
	res := run(t, []string{"FOO", "3", "1.5"}, parseArguments(func(a *ArgumentSpec) {
		a.String("name")
		a.Int("count")
		a.Float("ratio")
	}))
	require.False(t, res.exited)

	args := res.ctx.Arguments()
	assert.Equal(t, "FOO", args.String("name"))
	assert.Equal(t, 3, args.Int("count"))
	assert.InDelta(t, 1.5, args.Float("ratio"), 0.0001)
	assert.Empty(t, args.Extra())
	assert.Equal(t, Parsed, res.ctx.State())
}

func TestParseArguments_StrictFailures(t *testing.T) {
	spec := func(a *ArgumentSpec) {
		a.String("name")
		a.Int("count")
	}
	tests := []struct {
		name string
		argv []string
		msg  string
	}{
		{"too few", []string{"FOO"}, "Fatal: Missing argument: count.\n"},
		{"too many", []string{"FOO", "1", "extra"}, "Fatal: Too many arguments: expected 2, got 3.\n"},
		{"bad type", []string{"FOO", "one"}, "Fatal: Argument count: \"one\" is not an integer.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.argv, parseArguments(spec))
			assert.True(t, res.exited)
			assert.Equal(t, exitcode.Failure, res.code)
			assert.Equal(t, tt.msg, res.stderr.String())
		})
	}
}

func TestParseArguments_NoErrorsLeavesSlotsAbsent(t *testing.T) {
	res := run(t, []string{"FOO", "one"}, parseArguments(func(a *ArgumentSpec) {
		a.String("name")
		a.Int("count")
		a.String("comment")
	}, NoErrors()))
	require.False(t, res.exited)

	args := res.ctx.Arguments()
	assert.True(t, args.Has("name"))
	assert.False(t, args.Has("count"))
	assert.False(t, args.Has("comment"))
	assert.True(t, args.Declared("comment"))
	assert.False(t, args.Declared("other"))
	assert.Equal(t, 0, args.Int("count"))

	_, ok := args.Lookup("comment")
	assert.False(t, ok)
}

func TestParseArguments_NoErrorsKeepsExtra(t *testing.T) {
	res := run(t, []string{"a", "b", "c"}, parseArguments(func(a *ArgumentSpec) {
		a.String("first")
	}, NoErrors()))
	require.False(t, res.exited)
	assert.Equal(t, []string{"b", "c"}, res.ctx.Arguments().Extra())
}

func TestParseArguments_Lists(t *testing.T) {
	res := run(t, []string{"work", "a", "b"}, parseArguments(func(a *ArgumentSpec) {
		a.String("session")
		a.List("labels", String)
	}))
	require.False(t, res.exited)
	assert.Equal(t, []string{"a", "b"}, res.ctx.Arguments().Strings("labels"))

	res = run(t, []string{"work"}, parseArguments(func(a *ArgumentSpec) {
		a.String("session")
		a.List("labels", String)
	}))
	assert.Equal(t, exitcode.Failure, res.code)
	assert.Contains(t, res.stderr.String(), "Missing argument: labels.")

	res = run(t, []string{"work"}, parseArguments(func(a *ArgumentSpec) {
		a.String("session")
		a.Rest("labels", String)
	}))
	require.False(t, res.exited)
	assert.Empty(t, res.ctx.Arguments().Strings("labels"))

	res = run(t, []string{"1", "2", "x"}, parseArguments(func(a *ArgumentSpec) {
		a.List("numbers", Int)
	}, NoErrors()))
	require.False(t, res.exited)
	assert.Equal(t, []int{1, 2}, res.ctx.Arguments().Ints("numbers"))
}

func TestParseArguments_ListMustBeLast(t *testing.T) {
	res := run(t, []string{"a"}, parseArguments(func(a *ArgumentSpec) {
		a.List("labels", String)
		a.String("late")
	}))
	assert.Equal(t, exitcode.Failure, res.code)
	assert.Contains(t, res.stderr.String(), `declared after list "labels"`)
}

func TestParseArguments_Paths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	res := run(t, []string{file, dir, filepath.Join(dir, "nope")}, parseArguments(func(a *ArgumentSpec) {
		a.File("file")
		a.Directory("dir")
		a.Path("out")
	}))
	require.False(t, res.exited)
	assert.Equal(t, file, res.ctx.Arguments().String("file"))
	assert.Equal(t, dir, res.ctx.Arguments().String("dir"))

	res = run(t, []string{dir}, parseArguments(func(a *ArgumentSpec) { a.File("file") }))
	assert.Equal(t, exitcode.Failure, res.code)
	assert.Contains(t, res.stderr.String(), "is not a file")

	res = run(t, []string{file}, parseArguments(func(a *ArgumentSpec) { a.Directory("dir") }))
	assert.Equal(t, exitcode.Failure, res.code)
	assert.Contains(t, res.stderr.String(), "is not a directory")
}

func TestParseArguments_ConsumesOptionLeftovers(t *testing.T) {
	res := run(t, []string{"-s", "work", "add", "FOO", "bar"}, func(c *Context) error {
		if err := c.ParseOptions(sessionOptions); err != nil {
			return err
		}
		return c.ParseArguments(func(a *ArgumentSpec) {
			a.String("command")
			a.String("name")
			a.String("value")
		})
	})
	require.False(t, res.exited)

	assert.Equal(t, "work", res.ctx.Options().String("session"))
	args := res.ctx.Arguments()
	assert.Equal(t, "add", args.String("command"))
	assert.Equal(t, "FOO", args.String("name"))
	assert.Equal(t, "bar", args.String("value"))
}

func TestParseArguments_Twice(t *testing.T) {
	res := run(t, nil, func(c *Context) error {
		if err := c.ParseArguments(nil); err != nil {
			return err
		}
		return c.ParseArguments(nil)
	})
	assert.Equal(t, exitcode.Failure, res.code)
	assert.Contains(t, res.stderr.String(), "Arguments have already been parsed.")
}
