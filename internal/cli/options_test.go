package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbsecret/kbsecret/internal/exitcode"
)

func sessionOptions(o *OptionSet) {
	o.String("s", "session", "default", "the session to use")
	o.Bool("f", "foo", "whatever")
}

func parseOptions(build func(o *OptionSet), opts ...ParseOption) func(c *Context) error {
	return func(c *Context) error {
		return c.ParseOptions(build, opts...)
	}
}

func TestParseOptions_Values(t *testing.T) {
	res := run(t, []string{"-s", "work", "--foo", "x", "-V", "y"}, parseOptions(func(o *OptionSet) {
		sessionOptions(o)
		o.Int("n", "count", 3, "how many")
	}))
	require.False(t, res.exited)

	opts := res.ctx.Options()
	require.NotNil(t, opts)
	assert.Equal(t, "work", opts.String("session"))
	assert.True(t, opts.Bool("foo"))
	assert.Equal(t, 3, opts.Int("count"))
	assert.False(t, opts.Changed("count"))
	assert.True(t, opts.Changed("session"))
	assert.True(t, res.ctx.Verbose())
	assert.False(t, res.ctx.Debug())
	assert.Equal(t, []string{"x", "y"}, opts.Args())
	assert.NoError(t, opts.Err())
	assert.Equal(t, Parsed, res.ctx.State())

	_, ok := opts.Lookup("missing")
	assert.False(t, ok)
}

func TestParseOptions_Help(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"short", []string{"-h"}},
		{"long", []string{"--help"}},
		{"with other flags", []string{"-s", "work", "--help", "--foo"}},
		{"with unknown flag", []string{"--bogus", "-h"}},
		{"with arguments", []string{"one", "two", "-h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.argv, parseOptions(sessionOptions))
			assert.True(t, res.exited)
			assert.Equal(t, exitcode.OK, res.code)
			assert.Contains(t, res.stdout.String(), "Usage: kbsecret [options]")
			assert.Contains(t, res.stdout.String(), "Options:")
			assert.Contains(t, res.stdout.String(), "--session")
			assert.Contains(t, res.stdout.String(), "--introspect-flags")
			assert.Empty(t, res.stderr.String())
		})
	}
}

func TestParseOptions_HelpBanner(t *testing.T) {
	res := run(t, []string{"--help"}, parseOptions(func(o *OptionSet) {
		o.Banner("Usage: kbsecret env [options] <record ...>")
	}), WithName("env"))
	assert.Equal(t, exitcode.OK, res.code)
	assert.Equal(t, "Usage: kbsecret env [options] <record ...>", res.lines()[0])
}

func TestParseOptions_Introspect(t *testing.T) {
	res := run(t, []string{"--introspect-flags", "-s"},
		parseOptions(sessionOptions, ExtraCommands("list", "new")))

	assert.True(t, res.exited)
	assert.Equal(t, exitcode.OK, res.code)
	assert.Equal(t, []string{
		"-s", "--session",
		"-f", "--foo",
		"-V", "--verbose",
		"-w", "--no-warn",
		"--debug",
		"-h", "--help",
		"--introspect-flags",
		"list", "new",
	}, res.lines())
}

func TestParseOptions_IntrospectKeepsDuplicates(t *testing.T) {
	res := run(t, []string{"--introspect-flags"},
		parseOptions(nil, ExtraCommands("dup"), ExtraCommands("dup")))
	lines := res.lines()
	assert.Equal(t, []string{"dup", "dup"}, lines[len(lines)-2:])
}

func TestParseOptions_UnknownFlagIsFatal(t *testing.T) {
	res := run(t, []string{"--bogus"}, parseOptions(sessionOptions))
	assert.True(t, res.exited)
	assert.Equal(t, exitcode.Failure, res.code)
	assert.Equal(t, "Fatal: Unknown flag: --bogus.\n", res.stderr.String())
	assert.Empty(t, res.stdout.String())
}

func TestParseOptions_NoErrors(t *testing.T) {
	res := run(t, []string{"--bogus", "-s", "work", "label"},
		parseOptions(sessionOptions, NoErrors()))
	require.False(t, res.exited)

	opts := res.ctx.Options()
	assert.Equal(t, "work", opts.String("session"))
	assert.Equal(t, []string{"--bogus", "label"}, opts.Args())
	require.Error(t, opts.Err())
	assert.Equal(t, "unknown flag: --bogus", opts.Err().Error())
}

func TestParseOptions_NoErrorsKeepsUnknownInPlace(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantArgs []string
		wantErr  string
	}{
		{"long flag before positionals", []string{"--bogus", "FOO", "bar"},
			[]string{"--bogus", "FOO", "bar"}, "unknown flag: --bogus"},
		{"long flag with value", []string{"x", "--bogus=1", "-s", "work"},
			[]string{"x", "--bogus=1"}, "unknown flag: --bogus"},
		{"short flag", []string{"-z", "a", "-f"},
			[]string{"-z", "a"}, "unknown shorthand flag: 'z' in -z"},
		{"first unknown is reported", []string{"--one", "-q"},
			[]string{"--one", "-q"}, "unknown flag: --one"},
		{"after double dash untouched", []string{"--bogus", "--", "--other"},
			[]string{"--bogus", "--other"}, "unknown flag: --bogus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.argv, parseOptions(sessionOptions, NoErrors()))
			require.False(t, res.exited)

			opts := res.ctx.Options()
			assert.Equal(t, tt.wantArgs, opts.Args())
			require.Error(t, opts.Err())
			assert.Equal(t, tt.wantErr, opts.Err().Error())
		})
	}
}

func TestParseOptions_NoErrorsFeedsArguments(t *testing.T) {
	res := run(t, []string{"--bogus", "FOO", "bar"}, func(c *Context) error {
		if err := c.ParseOptions(nil, NoErrors()); err != nil {
			return err
		}
		return c.ParseArguments(func(a *ArgumentSpec) {
			a.Rest("words", String)
		})
	})
	require.False(t, res.exited)
	assert.Equal(t, []string{"--bogus", "FOO", "bar"}, res.ctx.Arguments().Strings("words"))
}

func TestParseOptions_ReservedFlags(t *testing.T) {
	tests := []struct {
		name  string
		build func(o *OptionSet)
		want  string
	}{
		{"short V", func(o *OptionSet) { o.Bool("V", "version", "print version") }, "Fatal: Option -V is reserved.\n"},
		{"long debug", func(o *OptionSet) { o.Bool("", "debug", "more") }, "Fatal: Option --debug is reserved.\n"},
		{"short h", func(o *OptionSet) { o.String("h", "host", "", "host") }, "Fatal: Option -h is reserved.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, []string{"-h"}, parseOptions(tt.build))
			assert.Equal(t, exitcode.Failure, res.code)
			assert.Equal(t, tt.want, res.stderr.String())
		})
	}
}

func TestParseOptions_NoErrorsKeepsError(t *testing.T) {
	res := run(t, []string{"label", "-s"}, parseOptions(sessionOptions, NoErrors()))
	require.False(t, res.exited)

	opts := res.ctx.Options()
	require.Error(t, opts.Err())
	assert.Contains(t, opts.Err().Error(), "needs an argument")
}

func TestParseOptions_Twice(t *testing.T) {
	res := run(t, nil, func(c *Context) error {
		if err := c.ParseOptions(nil); err != nil {
			return err
		}
		return c.ParseOptions(nil)
	})
	assert.Equal(t, exitcode.Failure, res.code)
	assert.Contains(t, res.stderr.String(), "Options have already been parsed.")
}

func TestParseOptions_AfterArguments(t *testing.T) {
	res := run(t, []string{"x"}, func(c *Context) error {
		if err := c.ParseArguments(func(a *ArgumentSpec) { a.String("name") }); err != nil {
			return err
		}
		return c.ParseOptions(nil)
	})
	assert.Equal(t, exitcode.Failure, res.code)
	assert.Contains(t, res.stderr.String(), "Options must be parsed before arguments.")
}

func TestParseOptions_DoubleDash(t *testing.T) {
	res := run(t, []string{"-s", "work", "--", "--help"}, parseOptions(sessionOptions))
	require.False(t, res.exited)
	assert.Equal(t, []string{"--help"}, res.ctx.Options().Args())
}
