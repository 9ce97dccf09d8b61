package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kbsecret/kbsecret/internal/exitcode"
)

// Baseline flags injected into every command.
const (
	flagVerbose    = "verbose"
	flagNoWarn     = "no-warn"
	flagDebug      = "debug"
	flagHelp       = "help"
	flagIntrospect = "introspect-flags"
)

// OptionSet is handed to the ParseOptions builder to declare a command's
// flags. The baseline names (-V/--verbose, -w/--no-warn, --debug, -h/--help,
// --introspect-flags) are reserved; declaring one is a usage error.
type OptionSet struct {
	fs     *pflag.FlagSet
	banner string
}

// Banner replaces the first line of the help output.
func (o *OptionSet) Banner(banner string) {
	o.banner = banner
}

// String declares a string option. short may be empty.
func (o *OptionSet) String(short, long, def, usage string) {
	o.fs.StringP(long, short, def, usage)
}

// Bool declares a boolean flag. short may be empty.
func (o *OptionSet) Bool(short, long, usage string) {
	o.fs.BoolP(long, short, false, usage)
}

// Int declares an integer option. short may be empty.
func (o *OptionSet) Int(short, long string, def int, usage string) {
	o.fs.IntP(long, short, def, usage)
}

// ParseOption tunes ParseOptions and ParseArguments.
type ParseOption func(*parseSettings)

type parseSettings struct {
	commands []string
	lenient  bool
}

// ExtraCommands adds names to the --introspect-flags listing, for commands
// that dispatch to subcommands of their own.
func ExtraCommands(names ...string) ParseOption {
	return func(s *parseSettings) { s.commands = append(s.commands, names...) }
}

// NoErrors tolerates malformed input instead of failing. Unknown flags are
// kept in place among the positional arguments and the first one is reported
// by ParsedOptions.Err; arguments that do not fit their slots are left absent.
func NoErrors() ParseOption {
	return func(s *parseSettings) { s.lenient = true }
}

func collect(opts []ParseOption) parseSettings {
	var s parseSettings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ParsedOptions is the immutable result of option parsing.
type ParsedOptions struct {
	values  map[string]interface{}
	changed map[string]bool
	args    []string
	err     error
}

// Lookup returns the value of a declared option (its default when not given).
func (p *ParsedOptions) Lookup(name string) (interface{}, bool) {
	v, ok := p.values[name]
	return v, ok
}

func (p *ParsedOptions) String(name string) string {
	s, _ := p.values[name].(string)
	return s
}

func (p *ParsedOptions) Bool(name string) bool {
	b, _ := p.values[name].(bool)
	return b
}

func (p *ParsedOptions) Int(name string) int {
	i, _ := p.values[name].(int)
	return i
}

// Changed reports whether the option was given explicitly.
func (p *ParsedOptions) Changed(name string) bool {
	return p.changed[name]
}

// Args returns the positional arguments option parsing did not consume.
func (p *ParsedOptions) Args() []string {
	return append([]string(nil), p.args...)
}

// Err returns the parse error that NoErrors suppressed, if any.
func (p *ParsedOptions) Err() error {
	return p.err
}

// ParseOptions parses the context's raw arguments. build declares the
// command's own flags; the baseline flags are added after it. When -h/--help
// or --introspect-flags is present the output is printed and exitcode.ErrDone
// is returned, regardless of anything else on the command line.
func (c *Context) ParseOptions(build func(o *OptionSet), opts ...ParseOption) error {
	if c.opts != nil {
		return exitcode.Errorf(exitcode.Usage, "options have already been parsed")
	}
	if c.args != nil {
		return exitcode.Errorf(exitcode.Usage, "options must be parsed before arguments")
	}
	settings := collect(opts)

	fs := pflag.NewFlagSet(c.name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)

	set := &OptionSet{fs: fs, banner: fmt.Sprintf("Usage: %s [options]", c.name)}
	if build != nil {
		build(set)
	}
	if err := checkReserved(fs); err != nil {
		return err
	}

	fs.BoolP(flagVerbose, "V", false, "produce more verbose output")
	fs.BoolP(flagNoWarn, "w", false, "suppress warning messages")
	fs.Bool(flagDebug, false, "produce full backtraces on errors")
	fs.BoolP(flagHelp, "h", false, "show this help message")
	fs.Bool(flagIntrospect, false, "dump recognized flags and subcommands")

	argv, quarantined, unknownErr := c.argv, map[string]string(nil), error(nil)
	if settings.lenient {
		argv, quarantined, unknownErr = quarantine(fs, c.argv)
	}
	err := fs.Parse(argv)

	if requested(fs, c.argv, err, flagHelp, "h") {
		fmt.Fprintln(c.stdout, set.banner)
		fmt.Fprintln(c.stdout, "Options:")
		fmt.Fprint(c.stdout, fs.FlagUsages())
		return exitcode.ErrDone
	}
	if requested(fs, c.argv, err, flagIntrospect, "") {
		for _, name := range introspect(fs, settings.commands) {
			fmt.Fprintln(c.stdout, name)
		}
		return exitcode.ErrDone
	}

	if err != nil && !settings.lenient {
		return exitcode.Wrap(exitcode.ParseFormat, err)
	}

	if err == nil {
		err = unknownErr
	}
	args := restore(fs.Args(), quarantined)
	c.opts = snapshot(fs, args, err)
	c.argv = args
	c.advance(Parsed)
	return nil
}

var reserved = []struct{ long, short string }{
	{flagVerbose, "V"},
	{flagNoWarn, "w"},
	{flagDebug, ""},
	{flagHelp, "h"},
	{flagIntrospect, ""},
}

// checkReserved rejects command flags that would clash with the baseline.
func checkReserved(fs *pflag.FlagSet) error {
	for _, r := range reserved {
		if fs.Lookup(r.long) != nil {
			return exitcode.Errorf(exitcode.Usage, "option --%s is reserved", r.long)
		}
		if r.short != "" && fs.ShorthandLookup(r.short) != nil {
			return exitcode.Errorf(exitcode.Usage, "option -%s is reserved", r.short)
		}
	}
	return nil
}

// quarantine replaces unknown flag tokens before "--" with placeholders that
// pflag treats as positional arguments, so that parsing can continue and the
// tokens can be put back in place afterwards. Values of known flags are
// skipped the way pflag consumes them. The first unknown flag is reported.
func quarantine(fs *pflag.FlagSet, argv []string) ([]string, map[string]string, error) {
	out := make([]string, 0, len(argv))
	held := map[string]string{}
	var first error

	hold := func(tok string, err error) {
		key := fmt.Sprintf("\x00unknown-%d", len(held))
		held[key] = tok
		out = append(out, key)
		if first == nil {
			first = err
		}
	}

	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		switch {
		case tok == "--":
			out = append(out, argv[i:]...)
			return out, held, first

		case strings.HasPrefix(tok, "--"):
			name, _, hasValue := strings.Cut(tok[2:], "=")
			f := fs.Lookup(name)
			if f == nil {
				hold(tok, fmt.Errorf("unknown flag: --%s", name))
				continue
			}
			out = append(out, tok)
			if !hasValue && f.NoOptDefVal == "" && i+1 < len(argv) {
				i++
				out = append(out, argv[i])
			}

		case strings.HasPrefix(tok, "-") && len(tok) > 1:
			if unknown := unknownShorthand(fs, tok[1:]); unknown != "" {
				hold(tok, fmt.Errorf("unknown shorthand flag: '%s' in %s", unknown, tok))
				continue
			}
			out = append(out, tok)
			if shorthandWantsNext(fs, tok[1:]) && i+1 < len(argv) {
				i++
				out = append(out, argv[i])
			}

		default:
			out = append(out, tok)
		}
	}
	return out, held, first
}

// unknownShorthand returns the first unrecognized letter of a shorthand
// cluster, stopping at the letter that takes the rest as its value.
func unknownShorthand(fs *pflag.FlagSet, cluster string) string {
	for j := 0; j < len(cluster); j++ {
		f := fs.ShorthandLookup(cluster[j : j+1])
		if f == nil {
			return cluster[j : j+1]
		}
		if f.NoOptDefVal == "" {
			return ""
		}
	}
	return ""
}

// shorthandWantsNext reports whether the cluster ends in a letter that takes
// its value from the next token.
func shorthandWantsNext(fs *pflag.FlagSet, cluster string) bool {
	for j := 0; j < len(cluster); j++ {
		f := fs.ShorthandLookup(cluster[j : j+1])
		if f == nil {
			return false
		}
		if f.NoOptDefVal == "" {
			return j == len(cluster)-1
		}
	}
	return false
}

func restore(args []string, held map[string]string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if tok, ok := held[a]; ok {
			a = tok
		}
		out[i] = a
	}
	return out
}

// requested reports whether a short-circuit flag was given. When parsing
// failed part way, the raw arguments before "--" are scanned instead.
func requested(fs *pflag.FlagSet, argv []string, parseErr error, long, short string) bool {
	if fs.Changed(long) {
		return true
	}
	if parseErr == nil {
		return false
	}
	for _, arg := range argv {
		if arg == "--" {
			break
		}
		if arg == "--"+long || (short != "" && arg == "-"+short) {
			return true
		}
	}
	return false
}

// introspect lists every recognized flag form in declaration order, followed
// by the extra command names.
func introspect(fs *pflag.FlagSet, commands []string) []string {
	var names []string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Shorthand != "" {
			names = append(names, "-"+f.Shorthand)
		}
		names = append(names, "--"+f.Name)
	})
	return append(names, commands...)
}

func snapshot(fs *pflag.FlagSet, args []string, parseErr error) *ParsedOptions {
	p := &ParsedOptions{
		values:  map[string]interface{}{},
		changed: map[string]bool{},
		args:    append([]string(nil), args...),
		err:     parseErr,
	}
	fs.VisitAll(func(f *pflag.Flag) {
		p.changed[f.Name] = f.Changed
		switch f.Value.Type() {
		case "bool":
			v, _ := fs.GetBool(f.Name)
			p.values[f.Name] = v
		case "int":
			v, _ := fs.GetInt(f.Name)
			p.values[f.Name] = v
		case "string":
			v, _ := fs.GetString(f.Name)
			p.values[f.Name] = v
		default:
			p.values[f.Name] = strings.TrimSpace(f.Value.String())
		}
	})
	return p
}
