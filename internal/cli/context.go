package cli

import (
	"io"
	"os"

	"github.com/kbsecret/kbsecret/internal/generator"
	"github.com/kbsecret/kbsecret/internal/output"
	"github.com/kbsecret/kbsecret/internal/record"
	"github.com/kbsecret/kbsecret/internal/session"
)

// SessionStore returns a handle for a configured session.
type SessionStore interface {
	Session(label string) (*session.Session, error)
}

// TypeRegistry resolves a record type name to its schema.
type TypeRegistry interface {
	Lookup(name string) (*record.Schema, error)
}

// GeneratorRegistry resolves a generator profile by name.
type GeneratorRegistry interface {
	Generator(name string) (*generator.Profile, error)
}

// State is the lifecycle position of a Context. It only moves forward.
type State int

const (
	Uninitialized State = iota
	Parsed
	Resolved
)

func (s State) String() string {
	switch s {
	case Parsed:
		return "parsed"
	case Resolved:
		return "resolved"
	default:
		return "uninitialized"
	}
}

// Context is the per-invocation state of a kbsecret command.
type Context struct {
	name   string
	argv   []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *output.Logger
	exit   func(int)
	exited bool

	sessions   SessionStore
	types      TypeRegistry
	generators GeneratorRegistry

	state     State
	opts      *ParsedOptions
	args      *ParsedArguments
	session   *session.Session
	schema    *record.Schema
	generator *generator.Profile
}

// Option configures a Context.
type Option func(*Context)

// WithName sets the command name shown in help output.
func WithName(name string) Option {
	return func(c *Context) { c.name = name }
}

// WithStreams overrides stdin, stdout and stderr. Nil values are ignored.
func WithStreams(in io.Reader, out, errOut io.Writer) Option {
	return func(c *Context) {
		if in != nil {
			c.stdin = in
		}
		if out != nil {
			c.stdout = out
		}
		if errOut != nil {
			c.stderr = errOut
		}
	}
}

// WithExit replaces os.Exit.
func WithExit(exit func(int)) Option {
	return func(c *Context) { c.exit = exit }
}

// WithSessions sets the session store used by EnsureSession.
func WithSessions(s SessionStore) Option {
	return func(c *Context) { c.sessions = s }
}

// WithTypes sets the record type registry used by EnsureType.
func WithTypes(t TypeRegistry) Option {
	return func(c *Context) { c.types = t }
}

// WithGenerators sets the generator registry used by EnsureGenerator.
func WithGenerators(g GeneratorRegistry) Option {
	return func(c *Context) { c.generators = g }
}

// New returns an uninitialized context over argv. argv excludes the program
// and command names.
func New(argv []string, opts ...Option) *Context {
	c := &Context{
		name:   "kbsecret",
		argv:   append([]string(nil), argv...),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		exit:   os.Exit,
		types:  record.Default,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = output.NewLogger(c.stderr)
	return c
}

// Create builds a context and runs setup under Guard. Setup is where a
// command parses its options and arguments and resolves what it needs.
func Create(argv []string, setup func(c *Context) error, opts ...Option) *Context {
	c := New(argv, opts...)
	c.Guard(func() error { return setup(c) })
	return c
}

func (c *Context) Name() string {
	return c.name
}

func (c *Context) State() State {
	return c.state
}

// Options returns the parsed options, or nil before ParseOptions.
func (c *Context) Options() *ParsedOptions {
	return c.opts
}

// Arguments returns the parsed trailing arguments, or nil before ParseArguments.
func (c *Context) Arguments() *ParsedArguments {
	return c.args
}

// Session returns the session resolved by EnsureSession.
func (c *Context) Session() *session.Session {
	return c.session
}

// Type returns the record schema resolved by EnsureType.
func (c *Context) Type() *record.Schema {
	return c.schema
}

// Generator returns the profile resolved by EnsureGenerator.
func (c *Context) Generator() *generator.Profile {
	return c.generator
}

func (c *Context) Stdin() io.Reader {
	return c.stdin
}

// Stdout is the primary output stream.
func (c *Context) Stdout() io.Writer {
	return c.stdout
}

// Stderr is the diagnostic stream.
func (c *Context) Stderr() io.Writer {
	return c.stderr
}

func (c *Context) Verbose() bool {
	return c.opts != nil && c.opts.Bool(flagVerbose)
}

func (c *Context) Debug() bool {
	return c.opts != nil && c.opts.Bool(flagDebug)
}

func (c *Context) warningsSuppressed() bool {
	return c.opts != nil && c.opts.Bool(flagNoWarn)
}

func (c *Context) advance(to State) {
	if to > c.state {
		c.state = to
	}
}
