package cli

import (
	"github.com/kbsecret/kbsecret/internal/exitcode"
)

// Source selects where a resolver reads its raw value from.
type Source int

const (
	// FromOption reads a parsed option.
	FromOption Source = iota
	// FromArgument reads a parsed trailing argument slot.
	FromArgument
)

func (s Source) String() string {
	if s == FromArgument {
		return "argument"
	}
	return "option"
}

// Default locators for the resolvers.
const (
	SessionKey   = "session"
	TypeKey      = "type"
	GeneratorKey = "generator"
)

// raw reads the string a resolver will look up. Reading from a source that
// has not been parsed, or a name the command never declared, is a usage error.
func (c *Context) raw(src Source, key string) (string, error) {
	switch src {
	case FromArgument:
		if c.args == nil {
			return "", exitcode.Errorf(exitcode.Usage, "arguments must be parsed before resolving %s", key)
		}
		if !c.args.Declared(key) {
			return "", exitcode.Errorf(exitcode.Usage, "no %s argument declared", key)
		}
		return c.args.String(key), nil
	default:
		if c.opts == nil {
			return "", exitcode.Errorf(exitcode.Usage, "options must be parsed before resolving %s", key)
		}
		if _, ok := c.opts.Lookup(key); !ok {
			return "", exitcode.Errorf(exitcode.Usage, "no --%s option declared", key)
		}
		return c.opts.String(key), nil
	}
}

// EnsureSession resolves the "session" option or argument to a configured
// session.
func (c *Context) EnsureSession(src Source) error {
	return c.EnsureSessionAt(src, SessionKey)
}

// EnsureSessionAt resolves a session label read from key.
func (c *Context) EnsureSessionAt(src Source, key string) error {
	label, err := c.raw(src, key)
	if err != nil {
		return err
	}
	if c.sessions == nil {
		return exitcode.Errorf(exitcode.Usage, "no session store available")
	}
	s, err := c.sessions.Session(label)
	if err != nil {
		return err
	}
	c.session = s
	c.advance(Resolved)
	return nil
}

// EnsureType resolves the "type" option or argument to a record schema.
func (c *Context) EnsureType(src Source) error {
	return c.EnsureTypeAt(src, TypeKey)
}

// EnsureTypeAt resolves a record type name read from key.
func (c *Context) EnsureTypeAt(src Source, key string) error {
	name, err := c.raw(src, key)
	if err != nil {
		return err
	}
	if c.types == nil {
		return exitcode.Errorf(exitcode.Usage, "no record type registry available")
	}
	s, err := c.types.Lookup(name)
	if err != nil {
		return err
	}
	c.schema = s
	c.advance(Resolved)
	return nil
}

// EnsureGenerator resolves the "generator" option or argument to a profile.
func (c *Context) EnsureGenerator(src Source) error {
	return c.EnsureGeneratorAt(src, GeneratorKey)
}

// EnsureGeneratorAt resolves a generator profile name read from key.
func (c *Context) EnsureGeneratorAt(src Source, key string) error {
	name, err := c.raw(src, key)
	if err != nil {
		return err
	}
	if c.generators == nil {
		return exitcode.Errorf(exitcode.Usage, "no generator registry available")
	}
	g, err := c.generators.Generator(name)
	if err != nil {
		return err
	}
	c.generator = g
	c.advance(Resolved)
	return nil
}
