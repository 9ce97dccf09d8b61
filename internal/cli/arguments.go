package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kbsecret/kbsecret/internal/exitcode"
)

// Kind is the type constraint of an argument slot.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Path
	File
	Directory
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "integer"
	case Float:
		return "number"
	case Path:
		return "path"
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return "string"
	}
}

type slot struct {
	name string
	kind Kind
	list bool
	min  int
}

// ArgumentSpec is handed to the ParseArguments builder to declare a command's
// trailing argument slots, consumed left to right.
type ArgumentSpec struct {
	slots []slot
}

func (a *ArgumentSpec) add(s slot) {
	if n := len(a.slots); n > 0 && a.slots[n-1].list {
		panic(fmt.Sprintf("cli: argument %q declared after list %q", s.name, a.slots[n-1].name))
	}
	a.slots = append(a.slots, s)
}

// String declares a single string slot.
func (a *ArgumentSpec) String(name string) { a.add(slot{name: name, kind: String}) }

// Int declares a single integer slot.
func (a *ArgumentSpec) Int(name string) { a.add(slot{name: name, kind: Int}) }

// Float declares a single numeric slot.
func (a *ArgumentSpec) Float(name string) { a.add(slot{name: name, kind: Float}) }

// Path declares a filesystem path slot; the path need not exist.
func (a *ArgumentSpec) Path(name string) { a.add(slot{name: name, kind: Path}) }

// File declares a slot that must name an existing regular file.
func (a *ArgumentSpec) File(name string) { a.add(slot{name: name, kind: File}) }

// Directory declares a slot that must name an existing directory.
func (a *ArgumentSpec) Directory(name string) { a.add(slot{name: name, kind: Directory}) }

// List declares a final slot absorbing one or more remaining arguments.
func (a *ArgumentSpec) List(name string, kind Kind) {
	a.add(slot{name: name, kind: kind, list: true, min: 1})
}

// Rest declares a final slot absorbing zero or more remaining arguments.
func (a *ArgumentSpec) Rest(name string, kind Kind) {
	a.add(slot{name: name, kind: kind, list: true})
}

// ParsedArguments is the immutable result of trailing argument parsing.
//
// A slot left unfilled in NoErrors mode is absent: Lookup and Has report
// false and the typed getters return the zero value.
type ParsedArguments struct {
	values   map[string]interface{}
	declared map[string]bool
	extra    []string
}

func (p *ParsedArguments) Lookup(name string) (interface{}, bool) {
	v, ok := p.values[name]
	return v, ok
}

func (p *ParsedArguments) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Declared reports whether the command declared the slot, filled or not.
func (p *ParsedArguments) Declared(name string) bool {
	return p.declared[name]
}

// String returns a string, path, file or directory slot.
func (p *ParsedArguments) String(name string) string {
	s, _ := p.values[name].(string)
	return s
}

func (p *ParsedArguments) Int(name string) int {
	i, _ := p.values[name].(int)
	return i
}

func (p *ParsedArguments) Float(name string) float64 {
	f, _ := p.values[name].(float64)
	return f
}

// Strings returns a list slot of string-like kind.
func (p *ParsedArguments) Strings(name string) []string {
	s, _ := p.values[name].([]string)
	return append([]string(nil), s...)
}

// Ints returns a list slot of integers.
func (p *ParsedArguments) Ints(name string) []int {
	s, _ := p.values[name].([]int)
	return append([]int(nil), s...)
}

// Extra returns arguments beyond the declared slots (NoErrors mode only).
func (p *ParsedArguments) Extra() []string {
	return append([]string(nil), p.extra...)
}

// ParseArguments interprets the arguments left over by ParseOptions (or the
// raw arguments, for a command without options). In strict mode a count
// mismatch or a value failing its slot's type is a parse error.
func (c *Context) ParseArguments(build func(a *ArgumentSpec), opts ...ParseOption) error {
	if c.args != nil {
		return exitcode.Errorf(exitcode.Usage, "arguments have already been parsed")
	}
	settings := collect(opts)
	strict := !settings.lenient

	spec := &ArgumentSpec{}
	if build != nil {
		build(spec)
	}

	parsed := &ParsedArguments{
		values:   map[string]interface{}{},
		declared: map[string]bool{},
	}
	for _, s := range spec.slots {
		parsed.declared[s.name] = true
	}

	input := c.argv
	consumed := 0
	for _, s := range spec.slots {
		if s.list {
			rest := input[consumed:]
			consumed = len(input)
			if len(rest) < s.min {
				if strict {
					return exitcode.Errorf(exitcode.ParseFormat, "missing argument: %s", s.name)
				}
				continue
			}
			v, err := convertList(s, rest, strict)
			if err != nil {
				return err
			}
			parsed.values[s.name] = v
			continue
		}

		if consumed >= len(input) {
			if strict {
				return exitcode.Errorf(exitcode.ParseFormat, "missing argument: %s", s.name)
			}
			continue
		}
		raw := input[consumed]
		consumed++
		v, err := convert(s.kind, raw)
		if err != nil {
			if strict {
				return exitcode.Wrap(exitcode.ParseFormat, fmt.Errorf("argument %s: %w", s.name, err))
			}
			continue
		}
		parsed.values[s.name] = v
	}

	if consumed < len(input) {
		if strict {
			return exitcode.Errorf(exitcode.ParseFormat,
				"too many arguments: expected %d, got %d", len(spec.slots), len(input))
		}
		parsed.extra = append([]string(nil), input[consumed:]...)
	}

	c.args = parsed
	c.advance(Parsed)
	return nil
}

func convertList(s slot, raw []string, strict bool) (interface{}, error) {
	switch s.kind {
	case Int:
		out := make([]int, 0, len(raw))
		for _, r := range raw {
			v, err := convert(Int, r)
			if err != nil {
				if strict {
					return nil, exitcode.Wrap(exitcode.ParseFormat, fmt.Errorf("argument %s: %w", s.name, err))
				}
				continue
			}
			out = append(out, v.(int))
		}
		return out, nil
	case Float:
		out := make([]float64, 0, len(raw))
		for _, r := range raw {
			v, err := convert(Float, r)
			if err != nil {
				if strict {
					return nil, exitcode.Wrap(exitcode.ParseFormat, fmt.Errorf("argument %s: %w", s.name, err))
				}
				continue
			}
			out = append(out, v.(float64))
		}
		return out, nil
	default:
		out := make([]string, 0, len(raw))
		for _, r := range raw {
			v, err := convert(s.kind, r)
			if err != nil {
				if strict {
					return nil, exitcode.Wrap(exitcode.ParseFormat, fmt.Errorf("argument %s: %w", s.name, err))
				}
				continue
			}
			out = append(out, v.(string))
		}
		return out, nil
	}
}

func convert(kind Kind, raw string) (interface{}, error) {
	switch kind {
	case Int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return v, nil
	case Float:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return v, nil
	case File:
		info, err := os.Stat(raw)
		if err != nil || !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%q is not a file", raw)
		}
		return raw, nil
	case Directory:
		info, err := os.Stat(raw)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%q is not a directory", raw)
		}
		return raw, nil
	default:
		return raw, nil
	}
}
