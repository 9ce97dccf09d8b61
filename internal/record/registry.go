package record

import (
	"fmt"
	"sort"

	"github.com/kbsecret/kbsecret/internal/exitcode"
)

// Registry maps symbolic type names to record schemas.
type Registry struct {
	schemas map[string]*Schema
}

// Default holds every built-in record variant.
var Default = NewRegistry(
	EnvironmentSchema,
	LoginSchema,
	SnippetSchema,
	TodoSchema,
	UnstructuredSchema,
)

// NewRegistry returns a registry holding the given schemas. It panics on a
// duplicated type name.
func NewRegistry(schemas ...*Schema) *Registry {
	r := &Registry{schemas: make(map[string]*Schema, len(schemas))}
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a schema under its type name.
func (r *Registry) Register(s *Schema) error {
	if s == nil {
		return fmt.Errorf("record: cannot register a nil schema")
	}
	if _, dup := r.schemas[s.typ]; dup {
		return fmt.Errorf("record: type %q is already registered", s.typ)
	}
	r.schemas[s.typ] = s
	return nil
}

// Lookup resolves a type name by exact match.
func (r *Registry) Lookup(name string) (*Schema, error) {
	s, ok := r.schemas[name]
	if !ok {
		return nil, exitcode.Wrap(exitcode.Resolution, fmt.Errorf("%w: %s", ErrUnknownType, name))
	}
	return s, nil
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
