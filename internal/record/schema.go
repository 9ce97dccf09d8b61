// Package record defines the data model for stored secrets.
//
// Each record variant declares its shape exactly once as a Schema: an ordered
// list of named fields, each either sensitive (the default) or explicitly
// marked insensitive. Instances bind one value to every declared field and are
// immutable afterwards. The declared order is the canonical order for both
// serialization and display.
package record

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kbsecret/kbsecret/internal/exitcode"
)

var (
	// ErrUnknownField is wrapped by every error caused by a field name that a
	// schema does not declare.
	ErrUnknownField = errors.New("unknown field")
	// ErrMissingField is wrapped when a record is built without a value for
	// a declared field.
	ErrMissingField = errors.New("missing field")
	// ErrUnknownType is wrapped when a type name has no registered schema.
	ErrUnknownType = errors.New("no such record type")
)

// Field is a single declared field of a record variant.
type Field struct {
	Name      string
	Sensitive bool
}

// FieldOption customizes a field declaration.
type FieldOption func(*Field)

// Insensitive marks a field as safe to display and export in the clear.
func Insensitive(f *Field) {
	f.Sensitive = false
}

// DataField declares a field. Fields are sensitive unless Insensitive is given.
func DataField(name string, opts ...FieldOption) Field {
	f := Field{Name: name, Sensitive: true}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Schema is the static field declaration shared by all records of a variant.
type Schema struct {
	typ    string
	fields []Field
	index  map[string]int
}

// Declare builds the schema for a record variant. It panics on an empty type
// name, an empty field list or a duplicated field, since those are mistakes in
// the declaration itself rather than in user input.
func Declare(typ string, fields ...Field) *Schema {
	if strings.TrimSpace(typ) == "" {
		panic("record: schema type name cannot be empty")
	}
	if len(fields) == 0 {
		panic(fmt.Sprintf("record: schema %q declares no fields", typ))
	}

	s := &Schema{
		typ:    typ,
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Name == "" {
			panic(fmt.Sprintf("record: schema %q declares an unnamed field", typ))
		}
		if _, dup := s.index[f.Name]; dup {
			panic(fmt.Sprintf("record: schema %q declares field %q twice", typ, f.Name))
		}
		s.fields[i] = f
		s.index[f.Name] = i
	}
	return s
}

// Type returns the symbolic type name, e.g. "environment".
func (s *Schema) Type() string {
	return s.typ
}

// Fields returns the declared fields in canonical order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// FieldNames returns the declared field names in canonical order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Has reports whether the schema declares the named field.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Sensitive reports whether the named field must be masked downstream.
func (s *Schema) Sensitive(name string) (bool, error) {
	i, err := s.lookup(name)
	if err != nil {
		return false, err
	}
	return s.fields[i].Sensitive, nil
}

// New binds a complete set of values to a new record. Every declared field
// must be present and no undeclared field may appear.
func (s *Schema) New(label string, values map[string]string) (*Record, error) {
	return s.build(label, time.Now(), values)
}

// NewOrdered binds values positionally, in declared field order.
func (s *Schema) NewOrdered(label string, values ...string) (*Record, error) {
	if len(values) != len(s.fields) {
		return nil, exitcode.Errorf(exitcode.Schema,
			"%s records take %d fields (%s), got %d",
			s.typ, len(s.fields), strings.Join(s.FieldNames(), ", "), len(values))
	}
	return s.bind(label, time.Now(), append([]string(nil), values...))
}

func (s *Schema) build(label string, ts time.Time, values map[string]string) (*Record, error) {
	for name := range values {
		if !s.Has(name) {
			return nil, s.unknown(name)
		}
	}

	bound := make([]string, len(s.fields))
	for i, f := range s.fields {
		v, ok := values[f.Name]
		if !ok {
			return nil, exitcode.Wrap(exitcode.Schema,
				fmt.Errorf("%w %q for %s record %q", ErrMissingField, f.Name, s.typ, label))
		}
		bound[i] = v
	}
	return s.bind(label, ts, bound)
}

func (s *Schema) bind(label string, ts time.Time, values []string) (*Record, error) {
	if strings.TrimSpace(label) == "" {
		return nil, exitcode.Errorf(exitcode.Schema, "%s record label cannot be empty", s.typ)
	}
	return &Record{schema: s, label: label, timestamp: ts, values: values}, nil
}

func (s *Schema) lookup(name string) (int, error) {
	i, ok := s.index[name]
	if !ok {
		return 0, s.unknown(name)
	}
	return i, nil
}

func (s *Schema) unknown(name string) error {
	return exitcode.Wrap(exitcode.Schema,
		fmt.Errorf("%w %q for %s records", ErrUnknownField, name, s.typ))
}
