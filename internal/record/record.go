package record

import (
	"time"
)

// FieldValue is one bound field of a record instance.
type FieldValue struct {
	Name      string
	Value     string
	Sensitive bool
}

// Record is a single stored secret: a label plus one value per declared field.
type Record struct {
	schema    *Schema
	label     string
	timestamp time.Time
	values    []string
}

func (r *Record) Label() string {
	return r.label
}

func (r *Record) Type() string {
	return r.schema.typ
}

func (r *Record) Schema() *Schema {
	return r.schema
}

// Timestamp is the time the record was created or last written by storage.
func (r *Record) Timestamp() time.Time {
	return r.timestamp
}

// Get returns the value bound to the named field.
func (r *Record) Get(name string) (string, error) {
	i, err := r.schema.lookup(name)
	if err != nil {
		return "", err
	}
	return r.values[i], nil
}

// Sensitive reports whether the named field must be masked downstream.
func (r *Record) Sensitive(name string) (bool, error) {
	return r.schema.Sensitive(name)
}

// Fields returns every bound field in declared order.
func (r *Record) Fields() []FieldValue {
	out := make([]FieldValue, len(r.values))
	for i, f := range r.schema.fields {
		out[i] = FieldValue{Name: f.Name, Value: r.values[i], Sensitive: f.Sensitive}
	}
	return out
}

// Values returns the bound values in declared order.
func (r *Record) Values() []string {
	return append([]string(nil), r.values...)
}

// field is for typed wrappers whose field names are fixed by their schema.
func (r *Record) field(name string) string {
	return r.values[r.schema.index[name]]
}
