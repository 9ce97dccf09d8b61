package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/kbsecret/kbsecret/internal/record"
)

// Mask replaces sensitive values in every display path.
const Mask = "********"

var (
	labelColor = color.New(color.Bold)
	typeColor  = color.New(color.FgHiBlack)
	fieldColor = color.New(color.FgCyan)
)

func init() {
	if NoColor() {
		color.NoColor = true
	}
}

// DisplayValue returns the value to show for a field. Insensitive fields are
// always shown as-is; sensitive fields only when reveal is set.
func DisplayValue(f record.FieldValue, reveal bool) string {
	if f.Sensitive && !reveal {
		return Mask
	}
	return f.Value
}

// WriteRecord prints a record as an indented field listing.
func WriteRecord(w io.Writer, r *record.Record, reveal bool) error {
	if _, err := fmt.Fprintf(w, "%s %s\n",
		labelColor.Sprint(r.Label()), typeColor.Sprintf("(%s)", r.Type())); err != nil {
		return err
	}
	for _, f := range r.Fields() {
		if _, err := fmt.Fprintf(w, "  %s %s\n",
			fieldColor.Sprint(f.Name+":"), DisplayValue(f, reveal)); err != nil {
			return err
		}
	}
	return nil
}

// WriteTerse prints one "field<sep>value" line per field, without color.
func WriteTerse(w io.Writer, r *record.Record, sep string, reveal bool) error {
	for _, f := range r.Fields() {
		if _, err := fmt.Fprintln(w, f.Name+sep+DisplayValue(f, reveal)); err != nil {
			return err
		}
	}
	return nil
}

// Field is one displayed name/value pair.
type Field struct {
	Name  string
	Value string
}

// Fields is a record's display values in declared order. It encodes as a
// JSON object whose keys keep that order.
type Fields []Field

// DisplayFields returns the display values of r in declared order, for JSON
// output.
func DisplayFields(r *record.Record, reveal bool) Fields {
	fields := r.Fields()
	out := make(Fields, 0, len(fields))
	for _, f := range fields {
		out = append(out, Field{Name: f.Name, Value: DisplayValue(f, reveal)})
	}
	return out
}

// Get returns the value displayed for name.
func (fs Fields) Get(name string) (string, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func (fs Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Summary renders "label (type)" with an optional detail suffix.
func Summary(r *record.Record, detail ...string) string {
	s := fmt.Sprintf("%s (%s)", r.Label(), r.Type())
	if len(detail) > 0 {
		s += " " + strings.Join(detail, " ")
	}
	return s
}
