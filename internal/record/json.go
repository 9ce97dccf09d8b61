package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kbsecret/kbsecret/internal/exitcode"
)

type document struct {
	Label     string          `json:"label"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// MarshalJSON encodes the record with its data fields in declared order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var data bytes.Buffer
	data.WriteByte('{')
	for i, f := range r.schema.fields {
		if i > 0 {
			data.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		data.Write(key)
		data.WriteByte(':')
		data.Write(val)
	}
	data.WriteByte('}')

	return json.Marshal(document{
		Label:     r.label,
		Type:      r.schema.typ,
		Timestamp: r.timestamp.Unix(),
		Data:      data.Bytes(),
	})
}

// Decode parses a record previously encoded with MarshalJSON, validating its
// type and fields against the registry.
func (r *Registry) Decode(raw []byte) (*Record, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}

	s, err := r.Lookup(doc.Type)
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	if len(doc.Data) > 0 {
		if err := json.Unmarshal(doc.Data, &values); err != nil {
			return nil, exitcode.Wrap(exitcode.Schema,
				fmt.Errorf("decoding %s record %q fields: %w", doc.Type, doc.Label, err))
		}
	}
	return s.build(doc.Label, time.Unix(doc.Timestamp, 0), values)
}
