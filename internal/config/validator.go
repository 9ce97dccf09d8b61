package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// schemaBytes holds the embedded JSON Schema.
// It is set by the schemas package init or by SetSchema() for testing.
var schemaBytes []byte

// SetSchema sets the JSON Schema bytes used for validation.
// This is called by the schemas package init() or can be called in tests.
func SetSchema(data []byte) {
	schemaBytes = data
}

// GetSchema returns the embedded JSON Schema bytes.
func GetSchema() []byte {
	return schemaBytes
}

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationResult holds the outcome of a config validation.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ErrInvalid is wrapped by every schema validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Err folds an invalid result into a single error wrapping ErrInvalid, or
// returns nil.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Field + ": " + e.Description
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Validate validates a Config against the embedded JSON Schema.
func Validate(cfg *Config) (*ValidationResult, error) {
	// Convert Go struct → JSON for schema validation
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config to JSON: %w", err)
	}
	return validate(jsonBytes)
}

// ValidateYAML validates config.yml as written, before defaults are applied,
// so that misspelled or unknown keys are reported.
func ValidateYAML(data []byte) (*ValidationResult, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	jsonBytes, err := json.Marshal(stringKeys(raw))
	if err != nil {
		return nil, fmt.Errorf("converting config YAML to JSON: %w", err)
	}
	return validate(jsonBytes)
}

func validate(document []byte) (*ValidationResult, error) {
	if len(schemaBytes) == 0 {
		return nil, fmt.Errorf("JSON schema not loaded; call config.SetSchema() or import the schemas package")
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("running schema validation: %w", err)
	}

	vr := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		vr.Errors = append(vr.Errors, ValidationError{
			Field:       e.Field(),
			Description: e.Description(),
		})
	}
	return vr, nil
}

// stringKeys rewrites the non-string map keys yaml.v3 may produce (numbers,
// booleans) so the document can be marshalled to JSON.
func stringKeys(v interface{}) interface{} {
	switch node := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(node))
		for k, child := range node {
			m[fmt.Sprint(k)] = stringKeys(child)
		}
		return m
	case map[string]interface{}:
		for k, child := range node {
			node[k] = stringKeys(child)
		}
		return node
	case []interface{}:
		for i, child := range node {
			node[i] = stringKeys(child)
		}
		return node
	}
	return v
}
