package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONResult is the standard envelope for JSON output from any kbsecret command.
type JSONResult struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // command-specific payload
	Error  string      `json:"error,omitempty"` // error message, if any
}

// JSON writes a structured JSON result to w.
func JSON(w io.Writer, data interface{}) error {
	return writeJSON(w, JSONResult{Status: "ok", Data: data})
}

// JSONError writes an error result as JSON to w.
func JSONError(w io.Writer, err error) error {
	return writeJSON(w, JSONResult{Status: "error", Error: err.Error()})
}

func writeJSON(w io.Writer, result JSONResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
