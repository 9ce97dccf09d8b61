// Package audit keeps an append-only JSONL history of kbsecret invocations.
// Events record which command ran against which session and how it ended.
// Arguments are never stored, since they may carry record labels or values.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

type Event struct {
	Timestamp     string `json:"timestamp"`
	Operation     string `json:"operation"`
	Session       string `json:"session,omitempty"`
	Result        string `json:"result"`
	ExitCode      int    `json:"exitCode"`
	DurationMs    int64  `json:"durationMs"`
	CorrelationID string `json:"correlationId"`
}

// BuildEvent describes one finished invocation of operation with the given
// raw arguments.
func BuildEvent(operation string, args []string, exitCode int, duration time.Duration) Event {
	result := ResultSuccess
	if exitCode != 0 {
		result = ResultFailure
	}
	now := time.Now().UTC()
	return Event{
		Timestamp:     now.Format(time.RFC3339),
		Operation:     sanitize(operation),
		Session:       inferSession(args),
		Result:        result,
		ExitCode:      exitCode,
		DurationMs:    duration.Milliseconds(),
		CorrelationID: fmt.Sprintf("%d", now.UnixNano()),
	}
}

// Write appends event to the log at path, creating it if needed.
func Write(path string, event Event) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	line, err := json.Marshal(event)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}

// Read returns every event in the log at path, oldest first. A missing log
// is empty. Malformed lines are skipped.
func Read(path string) ([]Event, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var out []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var event Event
		if err := json.Unmarshal([]byte(line), &event); err == nil {
			out = append(out, event)
		}
	}
	return out, scanner.Err()
}

// inferSession finds the value of -s/--session in raw arguments, stopping
// at "--".
func inferSession(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return ""
		case strings.HasPrefix(a, "--session="):
			return strings.TrimPrefix(a, "--session=")
		case (a == "-s" || a == "--session") && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(a, "-s") && len(a) > 2 && !strings.HasPrefix(a, "--"):
			return strings.TrimPrefix(a[2:], "=")
		}
	}
	return ""
}

func sanitize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "root"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "-", ":", "-")
	return replacer.Replace(s)
}
