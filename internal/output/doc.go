// Package output provides the terminal output utilities for kbsecret.
//
// Diagnostics (info, warnings, fatal errors, debug traces) go through a
// charmbracelet/log logger on the diagnostic stream so that primary output
// stays machine-parseable. Record display lives here too, since it is the
// one place that decides whether a field value may be shown in the clear.
//
// Features:
//   - Labelled diagnostics: "Info: ", "Warning: ", "Fatal: ", "Debug: "
//   - Sensitive field masking for record display
//   - JSON output for scripting
//   - NO_COLOR environment variable support
package output
