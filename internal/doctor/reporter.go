package doctor

import (
	"fmt"
	"io"
	"strings"

	"github.com/kbsecret/kbsecret/internal/output"
)

// StatusIcon returns the marker printed in front of a check result.
func StatusIcon(s Status) string {
	if output.NoColor() {
		switch s {
		case StatusPass:
			return "[PASS]"
		case StatusFail:
			return "[FAIL]"
		case StatusWarn:
			return "[WARN]"
		case StatusSkip:
			return "[SKIP]"
		default:
			return "[????]"
		}
	}
	switch s {
	case StatusPass:
		return "✅"
	case StatusFail:
		return "❌"
	case StatusWarn:
		return "⚠️"
	case StatusSkip:
		return "⏭️"
	default:
		return "❓"
	}
}

// PrintResults writes check results grouped by category, then a summary line.
func PrintResults(w io.Writer, summary Summary) {
	checks := AllChecks()
	lastCategory := ""
	for i, r := range summary.Results {
		cat := ""
		if i < len(checks) {
			cat = checks[i].Category
		}
		if cat != lastCategory {
			printCategoryHeader(w, cat)
			lastCategory = cat
		}
		printCheckResult(w, r)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, SummaryLine(summary))
}

// SummaryLine renders the pass/warn/fail counts.
func SummaryLine(s Summary) string {
	parts := []string{}
	if s.TotalPass > 0 {
		parts = append(parts, fmt.Sprintf("%d passed", s.TotalPass))
	}
	if s.TotalWarn > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", s.TotalWarn))
	}
	if s.TotalFail > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.TotalFail))
	}
	if s.TotalSkip > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", s.TotalSkip))
	}
	return strings.Join(parts, ", ")
}

func printCategoryHeader(w io.Writer, cat string) {
	var label string
	switch cat {
	case "config":
		label = "Configuration"
	case "store":
		label = "Record Store"
	case "history":
		label = "History"
	default:
		label = cat
	}
	if output.NoColor() {
		fmt.Fprintf(w, "--- %s ---\n", label)
	} else {
		fmt.Fprintf(w, "━━ %s ━━\n", label)
	}
}

func printCheckResult(w io.Writer, r CheckResult) {
	fmt.Fprintf(w, "  %s  %s\n", StatusIcon(r.Status), r.Message)
	if r.Fix != "" && r.Status != StatusPass {
		if output.NoColor() {
			fmt.Fprintf(w, "       Fix: %s\n", r.Fix)
		} else {
			fmt.Fprintf(w, "       💡 %s\n", r.Fix)
		}
	}
}
