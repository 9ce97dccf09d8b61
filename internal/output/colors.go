package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// NoColor returns true if colored output should be disabled.
// Respects the NO_COLOR environment variable (https://no-color.org/).
func NoColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// Color definitions for consistent styling across the CLI.
var (
	ColorSuccess = lipgloss.Color("#2ECC71") // green
	ColorWarning = lipgloss.Color("#F1C40F") // yellow
	ColorError   = lipgloss.Color("#E74C3C") // red
	ColorMuted   = lipgloss.Color("#95A5A6") // gray
)

// Diagnostic labels. They are part of the output contract.
const (
	LabelInfo    = "Info:"
	LabelWarning = "Warning:"
	LabelFatal   = "Fatal:"
	LabelDebug   = "Debug:"
)

func levelStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels = map[log.Level]lipgloss.Style{
		log.DebugLevel: lipgloss.NewStyle().SetString(LabelDebug).Foreground(ColorMuted),
		log.InfoLevel:  lipgloss.NewStyle().SetString(LabelInfo).Foreground(ColorSuccess),
		log.WarnLevel:  lipgloss.NewStyle().SetString(LabelWarning).Foreground(ColorWarning),
		log.FatalLevel: lipgloss.NewStyle().SetString(LabelFatal).Foreground(ColorError),
	}
	return styles
}

// plainStyles keeps the labels and drops the colors for NO_COLOR mode.
func plainStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels = map[log.Level]lipgloss.Style{
		log.DebugLevel: lipgloss.NewStyle().SetString(LabelDebug),
		log.InfoLevel:  lipgloss.NewStyle().SetString(LabelInfo),
		log.WarnLevel:  lipgloss.NewStyle().SetString(LabelWarning),
		log.FatalLevel: lipgloss.NewStyle().SetString(LabelFatal),
	}
	return styles
}
