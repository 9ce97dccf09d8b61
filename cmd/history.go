package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/audit"
	"github.com/kbsecret/kbsecret/internal/cli"
)

var historyCmd = leaf("history", "Show recent kbsecret invocations", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret history [options]")
			o.String("s", "session", "", "show only invocations against this session")
			o.Int("n", "limit", 20, "max number of events to display")
		}); err != nil {
			return err
		}
		return c.ParseArguments(nil)
	}, func(c *cli.Context, _ *runtime) error {
		path, err := settingPath("audit")
		if err != nil {
			return err
		}
		events, err := audit.Read(path)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}

		filter := c.Options().String("session")
		filtered := make([]audit.Event, 0, len(events))
		for _, event := range events {
			if filter != "" && event.Session != filter {
				continue
			}
			filtered = append(filtered, event)
		}
		if len(filtered) == 0 {
			c.Warn("No matching history events.")
			return nil
		}

		start := 0
		if limit := c.Options().Int("limit"); limit > 0 && len(filtered) > limit {
			start = len(filtered) - limit
		}

		for _, event := range filtered[start:] {
			status := color.New(color.FgGreen)
			if event.Result != audit.ResultSuccess {
				status = color.New(color.FgRed)
			}
			status.Fprint(c.Stdout(), event.Result)
			fmt.Fprintf(c.Stdout(), "  %s  op=%s", event.Timestamp, event.Operation)
			if event.Session != "" {
				fmt.Fprintf(c.Stdout(), "  session=%s", event.Session)
			}
			fmt.Fprintf(c.Stdout(), "  exit=%d  duration=%dms\n", event.ExitCode, event.DurationMs)
		}
		return nil
	})
})

func init() {
	rootCmd.AddCommand(historyCmd)
}
