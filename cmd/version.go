package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/cli"
)

var versionCmd = leaf("version", "Print kbsecret version", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret version [options]")
		}); err != nil {
			return err
		}
		return c.ParseArguments(nil)
	}, func(c *cli.Context, _ *runtime) error {
		fmt.Fprintf(c.Stdout(), "kbsecret version %s (commit: %s, built: %s)\n", Version, Commit, BuildDate)
		return nil
	})
})

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}
