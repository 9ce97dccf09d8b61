package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/cli"
)

var commandsCmd = leaf("commands", "List all kbsecret subcommands", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret commands [options]")
		}); err != nil {
			return err
		}
		return c.ParseArguments(nil)
	}, func(c *cli.Context, _ *runtime) error {
		for _, sub := range rootCmd.Commands() {
			if sub.Hidden || !sub.IsAvailableCommand() {
				continue
			}
			fmt.Fprintln(c.Stdout(), sub.Name())
		}
		return nil
	})
})

func init() {
	rootCmd.AddCommand(commandsCmd)
}
