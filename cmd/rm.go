package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/cli"
	"github.com/kbsecret/kbsecret/internal/exitcode"
	"github.com/kbsecret/kbsecret/internal/wizard"
)

var rmCmd = leaf("rm", "Delete records", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret rm [options] <labels...>")
			o.String("s", "session", "default", "the session containing the records")
			o.Bool("i", "interactive", "ask for confirmation before deleting")
		}); err != nil {
			return err
		}
		if err := c.ParseArguments(func(a *cli.ArgumentSpec) {
			a.List("labels", cli.String)
		}); err != nil {
			return err
		}
		return c.EnsureSession(cli.FromOption)
	}, func(c *cli.Context, _ *runtime) error {
		labels := c.Arguments().Strings("labels")

		var missing []string
		for _, label := range labels {
			ok, err := c.Session().Has(label)
			if err != nil {
				return err
			}
			if !ok {
				missing = append(missing, label)
			}
		}
		if len(missing) > 0 {
			return exitcode.Errorf(exitcode.Resolution, "no such record(s): %s", strings.Join(missing, ", "))
		}

		if c.Options().Bool("interactive") {
			ok, err := wizard.ConfirmRemoval(newPrompter(), labels)
			if err != nil {
				return err
			}
			if !ok {
				c.Bye("Nothing deleted.")
				return nil
			}
		}

		for _, label := range labels {
			if err := c.Session().Delete(label); err != nil {
				return err
			}
			c.Info(fmt.Sprintf("Deleted %s.", label))
		}
		return nil
	})
})

func init() {
	rootCmd.AddCommand(rmCmd)
}
