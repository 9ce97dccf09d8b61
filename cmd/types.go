package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/cli"
	"github.com/kbsecret/kbsecret/internal/record"
)

var typesCmd = leaf("types", "List record types", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret types [options]")
			o.Bool("a", "show-all", "show each type's fields")
		}); err != nil {
			return err
		}
		return c.ParseArguments(nil)
	}, func(c *cli.Context, _ *runtime) error {
		for _, name := range record.Default.Types() {
			if !c.Options().Bool("show-all") {
				fmt.Fprintln(c.Stdout(), name)
				continue
			}
			schema, err := record.Default.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.Stdout(), "%s: %s\n", name, strings.Join(schema.FieldNames(), ", "))
		}
		return nil
	})
})

func init() {
	rootCmd.AddCommand(typesCmd)
}
