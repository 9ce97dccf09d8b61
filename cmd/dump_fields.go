package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/cli"
	"github.com/kbsecret/kbsecret/internal/output"
)

var dumpFieldsCmd = leaf("dump-fields", "Print the fields of a record", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret dump-fields [options] <label>")
			o.String("s", "session", "default", "the session containing the record")
			o.Bool("x", "terse", "output in field<sep>value format")
			o.String("i", "ifs", cli.IFS(), "separate terse pairs with this string")
			o.Bool("r", "reveal", "print sensitive values instead of masking them")
			o.Bool("j", "json", "print the fields as JSON")
		}); err != nil {
			return err
		}
		if err := c.ParseArguments(func(a *cli.ArgumentSpec) {
			a.String("label")
		}); err != nil {
			return err
		}
		return c.EnsureSession(cli.FromOption)
	}, jsonErrors(func(c *cli.Context, _ *runtime) error {
		r, err := c.Session().Record(c.Arguments().String("label"))
		if err != nil {
			return err
		}

		reveal := c.Options().Bool("reveal")
		switch {
		case c.Options().Bool("json"):
			return output.JSON(c.Stdout(), output.DisplayFields(r, reveal))
		case c.Options().Bool("terse"):
			return output.WriteTerse(c.Stdout(), r, c.Options().String("ifs"), reveal)
		default:
			return output.WriteRecord(c.Stdout(), r, reveal)
		}
	}))
})

func init() {
	rootCmd.AddCommand(dumpFieldsCmd)
}
