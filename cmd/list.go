package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/cli"
	"github.com/kbsecret/kbsecret/internal/output"
	"github.com/kbsecret/kbsecret/internal/record"
)

var listCmd = leaf("list", "List records in a session", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret list [options]")
			o.String("s", "session", "default", "the session to list from")
			o.String("t", "type", "", "the type of records to list")
			o.Bool("a", "show-all", "show everything in each record (implies --details)")
			o.Bool("d", "details", "show each record's type and creation time")
			o.Bool("j", "json", "print records as JSON (sensitive values masked)")
		}); err != nil {
			return err
		}
		if err := c.ParseArguments(nil); err != nil {
			return err
		}
		if c.Options().Changed("type") {
			if err := c.EnsureType(cli.FromOption); err != nil {
				return err
			}
		}
		return c.EnsureSession(cli.FromOption)
	}, jsonErrors(func(c *cli.Context, _ *runtime) error {
		var (
			records []*record.Record
			err     error
		)
		if c.Type() != nil {
			records, err = c.Session().RecordsOfType(c.Type().Type())
		} else {
			records, err = c.Session().Records()
		}
		if err != nil {
			return err
		}

		if c.Options().Bool("json") {
			out := make([]listedRecord, 0, len(records))
			for _, r := range records {
				out = append(out, listedRecord{Label: r.Label(), Type: r.Type(), Fields: output.DisplayFields(r, false)})
			}
			return output.JSON(c.Stdout(), out)
		}

		all := c.Options().Bool("show-all")
		details := all || c.Options().Bool("details")
		for _, r := range records {
			switch {
			case all:
				if err := output.WriteRecord(c.Stdout(), r, false); err != nil {
					return err
				}
			case details:
				fmt.Fprintln(c.Stdout(), output.Summary(r, r.Timestamp().Format("2006-01-02 15:04:05")))
			default:
				fmt.Fprintln(c.Stdout(), r.Label())
			}
		}
		return nil
	}))
})

type listedRecord struct {
	Label  string        `json:"label"`
	Type   string        `json:"type"`
	Fields output.Fields `json:"fields"`
}

func init() {
	rootCmd.AddCommand(listCmd)
}
