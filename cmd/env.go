package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/cli"
	"github.com/kbsecret/kbsecret/internal/exitcode"
	"github.com/kbsecret/kbsecret/internal/record"
)

var envCmd = leaf("env", "Print environment records in a shell-friendly form", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret env [options] <labels...>")
			o.String("s", "session", "default", "the session to search in")
			o.Bool("a", "all", "print all environment records in the session")
			o.Bool("v", "value-only", "print only the value of each variable")
			o.Bool("n", "no-export", "print VAR=value without the export keyword")
		}); err != nil {
			return err
		}
		if err := c.ParseArguments(func(a *cli.ArgumentSpec) {
			a.Rest("labels", cli.String)
		}); err != nil {
			return err
		}
		return c.EnsureSession(cli.FromOption)
	}, func(c *cli.Context, _ *runtime) error {
		envs, err := selectEnvironments(c)
		if err != nil {
			return err
		}
		for _, e := range envs {
			switch {
			case c.Options().Bool("value-only"):
				fmt.Fprintln(c.Stdout(), e.Value())
			case c.Options().Bool("no-export"):
				fmt.Fprintln(c.Stdout(), e.Assignment())
			default:
				fmt.Fprintln(c.Stdout(), e.Export())
			}
		}
		return nil
	})
})

// selectEnvironments returns either every environment record in the session
// (--all) or the named ones, in the order given.
func selectEnvironments(c *cli.Context) ([]*record.Environment, error) {
	var records []*record.Record
	if c.Options().Bool("all") {
		all, err := c.Session().RecordsOfType(record.EnvironmentSchema.Type())
		if err != nil {
			return nil, err
		}
		records = all
	} else {
		labels := c.Arguments().Strings("labels")
		if len(labels) == 0 {
			return nil, exitcode.Errorf(exitcode.Usage, "no labels given (use --all for every environment record)")
		}
		for _, label := range labels {
			r, err := c.Session().Record(label)
			if err != nil {
				return nil, err
			}
			records = append(records, r)
		}
	}

	envs := make([]*record.Environment, 0, len(records))
	for _, r := range records {
		e, err := record.AsEnvironment(r)
		if err != nil {
			return nil, err
		}
		envs = append(envs, e)
	}
	return envs, nil
}

func init() {
	rootCmd.AddCommand(envCmd)
}
