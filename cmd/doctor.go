package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/cli"
	"github.com/kbsecret/kbsecret/internal/doctor"
	"github.com/kbsecret/kbsecret/internal/exitcode"
	"github.com/kbsecret/kbsecret/internal/output"
)

var doctorCmd = leaf("doctor", "Check the configuration and record store", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret doctor [options]")
			o.Bool("j", "json", "print results as JSON")
		}); err != nil {
			return err
		}
		return c.ParseArguments(nil)
	}, func(c *cli.Context, _ *runtime) error {
		target := &doctor.Target{}
		for key, dst := range map[string]*string{
			"config": &target.ConfigPath,
			"store":  &target.StorePath,
			"audit":  &target.AuditPath,
		} {
			path, err := settingPath(key)
			if err != nil {
				return err
			}
			*dst = path
		}

		summary := doctor.RunAll(target)
		if c.Options().Bool("json") {
			if err := output.JSON(c.Stdout(), summary); err != nil {
				return err
			}
		} else {
			doctor.PrintResults(c.Stdout(), summary)
		}
		if summary.HasFailure {
			return exitcode.Errorf(exitcode.Schema, "doctor found issues: %s", doctor.SummaryLine(summary))
		}
		return nil
	})
})

func init() {
	rootCmd.AddCommand(doctorCmd)
}
