package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/cli"
	"github.com/kbsecret/kbsecret/internal/config"
	"github.com/kbsecret/kbsecret/internal/exitcode"
)

var sessionsCmd = leaf("sessions", "List configured sessions", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret sessions [options]")
			o.Bool("a", "show-all", "show each session's root and users")
		}); err != nil {
			return err
		}
		return c.ParseArguments(nil)
	}, func(c *cli.Context, rt *runtime) error {
		cfg, err := rt.Config()
		if err != nil {
			return err
		}
		for _, d := range cfg.SessionDescriptors() {
			fmt.Fprintln(c.Stdout(), d.Label)
			if !c.Options().Bool("show-all") {
				continue
			}
			fmt.Fprintf(c.Stdout(), "\troot: %s\n", d.Root)
			if len(d.Users) > 0 {
				fmt.Fprintf(c.Stdout(), "\tusers: %s\n", strings.Join(d.Users, ", "))
			}
		}
		return nil
	})
})

var newSessionCmd = leaf("new-session", "Declare a new session", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret new-session [options] <label> [users...]")
			o.String("r", "root", "", "the store bucket for the session (default: the label)")
			o.Bool("f", "force", "overwrite an existing session")
		}); err != nil {
			return err
		}
		return c.ParseArguments(func(a *cli.ArgumentSpec) {
			a.String("label")
			a.Rest("users", cli.String)
		})
	}, func(c *cli.Context, rt *runtime) error {
		cfg, err := rt.Config()
		if err != nil {
			return err
		}
		label := c.Arguments().String("label")
		s := config.SessionConfig{Root: c.Options().String("root"), Users: c.Arguments().Strings("users")}
		if err := config.AddSession(cfg, label, s, c.Options().Bool("force")); err != nil {
			return exitcode.Wrap(exitcode.Usage, err)
		}
		if err := rt.save(); err != nil {
			return err
		}
		c.Info(fmt.Sprintf("Created session %s.", label))
		return nil
	})
})

var rmSessionCmd = leaf("rm-session", "Forget a session", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret rm-session [options] <label>")
		}); err != nil {
			return err
		}
		if err := c.ParseArguments(func(a *cli.ArgumentSpec) {
			a.String("session")
		}); err != nil {
			return err
		}
		return c.EnsureSession(cli.FromArgument)
	}, func(c *cli.Context, rt *runtime) error {
		cfg, err := rt.Config()
		if err != nil {
			return err
		}
		label := c.Session().Label
		if err := config.RemoveSession(cfg, label); err != nil {
			return err
		}
		if err := rt.save(); err != nil {
			return err
		}
		c.Warn(fmt.Sprintf("Records of %s were kept in the store under %s.", label, c.Session().Root))
		return nil
	})
})

func init() {
	rootCmd.AddCommand(sessionsCmd, newSessionCmd, rmSessionCmd)
}
