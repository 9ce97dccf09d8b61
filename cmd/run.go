package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/audit"
	"github.com/kbsecret/kbsecret/internal/cli"
	"github.com/kbsecret/kbsecret/internal/exitcode"
	"github.com/kbsecret/kbsecret/internal/output"
)

// setupFunc parses options and arguments and resolves collaborators.
// bodyFunc does the command's work once setup has succeeded.
type (
	setupFunc func(c *cli.Context, rt *runtime) error
	bodyFunc  func(c *cli.Context, rt *runtime) error
)

// run drives one kbsecret subcommand: setup and body run under the same
// guard, and the outcome is appended to the history log.
func run(cmd *cobra.Command, args []string, setup setupFunc, body bodyFunc) {
	start := time.Now()
	rt := newRuntime()
	defer rt.Close()

	logEvent := func(code int) {
		path, err := settingPath("audit")
		if err != nil || path == "" {
			return
		}
		_ = audit.Write(path, audit.BuildEvent(cmd.Name(), args, code, time.Since(start)))
	}
	exit := func(code int) {
		logEvent(code)
		_ = rt.Close()
		exitFunc(code)
	}

	opts := append(rt.options(), cli.WithExit(exit))
	c := cli.Create(args, func(c *cli.Context) error {
		return setup(c, rt)
	}, contextOptions(cmd, opts...)...)
	c.Guard(func() error {
		return body(c, rt)
	})
	logEvent(exitcode.OK)
}

// jsonErrors wraps the body of a command that has a -j/--json flag: when the
// flag is set, a failure is also written to stdout as an error envelope.
func jsonErrors(body bodyFunc) bodyFunc {
	return func(c *cli.Context, rt *runtime) error {
		err := body(c, rt)
		if err != nil && c.Options().Bool("json") {
			_ = output.JSONError(c.Stdout(), err)
		}
		return err
	}
}
