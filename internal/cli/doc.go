// Package cli turns a command's raw arguments into a validated execution
// context for kbsecret commands.
//
// A command builds a Context, parses its options and then its trailing
// arguments, and finally resolves whatever domain objects it needs (a session,
// a record type, a generator profile). Every step returns an error; Guard is
// the single place where an error becomes a "Fatal: " line and a non-zero exit.
//
//	c := cli.Create(argv, func(c *cli.Context) error {
//		if err := c.ParseOptions(func(o *cli.OptionSet) {
//			o.String("s", "session", "default", "the session to use")
//		}); err != nil {
//			return err
//		}
//		if err := c.ParseArguments(func(a *cli.ArgumentSpec) {
//			a.String("label")
//		}); err != nil {
//			return err
//		}
//		return c.EnsureSession(cli.FromOption)
//	})
//
// Help (-h, --help) and flag introspection (--introspect-flags) are handled by
// ParseOptions, which prints and reports exitcode.ErrDone so that Guard ends
// the process successfully.
package cli
