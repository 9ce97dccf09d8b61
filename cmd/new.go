package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/cli"
	"github.com/kbsecret/kbsecret/internal/exitcode"
	"github.com/kbsecret/kbsecret/internal/wizard"
)

var newCmd = leaf("new", "Create a new record", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret new [options] <type> <label> [fields...]")
			o.String("s", "session", "default", "the session to contain the record")
			o.Bool("f", "force", "force creation (ignore overwrites, etc.)")
			o.Bool("x", "terse", "read fields from input in a terse format")
			o.String("i", "ifs", cli.IFS(), "separate terse fields with this string")
			o.Bool("e", "echo", "echo input to tty (only affects interactive input)")
			o.Bool("g", "generate", "generate secret fields (interactive only)")
			o.String("G", "generator", "default", "the generator to use for secret fields")
		}); err != nil {
			return err
		}
		if err := c.ParseArguments(func(a *cli.ArgumentSpec) {
			a.String("type")
			a.String("label")
			a.Rest("fields", cli.String)
		}); err != nil {
			return err
		}
		if err := c.EnsureType(cli.FromArgument); err != nil {
			return err
		}
		if err := c.EnsureSession(cli.FromOption); err != nil {
			return err
		}
		if c.Options().Bool("generate") {
			return c.EnsureGenerator(cli.FromOption)
		}
		return nil
	}, func(c *cli.Context, _ *runtime) error {
		label := c.Arguments().String("label")
		force := c.Options().Bool("force")

		exists, err := c.Session().Has(label)
		if err != nil {
			return err
		}
		if exists && !force {
			return exitcode.Errorf(exitcode.Usage,
				"refusing to overwrite a record without --force: %s", label)
		}

		values, err := newFieldValues(c)
		if err != nil {
			return err
		}
		r, err := c.Type().NewOrdered(label, values...)
		if err != nil {
			return err
		}
		if err := c.Session().Add(r, force); err != nil {
			return err
		}
		c.Info(fmt.Sprintf("Created %s.", r.Label()))
		return nil
	})
})

// newFieldValues collects the new record's fields from the command line,
// from terse input, or interactively, in that order of preference.
func newFieldValues(c *cli.Context) ([]string, error) {
	if fields := c.Arguments().Strings("fields"); len(fields) > 0 {
		return fields, nil
	}

	if c.Options().Bool("terse") {
		data, err := io.ReadAll(c.Stdin())
		if err != nil {
			return nil, fmt.Errorf("reading terse input: %w", err)
		}
		line := strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
		return strings.Split(line, c.Options().String("ifs")), nil
	}

	preset := map[string]string{}
	if c.Options().Bool("generate") {
		for _, f := range c.Type().Fields() {
			if !f.Sensitive {
				continue
			}
			v, err := c.Generator().Generate()
			if err != nil {
				return nil, err
			}
			preset[f.Name] = v
		}
	}
	return wizard.PromptFields(newPrompter(), c.Type(), c.Options().Bool("echo"), preset)
}

func init() {
	rootCmd.AddCommand(newCmd)
}
