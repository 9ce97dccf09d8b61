package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbsecret/kbsecret/internal/cli"
	"github.com/kbsecret/kbsecret/internal/config"
	"github.com/kbsecret/kbsecret/internal/exitcode"
	"github.com/kbsecret/kbsecret/internal/generator"
)

var generatorsCmd = leaf("generators", "List generator profiles", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret generators [options]")
			o.Bool("a", "show-all", "show each profile's format and length")
		}); err != nil {
			return err
		}
		return c.ParseArguments(nil)
	}, func(c *cli.Context, rt *runtime) error {
		cfg, err := rt.Config()
		if err != nil {
			return err
		}
		for _, name := range cfg.GeneratorNames() {
			fmt.Fprintln(c.Stdout(), name)
			if c.Options().Bool("show-all") {
				g := cfg.Generators[name]
				fmt.Fprintf(c.Stdout(), "\tformat: %s\n\tlength: %d\n", g.Format, g.Length)
			}
		}
		return nil
	})
})

var newGeneratorCmd = leaf("new-generator", "Declare a new generator profile", func(cmd *cobra.Command, args []string) {
	run(cmd, args, func(c *cli.Context, _ *runtime) error {
		if err := c.ParseOptions(func(o *cli.OptionSet) {
			o.Banner("Usage: kbsecret new-generator [options] <name> <format> <length>")
			o.Bool("f", "force", "overwrite an existing profile")
		}); err != nil {
			return err
		}
		return c.ParseArguments(func(a *cli.ArgumentSpec) {
			a.String("name")
			a.String("format")
			a.Int("length")
		})
	}, func(c *cli.Context, rt *runtime) error {
		cfg, err := rt.Config()
		if err != nil {
			return err
		}
		name := c.Arguments().String("name")
		p := generator.Profile{
			Name:   name,
			Format: generator.Format(c.Arguments().String("format")),
			Length: c.Arguments().Int("length"),
		}
		if err := p.Validate(); err != nil {
			return exitcode.Wrap(exitcode.Usage, err)
		}
		g := config.GeneratorConfig{Format: string(p.Format), Length: p.Length}
		if err := config.AddGenerator(cfg, name, g, c.Options().Bool("force")); err != nil {
			return exitcode.Wrap(exitcode.Usage, err)
		}
		if err := rt.save(); err != nil {
			return err
		}
		c.Info(fmt.Sprintf("Created generator %s.", name))
		return nil
	})
})

func init() {
	rootCmd.AddCommand(generatorsCmd, newGeneratorCmd)
}
