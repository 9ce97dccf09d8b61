// Package cmd implements the Cobra-based CLI for kbsecret.
package cmd

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kbsecret/kbsecret/internal/cli"
)

// rootCmd is the top-level command for kbsecret.
var rootCmd = &cobra.Command{
	Use:   "kbsecret",
	Short: "kbsecret – a secret manager for the command line",
	Long: `kbsecret stores secrets as typed records (logins, environment variables,
code snippets, todos and free text) grouped into sessions.

Sessions and generator profiles are declared in config.yml. Records live in a
local store. Both locations can be overridden through the environment:
  KBSECRET_CONFIG   path to config.yml
  KBSECRET_STORE    path to the record store
  KBSECRET_AUDIT    path to the command history log

Every subcommand accepts -h/--help, -V/--verbose, -w/--no-warn, --debug and
--introspect-flags.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitFunc ends the process once a command has finished or failed.
var exitFunc = os.Exit

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetVersionTemplate("kbsecret version {{.Version}}\n")
}

func initConfig() {
	viper.SetEnvPrefix("KBSECRET")
	viper.AutomaticEnv()

	viper.SetDefault("config", filepath.Join("~", ".config", "kbsecret", "config.yml"))
	viper.SetDefault("store", filepath.Join("~", ".local", "share", "kbsecret", "store.db"))
	viper.SetDefault("audit", filepath.Join("~", ".local", "share", "kbsecret", "audit.log"))
}

// settingPath returns a path-valued setting with "~" expanded.
func settingPath(key string) (string, error) {
	return homedir.Expand(viper.GetString(key))
}

// leaf builds a subcommand whose arguments are parsed by cli.Context rather
// than by cobra, so that every command shares the same baseline flags.
func leaf(use, short string, run func(cmd *cobra.Command, args []string)) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		Run:                run,
	}
}

// contextOptions wires a cli.Context to the command's streams. Later
// options override earlier ones.
func contextOptions(cmd *cobra.Command, extra ...cli.Option) []cli.Option {
	opts := []cli.Option{
		cli.WithName(rootCmd.Name() + " " + cmd.Name()),
		cli.WithStreams(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
		cli.WithExit(exitFunc),
	}
	return append(opts, extra...)
}
