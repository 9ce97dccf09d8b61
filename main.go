// kbsecret – a secret manager for the command line.
// Records are typed, grouped into sessions declared in config.yml, and kept
// in a local bbolt store.
package main

import (
	"github.com/kbsecret/kbsecret/cmd"
	"github.com/kbsecret/kbsecret/internal/cli"
	_ "github.com/kbsecret/kbsecret/schemas"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cli.Die(cli.Sentence(err.Error()))
	}
}
