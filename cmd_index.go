package main

import (
	"github.com/spf13/cobra"

	"github.com/datawire/wheelhouse/pkg/cliutil"
)

var argparserIndex = &cobra.Command{
	Use:   "index {[flags]|SUBCOMMAND...}",
	Short: "Deal with static package indexes",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserIndex)
}
