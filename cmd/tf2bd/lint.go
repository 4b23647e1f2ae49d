package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamild1996/tf2-bot-detector/pkg/configfiles"
	"github.com/kamild1996/tf2-bot-detector/pkg/rules"
)

var lintCmd = &cobra.Command{
	Use:   "lint FILE",
	Short: "Validate a rule document",
	Long: `Parse and schema-validate a single rule document without loading the
configuration directory. Useful before publishing a third-party list.

Examples:
  tf2bd lint rules.myfriends.json`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	log := newLogger()

	file, err := configfiles.LoadFile(cmd.Context(), args[0],
		configfiles.JSONCodec{}, nil, log, rules.NewFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d rules)\n", args[0], len(file.Rules))
	if file.Schema == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "note: no $schema declared; one will be stamped on save")
	}
	return nil
}
