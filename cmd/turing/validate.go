package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the machine for consistency",
	Long: `Loads the machine, which fails on any malformed description, and reports
unreachable states, transitions that can never fire and unused tape symbols.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		strict, _ := cmd.Flags().GetBool("strict")

		m, err := schema.LoadFile(path)
		if err != nil {
			return err
		}
		return cli.Validate(cmd.OutOrStdout(), m, strict)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat lint warnings as errors")
}
