package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/schema"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarize the machine as markdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		raw, _ := cmd.Flags().GetBool("raw")

		m, err := schema.LoadFile(path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return cli.Describe(cmd.OutOrStdout(), m, name, !raw && tui.IsTerminal(os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print markdown source instead of rendering it")
}
