package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/schema"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a machine between the tm, yaml and json formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		to, _ := cmd.Flags().GetString("to")
		output, _ := cmd.Flags().GetString("output")

		m, err := schema.LoadFile(path)
		if err != nil {
			return err
		}
		if output == "" {
			return cli.Convert(cmd.OutOrStdout(), m, to)
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		if err := cli.Convert(f, m, to); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("to", "yaml", "Target format: tm, yaml or json")
	convertCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
}
