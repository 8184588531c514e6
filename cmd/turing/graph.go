package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the state diagram",
	Long: `Outputs a Mermaid diagram (graph LR) of the machine's states and transitions.
With --input, the states visited by that run are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		var input *string
		if cmd.Flags().Changed("input") {
			s, _ := cmd.Flags().GetString("input")
			input = &s
		}
		return cli.Graph(cmd.Context(), cmd.OutOrStdout(), engine, input)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("input", "i", "", "Highlight the run on this input")
}
