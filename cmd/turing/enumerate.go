package main

import (

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/spf13/cobra"
)

var enumerateCmd = &cobra.Command{
	Use:     "enumerate",
	Aliases: []string{"list"},
	Short:   "List the first strings accepted by the machine",
	Long: `Lists accepted strings in canonical order: shortest first, then in
input-alphabet order. Candidates are run side by side, so a candidate that never
halts is dropped after --ceiling steps instead of blocking the listing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		epsilon, _ := cmd.Flags().GetBool("epsilon")

		if cmd.Flags().Changed("ceiling") {
			env.cfg.Enumerate.Ceiling, _ = cmd.Flags().GetUint64("ceiling")
		}
		if cmd.Flags().Changed("admit") {
			env.cfg.Enumerate.AdmitPerRound, _ = cmd.Flags().GetInt("admit")
		}
		if cmd.Flags().Changed("max-rounds") {
			env.cfg.Enumerate.MaxRounds, _ = cmd.Flags().GetUint64("max-rounds")
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()
		ctx := sm.Context()

		return cli.ListLanguage(ctx, cmd.OutOrStdout(), engine, count, epsilon)
	},
}

func init() {
	rootCmd.AddCommand(enumerateCmd)

	enumerateCmd.Flags().IntP("count", "n", 10, "How many strings to list")
	enumerateCmd.Flags().Uint64("ceiling", 0, "Steps after which a candidate is dropped (default from config)")
	enumerateCmd.Flags().Int("admit", 0, "New candidates admitted per round (default from config)")
	enumerateCmd.Flags().Uint64("max-rounds", 0, "Stop after this many rounds, 0 for no limit")
	enumerateCmd.Flags().Bool("epsilon", false, "Print the empty string as ε")
}
