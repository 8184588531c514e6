package main

import (
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [input]",
	Short: "Run the machine on one input string",
	Long: `Runs the machine on the input and reports whether it is accepted.
Exits with status 2 when the machine does not halt within the step limit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		if !cmd.Flags().Changed("input") && len(args) > 0 {
			input = args[0]
		}
		verbose, _ := cmd.Flags().GetBool("verbose")

		p := cli.RunParams{
			Input:   input,
			Verbose: verbose,
			Window:  env.cfg.Run.Window,
			Color:   tui.ColorEnabled(os.Stdout),
		}
		if cmd.Flags().Changed("window") {
			p.Window, _ = cmd.Flags().GetInt("window")
		}
		if cmd.Flags().Changed("step-limit") {
			n, _ := cmd.Flags().GetUint64("step-limit")
			p.StepLimit = &n
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()
		ctx := sm.Context()

		_, err = cli.RunMachine(ctx, cmd.OutOrStdout(), engine, p)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("input", "i", "", "Input string (empty for ε)")
	runCmd.Flags().BoolP("verbose", "v", false, "Print every configuration of the run")
	runCmd.Flags().Uint64("step-limit", 0, "Maximum number of steps, 0 for unbounded (default from config)")
	runCmd.Flags().Int("window", 0, "Tape cells shown on each side of the head in the trace, 0 for all")
}
