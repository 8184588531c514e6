package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing runs and enumerates single-tape Turing machines",
	Long: `Turing loads a machine description (.tm, .yaml or .json), runs it on input
strings and lists the first members of the language it recognizes.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  loadEnvironment,
	PersistentPostRunE: closeEnvironment,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ee *cli.ExitError
		if !errors.As(err, &ee) || ee.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "", "Machine description (.tm, .yaml, .yml or .json)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+cli.DefaultConfigFile+" when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Also append JSON logs to this file")
}

// environment is the state shared by every command of one invocation.
type environment struct {
	cfg     cli.Config
	logger  *slog.Logger
	closers []io.Closer
}

var env environment

func loadEnvironment(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cli.LoadConfig(path, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile, _ = cmd.Flags().GetString("log-file")
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, closer, err := logging.Open(level, cfg.LogFile)
	if err != nil {
		return err
	}
	env = environment{cfg: cfg, logger: logger, closers: []io.Closer{closer}}
	return nil
}

func closeEnvironment(*cobra.Command, []string) error {
	var errs []error
	for i := len(env.closers) - 1; i >= 0; i-- {
		errs = append(errs, env.closers[i].Close())
	}
	env.closers = nil
	return errors.Join(errs...)
}

// openCache opens the configured listing store and schedules its release.
func openCache() (*cli.Cache, error) {
	cache, err := cli.OpenCache(env.cfg.Cache)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		env.closers = append(env.closers, cache)
	}
	return cache, nil
}

// newEngine loads the machine named by -f (or the first argument) with the
// configured cache and logging hooks.
func newEngine(cmd *cobra.Command, extra ...turing.Option) (*turing.Engine, error) {
	path, _ := cmd.Flags().GetString("file")
	cache, err := openCache()
	if err != nil {
		return nil, err
	}
	opts := append([]turing.Option{turing.WithLifecycleHooks(observability.LoggingHooks(env.logger))}, extra...)
	return cli.NewEngine(path, env.cfg, env.logger, cache, opts...)
}
