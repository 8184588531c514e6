package main

import (
	"errors"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the listing cache",
}

var cacheListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List cached listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := requireCache()
		if err != nil {
			return err
		}
		return cli.CacheList(cmd.Context(), cmd.OutOrStdout(), cache.Store)
	},
}

var cacheRemoveCmd = &cobra.Command{
	Use:   "rm [key...]",
	Short: "Remove cached listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return errors.New("name at least one key or pass --all")
		}
		cache, err := requireCache()
		if err != nil {
			return err
		}
		return cli.CacheRemove(cmd.Context(), cmd.OutOrStdout(), cache.Store, args, all)
	},
}

func requireCache() (*cli.Cache, error) {
	cache, err := openCache()
	if err != nil {
		return nil, err
	}
	if cache == nil {
		return nil, errors.New("no cache backend configured (set cache.backend in " + cli.DefaultConfigFile + ")")
	}
	return cache, nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheListCmd, cacheRemoveCmd)
	cacheRemoveCmd.Flags().Bool("all", false, "Remove every listing")
}
