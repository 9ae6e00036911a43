package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-todo/config"
	"github.com/lixenwraith/vi-todo/store"
)

var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "Render a checklist to stdout without entering the editor",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrint,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long: `Print the effective configuration as TOML.

Redirect the output to the config file to start from the defaults:
  vi-todo config > ~/.config/vi-todo/config.toml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(configCmd)
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	root, err := store.New(zerolog.Nop()).Load(expandHome(args[0]))
	if err != nil {
		return err
	}
	return root.Render(cmd.OutOrStdout(), cfg.Depth, nil)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	return config.Write(cmd.OutOrStdout(), cfg)
}
