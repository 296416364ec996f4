package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shroom-run/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the tuning profile",
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective runner profile as YAML",
	Long: `Print the profile a run would use after applying the search order
(--config, ~/.shroomrun/configs/runner.yaml, ./configs/runner.yaml,
embedded default) and the --difficulty preset.

Examples:
  shroomrun config print
  shroomrun config print --difficulty hard > hard.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfigPrint,
}

func init() {
	configPrintCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	configPrintCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	configCmd.AddCommand(configPrintCmd)
}

func runConfigPrint(_ *cobra.Command, _ []string) {
	cfg, _, err := loadProfile()
	if err != nil {
		exitErr(err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		exitErr(err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		exitErr(fmt.Errorf("write profile: %w", err))
	}
}
