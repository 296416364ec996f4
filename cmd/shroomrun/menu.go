package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shroom-run/internal/platform/tui"
	"github.com/vovakirdan/shroom-run/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start Shroom Run in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a run ends, you return to the menu. The replay browser lists the
recorded replays and can watch, verify or delete them.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  shroomrun menu
  shroomrun menu --fps 30
  shroomrun menu --db ./replays.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	// Shares --config and --difficulty with play
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadProfile()
	if err != nil {
		exitErr(err)
	}

	logger, closeLog, err := sessionLogger()
	if err != nil {
		exitErr(err)
	}
	defer closeLog()

	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	rt := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(rt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rt = menuResult.Config

		switch menuResult.Choice {
		case tui.MenuPlay:
			opts := tui.Options{
				Config:  cfg,
				Runtime: rt,
				Preset:  preset,
				Logger:  logger,
			}
			if _, err := tui.Run(opts); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}

		case tui.MenuReplays:
			if store == nil {
				fmt.Fprintln(os.Stderr, "Error: replay database is unavailable")
				continue
			}
			if !browseReplays(store, rt.ScreenW, rt.ScreenH, logger) {
				return
			}

		default:
			return
		}
	}
}
