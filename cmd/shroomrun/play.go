package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/platform/tui"
	"github.com/vovakirdan/shroom-run/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Space/W/Up - Jump
  R          - Restart (after game over)
  Ctrl+S     - Save a screenshot
  Q/Esc      - Quit

Difficulty options:
  easy   - Slower start, longer spawn interval
  normal - The default profile
  hard   - Faster start, shorter spawn interval

With --record the inputs of the whole session are saved to the replay
database when you quit.

Examples:
  shroomrun play
  shroomrun play --difficulty hard
  shroomrun play --seed 42 --record lucky
  shroomrun play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record the session under this name")
}

// loadProfile loads the tuning profile and applies the difficulty preset.
func loadProfile() (config.RunnerConfig, string, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.RunnerConfig{}, "", err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.RunnerConfig{}, "", err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, string(preset), nil
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadProfile()
	if err != nil {
		exitErr(err)
	}

	logger, closeLog, err := sessionLogger()
	if err != nil {
		exitErr(err)
	}
	defer closeLog()

	var store *storage.Store
	if flagRecord != "" {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			closeLog()
			exitErr(fmt.Errorf("could not open replay database: %w", err))
		}
	}

	res, runErr := tui.Run(tui.Options{
		Config:     cfg,
		Runtime:    runtimeConfig(),
		Preset:     preset,
		Store:      store,
		RecordName: flagRecord,
		Logger:     logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		closeLog()
		exitErr(runErr)
	}

	fmt.Printf("Score: %d  Best: %d  Level: %d\n", res.Final.Score, res.Best, res.Final.Level)
	if res.ReplayID != 0 {
		fmt.Printf("Saved replay #%d %q\n", res.ReplayID, flagRecord)
	}
}
