// shroomrun is a terminal endless runner with deterministic replays.
//
// Usage:
//
//	shroomrun play              - Run in the terminal
//	shroomrun menu              - Start menu with play and replay browser
//	shroomrun sim               - Headless run with a scripted policy
//	shroomrun replays <cmd>     - Manage recorded replays
//	shroomrun config print      - Print the effective tuning profile
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set replay database path (default: ~/.shroomrun/replays.db)
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file during terminal sessions
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shroom-run/internal/core"
	"github.com/vovakirdan/shroom-run/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shroomrun",
	Short: "Shroom Run - an endless runner in your terminal",
	Long: `Shroom Run is a side-scrolling endless runner. Jump over rocks and
logs; the world speeds up the longer you survive.

Available commands:
  play     - Run in the terminal
  menu     - Start menu with the replay browser
  sim      - Headless simulation with a scripted policy
  replays  - List, verify, export and delete recorded replays
  config   - Inspect the tuning profile

Examples:
  shroomrun play
  shroomrun play --difficulty hard --record morning
  shroomrun sim --ticks 6000 --autopilot --save bot
  shroomrun replays verify 3`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for terminal sessions (discarded when empty)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(configCmd)
}

// cliLogger returns a stderr logger for headless commands.
func cliLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "shroomrun"})
	logger.SetLevel(parseLevel())
	return logger
}

// sessionLogger returns a logger for alt-screen sessions and a closer for
// its file. Without --log-file the output is discarded.
func sessionLogger() (*log.Logger, func(), error) {
	var (
		w      io.Writer = io.Discard
		closer           = func() {}
	)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: true})
	logger.SetLevel(parseLevel())
	return logger, closer, nil
}

func parseLevel() log.Level {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// runtimeConfig builds the runtime config from the global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func exitErr(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
