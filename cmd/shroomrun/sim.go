package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shroom-run/internal/replay"
	"github.com/vovakirdan/shroom-run/internal/storage"
)

var (
	flagTicks     int
	flagAutopilot bool
	flagLookahead float64
	flagJumpEvery int
	flagSave      string
	flagRealtime  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run the simulation without a terminal UI and print a summary.

The run stops at --ticks or at the first game over. Inputs come from a
scripted policy: idle by default, a fixed jump cadence with --jump-every,
or a lookahead autopilot with --autopilot. With --save the run is stored
in the replay database and can be watched later. With --realtime the
steps are paced at --fps and Ctrl+C ends the run early, keeping what was
simulated so far.

Examples:
  shroomrun sim --ticks 3600
  shroomrun sim --ticks 6000 --autopilot --lookahead 160
  shroomrun sim --seed 7 --jump-every 45 --save cadence
  shroomrun sim --autopilot --realtime --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Maximum number of ticks to simulate")
	simCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Jump ahead of the nearest obstacle")
	simCmd.Flags().Float64Var(&flagLookahead, "lookahead", replay.DefaultLookahead, "Autopilot lookahead in world units")
	simCmd.Flags().IntVar(&flagJumpEvery, "jump-every", 0, "Press jump every N ticks")
	simCmd.Flags().StringVar(&flagSave, "save", "", "Save the run as a replay under this name")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace the run at --fps on the wall clock")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := cliLogger()

	if flagAutopilot && flagJumpEvery > 0 {
		exitErr(fmt.Errorf("--autopilot and --jump-every are mutually exclusive"))
	}

	cfg, preset, err := loadProfile()
	if err != nil {
		exitErr(err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var policy replay.Policy = replay.Idle{}
	policyName := "idle"
	switch {
	case flagAutopilot:
		policy = replay.NewAutopilot(cfg.Player.HitboxWidth, flagLookahead)
		policyName = "autopilot"
	case flagJumpEvery > 0:
		policy = replay.JumpEvery{Every: flagJumpEvery}
		policyName = fmt.Sprintf("jump every %d", flagJumpEvery)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("starting simulation", "seed", seed, "ticks", flagTicks, "policy", policyName, "realtime", flagRealtime)
	res, err := replay.Run(replay.Options{
		Config:   cfg,
		Seed:     seed,
		TickRate: flagFPS,
		Preset:   preset,
		Name:     flagSave,
		Ticks:    flagTicks,
		Policy:   policy,
		Logger:   logger,
		Realtime: flagRealtime,
		Context:  ctx,
	})
	if err != nil {
		exitErr(err)
	}

	final := res.Final
	fmt.Printf("Seed:      %d\n", seed)
	fmt.Printf("Policy:    %s\n", policyName)
	fmt.Printf("Ticks:     %d\n", res.Replay.Ticks)
	fmt.Printf("Status:    %s\n", final.Status)
	fmt.Printf("Score:     %d\n", final.Score)
	fmt.Printf("Level:     %d\n", final.Level)
	fmt.Printf("Speed:     %.2f\n", final.Speed)
	fmt.Printf("Interval:  %dms\n", final.SpawnIntervalMs)
	fmt.Printf("Jumps:     %d\n", res.Jumps)
	fmt.Printf("Spawns:    %d\n", res.Spawns)
	fmt.Printf("Checksum:  %s\n", res.Replay.Checksum)

	if flagSave == "" {
		return
	}
	id, err := saveRun(flagDBPath, flagSave, res.Replay)
	if err != nil {
		exitErr(err)
	}
	logger.Info("replay saved", "id", id, "name", flagSave)
}

// saveRun stores a replay and closes the database on every path.
func saveRun(dbPath, name string, r *replay.Replay) (int64, error) {
	store, err := storage.Open(dbPath)
	if err != nil {
		return 0, fmt.Errorf("could not open replay database: %w", err)
	}
	defer store.Close()

	return store.SaveReplay(name, r)
}
