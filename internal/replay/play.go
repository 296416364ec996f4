package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shroom-run/internal/clock"
	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/sim"
)

// Play re-simulates the replay and returns the final snapshot.
func Play(r *Replay) (sim.Snapshot, error) {
	if err := r.Validate(); err != nil {
		return sim.Snapshot{}, err
	}

	engine := sim.NewEngine(r.Config, r.Seed)
	driver := clock.NewDriver(engine, r.TickRate)
	script := r.Script()

	snap := engine.Snapshot()
	for tick := 0; tick < r.Ticks; tick++ {
		snap = driver.Step(script.InputAt(tick))
	}
	return snap, nil
}

// Verify re-simulates the replay and checks it reaches the recorded state.
func Verify(r *Replay) (sim.Snapshot, error) {
	snap, err := Play(r)
	if err != nil {
		return snap, err
	}
	if got := snap.Checksum(); got != r.Checksum {
		return snap, fmt.Errorf("%w: recorded %s, replayed %s", ErrChecksumMismatch, short(r.Checksum), short(got))
	}
	return snap, nil
}

func short(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

// Options configures a headless run.
type Options struct {
	Config   config.RunnerConfig
	Seed     int64
	TickRate int
	Preset   string
	Name     string
	Ticks    int         // Upper bound on steps
	Policy   Policy      // Nil runs with no input
	Logger   *log.Logger // Optional, receives simulation events at debug level

	// Realtime paces steps on the wall clock at TickRate instead of running
	// them back to back. Cancelling Context ends the run early; the partial
	// run is still recorded.
	Realtime bool
	Context  context.Context
}

// Result summarizes a headless run.
type Result struct {
	Replay   *Replay
	Final    sim.Snapshot
	Jumps    int
	Spawns   int
	SpeedUps int
	LevelUps int
}

// Run drives a fresh engine with a policy until game over or the tick limit,
// recording every input.
func Run(opts Options) (*Result, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.TickRate <= 0 {
		return nil, fmt.Errorf("replay: invalid tick rate %d", opts.TickRate)
	}
	policy := opts.Policy
	if policy == nil {
		policy = Idle{}
	}

	engine := sim.NewEngine(opts.Config, opts.Seed)
	driver := clock.NewDriver(engine, opts.TickRate)
	rec := NewRecorder(opts.Config, opts.Seed, opts.TickRate, opts.Preset)

	res := &Result{}
	snap := engine.Snapshot()
	done := func() bool {
		return rec.Ticks() >= opts.Ticks || snap.GameOver()
	}
	step := func() {
		in := policy.Next(snap)
		rec.Record(in)
		snap = driver.Step(in)
		res.count(snap.Events, opts.Logger)

		if opts.Realtime && opts.Logger != nil && rec.Ticks()%opts.TickRate == 0 {
			opts.Logger.Info("progress", "tick", rec.Ticks(), "score", snap.Score, "level", snap.Level)
		}
	}

	switch {
	case done():
	case opts.Realtime:
		ctx := opts.Context
		if ctx == nil {
			ctx = context.Background()
		}
		err := clock.Loop(ctx, opts.TickRate, func(int) bool {
			step()
			return !done()
		})
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("replay: realtime run: %w", err)
		}
	default:
		for !done() {
			step()
		}
	}

	res.Final = snap
	res.Replay = rec.Finish(opts.Name, snap)
	return res, nil
}

// count tallies the events of one step and forwards them to the logger.
func (res *Result) count(events []sim.Event, logger *log.Logger) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventJump:
			res.Jumps++
		case sim.EventSpawn:
			res.Spawns++
		case sim.EventSpeedUp:
			res.SpeedUps++
		case sim.EventLevelUp:
			res.LevelUps++
		}
		if logger != nil {
			logger.Debug("sim event", "kind", ev.Kind, "tick", ev.Tick, "value", ev.Value)
		}
	}
}
