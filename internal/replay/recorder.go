package replay

import (
	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/sim"
)

// Recorder captures the inputs fed to a driver, one call per step.
type Recorder struct {
	replay Replay
	tick   int
}

// NewRecorder starts a recording for a run with the given parameters.
func NewRecorder(cfg config.RunnerConfig, seed int64, tickRate int, preset string) *Recorder {
	return &Recorder{
		replay: Replay{
			Version:  Version,
			Seed:     seed,
			TickRate: tickRate,
			Preset:   preset,
			Config:   cfg,
		},
	}
}

// Record stores the input for the next step. Call it before Driver.Step.
func (r *Recorder) Record(in sim.Input) {
	if in.Jump {
		r.replay.Jumps = append(r.replay.Jumps, r.tick)
	}
	if in.Restart {
		r.replay.Restarts = append(r.replay.Restarts, r.tick)
	}
	r.tick++
}

// Ticks returns the number of recorded steps.
func (r *Recorder) Ticks() int {
	return r.tick
}

// Finish seals the recording with the checksum of the last snapshot.
func (r *Recorder) Finish(name string, final sim.Snapshot) *Replay {
	out := r.replay
	out.Name = name
	out.Ticks = r.tick
	out.Jumps = append([]int(nil), r.replay.Jumps...)
	out.Restarts = append([]int(nil), r.replay.Restarts...)
	out.Checksum = final.Checksum()
	return &out
}

// Script maps step indices to inputs.
type Script struct {
	jumps    map[int]bool
	restarts map[int]bool
}

// NewScript builds a script from jump and restart tick lists.
func NewScript(jumps, restarts []int) Script {
	s := Script{
		jumps:    make(map[int]bool, len(jumps)),
		restarts: make(map[int]bool, len(restarts)),
	}
	for _, t := range jumps {
		s.jumps[t] = true
	}
	for _, t := range restarts {
		s.restarts[t] = true
	}
	return s
}

// InputAt returns the input recorded for a step.
func (s Script) InputAt(tick int) sim.Input {
	return sim.Input{
		Jump:    s.jumps[tick],
		Restart: s.restarts[tick],
	}
}
