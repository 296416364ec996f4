package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/shroom-run/internal/sim"
)

// Simulation is the engine surface the driver needs.
type Simulation interface {
	Tick(in sim.Input) sim.Snapshot
	OnSpawnTimer()
	SpawnInterval() time.Duration
	Restarts() int
}

// Driver couples a simulation with its spawn timer. Every Step is one
// logical frame of 1s/tickRate.
type Driver struct {
	sim      Simulation
	timer    SpawnTimer
	frame    time.Duration
	interval time.Duration
	restarts int
	steps    int
}

// NewDriver creates a driver and arms the spawn timer with the simulation's
// current interval.
func NewDriver(s Simulation, tickRate int) *Driver {
	if tickRate <= 0 {
		tickRate = 60
	}
	d := &Driver{
		sim:      s,
		frame:    time.Second / time.Duration(tickRate),
		interval: s.SpawnInterval(),
		restarts: s.Restarts(),
	}
	d.timer.Arm(d.interval)
	return d
}

// Step runs one simulation tick, then advances the spawn timer by one frame
// and delivers every fire to the simulation.
//
// The timer stops on game over and is re-armed from zero after a restart or
// whenever the spawn interval changes.
func (d *Driver) Step(in sim.Input) sim.Snapshot {
	snap := d.sim.Tick(in)
	d.steps++

	if snap.GameOver() {
		d.timer.Stop()
		return snap
	}

	if r := d.sim.Restarts(); r != d.restarts || !d.timer.Armed() {
		d.restarts = r
		d.interval = d.sim.SpawnInterval()
		d.timer.Arm(d.interval)
	} else if iv := d.sim.SpawnInterval(); iv != d.interval {
		d.interval = iv
		d.timer.Arm(iv)
	}

	for n := d.timer.Advance(d.frame); n > 0; n-- {
		d.sim.OnSpawnTimer()
	}
	return snap
}

// Steps returns how many frames the driver has run.
func (d *Driver) Steps() int {
	return d.steps
}

// Frame returns the logical duration of one step.
func (d *Driver) Frame() time.Duration {
	return d.frame
}

// Timer exposes the spawn timer for inspection.
func (d *Driver) Timer() *SpawnTimer {
	return &d.timer
}

// Loop calls fn once per wall-clock frame at rate frames per second until fn
// returns false or ctx is cancelled.
func Loop(ctx context.Context, rate int, fn func(frame int) bool) error {
	if rate <= 0 {
		return fmt.Errorf("clock: invalid tick rate %d", rate)
	}

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !fn(frame) {
				return nil
			}
		}
	}
}
