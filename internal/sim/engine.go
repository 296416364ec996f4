// Package sim implements the endless runner simulation: asymmetric-gravity
// jump physics, obstacle lifecycle, AABB collision with hitbox insets,
// score accrual and a ratcheting difficulty curve.
//
// The engine is single-threaded and step-driven. An external frame driver
// calls Tick once per rendered frame and a separate scheduler calls
// OnSpawnTimer every SpawnInterval. Neither entry point may be called
// concurrently with the other.
package sim

import (
	"time"

	"github.com/vovakirdan/shroom-run/internal/config"
)

// Engine owns the current session and replaces it on restart.
type Engine struct {
	cfg      config.RunnerConfig
	seed     int64
	session  *Session
	restarts int
}

// NewEngine creates an engine with a fresh running session.
// Each restart seeds its session with seed+n, so a run is reproducible from
// the base seed and the input sequence.
func NewEngine(cfg config.RunnerConfig, seed int64) *Engine {
	return &Engine{
		cfg:     cfg,
		seed:    seed,
		session: NewSession(cfg, seed),
	}
}

// Tick advances the simulation by one fixed step.
//
// A restart request is honored only after game over: the whole session is
// discarded and rebuilt, and its initial snapshot is returned without running
// physics. While running, restart requests are ignored.
func (e *Engine) Tick(in Input) Snapshot {
	if in.Restart && e.session.Status() == StatusGameOver {
		e.restarts++
		e.session = NewSession(e.cfg, e.seed+int64(e.restarts))
		return e.session.Snapshot()
	}

	e.session.Step(in.Jump)
	return e.session.Snapshot()
}

// OnSpawnTimer is the spawn scheduler callback. It is a no-op after game over.
func (e *Engine) OnSpawnTimer() {
	e.session.Spawn()
}

// SpawnInterval returns the period the spawn scheduler should use.
func (e *Engine) SpawnInterval() time.Duration {
	return e.session.SpawnInterval()
}

// SpawnIntervalMs returns the spawn period in milliseconds.
func (e *Engine) SpawnIntervalMs() int {
	return e.session.difficulty.SpawnIntervalMs
}

// Status returns the current session state.
func (e *Engine) Status() Status {
	return e.session.Status()
}

// Restarts returns how many times the session has been replaced.
func (e *Engine) Restarts() int {
	return e.restarts
}

// Snapshot returns the current state without advancing the simulation.
func (e *Engine) Snapshot() Snapshot {
	return e.session.Snapshot()
}
