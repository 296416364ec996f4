// Package clock drives the simulation at a fixed step and schedules obstacle
// spawns on logical time, so a run is reproducible from its inputs alone.
package clock

import "time"

// SpawnTimer is a periodic timer advanced by explicit time steps.
// At most one schedule is active; arming again replaces it.
type SpawnTimer struct {
	period  time.Duration
	elapsed time.Duration
	armed   bool
}

// Arm cancels any pending schedule and starts a new one from zero elapsed.
// A non-positive period disarms the timer.
func (t *SpawnTimer) Arm(period time.Duration) {
	if period <= 0 {
		t.Stop()
		return
	}
	t.period = period
	t.elapsed = 0
	t.armed = true
}

// Stop cancels the schedule.
func (t *SpawnTimer) Stop() {
	t.armed = false
	t.elapsed = 0
}

// Armed reports whether a schedule is active.
func (t *SpawnTimer) Armed() bool {
	return t.armed
}

// Period returns the active period, or zero when disarmed.
func (t *SpawnTimer) Period() time.Duration {
	if !t.armed {
		return 0
	}
	return t.period
}

// Advance moves the timer forward by dt and returns how many periods fired.
func (t *SpawnTimer) Advance(dt time.Duration) int {
	if !t.armed || dt <= 0 {
		return 0
	}
	t.elapsed += dt
	fired := int(t.elapsed / t.period)
	t.elapsed -= time.Duration(fired) * t.period
	return fired
}
