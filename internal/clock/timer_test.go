package clock

import (
	"testing"
	"time"
)

func TestSpawnTimerDisarmed(t *testing.T) {
	var timer SpawnTimer

	if timer.Armed() {
		t.Error("zero timer should be disarmed")
	}
	if n := timer.Advance(time.Hour); n != 0 {
		t.Errorf("disarmed timer fired %d times", n)
	}
	if timer.Period() != 0 {
		t.Errorf("disarmed Period() = %v", timer.Period())
	}
}

func TestSpawnTimerFires(t *testing.T) {
	var timer SpawnTimer
	timer.Arm(100 * time.Millisecond)

	if n := timer.Advance(99 * time.Millisecond); n != 0 {
		t.Errorf("fired %d times before the period elapsed", n)
	}
	if n := timer.Advance(time.Millisecond); n != 1 {
		t.Errorf("expected one fire at the period, got %d", n)
	}
	if n := timer.Advance(350 * time.Millisecond); n != 3 {
		t.Errorf("expected three fires over 350ms, got %d", n)
	}
	if n := timer.Advance(50 * time.Millisecond); n != 1 {
		t.Errorf("remainder should carry over, got %d fires", n)
	}
}

func TestSpawnTimerArmResets(t *testing.T) {
	var timer SpawnTimer
	timer.Arm(100 * time.Millisecond)
	timer.Advance(90 * time.Millisecond)

	timer.Arm(100 * time.Millisecond)
	if n := timer.Advance(90 * time.Millisecond); n != 0 {
		t.Error("re-arming should restart from zero elapsed")
	}
	if timer.Period() != 100*time.Millisecond {
		t.Errorf("Period() = %v", timer.Period())
	}

	timer.Stop()
	if timer.Armed() || timer.Advance(time.Second) != 0 {
		t.Error("stopped timer should not fire")
	}

	timer.Arm(0)
	if timer.Armed() {
		t.Error("zero period should leave the timer disarmed")
	}
}
