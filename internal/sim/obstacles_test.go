package sim

import (
	"testing"

	"github.com/vovakirdan/shroom-run/internal/config"
)

func TestObstacleSpawnGeometry(t *testing.T) {
	cfg := config.Default()
	om := NewObstacleManager(1, &cfg)

	o := om.Spawn()
	if o.X != 800 {
		t.Errorf("spawn X = %v, expected world width 800", o.X)
	}
	if o.Y != 328 {
		t.Errorf("spawn Y = %v, expected ground_draw_y - 22 = 328", o.Y)
	}
	if o.W != 72 || o.H != 72 {
		t.Errorf("spawn size = %vx%v, expected 72x72", o.W, o.H)
	}
	if om.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", om.Len())
	}
}

func TestObstacleKindMix(t *testing.T) {
	cfg := config.Default()
	om := NewObstacleManager(42, &cfg)

	rocks := 0
	for i := 0; i < 1000; i++ {
		if om.Spawn().Kind == KindRock {
			rocks++
		}
	}
	if rocks < 400 || rocks > 600 {
		t.Errorf("expected roughly half rocks, got %d of 1000", rocks)
	}

	cfg.Obstacles.RockChance = 0
	om = NewObstacleManager(42, &cfg)
	for i := 0; i < 50; i++ {
		if om.Spawn().Kind != KindLog {
			t.Fatal("rock_chance 0 should only spawn logs")
		}
	}
}

func TestObstacleKindDoesNotChangeGeometry(t *testing.T) {
	cfg := config.Default()
	om := NewObstacleManager(7, &cfg)

	var rock, log *Obstacle
	for i := 0; i < 100 && (rock == nil || log == nil); i++ {
		o := om.Spawn()
		if o.Kind == KindRock {
			rock = &o
		} else {
			log = &o
		}
	}
	if rock == nil || log == nil {
		t.Fatal("expected both kinds within 100 spawns")
	}
	if rock.Rect() != log.Rect() {
		t.Errorf("kinds should share geometry: rock %+v log %+v", rock.Rect(), log.Rect())
	}
}

func TestObstacleRemovedOnceFullyOffScreen(t *testing.T) {
	cfg := config.Default()
	om := NewObstacleManager(1, &cfg)
	om.Spawn()

	// Right edge starts at 800+72 and must drop below 0: 872/4 = 218 ticks
	// leave it exactly at 0, the next tick removes it.
	for tick := 1; tick <= 218; tick++ {
		if removed := om.Advance(4); removed != 0 {
			t.Fatalf("tick %d: obstacle removed early at X=%v", tick, om.Obstacles()[0].X)
		}
	}
	if om.Len() != 1 {
		t.Fatalf("obstacle should still be live with its right edge at 0")
	}
	if removed := om.Advance(4); removed != 1 {
		t.Errorf("obstacle should be removed on tick 219, removed=%d", removed)
	}
	if om.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", om.Len())
	}
}

func TestObstacleSpeedAppliesToAll(t *testing.T) {
	cfg := config.Default()
	om := NewObstacleManager(1, &cfg)
	om.Spawn()
	om.Advance(100)
	om.Spawn()

	om.Advance(6)
	obs := om.Obstacles()
	if obs[0].X != 694 || obs[1].X != 794 {
		t.Errorf("obstacles at %v and %v, expected 694 and 794", obs[0].X, obs[1].X)
	}
}

func TestObstacleKindString(t *testing.T) {
	if KindRock.String() != "ROCK" || KindLog.String() != "LOG" {
		t.Error("unexpected kind names")
	}
}
