package replay

import (
	"testing"

	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/sim"
)

func TestNearestGap(t *testing.T) {
	player := sim.PlayerView{X: 100, Alive: true}

	tests := []struct {
		name      string
		obstacles []sim.Obstacle
		gap       float64
		ok        bool
	}{
		{name: "none", ok: false},
		{name: "ahead", obstacles: []sim.Obstacle{{X: 300, W: 72}}, gap: 136, ok: true},
		{name: "closest wins", obstacles: []sim.Obstacle{{X: 600, W: 72}, {X: 200, W: 72}}, gap: 36, ok: true},
		{name: "overlapping", obstacles: []sim.Obstacle{{X: 120, W: 72}}, gap: 0, ok: true},
		{name: "already passed", obstacles: []sim.Obstacle{{X: 20, W: 72}}, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := sim.Snapshot{Player: player, Obstacles: tc.obstacles}
			gap, ok := NearestGap(snap, 64)
			if ok != tc.ok || (ok && gap != tc.gap) {
				t.Errorf("NearestGap() = %v, %v; expected %v, %v", gap, ok, tc.gap, tc.ok)
			}
		})
	}
}

func TestAutopilotDecisions(t *testing.T) {
	a := NewAutopilot(64, 0)
	if a.Lookahead != DefaultLookahead {
		t.Fatalf("Lookahead = %v, expected default", a.Lookahead)
	}

	near := sim.Snapshot{
		Player:    sim.PlayerView{X: 100, Alive: true},
		Obstacles: []sim.Obstacle{{X: 300, W: 72}},
	}
	if !a.Next(near).Jump {
		t.Error("should jump when an obstacle is within lookahead")
	}

	far := near
	far.Obstacles = []sim.Obstacle{{X: 700, W: 72}}
	if a.Next(far).Jump {
		t.Error("should not jump for a distant obstacle")
	}

	airborne := near
	airborne.Player.Jumping = true
	if a.Next(airborne).Jump {
		t.Error("should not press jump while airborne")
	}
}

func TestAutopilotOutlivesIdle(t *testing.T) {
	cfg := config.Default()
	run := func(p Policy) *Result {
		res, err := Run(Options{Config: cfg, Seed: 8, TickRate: 60, Ticks: 3000, Policy: p})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return res
	}

	idle := run(Idle{})
	auto := run(NewAutopilot(cfg.Player.HitboxWidth, 0))
	if auto.Final.Tick <= idle.Final.Tick {
		t.Errorf("autopilot survived %d ticks, idle survived %d", auto.Final.Tick, idle.Final.Tick)
	}
	if auto.Jumps == 0 {
		t.Error("autopilot never jumped")
	}
}

func TestJumpEvery(t *testing.T) {
	res, err := Run(Options{
		Config:   config.Default(),
		Seed:     1,
		TickRate: 60,
		Ticks:    120,
		Policy:   JumpEvery{Every: 50},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Replay.Jumps) == 0 || res.Replay.Jumps[0] != 49 {
		t.Errorf("jumps = %v, expected the first press at step 49", res.Replay.Jumps)
	}
	if (JumpEvery{}).Next(sim.Snapshot{}).Jump {
		t.Error("zero period should never jump")
	}
}
