package replay

import (
	"math"

	"github.com/vovakirdan/shroom-run/internal/sim"
)

// DefaultLookahead is the gap in world units at which the autopilot jumps.
const DefaultLookahead = 180

// Policy chooses the next input from the latest snapshot.
type Policy interface {
	Next(last sim.Snapshot) sim.Input
}

// Idle never presses anything.
type Idle struct{}

// Next implements Policy.
func (Idle) Next(sim.Snapshot) sim.Input { return sim.Input{} }

// JumpEvery presses jump on every Nth tick.
type JumpEvery struct {
	Every int
}

// Next implements Policy.
func (j JumpEvery) Next(last sim.Snapshot) sim.Input {
	if j.Every <= 0 {
		return sim.Input{}
	}
	return sim.Input{Jump: (last.Tick+1)%j.Every == 0}
}

// Autopilot jumps when the nearest obstacle ahead of the player's hitbox is
// within Lookahead world units.
type Autopilot struct {
	Lookahead   float64
	HitboxWidth float64
}

// NewAutopilot creates an autopilot for a player hitbox of the given width.
// A non-positive lookahead selects DefaultLookahead.
func NewAutopilot(hitboxWidth, lookahead float64) Autopilot {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	return Autopilot{Lookahead: lookahead, HitboxWidth: hitboxWidth}
}

// Next implements Policy.
func (a Autopilot) Next(last sim.Snapshot) sim.Input {
	p := last.Player
	if p.Jumping || !p.Alive {
		return sim.Input{}
	}
	gap, ok := NearestGap(last, a.HitboxWidth)
	return sim.Input{Jump: ok && gap <= a.Lookahead}
}

// NearestGap returns the distance from the front of the player's hitbox to the
// closest obstacle that has not passed it yet.
func NearestGap(snap sim.Snapshot, hitboxWidth float64) (float64, bool) {
	front := snap.Player.X + hitboxWidth
	best := math.Inf(1)
	for _, o := range snap.Obstacles {
		if o.X+o.W <= snap.Player.X {
			continue
		}
		gap := math.Max(o.X-front, 0)
		if gap < best {
			best = gap
		}
	}
	return best, !math.IsInf(best, 1)
}
