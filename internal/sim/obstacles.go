package sim

import (
	"math/rand"

	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/core"
)

// Kind selects obstacle artwork. Both kinds share the same geometry.
type Kind int

const (
	KindRock Kind = iota
	KindLog
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRock:
		return "ROCK"
	case KindLog:
		return "LOG"
	default:
		return "UNKNOWN"
	}
}

// Obstacle is a ground hazard scrolling toward the player.
type Obstacle struct {
	X    float64 // Left edge
	Y    float64 // Top edge, fixed at spawn
	W    float64
	H    float64
	Kind Kind
}

// Rect returns the visual bounds of the obstacle.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.W, o.H)
}

// Hitbox returns the collision bounds, shrunk by the given insets.
func (o Obstacle) Hitbox(insetX, insetY float64) core.Rect {
	return o.Rect().Inset(insetX, insetY)
}

// ObstacleManager handles spawning, movement, and removal of obstacles.
// It is the only owner of the obstacle slice.
type ObstacleManager struct {
	obstacles []Obstacle
	rng       *rand.Rand
	cfg       config.ObstacleConfig
	spawnX    float64
	spawnY    float64
}

// NewObstacleManager creates an empty manager with the given RNG seed.
func NewObstacleManager(seed int64, cfg *config.RunnerConfig) *ObstacleManager {
	return &ObstacleManager{
		obstacles: make([]Obstacle, 0, 8),
		rng:       rand.New(rand.NewSource(seed)),
		cfg:       cfg.Obstacles,
		spawnX:    cfg.World.Width,
		spawnY:    cfg.World.GroundDrawY - cfg.Obstacles.GroundOffset,
	}
}

// Spawn adds an obstacle at the right edge of the world.
func (om *ObstacleManager) Spawn() Obstacle {
	kind := KindLog
	if om.rng.Float64() < om.cfg.RockChance {
		kind = KindRock
	}

	o := Obstacle{
		X:    om.spawnX,
		Y:    om.spawnY,
		W:    om.cfg.Width,
		H:    om.cfg.Height,
		Kind: kind,
	}
	om.obstacles = append(om.obstacles, o)
	return o
}

// Advance moves every obstacle left by speed, then removes the ones whose
// right edge has passed the left boundary. Returns how many were removed.
func (om *ObstacleManager) Advance(speed float64) int {
	om.Move(speed)
	return om.Prune()
}

// Move shifts every obstacle left by the shared current speed.
func (om *ObstacleManager) Move(speed float64) {
	for i := range om.obstacles {
		om.obstacles[i].X -= speed
	}
}

// Prune drops obstacles that are fully off-screen on the left.
func (om *ObstacleManager) Prune() int {
	kept := om.obstacles[:0]
	for _, o := range om.obstacles {
		if o.X+o.W >= 0 {
			kept = append(kept, o)
		}
	}
	removed := len(om.obstacles) - len(kept)
	om.obstacles = kept
	return removed
}

// Obstacles returns the live obstacles. Callers must not retain the slice
// across ticks; snapshots take a copy.
func (om *ObstacleManager) Obstacles() []Obstacle {
	return om.obstacles
}

// Len returns the number of live obstacles.
func (om *ObstacleManager) Len() int {
	return len(om.obstacles)
}
