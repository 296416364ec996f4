package sim

import "github.com/vovakirdan/shroom-run/internal/config"

// AnimState is the sprite sheet the presentation layer should use.
type AnimState int

const (
	AnimWalking AnimState = iota // On the ground and alive
	AnimIdle                     // Airborne or dead
)

// String returns the state name.
func (a AnimState) String() string {
	switch a {
	case AnimWalking:
		return "WALKING"
	case AnimIdle:
		return "IDLE"
	default:
		return "UNKNOWN"
	}
}

// Animation pairs a sprite state with the number of frames it owns.
type Animation struct {
	State  AnimState
	Frames int
}

// Player holds the runner's vertical motion and animation phase.
// Horizontal position is fixed; the world scrolls instead.
type Player struct {
	X          float64 // Fixed horizontal position
	Y          float64 // Vertical position, never below ground (y grows downward)
	VY         float64 // Vertical velocity in world units per tick
	Jumping    bool
	Alive      bool
	Frame      int // Index into the current animation's frames
	FrameTicks int // Ticks since session start, drives the frame cadence

	anim    Animation
	walk    Animation
	idle    Animation
	groundY float64
	physics config.PhysicsConfig
	every   int
}

// newPlayer creates a player standing on the ground.
func newPlayer(cfg *config.RunnerConfig) *Player {
	p := &Player{
		X:       cfg.Player.X,
		Y:       cfg.Player.GroundY,
		Alive:   true,
		walk:    Animation{State: AnimWalking, Frames: cfg.Animation.WalkFrames},
		idle:    Animation{State: AnimIdle, Frames: cfg.Animation.IdleFrames},
		groundY: cfg.Player.GroundY,
		physics: cfg.Physics,
		every:   cfg.Animation.FrameEvery,
	}
	p.anim = p.walk
	return p
}

// GroundY returns the resting vertical position.
func (p *Player) GroundY() float64 {
	return p.groundY
}

// Animation returns the current sprite state and its frame count.
func (p *Player) Animation() Animation {
	return p.anim
}

// Advance runs one physics step. A jump starts only from the ground while
// alive; requests in the air or after death are dropped, not buffered.
func (p *Player) Advance(jumpRequested bool) (jumped, landed bool) {
	if jumpRequested && !p.Jumping && p.Alive {
		p.VY = p.physics.JumpPower
		p.Jumping = true
		jumped = true
	}

	if p.VY < 0 {
		p.VY += p.physics.GravityUp
	} else {
		p.VY += p.physics.GravityDown
	}
	p.Y += p.VY

	if p.Y >= p.groundY {
		landed = p.Jumping
		p.Y = p.groundY
		p.VY = 0
		p.Jumping = false
	}

	p.Animate()
	return jumped, landed
}

// Animate advances the frame cadence without touching motion.
func (p *Player) Animate() {
	p.syncAnimation()
	p.FrameTicks++
	if p.FrameTicks%p.every == 0 {
		p.Frame = (p.Frame + 1) % p.anim.Frames
	}
}

// Kill marks the player dead. The sprite switches to idle immediately.
func (p *Player) Kill() {
	p.Alive = false
	p.syncAnimation()
}

// syncAnimation selects the sprite state and keeps the frame index within
// the selected state's frame count.
func (p *Player) syncAnimation() {
	next := p.idle
	if !p.Jumping && p.Alive {
		next = p.walk
	}
	if next.State != p.anim.State {
		p.anim = next
		p.Frame %= p.anim.Frames
	}
}
