// Package config provides YAML-based tuning profiles for the runner:
// physics constants, obstacle geometry, difficulty curve and scoring cadence.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains every tunable parameter of the simulation.
type RunnerConfig struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Animation  AnimationConfig  `yaml:"animation"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Scoring    ScoringConfig    `yaml:"scoring"`
}

// WorldConfig defines the visible world in world units.
type WorldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	GroundDrawY float64 `yaml:"ground_draw_y"` // Top of the ground strip
}

// PlayerConfig defines the player's placement and hitbox.
type PlayerConfig struct {
	X            float64 `yaml:"x"`
	GroundY      float64 `yaml:"ground_y"` // Vertical position while standing
	HitboxWidth  float64 `yaml:"hitbox_width"`
	HitboxHeight float64 `yaml:"hitbox_height"`
	SpriteWidth  float64 `yaml:"sprite_width"`
	SpriteHeight float64 `yaml:"sprite_height"`
}

// PhysicsConfig defines the asymmetric-gravity jump model.
type PhysicsConfig struct {
	GravityUp   float64 `yaml:"gravity_up"`   // Added per tick while rising
	GravityDown float64 `yaml:"gravity_down"` // Added per tick while falling or at rest
	JumpPower   float64 `yaml:"jump_power"`   // Negative initial velocity
}

// AnimationConfig defines the sprite frame cadence.
type AnimationConfig struct {
	FrameEvery int `yaml:"frame_every"` // Ticks per animation frame
	WalkFrames int `yaml:"walk_frames"`
	IdleFrames int `yaml:"idle_frames"`
}

// ObstacleConfig defines obstacle geometry and the kind mix.
type ObstacleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // Obstacle top is ground_draw_y - ground_offset
	InsetX       float64 `yaml:"inset_x"`       // Hitbox inset on the left and right
	InsetY       float64 `yaml:"inset_y"`       // Hitbox inset on the top and bottom
	RockChance   float64 `yaml:"rock_chance"`   // Probability that a spawn is a rock
}

// DifficultyConfig defines the ratcheting difficulty curve.
type DifficultyConfig struct {
	BaseSpeed   float64 `yaml:"base_speed"`  // World units per tick at score 0
	SpeedStep   float64 `yaml:"speed_step"`  // Added on each speed threshold
	SpeedEvery  int     `yaml:"speed_every"` // Score interval between speed bumps
	MaxSpeed    float64 `yaml:"max_speed"`
	BaseSpawnMs int     `yaml:"base_spawn_ms"`
	SpawnStepMs int     `yaml:"spawn_step_ms"` // Removed on each spawn threshold
	SpawnEvery  int     `yaml:"spawn_every"`   // Score interval between spawn bumps
	MinSpawnMs  int     `yaml:"min_spawn_ms"`
	LevelEvery  int     `yaml:"level_every"` // Score per difficulty level
}

// ScoringConfig defines how survival time turns into score.
type ScoringConfig struct {
	TicksPerPoint int `yaml:"ticks_per_point"`
}

// DifficultyPreset represents a named starting difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ErrUnknownPreset is returned for preset names that are not recognized.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// ParsePreset converts a CLI string to a preset. An empty string means use
// the profile as loaded.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// ApplyPreset changes the starting speed and spawn interval of the profile.
// Ratchet steps, caps and floors are left untouched.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.BaseSpeed = 3.5
		cfg.Difficulty.BaseSpawnMs = 1700
	case DifficultyNormal:
		cfg.Difficulty.BaseSpeed = 4
		cfg.Difficulty.BaseSpawnMs = 1500
	case DifficultyHard:
		cfg.Difficulty.BaseSpeed = 5
		cfg.Difficulty.BaseSpawnMs = 1250
	}
}

// Validate checks that the profile describes a playable simulation.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0, "world.width must be positive, got %v", c.World.Width)
	check(c.Player.HitboxWidth > 0 && c.Player.HitboxHeight > 0, "player hitbox must be positive")
	check(c.Physics.JumpPower < 0, "physics.jump_power must be negative, got %v", c.Physics.JumpPower)
	check(c.Physics.GravityUp > 0 && c.Physics.GravityDown > 0, "physics gravity must be positive")
	check(c.Animation.FrameEvery > 0, "animation.frame_every must be positive")
	check(c.Animation.WalkFrames > 0 && c.Animation.IdleFrames > 0, "animation frame counts must be positive")
	check(c.Obstacles.Width > 0 && c.Obstacles.Height > 0, "obstacle size must be positive")
	check(c.Obstacles.InsetX >= 0 && c.Obstacles.InsetY >= 0, "obstacle insets must not be negative")
	check(c.Obstacles.RockChance >= 0 && c.Obstacles.RockChance <= 1, "obstacles.rock_chance must be in [0, 1]")
	check(c.Difficulty.BaseSpeed > 0, "difficulty.base_speed must be positive")
	check(c.Difficulty.MaxSpeed >= c.Difficulty.BaseSpeed, "difficulty.max_speed must be >= base_speed")
	check(c.Difficulty.SpeedEvery > 0 && c.Difficulty.SpawnEvery > 0 && c.Difficulty.LevelEvery > 0,
		"difficulty thresholds must be positive")
	check(c.Difficulty.MinSpawnMs > 0, "difficulty.min_spawn_ms must be positive")
	check(c.Difficulty.BaseSpawnMs >= c.Difficulty.MinSpawnMs, "difficulty.base_spawn_ms must be >= min_spawn_ms")
	check(c.Scoring.TicksPerPoint > 0, "scoring.ticks_per_point must be positive")

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid profile: %w", errors.Join(errs...))
	}
	return nil
}
