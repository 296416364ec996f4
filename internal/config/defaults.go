package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// Default returns the hardcoded runner profile. It mirrors
// defaults/runner.yaml and is used when the embedded document cannot be parsed.
func Default() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:       800,
			Height:      400,
			GroundDrawY: 350,
		},
		Player: PlayerConfig{
			X:            100,
			GroundY:      300,
			HitboxWidth:  64,
			HitboxHeight: 64,
			SpriteWidth:  100,
			SpriteHeight: 100,
		},
		Physics: PhysicsConfig{
			GravityUp:   0.09,
			GravityDown: 0.07,
			JumpPower:   -5,
		},
		Animation: AnimationConfig{
			FrameEvery: 10,
			WalkFrames: 4,
			IdleFrames: 9,
		},
		Obstacles: ObstacleConfig{
			Width:        72,
			Height:       72,
			GroundOffset: 22,
			InsetX:       0,
			InsetY:       0,
			RockChance:   0.5,
		},
		Difficulty: DifficultyConfig{
			BaseSpeed:   4,
			SpeedStep:   0.2,
			SpeedEvery:  300,
			MaxSpeed:    8,
			BaseSpawnMs: 1500,
			SpawnStepMs: 50,
			SpawnEvery:  500,
			MinSpawnMs:  1000,
			LevelEvery:  400,
		},
		Scoring: ScoringConfig{
			TicksPerPoint: 6,
		},
	}
}

// DefaultYAML returns the embedded default profile document.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
