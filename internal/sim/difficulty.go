package sim

import (
	"time"

	"github.com/vovakirdan/shroom-run/internal/config"
)

// Difficulty derives obstacle speed, spawn period and level from score.
//
// Each bump happens once per threshold crossing: the controller remembers the
// highest band it has applied, so a score that dips back below a multiple and
// returns (or sits on one for several ticks) cannot bump twice.
type Difficulty struct {
	cfg config.DifficultyConfig

	speedBand int
	spawnBand int

	Speed           float64 // Obstacle speed in world units per tick
	SpawnIntervalMs int     // Current spawn timer period
	Level           int     // 1-based difficulty level
}

// DifficultyChange reports what an Update changed.
type DifficultyChange struct {
	SpeedUp         bool
	IntervalChanged bool
	LevelUp         bool
}

// NewDifficulty creates a controller at score 0.
func NewDifficulty(cfg config.DifficultyConfig) *Difficulty {
	return &Difficulty{
		cfg:             cfg,
		Speed:           cfg.SpeedAt(0),
		SpawnIntervalMs: cfg.SpawnIntervalAt(0),
		Level:           cfg.LevelFor(0),
	}
}

// Update recalibrates against the current score.
func (d *Difficulty) Update(score int) DifficultyChange {
	var ch DifficultyChange

	if band := d.cfg.SpeedBand(score); band > d.speedBand {
		d.speedBand = band
		if speed := d.cfg.SpeedAt(band); speed != d.Speed {
			d.Speed = speed
			ch.SpeedUp = true
		}
	}

	if band := d.cfg.SpawnBand(score); band > d.spawnBand {
		d.spawnBand = band
		if interval := d.cfg.SpawnIntervalAt(band); interval != d.SpawnIntervalMs {
			d.SpawnIntervalMs = interval
			ch.IntervalChanged = true
		}
	}

	if level := d.cfg.LevelFor(score); level > d.Level {
		d.Level = level
		ch.LevelUp = true
	}

	return ch
}

// SpawnInterval returns the spawn period as a duration.
func (d *Difficulty) SpawnInterval() time.Duration {
	return time.Duration(d.SpawnIntervalMs) * time.Millisecond
}
