package config

// The difficulty curve is expressed in "bands": band n of a threshold is
// reached once score >= n*threshold. Callers track the highest band seen, so
// these helpers stay pure functions of the band count.

// SpeedBand returns the speed band reached at the given score.
func (d DifficultyConfig) SpeedBand(score int) int {
	return band(score, d.SpeedEvery)
}

// SpawnBand returns the spawn-interval band reached at the given score.
func (d DifficultyConfig) SpawnBand(score int) int {
	return band(score, d.SpawnEvery)
}

// SpeedAt returns the obstacle speed after the given number of speed bumps,
// capped at MaxSpeed.
func (d DifficultyConfig) SpeedAt(bands int) float64 {
	speed := d.BaseSpeed + float64(bands)*d.SpeedStep
	if speed > d.MaxSpeed {
		return d.MaxSpeed
	}
	return speed
}

// SpawnIntervalAt returns the spawn period in milliseconds after the given
// number of spawn bumps, floored at MinSpawnMs.
func (d DifficultyConfig) SpawnIntervalAt(bands int) int {
	interval := d.BaseSpawnMs - bands*d.SpawnStepMs
	if interval < d.MinSpawnMs {
		return d.MinSpawnMs
	}
	return interval
}

// LevelFor returns the 1-based difficulty level for a score.
func (d DifficultyConfig) LevelFor(score int) int {
	return band(score, d.LevelEvery) + 1
}

func band(score, every int) int {
	if score <= 0 || every <= 0 {
		return 0
	}
	return score / every
}
