package sim

import (
	"time"

	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/core"
)

// Status is the session state.
type Status int

const (
	StatusRunning  Status = iota // Initial state
	StatusGameOver               // Terminal until a restart replaces the session
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "RUNNING"
	case StatusGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Input is the logical input consumed by one tick.
type Input struct {
	Jump    bool
	Restart bool
}

// InputFromFrame extracts the runner's actions from a latched input frame.
func InputFromFrame(f core.InputFrame) Input {
	return Input{
		Jump:    f.Has(core.ActionJump),
		Restart: f.Has(core.ActionRestart),
	}
}

// Session owns every entity of one run. It is never reset in place: a
// restart discards it and builds a new one.
type Session struct {
	cfg        config.RunnerConfig
	status     Status
	tick       int
	player     *Player
	obstacles  *ObstacleManager
	difficulty *Difficulty
	score      *ScoreTracker
	pending    []Event
}

// NewSession creates a running session at its initial values.
func NewSession(cfg config.RunnerConfig, seed int64) *Session {
	return &Session{
		cfg:        cfg,
		status:     StatusRunning,
		player:     newPlayer(&cfg),
		obstacles:  NewObstacleManager(seed, &cfg),
		difficulty: NewDifficulty(cfg.Difficulty),
		score:      NewScoreTracker(cfg.Scoring.TicksPerPoint),
	}
}

// Status returns the session state.
func (s *Session) Status() Status {
	return s.status
}

// Step advances the session by one tick.
func (s *Session) Step(jump bool) {
	if s.status == StatusGameOver {
		// Simulation is frozen; only the idle sprite keeps cycling.
		s.player.Animate()
		return
	}

	s.tick++

	jumped, landed := s.player.Advance(jump)
	if jumped {
		s.emit(EventJump, s.player.VY)
	}
	if landed {
		s.emit(EventLanded, s.player.Y)
	}

	s.obstacles.Move(s.difficulty.Speed)

	hitbox := PlayerHitbox(s.player, s.cfg.Player)
	if idx := FirstCollision(hitbox, s.obstacles.Obstacles(), s.cfg.Obstacles.InsetX, s.cfg.Obstacles.InsetY); idx >= 0 {
		s.status = StatusGameOver
		s.player.Kill()
		s.emit(EventCollision, float64(idx))
	}

	s.obstacles.Prune()

	if s.status != StatusRunning {
		return
	}

	s.score.Accrue()

	ch := s.difficulty.Update(s.score.Score)
	if ch.SpeedUp {
		s.emit(EventSpeedUp, s.difficulty.Speed)
	}
	if ch.IntervalChanged {
		s.emit(EventSpawnIntervalChanged, float64(s.difficulty.SpawnIntervalMs))
	}
	if ch.LevelUp {
		s.emit(EventLevelUp, float64(s.difficulty.Level))
	}
}

// Spawn adds an obstacle if the session is running.
func (s *Session) Spawn() bool {
	if s.status != StatusRunning {
		return false
	}
	o := s.obstacles.Spawn()
	s.emit(EventSpawn, float64(o.Kind))
	return true
}

// SpawnInterval returns the current spawn timer period.
func (s *Session) SpawnInterval() time.Duration {
	return s.difficulty.SpawnInterval()
}

// Snapshot captures the session state and drains pending events.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   s.tick,
		Status: s.status,
		Player: PlayerView{
			X:       s.player.X,
			Y:       s.player.Y,
			VY:      s.player.VY,
			Jumping: s.player.Jumping,
			Alive:   s.player.Alive,
			Anim:    s.player.anim.State,
			Frame:   s.player.Frame,
		},
		Obstacles:       append([]Obstacle(nil), s.obstacles.Obstacles()...),
		Score:           s.score.Score,
		Level:           s.difficulty.Level,
		Speed:           s.difficulty.Speed,
		SpawnIntervalMs: s.difficulty.SpawnIntervalMs,
	}
	if len(s.pending) > 0 {
		snap.Events = s.pending
		s.pending = nil
	}
	return snap
}

func (s *Session) emit(kind EventKind, value float64) {
	s.pending = append(s.pending, Event{Kind: kind, Tick: s.tick, Value: value})
}
