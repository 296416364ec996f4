package sim

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// PlayerView is the read-only player portion of a snapshot.
type PlayerView struct {
	X, Y    float64
	VY      float64
	Jumping bool
	Alive   bool
	Anim    AnimState
	Frame   int
}

// Snapshot is the state handed to the presentation layer after each tick.
// It shares no memory with the engine.
type Snapshot struct {
	Tick            int // Running ticks in the current session
	Status          Status
	Player          PlayerView
	Obstacles       []Obstacle
	Score           int
	Level           int
	Speed           float64
	SpawnIntervalMs int
	Events          []Event // Events since the previous snapshot
}

// GameOver reports whether the session has ended.
func (s Snapshot) GameOver() bool {
	return s.Status == StatusGameOver
}

// Checksum returns a hex sha256 digest of the simulation state. Events are
// excluded; two runs that reach the same state hash the same.
func (s Snapshot) Checksum() string {
	h := sha256.New()
	var buf [8]byte

	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	putBool := func(v bool) {
		if v {
			putInt(1)
		} else {
			putInt(0)
		}
	}

	putInt(s.Tick)
	putInt(int(s.Status))
	putFloat(s.Player.X)
	putFloat(s.Player.Y)
	putFloat(s.Player.VY)
	putBool(s.Player.Jumping)
	putBool(s.Player.Alive)
	putInt(int(s.Player.Anim))
	putInt(s.Player.Frame)
	putInt(len(s.Obstacles))
	for _, o := range s.Obstacles {
		putFloat(o.X)
		putFloat(o.Y)
		putFloat(o.W)
		putFloat(o.H)
		putInt(int(o.Kind))
	}
	putInt(s.Score)
	putInt(s.Level)
	putFloat(s.Speed)
	putInt(s.SpawnIntervalMs)

	return hex.EncodeToString(h.Sum(nil))
}
