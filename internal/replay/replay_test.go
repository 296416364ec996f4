package replay

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/sim"
)

func autopilotRun(t *testing.T, ticks int) *Result {
	t.Helper()
	cfg := config.Default()
	logger := log.New(io.Discard)
	logger.SetLevel(log.DebugLevel)

	res, err := Run(Options{
		Config:   cfg,
		Seed:     42,
		TickRate: 60,
		Name:     "auto",
		Ticks:    ticks,
		Policy:   NewAutopilot(cfg.Player.HitboxWidth, 0),
		Logger:   logger,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return res
}

func TestRunThenVerify(t *testing.T) {
	res := autopilotRun(t, 2000)

	if res.Replay.Ticks != res.Final.Tick && !res.Final.GameOver() {
		t.Errorf("recorded %d ticks, final snapshot at tick %d", res.Replay.Ticks, res.Final.Tick)
	}
	snap, err := Verify(res.Replay)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if snap.Score != res.Final.Score {
		t.Errorf("replayed score %d, recorded run scored %d", snap.Score, res.Final.Score)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	res := autopilotRun(t, 600)

	forged := *res.Replay
	forged.Config.Difficulty.BaseSpeed = 4.5
	if _, err := Verify(&forged); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("changed tuning: Verify() error = %v, expected ErrChecksumMismatch", err)
	}

	forged = *res.Replay
	forged.Checksum = strings.Repeat("0", 64)
	if _, err := Verify(&forged); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("changed checksum: Verify() error = %v, expected ErrChecksumMismatch", err)
	}
}

func TestEncodeDecode(t *testing.T) {
	res := autopilotRun(t, 1000)

	var buf bytes.Buffer
	if err := Encode(&buf, res.Replay); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.Contains(buf.String(), "score") {
		t.Error("replay documents must not store a score")
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !reflect.DeepEqual(decoded, res.Replay) {
		t.Errorf("decoded replay differs:\n got %+v\nwant %+v", decoded, res.Replay)
	}
	if _, err := Verify(decoded); err != nil {
		t.Errorf("decoded replay does not verify: %v", err)
	}
}

func TestDecodeFillsMissingTuning(t *testing.T) {
	doc := `
version: 1
seed: 7
tick_rate: 60
ticks: 10
jumps: [0, 5]
checksum: abc
config:
  physics:
    jump_power: -6
`
	r, err := Unmarshal([]byte(doc))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.Config.Physics.JumpPower != -6 {
		t.Errorf("jump_power = %v, expected -6", r.Config.Physics.JumpPower)
	}
	if r.Config.Physics.GravityUp != config.Default().Physics.GravityUp {
		t.Error("missing tuning keys should keep their defaults")
	}
	if !reflect.DeepEqual(r.Jumps, []int{0, 5}) {
		t.Errorf("jumps = %v", r.Jumps)
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "wrong version",
			doc:  "version: 9\ntick_rate: 60\nticks: 1\n",
			want: ErrUnsupportedVersion,
		},
		{
			name: "tick out of range",
			doc:  "version: 1\ntick_rate: 60\nticks: 3\njumps: [5]\n",
		},
		{
			name: "unsorted restarts",
			doc:  "version: 1\ntick_rate: 60\nticks: 10\nrestarts: [4, 2]\n",
		},
		{
			name: "zero tick rate",
			doc:  "version: 1\ntick_rate: 0\nticks: 1\n",
		},
		{
			name: "not yaml",
			doc:  "version: [",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tc.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("error = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(config.Default(), 5, 60, "hard")
	rec.Record(sim.Input{Jump: true})
	rec.Record(sim.Input{})
	rec.Record(sim.Input{Jump: true, Restart: true})

	r := rec.Finish("run", sim.Snapshot{})
	if r.Ticks != 3 || rec.Ticks() != 3 {
		t.Errorf("Ticks = %d, expected 3", r.Ticks)
	}
	if !reflect.DeepEqual(r.Jumps, []int{0, 2}) || !reflect.DeepEqual(r.Restarts, []int{2}) {
		t.Errorf("jumps %v restarts %v", r.Jumps, r.Restarts)
	}
	if r.Name != "run" || r.Preset != "hard" || r.Seed != 5 || r.Version != Version {
		t.Errorf("unexpected header %+v", r)
	}

	s := r.Script()
	if in := s.InputAt(2); !in.Jump || !in.Restart {
		t.Errorf("InputAt(2) = %+v", in)
	}
	if in := s.InputAt(1); in.Jump || in.Restart {
		t.Errorf("InputAt(1) = %+v", in)
	}
}

func TestPlayEmptyReplay(t *testing.T) {
	cfg := config.Default()
	want := sim.NewEngine(cfg, 1).Snapshot()

	r := &Replay{Version: Version, Seed: 1, TickRate: 60, Config: cfg, Checksum: want.Checksum()}
	if _, err := Verify(r); err != nil {
		t.Errorf("empty replay should verify against the initial state: %v", err)
	}
}

func TestRunStopsAtGameOver(t *testing.T) {
	res, err := Run(Options{Config: config.Default(), Seed: 1, TickRate: 60, Ticks: 5000})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Final.GameOver() {
		t.Fatal("an idle runner should eventually collide")
	}
	if res.Replay.Ticks >= 5000 {
		t.Errorf("run should stop at game over, recorded %d ticks", res.Replay.Ticks)
	}
	if res.Jumps != 0 || len(res.Replay.Jumps) != 0 {
		t.Error("idle policy should never jump")
	}
	if res.Spawns == 0 {
		t.Error("expected at least one spawn before the collision")
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	if _, err := Run(Options{Config: config.Default(), TickRate: 0}); err == nil {
		t.Error("expected an error for a zero tick rate")
	}
	bad := config.Default()
	bad.Scoring.TicksPerPoint = 0
	if _, err := Run(Options{Config: bad, TickRate: 60}); err == nil {
		t.Error("expected an error for an invalid profile")
	}
}

func TestRunRealtimeMatchesBatch(t *testing.T) {
	opts := Options{
		Config:   config.Default(),
		Seed:     9,
		TickRate: 1000,
		Ticks:    40,
		Policy:   JumpEvery{Every: 15},
	}
	batch, err := Run(opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	opts.Realtime = true
	paced, err := Run(opts)
	if err != nil {
		t.Fatalf("realtime Run() error = %v", err)
	}
	if paced.Replay.Ticks != 40 {
		t.Errorf("realtime run recorded %d ticks, expected 40", paced.Replay.Ticks)
	}
	if paced.Replay.Checksum != batch.Replay.Checksum {
		t.Error("pacing should not change the simulated outcome")
	}
}

func TestRunRealtimeCancelKeepsPartialRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(Options{
		Config:   config.Default(),
		Seed:     3,
		TickRate: 1000,
		Ticks:    100000,
		Realtime: true,
		Context:  ctx,
	})
	if err != nil {
		t.Fatalf("cancelled run should not fail: %v", err)
	}
	if res.Replay.Ticks >= 100000 {
		t.Errorf("cancelled run recorded %d ticks", res.Replay.Ticks)
	}
	if _, err := Verify(res.Replay); err != nil {
		t.Errorf("partial run should verify: %v", err)
	}
}
