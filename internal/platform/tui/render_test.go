package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/core"
	"github.com/vovakirdan/shroom-run/internal/sim"
)

func TestBackgroundFor(t *testing.T) {
	tests := []struct {
		level int
		want  Background
	}{
		{1, BackgroundMeadow},
		{2, BackgroundMeadow},
		{3, BackgroundForest},
		{5, BackgroundForest},
		{6, BackgroundDusk},
		{9, BackgroundDusk},
		{10, BackgroundNight},
		{42, BackgroundNight},
	}

	for _, tc := range tests {
		if got := BackgroundFor(tc.level); got != tc.want {
			t.Errorf("BackgroundFor(%d) = %v, expected %v", tc.level, got, tc.want)
		}
	}
	if BackgroundNight.String() != "bg4" || BackgroundMeadow.String() != "bg1" {
		t.Error("unexpected background names")
	}
}

func TestPaletteForUnknownFallsBack(t *testing.T) {
	if PaletteFor(Background(99)) != PaletteFor(BackgroundMeadow) {
		t.Error("unknown background should use bg1")
	}
}

func TestScrollWraps(t *testing.T) {
	s := NewScroll(800)
	for i := 0; i < 400; i++ {
		s.Advance()
	}
	if s.Ground != 0 {
		t.Errorf("ground offset after one full width = %v, expected 0", s.Ground)
	}
	if s.Background != 400 {
		t.Errorf("background offset = %v, expected 400", s.Background)
	}
}

func TestSceneDrawsHUDAndWorld(t *testing.T) {
	cfg := config.Default()
	e := sim.NewEngine(cfg, 1)
	e.OnSpawnTimer()
	snap := e.Tick(sim.Input{})

	screen := core.NewScreen(80, 24)
	NewScene(cfg).Draw(screen, snap, NewScroll(cfg.World.Width), HUD{Badge: "● REC"})

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("row 0 should hold the score, got %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "Level: 1") {
		t.Errorf("row 1 should hold the level, got %q", screen.Row(1))
	}
	if !strings.Contains(screen.Row(0), "REC") {
		t.Error("badge should be drawn on the top row")
	}

	// Ground line at 350/400 of the height.
	if got := screen.GetCell(0, 21).Rune; got != '▀' {
		t.Errorf("expected ground at row 21, got %q", got)
	}
	// Player hitbox starts at x=100 -> column 10, y=300 -> row 18.
	if got := screen.GetCell(10, 18).Rune; got != '▄' {
		t.Errorf("expected player cap at (10, 18), got %q", got)
	}
	// Spawned obstacle moved to 796 -> column 79.
	if got := screen.GetCell(79, 20); got.Color != core.ColorGray && got.Color != core.ColorBrown {
		t.Errorf("expected obstacle at column 79, got %+v", got)
	}
}

func TestSceneDrawsGameOver(t *testing.T) {
	cfg := config.Default()
	snap := sim.Snapshot{Status: sim.StatusGameOver, Score: 12, Level: 1,
		Player: sim.PlayerView{X: 100, Y: 300}}

	screen := core.NewScreen(80, 24)
	NewScene(cfg).Draw(screen, snap, NewScroll(cfg.World.Width), HUD{})

	text := screen.String()
	for _, want := range []string{"GAME OVER", "Score: 12", "Press R to restart"} {
		if !strings.Contains(text, want) {
			t.Errorf("game over overlay missing %q", want)
		}
	}
}

func TestSceneTooSmall(t *testing.T) {
	cfg := config.Default()
	screen := core.NewScreen(10, 4)
	NewScene(cfg).Draw(screen, sim.Snapshot{Level: 1}, NewScroll(cfg.World.Width), HUD{})

	if strings.Contains(screen.String(), "Score") {
		t.Error("tiny screens should not draw the HUD")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	screen := core.NewScreen(10, 2)
	screen.DrawTextColored(0, 0, "abc", core.ColorBrown)
	screen.DrawText(0, 1, "xyz")

	out := RenderScreen(screen)
	if !strings.Contains(out, "abc") || !strings.Contains(out, "xyz") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}
