package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/core"
	"github.com/vovakirdan/shroom-run/internal/sim"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrown:         lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Scenery scroll rates in world units per tick.
const (
	backgroundScroll = 1
	groundScroll     = 2
)

// Minimum screen size that can show the play field.
const (
	minSceneW = 20
	minSceneH = 8
)

// Scroll holds the scenery offsets. It is purely cosmetic and never read by
// the simulation.
type Scroll struct {
	Background float64
	Ground     float64
	width      float64
}

// NewScroll creates offsets that wrap at the world width.
func NewScroll(worldWidth float64) Scroll {
	return Scroll{width: worldWidth}
}

// Advance moves the scenery by one tick.
func (s *Scroll) Advance() {
	s.Background = wrapOffset(s.Background+backgroundScroll, s.width)
	s.Ground = wrapOffset(s.Ground+groundScroll, s.width)
}

func wrapOffset(v, width float64) float64 {
	if width <= 0 {
		return 0
	}
	for v >= width {
		v -= width
	}
	return v
}

// HUD carries the presentation-only labels drawn over the play field.
type HUD struct {
	Badge string // Top-right marker such as REC or REPLAY
	Hint  string // Game over hint, defaults to the restart key
	Best  int
}

// Scene projects world coordinates onto the cell grid of a Screen.
type Scene struct {
	world  config.WorldConfig
	hitbox core.Rect
}

// NewScene creates a scene for the given profile.
func NewScene(cfg config.RunnerConfig) Scene {
	return Scene{
		world:  cfg.World,
		hitbox: core.NewRect(0, 0, cfg.Player.HitboxWidth, cfg.Player.HitboxHeight),
	}
}

func (sc Scene) cellX(x float64, w int) int {
	return int(math.Floor(x * float64(w) / sc.world.Width))
}

func (sc Scene) cellY(y float64, h int) int {
	return int(math.Floor(y * float64(h) / sc.world.Height))
}

// cellRect returns the half-open cell span covered by r, at least one cell
// in each direction.
func (sc Scene) cellRect(r core.Rect, w, h int) (x0, y0, x1, y1 int) {
	x0, y0 = sc.cellX(r.X, w), sc.cellY(r.Y, h)
	x1 = int(math.Ceil(r.Right() * float64(w) / sc.world.Width))
	y1 = int(math.Ceil(r.Bottom() * float64(h) / sc.world.Height))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// Draw renders a snapshot into dst.
func (sc Scene) Draw(dst *core.Screen, snap sim.Snapshot, scroll Scroll, hud HUD) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < minSceneW || h < minSceneH {
		dst.DrawTextCentered(h/2, "terminal too small", core.ColorYellow)
		return
	}

	pal := PaletteFor(BackgroundFor(snap.Level))
	groundRow := sc.cellY(sc.world.GroundDrawY, h)

	sc.drawSky(dst, pal, groundRow, scroll)
	sc.drawGround(dst, pal, groundRow, scroll)
	for _, o := range snap.Obstacles {
		sc.drawObstacle(dst, o)
	}
	sc.drawPlayer(dst, snap.Player)
	sc.drawHUD(dst, snap, pal, hud)

	if snap.GameOver() {
		drawGameOver(dst, snap, hud)
	}
}

func (sc Scene) drawSky(dst *core.Screen, pal Palette, groundRow int, scroll Scroll) {
	w := dst.Width()
	off := sc.cellX(scroll.Background, w)

	for y := 2; y < groundRow/2; y++ {
		for x := 0; x < w; x++ {
			if (x+off+y*5)%11 == 0 {
				dst.SetColored(x, y, pal.SkyRune, pal.Sky)
			}
		}
	}
	for x := 0; x < w; x++ {
		for i := 1; i <= hillHeight(x+off); i++ {
			dst.SetColored(x, groundRow-i, pal.HillRune, pal.Hill)
		}
	}
}

// hillHeight is a repeating triangle profile of 0 to 3 cells.
func hillHeight(col int) int {
	p := col % 24
	if p > 12 {
		p = 24 - p
	}
	return p / 4
}

func (sc Scene) drawGround(dst *core.Screen, pal Palette, groundRow int, scroll Scroll) {
	w, h := dst.Width(), dst.Height()
	off := sc.cellX(scroll.Ground, w)

	dst.DrawHLine(0, groundRow, w, pal.GroundRune, pal.Ground)
	for y := groundRow + 1; y < h; y++ {
		for x := 0; x < w; x++ {
			r := ' '
			if (x+off+y)%4 == 0 {
				r = '.'
			}
			dst.SetColored(x, y, r, pal.Dirt)
		}
	}
}

func (sc Scene) drawObstacle(dst *core.Screen, o sim.Obstacle) {
	x0, y0, x1, y1 := sc.cellRect(o.Rect(), dst.Width(), dst.Height())

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			switch o.Kind {
			case sim.KindRock:
				r := '█'
				if y == y0 {
					r = '▲'
				}
				dst.SetColored(x, y, r, core.ColorGray)
			default:
				r := '='
				if x == x0 || x == x1-1 {
					r = 'o'
				}
				dst.SetColored(x, y, r, core.ColorBrown)
			}
		}
	}
}

func (sc Scene) drawPlayer(dst *core.Screen, p sim.PlayerView) {
	box := core.NewRect(p.X, p.Y, sc.hitbox.W, sc.hitbox.H)
	x0, y0, x1, y1 := sc.cellRect(box, dst.Width(), dst.Height())

	capColor, body := core.ColorBrightRed, core.ColorBrightWhite
	if !p.Alive {
		capColor, body = core.ColorGray, core.ColorGray
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, c := '█', body
			switch {
			case y == y0:
				r, c = '▄', capColor
			case y == y0+1 && y1-y0 > 2:
				r, c = '█', capColor
				if (x-x0)%3 == 1 {
					r, c = 'o', body
				}
			case y == y1-1 && y1-y0 > 1:
				r = legRune(p, x-x0)
			}
			dst.SetColored(x, y, r, c)
		}
	}
}

// legRune animates the bottom row from the sprite frame.
func legRune(p sim.PlayerView, dx int) rune {
	if p.Anim != sim.AnimWalking {
		return '|'
	}
	if (p.Frame+dx)%2 == 0 {
		return '/'
	}
	return '\\'
}

func (sc Scene) drawHUD(dst *core.Screen, snap sim.Snapshot, pal Palette, hud HUD) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", snap.Score), pal.Text)
	dst.DrawTextColored(1, 1, fmt.Sprintf("Level: %d", snap.Level), pal.Text)
	if hud.Best > 0 {
		dst.DrawTextColored(14, 0, fmt.Sprintf("Best: %d", hud.Best), core.ColorGray)
	}
	if hud.Badge != "" {
		dst.DrawTextColored(dst.Width()-len([]rune(hud.Badge))-1, 0, hud.Badge, core.ColorBrightRed)
	}
}

// drawGameOver draws the restart box in the center of the screen.
func drawGameOver(dst *core.Screen, snap sim.Snapshot, hud HUD) {
	hint := hud.Hint
	if hint == "" {
		hint = "Press R to restart"
	}
	lines := []string{"GAME OVER", fmt.Sprintf("Score: %d", snap.Score), hint}

	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorBrightWhite)
	for i, l := range lines {
		c := core.ColorBrightWhite
		if i == 0 {
			c = core.ColorBrightRed
		}
		dst.DrawTextColored(boxX+(boxW-len([]rune(l)))/2, boxY+1+i, l, c)
	}
}
