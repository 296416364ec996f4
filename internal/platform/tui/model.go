package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shroom-run/internal/clock"
	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/core"
	"github.com/vovakirdan/shroom-run/internal/replay"
	"github.com/vovakirdan/shroom-run/internal/sim"
	"github.com/vovakirdan/shroom-run/internal/storage"
)

// Options configures a play or playback session.
type Options struct {
	Config     config.RunnerConfig
	Runtime    core.RuntimeConfig
	Preset     string
	Store      *storage.Store // Optional, needed to save recordings
	RecordName string         // Non-empty records the run under this name
	Replay     *replay.Replay // Non-nil plays the replay back instead of reading keys
	Logger     *log.Logger
}

// Model is the Bubble Tea model for the runner.
type Model struct {
	opts      Options
	engine    *sim.Engine
	driver    *clock.Driver
	scene     Scene
	scroll    Scroll
	screen    *core.Screen
	keys      *KeyMapper
	input     core.InputFrame
	snap      sim.Snapshot
	recorder  *replay.Recorder
	script    *replay.Script
	playTick  int
	best      int
	finished  bool // Playback reached the end of the replay
	quitting  bool
	logger    *log.Logger
	startedAt time.Time
}

// NewModel creates a model with a fresh engine.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if opts.Replay != nil {
		opts.Config = opts.Replay.Config
		rt.Seed = opts.Replay.Seed
		rt.TickRate = opts.Replay.TickRate
		opts.Preset = opts.Replay.Preset
	}
	// Use time-based seed if not specified. A replay keeps its recorded seed, zero included.
	if rt.Seed == 0 && opts.Replay == nil {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	opts.Runtime = rt

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engine := sim.NewEngine(opts.Config, rt.Seed)
	m := Model{
		opts:   opts,
		engine: engine,
		driver: clock.NewDriver(engine, rt.TickRate),
		scene:  NewScene(opts.Config),
		scroll: NewScroll(opts.Config.World.Width),
		screen: core.NewScreen(rt.ScreenW, rt.ScreenH),
		keys:   NewKeyMapper(),
		input:  core.NewInputFrame(),
		snap:   engine.Snapshot(),
		logger: logger,
	}

	switch {
	case opts.Replay != nil:
		script := opts.Replay.Script()
		m.script = &script
	case opts.RecordName != "":
		m.recorder = replay.NewRecorder(opts.Config, rt.Seed, rt.TickRate, opts.Preset)
	}
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("run started", "seed", m.opts.Runtime.Seed, "tick_rate", m.opts.Runtime.TickRate,
		"preset", m.opts.Preset, "recording", m.recorder != nil, "replay", m.script != nil)
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey latches keyboard input until the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	frame := core.NewInputFrame()
	if m.keys.MapKeyToFrame(msg, &frame) || frame.Has(core.ActionBack) {
		m.quitting = true
		return m, tea.Quit
	}

	// Playback ignores the keyboard.
	if m.script != nil {
		return m, nil
	}

	if frame.Has(core.ActionJump) {
		m.input.Set(core.ActionJump)
	}
	if frame.Has(core.ActionRestart) && m.snap.GameOver() {
		m.input.Set(core.ActionRestart)
	}
	return m, nil
}

// handleTick runs one driver step with the latched input.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}

	in := sim.InputFromFrame(m.input)
	if m.script != nil {
		if m.playTick >= m.opts.Replay.Ticks {
			m.finished = true
			m.logger.Info("replay finished", "ticks", m.playTick, "score", m.snap.Score)
			return m, nil
		}
		in = m.script.InputAt(m.playTick)
		m.playTick++
	}
	if m.recorder != nil {
		m.recorder.Record(in)
	}

	wasOver := m.snap.GameOver()
	m.snap = m.driver.Step(in)
	m.scroll.Advance()
	m.logEvents(m.snap.Events)

	if !wasOver && m.snap.GameOver() {
		m.best = core.Max(m.best, m.snap.Score)
		m.logger.Info("game over", "score", m.snap.Score, "level", m.snap.Level,
			"tick", m.snap.Tick, "restarts", m.engine.Restarts())
	}
	if wasOver && !m.snap.GameOver() {
		m.logger.Info("restart", "restarts", m.engine.Restarts())
	}

	// Clear input for next frame
	m.input.Clear()

	return m, tickCmd(m.opts.Runtime.TickRate)
}

func (m Model) logEvents(events []sim.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventSpeedUp, sim.EventSpawnIntervalChanged, sim.EventLevelUp:
			m.logger.Info("difficulty", "event", ev.Kind, "tick", ev.Tick, "value", ev.Value)
		default:
			m.logger.Debug("sim event", "event", ev.Kind, "tick", ev.Tick, "value", ev.Value)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.scene.Draw(m.screen, m.snap, m.scroll, m.hud())

	dir := filepath.Join(os.Getenv("HOME"), ".shroomrun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("shroomrun_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m Model) hud() HUD {
	h := HUD{Best: m.best}
	switch {
	case m.script != nil:
		h.Badge = "▶ REPLAY"
		h.Hint = "Replay - press Q to exit"
		if m.finished {
			h.Badge = "■ END"
		}
	case m.recorder != nil:
		h.Badge = "● REC"
	}
	return h
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.scene.Draw(m.screen, m.snap, m.scroll, m.hud())
	return RenderScreen(m.screen)
}

// Snapshot returns the latest simulation state.
func (m Model) Snapshot() sim.Snapshot {
	return m.snap
}

// Recording returns the recorded replay, or nil when not recording.
func (m Model) Recording() *replay.Replay {
	if m.recorder == nil {
		return nil
	}
	return m.recorder.Finish(m.opts.RecordName, m.snap)
}

// Result reports how a session ended.
type Result struct {
	Final    sim.Snapshot
	Best     int
	Restarts int
	ReplayID int64 // Zero when nothing was saved
}

// Run starts the Bubble Tea program and saves the recording, if any, once
// the program exits.
func Run(opts Options) (Result, error) {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return Result{}, nil
	}

	res := Result{
		Final:    m.snap,
		Best:     core.Max(m.best, m.snap.Score),
		Restarts: m.engine.Restarts(),
	}

	rec := m.Recording()
	if rec == nil || rec.Ticks == 0 {
		return res, nil
	}
	if m.opts.Store == nil {
		return res, fmt.Errorf("tui: recording %q has no store to save into", rec.Name)
	}
	id, err := m.opts.Store.SaveReplay(rec.Name, rec)
	if err != nil {
		return res, err
	}
	m.logger.Info("replay saved", "id", id, "name", rec.Name, "ticks", rec.Ticks)
	res.ReplayID = id
	return res, nil
}
