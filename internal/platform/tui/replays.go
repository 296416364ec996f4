package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shroom-run/internal/replay"
	"github.com/vovakirdan/shroom-run/internal/storage"
)

// Browser layout constants
const (
	maxReplays     = 100 // Max replays to load
	browserChrome  = 9   // Rows taken by title, status, help and borders
	minTableHeight = 3
)

// ReplayStore is the archive surface the browser needs.
type ReplayStore interface {
	RecentReplays(limit int) ([]storage.ReplayEntry, error)
	Replay(id int64) (*replay.Replay, error)
	DeleteReplay(id int64) error
}

// BrowserKeyMap defines the key bindings for the replay browser.
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Play   key.Binding
	Verify key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Verify, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Play},
		{k.Verify, k.Delete, k.Back, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp("enter", "watch"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel is the Bubble Tea model for the replay archive screen.
type BrowserModel struct {
	store     ReplayStore
	entries   []storage.ReplayEntry
	table     table.Model
	help      help.Model
	keys      BrowserKeyMap
	theme     Theme
	width     int
	height    int
	status    string
	statusErr bool
	playID    int64 // Set when the user picks a replay to watch
	quitting  bool
	goingBack bool
}

// NewBrowserModel creates a browser over the given store.
func NewBrowserModel(store ReplayStore, width, height int) BrowserModel {
	h := help.New()
	h.ShowAll = false

	m := BrowserModel{
		store:  store,
		keys:   DefaultBrowserKeyMap(),
		help:   h,
		theme:  DefaultTheme(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadEntries()
	return m
}

// createTable creates a new table with columns sized to the terminal.
func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 16},
		{Title: "Ticks", Width: 8},
		{Title: "Seed", Width: 20},
		{Title: "Preset", Width: 8},
		{Title: "Date", Width: 13},
	}

	// Give spare width to the name column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := m.width - 6 - used; spare > 0 {
		columns[1].Width += min(spare, 24)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-browserChrome, minTableHeight)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadEntries reloads the archive listing.
func (m *BrowserModel) loadEntries() {
	m.entries = nil
	if m.store != nil {
		entries, err := m.store.RecentReplays(maxReplays)
		if err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.entries = entries
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current entries.
func (m *BrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		preset := e.Preset
		if preset == "" {
			preset = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", e.ID),
			e.Name,
			fmt.Sprintf("%d", e.Ticks),
			fmt.Sprintf("%d", e.Seed),
			preset,
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

func (m *BrowserModel) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// selected returns the entry under the cursor.
func (m BrowserModel) selected() (storage.ReplayEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return storage.ReplayEntry{}, false
	}
	return m.entries[i], true
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Play):
			if e, ok := m.selected(); ok {
				m.playID = e.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// verifySelected re-simulates the selected replay and reports the outcome.
func (m *BrowserModel) verifySelected() {
	e, ok := m.selected()
	if !ok || m.store == nil {
		return
	}
	r, err := m.store.Replay(e.ID)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	snap, err := replay.Verify(r)
	if err != nil {
		m.setStatus(fmt.Sprintf("#%d %s: %v", e.ID, e.Name, err), true)
		return
	}
	m.setStatus(fmt.Sprintf("#%d %s verified: score %d, level %d", e.ID, e.Name, snap.Score, snap.Level), false)
}

// deleteSelected removes the selected replay from the archive.
func (m *BrowserModel) deleteSelected() {
	e, ok := m.selected()
	if !ok || m.store == nil {
		return
	}
	if err := m.store.DeleteReplay(e.ID); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.loadEntries()
	m.setStatus(fmt.Sprintf("deleted #%d %s", e.ID, e.Name), false)
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting || m.goingBack || m.playID != 0 {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("REPLAYS (%d)", len(m.entries))
	b.WriteString(centerText(m.theme.Title.Render(title), m.width))
	b.WriteString("\n\n")

	var content string
	if len(m.entries) == 0 {
		content = m.theme.Empty.Render("No replays recorded yet.\nPlay with --record to save one!")
	} else {
		content = m.table.View()
	}
	b.WriteString(centerText(m.theme.Panel.Render(content), m.width))
	b.WriteString("\n")

	if m.status != "" {
		style := m.theme.Status
		if m.statusErr {
			style = m.theme.Error
		}
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// PlayID returns the replay the user chose to watch, or zero.
func (m BrowserModel) PlayID() int64 {
	return m.playID
}

// IsGoingBack returns true if user wants to go back to menu.
func (m BrowserModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m BrowserModel) IsQuitting() bool {
	return m.quitting
}

// BrowserResult holds how the browser was left.
type BrowserResult struct {
	PlayID int64
	Back   bool
}

// RunBrowser runs the replay browser screen.
func RunBrowser(store ReplayStore, width, height int) (BrowserResult, error) {
	p := tea.NewProgram(
		NewBrowserModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return BrowserResult{}, err
	}

	m, ok := finalModel.(BrowserModel)
	if !ok {
		return BrowserResult{}, nil
	}
	return BrowserResult{PlayID: m.PlayID(), Back: m.IsGoingBack()}, nil
}
