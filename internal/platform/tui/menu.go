package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shroom-run/internal/core"
)

// MenuChoice is what the user picked in the start menu.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuPlay
	MenuReplays
	MenuQuit
)

// MenuItem is one selectable entry of the start menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
	Hint   string
}

// DefaultMenuItems returns the start menu entries.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Choice: MenuPlay, Title: "Play", Hint: "Space to jump, R to restart"},
		{Choice: MenuReplays, Title: "Replays", Hint: "Browse and watch recorded runs"},
		{Choice: MenuQuit, Title: "Quit", Hint: "Leave the forest"},
	}
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	theme     Theme
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     DefaultMenuItems(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		theme:     DefaultTheme(),
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = MenuQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.choice = m.items[m.cursor].Choice
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice != MenuNone {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("S H R O O M   R U N"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Subtitle.Render("an endless mushroom dash"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title + "  "
		if i == m.cursor {
			line = m.theme.MenuItemActive.Render("> " + item.Title + " ")
		} else {
			line = m.theme.MenuItemNormal.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Subtitle.Render(m.items[m.cursor].Hint), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Help.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the user selected, MenuNone while the menu is open.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, ignoring ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: MenuQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == MenuNone {
		return MenuResult{Choice: MenuQuit, Config: cfg}, nil
	}
	return MenuResult{Choice: m.Choice(), Config: m.Config()}, nil
}
