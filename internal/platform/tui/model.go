package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tickrun/internal/engine"
)

// Model is the Bubble Tea model wrapping one engine run.
type Model struct {
	engine   *engine.Engine
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

// NewModel creates a model for e. The engine is started by Init.
func NewModel(e *engine.Engine) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		engine: e,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts the engine and the tick loop.
func (m Model) Init() tea.Cmd {
	m.engine.Start()
	return tickCmd(m.engine.TargetFPS())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey forwards bound keys to the engine. Movement is applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	code, ok := m.keys.KeyCode(msg)
	if !ok {
		return m, nil
	}
	m.engine.HandleKey(code)
	if !m.engine.Running() {
		return m.finish()
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.engine.Tick()
	if m.engine.Done() {
		return m.finish()
	}
	return m, tickCmd(m.engine.TargetFPS())
}

// finish shuts the engine down, which persists the high score, and quits.
func (m Model) finish() (tea.Model, tea.Cmd) {
	m.engine.Shutdown()
	m.quitting = true
	return m, tea.Quit
}

// View renders the board, the status line and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	player, _ := m.engine.Glyphs()
	board := RenderScreen(m.engine.Grid(), player, engine.Background)

	var b strings.Builder
	b.WriteString(frameStyle.Render(board))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.engine.StatusLine()))
	if m.engine.Paused() {
		b.WriteString(" ")
		b.WriteString(pausedStyle.Render("PAUSED"))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run plays e interactively until it stops. The engine is always shut down
// on return, even when the program fails.
func Run(e *engine.Engine) error {
	defer e.Shutdown()

	p := tea.NewProgram(
		NewModel(e),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
