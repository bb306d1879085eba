package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/parkshot/internal/core"
)

// Model is the Bubble Tea model for the park viewer.
type Model struct {
	viewer   *Viewer
	keys     ViewerKeyMap
	help     help.Model
	tickRate int
	width    int
	height   int
	quitting bool
}

// NewModel creates a viewer model sized for a width x height terminal.
func NewModel(v *Viewer, tickRate, width, height int) Model {
	if tickRate <= 0 {
		tickRate = 30
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		viewer:   v,
		keys:     DefaultViewerKeyMap(),
		help:     h,
		tickRate: tickRate,
		width:    width,
		height:   height,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
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
		if m.quitting {
			return m, nil
		}
		m.viewer.Step()
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.viewer
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		v.RequestScreenshot()
	case key.Matches(msg, m.keys.Giant):
		v.GiantScreenshot()
	case key.Matches(msg, m.keys.Up):
		v.Pan(0, -1)
	case key.Matches(msg, m.keys.Down):
		v.Pan(0, 1)
	case key.Matches(msg, m.keys.Left):
		v.Pan(-1, 0)
	case key.Matches(msg, m.keys.Right):
		v.Pan(1, 0)
	case key.Matches(msg, m.keys.ZoomIn):
		v.Zoom(-1)
	case key.Matches(msg, m.keys.ZoomOut):
		v.Zoom(1)
	case key.Matches(msg, m.keys.RotateCW):
		v.Rotate(true)
	case key.Matches(msg, m.keys.RotateCCW):
		v.Rotate(false)
	case key.Matches(msg, m.keys.Rain):
		v.ToggleRain()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// View renders the current frame, status line and help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := lipgloss.JoinVertical(lipgloss.Left,
		RenderStatus(m.viewer.Status()),
		m.help.View(m.keys),
	)
	rows := m.height - lipgloss.Height(footer)
	if rows < 1 {
		rows = 1
	}

	var frame string
	if m.viewer.Flashing() {
		frame = RenderFlash(m.width, rows)
	} else {
		pal := core.SnapshotPalette(m.viewer.engine.LivePalette())
		frame = RenderFrame(m.viewer.Framebuffer(), &pal, m.width, rows)
	}
	return lipgloss.JoinVertical(lipgloss.Left, frame, footer)
}

// Run starts the Bubble Tea program with a viewer model.
func Run(v *Viewer, tickRate, width, height int) error {
	model := NewModel(v, tickRate, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
