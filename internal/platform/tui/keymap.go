package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// ViewerKeyMap defines the key bindings for the park viewer.
type ViewerKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	RotateCW   key.Binding
	RotateCCW  key.Binding
	Screenshot key.Binding
	Giant      key.Binding
	Rain       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k ViewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Screenshot, k.Giant, k.RotateCW, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k ViewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.ZoomIn, k.ZoomOut, k.RotateCW, k.RotateCCW},
		{k.Screenshot, k.Giant, k.Rain},
		{k.Help, k.Quit},
	}
}

// DefaultViewerKeyMap returns the default viewer key bindings.
func DefaultViewerKeyMap() ViewerKeyMap {
	return ViewerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "pan up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "pan down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("left/h", "pan left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("right/l", "pan right"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rotate"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rotate back"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Giant: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "giant screenshot"),
		),
		Rain: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle rain"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}
