package dashboard

import "github.com/charmbracelet/bubbles/key"

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewDetail
)

// String returns a human-readable label for the view mode.
func (v ViewMode) String() string {
	switch v {
	case ViewDetail:
		return "detail"
	default:
		return "grid"
	}
}

type keyMap struct {
	Quit   key.Binding
	Reload key.Binding
	Prev   key.Binding
	Next   key.Binding
	First  key.Binding
	Last   key.Binding
	Open   key.Binding
	Back   key.Binding
	Help   key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Prev: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous"),
	),
	Next: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next"),
	),
	First: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "first"),
	),
	Last: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "last"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open chart"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Reload, k.Open, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.Open, k.Back, k.Reload},
		{k.Help, k.Quit},
	}
}
