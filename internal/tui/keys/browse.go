package keys

import "github.com/charmbracelet/bubbles/key"

// BrowseKeys are the key bindings for the interactive port browser
type BrowseKeys struct {
	Quit       key.Binding
	Help       key.Binding
	Refresh    key.Binding
	Filter     key.Binding
	Escape     key.Binding
	Detail     key.Binding
	Up         key.Binding
	Down       key.Binding
	GotoTop    key.Binding
	GotoBottom key.Binding
}

func NewBrowseKeys() BrowseKeys {
	return BrowseKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "rescan ports"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter ports"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle details"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "goto top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "goto bottom"),
		),
	}
}

func (k BrowseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Filter, k.Detail, k.Quit}
}

func (k BrowseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.GotoTop, k.GotoBottom},
		{k.Refresh, k.Filter, k.Escape, k.Detail},
		{k.Help, k.Quit},
	}
}
