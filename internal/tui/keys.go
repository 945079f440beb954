package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Flow  key.Binding
	Reset key.Binding
	Next  key.Binding
	Prev  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flow, k.Reset, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flow, k.Reset},
		{k.Next, k.Prev},
		{k.Help, k.Quit},
	}
}

// KeyBindings returns the explorer's key bindings in help order.
func KeyBindings() []key.Binding {
	var out []key.Binding
	for _, group := range defaultKeyMap().FullHelp() {
		out = append(out, group...)
	}
	return out
}

func defaultKeyMap() keyMap {
	return keyMap{
		Flow: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "toggle flow"),
		),
		Reset: key.NewBinding(
			key.WithKeys("0", "esc"),
			key.WithHelp("0/esc", "all flows"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next diagram"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous diagram"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
