package views

import "github.com/charmbracelet/bubbles/key"

// MenuKeyMap defines key bindings for the interactions menu
type MenuKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPane  key.Binding
	PrevPane  key.Binding
	Toggle    key.Binding
	Color     key.Binding
	ToggleAll key.Binding
	Calculate key.Binding
	Copy      key.Binding
	Open      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var MenuKeys = MenuKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPane: key.NewBinding(
		key.WithKeys("tab", "l", "right"),
		key.WithHelp("tab", "next pane"),
	),
	PrevPane: key.NewBinding(
		key.WithKeys("shift+tab", "h", "left"),
		key.WithHelp("shift+tab", "previous pane"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "toggle"),
	),
	Color: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cycle color"),
	),
	ToggleAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "hide/show all"),
	),
	Calculate: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "calculate"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy lines"),
	),
	Open: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "open in viewer"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
