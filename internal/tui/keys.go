package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Spawning
	Success     key.Binding
	Warning     key.Binding
	Error       key.Binding
	Information key.Binding
	Plain       key.Binding
	ToggleDark  key.Binding

	// Stack
	HideNewest   key.Binding
	Hover        key.Binding
	Reset        key.Binding
	Position     key.Binding
	MoreVisible  key.Binding
	FewerVisible key.Binding
	Copy         key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Success, k.Error, k.HideNewest, k.Position, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Success, k.Warning, k.Error, k.Information, k.Plain, k.ToggleDark},
		{k.HideNewest, k.Hover, k.Reset, k.Position},
		{k.MoreVisible, k.FewerVisible, k.Copy},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Success: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "success"),
		),
		Warning: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "warning"),
		),
		Error: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "error"),
		),
		Information: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "information"),
		),
		Plain: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "no preset"),
		),
		ToggleDark: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle dark"),
		),
		HideNewest: key.NewBinding(
			key.WithKeys("x", "backspace"),
			key.WithHelp("x", "hide newest"),
		),
		Hover: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hover newest"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Position: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "next position"),
		),
		MoreVisible: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more visible"),
		),
		FewerVisible: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer visible"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy stack as YAML"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
