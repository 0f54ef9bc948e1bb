package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines key bindings used across the TUI.
type KeyMap struct {
	Quit key.Binding

	// Home
	Up           key.Binding
	Down         key.Binding
	NextInterval key.Binding
	PrevInterval key.Binding
	Submit       key.Binding
	Dismiss      key.Binding

	// Loading
	Cancel key.Binding

	// Result
	Back    key.Binding
	Refresh key.Binding
	Export  key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI. Letter keys
// are only bound on screens without a text input.
var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

	Up:           key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑/↓", "symbol")),
	Down:         key.NewBinding(key.WithKeys("down", "ctrl+n")),
	NextInterval: key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("←/→", "interval")),
	PrevInterval: key.NewBinding(key.WithKeys("left", "shift+tab")),
	Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "analyze")),
	Dismiss:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss error")),

	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

	Back:    key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b", "back to home")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
}

func helpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, HelpKeyStyle.Render(h.Key)+" "+SubtextStyle.Render(h.Desc))
	}
	return strings.Join(parts, SubtextStyle.Render(" • "))
}
