package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	yes  key.Binding
	no   key.Binding
	quit key.Binding
}

var keys = keyMap{
	yes:  key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "apply")),
	no:   key.NewBinding(key.WithKeys("n", "N", "enter", "esc"), key.WithHelp("n", "skip")),
	quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "skip")),
}
