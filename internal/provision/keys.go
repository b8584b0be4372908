package provision

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	enter   key.Binding
	tab     key.Binding
	backtab key.Binding
	copy    key.Binding
	quit    key.Binding
	cancel  key.Binding
}

var keys = keyMap{
	enter:   key.NewBinding(key.WithKeys("enter")),
	tab:     key.NewBinding(key.WithKeys("tab", "down")),
	backtab: key.NewBinding(key.WithKeys("shift+tab", "up")),
	copy:    key.NewBinding(key.WithKeys("c")),
	quit:    key.NewBinding(key.WithKeys("q", "esc")),
	cancel:  key.NewBinding(key.WithKeys("ctrl+c")),
}
