package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Overview key.Binding
	Shopping key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Up       key.Binding
	Down     key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Toggle   key.Binding
	Select   key.Binding
	Image    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Overview: key.NewBinding(key.WithKeys("o", "0"), key.WithHelp("o", "overview")),
	Shopping: key.NewBinding(key.WithKeys("s", "5"), key.WithHelp("s", "shopping")),
	NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "navigate")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	PrevDay:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←→", "prev/next day")),
	NextDay:  key.NewBinding(key.WithKeys("right", "l")),
	Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Image:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "image")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup/pgdn", "scroll")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
}

// footerBindings lists what the footer advertises for a mode.
func footerBindings(m Mode) []key.Binding {
	b := []key.Binding{keys.Up}
	switch m {
	case ModeOverview:
		b = append(b, keys.Toggle, withHelp(keys.Select, "enter", "open recipe"))
	case ModeDay:
		b = append(b, keys.PrevDay, keys.Toggle, withHelp(keys.Select, "enter", "expand"), keys.Image)
	case ModeShopping:
		b = append(b, withHelp(keys.Toggle, "space", "check"), withHelp(keys.Select, "enter", "expand/check"))
	}
	return append(b, keys.PageUp, keys.NextTab, keys.Quit)
}

func withHelp(b key.Binding, k, desc string) key.Binding {
	b.SetHelp(k, desc)
	return b
}
