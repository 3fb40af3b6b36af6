package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the theme editor.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding

	SwitchFocus key.Binding
	Open        key.Binding
	Back        key.Binding
	NextLiteral key.Binding
	PrevLiteral key.Binding
	Cancel      key.Binding
	Sort        key.Binding

	Save      key.Binding
	Overwrite key.Binding
	SaveAsNew key.Binding
	Reload    key.Binding
	Yank      key.Binding
	Diff      key.Binding

	Quit key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/edit"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "h"),
			key.WithHelp("h", "themes"),
		),
		NextLiteral: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next color"),
		),
		PrevLiteral: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous color"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Save: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "save file"),
		),
		Overwrite: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "overwrite theme"),
		),
		SaveAsNew: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "save as new theme"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy color"),
		),
		Diff: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "show changes"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchFocus, k.Open, k.NextLiteral, k.Save, k.SaveAsNew, k.Diff, k.Quit}
}

// FullHelp returns all bindings grouped by purpose.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.GotoTop, k.GotoBottom},
		{k.SwitchFocus, k.Open, k.Back, k.NextLiteral, k.PrevLiteral, k.Cancel, k.Sort},
		{k.Save, k.Overwrite, k.SaveAsNew, k.Reload, k.Yank, k.Diff, k.Quit},
	}
}
