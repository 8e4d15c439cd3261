package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	ToggleSlot key.Binding
	Start      key.Binding
	Stop       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Analyze    key.Binding
	Edit       key.Binding
	Copy       key.Binding
	Back       key.Binding
	Dismiss    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		ToggleSlot: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "check item")),
		Start:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start session")),
		Stop:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop session")),
		Confirm:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		Analyze:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "analyze")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Back:       key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "back")),
		Dismiss:    key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
	}
}

// bindings adapts a flat binding list to help.KeyMap.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (m appModel) helpBindings() bindings {
	k := m.keys
	if m.alert != nil {
		return bindings{k.Dismiss}
	}
	switch m.screen {
	case screenPrep:
		return bindings{k.NextField, k.ToggleSlot, k.Start, k.Quit}
	case screenActive:
		if m.confirmStop {
			return bindings{k.Confirm, k.Cancel}
		}
		return bindings{k.Stop, k.Quit}
	case screenReflection:
		return bindings{k.Edit, k.Analyze, k.Copy, k.Back, k.Quit}
	case screenAnalysis:
		return bindings{k.Copy, k.Back, k.Quit}
	}
	return bindings{k.Quit}
}
