package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/mabhi256/jdepcheck/internal/analyzer"
)

type Model struct {
	// Data
	result *analyzer.Result

	// UI State
	currentTab TabType
	width      int
	height     int

	scrollPositions map[TabType]int

	// Key bindings
	keys KeyMap
}

type TabType int

const (
	SummaryTab TabType = iota
	UsedDeclaredTab
	UsedUndeclaredTab
	UnusedDeclaredTab
	AmbiguitiesTab
)

const lastTab = AmbiguitiesTab

func (t TabType) Title() string {
	switch t {
	case SummaryTab:
		return "Summary"
	case UsedDeclaredTab:
		return "Used+Declared"
	case UsedUndeclaredTab:
		return "Used,Undeclared"
	case UnusedDeclaredTab:
		return "Unused,Declared"
	case AmbiguitiesTab:
		return "Ambiguities"
	}
	return "?"
}

type KeyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Quit  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev tab"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next tab"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
