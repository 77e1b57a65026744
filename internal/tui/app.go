package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/jdepcheck/internal/analyzer"
	"github.com/mabhi256/jdepcheck/utils"
)

func initialModel(result *analyzer.Result) *Model {
	return &Model{
		currentTab:      SummaryTab,
		result:          result,
		keys:            DefaultKeyMap(),
		scrollPositions: make(map[TabType]int),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Left):
			utils.CycleEnumPtr(&m.currentTab, -1, lastTab)
		case key.Matches(msg, m.keys.Right):
			utils.CycleEnumPtr(&m.currentTab, 1, lastTab)

		case key.Matches(msg, m.keys.Up):
			if m.scrollPositions[m.currentTab] > 0 {
				m.scrollPositions[m.currentTab]--
			}
		case key.Matches(msg, m.keys.Down):
			m.scrollPositions[m.currentTab]++

		default:
			switch msg.String() {
			case "1":
				m.currentTab = SummaryTab
			case "2":
				m.currentTab = UsedDeclaredTab
			case "3":
				m.currentTab = UsedUndeclaredTab
			case "4":
				m.currentTab = UnusedDeclaredTab
			case "5":
				m.currentTab = AmbiguitiesTab
			}
		}
	}

	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	content := m.renderCurrentTab()
	helpBar := utils.HelpBarStyle.Width(m.width).Render(
		"1-5 switch tab  •  ←/→ cycle  •  ↑/↓ scroll  •  q quit")

	contentHeight := m.height - lipgloss.Height(header) - 1
	content = m.applyScroll(content, contentHeight)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, helpBar)
}

func (m *Model) renderHeader() string {
	var tabs []string
	for tab := SummaryTab; tab <= lastTab; tab++ {
		style := utils.TabInactiveStyle
		if tab == m.currentTab {
			style = utils.TabActiveStyle
		}
		tabs = append(tabs, style.Render(tab.Title()))
	}

	tabLine := strings.Join(tabs, "  ")
	border := strings.Repeat("─", max(m.width, 1))

	return lipgloss.JoinVertical(lipgloss.Left, tabLine, border)
}

func (m *Model) renderCurrentTab() string {
	switch m.currentTab {
	case SummaryTab:
		return m.renderSummary()
	case UsedDeclaredTab:
		return m.renderArtifactList(m.result.UsedDeclared, utils.GoodStyle,
			"Dependencies declared and proven used.")
	case UsedUndeclaredTab:
		return m.renderArtifactList(m.result.UsedUndeclared, utils.CriticalStyle,
			"Classes of these are referenced, but the dependency is not declared.")
	case UnusedDeclaredTab:
		return m.renderArtifactList(m.result.UnusedDeclared, utils.WarningStyle,
			"Declared, but no class of these is referenced.")
	case AmbiguitiesTab:
		return m.renderAmbiguities()
	}
	return ""
}

// applyScroll clamps the stored scroll offset to the rendered content and
// returns the visible window.
func (m *Model) applyScroll(content string, height int) string {
	if height <= 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	if len(lines) <= height {
		m.scrollPositions[m.currentTab] = 0
		return content + strings.Repeat("\n", height-len(lines))
	}

	maxScroll := len(lines) - height
	if m.scrollPositions[m.currentTab] > maxScroll {
		m.scrollPositions[m.currentTab] = maxScroll
	}

	start := m.scrollPositions[m.currentTab]
	return strings.Join(lines[start:start+height], "\n")
}

func StartTUI(result *analyzer.Result) error {
	model := initialModel(result)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
