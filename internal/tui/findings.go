package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/jdepcheck/internal/artifact"
	"github.com/mabhi256/jdepcheck/utils"
)

func (m *Model) renderArtifactList(set *artifact.Set, style lipgloss.Style, caption string) string {
	var b strings.Builder

	b.WriteString(utils.MutedStyle.Render(caption))
	b.WriteString("\n\n")

	if set.Len() == 0 {
		b.WriteString(utils.GoodStyle.Render("   none 🎉"))
		b.WriteString("\n")
		return b.String()
	}

	for _, id := range set.Sorted() {
		b.WriteString("  ")
		b.WriteString(style.Render("▪ "))
		b.WriteString(utils.TextStyle.Render(id.String()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderAmbiguities() string {
	var b strings.Builder

	b.WriteString(utils.MutedStyle.Render(
		"Class names provided by more than one artifact. Every owner counted as satisfying usage."))
	b.WriteString("\n\n")

	if len(m.result.Ambiguities) == 0 {
		b.WriteString(utils.GoodStyle.Render("   none 🎉"))
		b.WriteString("\n")
		return b.String()
	}

	for _, diag := range m.result.Ambiguities {
		owners := make([]string, 0, len(diag.Owners))
		for _, id := range diag.Owners {
			owners = append(owners, id.String())
		}
		b.WriteString(fmt.Sprintf("  %s %s\n      %s\n",
			utils.WarningStyle.Render("▪"),
			utils.TextStyle.Render(diag.Class),
			utils.MutedStyle.Render(strings.Join(owners, ", "))))
	}

	return b.String()
}
