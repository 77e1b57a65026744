package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/jdepcheck/internal/artifact"
	"github.com/mabhi256/jdepcheck/utils"
)

const maxChartBars = 8

func (m *Model) renderSummary() string {
	result := m.result

	var b strings.Builder

	b.WriteString(utils.TitleStyle.Render("Dependency Declaration Analysis"))
	b.WriteString("\n\n")

	verdictStyle := utils.GoodStyle
	verdict := "✅ No declaration drift detected"
	if result.HasViolations() {
		verdictStyle = utils.CriticalStyle
		verdict = fmt.Sprintf("⚠️  %d used-undeclared, %d unused-declared",
			result.UsedUndeclared.Len(), result.UnusedDeclared.Len())
	}
	b.WriteString(verdictStyle.Render(verdict))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value int
	}{
		{"Used classes", len(result.Usage)},
		{"Indexed classes", result.Index.Len()},
		{"Declared dependencies", result.Declared.Len()},
		{"Used & declared", result.UsedDeclared.Len()},
		{"Used but undeclared", result.UsedUndeclared.Len()},
		{"Declared but unused", result.UnusedDeclared.Len()},
		{"Ambiguous class names", len(result.Ambiguities)},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n",
			utils.InfoStyle.Render(utils.PadRight(row.label+":", 24)),
			utils.TextStyle.Render(fmt.Sprintf("%d", row.value))))
	}

	if declared := result.Declared.Len(); declared > 0 {
		ratio := float64(result.UsedDeclared.Len()) / float64(declared)
		color := utils.GoodColor
		if result.HasViolations() {
			color = utils.WarningColor
		}
		b.WriteString(fmt.Sprintf("%s %s %.0f%%\n",
			utils.InfoStyle.Render(utils.PadRight("Declarations in use:", 24)),
			utils.CreateProgressBar(ratio, 20, color),
			ratio*100))
	}

	if chart := m.renderClassCountChart(); chart != "" {
		b.WriteString("\n")
		b.WriteString(utils.MutedStyle.Render("Indexed classes per artifact"))
		b.WriteString("\n")
		b.WriteString(chart)
	}

	return b.String()
}

// renderClassCountChart draws the largest inventories as a bar chart, which
// makes one dependency dominating the index easy to spot.
func (m *Model) renderClassCountChart() string {
	counts := m.result.Index.ClassCountByOwner()
	if len(counts) == 0 || m.width < 30 {
		return ""
	}

	type ownerCount struct {
		id    artifact.ID
		count int
	}
	owners := make([]ownerCount, 0, len(counts))
	for id, count := range counts {
		owners = append(owners, ownerCount{id, count})
	}
	sort.Slice(owners, func(i, j int) bool {
		if owners[i].count != owners[j].count {
			return owners[i].count > owners[j].count
		}
		return owners[i].id.String() < owners[j].id.String()
	})
	if len(owners) > maxChartBars {
		owners = owners[:maxChartBars]
	}

	barStyle := lipgloss.NewStyle().Foreground(utils.InfoColor)
	data := make([]barchart.BarData, 0, len(owners))
	for _, owner := range owners {
		data = append(data, barchart.BarData{
			Label: utils.TruncateString(owner.id.Name, 12),
			Values: []barchart.BarValue{
				{Name: owner.id.String(), Value: float64(owner.count), Style: barStyle},
			},
		})
	}

	chart := barchart.New(min(m.width-4, 72), 10)
	chart.PushAll(data)
	chart.Draw()
	return chart.View()
}
