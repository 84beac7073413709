package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/watspent/watspent/internal/analytics"
)

const dayFormat = "Mon Jan 2, 2006"

// RenderReport formats a Report as a boxed summary followed by the busiest
// terminals.
func RenderReport(r analytics.Report) string {
	if r.Count == 0 {
		return SubtleStyle.Render("No transactions loaded.")
	}

	rows := []string{
		row("Transactions", fmt.Sprint(r.Count)),
		row("Total spent", "$"+r.TotalSpent.StringFixed(2)),
		row("Longest streak", streak(r.Streak)),
		row("Unique terminals", fmt.Sprint(r.UniqueTerminals)),
	}
	if mc := r.MostCommonTerminal; mc != nil {
		rows = append(rows, row("Most visited", fmt.Sprintf("%s (%d visits)", mc.Name, mc.Count)))
	}

	sections := []string{
		TitleStyle.Render("WatCard Spending"),
		BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
	}
	if len(r.TopTerminals) > 0 {
		sections = append(sections, "", terminalTable(r.TopTerminals))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), value)
}

func streak(s analytics.Streak) string {
	switch s.Length {
	case 0:
		return "none"
	case 1:
		return fmt.Sprintf("1 day (%s)", s.Start.Format(dayFormat))
	}
	return fmt.Sprintf("%d days (%s to %s)", s.Length, s.Start.Format(dayFormat), s.End.Format(dayFormat))
}

func terminalTable(stats []analytics.VenueStat) string {
	header := []string{"Venue", "Terminal", "Visits", "Net"}
	cells := make([][]string, 0, len(stats))
	for _, s := range stats {
		cells = append(cells, []string{s.Name, s.Terminal, fmt.Sprint(s.Count), s.Sum.StringFixed(2)})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, c := range cells {
		for i, v := range c {
			widths[i] = max(widths[i], lipgloss.Width(v))
		}
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(renderCells(header, widths)))
	for _, c := range cells {
		b.WriteString("\n")
		b.WriteString(renderCells(c, widths))
	}
	return b.String()
}

func renderCells(values []string, widths []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = TableCellStyle.Width(widths[i] + 2).Render(v)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
