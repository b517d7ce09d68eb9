package tui

import (
	"fmt"
	"strings"
	"time"

	"storyreel/types"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("🎬 " + m.Title))
	b.WriteString("\n")

	switch m.State {
	case StateFetching:
		b.WriteString(StatusStyle.Render("⏳ Fetching posts..."))
	case StateProcessing:
		b.WriteString(StatusStyle.Render(fmt.Sprintf("⚙️  Processing %d posts (%s)", len(m.Rows), time.Since(m.Started).Round(time.Second))))
	case StateComplete:
		b.WriteString(HighlightStyle.Render("✅ COMPLETE"))
	}
	b.WriteString("\n\n")

	for i, row := range m.Rows {
		b.WriteString(fmt.Sprintf("%2d. %-50s %s\n", i+1, truncate(row.Title, 50), rowStatus(row)))
	}

	if len(m.Logs) > 0 {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, line := range m.Logs {
			b.WriteString(InfoStyle.Render("   " + line))
			b.WriteString("\n")
		}
	}

	if m.State == StateComplete {
		s := m.Summary
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(fmt.Sprintf("Rendered: %d\nSkipped:  %d\nFailed:   %d", s.Rendered, s.Skipped, s.Failed)))
		b.WriteString("\n\n")
		b.WriteString(HighlightStyle.Render("Press 'q' or Ctrl+C to exit"))
	} else {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
	}

	return b.String()
}

func rowStatus(row Row) string {
	if row.Result == nil {
		if row.Stage == "" {
			return InfoStyle.Render("waiting")
		}
		return StatusStyle.Render(string(row.Stage))
	}
	switch row.Result.Status {
	case types.StatusRendered:
		return StatusStyle.Render("✅ rendered")
	case types.StatusSkipped:
		return WarningStyle.Render("⏭️  skipped: " + row.Result.Reason)
	default:
		return ErrorStyle.Render("❌ failed: " + row.Result.Reason)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
