package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskhub/internal/models"
	"github.com/tgienger/taskhub/internal/ui/styles"
)

// renderStats draws the productivity panel for the whole list
func renderStats(s *styles.Styles, st models.Stats, width int) string {
	inner := max(width-4, 20)
	percent := fmt.Sprintf("%d%%", st.Progress)

	label := "Overall Progress"
	gap := max(inner-lipgloss.Width(label)-lipgloss.Width(percent), 1)
	progressLine := s.TitleMuted.Render(label) + fmt.Sprintf("%*s", gap, "") + s.Title.Render(percent)

	counts := lipgloss.JoinHorizontal(lipgloss.Top,
		statCell(s.StatActive, st.Active, "active"),
		statCell(s.StatCompleted, st.Completed, "completed"),
		statCell(s.StatOverdue, st.Overdue, "overdue"),
	)

	return s.StatsPanel.Width(inner + 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Productivity Stats"),
		progressLine,
		s.ProgressBar(st.Progress, inner),
		counts,
	))
}

func statCell(style lipgloss.Style, n int, label string) string {
	return lipgloss.NewStyle().PaddingRight(3).Render(style.Render(fmt.Sprint(n)) + " " + label)
}
