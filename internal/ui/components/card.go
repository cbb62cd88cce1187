package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aptiz/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// they line up. It is capped to keep long lines readable.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 76)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1).
		Render(content)
}

// Timer renders a m:ss countdown. The last ten seconds are drawn in the
// warning colour.
func Timer(remaining int) string {
	style := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	if remaining <= 10 {
		style = style.Foreground(theme.Warning)
	}
	return style.Render("⏱ " + FormatClock(remaining))
}

// FormatClock formats whole seconds as m:ss.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
