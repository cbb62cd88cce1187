package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aptiz/internal/ui/theme"
)

// OptionList renders the options of a multiple-choice question. Before
// the answer is known only the selection is highlighted. Once Answer is
// set the correct option is shown in green and a wrong selection in red.
type OptionList struct {
	Options  []string
	Selected int    // -1 for none
	Answer   string // empty until answered
	Locked   bool   // selection can no longer change
}

// View renders the list at the given width.
func (o OptionList) View(width int) string {
	textWidth := max(width-8, 10)

	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text).Width(textWidth)
		switch {
		case o.Answer != "" && opt == o.Answer:
			style = style.Foreground(theme.Success).Bold(true)
		case o.Answer != "" && i == o.Selected:
			style = style.Foreground(theme.Error).Bold(true)
		case o.Answer != "" || o.Locked:
			style = style.Foreground(theme.TextDim)
		case i == o.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
