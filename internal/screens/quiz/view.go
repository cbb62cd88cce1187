package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/aptiz/internal/quiz"
	"github.com/abhisek/aptiz/internal/ui/components"
	"github.com/abhisek/aptiz/internal/ui/layout"
	"github.com/abhisek/aptiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	snap := s.session.Snapshot()
	switch {
	case snap.Status == qz.StatusError:
		return renderError(width, snap.Error)
	case snap.Question == nil:
		return s.renderLoading(width, snap)
	}
	return s.renderQuestion(width, snap)
}

func (s *QuizScreen) renderLoading(width int, snap qz.Snapshot) string {
	text := fmt.Sprintf("%s Generating a %s question...", s.spinner.View(), snap.Category.Title())
	return "\n\n\n" + layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, text)
}

func renderError(width int, msg string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(theme.Incorrect, width, msg))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(theme.Hint, width, "Press r to try again or Esc to return to the dashboard."))
	return b.String()
}

func (s *QuizScreen) renderQuestion(width int, snap qz.Snapshot) string {
	cw := components.ContentWidth(width)
	q := snap.Question
	a := snap.Answer

	var b strings.Builder

	// Info line: category on the left, timer and score on the right.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(snap.Category.Title())

	var right []string
	if a != nil && a.Remaining != nil {
		right = append(right, components.Timer(*a.Remaining))
	}
	right = append(right, lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Score %d/%d", snap.Score.Correct, snap.Score.Total)))
	infoRight := strings.Join(right, "   ")

	gap := max(cw-lipgloss.Width(infoLeft)-lipgloss.Width(infoRight), 1)
	b.WriteString(infoLeft + strings.Repeat(" ", gap) + infoRight)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	if chart := components.RenderChart(q.Chart, cw-4); chart != "" {
		b.WriteString(components.Card(chart, cw-2))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")

	list := components.OptionList{Options: q.Options, Selected: qz.NoSelection}
	if a != nil {
		list.Selected = a.Selected
		list.Locked = a.Answered
		if fb := a.Feedback; fb != nil {
			list.Answer = correctOption(q.Options, a.Selected, fb)
		}
	}
	b.WriteString(list.View(cw))

	if a != nil && a.Feedback != nil {
		b.WriteString("\n")
		b.WriteString(renderFeedback(cw, a.Feedback))
	}

	if snap.LoadingNext {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			s.spinner.View() + " Loading the next question..."))
	} else if a != nil && a.Answered {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press n for the next question."))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderFeedback(width int, fb *qz.FeedbackView) string {
	var b strings.Builder

	headline := theme.Incorrect
	if fb.Correct {
		headline = theme.Correct
	} else if fb.TimedOut {
		headline = headline.Foreground(theme.Warning)
	}
	b.WriteString(headline.Render(fb.Headline))
	b.WriteString("\n")

	if !fb.Correct && fb.CorrectAnswer != "" {
		b.WriteString(theme.Dimmed.Render("Correct answer: " + fb.CorrectAnswer))
		b.WriteString("\n")
	}
	if fb.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(fb.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}

// correctOption returns the text of the correct option for highlighting.
func correctOption(options []string, selected int, fb *qz.FeedbackView) string {
	if !fb.Correct {
		return fb.CorrectAnswer
	}
	if selected >= 0 && selected < len(options) {
		return options[selected]
	}
	return ""
}
