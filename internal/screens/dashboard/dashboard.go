// Package dashboard is the category picker shown at startup and whenever
// a quiz is left.
package dashboard

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aptiz/internal/question"
	qz "github.com/abhisek/aptiz/internal/quiz"
	"github.com/abhisek/aptiz/internal/router"
	"github.com/abhisek/aptiz/internal/screen"
	quizscreen "github.com/abhisek/aptiz/internal/screens/quiz"
	"github.com/abhisek/aptiz/internal/ui/components"
	"github.com/abhisek/aptiz/internal/ui/layout"
	"github.com/abhisek/aptiz/internal/ui/theme"
)

// DashboardScreen lists the quiz categories.
type DashboardScreen struct {
	session      *qz.Session
	provider     question.Provider
	fetchTimeout time.Duration
	menu         components.Menu
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard. Starting a category pushes a quiz screen
// that shares session with the dashboard.
func New(session *qz.Session, provider question.Provider, fetchTimeout time.Duration) *DashboardScreen {
	d := &DashboardScreen{
		session:      session,
		provider:     provider,
		fetchTimeout: fetchTimeout,
	}

	items := make([]components.MenuItem, 0, len(question.Categories)+1)
	for _, c := range question.Categories {
		items = append(items, components.MenuItem{
			Label:       c.Title(),
			Description: c.Description(),
			Action:      func() tea.Cmd { return d.start(c) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Exit",
		Action: func() tea.Cmd { return tea.Quit },
	})
	d.menu = components.NewMenu(items)
	return d
}

func (d *DashboardScreen) start(c question.Category) tea.Cmd {
	f, err := d.session.StartQuiz(c)
	if err != nil {
		return nil
	}
	next := quizscreen.New(d.session, d.provider, f, d.fetchTimeout)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("Aptitude Practice"))
	if !layout.IsCompactHeight(height + 6) {
		sections = append(sections, theme.Subtitle.Width(cw).Render(
			"Pick a category. Numerical questions come with a chart and a "+
				components.FormatClock(qz.TimeLimit)+" timer."))
	}
	sections = append(sections, components.Card(d.menu.View(cw-2), cw))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "1-4", Description: "Quick start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
