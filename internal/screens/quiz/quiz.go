// Package quiz is the terminal screen for a running quiz: loading, error,
// and the active question with its countdown and feedback.
package quiz

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aptiz/internal/question"
	qz "github.com/abhisek/aptiz/internal/quiz"
	"github.com/abhisek/aptiz/internal/router"
	"github.com/abhisek/aptiz/internal/screen"
	"github.com/abhisek/aptiz/internal/ui/layout"
	"github.com/abhisek/aptiz/internal/ui/theme"
)

// QuizScreen drives a quiz.Session from Bubble Tea messages. Fetches run
// as commands and come back as questionMsg; the countdown is a chain of
// tea.Tick commands tagged with the countdown id.
type QuizScreen struct {
	session      *qz.Session
	provider     question.Provider
	fetchTimeout time.Duration
	pending      qz.Fetch
	spinner      spinner.Model
	cancel       context.CancelFunc
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// New creates a quiz screen for a session that has just started the
// fetch f. Init issues the fetch.
func New(session *qz.Session, provider question.Provider, f qz.Fetch, fetchTimeout time.Duration) *QuizScreen {
	if fetchTimeout <= 0 {
		fetchTimeout = qz.DefaultFetchTimeout
	}
	return &QuizScreen{
		session:      session,
		provider:     provider,
		fetchTimeout: fetchTimeout,
		pending:      f,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.fetch(s.pending), s.spinner.Tick)
}

func (s *QuizScreen) Title() string {
	if c := s.session.Category(); c.Valid() {
		return c.Title()
	}
	return "Quiz"
}

func (s *QuizScreen) Status() string {
	score := s.session.Score()
	return fmt.Sprintf("Score %d/%d", score.Correct, score.Total)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	snap := s.session.Snapshot()
	switch {
	case snap.Status == qz.StatusError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Dashboard"},
		}
	case snap.Status == qz.StatusLoading:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Dashboard"},
		}
	case snap.Answer != nil && snap.Answer.Answered:
		return []layout.KeyHint{
			{Key: "N", Description: "Next question"},
			{Key: "Esc", Description: "Dashboard"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Select"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionMsg:
		return s, s.handleQuestion(msg)

	case timerTickMsg:
		if s.session.Tick(msg.id) == qz.TickContinue {
			return s, tickCmd(msg.id)
		}
		return s, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

// Back abandons the quiz and returns to the dashboard.
func (s *QuizScreen) Back() tea.Cmd {
	s.stopFetch()
	s.session.GoToDashboard()
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *QuizScreen) handleQuestion(msg questionMsg) tea.Cmd {
	if !s.session.Resolve(msg.generation, msg.question, msg.err) {
		return nil
	}
	if cd, ok := s.session.Countdown(); ok {
		return tickCmd(cd.ID())
	}
	return nil
}

func (s *QuizScreen) handleKey(key string) tea.Cmd {
	switch s.session.Status() {
	case qz.StatusError:
		if key == "r" || key == "enter" {
			f, err := s.session.StartQuiz(s.session.Category())
			if err != nil {
				return nil
			}
			return s.fetch(f)
		}
		return nil

	case qz.StatusActive:
		a := s.session.Answer()
		if a == nil {
			return nil
		}
		if a.Answered() {
			if key == "n" || key == "enter" {
				if f, ok := s.session.NextQuestion(); ok {
					return s.fetch(f)
				}
			}
			return nil
		}
		switch key {
		case "1", "2", "3", "4":
			s.session.Select(int(key[0] - '1'))
		case "up", "k":
			s.session.Select(max(a.Selected()-1, 0))
		case "down", "j":
			s.session.Select(min(a.Selected()+1, len(a.Question().Options)-1))
		case "enter":
			s.session.Submit()
		}
	}
	return nil
}

// fetch returns a command that asks the provider for a question for f,
// cancelling whatever fetch was outstanding.
func (s *QuizScreen) fetch(f qz.Fetch) tea.Cmd {
	s.stopFetch()
	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	s.cancel = cancel
	provider := s.provider
	return func() tea.Msg {
		defer cancel()
		q, err := provider.Fetch(ctx, f.Category)
		return questionMsg{generation: f.Generation, question: q, err: err}
	}
}

func (s *QuizScreen) stopFetch() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func tickCmd(id int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{id: id}
	})
}
