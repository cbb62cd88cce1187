package quiz

import (
	"errors"
	"fmt"
	"log"

	"github.com/abhisek/aptiz/internal/question"
)

// ErrorMessage is the only failure text ever shown to users.
const ErrorMessage = "Failed to generate a question. Please try again."

// ErrUnknownCategory is returned when starting a quiz with an invalid category.
var ErrUnknownCategory = errors.New("quiz: unknown category")

// Status is the top-level state of a session.
type Status int

const (
	StatusDashboard Status = iota
	StatusLoading
	StatusError
	StatusActive
)

var statusNames = [...]string{"dashboard", "loading", "error", "active"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Score counts answered questions. Correct never exceeds Total.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Fetch is a ticket for one question request. The result must be handed
// back to Resolve together with the ticket's generation.
type Fetch struct {
	Generation uint64
	Category   question.Category
}

// Session is the quiz session state machine. All mutation goes through
// its transition methods. It is not safe for concurrent use; callers
// serialise events, as Loop and the terminal UI do.
type Session struct {
	status     Status
	category   question.Category
	answer     *Answer
	errMsg     string
	score      Score
	generation uint64
	countdowns int
}

// NewSession returns a session on the dashboard.
func NewSession() *Session {
	return &Session{}
}

func (s *Session) Status() Status              { return s.status }
func (s *Session) Category() question.Category { return s.category }
func (s *Session) Score() Score                { return s.score }
func (s *Session) Generation() uint64          { return s.generation }

// Error returns the user-facing error message while in StatusError.
func (s *Session) Error() string { return s.errMsg }

// Answer returns the interaction state of the displayed question, or nil.
func (s *Session) Answer() *Answer { return s.answer }

// Question returns the displayed question, or nil.
func (s *Session) Question() *question.Question {
	if s.answer == nil {
		return nil
	}
	return s.answer.Question()
}

// LoadingNext reports whether a next question is being fetched while the
// previous one stays on screen.
func (s *Session) LoadingNext() bool {
	return s.status == StatusLoading && s.answer != nil
}

// StartQuiz begins a new quiz in category c. The score is reset and any
// outstanding fetch is superseded.
func (s *Session) StartQuiz(c question.Category) (Fetch, error) {
	if !c.Valid() {
		return Fetch{}, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	s.reset()
	s.category = c
	s.status = StatusLoading
	return s.newFetch(), nil
}

// NextQuestion requests another question in the active category. It is
// allowed only once the displayed question is answered. The answered
// question stays displayed until the new one arrives.
func (s *Session) NextQuestion() (Fetch, bool) {
	if s.status != StatusActive || s.answer == nil || !s.answer.Answered() {
		return Fetch{}, false
	}
	s.answer.Stop()
	s.status = StatusLoading
	return s.newFetch(), true
}

// Resolve applies the outcome of the fetch tagged with generation. Results
// for superseded fetches, or arriving when nothing is loading, are
// discarded and Resolve reports false. A question that fails the
// structural or answer checks is treated as a failed fetch.
func (s *Session) Resolve(generation uint64, q *question.Question, err error) bool {
	if generation != s.generation || s.status != StatusLoading {
		return false
	}

	if err == nil && q == nil {
		err = errors.New("provider returned no question")
	}
	if err == nil {
		checked := *q
		checked.Category = s.category
		err = question.Validate(&checked, &question.StructuralValidator{}, &question.AnswerValidator{})
		q = &checked
	}
	if err != nil {
		log.Printf("quiz: fetch %s failed: %v", s.category, err)
		s.stopCountdown()
		s.answer = nil
		s.errMsg = ErrorMessage
		s.status = StatusError
		return true
	}

	s.stopCountdown()
	s.countdowns++
	s.answer = NewAnswer(q, s.countdowns)
	s.errMsg = ""
	s.status = StatusActive
	return true
}

// GoToDashboard returns to the dashboard from any state. Session state is
// reinitialised and outstanding fetches are superseded.
func (s *Session) GoToDashboard() {
	s.reset()
}

// Select chooses option i of the displayed question.
func (s *Session) Select(i int) bool {
	if s.status != StatusActive || s.answer == nil {
		return false
	}
	return s.answer.Select(i)
}

// SelectOption chooses the option equal to text.
func (s *Session) SelectOption(text string) bool {
	if s.status != StatusActive || s.answer == nil {
		return false
	}
	return s.answer.SelectOption(text)
}

// Submit finalises the current selection and scores it. It reports
// whether the question was answered by this call.
func (s *Session) Submit() bool {
	if s.status != StatusActive || s.answer == nil {
		return false
	}
	if !s.answer.Submit() {
		return false
	}
	s.record()
	return true
}

// Tick delivers a one-second tick for countdown id.
func (s *Session) Tick(id int) TickResult {
	if s.status != StatusActive || s.answer == nil {
		return TickIgnored
	}
	res := s.answer.Tick(id)
	if res == TickExpired {
		s.record()
	}
	return res
}

// Countdown returns the running countdown of the displayed question, if any.
func (s *Session) Countdown() (*Countdown, bool) {
	if s.status != StatusActive || s.answer == nil || !s.answer.Countdown().Running() {
		return nil, false
	}
	return s.answer.Countdown(), true
}

// record applies the score for a just-answered question.
func (s *Session) record() {
	s.score.Total++
	if s.answer.Correct() {
		s.score.Correct++
	}
}

func (s *Session) newFetch() Fetch {
	s.generation++
	return Fetch{Generation: s.generation, Category: s.category}
}

func (s *Session) stopCountdown() {
	if s.answer != nil {
		s.answer.Stop()
	}
}

// reset returns to the dashboard defaults and supersedes any fetch.
func (s *Session) reset() {
	s.stopCountdown()
	s.status = StatusDashboard
	s.category = 0
	s.answer = nil
	s.errMsg = ""
	s.score = Score{}
	s.generation++
}
