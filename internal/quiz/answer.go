package quiz

import "github.com/abhisek/aptiz/internal/question"

// NoSelection is the selected index when no option is chosen.
const NoSelection = -1

// Answer is the interaction state for one displayed question: the current
// selection, the answered flag and, for timed categories, the countdown.
// Answered moves from false to true exactly once; after that no input or
// tick has any effect.
type Answer struct {
	question  *question.Question
	selected  int
	answered  bool
	correct   bool
	timedOut  bool
	timed     bool
	countdown Countdown
}

// NewAnswer starts the interaction for q. countdownID tags the countdown
// so stale ticks can be told apart.
func NewAnswer(q *question.Question, countdownID int) *Answer {
	a := &Answer{question: q, selected: NoSelection}
	if q.Category.Timed() {
		a.timed = true
		a.countdown = newCountdown(countdownID, TimeLimit)
	}
	return a
}

// Question returns the question this answer belongs to.
func (a *Answer) Question() *question.Question { return a.question }

// Selected returns the selected option index, or NoSelection.
func (a *Answer) Selected() int { return a.selected }

// SelectedOption returns the selected option text and whether one is selected.
func (a *Answer) SelectedOption() (string, bool) {
	if a.selected == NoSelection {
		return "", false
	}
	return a.question.Options[a.selected], true
}

func (a *Answer) Answered() bool { return a.answered }
func (a *Answer) Correct() bool  { return a.correct }
func (a *Answer) TimedOut() bool { return a.timedOut }

// Timed reports whether this question has a countdown.
func (a *Answer) Timed() bool { return a.timed }

// Countdown returns the countdown handle. It is the zero Countdown for
// untimed questions.
func (a *Answer) Countdown() *Countdown { return &a.countdown }

// Remaining returns the seconds left and whether a timer applies.
func (a *Answer) Remaining() (int, bool) {
	if !a.timed {
		return 0, false
	}
	return a.countdown.Remaining(), true
}

// CanSelect reports whether a selection would currently be accepted.
func (a *Answer) CanSelect() bool {
	if a.answered {
		return false
	}
	return !a.timed || a.countdown.Remaining() > 0
}

// Select chooses option i. It reports whether the selection was applied;
// a disallowed selection is a no-op.
func (a *Answer) Select(i int) bool {
	if !a.CanSelect() || i < 0 || i >= len(a.question.Options) {
		return false
	}
	a.selected = i
	return true
}

// SelectOption chooses the first option equal to text.
func (a *Answer) SelectOption(text string) bool {
	for i, opt := range a.question.Options {
		if opt == text {
			return a.Select(i)
		}
	}
	return false
}

// CanSubmit reports whether Submit would finalise the answer.
func (a *Answer) CanSubmit() bool {
	return a.selected != NoSelection && a.CanSelect()
}

// Submit finalises the current selection. It reports whether this call
// performed the answered transition.
func (a *Answer) Submit() bool {
	if !a.CanSubmit() {
		return false
	}
	return a.finalize(false)
}

// Tick advances the countdown for the tick tagged with id. When the
// countdown reaches zero the current selection, possibly none, is
// finalised.
func (a *Answer) Tick(id int) TickResult {
	if a.answered || !a.countdown.tick(id) {
		return TickIgnored
	}
	if a.countdown.Remaining() > 0 {
		return TickContinue
	}
	if a.finalize(true) {
		return TickExpired
	}
	return TickIgnored
}

// Stop releases the countdown without answering.
func (a *Answer) Stop() {
	a.countdown.Stop()
}

// finalize is the single guarded answered transition.
func (a *Answer) finalize(timedOut bool) bool {
	if a.answered {
		return false
	}
	a.answered = true
	a.timedOut = timedOut
	a.countdown.Stop()

	if opt, ok := a.SelectedOption(); ok {
		a.correct = opt == a.question.Answer
	}
	return true
}

// Feedback is what to show once a question is answered.
type Feedback struct {
	Headline string
	Correct  bool

	// CorrectAnswer is set when the final selection differs from the answer.
	CorrectAnswer string

	Explanation string
}

// Feedback headlines.
const (
	HeadlineCorrect   = "Correct!"
	HeadlineIncorrect = "Incorrect"
	HeadlineTimeUp    = "Time's Up!"
)

// Feedback returns the post-answer feedback, or false before answering.
func (a *Answer) Feedback() (Feedback, bool) {
	if !a.answered {
		return Feedback{}, false
	}

	fb := Feedback{Correct: a.correct, Explanation: a.question.Explanation}
	_, hasSelection := a.SelectedOption()
	switch {
	case a.timedOut && !hasSelection:
		fb.Headline = HeadlineTimeUp
	case a.correct:
		fb.Headline = HeadlineCorrect
	default:
		fb.Headline = HeadlineIncorrect
	}
	if !a.correct {
		fb.CorrectAnswer = a.question.Answer
	}
	return fb, true
}
