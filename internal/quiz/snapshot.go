package quiz

import "github.com/abhisek/aptiz/internal/question"

// Snapshot is an immutable copy of session and answer state, enough to
// render any screen. The correct answer and explanation are only included
// once the question is answered.
type Snapshot struct {
	Status      Status            `json:"status"`
	Category    question.Category `json:"category,omitempty"`
	Question    *QuestionView     `json:"question,omitempty"`
	Answer      *AnswerView       `json:"answer,omitempty"`
	LoadingNext bool              `json:"loadingNext"`
	Error       string            `json:"error,omitempty"`
	Score       Score             `json:"score"`
}

// QuestionView is the displayable part of a question.
type QuestionView struct {
	Prompt  string                    `json:"prompt"`
	Options []string                  `json:"options"`
	Chart   *question.ChartDescriptor `json:"chart,omitempty"`
}

// AnswerView is the interaction state of the displayed question.
type AnswerView struct {
	Selected  int  `json:"selected"`
	Answered  bool `json:"answered"`
	CanSubmit bool `json:"canSubmit"`

	// Remaining is only set for timed questions.
	Remaining *int `json:"remaining,omitempty"`

	Feedback *FeedbackView `json:"feedback,omitempty"`
}

// FeedbackView is the post-answer feedback.
type FeedbackView struct {
	Headline      string `json:"headline"`
	Correct       bool   `json:"correct"`
	TimedOut      bool   `json:"timedOut"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
	Explanation   string `json:"explanation"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Status:      s.status,
		Category:    s.category,
		LoadingNext: s.LoadingNext(),
		Error:       s.errMsg,
		Score:       s.score,
	}
	if s.answer == nil {
		return snap
	}

	q := s.answer.Question()
	view := &QuestionView{
		Prompt:  q.Prompt,
		Options: append([]string(nil), q.Options...),
	}
	if q.Chart != nil {
		chart := *q.Chart
		chart.Points = append([]question.Point(nil), q.Chart.Points...)
		view.Chart = &chart
	}
	snap.Question = view

	av := &AnswerView{
		Selected:  s.answer.Selected(),
		Answered:  s.answer.Answered(),
		CanSubmit: s.status == StatusActive && s.answer.CanSubmit(),
	}
	if rem, ok := s.answer.Remaining(); ok {
		av.Remaining = &rem
	}
	if fb, ok := s.answer.Feedback(); ok {
		av.Feedback = &FeedbackView{
			Headline:      fb.Headline,
			Correct:       fb.Correct,
			TimedOut:      s.answer.TimedOut(),
			CorrectAnswer: fb.CorrectAnswer,
			Explanation:   fb.Explanation,
		}
	}
	snap.Answer = av
	return snap
}
