package quiz

import (
	"errors"
	"testing"

	"github.com/abhisek/aptiz/internal/question"
)

func start(t *testing.T, s *Session, c question.Category) Fetch {
	t.Helper()
	f, err := s.StartQuiz(c)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	return f
}

func activate(t *testing.T, s *Session, c question.Category) {
	t.Helper()
	f := start(t, s, c)
	if !s.Resolve(f.Generation, testQuestion(c), nil) {
		t.Fatal("expected Resolve to apply")
	}
}

func checkScoreInvariant(t *testing.T, s *Session) {
	t.Helper()
	sc := s.Score()
	if sc.Correct < 0 || sc.Total < 0 || sc.Correct > sc.Total {
		t.Fatalf("score invariant violated: %+v", sc)
	}
}

func TestSession_StartsOnDashboard(t *testing.T) {
	s := NewSession()
	if s.Status() != StatusDashboard || s.Question() != nil || s.Score() != (Score{}) {
		t.Fatalf("unexpected initial state: %+v", s.Snapshot())
	}
}

func TestSession_StartQuizLoads(t *testing.T) {
	s := NewSession()
	f := start(t, s, question.Verbal)

	if s.Status() != StatusLoading {
		t.Fatalf("expected loading, got %v", s.Status())
	}
	if f.Category != question.Verbal || s.Category() != question.Verbal {
		t.Fatalf("unexpected category: fetch=%v session=%v", f.Category, s.Category())
	}
	if s.LoadingNext() {
		t.Fatal("first load is not a next-question load")
	}
}

func TestSession_StartQuizRejectsUnknownCategory(t *testing.T) {
	s := NewSession()
	_, err := s.StartQuiz(question.Category(0))
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if s.Status() != StatusDashboard {
		t.Fatalf("expected dashboard, got %v", s.Status())
	}
}

func TestSession_ScoreResetsOnEveryStart(t *testing.T) {
	s := NewSession()
	for _, c := range []question.Category{question.Logical, question.Numerical, question.Logical} {
		activate(t, s, c)
		s.Select(1)
		s.Submit()
		if s.Score() != (Score{1, 1}) {
			t.Fatalf("expected (1,1), got %+v", s.Score())
		}

		start(t, s, c)
		if s.Score() != (Score{}) {
			t.Fatalf("score not reset on start: %+v", s.Score())
		}
		s.GoToDashboard()
	}
}

func TestSession_FetchFailureShowsGenericError(t *testing.T) {
	s := NewSession()
	f := start(t, s, question.CaseStudy)

	s.Resolve(f.Generation, nil, errors.New("upstream 503: secret detail"))
	if s.Status() != StatusError {
		t.Fatalf("expected error status, got %v", s.Status())
	}
	if s.Error() != ErrorMessage {
		t.Fatalf("raw cause leaked: %q", s.Error())
	}
	if s.Question() != nil {
		t.Fatal("no question may be shown on error")
	}

	s.GoToDashboard()
	if s.Status() != StatusDashboard || s.Error() != "" || s.Category() != 0 {
		t.Fatalf("dashboard not clean: %+v", s.Snapshot())
	}
}

func TestSession_NilQuestionIsFailure(t *testing.T) {
	s := NewSession()
	f := start(t, s, question.Logical)
	s.Resolve(f.Generation, nil, nil)
	if s.Status() != StatusError {
		t.Fatalf("expected error status, got %v", s.Status())
	}
}

func TestSession_ThreeOptionsSurfacesError(t *testing.T) {
	stub := question.NewStubProvider()
	stub.Push(question.Question{Prompt: "P", Options: []string{"A", "B", "C"}, Answer: "B", Explanation: "E"})

	s := NewSession()
	f := start(t, s, question.Numerical)
	q, err := stub.Fetch(t.Context(), f.Category)
	s.Resolve(f.Generation, q, err)

	if s.Status() != StatusError {
		t.Fatalf("expected error status, got %v", s.Status())
	}
	if s.Snapshot().Question != nil {
		t.Fatal("malformed question must not be rendered")
	}
}

func TestSession_ResolveRejectsMalformedQuestion(t *testing.T) {
	tests := []struct {
		name string
		q    *question.Question
	}{
		{"three options", &question.Question{Prompt: "P", Options: []string{"A", "B", "C"}, Answer: "B"}},
		{"answer not an option", &question.Question{Prompt: "P", Options: []string{"A", "B", "C", "D"}, Answer: "Z"}},
		{"empty prompt", &question.Question{Options: []string{"A", "B", "C", "D"}, Answer: "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			f := start(t, s, question.Logical)

			if !s.Resolve(f.Generation, tt.q, nil) {
				t.Fatal("expected Resolve to apply")
			}
			if s.Status() != StatusError || s.Error() != ErrorMessage {
				t.Fatalf("expected generic error, got %v %q", s.Status(), s.Error())
			}
			if s.Question() != nil || s.Snapshot().Question != nil {
				t.Fatal("malformed question must not be rendered")
			}
			checkScoreInvariant(t, s)
		})
	}
}

func TestSession_ResolveStampsRequestedCategory(t *testing.T) {
	s := NewSession()
	f := start(t, s, question.Verbal)
	q := testQuestion(question.Numerical)

	s.Resolve(f.Generation, q, nil)
	if s.Status() != StatusActive {
		t.Fatalf("expected active, got %v", s.Status())
	}
	if got := s.Question().Category; got != question.Verbal {
		t.Fatalf("expected requested category, got %v", got)
	}
	if _, timed := s.Countdown(); timed {
		t.Fatal("a verbal question must not count down")
	}
}

func TestSession_NumericalCorrectScenario(t *testing.T) {
	s := NewSession()
	activate(t, s, question.Numerical)

	if !s.SelectOption("B") {
		t.Fatal("expected selection")
	}
	if !s.Submit() {
		t.Fatal("expected submit")
	}

	a := s.Answer()
	if !a.Answered() || !a.Correct() {
		t.Fatalf("expected answered and correct, got answered=%v correct=%v", a.Answered(), a.Correct())
	}
	if s.Score() != (Score{1, 1}) {
		t.Fatalf("expected (1,1), got %+v", s.Score())
	}
	if _, ok := s.Countdown(); ok {
		t.Fatal("countdown must stop once answered")
	}
}

func TestSession_NumericalTimeoutScenario(t *testing.T) {
	s := NewSession()
	activate(t, s, question.Numerical)

	cd, ok := s.Countdown()
	if !ok {
		t.Fatal("expected a running countdown")
	}
	id := cd.ID()
	for range TimeLimit {
		s.Tick(id)
		checkScoreInvariant(t, s)
	}

	a := s.Answer()
	if !a.Answered() || a.Selected() != NoSelection || a.Correct() {
		t.Fatalf("unexpected answer: answered=%v selected=%d correct=%v", a.Answered(), a.Selected(), a.Correct())
	}
	if s.Score() != (Score{0, 1}) {
		t.Fatalf("expected (0,1), got %+v", s.Score())
	}
	if _, ok := s.Countdown(); ok {
		t.Fatal("countdown must stop on timeout")
	}
	if s.Tick(id) != TickIgnored {
		t.Fatal("no tick may be honoured after timeout")
	}
}

func TestSession_TimeoutAndSubmitSameTick(t *testing.T) {
	orders := map[string]func(s *Session, id int){
		"submit then tick": func(s *Session, id int) { s.Submit(); s.Tick(id) },
		"tick then submit": func(s *Session, id int) { s.Tick(id); s.Submit() },
	}
	for name, race := range orders {
		t.Run(name, func(t *testing.T) {
			s := NewSession()
			activate(t, s, question.Numerical)
			cd, _ := s.Countdown()
			id := cd.ID()

			s.Select(1)
			for range TimeLimit - 1 {
				s.Tick(id)
			}
			race(s, id)

			if s.Score().Total != 1 {
				t.Fatalf("expected exactly one increment, got %+v", s.Score())
			}
			checkScoreInvariant(t, s)
		})
	}
}

func TestSession_NonNumericalNeverCountsDown(t *testing.T) {
	for _, c := range []question.Category{question.Logical, question.Verbal, question.CaseStudy} {
		s := NewSession()
		activate(t, s, c)
		if _, ok := s.Countdown(); ok {
			t.Fatalf("%v must not run a countdown", c)
		}
		if s.Snapshot().Answer.Remaining != nil {
			t.Fatalf("%v must not display a timer", c)
		}
		for id := 0; id < 5; id++ {
			if s.Tick(id) != TickIgnored {
				t.Fatalf("%v: tick %d honoured", c, id)
			}
		}
	}
}

func TestSession_DashboardDiscardsLateResult(t *testing.T) {
	s := NewSession()
	f := start(t, s, question.Logical)
	s.GoToDashboard()

	if s.Resolve(f.Generation, testQuestion(question.Logical), nil) {
		t.Fatal("late result must be discarded")
	}
	if s.Status() != StatusDashboard || s.Question() != nil {
		t.Fatalf("late result changed state: %+v", s.Snapshot())
	}
}

func TestSession_RestartDiscardsEarlierFetch(t *testing.T) {
	s := NewSession()
	first := start(t, s, question.Logical)
	second := start(t, s, question.Verbal)

	if s.Resolve(first.Generation, testQuestion(question.Logical), nil) {
		t.Fatal("superseded fetch must be discarded")
	}
	if !s.Resolve(second.Generation, testQuestion(question.Verbal), nil) {
		t.Fatal("current fetch must apply")
	}
	if s.Question().Category != question.Verbal {
		t.Fatalf("expected verbal question, got %v", s.Question().Category)
	}
}

func TestSession_DuplicateResolveIgnored(t *testing.T) {
	s := NewSession()
	f := start(t, s, question.Logical)
	s.Resolve(f.Generation, testQuestion(question.Logical), nil)
	s.Select(1)

	if s.Resolve(f.Generation, testQuestion(question.Logical), nil) {
		t.Fatal("a second resolution must not replace the active question")
	}
	if s.Answer().Selected() != 1 {
		t.Fatal("answer state was reset")
	}
}

func TestSession_NextQuestionKeepsPreviousDisplayed(t *testing.T) {
	s := NewSession()
	activate(t, s, question.Logical)

	if _, ok := s.NextQuestion(); ok {
		t.Fatal("next must require an answered question")
	}

	s.Select(0)
	s.Submit()
	prev := s.Question()

	f, ok := s.NextQuestion()
	if !ok {
		t.Fatal("expected next fetch")
	}
	if s.Status() != StatusLoading || !s.LoadingNext() {
		t.Fatalf("expected loading-next, got %v", s.Status())
	}
	if s.Question() != prev {
		t.Fatal("previous question must stay displayed while loading")
	}
	if _, ok := s.NextQuestion(); ok {
		t.Fatal("only one next fetch at a time")
	}

	next := testQuestion(question.Logical)
	next.Prompt = "P2"
	s.Resolve(f.Generation, next, nil)
	if s.Question().Prompt != "P2" || s.Answer().Answered() || s.Answer().Selected() != NoSelection {
		t.Fatal("expected a fresh answer state for the new question")
	}
	if s.Score() != (Score{0, 1}) || s.Category() != question.Logical {
		t.Fatalf("score/category must be kept: %+v %v", s.Score(), s.Category())
	}
}

func TestSession_NewQuestionGetsNewCountdown(t *testing.T) {
	s := NewSession()
	activate(t, s, question.Numerical)
	cd, _ := s.Countdown()
	oldID := cd.ID()

	s.Select(1)
	s.Submit()
	f, _ := s.NextQuestion()
	s.Resolve(f.Generation, testQuestion(question.Numerical), nil)

	cd, ok := s.Countdown()
	if !ok || cd.ID() == oldID {
		t.Fatal("expected a new countdown identity")
	}
	if s.Tick(oldID) != TickIgnored {
		t.Fatal("tick from the previous question must be ignored")
	}
	if cd.Remaining() != TimeLimit {
		t.Fatalf("remaining = %d", cd.Remaining())
	}
}

func TestSession_DashboardStopsCountdown(t *testing.T) {
	s := NewSession()
	activate(t, s, question.Numerical)
	cd, _ := s.Countdown()
	answer := s.Answer()

	s.GoToDashboard()
	if answer.Countdown().Running() {
		t.Fatal("countdown must stop on dashboard")
	}
	if s.Tick(cd.ID()) != TickIgnored {
		t.Fatal("tick after dashboard must be ignored")
	}
	if s.Score() != (Score{}) {
		t.Fatal("score must reset on dashboard")
	}
}

func TestSession_IntentsIgnoredOutsideActive(t *testing.T) {
	s := NewSession()
	if s.Select(0) || s.Submit() {
		t.Fatal("intents on dashboard must be no-ops")
	}
	start(t, s, question.Logical)
	if s.Select(0) || s.Submit() {
		t.Fatal("intents while loading must be no-ops")
	}
}

func TestSession_ScoreInvariantAcrossMixedEvents(t *testing.T) {
	s := NewSession()
	activate(t, s, question.Numerical)
	for round := 0; round < 6; round++ {
		switch round % 3 {
		case 0:
			s.Select(1)
			s.Submit()
		case 1:
			s.Select(2)
			s.Submit()
			s.Submit()
		case 2:
			cd, _ := s.Countdown()
			for range TimeLimit + 3 {
				s.Tick(cd.ID())
			}
		}
		checkScoreInvariant(t, s)
		f, ok := s.NextQuestion()
		if !ok {
			t.Fatalf("round %d: next refused", round)
		}
		s.Resolve(f.Generation, testQuestion(question.Numerical), nil)
	}
	if s.Score() != (Score{2, 6}) {
		t.Fatalf("expected (2,6), got %+v", s.Score())
	}
}

func TestSnapshot_HidesAnswerUntilAnswered(t *testing.T) {
	s := NewSession()
	activate(t, s, question.Numerical)

	snap := s.Snapshot()
	if snap.Status != StatusActive || snap.Question == nil || snap.Answer == nil {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Answer.Feedback != nil {
		t.Fatal("feedback must be hidden before answering")
	}
	if snap.Answer.Remaining == nil || *snap.Answer.Remaining != TimeLimit {
		t.Fatal("expected remaining time for numerical question")
	}

	s.Select(0)
	s.Submit()
	fb := s.Snapshot().Answer.Feedback
	if fb == nil || fb.Correct || fb.CorrectAnswer != "B" || fb.Explanation != "E" {
		t.Fatalf("unexpected feedback: %+v", fb)
	}
}
