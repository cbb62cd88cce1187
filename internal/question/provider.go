package question

import (
	"context"
	"errors"
	"sync"
)

// Provider produces one validated question per call. A returned error is
// an opaque failure; callers must not show it to users verbatim.
type Provider interface {
	Fetch(ctx context.Context, category Category) (*Question, error)
}

// ErrStubExhausted is returned by StubProvider when it has nothing queued.
var ErrStubExhausted = errors.New("question: stub has no queued results")

// StubResult is a queued StubProvider outcome.
type StubResult struct {
	Question *Question
	Err      error
}

// StubProvider returns queued results in FIFO order without calling a
// model. Queued questions are run through the default validators, so a
// malformed stub question fails the same way a malformed model response
// would.
type StubProvider struct {
	mu      sync.Mutex
	results []StubResult
	calls   []Category

	// Gate, when set, blocks each Fetch until a value is received or the
	// context ends.
	Gate chan struct{}
}

// NewStubProvider creates a StubProvider with the given results queued.
func NewStubProvider(results ...StubResult) *StubProvider {
	return &StubProvider{results: results}
}

// Push appends a question to the queue.
func (s *StubProvider) Push(q Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, StubResult{Question: &q})
}

// PushErr appends a failure to the queue.
func (s *StubProvider) PushErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, StubResult{Err: err})
}

// Calls returns the categories requested so far.
func (s *StubProvider) Calls() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Category(nil), s.calls...)
}

func (s *StubProvider) Fetch(ctx context.Context, category Category) (*Question, error) {
	s.mu.Lock()
	s.calls = append(s.calls, category)
	gate := s.Gate
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	if len(s.results) == 0 {
		s.mu.Unlock()
		return nil, ErrStubExhausted
	}
	r := s.results[0]
	s.results = s.results[1:]
	s.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	q := *r.Question
	q.Options = append([]string(nil), r.Question.Options...)
	q.Category = category
	if err := Validate(&q, DefaultValidators()...); err != nil {
		return nil, err
	}
	return &q, nil
}
