package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/aptiz/internal/question"
)

// IntentKind names a user intent.
type IntentKind string

const (
	IntentStart     IntentKind = "start"
	IntentSelect    IntentKind = "select"
	IntentSubmit    IntentKind = "submit"
	IntentNext      IntentKind = "next"
	IntentDashboard IntentKind = "dashboard"
)

// Intent is a user action sent to a Loop.
type Intent struct {
	Kind     IntentKind
	Category question.Category // IntentStart

	// Option selects by text for IntentSelect. Index is used when Option
	// is empty.
	Option string
	Index  int
}

// Ticker delivers one-second ticks. *time.Ticker satisfies it through
// NewTimeTicker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker returns a wall-clock one-second Ticker.
func NewTimeTicker() Ticker {
	return timeTicker{t: time.NewTicker(time.Second)}
}

// ErrLoopClosed is returned by Send after the loop has stopped.
var ErrLoopClosed = errors.New("quiz: loop closed")

// DefaultFetchTimeout bounds a single question fetch inside a Loop.
const DefaultFetchTimeout = 60 * time.Second

// LoopConfig configures a Loop.
type LoopConfig struct {
	Provider question.Provider

	// FetchTimeout bounds each fetch. Zero means DefaultFetchTimeout.
	FetchTimeout time.Duration

	// NewTicker creates the countdown ticker. Nil means NewTimeTicker.
	NewTicker func() Ticker
}

type fetchResult struct {
	generation uint64
	question   *question.Question
	err        error
}

// Loop drives one Session in real time for presentations that are not
// themselves event loops, such as a WebSocket connection. A single
// goroutine (Run) owns the session and serialises intents, fetch results
// and countdown ticks.
type Loop struct {
	session   *Session
	provider  question.Provider
	timeout   time.Duration
	newTicker func() Ticker

	intents chan Intent
	results chan fetchResult
	done    chan struct{}

	cancelFetch context.CancelFunc
}

// NewLoop creates a Loop with a fresh session on the dashboard.
func NewLoop(cfg LoopConfig) *Loop {
	l := &Loop{
		session:   NewSession(),
		provider:  cfg.Provider,
		timeout:   cfg.FetchTimeout,
		newTicker: cfg.NewTicker,
		intents:   make(chan Intent),
		results:   make(chan fetchResult),
		done:      make(chan struct{}),
	}
	if l.timeout <= 0 {
		l.timeout = DefaultFetchTimeout
	}
	if l.newTicker == nil {
		l.newTicker = NewTimeTicker
	}
	return l
}

// Send delivers an intent to the running loop.
func (l *Loop) Send(ctx context.Context, in Intent) error {
	select {
	case l.intents <- in:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes events until ctx is cancelled, calling publish with a
// snapshot initially and after every state change. publish runs on the
// loop goroutine. The countdown ticker and any outstanding fetch are
// released on return.
func (l *Loop) Run(ctx context.Context, publish func(Snapshot)) error {
	defer close(l.done)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		ticker Ticker
		tickC  <-chan time.Time
		tickID int
	)
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tickC, tickID = nil, nil, 0
		}
	}
	defer stopTicker()

	// syncTicker keeps exactly one ticker alive for the running countdown.
	syncTicker := func() {
		cd, ok := l.session.Countdown()
		if !ok {
			stopTicker()
			return
		}
		if ticker != nil && tickID == cd.ID() {
			return
		}
		stopTicker()
		ticker = l.newTicker()
		tickC = ticker.C()
		tickID = cd.ID()
	}

	publish(l.session.Snapshot())

	for {
		var changed bool
		select {
		case <-ctx.Done():
			l.stopFetch()
			return ctx.Err()
		case in := <-l.intents:
			changed = l.apply(ctx, in)
		case r := <-l.results:
			changed = l.session.Resolve(r.generation, r.question, r.err)
		case <-tickC:
			changed = l.session.Tick(tickID) != TickIgnored
		}
		syncTicker()
		if changed {
			publish(l.session.Snapshot())
		}
	}
}

func (l *Loop) apply(ctx context.Context, in Intent) bool {
	switch in.Kind {
	case IntentStart:
		f, err := l.session.StartQuiz(in.Category)
		if err != nil {
			return false
		}
		l.startFetch(ctx, f)
		return true
	case IntentSelect:
		if in.Option != "" {
			return l.session.SelectOption(in.Option)
		}
		return l.session.Select(in.Index)
	case IntentSubmit:
		return l.session.Submit()
	case IntentNext:
		f, ok := l.session.NextQuestion()
		if ok {
			l.startFetch(ctx, f)
		}
		return ok
	case IntentDashboard:
		l.stopFetch()
		l.session.GoToDashboard()
		return true
	}
	return false
}

// startFetch runs the fetch for f in its own goroutine, superseding any
// earlier one. The result is tagged with f's generation; Resolve drops it
// if the session has moved on.
func (l *Loop) startFetch(ctx context.Context, f Fetch) {
	l.stopFetch()

	fctx, cancel := context.WithTimeout(ctx, l.timeout)
	l.cancelFetch = cancel

	go func() {
		defer cancel()
		q, err := l.provider.Fetch(fctx, f.Category)
		select {
		case l.results <- fetchResult{generation: f.Generation, question: q, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (l *Loop) stopFetch() {
	if l.cancelFetch != nil {
		l.cancelFetch()
		l.cancelFetch = nil
	}
}
