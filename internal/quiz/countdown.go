package quiz

// TimeLimit is the number of seconds a timed question runs for.
const TimeLimit = 90

// TickResult reports what a countdown tick did.
type TickResult int

const (
	// TickIgnored means the tick belonged to a stopped or superseded
	// countdown. The caller must not schedule another tick.
	TickIgnored TickResult = iota

	// TickContinue means time was decremented and the countdown is still
	// running. The caller schedules the next tick.
	TickContinue

	// TickExpired means the countdown reached zero and the answer was
	// finalised. The caller must not schedule another tick.
	TickExpired
)

// Countdown is a per-question one-second timer handle. Ticks carry the
// handle's ID so a tick scheduled for an earlier question cannot affect a
// later one. Once stopped a countdown never runs again.
type Countdown struct {
	id        int
	remaining int
	running   bool
}

func newCountdown(id, seconds int) Countdown {
	return Countdown{id: id, remaining: seconds, running: seconds > 0}
}

// ID identifies this countdown instance.
func (c *Countdown) ID() int { return c.id }

// Remaining is the number of whole seconds left.
func (c *Countdown) Remaining() int { return c.remaining }

// Running reports whether further ticks will be honoured.
func (c *Countdown) Running() bool { return c.running }

// Stop releases the countdown. Later ticks are ignored.
func (c *Countdown) Stop() { c.running = false }

// tick decrements the countdown if id matches and it is running. It
// reports whether the tick was accepted.
func (c *Countdown) tick(id int) bool {
	if !c.running || id != c.id {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.running = false
	}
	return true
}
