package countdown

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// State is the phase of a countdown
type State int

const (
	Idle State = iota
	Running
	Paused
	Expired
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Expired:
		return "expired"
	default:
		return "idle"
	}
}

// Timer counts a duration down to zero.
type Timer struct {
	state     State
	total     time.Duration
	remaining time.Duration // as of resumedAt while running
	resumedAt time.Time
}

// New returns an idle timer
func New() *Timer {
	return &Timer{}
}

// Start begins counting down d from now, replacing any previous run
func (t *Timer) Start(d time.Duration, now time.Time) error {
	if d <= 0 {
		return fmt.Errorf("countdown duration must be positive, got %s", d)
	}
	t.state = Running
	t.total = d
	t.remaining = d
	t.resumedAt = now
	return nil
}

// Pause freezes the remaining time
func (t *Timer) Pause(now time.Time) {
	if t.state != Running {
		return
	}
	t.remaining = t.Remaining(now)
	t.state = Paused
}

// Resume continues a paused countdown
func (t *Timer) Resume(now time.Time) {
	if t.state != Paused {
		return
	}
	t.resumedAt = now
	t.state = Running
}

// Reset returns the timer to idle
func (t *Timer) Reset() {
	*t = Timer{}
}

// State returns the current phase
func (t *Timer) State() State {
	return t.state
}

// Total returns the duration of the current run
func (t *Timer) Total() time.Duration {
	return t.total
}

// Remaining returns the time left at now, never negative
func (t *Timer) Remaining(now time.Time) time.Duration {
	switch t.state {
	case Running:
		return max(0, t.remaining-now.Sub(t.resumedAt))
	case Paused:
		return t.remaining
	default:
		return 0
	}
}

// Update advances the timer to now. It returns true exactly once, on the
// call where the countdown reaches zero.
func (t *Timer) Update(now time.Time) bool {
	if t.state != Running || t.Remaining(now) > 0 {
		return false
	}
	t.state = Expired
	t.remaining = 0
	return true
}

// Format renders d as "MM:SS", rounding partial seconds up so a running
// timer never shows 00:00 before it expires
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// ParseMinutes parses a positive, possibly fractional, number of minutes ("1", "0.5")
func ParseMinutes(s string) (time.Duration, error) {
	minutes, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes %q: %w", s, err)
	}
	d := time.Duration(minutes * float64(time.Minute)).Round(time.Second)
	if d <= 0 {
		return 0, fmt.Errorf("minutes must be positive, got %q", s)
	}
	return d, nil
}
