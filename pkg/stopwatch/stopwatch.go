package stopwatch

import (
	"fmt"
	"time"
)

// Stopwatch accumulates elapsed time across start/pause cycles.
// Callers pass the current time so the UI tick and tests share one clock.
type Stopwatch struct {
	running bool
	started time.Time     // start of the current run
	elapsed time.Duration // accumulated before the current run
	laps    []time.Duration
}

// New returns a stopped stopwatch at zero
func New() *Stopwatch {
	return &Stopwatch{}
}

// Start begins or continues timing. No-op if already running.
func (s *Stopwatch) Start(now time.Time) {
	if s.running {
		return
	}
	s.running = true
	s.started = now
}

// Pause freezes the elapsed time
func (s *Stopwatch) Pause(now time.Time) {
	if !s.running {
		return
	}
	s.elapsed += now.Sub(s.started)
	s.running = false
}

// Reset stops the stopwatch and clears elapsed time and laps
func (s *Stopwatch) Reset() {
	*s = Stopwatch{}
}

// Lap records the elapsed time at now and returns it
func (s *Stopwatch) Lap(now time.Time) time.Duration {
	lap := s.Elapsed(now)
	s.laps = append(s.laps, lap)
	return lap
}

// Laps returns the recorded laps, oldest first
func (s *Stopwatch) Laps() []time.Duration {
	return append([]time.Duration(nil), s.laps...)
}

// Running reports whether the stopwatch is timing
func (s *Stopwatch) Running() bool {
	return s.running
}

// Elapsed returns the total time measured up to now
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if !s.running {
		return s.elapsed
	}
	return s.elapsed + max(0, now.Sub(s.started))
}

// Format renders d as "HH:MM:SS.cc"
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	centis := d.Milliseconds() / 10
	return fmt.Sprintf("%02d:%02d:%02d.%02d",
		centis/360000,
		centis/6000%60,
		centis/100%60,
		centis%100,
	)
}
