package controller

import "time"

// Stopwatch is a start/stop elapsed counter. Stopping freezes the displayed
// value; starting again counts from the new start instant rather than
// accumulating across toggle cycles.
type Stopwatch struct {
	running bool
	start   time.Time
	frozen  int // whole seconds shown while stopped
}

// Toggle flips between running and stopped at the given instant.
func (s *Stopwatch) Toggle(now time.Time) {
	if s.running {
		s.frozen = s.Elapsed(now)
		s.running = false
		s.start = time.Time{}
		return
	}
	s.running = true
	s.start = now
}

// Elapsed returns whole elapsed seconds, floored. While stopped it returns
// the value frozen at the last stop (0 if never started).
func (s *Stopwatch) Elapsed(now time.Time) int {
	if !s.running {
		return s.frozen
	}
	d := now.Sub(s.start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

func (s *Stopwatch) Running() bool { return s.running }
