package util

import "time"

// Stopwatch measures on the monotonic clock reading carried by time.Time.
type Stopwatch struct {
	start   time.Time
	elapsed time.Duration
	running bool
}

func NewStopwatch() *Stopwatch {
	return &Stopwatch{}
}

func (s *Stopwatch) Start() {
	s.start = time.Now()
	s.elapsed = 0
	s.running = true
}

func (s *Stopwatch) Stop() time.Duration {
	if s.running {
		s.elapsed = time.Since(s.start)
		s.running = false
	}
	return s.elapsed
}

func (s *Stopwatch) Elapsed() time.Duration {
	if s.running {
		return time.Since(s.start)
	}
	return s.elapsed
}
