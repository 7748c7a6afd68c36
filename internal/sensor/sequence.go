package sensor

import "sync"

// Sequence replays fixed values in order and wraps around when exhausted.
// Float64 and NormFloat64 share one cursor; IntN maps the value into [0, n).
// An empty Sequence always yields zero.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequence builds a deterministic source for tests and demos.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: append([]float64(nil), values...)}
}

func (s *Sequence) take() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *Sequence) Float64() float64 {
	return s.take()
}

func (s *Sequence) NormFloat64() float64 {
	return s.take()
}

// IntN truncates the next value; values are expected to already be integers
// in range, anything else is clamped.
func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(s.take())
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Draws returns how many values have been consumed.
func (s *Sequence) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
