package sensor

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source produces the random draws that stand in for sensor readings.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// NormFloat64 returns a standard normal value.
	NormFloat64() float64
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// Pass reports whether a uniform draw lands above threshold.
// A threshold of 0.3 gives a 70% pass rate.
func Pass(src Source, threshold float64) bool {
	return src.Float64() > threshold
}

// Uniform returns a uniform value in [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

type seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a reproducible source.
func NewSeeded(seed uint64) Source {
	return &seeded{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandom returns a source seeded from the wall clock.
func NewRandom() Source {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

func (s *seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *seeded) NormFloat64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.NormFloat64()
}

func (s *seeded) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
