// Package roll provides the injectable randomness used when a calculated
// distribution has to be turned into a single sampled outcome.
package roll

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// Source is the randomness provider for outcome sampling.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() float64
}

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Float64 is in [0, 1).
func NewCryptoSource() Source {
	return cryptoSource{}
}

// Float64 reads 53 random bits and scales them into [0, 1).
//
// Panics with "roll: crypto/rand failure: <err>" if crypto/rand fails.
func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		panic("roll: crypto/rand failure: " + err.Error())
	}
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// seededSource is a reproducible PCG-backed Source.
type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeeded returns a reproducible Source; two sources built from the same
// seed yield the same sequence.
func NewSeeded(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

// Float64 returns the next value of the seeded sequence.
func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// Fixed is a Source that replays Values in order, wrapping around at the end.
// It exists so callers can force a deterministic sequence of outcomes.
//
// Precondition: Values must be non-empty and each value must be in [0, 1).
type Fixed struct {
	Values []float64

	mu   sync.Mutex
	next int
}

// Float64 returns the next configured value.
func (f *Fixed) Float64() float64 {
	if len(f.Values) == 0 {
		panic("roll: Fixed source has no values")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.Values[f.next%len(f.Values)]
	f.next++
	return v
}
