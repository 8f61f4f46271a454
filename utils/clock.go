package utils

import (
	"math/rand"
	"sync"
	"time"
)

// Clock abstracts time so delayed outcomes can be driven by tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// RandomSource abstracts the pseudo-random outcomes (upload progress, success).
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

type systemClock struct{}

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// lockedRand is a math/rand source that is safe for concurrent use.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource returns a concurrency-safe random source seeded with seed.
func NewRandomSource(seed int64) RandomSource {
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

// InstantClock fires every timer immediately and reports a fixed time.
type InstantClock struct {
	At time.Time
}

func (c InstantClock) Now() time.Time { return c.At }

func (c InstantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.At
	return ch
}

// FixedRandom always returns the same values.
type FixedRandom struct {
	Float float64
	Int   int
}

func (r FixedRandom) Float64() float64 { return r.Float }

func (r FixedRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if r.Int >= n {
		return n - 1
	}
	return r.Int
}
