package fairheap

import (
	"math/rand/v2"
	"sync"
)

// Source of the tie-break randomness, *rand.Rand from math/rand/v2 satisfies it
type Rand interface {
	IntN(n int) int
}

// Reproducible generator for a given seed. Not safe for concurrent use.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

type lockedRand struct {
	mu  sync.Mutex
	rng Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}

// Guard 'r' with a mutex, so that heaps owned by different goroutines can share it
func Locked(r Rand) Rand {
	return &lockedRand{rng: r}
}

type sharedRand struct{}

func (sharedRand) IntN(n int) int { return rand.IntN(n) }

// Goroutine-safe generator seeded by the runtime (not reproducible)
func Shared() Rand {
	return sharedRand{}
}
