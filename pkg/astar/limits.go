package astar

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

type Limits struct {
	Movetime time.Duration
	Cycles   uint32
	Infinite bool
	NThreads int
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultMovetimeLimit time.Duration = -1
	DefaultCyclesLimit   uint32        = math.MaxUint32
)

func DefaultLimits() *Limits {
	return &Limits{
		Movetime: DefaultMovetimeLimit,
		Cycles:   DefaultCyclesLimit,
		Infinite: true,
		NThreads: 1,
	}
}

// Set the number of descents (root to leaf refinements) of the search
func (l *Limits) SetCycles(descents uint32) *Limits {
	l.Cycles = descents
	l.Infinite = false
	return l
}

// Set the time budget of the search, the deadline is computed once when the search starts
func (l *Limits) SetMovetime(movetime time.Duration) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	return l
}

// Number of workers used by the concurrent strategies
func (l *Limits) SetThreads(threads int) *Limits {
	l.NThreads = max(threads, 1)
	return l
}
