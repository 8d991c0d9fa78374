package astar

import (
	"fmt"
	"strings"
	"time"
)

// Main worker id, the only one allowed to call the listener during a concurrent search
const mainWorkerId = 0

type SeedGeneratorFnType func() int64

var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// Set custom seed generator function for the tie-break random number generators,
// by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

type Strategy int

const (
	// One goroutine refining a plain mutable tree
	StrategySequential Strategy = iota

	// Workers claim root branches under a single lock, then refine the claimed
	// subtree without holding it. Limits.NThreads workers are spawned.
	StrategyRootLocked

	// Workers share the whole tree: every branch keeps its scores in one
	// atomic word and its child in an atomically installed slot.
	StrategyLockFree
)

func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return "sequential"
	case StrategyRootLocked:
		return "rootlocked"
	case StrategyLockFree:
		return "lockfree"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential", "seq", "":
		return StrategySequential, nil
	case "rootlocked", "root-locked", "locked":
		return StrategyRootLocked, nil
	case "lockfree", "lock-free":
		return StrategyLockFree, nil
	}
	return StrategySequential, fmt.Errorf("unknown search strategy %q", s)
}
