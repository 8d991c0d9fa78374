package astar

import (
	"sync/atomic"
	"time"
)

// Counters shared by every worker of one search
type TreeStats struct {
	maxdepth         atomic.Int32
	cycles           atomic.Uint32
	expansions       atomic.Uint64
	casRetries       atomic.Uint64
	installConflicts atomic.Uint64
	claimConflicts   atomic.Uint64
	idleWorkers      atomic.Uint64
}

// Depth of the deepest node created so far, the root is at depth 0
func (ts *TreeStats) MaxDepth() int {
	return int(ts.maxdepth.Load())
}

// Number of finished descents in the current search
func (ts *TreeStats) Cycles() uint32 {
	return ts.cycles.Load()
}

func (ts *TreeStats) Expansions() uint64 {
	return ts.expansions.Load()
}

// Failed compare-and-swap attempts on packed scores (lock-free strategy)
func (ts *TreeStats) CASRetries() uint64 {
	return ts.casRetries.Load()
}

// Children built and thrown away because another worker installed one first (lock-free strategy)
func (ts *TreeStats) InstallConflicts() uint64 {
	return ts.installConflicts.Load()
}

// Claims of a root branch already held by another worker (root-locked strategy),
// zero unless the single-owner contract is broken
func (ts *TreeStats) ClaimConflicts() uint64 {
	return ts.claimConflicts.Load()
}

// Workers that found no root branch left to claim (root-locked strategy)
func (ts *TreeStats) IdleWorkers() uint64 {
	return ts.idleWorkers.Load()
}

// Descents per second
func (ts *TreeStats) Cps(elapsed time.Duration) uint32 {
	ms := max(elapsed.Milliseconds(), 1)
	return uint32(int64(ts.Cycles()) * 1000 / ms)
}

// Raise the max depth to 'depth', returns true if it increased
func (ts *TreeStats) updateDepth(depth int32) bool {
	for {
		current := ts.maxdepth.Load()
		if depth <= current {
			return false
		}
		if ts.maxdepth.CompareAndSwap(current, depth) {
			return true
		}
	}
}
