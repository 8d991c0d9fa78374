package astar

import "time"

type ListenerTreeStats[M any] struct {
	MaxDepth   int
	Cycles     int
	Expansions int
	Elapsed    time.Duration
	Cps        uint32
	BestMove   M
	BestScores ScorePair
	StopReason StopReason
}

func toListenerStats[P any, M any](stats *TreeStats, limiter LimiterLike, view TreeView[P, M]) ListenerTreeStats[M] {
	elapsed := limiter.Elapsed()
	result := ListenerTreeStats[M]{
		MaxDepth:   stats.MaxDepth(),
		Cycles:     int(stats.Cycles()),
		Expansions: int(stats.Expansions()),
		Elapsed:    elapsed,
		Cps:        stats.Cps(elapsed),
		StopReason: limiter.StopReason(),
	}
	if i, ok := view.Best(); ok {
		result.BestMove = view.Move(i)
		result.BestScores = view.Scores(i)
	}
	return result
}

// Listener function callback, will receive current tree statistics, like
// max depth of tree, number of descents so far
type ListenerFunc[M any] func(ListenerTreeStats[M])

type StatsListener[M any] struct {
	// called when 'max depth' increases
	onDepth ListenerFunc[M]

	// called every N descents
	onCycle ListenerFunc[M]
	nCycles int

	// called once when the search stops
	onStop ListenerFunc[M]
}

func NewStatsListener[M any]() StatsListener[M] {
	return StatsListener[M]{nCycles: 1}
}

// Attach new on max depth change callback. Called only by the main search
// goroutine, and not at all by the root-locked strategy, whose root can't be
// read while workers run.
func (listener *StatsListener[M]) OnDepth(onDepth ListenerFunc[M]) *StatsListener[M] {
	listener.onDepth = onDepth
	return listener
}

// Attach new on descent callback, same calling rules as OnDepth
func (listener *StatsListener[M]) OnCycle(onCycle ListenerFunc[M]) *StatsListener[M] {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener[M]) SetCycleInterval(n int) *StatsListener[M] {
	listener.nCycles = max(n, 1)
	return listener
}

// Attach 'on search end' callback, called once after every worker has
// finished, makes 'StopReason' available in the stats
func (listener *StatsListener[M]) OnStop(onStop ListenerFunc[M]) *StatsListener[M] {
	listener.onStop = onStop
	return listener
}

func invokeDepth[P any, M any](listener *StatsListener[M], stats *TreeStats, limiter LimiterLike, view TreeView[P, M]) {
	if listener.onDepth != nil {
		listener.onDepth(toListenerStats(stats, limiter, view))
	}
}

func invokeCycle[P any, M any](listener *StatsListener[M], stats *TreeStats, limiter LimiterLike, view TreeView[P, M]) {
	if listener.onCycle != nil && int(stats.Cycles())%max(listener.nCycles, 1) == 0 {
		listener.onCycle(toListenerStats(stats, limiter, view))
	}
}

func invokeStop[P any, M any](listener *StatsListener[M], stats *TreeStats, limiter LimiterLike, view TreeView[P, M]) {
	if listener.onStop != nil {
		listener.onStop(toListenerStats(stats, limiter, view))
	}
}
