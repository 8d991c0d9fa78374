package astar

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/IlikeChooros/go-astar/pkg/logging"
	"github.com/IlikeChooros/go-astar/pkg/metrics"
)

var ErrNoMoves = errors.New("astar: no legal moves in position")

// Anything able to choose a move in a position
type Player[P any, M any] interface {
	PickMove(ctx context.Context, pos P) (M, error)
}

// Outcome of one search episode. The tree is dropped with the result, nothing
// is carried over to the next search.
type Result[P any, M any] struct {
	ID         uuid.UUID
	Move       M
	View       TreeView[P, M]
	Stats      Statistics
	StopReason StopReason
	Elapsed    time.Duration
}

// Engine runs one fresh search per position, with the configured strategy
type Engine[P any, M any] struct {
	rules    Rules[P, M]
	eval     Evaluator[P]
	strategy Strategy
	limits   *Limits
	listener StatsListener[M]
	logger   *logging.Logger
	metrics  *metrics.Search
}

func NewEngine[P any, M any](rules Rules[P, M], eval Evaluator[P], strategy Strategy) *Engine[P, M] {
	return &Engine[P, M]{
		rules:    rules,
		eval:     eval,
		strategy: strategy,
		limits:   DefaultLimits().SetMovetime(time.Second),
		listener: NewStatsListener[M](),
		logger:   logging.Nop(),
	}
}

func (e *Engine[P, M]) Strategy() Strategy {
	return e.strategy
}

func (e *Engine[P, M]) Limits() *Limits {
	return e.limits
}

func (e *Engine[P, M]) SetLimits(limits *Limits) *Engine[P, M] {
	e.limits = limits
	return e
}

func (e *Engine[P, M]) SetLogger(logger *logging.Logger) *Engine[P, M] {
	if logger != nil {
		e.logger = logger
	}
	return e
}

func (e *Engine[P, M]) SetMetrics(m *metrics.Search) *Engine[P, M] {
	e.metrics = m
	return e
}

func (e *Engine[P, M]) SetListener(listener StatsListener[M]) *Engine[P, M] {
	e.listener = listener
	return e
}

// Build a tree for 'pos' and search it until the limits are reached
func (e *Engine[P, M]) Search(ctx context.Context, pos P) (*Result[P, M], error) {
	if e.rules.IsTerminal(pos) || len(e.rules.LegalMoves(pos)) == 0 {
		return nil, ErrNoMoves
	}

	id := uuid.New()
	log := e.logger.With("search_id", id.String())
	limits := *e.limits
	switch {
	case e.strategy == StrategySequential:
		limits.NThreads = 1
	case e.strategy == StrategyRootLocked && limits.NThreads <= 1:
		// one worker would run the sequential loop under a rootlocked label
		limits.NThreads = max(runtime.GOMAXPROCS(0), 2)
		log.Warn().
			Int("workers", limits.NThreads).
			Msg("root-locked search needs several workers, raising the worker count")
	}

	log.Debug().
		Str("strategy", e.strategy.String()).
		Dur("movetime", limits.Movetime).
		Int("workers", limits.NThreads).
		Msg("search started")

	start := time.Now()
	var (
		view   TreeView[P, M]
		stats  *TreeStats
		reason StopReason
		err    error
	)

	switch e.strategy {
	case StrategyLockFree:
		tree := NewAtomicTree(e.rules, e.eval, pos)
		tree.Limiter.SetContext(ctx)
		tree.SetLimits(&limits)
		tree.SetListener(e.listener)
		tree.SetLogger(log)
		err = tree.Search()
		view, stats, reason = tree.View(), &tree.TreeStats, tree.Limiter.StopReason()
	default:
		tree := NewTree(e.rules, e.eval, pos)
		tree.Limiter.SetContext(ctx)
		tree.SetLimits(&limits)
		tree.SetListener(e.listener)
		tree.SetLogger(log)
		err = tree.Search()
		view, stats, reason = tree.View(), &tree.TreeStats, tree.Limiter.StopReason()
	}
	elapsed := time.Since(start)

	if err != nil {
		log.Warn().Err(err).Msg("search failed")
		return nil, fmt.Errorf("search %s: %w", id, err)
	}

	move, _ := BestMove(view)
	result := &Result[P, M]{
		ID:         id,
		Move:       move,
		View:       view,
		Stats:      CollectStatistics(view, elapsed),
		StopReason: reason,
		Elapsed:    elapsed,
	}

	e.metrics.Observe(metrics.Episode{
		Strategy:         e.strategy.String(),
		Descents:         uint64(stats.Cycles()),
		Expansions:       stats.Expansions(),
		CASRetries:       stats.CASRetries(),
		InstallConflicts: stats.InstallConflicts(),
		ClaimConflicts:   stats.ClaimConflicts(),
		IdleWorkers:      stats.IdleWorkers(),
		Nodes:            result.Stats.Nodes,
		Duration:         elapsed,
	})

	log.Info().
		Str("strategy", e.strategy.String()).
		Uint32("descents", stats.Cycles()).
		Int("nodes", result.Stats.Nodes).
		Int("depth", result.Stats.Depth).
		Dur("elapsed", elapsed).
		Str("stop_reason", reason.String()).
		Str("move", fmt.Sprint(move)).
		Msg("search finished")

	return result, nil
}

// Search 'pos', report the tree through the logger and return the chosen move
func (e *Engine[P, M]) PickMove(ctx context.Context, pos P) (M, error) {
	result, err := e.Search(ctx, pos)
	if err != nil {
		var zero M
		return zero, err
	}

	Report(e.logger, result.View, e.rules, e.eval, result.Elapsed)
	return result.Move, nil
}

// Rules and evaluator the engine searches with
func (e *Engine[P, M]) Game() (Rules[P, M], Evaluator[P]) {
	return e.rules, e.eval
}
