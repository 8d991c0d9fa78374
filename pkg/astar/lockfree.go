package astar

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/IlikeChooros/go-astar/pkg/fairheap"
	"github.com/IlikeChooros/go-astar/pkg/logging"
	"golang.org/x/sync/errgroup"
)

type AtomicBranch[P any, M any] struct {
	Move   M
	scores AtomicScores
	child  atomic.Pointer[AtomicNode[P, M]]
}

func (b *AtomicBranch[P, M]) Scores() ScorePair {
	return b.scores.Load()
}

func (b *AtomicBranch[P, M]) Child() *AtomicNode[P, M] {
	return b.child.Load()
}

// Node of the lock-free tree. Position, Side and the branch slice never
// change after construction; only the branches' score words and child slots do.
type AtomicNode[P any, M any] struct {
	Position P
	Side     Side
	Branches []AtomicBranch[P, M]
}

func newAtomicNode[P any, M any](pos P, rules Rules[P, M], eval Evaluator[P]) *AtomicNode[P, M] {
	node := &AtomicNode[P, M]{
		Position: pos,
		Side:     rules.SideToMove(pos),
	}
	if rules.IsTerminal(pos) {
		return node
	}

	moves := rules.LegalMoves(pos)
	node.Branches = make([]AtomicBranch[P, M], len(moves))
	for i, move := range moves {
		branch := &node.Branches[i]
		branch.Move = move
		branch.scores.Store(PairOf(eval, rules.Apply(pos, move)))
	}
	return node
}

func (n *AtomicNode[P, M]) Terminal() bool {
	return len(n.Branches) == 0
}

// Branch with the highest score for the mover, as of the moment each word is
// read. Ties are broken uniformly at random.
func (n *AtomicNode[P, M]) bestIndex(rng fairheap.Rand) (int, bool) {
	best, ties := -1, 0
	var top Score
	for i := range n.Branches {
		score := n.Branches[i].Scores().Get(n.Side)
		switch {
		case best < 0 || score > top:
			best, top, ties = i, score, 1
		case score == top:
			ties++
			if rng.IntN(ties) == 0 {
				best = i
			}
		}
	}
	return best, best >= 0
}

func (n *AtomicNode[P, M]) BestIndex() (int, bool) {
	return n.bestIndex(fairheap.Shared())
}

func (n *AtomicNode[P, M]) bestScores(eval Evaluator[P], rng fairheap.Rand) ScorePair {
	if i, ok := n.bestIndex(rng); ok {
		return n.Branches[i].Scores()
	}
	return PairOf(eval, n.Position)
}

/*
AtomicTree is the lock-free variant of Tree. Workers descend the shared tree
without any lock: the best branch is picked by scanning the score words,
children are installed with compare-and-swap (first installer wins, the
loser's node is simply dropped) and refreshed scores are written back with a
compare-and-swap loop. A worker may act on a slightly stale best branch.
*/
type AtomicTree[P any, M any] struct {
	TreeStats
	Root     *AtomicNode[P, M]
	Limiter  LimiterLike
	listener StatsListener[M]
	logger   *logging.Logger
	rules    Rules[P, M]
	eval     Evaluator[P]
	rng      fairheap.Rand
}

func NewAtomicTree[P any, M any](rules Rules[P, M], eval Evaluator[P], pos P) *AtomicTree[P, M] {
	return &AtomicTree[P, M]{
		Root:     newAtomicNode(pos, rules, eval),
		Limiter:  NewLimiter(),
		listener: NewStatsListener[M](),
		logger:   logging.Nop(),
		rules:    rules,
		eval:     eval,
		rng:      fairheap.Shared(),
	}
}

func (t *AtomicTree[P, M]) SetListener(listener StatsListener[M]) {
	t.listener = listener
}

func (t *AtomicTree[P, M]) SetLogger(logger *logging.Logger) {
	if logger != nil {
		t.logger = logger
	}
}

func (t *AtomicTree[P, M]) SetLimits(limits *Limits) {
	t.Limiter.SetLimits(limits)
}

func (t *AtomicTree[P, M]) View() TreeView[P, M] {
	return atomicView[P, M]{t.Root}
}

func (t *AtomicTree[P, M]) BestMove() (M, bool) {
	i, ok := t.Root.BestIndex()
	if !ok {
		var zero M
		return zero, false
	}
	return t.Root.Branches[i].Move, true
}

// Run Limits.NThreads workers until the limiter says stop, then wait for all of them
func (t *AtomicTree[P, M]) Search() error {
	t.Limiter.Reset()
	t.cycles.Store(0)

	var err error
	if !t.Root.Terminal() {
		workers := max(t.Limiter.Limits().NThreads, 1)
		g, ctx := errgroup.WithContext(t.Limiter.Context())
		for id := range workers {
			g.Go(func() error {
				return t.worker(ctx, id)
			})
		}
		err = g.Wait()
	}

	t.Limiter.EvaluateStopReason(t.Cycles())
	if err == nil {
		invokeStop(&t.listener, &t.TreeStats, t.Limiter, t.View())
	}
	return err
}

func (t *AtomicTree[P, M]) worker(ctx context.Context, id int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: worker %d: %v", ErrWorkerPanic, id, r)
		}
	}()

	for ctx.Err() == nil && t.Limiter.Ok(t.Cycles()) {
		t.descend(t.Root, 0, id)
		t.cycles.Add(1)
		if id == mainWorkerId {
			invokeCycle(&t.listener, &t.TreeStats, t.Limiter, t.View())
		}
	}
	return nil
}

// Refine the best line below 'node' once and return its refreshed scores.
// Not synchronized with other descents on purpose, see AtomicTree.
func (t *AtomicTree[P, M]) Descent(node *AtomicNode[P, M]) ScorePair {
	return t.descend(node, 0, mainWorkerId)
}

func (t *AtomicTree[P, M]) descend(node *AtomicNode[P, M], depth int32, worker int) ScorePair {
	if node.Terminal() {
		return PairOf(t.eval, node.Position)
	}

	i, _ := node.bestIndex(t.rng)
	branch := &node.Branches[i]

	child := branch.child.Load()
	if child != nil {
		t.descend(child, depth+1, worker)
	} else {
		child = t.install(branch, node.Position, depth+1, worker)
	}
	return t.update(branch, child)
}

// Build the child of 'branch' and try to install it; returns whichever child won
func (t *AtomicTree[P, M]) install(branch *AtomicBranch[P, M], from P, depth int32, worker int) *AtomicNode[P, M] {
	fresh := newAtomicNode(t.rules.Apply(from, branch.Move), t.rules, t.eval)
	if !branch.child.CompareAndSwap(nil, fresh) {
		t.installConflicts.Add(1)
		return branch.child.Load()
	}

	t.expansions.Add(1)
	if t.updateDepth(depth) && worker == mainWorkerId {
		invokeDepth(&t.listener, &t.TreeStats, t.Limiter, t.View())
	}
	return fresh
}

// Copy the child's current best scores into the branch. Retries until the
// swap lands on the snapshot it was computed from.
func (t *AtomicTree[P, M]) update(branch *AtomicBranch[P, M], child *AtomicNode[P, M]) ScorePair {
	for {
		prev := branch.scores.Load()
		next := child.bestScores(t.eval, t.rng)
		if prev == next || branch.scores.CompareAndSwap(prev, next) {
			return next
		}
		t.casRetries.Add(1)
	}
}
