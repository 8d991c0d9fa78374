package astar

import (
	"github.com/IlikeChooros/go-astar/pkg/fairheap"
	"github.com/IlikeChooros/go-astar/pkg/logging"
)

/*
Tree is the best-first search tree with plain (non atomic) nodes. Every
descent follows the best queued branch of each node down to an unexpanded
branch, expands it, then hands the best scores of each node back up the path,
re-queueing each branch it went through. Values are forwarded as they are:
each node passes up its own best branch's pair, there is no negation between
levels.

With Limits.NThreads > 1 the search runs the root-locked strategy (see locked.go).
*/
type Tree[P any, M any] struct {
	TreeStats
	Root     *Node[P, M]
	Limiter  LimiterLike
	listener StatsListener[M]
	logger   *logging.Logger
	rules    Rules[P, M]
	eval     Evaluator[P]
	rng      fairheap.Rand
	shared   *sharedRoot[P, M]
	// set while root-locked workers run, disables the listener callbacks
	concurrent bool
}

// Build the tree with its root node for 'pos'
func NewTree[P any, M any](rules Rules[P, M], eval Evaluator[P], pos P) *Tree[P, M] {
	tree := &Tree[P, M]{
		Limiter:  NewLimiter(),
		listener: NewStatsListener[M](),
		logger:   logging.Nop(),
		rules:    rules,
		eval:     eval,
		rng:      fairheap.Locked(fairheap.NewRand(SeedGeneratorFn())),
	}
	tree.Root = tree.newNode(pos)
	return tree
}

func (t *Tree[P, M]) SetListener(listener StatsListener[M]) {
	t.listener = listener
}

func (t *Tree[P, M]) SetLogger(logger *logging.Logger) {
	if logger != nil {
		t.logger = logger
	}
}

func (t *Tree[P, M]) SetLimits(limits *Limits) {
	t.Limiter.SetLimits(limits)
}

func (t *Tree[P, M]) View() TreeView[P, M] {
	return nodeView[P, M]{t.Root}
}

func (t *Tree[P, M]) BestMove() (M, bool) {
	return t.Root.BestMove()
}

// Run descents until the limiter says stop. Returns a non-nil error only
// for the root-locked strategy, when the shared root got poisoned or a
// worker panicked.
func (t *Tree[P, M]) Search() error {
	t.Limiter.Reset()
	t.cycles.Store(0)

	var err error
	switch {
	case t.Root.Terminal():
		// nothing to refine
	case t.Limiter.Limits().NThreads > 1:
		err = t.searchLocked(t.Limiter.Limits().NThreads)
	default:
		t.searchSequential()
	}

	t.Limiter.EvaluateStopReason(t.Cycles())
	if err == nil {
		invokeStop(&t.listener, &t.TreeStats, t.Limiter, t.View())
	}
	return err
}

func (t *Tree[P, M]) searchSequential() {
	for t.Limiter.Ok(t.Cycles()) {
		t.descend(t.Root, 0)
		t.cycles.Add(1)
		invokeCycle(&t.listener, &t.TreeStats, t.Limiter, t.View())
	}
}

// Refine the best line below 'node' once and return the node's best branch
// scores afterwards. A terminal node returns its static evaluation and is left untouched.
func (t *Tree[P, M]) Descent(node *Node[P, M]) ScorePair {
	return t.descend(node, 0)
}

func (t *Tree[P, M]) descend(node *Node[P, M], depth int32) ScorePair {
	if node.Terminal() {
		return PairOf(t.eval, node.Position)
	}

	entry, _ := node.queue.Pop()
	scores := t.refresh(&node.Branches[entry.Index], node.Position, depth+1)
	node.queue.Push(Entry{Score: scores.Get(node.Side), Index: entry.Index})
	// the refreshed branch may have dropped below a sibling
	return node.bestScores(t.eval)
}

// Descend into the branch's child, or expand the branch if it has none yet,
// and store the resulting scores in the branch. 'depth' is the child's depth.
func (t *Tree[P, M]) refresh(branch *Branch[P, M], from P, depth int32) ScorePair {
	var scores ScorePair
	if branch.Child != nil {
		scores = t.descend(branch.Child, depth)
	} else {
		branch.Child = t.newNode(t.rules.Apply(from, branch.Move))
		t.expansions.Add(1)
		if t.updateDepth(depth) && !t.concurrent {
			invokeDepth(&t.listener, &t.TreeStats, t.Limiter, t.View())
		}
		scores = branch.Child.bestScores(t.eval)
	}

	branch.Scores = scores
	return scores
}

func (t *Tree[P, M]) newNode(pos P) *Node[P, M] {
	return newNode(pos, t.rules, t.eval, t.rng)
}
