package astar

import (
	"cmp"
	"slices"
)

// Read-only walk over a search tree, the same for both tree shapes.
// Only meant to be used once the search that built the tree has finished.
type TreeView[P any, M any] interface {
	Position() P
	Side() Side
	Terminal() bool
	// Number of branches
	Len() int
	Move(i int) M
	Scores(i int) ScorePair
	// Child of branch 'i', false if the branch is not expanded
	Child(i int) (TreeView[P, M], bool)
	// Index of the current best branch
	Best() (int, bool)
	// Branch indices, best first
	Ranked() []int
}

type nodeView[P any, M any] struct {
	node *Node[P, M]
}

func (v nodeView[P, M]) Position() P            { return v.node.Position }
func (v nodeView[P, M]) Side() Side             { return v.node.Side }
func (v nodeView[P, M]) Terminal() bool         { return v.node.Terminal() }
func (v nodeView[P, M]) Len() int               { return len(v.node.Branches) }
func (v nodeView[P, M]) Move(i int) M           { return v.node.Branches[i].Move }
func (v nodeView[P, M]) Scores(i int) ScorePair { return v.node.Branches[i].Scores }
func (v nodeView[P, M]) Best() (int, bool)      { return v.node.BestIndex() }

func (v nodeView[P, M]) Child(i int) (TreeView[P, M], bool) {
	child := v.node.Branches[i].Child
	if child == nil {
		return nil, false
	}
	return nodeView[P, M]{child}, true
}

func (v nodeView[P, M]) Ranked() []int {
	entries := v.node.Entries()
	ranked := make([]int, len(entries))
	for i, e := range entries {
		ranked[i] = e.Index
	}
	return ranked
}

type atomicView[P any, M any] struct {
	node *AtomicNode[P, M]
}

func (v atomicView[P, M]) Position() P            { return v.node.Position }
func (v atomicView[P, M]) Side() Side             { return v.node.Side }
func (v atomicView[P, M]) Terminal() bool         { return v.node.Terminal() }
func (v atomicView[P, M]) Len() int               { return len(v.node.Branches) }
func (v atomicView[P, M]) Move(i int) M           { return v.node.Branches[i].Move }
func (v atomicView[P, M]) Scores(i int) ScorePair { return v.node.Branches[i].Scores() }
func (v atomicView[P, M]) Best() (int, bool)      { return v.node.BestIndex() }

func (v atomicView[P, M]) Child(i int) (TreeView[P, M], bool) {
	child := v.node.Branches[i].Child()
	if child == nil {
		return nil, false
	}
	return atomicView[P, M]{child}, true
}

func (v atomicView[P, M]) Ranked() []int {
	ranked := make([]int, len(v.node.Branches))
	for i := range ranked {
		ranked[i] = i
	}
	side := v.node.Side
	slices.SortStableFunc(ranked, func(a, b int) int {
		return cmp.Compare(v.Scores(b).Get(side), v.Scores(a).Get(side))
	})
	return ranked
}

// Scores of the view's best branch, or the static evaluation of a terminal position
func bestScoresOf[P any, M any](v TreeView[P, M], eval Evaluator[P]) ScorePair {
	if i, ok := v.Best(); ok {
		return v.Scores(i)
	}
	return PairOf(eval, v.Position())
}
