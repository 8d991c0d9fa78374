package astar

import (
	"github.com/IlikeChooros/go-astar/pkg/fairheap"
)

// One legal move out of a node
type Branch[P any, M any] struct {
	Move M
	// Best known outcome through this branch, refreshed after every descent reaching it
	Scores ScorePair
	// Set once on expansion, never reset
	Child *Node[P, M]
}

func (b *Branch[P, M]) Expanded() bool {
	return b.Child != nil
}

// Position reached during the search, with one branch per legal move.
// Terminal positions have neither branches nor queue entries.
type Node[P any, M any] struct {
	Position P
	Side     Side
	Branches []Branch[P, M]
	queue    *fairheap.FairHeap[Entry]
}

// Build the node for 'pos': list the legal moves, score the position each
// move leads to from both perspectives and queue them by the mover's score.
func newNode[P any, M any](pos P, rules Rules[P, M], eval Evaluator[P], rng fairheap.Rand) *Node[P, M] {
	node := &Node[P, M]{
		Position: pos,
		Side:     rules.SideToMove(pos),
		queue:    fairheap.New(compareEntries, rng),
	}

	if rules.IsTerminal(pos) {
		return node
	}

	moves := rules.LegalMoves(pos)
	node.Branches = make([]Branch[P, M], len(moves))
	for i, move := range moves {
		scores := PairOf(eval, rules.Apply(pos, move))
		node.Branches[i] = Branch[P, M]{Move: move, Scores: scores}
		node.queue.Push(Entry{Score: scores.Get(node.Side), Index: i})
	}
	return node
}

func (n *Node[P, M]) Terminal() bool {
	return len(n.Branches) == 0
}

// Index of a branch holding the maximum queue entry, ties broken at random
func (n *Node[P, M]) BestIndex() (int, bool) {
	entry, ok := n.queue.Peek()
	return entry.Index, ok
}

func (n *Node[P, M]) BestMove() (M, bool) {
	i, ok := n.BestIndex()
	if !ok {
		var zero M
		return zero, false
	}
	return n.Branches[i].Move, true
}

// Queue entries in non-increasing order, the queue itself is left untouched
func (n *Node[P, M]) Entries() []Entry {
	return n.queue.Clone().IntoSorted()
}

// Scores of the best branch, or the static evaluation of a terminal position
func (n *Node[P, M]) bestScores(eval Evaluator[P]) ScorePair {
	if i, ok := n.BestIndex(); ok {
		return n.Branches[i].Scores
	}
	return PairOf(eval, n.Position)
}
