package astar

import (
	"cmp"
	"fmt"
	"math"
)

// Static evaluation of a position, from one side's perspective
type Score int16

const (
	LosingScore  Score = math.MinInt16
	WinningScore Score = math.MaxInt16
	DrawScore    Score = 0
)

type Side uint8

const (
	White Side = iota
	Black
)

func (s Side) Other() Side {
	return s ^ 1
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// Evaluation of one position as seen by each side
type ScorePair struct {
	White Score
	Black Score
}

func (p ScorePair) Get(side Side) Score {
	if side == White {
		return p.White
	}
	return p.Black
}

func (p ScorePair) String() string {
	return fmt.Sprintf("(%d, %d)", p.White, p.Black)
}

// Evaluate 'pos' from both perspectives
func PairOf[P any](eval Evaluator[P], pos P) ScorePair {
	return ScorePair{
		White: eval.Evaluate(pos, White),
		Black: eval.Evaluate(pos, Black),
	}
}

// Pure, deterministic static evaluator. Must return WinningScore/LosingScore
// only for decided positions, everything else stays strictly between them.
type Evaluator[P any] interface {
	Evaluate(pos P, side Side) Score
}

// Adapter allowing plain functions to be used as evaluators
type EvalFunc[P any] func(pos P, side Side) Score

func (f EvalFunc[P]) Evaluate(pos P, side Side) Score {
	return f(pos, side)
}

// Rules of the game being searched. Positions are treated as values:
// Apply must not modify its argument.
type Rules[P any, M any] interface {
	// Legal moves of 'pos', the order must be stable for a given position
	LegalMoves(pos P) []M
	// Position reached by playing 'move' in 'pos'
	Apply(pos P, move M) P
	// Side that moves in 'pos'
	SideToMove(pos P) Side
	// Whether the game is over in 'pos' (checkmate, stalemate, etc.)
	IsTerminal(pos P) bool
}

// Entry of a node's priority queue: the branch's score from the node's
// mover perspective and the branch index. Entries compare by score only.
type Entry struct {
	Score Score
	Index int
}

func compareEntries(a, b Entry) int {
	return cmp.Compare(a.Score, b.Score)
}
