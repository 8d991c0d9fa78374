package astar

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type LineStep[M any] struct {
	Move M
	// Static evaluation after the move minus the root's, from the root mover's perspective
	Delta int
}

// Sequence of moves following the best branches, annotated relative to the root
type Line[M any] struct {
	Side    Side
	Initial Score
	Steps   []LineStep[M]
}

func (l Line[M]) Moves() []M {
	return lo.Map(l.Steps, func(s LineStep[M], _ int) M { return s.Move })
}

func (l Line[M]) String() string {
	parts := lo.Map(l.Steps, func(s LineStep[M], _ int) string {
		return fmt.Sprintf("%v(%+d)", s.Move, s.Delta)
	})
	return strings.Join(parts, " ")
}

func BestMove[P any, M any](v TreeView[P, M]) (M, bool) {
	i, ok := v.Best()
	if !ok {
		var zero M
		return zero, false
	}
	return v.Move(i), true
}

// Follow the best branch, then its child's best branch while expanded
func BestLine[P any, M any](v TreeView[P, M], rules Rules[P, M], eval Evaluator[P]) Line[M] {
	i, ok := v.Best()
	if !ok {
		return Line[M]{Side: v.Side(), Initial: eval.Evaluate(v.Position(), v.Side())}
	}
	return LineFrom(v, i, rules, eval)
}

// Line starting with branch 'index' of 'v', then following the best branches
func LineFrom[P any, M any](v TreeView[P, M], index int, rules Rules[P, M], eval Evaluator[P]) Line[M] {
	side := v.Side()
	line := Line[M]{Side: side, Initial: eval.Evaluate(v.Position(), side)}

	node, i := v, index
	for {
		move := node.Move(i)
		child, expanded := node.Child(i)

		var pos P
		if expanded {
			pos = child.Position()
		} else {
			pos = rules.Apply(node.Position(), move)
		}
		line.Steps = append(line.Steps, LineStep[M]{
			Move:  move,
			Delta: int(eval.Evaluate(pos, side)) - int(line.Initial),
		})

		if !expanded {
			return line
		}
		next, ok := child.Best()
		if !ok {
			return line
		}
		node, i = child, next
	}
}
