package bench

import (
	"context"

	"github.com/IlikeChooros/go-astar/pkg/astar"
	"github.com/IlikeChooros/go-astar/pkg/fairheap"
)

// Baseline opponents for the search engines. All of them are safe to share
// between arena workers.

func defaultRand() fairheap.Rand {
	return fairheap.Locked(fairheap.NewRand(astar.SeedGeneratorFn()))
}

func legalMoves[P any, M any](rules astar.Rules[P, M], pos P) ([]M, error) {
	if rules.IsTerminal(pos) {
		return nil, astar.ErrNoMoves
	}
	moves := rules.LegalMoves(pos)
	if len(moves) == 0 {
		return nil, astar.ErrNoMoves
	}
	return moves, nil
}

// Picks one of the 'moves' maximizing 'value', uniformly among ties
func pickMax[M any](moves []M, value func(M) astar.Score, rng fairheap.Rand) M {
	var (
		best M
		top  astar.Score
		ties int
	)
	for _, move := range moves {
		v := value(move)
		switch {
		case ties == 0 || v > top:
			best, top, ties = move, v, 1
		case v == top:
			ties++
			if rng.IntN(ties) == 0 {
				best = move
			}
		}
	}
	return best
}

// Plays a uniformly random legal move
type RandomPlayer[P any, M any] struct {
	rules astar.Rules[P, M]
	rng   fairheap.Rand
}

func NewRandomPlayer[P any, M any](rules astar.Rules[P, M]) *RandomPlayer[P, M] {
	return &RandomPlayer[P, M]{rules: rules, rng: defaultRand()}
}

func (p *RandomPlayer[P, M]) SetRand(rng fairheap.Rand) *RandomPlayer[P, M] {
	p.rng = rng
	return p
}

func (p *RandomPlayer[P, M]) PickMove(_ context.Context, pos P) (M, error) {
	moves, err := legalMoves(p.rules, pos)
	if err != nil {
		var zero M
		return zero, err
	}
	return moves[p.rng.IntN(len(moves))], nil
}

// Plays the move whose resulting position evaluates best for the mover,
// looking a single ply ahead
type GreedyPlayer[P any, M any] struct {
	rules astar.Rules[P, M]
	eval  astar.Evaluator[P]
	rng   fairheap.Rand
}

func NewGreedyPlayer[P any, M any](rules astar.Rules[P, M], eval astar.Evaluator[P]) *GreedyPlayer[P, M] {
	return &GreedyPlayer[P, M]{rules: rules, eval: eval, rng: defaultRand()}
}

func (p *GreedyPlayer[P, M]) SetRand(rng fairheap.Rand) *GreedyPlayer[P, M] {
	p.rng = rng
	return p
}

func (p *GreedyPlayer[P, M]) PickMove(_ context.Context, pos P) (M, error) {
	moves, err := legalMoves(p.rules, pos)
	if err != nil {
		var zero M
		return zero, err
	}
	side := p.rules.SideToMove(pos)
	return pickMax(moves, func(move M) astar.Score {
		return p.eval.Evaluate(p.rules.Apply(pos, move), side)
	}, p.rng), nil
}

/*
ExhaustivePlayer searches every line up to a fixed depth. At each position the
mover picks the move whose line ends in the position it evaluates best, and
that final position is what gets compared one level up. Lines stop early at
terminal positions.
*/
type ExhaustivePlayer[P any, M any] struct {
	rules astar.Rules[P, M]
	eval  astar.Evaluator[P]
	depth int
	rng   fairheap.Rand
}

func NewExhaustivePlayer[P any, M any](rules astar.Rules[P, M], eval astar.Evaluator[P], depth int) *ExhaustivePlayer[P, M] {
	return &ExhaustivePlayer[P, M]{rules: rules, eval: eval, depth: max(depth, 1), rng: defaultRand()}
}

func (p *ExhaustivePlayer[P, M]) SetRand(rng fairheap.Rand) *ExhaustivePlayer[P, M] {
	p.rng = rng
	return p
}

func (p *ExhaustivePlayer[P, M]) Depth() int {
	return p.depth
}

func (p *ExhaustivePlayer[P, M]) PickMove(ctx context.Context, pos P) (M, error) {
	move, _, err := p.search(ctx, pos, p.depth)
	return move, err
}

// Best move in 'pos' and the position its line ends in
func (p *ExhaustivePlayer[P, M]) search(ctx context.Context, pos P, depth int) (M, P, error) {
	var zero M
	moves, err := legalMoves(p.rules, pos)
	if err != nil {
		return zero, pos, err
	}
	if err := ctx.Err(); err != nil {
		return zero, pos, err
	}

	side := p.rules.SideToMove(pos)
	ends := make([]P, len(moves))
	for i, move := range moves {
		next := p.rules.Apply(pos, move)
		if depth > 1 && !p.rules.IsTerminal(next) && len(p.rules.LegalMoves(next)) > 0 {
			if _, next, err = p.search(ctx, next, depth-1); err != nil {
				return zero, pos, err
			}
		}
		ends[i] = next
	}

	indices := make([]int, len(moves))
	for i := range indices {
		indices[i] = i
	}
	best := pickMax(indices, func(i int) astar.Score {
		return p.eval.Evaluate(ends[i], side)
	}, p.rng)
	return moves[best], ends[best], nil
}
