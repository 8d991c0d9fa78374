package bench

import (
	"context"
	"fmt"

	"github.com/IlikeChooros/go-astar/pkg/astar"
)

const DefaultMaxMoves = 200

// One played game
type Game[P any, M any] struct {
	Start P
	Final P
	Moves []M
	// the game hit the move cap before reaching a terminal position
	Unfinished bool

	rules astar.Rules[P, M]
	eval  astar.Evaluator[P]
}

/*
Winner of the game: a terminal final position the side to move sees as
lost (or the other side as won) is decided. A drawn, stalemated or
unfinished game has no winner.
*/
func (g *Game[P, M]) Winner() (astar.Side, bool) {
	if g.Unfinished || !isTerminal(g.rules, g.Final) {
		return astar.White, false
	}

	toMove := g.rules.SideToMove(g.Final)
	switch {
	case g.eval.Evaluate(g.Final, toMove) == astar.LosingScore:
		return toMove.Other(), true
	case g.eval.Evaluate(g.Final, toMove) == astar.WinningScore:
		return toMove, true
	}
	return astar.White, false
}

func isTerminal[P any, M any](rules astar.Rules[P, M], pos P) bool {
	return rules.IsTerminal(pos) || len(rules.LegalMoves(pos)) == 0
}

// Move hook of PlayGame, called after every move with the moves so far
type MoveHook[P any, M any] func(pos P, moves []M)

/*
PlayGame lets 'white' and 'black' alternate from 'start' until the game ends
or 'maxMoves' moves were played (DefaultMaxMoves when not positive). A
player error ends the game and is returned along with the moves made so far.
*/
func PlayGame[P any, M any](
	ctx context.Context,
	rules astar.Rules[P, M],
	eval astar.Evaluator[P],
	white, black astar.Player[P, M],
	start P,
	maxMoves int,
	onMove MoveHook[P, M],
) (*Game[P, M], error) {
	if maxMoves <= 0 {
		maxMoves = DefaultMaxMoves
	}

	game := &Game[P, M]{Start: start, Final: start, rules: rules, eval: eval}
	pos := start
	for !isTerminal(rules, pos) {
		if len(game.Moves) >= maxMoves {
			game.Unfinished = true
			break
		}
		if err := ctx.Err(); err != nil {
			game.Unfinished = true
			return game, err
		}

		player := white
		if rules.SideToMove(pos) == astar.Black {
			player = black
		}

		move, err := player.PickMove(ctx, pos)
		if err != nil {
			game.Unfinished = true
			return game, fmt.Errorf("move %d: %w", len(game.Moves)+1, err)
		}

		pos = rules.Apply(pos, move)
		game.Moves = append(game.Moves, move)
		game.Final = pos
		if onMove != nil {
			onMove(pos, game.Moves)
		}
	}
	return game, nil
}
