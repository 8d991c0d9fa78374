package tictactoe

import "github.com/IlikeChooros/go-astar/pkg/astar"

// Game plugs tic-tac-toe into the search: Cross plays White, Circle plays Black
type Game struct{}

func PlayerOf(side astar.Side) Player {
	if side == astar.White {
		return Cross
	}
	return Circle
}

func SideOf(p Player) astar.Side {
	if p == Circle {
		return astar.Black
	}
	return astar.White
}

func (Game) LegalMoves(pos Position) []Square {
	if pos.IsTerminated() {
		return nil
	}
	moves := pos.GenerateMoves()
	return moves.Slice()
}

func (Game) Apply(pos Position, move Square) Position {
	return pos.MakeMove(move)
}

func (Game) SideToMove(pos Position) astar.Side {
	return SideOf(pos.Turn())
}

func (Game) IsTerminal(pos Position) bool {
	return pos.IsTerminated()
}

// Decided boards score as won or lost, a full board as a draw. Otherwise
// the score is the number of lines still open for 'side' minus the number
// still open for the opponent.
func (Game) Evaluate(pos Position, side astar.Side) astar.Score {
	me := PlayerOf(side)

	switch t := pos.Termination(); t {
	case TerminationDraw:
		return astar.DrawScore
	case TerminationCrossWon, TerminationCircleWon:
		if t.Winner() == me {
			return astar.WinningScore
		}
		return astar.LosingScore
	}

	own := pos.bitboards[bitboardIdx(me)]
	theirs := pos.bitboards[bitboardIdx(me.Other())]
	open := 0
	for _, pattern := range _winningBitboardPatterns {
		if theirs&pattern == 0 {
			open++
		}
		if own&pattern == 0 {
			open--
		}
	}
	return astar.Score(open)
}

func bitboardIdx(p Player) int {
	if p == Circle {
		return _bitboardCircleIdx
	}
	return _bitboardCrossIdx
}
