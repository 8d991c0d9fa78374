package chessgame

import (
	"github.com/notnil/chess"

	"github.com/IlikeChooros/go-astar/pkg/astar"
)

// Rules of chess as seen by the search, White is astar.White
type Rules struct{}

func (Rules) LegalMoves(pos Position) []*chess.Move {
	if pos.status != chess.NoMethod {
		return nil
	}
	return pos.moves
}

func (Rules) Apply(pos Position, move *chess.Move) Position {
	return NewPosition(pos.pos.Update(move))
}

func (Rules) SideToMove(pos Position) astar.Side {
	return SideOf(pos.Turn())
}

func (Rules) IsTerminal(pos Position) bool {
	return pos.status != chess.NoMethod
}

func SideOf(c chess.Color) astar.Side {
	if c == chess.Black {
		return astar.Black
	}
	return astar.White
}

func ColorOf(side astar.Side) chess.Color {
	if side == astar.Black {
		return chess.Black
	}
	return chess.White
}
