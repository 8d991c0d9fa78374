package chessgame

import (
	"fmt"

	"github.com/notnil/chess"
)

/*
Position wraps a notnil position with its legal moves and status computed
up front. The wrapped position caches its moves lazily on first use, so it
is never asked for them again once the wrapper exists: positions stored in
a search tree are read by many workers at once.
*/
type Position struct {
	pos    *chess.Position
	moves  []*chess.Move
	status chess.Method
}

func NewPosition(pos *chess.Position) Position {
	return Position{
		pos:    pos,
		moves:  pos.ValidMoves(),
		status: pos.Status(),
	}
}

func StartingPosition() Position {
	return NewPosition(chess.StartingPosition())
}

// Load a position from its FEN description
func FromFEN(fen string) (Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return Position{}, fmt.Errorf("%w: fen %q: %v", ErrNotation, fen, err)
	}
	return NewPosition(chess.NewGame(opt).Position()), nil
}

func (p Position) Chess() *chess.Position {
	return p.pos
}

func (p Position) Turn() chess.Color {
	return p.pos.Turn()
}

func (p Position) Status() chess.Method {
	return p.status
}

func (p Position) FEN() string {
	return p.pos.String()
}

func (p Position) String() string {
	return p.pos.String()
}

// Board drawn from White's side
func (p Position) Pretty() string {
	return p.pos.Board().Draw()
}
