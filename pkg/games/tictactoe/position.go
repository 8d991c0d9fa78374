package tictactoe

const (
	_bitboardCrossIdx  = 0
	_bitboardCircleIdx = 1
)

// Position is a plain value: MakeMove returns the next position and leaves
// the receiver as it was. Cross always moves first.
type Position struct {
	bitboards [2]uint16
	turn      Player
}

func NewPosition() Position {
	return Position{turn: Cross}
}

func (p Position) Turn() Player {
	return p.turn
}

// Player occupying 'sq'
func (p Position) At(sq Square) Player {
	switch {
	case p.bitboards[_bitboardCrossIdx]&(1<<sq) != 0:
		return Cross
	case p.bitboards[_bitboardCircleIdx]&(1<<sq) != 0:
		return Circle
	}
	return None
}

func (p Position) MakeMove(mv Square) Position {
	idx := _bitboardCrossIdx
	if p.turn == Circle {
		idx = _bitboardCircleIdx
	}

	p.bitboards[idx] |= 1 << mv
	p.turn = p.turn.Other()
	return p
}

// Number of occupied squares
func (p Position) Ply() int {
	n := 0
	for bb := p.bitboards[0] | p.bitboards[1]; bb != 0; bb &= bb - 1 {
		n++
	}
	return n
}
