package tictactoe

// Enum for the squares, top row first
const (
	A3 Square = iota
	B3
	C3
	A2
	B2
	C2
	A1
	B1
	C1
)

const (
	SquareIllegal Square = 255
)

func (sq Square) String() string {
	if sq > C1 {
		return "-"
	}
	return string([]byte{'a' + byte(sq%3), '3' - byte(sq/3)})
}

type MoveList struct {
	Moves [9]Square
	Size  uint8
}

func (ml *MoveList) AppendMove(mv Square) {
	ml.Moves[ml.Size] = mv
	ml.Size++
}

func (ml *MoveList) Slice() []Square {
	moves := make([]Square, ml.Size)
	copy(moves, ml.Moves[:ml.Size])
	return moves
}
