package tictactoe

import "math/bits"

const _fullBoard = 0b111111111

func (p Position) GenerateMoves() MoveList {
	var movelist MoveList

	free := uint(_fullBoard ^ (p.bitboards[_bitboardCrossIdx] | p.bitboards[_bitboardCircleIdx]))
	for free != 0 {
		movelist.AppendMove(Square(bits.TrailingZeros(free)))
		free &= free - 1
	}

	return movelist
}
