package tictactoe

type Termination int

const (
	TerminationNone      Termination = 0
	TerminationCircleWon Termination = 1
	TerminationCrossWon  Termination = 2
	TerminationDraw      Termination = 4
)

// horizontal, vertical and diagonal patterns as bitboards
var _winningBitboardPatterns = [8]uint16{
	0b111000000, 0b000111000, 0b000000111,
	0b100100100, 0b010010010, 0b001001001,
	0b100010001, 0b001010100,
}

func (p Position) Termination() Termination {
	crossbb := p.bitboards[_bitboardCrossIdx]
	circlebb := p.bitboards[_bitboardCircleIdx]

	for _, pattern := range _winningBitboardPatterns {
		if crossbb&pattern == pattern {
			return TerminationCrossWon
		}
		if circlebb&pattern == pattern {
			return TerminationCircleWon
		}
	}

	// no line and the board is full
	if (crossbb | circlebb) == _fullBoard {
		return TerminationDraw
	}
	return TerminationNone
}

func (p Position) IsTerminated() bool {
	return p.Termination() != TerminationNone
}

// Winner of a finished game, None for a draw or a game in progress
func (t Termination) Winner() Player {
	switch t {
	case TerminationCrossWon:
		return Cross
	case TerminationCircleWon:
		return Circle
	}
	return None
}
