package tictactoe

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotation = errors.New("tictactoe: bad notation")

// Parse a square name, "a3" (top left) to "c1" (bottom right)
func ParseSquare(s string) (Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'c' || s[1] < '1' || s[1] > '3' {
		return SquareIllegal, fmt.Errorf("%w: square %q", ErrNotation, s)
	}
	return Square(('3'-s[1])*3 + (s[0] - 'a')), nil
}

/*
Parse a board written row by row from the top, rows separated by '/':

	"OO./XXO/X.X"

'X' and 'O' are the players, '.' or '_' an empty square. The side to move
follows from the stone count, Cross moves when both have played equally.
*/
func ParsePosition(s string) (Position, error) {
	rows := strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != 3 {
		return Position{}, fmt.Errorf("%w: board %q needs 3 rows", ErrNotation, s)
	}

	pos := NewPosition()
	crosses, circles := 0, 0
	for r, row := range rows {
		if len(row) != 3 {
			return Position{}, fmt.Errorf("%w: row %q needs 3 squares", ErrNotation, row)
		}
		for c := range 3 {
			sq := Square(r*3 + c)
			switch row[c] {
			case 'X', 'x':
				pos.bitboards[_bitboardCrossIdx] |= 1 << sq
				crosses++
			case 'O', 'o':
				pos.bitboards[_bitboardCircleIdx] |= 1 << sq
				circles++
			case '.', '_':
			default:
				return Position{}, fmt.Errorf("%w: unexpected %q", ErrNotation, row[c])
			}
		}
	}

	switch crosses - circles {
	case 0:
		pos.turn = Cross
	case 1:
		pos.turn = Circle
	default:
		return Position{}, fmt.Errorf("%w: %d crosses and %d circles can't happen", ErrNotation, crosses, circles)
	}
	return pos, nil
}

func (p Position) String() string {
	var b strings.Builder
	for sq := A3; sq <= C1; sq++ {
		if sq > A3 && sq%3 == 0 {
			b.WriteByte('/')
		}
		b.WriteString(p.At(sq).String())
	}
	return b.String()
}

// Multi-line board for the terminal
func (p Position) Pretty() string {
	var b strings.Builder
	for row := range 3 {
		fmt.Fprintf(&b, "%d ", 3-row)
		for col := range 3 {
			b.WriteString(" " + p.At(Square(row*3+col)).String())
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a b c\n")
	return b.String()
}
