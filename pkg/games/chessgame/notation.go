package chessgame

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/notnil/chess"
)

var ErrNotation = errors.New("chessgame: bad notation")

var results = map[string]bool{"1-0": true, "0-1": true, "1/2-1/2": true, "*": true}

/*
FormatMoves writes 'moves' played from 'start' in standard algebraic
notation, one turn per line:

	1. e4 e5
	2. Nf3 Nc6

A game starting with Black to move opens with "1... e5".
*/
func FormatMoves(start Position, moves []*chess.Move) string {
	var b strings.Builder
	_ = WriteMoves(&b, start, moves)
	return b.String()
}

func WriteMoves(w io.Writer, start Position, moves []*chess.Move) error {
	bw := bufio.NewWriter(w)
	notation := chess.AlgebraicNotation{}
	pos := start.pos
	turn := 1

	for i, move := range moves {
		san := notation.Encode(pos, move)
		switch {
		case pos.Turn() == chess.White:
			fmt.Fprintf(bw, "%d. %s", turn, san)
		case i == 0:
			fmt.Fprintf(bw, "%d... %s", turn, san)
		default:
			fmt.Fprintf(bw, " %s", san)
		}
		if pos.Turn() == chess.Black || i == len(moves)-1 {
			bw.WriteByte('\n')
			turn++
		}
		pos = pos.Update(move)
	}
	return bw.Flush()
}

// Decode one tagged PGN game with notnil's reader. A [FEN] tag sets the
// starting position, the standard one is used otherwise.
func ReadPGN(r io.Reader) (Position, []*chess.Move, error) {
	opt, err := chess.PGN(r)
	if err != nil {
		return Position{}, nil, fmt.Errorf("%w: %v", ErrNotation, err)
	}
	game := chess.NewGame(opt)
	return NewPosition(game.Positions()[0]), game.Moves(), nil
}

// ReadGame accepts either a tagged PGN game or a bare move list played from
// 'start'. Returns the position the moves start from.
func ReadGame(r io.Reader, start Position) (Position, []*chess.Move, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Position{}, nil, err
	}
	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, "[") {
		return ReadPGN(strings.NewReader(text))
	}
	moves, err := ReadMoves(strings.NewReader(text), start)
	return start, moves, err
}

/*
ReadMoves reads a move list written by WriteMoves, or any text in the same
spirit: turn numbers, results, [tag "pairs"] and {comments} are skipped,
every other word must be a legal move in standard algebraic notation.
*/
func ReadMoves(r io.Reader, start Position) ([]*chess.Move, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	notation := chess.AlgebraicNotation{}
	pos := start.pos
	var moves []*chess.Move

	for _, word := range strings.Fields(stripComments(string(text))) {
		if results[word] {
			break
		}
		// "12." or "12..." glued to the move ("12.Nf3") is allowed
		if dot := strings.LastIndexByte(word, '.'); dot >= 0 && isTurnNumber(word[:dot+1]) {
			word = word[dot+1:]
		}
		if word == "" {
			continue
		}

		move, err := notation.Decode(pos, word)
		if err != nil {
			return moves, fmt.Errorf("%w: move %d %q: %v", ErrNotation, len(moves)+1, word, err)
		}
		moves = append(moves, move)
		pos = pos.Update(move)
	}
	return moves, nil
}

func isTurnNumber(s string) bool {
	digits := strings.TrimRight(s, ".")
	if digits == "" {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Drop {comments} and [tags], keeping everything else
func stripComments(s string) string {
	var b strings.Builder
	depth := 0
	for _, c := range s {
		switch {
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			depth = max(depth-1, 0)
			b.WriteByte(' ')
		case depth == 0:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Positions of the game, start included, one after every move
func Replay(start Position, moves []*chess.Move) []Position {
	positions := make([]Position, 0, len(moves)+1)
	positions = append(positions, start)
	pos := start
	for _, move := range moves {
		pos = NewPosition(pos.pos.Update(move))
		positions = append(positions, pos)
	}
	return positions
}
