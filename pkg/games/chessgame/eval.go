package chessgame

import (
	"github.com/notnil/chess"

	"github.com/IlikeChooros/go-astar/pkg/astar"
)

var pieceValues = map[chess.PieceType]astar.Score{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  10,
	chess.King:   0,
}

// Material count from 'side' perspective. A checkmated side to move has lost,
// any other finished game is a draw.
type ClassicEval struct{}

func (ClassicEval) Evaluate(pos Position, side astar.Side) astar.Score {
	switch pos.status {
	case chess.NoMethod:
	case chess.Checkmate:
		if SideOf(pos.Turn()) == side {
			return astar.LosingScore
		}
		return astar.WinningScore
	default:
		return astar.DrawScore
	}

	color := ColorOf(side)
	board := pos.pos.Board()
	var score astar.Score
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		if piece.Color() == color {
			score += pieceValues[piece.Type()]
		} else {
			score -= pieceValues[piece.Type()]
		}
	}
	return score
}
