package chessgame

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-astar/pkg/astar"
)

const (
	mateInOneFEN = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	stalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
)

func TestClassicEval(t *testing.T) {
	eval := ClassicEval{}

	start := StartingPosition()
	assert.Equal(t, astar.Score(0), eval.Evaluate(start, astar.White))
	assert.Equal(t, astar.Score(0), eval.Evaluate(start, astar.Black))

	// rook against three pawns
	pos, err := FromFEN(mateInOneFEN)
	require.NoError(t, err)
	assert.Equal(t, astar.Score(2), eval.Evaluate(pos, astar.White))
	assert.Equal(t, astar.Score(-2), eval.Evaluate(pos, astar.Black))

	stalemate, err := FromFEN(stalemateFEN)
	require.NoError(t, err)
	assert.Equal(t, chess.Stalemate, stalemate.Status())
	assert.Equal(t, astar.DrawScore, eval.Evaluate(stalemate, astar.White))
	assert.True(t, Rules{}.IsTerminal(stalemate))
	assert.Empty(t, Rules{}.LegalMoves(stalemate))
}

func TestCheckmateScores(t *testing.T) {
	pos, err := FromFEN(mateInOneFEN)
	require.NoError(t, err)

	var mate *chess.Move
	for _, m := range (Rules{}).LegalMoves(pos) {
		if m.String() == "a1a8" {
			mate = m
		}
	}
	require.NotNil(t, mate)

	after := Rules{}.Apply(pos, mate)
	assert.Equal(t, chess.Checkmate, after.Status())
	assert.Equal(t, astar.LosingScore, ClassicEval{}.Evaluate(after, astar.Black))
	assert.Equal(t, astar.WinningScore, ClassicEval{}.Evaluate(after, astar.White))

	// Apply leaves the original untouched
	assert.Equal(t, chess.NoMethod, pos.Status())
	assert.Equal(t, astar.Black, Rules{}.SideToMove(after))
}

func TestEngineFindsMate(t *testing.T) {
	pos, err := FromFEN(mateInOneFEN)
	require.NoError(t, err)

	for _, strategy := range []astar.Strategy{astar.StrategySequential, astar.StrategyRootLocked, astar.StrategyLockFree} {
		engine := astar.NewEngine[Position, *chess.Move](Rules{}, ClassicEval{}, strategy).
			SetLimits(astar.DefaultLimits().SetMovetime(30 * time.Millisecond).SetThreads(2))

		move, err := engine.PickMove(context.Background(), pos)
		require.NoError(t, err, strategy.String())
		assert.Equal(t, "a1a8", move.String(), strategy.String())
	}
}

func TestFromFENRejectsGarbage(t *testing.T) {
	_, err := FromFEN("not a position")
	assert.ErrorIs(t, err, ErrNotation)
}

func TestNotationRoundTrip(t *testing.T) {
	start := StartingPosition()
	moves, err := ReadMoves(strings.NewReader("1. e4 e5 2. Nf3 Nc6"), start)
	require.NoError(t, err)
	require.Len(t, moves, 4)

	assert.Equal(t, "1. e4 e5\n2. Nf3 Nc6\n", FormatMoves(start, moves))
	assert.Equal(t, "1. e4 e5\n2. Nf3\n", FormatMoves(start, moves[:3]))

	again, err := ReadMoves(strings.NewReader(FormatMoves(start, moves)), start)
	require.NoError(t, err)
	for i := range moves {
		assert.Equal(t, moves[i].String(), again[i].String())
	}
}

func TestReadMovesSkipsDecorations(t *testing.T) {
	text := `[Event "casual"]
[White "someone"]

1. e4 {the usual} e5 2.Nf3 Nc6 3... 1-0 Bb5`

	moves, err := ReadMoves(strings.NewReader(text), StartingPosition())
	require.NoError(t, err)
	assert.Len(t, moves, 4)
}

func TestReadMovesBlackFirst(t *testing.T) {
	start, err := FromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	require.NoError(t, err)

	moves, err := ReadMoves(strings.NewReader("1... c5 2. Nf3"), start)
	require.NoError(t, err)
	assert.Equal(t, "1... c5\n2. Nf3\n", FormatMoves(start, moves))
}

func TestReadMovesIllegal(t *testing.T) {
	moves, err := ReadMoves(strings.NewReader("1. e4 e4"), StartingPosition())
	assert.ErrorIs(t, err, ErrNotation)
	assert.Len(t, moves, 1)
}

func TestReplay(t *testing.T) {
	start := StartingPosition()
	moves, err := ReadMoves(strings.NewReader("1. f3 e5 2. g4 Qh4"), start)
	require.NoError(t, err)

	positions := Replay(start, moves)
	require.Len(t, positions, 5)
	assert.Equal(t, chess.Checkmate, positions[4].Status())
	assert.Equal(t, chess.Black, positions[1].Turn())
}

func TestReadPGN(t *testing.T) {
	text := `[Event "fool"]
[Result "0-1"]

1. f3 e5 2. g4 Qh4# 0-1`

	start, moves, err := ReadGame(strings.NewReader(text), Position{})
	require.NoError(t, err)
	require.Len(t, moves, 4)
	assert.Equal(t, StartingPosition().FEN(), start.FEN())
	assert.Equal(t, chess.Checkmate, Replay(start, moves)[4].Status())
}

func TestReadPGNStartsFromFENTag(t *testing.T) {
	text := `[FEN "` + mateInOneFEN + `"]
[SetUp "1"]

1. Ra8# 1-0`

	start, moves, err := ReadPGN(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, "a1a8", moves[0].String())
	assert.Equal(t, chess.White, start.Turn())
	assert.Equal(t, chess.Checkmate, Replay(start, moves)[1].Status())
}

func TestReadGameBareMoves(t *testing.T) {
	start, err := FromFEN(mateInOneFEN)
	require.NoError(t, err)

	from, moves, err := ReadGame(strings.NewReader("1. Ra8"), start)
	require.NoError(t, err)
	assert.Equal(t, start.FEN(), from.FEN())
	require.Len(t, moves, 1)
	assert.Equal(t, "a1a8", moves[0].String())
}
