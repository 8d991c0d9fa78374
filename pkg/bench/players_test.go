package bench

import (
	"context"
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-astar/pkg/astar"
	"github.com/IlikeChooros/go-astar/pkg/games/chessgame"
	"github.com/IlikeChooros/go-astar/pkg/games/tictactoe"
)

func board(t *testing.T, s string) tictactoe.Position {
	t.Helper()
	pos, err := tictactoe.ParsePosition(s)
	require.NoError(t, err)
	return pos
}

func TestRandomPlayerCoversAllMoves(t *testing.T) {
	game := tictactoe.Game{}
	player := NewRandomPlayer[tictactoe.Position, tictactoe.Square](game)

	seen := make(map[tictactoe.Square]int)
	for range 900 {
		move, err := player.PickMove(context.Background(), tictactoe.NewPosition())
		require.NoError(t, err)
		seen[move]++
	}
	assert.Len(t, seen, 9)
	for sq, n := range seen {
		assert.Greater(t, n, 40, sq.String())
	}
}

func TestBaselinePlayersNoMoves(t *testing.T) {
	game := tictactoe.Game{}
	won := board(t, "XXX/OO./...")

	players := map[string]astar.Player[tictactoe.Position, tictactoe.Square]{
		"random":     NewRandomPlayer[tictactoe.Position, tictactoe.Square](game),
		"greedy":     NewGreedyPlayer[tictactoe.Position, tictactoe.Square](game, game),
		"exhaustive": NewExhaustivePlayer[tictactoe.Position, tictactoe.Square](game, game, 2),
	}
	for name, p := range players {
		_, err := p.PickMove(context.Background(), won)
		assert.ErrorIs(t, err, astar.ErrNoMoves, name)
	}
}

func TestGreedyPlayerTakesTheWin(t *testing.T) {
	game := tictactoe.Game{}
	player := NewGreedyPlayer[tictactoe.Position, tictactoe.Square](game, game)

	// O to move, only c3 completes a line
	move, err := player.PickMove(context.Background(), board(t, "OO_/XXO/X_X"))
	require.NoError(t, err)
	assert.Equal(t, tictactoe.C3, move)
}

func TestGreedyPlayerMatesInOne(t *testing.T) {
	pos, err := chessgame.FromFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	player := NewGreedyPlayer[chessgame.Position, *chess.Move](chessgame.Rules{}, chessgame.ClassicEval{})
	move, err := player.PickMove(context.Background(), pos)
	require.NoError(t, err)
	assert.Equal(t, "a1a8", move.String())
}

func TestExhaustivePlayerBlocksTheLoss(t *testing.T) {
	game := tictactoe.Game{}
	// X threatens a1-b1-c1, one ply is not enough to see it
	pos := board(t, "OX./.O./X.X")

	player := NewExhaustivePlayer[tictactoe.Position, tictactoe.Square](game, game, 2)
	assert.Equal(t, 2, player.Depth())
	for range 5 {
		move, err := player.PickMove(context.Background(), pos)
		require.NoError(t, err)
		assert.Equal(t, tictactoe.B1, move)
	}
}

func TestExhaustivePlayerDepthFloor(t *testing.T) {
	game := tictactoe.Game{}
	player := NewExhaustivePlayer[tictactoe.Position, tictactoe.Square](game, game, 0)
	assert.Equal(t, 1, player.Depth())

	move, err := player.PickMove(context.Background(), board(t, "OO_/XXO/X_X"))
	require.NoError(t, err)
	assert.Equal(t, tictactoe.C3, move)
}

func TestExhaustivePlayerCancelled(t *testing.T) {
	game := tictactoe.Game{}
	player := NewExhaustivePlayer[tictactoe.Position, tictactoe.Square](game, game, 9)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := player.PickMove(ctx, tictactoe.NewPosition())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBaselinePlayersInArena(t *testing.T) {
	game := tictactoe.Game{}
	arena := NewVersusArena[tictactoe.Position, tictactoe.Square](
		game, game, tictactoe.NewPosition(),
		NewExhaustivePlayer[tictactoe.Position, tictactoe.Square](game, game, 2),
		NewRandomPlayer[tictactoe.Position, tictactoe.Square](game),
	).Setup(8, 2, 0).SetNames("exhaustive", "random")

	summary, err := arena.Start(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 8, summary.TotalGames)
	assert.Equal(t, 8, summary.P1Wins+summary.P2Wins+summary.Draws)
}
