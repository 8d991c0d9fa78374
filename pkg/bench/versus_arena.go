package bench

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/go-astar/pkg/astar"
)

/*
Arena benchmark subpackage, plays a series of games between two players
over a pool of workers. Player 1 takes White in even games and Black in odd
ones. Players must be safe to use from several goroutines, an
astar.Engine is.
*/
type VersusArena[P any, M any] struct {
	VersusArenaStats
	Player1  astar.Player[P, M]
	Player2  astar.Player[P, M]
	P1Name   string
	P2Name   string
	NGames   int
	NThreads int
	MaxMoves int
	Position P
	rules    astar.Rules[P, M]
	eval     astar.Evaluator[P]
	games    []*Game[P, M]
}

func NewVersusArena[P any, M any](
	rules astar.Rules[P, M], eval astar.Evaluator[P], position P,
	player1, player2 astar.Player[P, M],
) *VersusArena[P, M] {
	return &VersusArena[P, M]{
		Player1:  player1,
		Player2:  player2,
		P1Name:   "player1",
		P2Name:   "player2",
		NGames:   100,
		NThreads: 2,
		MaxMoves: DefaultMaxMoves,
		Position: position,
		rules:    rules,
		eval:     eval,
	}
}

func (va *VersusArena[P, M]) Setup(nGames, nThreads, maxMoves int) *VersusArena[P, M] {
	va.NGames = max(nGames, 0)
	va.NThreads = max(nThreads, 1)
	if maxMoves > 0 {
		va.MaxMoves = maxMoves
	}
	return va
}

func (va *VersusArena[P, M]) SetNames(p1, p2 string) *VersusArena[P, M] {
	va.P1Name, va.P2Name = p1, p2
	return va
}

// Games played by the last Start, indexed by game number
func (va *VersusArena[P, M]) Games() []*Game[P, M] {
	return va.games
}

// Play all games and block until they are done. Cancelling 'ctx' stops
// the workers after their current move; the first player error stops
// every worker and is returned.
func (va *VersusArena[P, M]) Start(ctx context.Context, listener ListenerLike[M]) (VersusSummaryInfo, error) {
	if listener == nil {
		listener = DefaultListener[M]{}
	}
	// workers report one at a time
	listener = NewArenaListener(listener)
	va.games = make([]*Game[P, M], va.NGames)

	// Distribute the games equally between the workers
	nThreads := max(min(va.NThreads, va.NGames), 1)
	g, ctx := errgroup.WithContext(ctx)
	for id := range nThreads {
		g.Go(func() error {
			return va.worker(ctx, id, nThreads, listener)
		})
	}
	err := g.Wait()

	summary := VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Workers:          nThreads,
		P1Name:           va.P1Name,
		P2Name:           va.P2Name,
	}
	listener.Summary(summary)
	return summary, err
}

// Worker 'id' plays games id, id+n, id+2n, ...
func (va *VersusArena[P, M]) worker(ctx context.Context, id, n int, listener ListenerLike[M]) error {
	var local VersusArenaStats
	info := func(moves []M, finished int) VersusWorkerInfo[M] {
		return VersusWorkerInfo[M]{
			WorkerID:      id,
			NGames:        va.NGames,
			FinishedGames: finished,
			GameMoveNum:   len(moves),
			Moves:         moves,
			P1Wins:        local.P1Wins(),
			P2Wins:        local.P2Wins(),
			Draws:         local.Draws(),
			P1Name:        va.P1Name,
			P2Name:        va.P2Name,
		}
	}

	played := 0
	for i := id; i < va.NGames; i += n {
		if ctx.Err() != nil {
			break
		}

		p1White := i%2 == 0
		white, black := va.Player1, va.Player2
		if !p1White {
			white, black = black, white
		}

		listener.OnGameStart(info(nil, played))
		game, err := PlayGame(ctx, va.rules, va.eval, white, black, va.Position, va.MaxMoves,
			func(_ P, moves []M) { listener.OnMoveMade(info(moves, played)) })
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			return err
		}
		va.games[i] = game
		played++

		first := va.rules.SideToMove(va.Position)
		outcome := computeOutcome(game, first)
		result := toAgentResult(outcome, p1White == (first == astar.White))
		va.record(result, outcome)
		local.record(result, outcome)
		listener.OnFinishedGame(info(game.Moves, played))
	}

	listener.OnFinishedWork(info(nil, played))
	return nil
}
