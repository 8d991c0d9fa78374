package bench

import "github.com/IlikeChooros/go-astar/pkg/logging"

type ListenerLike[M any] interface {
	OnGameStart(info VersusWorkerInfo[M])
	OnMoveMade(info VersusWorkerInfo[M])
	OnFinishedGame(info VersusWorkerInfo[M])
	OnFinishedWork(info VersusWorkerInfo[M])
	Summary(info VersusSummaryInfo)
}

type DefaultListener[M any] struct{}

func (DefaultListener[M]) OnGameStart(VersusWorkerInfo[M])    {}
func (DefaultListener[M]) OnMoveMade(VersusWorkerInfo[M])     {}
func (DefaultListener[M]) OnFinishedGame(VersusWorkerInfo[M]) {}
func (DefaultListener[M]) OnFinishedWork(VersusWorkerInfo[M]) {}
func (DefaultListener[M]) Summary(VersusSummaryInfo)          {}

// Reports finished games and the summary as structured log events
type LogListener[M any] struct {
	DefaultListener[M]
	log *logging.Logger
}

func NewLogListener[M any](log *logging.Logger) *LogListener[M] {
	return &LogListener[M]{log: log}
}

func (l *LogListener[M]) OnFinishedGame(info VersusWorkerInfo[M]) {
	l.log.Info().
		Int("worker", info.WorkerID).
		Int("game", info.FinishedGames).
		Int("of", info.NGames).
		Int("moves", info.GameMoveNum).
		Int("p1_wins", info.P1Wins).
		Int("p2_wins", info.P2Wins).
		Int("draws", info.Draws).
		Msg("game finished")
}

func (l *LogListener[M]) OnFinishedWork(info VersusWorkerInfo[M]) {
	l.log.Debug().Int("worker", info.WorkerID).Int("games", info.NGames).Msg("worker done")
}

func (l *LogListener[M]) Summary(info VersusSummaryInfo) {
	l.log.Info().
		Int("games", info.TotalGames).
		Str("player1", info.P1Name).
		Str("player2", info.P2Name).
		Int("player1_wins", info.P1Wins).
		Int("player2_wins", info.P2Wins).
		Int("draws", info.Draws).
		Msg("match finished")
}
