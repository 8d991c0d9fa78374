package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/notnil/chess"
	"github.com/spf13/cobra"

	"github.com/IlikeChooros/go-astar/pkg/astar"
	"github.com/IlikeChooros/go-astar/pkg/bench"
	"github.com/IlikeChooros/go-astar/pkg/games/chessgame"
)

type playOptions struct {
	white   string
	black   string
	outPath string
}

func newPlayCmd(a *app) *cobra.Command {
	opts := playOptions{}

	cmd := &cobra.Command{
		Use:   "play [position]",
		Short: "Let two players play a game against each other",
		Long: `Let two players play from the given (or starting) position until the game
ends or max_moves moves were played. A player is a search strategy or one of
the baseline players (random, greedy one-ply, exhaustive to a fixed depth),
by default both sides use the configured strategy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			if a.gameName == "tictactoe" {
				return runPlay(cmd, a, tictactoeKit(), text, opts, nil)
			}
			return runPlay(cmd, a, chessKit(), text, opts, formatChessGame)
		},
	}
	cmd.Flags().StringVar(&opts.white, "white", "", "white (first) player: "+playerHelp)
	cmd.Flags().StringVar(&opts.black, "black", "", "black (second) player: "+playerHelp)
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "write the move list to this file")
	return cmd
}

func (a *app) strategyOr(name string) (astar.Strategy, error) {
	if name == "" {
		return a.cfg.SearchStrategy(), nil
	}
	return astar.ParseStrategy(name)
}

func formatChessGame(game *bench.Game[chessgame.Position, *chess.Move]) string {
	return chessgame.FormatMoves(game.Start, game.Moves)
}

func runPlay[P any, M any](
	cmd *cobra.Command, a *app, g *gameKit[P, M], text string, opts playOptions,
	format func(*bench.Game[P, M]) string,
) error {
	pos, err := g.position(text)
	if err != nil {
		return err
	}
	white, _, err := newPlayer(a, g, opts.white)
	if err != nil {
		return err
	}
	black, _, err := newPlayer(a, g, opts.black)
	if err != nil {
		return err
	}

	game, err := bench.PlayGame(cmd.Context(), g.rules, g.eval, white, black, pos, a.cfg.MaxMoves,
		func(_ P, moves []M) {
			a.printf("%3d. %v\n", len(moves), moves[len(moves)-1])
		})
	if err != nil {
		return err
	}

	a.printf("%s", g.pretty(game.Final))
	switch winner, decided := game.Winner(); {
	case game.Unfinished:
		a.printf("%s\n", a.faint(fmt.Sprintf("stopped after %d moves", len(game.Moves))))
	case decided:
		a.printf("%s\n", a.good(winner.String()+" wins"))
	default:
		a.printf("%s\n", a.bold("draw"))
	}

	if opts.outPath == "" {
		return nil
	}
	var out string
	if format != nil {
		out = format(game)
	} else {
		moves := make([]string, len(game.Moves))
		for i, m := range game.Moves {
			moves[i] = fmt.Sprint(m)
		}
		out = strings.Join(moves, " ") + "\n"
	}
	return os.WriteFile(opts.outPath, []byte(out), 0o644)
}
