package main

import (
	"github.com/spf13/cobra"

	"github.com/IlikeChooros/go-astar/pkg/bench"
)

type matchOptions struct {
	p1      string
	p2      string
	games   int
	workers int
}

func newMatchCmd(a *app) *cobra.Command {
	opts := matchOptions{}

	cmd := &cobra.Command{
		Use:   "match [position]",
		Short: "Play a series of games between two players",
		Long: `Play --games games between two players over --arena-workers workers, the
first player takes White in every other game. Prints the summary as JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			if a.gameName == "tictactoe" {
				return runMatch(cmd, a, tictactoeKit(), text, opts)
			}
			return runMatch(cmd, a, chessKit(), text, opts)
		},
	}
	cmd.Flags().StringVar(&opts.p1, "p1", "", "first player: "+playerHelp)
	cmd.Flags().StringVar(&opts.p2, "p2", "", "second player: "+playerHelp)
	cmd.Flags().IntVarP(&opts.games, "games", "n", 10, "number of games")
	cmd.Flags().IntVar(&opts.workers, "arena-workers", 2, "games played at the same time")
	return cmd
}

func runMatch[P any, M any](cmd *cobra.Command, a *app, g *gameKit[P, M], text string, opts matchOptions) error {
	pos, err := g.position(text)
	if err != nil {
		return err
	}
	p1, name1, err := newPlayer(a, g, opts.p1)
	if err != nil {
		return err
	}
	p2, name2, err := newPlayer(a, g, opts.p2)
	if err != nil {
		return err
	}

	arena := bench.NewVersusArena(g.rules, g.eval, pos, p1, p2).
		Setup(opts.games, opts.workers, a.cfg.MaxMoves).
		SetNames(name1, name2)

	summary, err := arena.Start(cmd.Context(), bench.NewLogListener[M](a.log))
	if err != nil {
		return err
	}
	a.printf("%s\n", a.bold(summary.String()))
	return nil
}
