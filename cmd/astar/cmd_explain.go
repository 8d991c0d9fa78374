package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/notnil/chess"
	"github.com/spf13/cobra"

	"github.com/IlikeChooros/go-astar/pkg/astar"
	"github.com/IlikeChooros/go-astar/pkg/games/chessgame"
)

type explainOptions struct {
	turn  int
	side  string
	start string
}

func newExplainCmd(a *app) *cobra.Command {
	opts := explainOptions{}

	cmd := &cobra.Command{
		Use:   "explain <game file>",
		Short: "Search the position before a recorded chess move and compare",
		Long: `Read a chess game, either a move list ("1. e4 e5 2. Nf3 ...") played from
--fen or a tagged PGN game (a [FEN] tag sets its start), take the position
before the move played by --side on turn --turn, and search it again. The searched tree is
written as a Graphviz file next to the game file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.gameName != "chess" {
				return fmt.Errorf("explain only reads chess games")
			}
			return runExplain(cmd, a, args[0], opts)
		},
	}
	cmd.Flags().IntVar(&opts.turn, "turn", 1, "turn number of the move")
	cmd.Flags().StringVar(&opts.side, "side", "white", "side that played the move: white or black")
	cmd.Flags().StringVar(&opts.start, "fen", "", "starting position of the game, the standard one by default")
	return cmd
}

// Index of the move played by 'side' on 'turn', when turns are numbered
// from 1 starting at a position where 'first' moves
func plyIndex(turn int, side, first astar.Side) int {
	index := (turn - 1) * 2
	if side == astar.Black {
		index++
	}
	if first == astar.Black {
		// "1... e5" is the only move of turn 1
		index--
	}
	return index
}

func dotPathFor(gamePath string, turn int, side astar.Side) string {
	base := strings.TrimSuffix(gamePath, filepath.Ext(gamePath))
	return fmt.Sprintf("%s.turn%d-%s.dot", base, turn, side)
}

func runExplain(cmd *cobra.Command, a *app, path string, opts explainOptions) error {
	var side astar.Side
	switch strings.ToLower(opts.side) {
	case "white", "w":
		side = astar.White
	case "black", "b":
		side = astar.Black
	default:
		return fmt.Errorf("unknown side %q", opts.side)
	}

	g := chessKit()
	start, err := g.position(opts.start)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	start, moves, err := chessgame.ReadGame(f, start)
	f.Close()
	if err != nil {
		return err
	}

	index := plyIndex(opts.turn, side, g.rules.SideToMove(start))
	if index < 0 || index >= len(moves) {
		return fmt.Errorf("%s has no move by %s on turn %d", path, side, opts.turn)
	}
	pos := chessgame.Replay(start, moves)[index]
	played := moves[index]

	engine := newEngine(a, g, a.cfg.SearchStrategy())
	result, err := engine.Search(cmd.Context(), pos)
	if err != nil {
		return err
	}
	astar.Report(a.log, result.View, g.rules, g.eval, result.Elapsed)

	dotPath := dotPathFor(path, opts.turn, side)
	if err := writeGraph(dotPath, astar.BuildGraph(result.View, g.rules, g.eval, g.style)); err != nil {
		return err
	}

	notation := chess.AlgebraicNotation{}
	playedSAN := notation.Encode(pos.Chess(), played)
	chosenSAN := notation.Encode(pos.Chess(), result.Move)

	a.printf("%s", g.pretty(pos))
	a.printf("played  %s\n", a.bold(playedSAN))
	a.printf("engine  %s\n", a.bold(chosenSAN))
	a.printf("line    %s\n", colorLine(a, astar.BestLine(result.View, g.rules, g.eval)))
	if played.String() == result.Move.String() {
		a.printf("%s\n", a.good("the engine agrees"))
	} else {
		a.printf("%s\n", a.bad("the engine prefers another move"))
	}
	a.printf("%s\n", a.faint("tree written to "+dotPath))
	return nil
}
