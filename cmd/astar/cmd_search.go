package main

import (
	"fmt"
	"os"
	"time"

	"github.com/emicklei/dot"
	"github.com/spf13/cobra"

	"github.com/IlikeChooros/go-astar/pkg/astar"
)

func newSearchCmd(a *app) *cobra.Command {
	var dotPath string

	cmd := &cobra.Command{
		Use:   "search [position]",
		Short: "Search one position and print the best move and line",
		Long: `Search one position with the configured strategy and limits. The position
is a FEN for chess, or a board like "XO./.X./..." for tic-tac-toe; without
one the game's starting position is searched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			if a.gameName == "tictactoe" {
				return runSearch(cmd, a, tictactoeKit(), text, dotPath)
			}
			return runSearch(cmd, a, chessKit(), text, dotPath)
		},
	}
	cmd.Flags().StringVar(&dotPath, "dot", "", "write the searched tree as a Graphviz file")
	return cmd
}

func runSearch[P any, M any](cmd *cobra.Command, a *app, g *gameKit[P, M], text, dotPath string) error {
	pos, err := g.position(text)
	if err != nil {
		return err
	}

	engine := newEngine(a, g, a.cfg.SearchStrategy())
	result, err := engine.Search(cmd.Context(), pos)
	if err != nil {
		return err
	}
	astar.Report(a.log, result.View, g.rules, g.eval, result.Elapsed)

	line := astar.BestLine(result.View, g.rules, g.eval)
	a.printf("%s", g.pretty(pos))
	a.printf("bestmove %s\n", a.bold(fmt.Sprint(result.Move)))
	a.printf("line     %s\n", colorLine(a, line))
	a.printf("%s\n", a.faint(fmt.Sprintf("nodes %d, depth %d, %s, stopped by %s",
		result.Stats.Nodes, result.Stats.Depth, result.Elapsed.Round(time.Millisecond), result.StopReason)))

	if dotPath != "" {
		return writeGraph(dotPath, astar.BuildGraph(result.View, g.rules, g.eval, g.style))
	}
	return nil
}

func writeGraph(path string, graph *dot.Graph) error {
	if err := os.WriteFile(path, []byte(graph.String()), 0o644); err != nil {
		return fmt.Errorf("write graph %s: %w", path, err)
	}
	return nil
}
