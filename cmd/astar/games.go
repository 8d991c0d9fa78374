package main

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/IlikeChooros/go-astar/pkg/astar"
	"github.com/IlikeChooros/go-astar/pkg/games/chessgame"
	"github.com/IlikeChooros/go-astar/pkg/games/tictactoe"
)

// Everything a command needs to know about one game
type gameKit[P any, M any] struct {
	rules astar.Rules[P, M]
	eval  astar.Evaluator[P]
	start P
	// position from its text form: FEN for chess, "XO./.../..." boards for tic-tac-toe
	parse  func(string) (P, error)
	pretty func(P) string
	style  astar.GraphStyle[P, M]
}

func (g *gameKit[P, M]) position(text string) (P, error) {
	if strings.TrimSpace(text) == "" {
		return g.start, nil
	}
	return g.parse(text)
}

func chessKit() *gameKit[chessgame.Position, *chess.Move] {
	return &gameKit[chessgame.Position, *chess.Move]{
		rules:  chessgame.Rules{},
		eval:   chessgame.ClassicEval{},
		start:  chessgame.StartingPosition(),
		parse:  chessgame.FromFEN,
		pretty: chessgame.Position.Pretty,
		style: astar.GraphStyle[chessgame.Position, *chess.Move]{
			NodeLabel: func(pos chessgame.Position, now, later astar.Score) string {
				return fmt.Sprintf("%s\nnow: %d\nlater: %d", pos.FEN(), now, later)
			},
		},
	}
}

func tictactoeKit() *gameKit[tictactoe.Position, tictactoe.Square] {
	return &gameKit[tictactoe.Position, tictactoe.Square]{
		rules:  tictactoe.Game{},
		eval:   tictactoe.Game{},
		start:  tictactoe.NewPosition(),
		parse:  tictactoe.ParsePosition,
		pretty: tictactoe.Position.Pretty,
		style: astar.GraphStyle[tictactoe.Position, tictactoe.Square]{
			NodeLabel: func(pos tictactoe.Position, now, later astar.Score) string {
				return fmt.Sprintf("%s\nnow: %d\nlater: %d", pos.Pretty(), now, later)
			},
		},
	}
}
