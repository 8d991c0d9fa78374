package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/IlikeChooros/go-astar/pkg/astar"
	"github.com/IlikeChooros/go-astar/pkg/bench"
)

const defaultExhaustiveDepth = 2

const playerHelp = "sequential, rootlocked, lockfree, random, greedy or exhaustive[:depth]"

// Build the player called 'name': a search strategy, or one of the baseline
// players. An empty name means the configured strategy.
func newPlayer[P any, M any](a *app, g *gameKit[P, M], name string) (astar.Player[P, M], string, error) {
	kind, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(name)), ":")
	if hasArg && kind != "exhaustive" {
		return nil, "", fmt.Errorf("player %q takes no argument", kind)
	}

	switch kind {
	case "random":
		return bench.NewRandomPlayer(g.rules), kind, nil
	case "greedy":
		return bench.NewGreedyPlayer(g.rules, g.eval), kind, nil
	case "exhaustive":
		depth := defaultExhaustiveDepth
		if hasArg {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				return nil, "", fmt.Errorf("bad exhaustive depth %q", arg)
			}
			depth = n
		}
		return bench.NewExhaustivePlayer(g.rules, g.eval, depth), fmt.Sprintf("exhaustive:%d", depth), nil
	}

	strategy, err := a.strategyOr(name)
	if err != nil {
		return nil, "", fmt.Errorf("unknown player %q, want %s", name, playerHelp)
	}
	return newEngine(a, g, strategy), strategy.String(), nil
}
