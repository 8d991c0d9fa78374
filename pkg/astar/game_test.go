package astar

import (
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	SetSeedGeneratorFn(func() int64 {
		return 42
	})
	fmt.Printf("Using seed %d\n", SeedGeneratorFn())

	os.Exit(m.Run())
}

// Positions are paths ("r", "r/a", "r/a/c"), a move is the next path segment.
// White moves at even depths, Black at odd ones.
func sideOf(pos string) Side {
	return Side(strings.Count(pos, "/") % 2)
}

// Hand-written game tree, positions without moves are terminal
type script struct {
	moves  map[string][]string
	scores map[string]ScorePair
	// position whose Apply panics
	panicAt string
}

func (s *script) LegalMoves(pos string) []string { return s.moves[pos] }
func (s *script) SideToMove(pos string) Side     { return sideOf(pos) }
func (s *script) IsTerminal(pos string) bool     { return len(s.moves[pos]) == 0 }

func (s *script) Apply(pos string, move string) string {
	if pos == s.panicAt {
		panic("apply failed at " + pos)
	}
	return pos + "/" + move
}

func (s *script) Evaluate(pos string, side Side) Score {
	return s.scores[pos].Get(side)
}

/*
	r (0,0)
	├── a (5,-5)
	│   ├── c (6,-6)
	│   └── d (2,-2)
	│       └── e (-3,3)
	└── b (1,-1)
	    └── f (4,-4)

No ties anywhere, so three descents always go: expand a, expand a/d, expand b.
*/
func smallScript() *script {
	return &script{
		moves: map[string][]string{
			"r":     {"a", "b"},
			"r/a":   {"c", "d"},
			"r/a/d": {"e"},
			"r/b":   {"f"},
		},
		scores: map[string]ScorePair{
			"r":       {0, 0},
			"r/a":     {5, -5},
			"r/b":     {1, -1},
			"r/a/c":   {6, -6},
			"r/a/d":   {2, -2},
			"r/a/d/e": {-3, 3},
			"r/b/f":   {4, -4},
		},
	}
}

// Exactly two moves: one wins on the spot, the other leads to a quiet position
func winningScript() *script {
	return &script{
		moves: map[string][]string{
			"r":         {"quiet", "win"},
			"r/quiet":   {"x", "y"},
			"r/quiet/x": {"z"},
		},
		scores: map[string]ScorePair{
			"r":           {0, 0},
			"r/win":       {WinningScore, LosingScore},
			"r/quiet":     {0, 0},
			"r/quiet/x":   {1, -1},
			"r/quiet/y":   {-1, 1},
			"r/quiet/x/z": {2, -2},
		},
	}
}

// Uniform game tree of the given branching factor and depth, with
// pseudo-random (hash based) but deterministic scores
type hashGame struct {
	branching int
	depth     int
	// Both sides see the same score, growing with depth
	cooperative bool
	// Sleep on every move application
	delay time.Duration
}

func (g *hashGame) LegalMoves(pos string) []string {
	if strings.Count(pos, "/") >= g.depth {
		return nil
	}
	moves := make([]string, g.branching)
	for i := range moves {
		moves[i] = strconv.Itoa(i)
	}
	return moves
}

func (g *hashGame) Apply(pos string, move string) string {
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	return pos + "/" + move
}

func (g *hashGame) SideToMove(pos string) Side { return sideOf(pos) }
func (g *hashGame) IsTerminal(pos string) bool { return strings.Count(pos, "/") >= g.depth }

func (g *hashGame) Evaluate(pos string, side Side) Score {
	h := fnv.New32a()
	h.Write([]byte(pos))
	v := int(h.Sum32() % 201)

	if g.cooperative {
		return Score(10*strings.Count(pos, "/") + v%5)
	}
	if side == Black {
		h.Write([]byte{'b'})
		v = int(h.Sum32() % 201)
	}
	return Score(v - 100)
}

func rootBestScore[P any, M any](t *Tree[P, M]) Score {
	i, _ := t.Root.BestIndex()
	return t.Root.Branches[i].Scores.Get(t.Root.Side)
}
