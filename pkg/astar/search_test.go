package astar

import (
	"errors"
	"testing"
	"time"
)

func TestInitRoot(t *testing.T) {
	game := smallScript()
	tree := NewTree[string, string](game, game, "r")

	if tree.Root.Side != White || len(tree.Root.Branches) != 2 {
		t.Fatalf("root: side=%v branches=%d", tree.Root.Side, len(tree.Root.Branches))
	}

	// branches are scored with the position they lead to
	if got := tree.Root.Branches[0].Scores; got != (ScorePair{5, -5}) {
		t.Errorf("branch a scores = %v, want (5, -5)", got)
	}
	if got := tree.Root.Branches[1].Scores; got != (ScorePair{1, -1}) {
		t.Errorf("branch b scores = %v, want (1, -1)", got)
	}

	entries := tree.Root.Entries()
	if len(entries) != 2 || entries[0] != (Entry{5, 0}) || entries[1] != (Entry{1, 1}) {
		t.Errorf("root entries = %v", entries)
	}
	if err := CheckConsistency(tree); err != nil {
		t.Error(err)
	}
}

func TestDescentPropagation(t *testing.T) {
	game := smallScript()
	tree := NewTree[string, string](game, game, "r")

	// 1: expand a, the child's best for Black is d
	if got := tree.Descent(tree.Root); got != (ScorePair{2, -2}) {
		t.Fatalf("descent 1 = %v, want (2, -2)", got)
	}
	if got := tree.Root.Branches[0].Scores; got != (ScorePair{2, -2}) {
		t.Errorf("a after descent 1 = %v", got)
	}

	// 2: expand a/d, its only reply e is bad for White, b becomes the best root branch
	if got := tree.Descent(tree.Root); got != (ScorePair{1, -1}) {
		t.Fatalf("descent 2 = %v, want (1, -1)", got)
	}
	if got := tree.Root.Branches[0].Scores; got != (ScorePair{-3, 3}) {
		t.Errorf("a after descent 2 = %v, want (-3, 3)", got)
	}

	// 3: expand b
	tree.Descent(tree.Root)
	if got := tree.Root.Branches[1].Scores; got != (ScorePair{4, -4}) {
		t.Errorf("b after descent 3 = %v, want (4, -4)", got)
	}
	if move, _ := tree.BestMove(); move != "b" {
		t.Errorf("best move = %s, want b", move)
	}
	if err := CheckConsistency(tree); err != nil {
		t.Error(err)
	}
	if tree.Expansions() != 3 || tree.MaxDepth() != 2 {
		t.Errorf("expansions=%d maxdepth=%d, want 3 and 2", tree.Expansions(), tree.MaxDepth())
	}
}

func TestTerminalShortCircuit(t *testing.T) {
	game := &script{scores: map[string]ScorePair{"r": {7, -7}}}
	tree := NewTree[string, string](game, game, "r")

	if !tree.Root.Terminal() || len(tree.Root.Branches) != 0 || len(tree.Root.Entries()) != 0 {
		t.Fatal("root of a position without moves must be terminal and empty")
	}
	if got := tree.Descent(tree.Root); got != (ScorePair{7, -7}) {
		t.Errorf("descent = %v, want static (7, -7)", got)
	}
	if len(tree.Root.Entries()) != 0 || tree.Expansions() != 0 {
		t.Error("descent modified a terminal node")
	}

	tree.SetLimits(DefaultLimits().SetMovetime(10 * time.Millisecond))
	if err := tree.Search(); err != nil {
		t.Fatal(err)
	}
	if _, ok := tree.BestMove(); ok {
		t.Error("terminal root has no best move")
	}
}

func TestSearchKeepsInvariants(t *testing.T) {
	for _, limits := range []*Limits{
		DefaultLimits().SetCycles(500),
		DefaultLimits().SetMovetime(20 * time.Millisecond),
	} {
		game := &hashGame{branching: 4, depth: 6}
		tree := NewTree[string, string](game, game, "r")
		tree.SetLimits(limits)

		if err := tree.Search(); err != nil {
			t.Fatal(err)
		}
		if tree.Cycles() == 0 {
			t.Fatalf("limits %v: no descent", limits)
		}
		if err := CheckConsistency(tree); err != nil {
			t.Errorf("limits %v: %v", limits, err)
		}
	}
}

func TestCheckConsistencyDetectsCorruption(t *testing.T) {
	game := smallScript()
	tree := NewTree[string, string](game, game, "r")
	tree.Descent(tree.Root)
	tree.Descent(tree.Root)

	tree.Root.Branches[0].Child.Branches[0].Scores = ScorePair{42, 42}
	if err := CheckConsistency(tree); !errors.Is(err, ErrInconsistent) {
		t.Errorf("got %v, want ErrInconsistent", err)
	}
}

func TestAnytimeNeverDecreases(t *testing.T) {
	game := &hashGame{branching: 3, depth: 8, cooperative: true}
	previous := LosingScore

	for cycles := uint32(0); cycles <= 120; cycles += 4 {
		tree := NewTree[string, string](game, game, "r")
		tree.SetLimits(DefaultLimits().SetCycles(cycles))
		if err := tree.Search(); err != nil {
			t.Fatal(err)
		}

		best := rootBestScore(tree)
		if best < previous {
			t.Fatalf("cycles=%d: best root score dropped from %d to %d", cycles, previous, best)
		}
		previous = best
	}
}

func TestWinningMoveIsChosen(t *testing.T) {
	game := winningScript()
	tree := NewTree[string, string](game, game, "r")
	tree.SetLimits(DefaultLimits().SetMovetime(20 * time.Millisecond))

	if err := tree.Search(); err != nil {
		t.Fatal(err)
	}
	if move, ok := tree.BestMove(); !ok || move != "win" {
		t.Errorf("best move = %q, want win", move)
	}
	if err := CheckConsistency(tree); err != nil {
		t.Error(err)
	}
}

func TestSearchListener(t *testing.T) {
	game := &hashGame{branching: 3, depth: 5}
	tree := NewTree[string, string](game, game, "r")
	tree.SetLimits(DefaultLimits().SetCycles(50))

	var cycles, depths, stops int
	var last ListenerTreeStats[string]
	listener := NewStatsListener[string]()
	listener.SetCycleInterval(10).
		OnCycle(func(ListenerTreeStats[string]) { cycles++ }).
		OnDepth(func(ListenerTreeStats[string]) { depths++ }).
		OnStop(func(s ListenerTreeStats[string]) { stops++; last = s })
	tree.SetListener(listener)

	if err := tree.Search(); err != nil {
		t.Fatal(err)
	}
	if cycles != 5 || stops != 1 || depths == 0 {
		t.Errorf("cycles=%d stops=%d depths=%d", cycles, stops, depths)
	}
	if last.StopReason != StopCycles || last.Cycles != 50 {
		t.Errorf("stop stats: reason=%v cycles=%d", last.StopReason, last.Cycles)
	}
}
