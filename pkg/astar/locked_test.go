package astar

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRootLockedSearch(t *testing.T) {
	game := &hashGame{branching: 8, depth: 6}
	tree := NewTree[string, string](game, game, "r")
	tree.SetLimits(DefaultLimits().SetMovetime(30 * time.Millisecond).SetThreads(4))

	if err := tree.Search(); err != nil {
		t.Fatal(err)
	}
	if tree.Cycles() == 0 {
		t.Fatal("no descent")
	}
	if n := tree.ClaimConflicts(); n != 0 {
		t.Errorf("%d root branches were claimed twice at the same time", n)
	}
	// every claim was released, the root queue is whole again
	if err := CheckConsistency(tree); err != nil {
		t.Error(err)
	}
	if tree.Limiter.StopReason() != StopMovetime {
		t.Errorf("stop reason = %v", tree.Limiter.StopReason())
	}
}

func TestRootLockedMoreWorkersThanBranches(t *testing.T) {
	game := &hashGame{branching: 2, depth: 40, delay: 2 * time.Millisecond}
	tree := NewTree[string, string](game, game, "r")
	tree.SetLimits(DefaultLimits().SetMovetime(100 * time.Millisecond).SetThreads(4))

	if err := tree.Search(); err != nil {
		t.Fatal(err)
	}
	if tree.IdleWorkers() == 0 {
		t.Error("with 4 workers and 2 root branches some worker must find the queue empty")
	}
	if n := tree.ClaimConflicts(); n != 0 {
		t.Errorf("%d claim conflicts", n)
	}
}

func TestRootLockedWinningMove(t *testing.T) {
	game := winningScript()
	tree := NewTree[string, string](game, game, "r")
	tree.SetLimits(DefaultLimits().SetMovetime(20 * time.Millisecond).SetThreads(2))

	if err := tree.Search(); err != nil {
		t.Fatal(err)
	}
	if move, _ := tree.BestMove(); move != "win" {
		t.Errorf("best move = %q, want win", move)
	}
}

func TestClaimTicket(t *testing.T) {
	game := smallScript()
	tree := NewTree[string, string](game, game, "r")
	var conflicts atomic.Uint64
	shared := newSharedRoot(tree.Root, &conflicts)

	first, err := shared.claim()
	if err != nil || first == nil || first.index != 0 {
		t.Fatalf("first claim = %+v, %v", first, err)
	}
	second, _ := shared.claim()
	if second == nil || second.index != 1 {
		t.Fatalf("second claim = %+v", second)
	}
	if third, err := shared.claim(); third != nil || err != nil {
		t.Fatalf("claim on an empty root = %+v, %v", third, err)
	}

	if err := shared.release(first, ScorePair{9, -9}); err != nil {
		t.Fatal(err)
	}
	if again, _ := shared.claim(); again == nil || again.index != 0 {
		t.Fatal("released branch should be claimable again")
	}
	if conflicts.Load() != 0 {
		t.Errorf("conflicts = %d", conflicts.Load())
	}

	defer func() {
		if recover() == nil {
			t.Error("releasing a claim twice must panic")
		}
	}()
	_ = shared.release(first, ScorePair{})
}

func TestClaimConflictOnSharedBranch(t *testing.T) {
	game := smallScript()
	tree := NewTree[string, string](game, game, "r")
	var conflicts atomic.Uint64
	shared := newSharedRoot(tree.Root, &conflicts)

	first, _ := shared.claim()
	shared.hold(first)

	// a stray queue entry hands the same branch to a second worker
	_ = shared.locked(func(root *Node[string, string]) {
		root.queue.Push(Entry{Score: WinningScore, Index: first.index})
	})
	second, _ := shared.claim()
	if second == nil || second.index != first.index {
		t.Fatalf("second claim = %+v", second)
	}
	shared.hold(second)
	if conflicts.Load() != 1 {
		t.Errorf("conflicts = %d, want 1", conflicts.Load())
	}

	shared.unhold(first)
	third := &claim[string, string]{index: first.index}
	shared.hold(third)
	if conflicts.Load() != 1 {
		t.Errorf("a branch held again after unhold counted as a conflict")
	}
}

func TestPoisonedRootFailsSearch(t *testing.T) {
	game := &hashGame{branching: 4, depth: 4}
	tree := NewTree[string, string](game, game, "r")
	tree.SetLimits(DefaultLimits().SetMovetime(20 * time.Millisecond).SetThreads(2))

	tree.shared = newSharedRoot(tree.Root, &tree.claimConflicts)
	err := tree.shared.locked(func(*Node[string, string]) {
		panic("worker died holding the root")
	})
	if !errors.Is(err, ErrPoisoned) {
		t.Fatalf("panic under the lock returned %v", err)
	}

	if err := tree.Search(); !errors.Is(err, ErrPoisoned) {
		t.Errorf("search on a poisoned root returned %v, want ErrPoisoned", err)
	}
}

func TestWorkerPanicFailsSearch(t *testing.T) {
	game := smallScript()
	game.panicAt = "r/a"
	tree := NewTree[string, string](game, game, "r")
	tree.SetLimits(DefaultLimits().SetMovetime(50 * time.Millisecond).SetThreads(2))

	if err := tree.Search(); !errors.Is(err, ErrWorkerPanic) {
		t.Errorf("got %v, want ErrWorkerPanic", err)
	}
}
