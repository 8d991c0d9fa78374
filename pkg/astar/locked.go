package astar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var (
	ErrPoisoned    = errors.New("astar: shared root poisoned")
	ErrWorkerPanic = errors.New("astar: search worker panicked")
)

// Exclusive right to refine one root branch. Only sharedRoot.claim hands
// them out (by popping the root queue) and each must go back through
// sharedRoot.release exactly once, which re-queues the branch.
type claim[P any, M any] struct {
	index    int
	branch   *Branch[P, M]
	released bool
}

// Root node of a root-locked search. The root queue is only touched under
// 'mu'; a branch's subtree belongs to whoever holds its claim. Workers raise
// and drop 'held' outside the lock, so two of them working on the same branch
// at once shows up as a claim conflict.
type sharedRoot[P any, M any] struct {
	mu        sync.Mutex
	root      *Node[P, M]
	poisoned  bool
	held      []atomic.Bool
	conflicts *atomic.Uint64
}

func newSharedRoot[P any, M any](root *Node[P, M], conflicts *atomic.Uint64) *sharedRoot[P, M] {
	return &sharedRoot[P, M]{
		root:      root,
		held:      make([]atomic.Bool, len(root.Branches)),
		conflicts: conflicts,
	}
}

// Run 'fn' holding the root lock. A panic inside marks the root as poisoned,
// every later call fails with ErrPoisoned.
func (s *sharedRoot[P, M]) locked(fn func(root *Node[P, M])) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		return ErrPoisoned
	}

	defer func() {
		if r := recover(); r != nil {
			s.poisoned = true
			err = fmt.Errorf("%w: %v", ErrPoisoned, r)
		}
	}()

	fn(s.root)
	return nil
}

// Pop the best root branch. A nil claim with a nil error means the queue is
// empty: there are more workers than unclaimed root branches.
func (s *sharedRoot[P, M]) claim() (*claim[P, M], error) {
	var ticket *claim[P, M]
	err := s.locked(func(root *Node[P, M]) {
		entry, ok := root.queue.Pop()
		if !ok {
			return
		}
		ticket = &claim[P, M]{index: entry.Index, branch: &root.Branches[entry.Index]}
	})
	return ticket, err
}

// Give the branch back with its refreshed scores
func (s *sharedRoot[P, M]) release(ticket *claim[P, M], scores ScorePair) error {
	if ticket.released {
		panic("astar: root branch claim released twice")
	}
	ticket.released = true

	return s.locked(func(root *Node[P, M]) {
		root.queue.Push(Entry{Score: scores.Get(root.Side), Index: ticket.index})
	})
}

// Mark the ticket's branch as being worked on, counting a conflict if
// another worker already is
func (s *sharedRoot[P, M]) hold(ticket *claim[P, M]) {
	if !s.held[ticket.index].CompareAndSwap(false, true) {
		s.conflicts.Add(1)
	}
}

func (s *sharedRoot[P, M]) unhold(ticket *claim[P, M]) {
	s.held[ticket.index].Store(false)
}

func (t *Tree[P, M]) searchLocked(workers int) error {
	if t.shared == nil {
		t.shared = newSharedRoot(t.Root, &t.claimConflicts)
	}

	t.concurrent = true
	defer func() { t.concurrent = false }()

	g, ctx := errgroup.WithContext(t.Limiter.Context())
	for id := range workers {
		g.Go(func() error {
			return t.lockedWorker(ctx, t.shared, id)
		})
	}
	return g.Wait()
}

func (t *Tree[P, M]) lockedWorker(ctx context.Context, shared *sharedRoot[P, M], id int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: worker %d: %v", ErrWorkerPanic, id, r)
		}
	}()

	// the root position never changes, reading it needs no lock
	from := shared.root.Position
	for ctx.Err() == nil && t.Limiter.Ok(t.Cycles()) {
		ticket, err := shared.claim()
		if err != nil {
			return err
		}
		if ticket == nil {
			t.idleWorkers.Add(1)
			t.logger.Warn().Int("worker", id).Msg("no root branch left to claim, worker exits")
			return nil
		}

		shared.hold(ticket)
		scores := t.refresh(ticket.branch, from, 1)
		shared.unhold(ticket)
		if err := shared.release(ticket, scores); err != nil {
			return err
		}
		t.cycles.Add(1)
	}
	return nil
}
