package astar

import (
	"errors"
	"fmt"
)

var ErrInconsistent = errors.New("astar: inconsistent search tree")

/*
CheckConsistency walks the whole tree and reports the first broken invariant:

  - a terminal node has no queue entries
  - every branch has exactly one queue entry, scored with the branch's cached
    scores from the node mover's perspective
  - an unexpanded branch caches the static evaluation of the position its move leads to
  - an expanded branch caches the scores of one of its child's best branches
    (or the child's static evaluation if the child is terminal)

The caller must make sure no search is running on the tree.
*/
func CheckConsistency[P any, M any](t *Tree[P, M]) error {
	return checkNode(t.Root, t.rules, t.eval, "root")
}

func checkNode[P any, M any](node *Node[P, M], rules Rules[P, M], eval Evaluator[P], path string) error {
	entries := node.Entries()
	if node.Terminal() {
		if len(entries) != 0 {
			return fmt.Errorf("%w: %s: terminal node has %d queue entries", ErrInconsistent, path, len(entries))
		}
		return nil
	}

	if len(entries) != len(node.Branches) {
		return fmt.Errorf("%w: %s: %d queue entries for %d branches", ErrInconsistent, path, len(entries), len(node.Branches))
	}

	seen := make([]bool, len(node.Branches))
	for _, e := range entries {
		if e.Index < 0 || e.Index >= len(node.Branches) || seen[e.Index] {
			return fmt.Errorf("%w: %s: bad or duplicate queue entry for branch %d", ErrInconsistent, path, e.Index)
		}
		seen[e.Index] = true
		if want := node.Branches[e.Index].Scores.Get(node.Side); e.Score != want {
			return fmt.Errorf("%w: %s: queue entry of branch %d scored %d, branch caches %d",
				ErrInconsistent, path, e.Index, e.Score, want)
		}
	}

	for i := range node.Branches {
		branch := &node.Branches[i]
		where := fmt.Sprintf("%s/%v", path, branch.Move)

		if branch.Child == nil {
			if want := PairOf(eval, rules.Apply(node.Position, branch.Move)); branch.Scores != want {
				return fmt.Errorf("%w: %s: unexpanded branch caches %s, static evaluation is %s",
					ErrInconsistent, where, branch.Scores, want)
			}
			continue
		}

		child := branch.Child
		candidates := make([]ScorePair, len(child.Branches))
		for j := range child.Branches {
			candidates[j] = child.Branches[j].Scores
		}
		if !matchesBest(branch.Scores, child.Side, candidates, PairOf(eval, child.Position)) {
			return fmt.Errorf("%w: %s: expanded branch caches %s, not one of its child's best branches",
				ErrInconsistent, where, branch.Scores)
		}

		if err := checkNode(child, rules, eval, where); err != nil {
			return err
		}
	}
	return nil
}

// Lock-free counterpart of CheckConsistency, same invariants minus the queue ones
func CheckAtomicConsistency[P any, M any](t *AtomicTree[P, M]) error {
	return checkAtomicNode(t.Root, t.rules, t.eval, "root")
}

func checkAtomicNode[P any, M any](node *AtomicNode[P, M], rules Rules[P, M], eval Evaluator[P], path string) error {
	for i := range node.Branches {
		branch := &node.Branches[i]
		where := fmt.Sprintf("%s/%v", path, branch.Move)
		scores := branch.Scores()

		child := branch.Child()
		if child == nil {
			if want := PairOf(eval, rules.Apply(node.Position, branch.Move)); scores != want {
				return fmt.Errorf("%w: %s: unexpanded branch caches %s, static evaluation is %s",
					ErrInconsistent, where, scores, want)
			}
			continue
		}

		candidates := make([]ScorePair, len(child.Branches))
		for j := range child.Branches {
			candidates[j] = child.Branches[j].Scores()
		}
		if !matchesBest(scores, child.Side, candidates, PairOf(eval, child.Position)) {
			return fmt.Errorf("%w: %s: expanded branch caches %s, not one of its child's best branches",
				ErrInconsistent, where, scores)
		}

		if err := checkAtomicNode(child, rules, eval, where); err != nil {
			return err
		}
	}
	return nil
}

// Whether 'cached' equals one of the candidates tied for the best score of
// 'side', or 'static' when there are no candidates
func matchesBest(cached ScorePair, side Side, candidates []ScorePair, static ScorePair) bool {
	if len(candidates) == 0 {
		return cached == static
	}

	top := candidates[0].Get(side)
	for _, c := range candidates[1:] {
		top = max(top, c.Get(side))
	}
	for _, c := range candidates {
		if c.Get(side) == top && c == cached {
			return true
		}
	}
	return false
}
