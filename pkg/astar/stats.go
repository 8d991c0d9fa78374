package astar

import (
	"time"

	"github.com/samber/lo"
)

// Number of nodes reachable through expanded branches, 'v' included
func CountNodes[P any, M any](v TreeView[P, M]) int {
	count := 1
	for i := range v.Len() {
		if child, ok := v.Child(i); ok {
			count += CountNodes(child)
		}
	}
	return count
}

// Length of the longest chain of expanded branches below 'v', 0 for a leaf
func Depth[P any, M any](v TreeView[P, M]) int {
	depth := 0
	for i := range v.Len() {
		if child, ok := v.Child(i); ok {
			depth = max(depth, 1+Depth(child))
		}
	}
	return depth
}

// Depth reached through each branch of 'v', 1 for an unexpanded branch
func BranchDepths[P any, M any](v TreeView[P, M]) []int {
	depths := make([]int, v.Len())
	for i := range depths {
		depths[i] = 1
		if child, ok := v.Child(i); ok {
			depths[i] += Depth(child)
		}
	}
	return depths
}

type Statistics struct {
	Nodes          int           `json:"nodes"`
	Depth          int           `json:"depth"`
	BranchDepths   []int         `json:"branch_depths"`
	MinBranchDepth int           `json:"min_branch_depth"`
	MaxBranchDepth int           `json:"max_branch_depth"`
	Elapsed        time.Duration `json:"elapsed"`
	NodesPerSecond float64       `json:"nodes_per_second"`
}

func CollectStatistics[P any, M any](v TreeView[P, M], elapsed time.Duration) Statistics {
	depths := BranchDepths(v)
	stats := Statistics{
		Nodes:          CountNodes(v),
		Depth:          Depth(v),
		BranchDepths:   depths,
		MinBranchDepth: lo.Min(depths),
		MaxBranchDepth: lo.Max(depths),
		Elapsed:        elapsed,
	}
	if elapsed > 0 {
		stats.NodesPerSecond = float64(stats.Nodes) / elapsed.Seconds()
	}
	return stats
}
