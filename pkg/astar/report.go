package astar

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/IlikeChooros/go-astar/pkg/logging"
)

/*
Report prints what a finished search found, through 'log' only:

	Info:  tree statistics and the best line
	Debug: every other root line, best first
	Trace: the whole tree as JSON
*/
func Report[P any, M any](log *logging.Logger, v TreeView[P, M], rules Rules[P, M], eval Evaluator[P], elapsed time.Duration) {
	if !log.Allows(logging.LevelInfo) {
		return
	}

	stats := CollectStatistics(v, elapsed)
	log.Printf(logging.LevelInfo, "tree nodes: %d, depth: %d, level-1 depth min/max: %d/%d, %.0f nodes/s",
		stats.Nodes, stats.Depth, stats.MinBranchDepth, stats.MaxBranchDepth, stats.NodesPerSecond)

	best, ok := v.Best()
	if !ok {
		log.Printf(logging.LevelInfo, "terminal position, nothing to play")
		return
	}
	log.Printf(logging.LevelInfo, "best line: %s", LineFrom(v, best, rules, eval))

	if log.Allows(logging.LevelDebug) {
		for _, i := range v.Ranked() {
			if i != best {
				log.Printf(logging.LevelDebug, "line: %s", LineFrom(v, i, rules, eval))
			}
		}
	}

	if w, ok := log.Writer(logging.LevelTrace); ok {
		if err := WriteJSONTree(w, v); err != nil {
			log.Warn().Err(err).Msg("tree dump failed")
		}
	}
}

type jsonBranch struct {
	Move     string       `json:"move"`
	White    Score        `json:"white"`
	Black    Score        `json:"black"`
	Children []jsonBranch `json:"children,omitempty"`
}

func toJSONBranches[P any, M any](v TreeView[P, M]) []jsonBranch {
	branches := make([]jsonBranch, v.Len())
	for i := range branches {
		scores := v.Scores(i)
		branches[i] = jsonBranch{Move: fmt.Sprint(v.Move(i)), White: scores.White, Black: scores.Black}
		if child, ok := v.Child(i); ok {
			branches[i].Children = toJSONBranches(child)
		}
	}
	return branches
}

// Dump the tree as nested JSON branches
func WriteJSONTree[P any, M any](w io.Writer, v TreeView[P, M]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSONBranches(v))
}
