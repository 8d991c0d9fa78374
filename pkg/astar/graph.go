package astar

import (
	"fmt"
	"strconv"

	"github.com/emicklei/dot"
)

// Label callbacks of the graph export. Scores handed to NodeLabel and
// LeafLabel are from the root mover's perspective.
type GraphStyle[P any, M any] struct {
	// Expanded position: its static score ('now') and its best branch score ('later')
	NodeLabel func(pos P, now, later Score) string
	// Branch: its move and cached scores
	EdgeLabel func(move M, scores ScorePair) string
	// Position behind an unexpanded branch, with its static score
	LeafLabel func(pos P, value Score) string
}

func DefaultGraphStyle[P any, M any]() GraphStyle[P, M] {
	return GraphStyle[P, M]{
		NodeLabel: func(_ P, now, later Score) string {
			return fmt.Sprintf("now: %d\nlater: %d", now, later)
		},
		EdgeLabel: func(move M, scores ScorePair) string {
			return fmt.Sprintf("%v\n%s", move, scores)
		},
		LeafLabel: func(_ P, value Score) string {
			return strconv.Itoa(int(value))
		},
	}
}

type graphBuilder[P any, M any] struct {
	graph  *dot.Graph
	rules  Rules[P, M]
	eval   Evaluator[P]
	style  GraphStyle[P, M]
	side   Side
	nextID int
}

/*
BuildGraph exports the tree as a directed graph. Every expanded branch gives
an edge to the child's node, every unexpanded branch gives an edge to a
dotted leaf. The edge of each node's best branch is drawn bold, the others
light grey.
*/
func BuildGraph[P any, M any](v TreeView[P, M], rules Rules[P, M], eval Evaluator[P], style GraphStyle[P, M]) *dot.Graph {
	defaults := DefaultGraphStyle[P, M]()
	if style.NodeLabel == nil {
		style.NodeLabel = defaults.NodeLabel
	}
	if style.EdgeLabel == nil {
		style.EdgeLabel = defaults.EdgeLabel
	}
	if style.LeafLabel == nil {
		style.LeafLabel = defaults.LeafLabel
	}

	b := &graphBuilder[P, M]{
		graph: dot.NewGraph(dot.Directed),
		rules: rules,
		eval:  eval,
		style: style,
		side:  v.Side(),
	}
	b.graph.Attr("splines", "true")
	b.addNode(v)
	return b.graph
}

func (b *graphBuilder[P, M]) node(label string) dot.Node {
	id := "n" + strconv.Itoa(b.nextID)
	b.nextID++
	return b.graph.Node(id).Attr("shape", "rect").Attr("label", label)
}

func (b *graphBuilder[P, M]) addNode(v TreeView[P, M]) dot.Node {
	now := b.eval.Evaluate(v.Position(), b.side)
	later := bestScoresOf(v, b.eval).Get(b.side)
	from := b.node(b.style.NodeLabel(v.Position(), now, later))

	best, _ := v.Best()
	for i := range v.Len() {
		var to dot.Node
		if child, ok := v.Child(i); ok {
			to = b.addNode(child)
		} else {
			pos := b.rules.Apply(v.Position(), v.Move(i))
			to = b.node(b.style.LeafLabel(pos, b.eval.Evaluate(pos, b.side))).Attr("style", "dotted")
		}

		edge := b.graph.Edge(from, to).Attr("label", b.style.EdgeLabel(v.Move(i), v.Scores(i)))
		if i == best {
			edge.Attr("penwidth", "2")
		} else {
			edge.Attr("color", "lightgrey")
		}
	}
	return from
}
