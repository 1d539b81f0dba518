package search

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/magichess/magic"
)

const graphName = "search"

// tracer records the tree explored by one search as a graphviz graph.
// All methods are no-ops on a nil tracer, and ids of -1 are ignored.
type tracer struct {
	graph *gographviz.Graph
	next  int
	limit int
	err   error
}

func newTracer(limit int) *tracer {
	g := gographviz.NewGraph()
	t := &tracer{graph: g, limit: limit}
	t.keep(g.SetName(graphName))
	t.keep(g.SetDir(true))
	return t
}

// reserve hands out the next node id, or -1 once the budget is spent.
func (t *tracer) reserve() int {
	if t == nil || t.next >= t.limit {
		return -1
	}
	t.next++
	return t.next - 1
}

func (t *tracer) node(id int, turn chess.Color, score float32, depth int) {
	if t == nil || id < 0 {
		return
	}
	label := fmt.Sprintf("%v to move\nscore %v, depth %d", turn, score, depth)
	t.keep(t.graph.AddNode(graphName, name(id), map[string]string{
		"label": strconv.Quote(label),
	}))
}

func (t *tracer) edge(parent, child int, m *chess.Move, e magic.Effect) {
	if t == nil || parent < 0 || child < 0 {
		return
	}
	attrs := map[string]string{"label": strconv.Quote(m.String())}
	if e.Kind != magic.None {
		attrs["label"] = strconv.Quote(m.String() + "\n" + e.String())
		attrs["color"] = "blue"
	}
	t.keep(t.graph.AddEdge(name(parent), name(child), true, attrs))
}

func (t *tracer) keep(err error) {
	if err != nil && t.err == nil {
		t.err = errors.WithStack(err)
	}
}

func (t *tracer) render() (string, error) {
	if t.err != nil {
		return "", t.err
	}
	return t.graph.String(), nil
}

func name(id int) string { return "n" + strconv.Itoa(id) }
