package reducer

import (
	"github.com/skeinlang/skein/internal/env"
	"github.com/skeinlang/skein/internal/graph"
)

// Step describes one apply+collapse cycle for the tracer.
type Step struct {
	// Binder is the consumed binder id, or graph.Unbound for a stuck
	// application that fell back to a plain pair.
	Binder int
	// Anchors are the arena ids of the Binder nodes that carried the
	// consumed id before the cycle ran. Several anchors mean the binder was
	// aliased across a spliced definition.
	Anchors []graph.NodeID
}

// Tracer receives one snapshot per apply+collapse cycle. Implementations
// must copy what they keep; the graph keeps growing after the call.
type Tracer interface {
	Snapshot(g *graph.Graph, focus graph.NodeID, step Step)
}

// Reducer reduces graphs to normal form, leftmost-outermost. It never fails
// on a graph the builder produced: slots whose binder never turns up simply
// pass through unsubstituted.
type Reducer struct {
	Env    *env.Environment
	Tracer Tracer
}

func New(environment *env.Environment) *Reducer {
	return &Reducer{Env: environment}
}

// Evaluate reduces the subgraph under id and returns the id of its normal
// form. New nodes are appended to g; whatever the result no longer reaches
// is garbage.
func (r *Reducer) Evaluate(g *graph.Graph, id graph.NodeID) graph.NodeID {
	n := g.Node(id)
	switch n.Kind {
	case graph.EMPTY_NODE, graph.BINDER_NODE, graph.SLOT_NODE:
		return id

	case graph.SYMBOL_NODE:
		if r.Env != nil {
			if spliced, ok := r.Env.Resolve(g, n.Name); ok {
				return r.Evaluate(g, spliced)
			}
		}
		return id

	case graph.PAIR_NODE:
		if g.Node(n.Left).Kind == graph.BINDER_NODE {
			// A binding pair is a value; reduction happens when it is
			// applied, never underneath its binder.
			return id
		}
		op := r.Evaluate(g, n.Left)
		arg := r.Evaluate(g, n.Right)

		res, step, substituted := r.apply(g, op, arg)
		res = r.collapse(g, res)
		if r.Tracer != nil {
			r.Tracer.Snapshot(g, res, step)
		}
		if !substituted {
			return res
		}
		return r.Evaluate(g, res)
	}
	panic("reducer: unknown node kind " + string(n.Kind))
}

// apply scans op depth-first, left to right, for the first still-open
// binder. With no binder in sight the application is stuck and stays a plain
// pair. Otherwise every slot waiting on that binder receives its own
// renumbered clone of arg, and every Binder node carrying the id is spent:
// it turns into Empty for collapse to strip.
func (r *Reducer) apply(g *graph.Graph, op, arg graph.NodeID) (graph.NodeID, Step, bool) {
	binderID, found := firstOpenBinder(g, op)
	if !found {
		return g.AddPair(op, arg, g.Node(op).Path), Step{Binder: graph.Unbound}, false
	}

	step := Step{Binder: binderID, Anchors: binderNodes(g, op, binderID)}
	return r.substitute(g, op, binderID, arg), step, true
}

func firstOpenBinder(g *graph.Graph, id graph.NodeID) (int, bool) {
	n := g.Node(id)
	switch n.Kind {
	case graph.BINDER_NODE:
		return n.Binder, true
	case graph.PAIR_NODE:
		if b, ok := firstOpenBinder(g, n.Left); ok {
			return b, true
		}
		return firstOpenBinder(g, n.Right)
	default:
		return 0, false
	}
}

func binderNodes(g *graph.Graph, id graph.NodeID, binderID int) []graph.NodeID {
	var anchors []graph.NodeID
	var walk func(graph.NodeID)
	walk = func(id graph.NodeID) {
		n := g.Node(id)
		switch n.Kind {
		case graph.BINDER_NODE:
			if n.Binder == binderID {
				anchors = append(anchors, id)
			}
		case graph.PAIR_NODE:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(id)
	return anchors
}

// substitute rebuilds op with binderID spent. Unaffected subtrees are reused
// as-is, keeping their ids for later consumption; each matching slot gets a
// private clone of arg so no argument instance is ever shared.
func (r *Reducer) substitute(g *graph.Graph, id graph.NodeID, binderID int, arg graph.NodeID) graph.NodeID {
	n := g.Node(id)
	switch n.Kind {
	case graph.BINDER_NODE:
		if n.Binder == binderID {
			return g.AddEmpty(n.Path)
		}
		return id
	case graph.SLOT_NODE:
		if n.Binder == binderID {
			return graph.CloneInto(g, g, arg, true)
		}
		return id
	case graph.PAIR_NODE:
		left := r.substitute(g, n.Left, binderID, arg)
		right := r.substitute(g, n.Right, binderID, arg)
		if left == n.Left && right == n.Right {
			return id
		}
		return g.AddPair(left, right, n.Path)
	default:
		return id
	}
}

// collapse strips exhausted binder wrappers: a pair whose collapsed left
// child is Empty gives way to its collapsed right child. Nested wrappers
// peel inside-out through the post-order walk.
func (r *Reducer) collapse(g *graph.Graph, id graph.NodeID) graph.NodeID {
	n := g.Node(id)
	if n.Kind != graph.PAIR_NODE {
		return id
	}
	left := r.collapse(g, n.Left)
	right := r.collapse(g, n.Right)
	if g.Node(left).Kind == graph.EMPTY_NODE {
		return right
	}
	if left == n.Left && right == n.Right {
		return id
	}
	return g.AddPair(left, right, n.Path)
}
