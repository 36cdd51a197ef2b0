package graph

import (
	"fmt"
	"strings"
)

// Format renders the subgraph under id as canonical source text. Binders,
// slots and empties all print as (), so formatted output re-parses to an
// equivalent graph.
func (g *Graph) Format(id NodeID) string {
	var sb strings.Builder
	g.format(id, &sb)
	return sb.String()
}

func (g *Graph) format(id NodeID, sb *strings.Builder) {
	n := g.Node(id)
	switch n.Kind {
	case EMPTY_NODE, BINDER_NODE, SLOT_NODE:
		sb.WriteString("()")
	case SYMBOL_NODE:
		sb.WriteString(n.Name)
	case PAIR_NODE:
		sb.WriteByte('(')
		g.format(n.Left, sb)
		sb.WriteByte(' ')
		g.format(n.Right, sb)
		sb.WriteByte(')')
	default:
		panic("graph: unknown node kind " + string(n.Kind))
	}
}

// Inspect renders the subgraph with binder ids kept visible, for debugging
// and trace output. Binders print as [#n], slots as [n].
func (g *Graph) Inspect(id NodeID) string {
	n := g.Node(id)
	switch n.Kind {
	case EMPTY_NODE:
		return "()"
	case SYMBOL_NODE:
		return n.Name
	case BINDER_NODE:
		return fmt.Sprintf("[#%d]", n.Binder)
	case SLOT_NODE:
		if n.Binder == Unbound {
			return "[_]"
		}
		return fmt.Sprintf("[%d]", n.Binder)
	case PAIR_NODE:
		return "(" + g.Inspect(n.Left) + " " + g.Inspect(n.Right) + ")"
	}
	panic("graph: unknown node kind " + string(n.Kind))
}
