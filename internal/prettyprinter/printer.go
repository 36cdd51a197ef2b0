package prettyprinter

import (
	"strings"

	"github.com/mitchellh/colorstring"
	"github.com/skeinlang/skein/internal/graph"
)

// Printer renders graphs as source text, optionally colorized for
// terminals: symbols cyan, binders yellow, slots green, empties dark.
type Printer struct {
	Color bool

	colorize colorstring.Colorize
}

func New(color bool) *Printer {
	return &Printer{
		Color: color,
		colorize: colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !color,
			Reset:   true,
		},
	}
}

// Print renders the subgraph under id in canonical form.
func (p *Printer) Print(g *graph.Graph, id graph.NodeID) string {
	var sb strings.Builder
	p.print(g, id, &sb)
	return p.colorize.Color(sb.String())
}

func (p *Printer) print(g *graph.Graph, id graph.NodeID, sb *strings.Builder) {
	n := g.Node(id)
	switch n.Kind {
	case graph.EMPTY_NODE:
		sb.WriteString("[dark_gray]()[reset]")
	case graph.SYMBOL_NODE:
		sb.WriteString("[cyan]" + escape(n.Name) + "[reset]")
	case graph.BINDER_NODE:
		sb.WriteString("[yellow]()[reset]")
	case graph.SLOT_NODE:
		sb.WriteString("[green]()[reset]")
	case graph.PAIR_NODE:
		sb.WriteString("(")
		p.print(g, n.Left, sb)
		sb.WriteString(" ")
		p.print(g, n.Right, sb)
		sb.WriteString(")")
	}
}

// escape guards symbol names against colorstring's [..] markup.
func escape(s string) string {
	return strings.ReplaceAll(s, "[", "[_")
}

// Tree renders an indented structural view with binder ids kept visible,
// one node per line.
func Tree(g *graph.Graph, id graph.NodeID) string {
	var sb strings.Builder
	tree(g, id, 0, &sb)
	return sb.String()
}

func tree(g *graph.Graph, id graph.NodeID, depth int, sb *strings.Builder) {
	n := g.Node(id)
	sb.WriteString(strings.Repeat("  ", depth))
	if n.Kind == graph.PAIR_NODE {
		sb.WriteString("pair\n")
		tree(g, n.Left, depth+1, sb)
		tree(g, n.Right, depth+1, sb)
		return
	}
	sb.WriteString(g.Inspect(id))
	sb.WriteString("\n")
}
