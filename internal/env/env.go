package env

import (
	"fmt"
	"os"

	"github.com/skeinlang/skein/internal/builder"
	"github.com/skeinlang/skein/internal/diagnostics"
	"github.com/skeinlang/skein/internal/graph"
	"github.com/skeinlang/skein/internal/lexer"
	"github.com/skeinlang/skein/internal/parser"
	"github.com/skeinlang/skein/internal/pipeline"
	"github.com/skeinlang/skein/internal/sexpr"
)

// Environment maps definition names to immutable graphs. Entries are
// read-only after Load; every lookup splices a fresh clone, never a shared
// reference into an active reduction.
type Environment struct {
	names []string // insertion order, for introspection
	defs  map[string]*graph.Graph
}

func New() *Environment {
	return &Environment{defs: make(map[string]*graph.Graph)}
}

// Names returns the defined names in definition order.
func (e *Environment) Names() []string {
	return append([]string(nil), e.names...)
}

// Has reports whether name is defined.
func (e *Environment) Has(name string) bool {
	_, ok := e.defs[name]
	return ok
}

// Graph returns the stored graph for name. Callers must treat it as
// read-only; Resolve is the splicing entry point.
func (e *Environment) Graph(name string) (*graph.Graph, bool) {
	g, ok := e.defs[name]
	return g, ok
}

// Load reads an ordered sequence of (def <name> <body>) forms. Bodies are
// built and then expanded against the definitions accumulated so far, so
// later definitions may use earlier ones; names that are not yet defined
// stay behind as opaque free symbols.
func (e *Environment) Load(source, filename string) error {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = filename
	ctx.TokenStream = lexer.Tokenize(source)

	p := parser.New(ctx.TokenStream, ctx)
	for !p.AtEOF() {
		form := p.ParseForm()
		if len(ctx.Errors) > 0 {
			err := ctx.Errors[0]
			if err.File == "" {
				err.File = filename
			}
			return err
		}
		if err := e.define(form); err != nil {
			de := err.(*diagnostics.DiagnosticError)
			if de.File == "" {
				de.File = filename
			}
			return de
		}
	}
	return nil
}

// LoadFile reads a basis file from disk.
func (e *Environment) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return e.Load(string(data), path)
}

func (e *Environment) define(form sexpr.Form) error {
	list, ok := form.(*sexpr.List)
	if !ok || len(list.Items) == 0 {
		return diagnostics.NewError(
			diagnostics.ErrD001,
			form.GetToken(),
			"top-level form is not a definition: "+form.String(),
		)
	}
	head, ok := list.Items[0].(*sexpr.Atom)
	if !ok || head.Value != "def" {
		return diagnostics.NewError(
			diagnostics.ErrD001,
			form.GetToken(),
			"top-level form is not a definition: "+form.String(),
		)
	}
	if len(list.Items) != 3 {
		return diagnostics.NewError(
			diagnostics.ErrD002,
			form.GetToken(),
			fmt.Sprintf("def takes a name and a body, got %d arguments", len(list.Items)-1),
		)
	}
	name, ok := list.Items[1].(*sexpr.Atom)
	if !ok {
		return diagnostics.NewError(
			diagnostics.ErrD002,
			list.Items[1].GetToken(),
			"def name must be an atom, got "+list.Items[1].String(),
		)
	}

	g, err := builder.Build(sexpr.Fold(list.Items[2]))
	if err != nil {
		return err
	}

	// Expand references to earlier definitions in place. The splice keeps
	// the spliced graph's binder ids verbatim: a definition whose own
	// counter started at the same zero aliases the host's binders, which is
	// how a basis source names a binder that is not the innermost one.
	g.Root = e.expand(g, g.Root, false)

	e.names = append(e.names, name.Value)
	e.defs[name.Value] = g
	return nil
}

// Resolve splices a consistently renumbered clone of name's graph into dst
// and returns its root. The renumbering keeps separately defined combinators
// from colliding inside one reduction.
func (e *Environment) Resolve(dst *graph.Graph, name string) (graph.NodeID, bool) {
	def, ok := e.defs[name]
	if !ok {
		return graph.NilID, false
	}
	return graph.CloneInto(dst, def, def.Root, true), true
}

// ExpandAll rewrites every defined symbol under root into a renumbered
// clone of its definition, recursively, and returns the new root. This is
// the eager half of the precompile switch; lazy per-lookup resolution during
// reduction yields the same normal forms.
func (e *Environment) ExpandAll(g *graph.Graph, root graph.NodeID) graph.NodeID {
	return e.expand(g, root, true)
}

func (e *Environment) expand(g *graph.Graph, id graph.NodeID, renumber bool) graph.NodeID {
	n := g.Node(id)
	switch n.Kind {
	case graph.SYMBOL_NODE:
		def, ok := e.defs[n.Name]
		if !ok {
			return id
		}
		spliced := graph.CloneInto(g, def, def.Root, renumber)
		if renumber {
			// A definition may carry forward references that were filled
			// in later; keep expanding inside the splice.
			return e.expand(g, spliced, renumber)
		}
		return spliced
	case graph.PAIR_NODE:
		left := e.expand(g, n.Left, renumber)
		right := e.expand(g, n.Right, renumber)
		if left == n.Left && right == n.Right {
			return id
		}
		return g.AddPair(left, right, n.Path)
	default:
		return id
	}
}
