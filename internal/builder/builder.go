package builder

import (
	"fmt"

	"github.com/skeinlang/skein/internal/diagnostics"
	"github.com/skeinlang/skein/internal/graph"
	"github.com/skeinlang/skein/internal/pipeline"
	"github.com/skeinlang/skein/internal/sexpr"
)

// builder holds the state of one top-level building pass. The binder id
// counter and the stack of open binders are local to the pass; they never
// leak across unrelated expressions.
type builder struct {
	g     *graph.Graph
	stack []int // open binder ids, innermost last
}

// Build constructs the node graph for a single folded form, returning a
// fresh graph with its root set.
func Build(form sexpr.Form) (*graph.Graph, error) {
	g := graph.New()
	root, err := BuildInto(g, form)
	if err != nil {
		return nil, err
	}
	g.Root = root
	return g, nil
}

// BuildInto constructs the node graph for form inside an existing arena and
// returns the subgraph root. The binder scope starts empty.
func BuildInto(g *graph.Graph, form sexpr.Form) (graph.NodeID, error) {
	b := &builder{g: g}
	return b.build(form, "/")
}

func (b *builder) build(form sexpr.Form, path string) (graph.NodeID, error) {
	switch f := form.(type) {
	case *sexpr.Atom:
		return b.g.AddSymbol(f.Value, path), nil

	case *sexpr.List:
		switch len(f.Items) {
		case 0:
			binderID := graph.Unbound
			if len(b.stack) > 0 {
				binderID = b.stack[len(b.stack)-1]
			}
			return b.g.AddSlot(binderID, path), nil
		case 2:
			if isEmptyList(f.Items[0]) {
				return b.buildBinding(f, path)
			}
			left, err := b.build(f.Items[0], path+"L")
			if err != nil {
				return graph.NilID, err
			}
			right, err := b.build(f.Items[1], path+"R")
			if err != nil {
				return graph.NilID, err
			}
			return b.g.AddPair(left, right, path), nil
		default:
			return graph.NilID, diagnostics.NewError(
				diagnostics.ErrS001,
				f.GetToken(),
				fmt.Sprintf("list of %d elements where 0 or 2 were expected, at %s", len(f.Items), path),
			)
		}
	}
	return graph.NilID, diagnostics.NewError(
		diagnostics.ErrS001,
		form.GetToken(),
		"unrecognized form "+form.String(),
	)
}

// buildBinding handles a 2-element list whose head is an empty list: the head
// becomes a Binder, and slots built inside the tail reference it as their
// innermost enclosing binder.
func (b *builder) buildBinding(f *sexpr.List, path string) (graph.NodeID, error) {
	id := b.g.FreshBinderID()
	binder := b.g.AddBinder(id, path+"L")

	b.stack = append(b.stack, id)
	body, err := b.build(f.Items[1], path+"R")
	b.stack = b.stack[:len(b.stack)-1]
	if err != nil {
		return graph.NilID, err
	}
	return b.g.AddPair(binder, body, path), nil
}

func isEmptyList(form sexpr.Form) bool {
	list, ok := form.(*sexpr.List)
	return ok && len(list.Items) == 0
}

type BuilderProcessor struct{}

func (bp *BuilderProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Errors) > 0 || len(ctx.Forms) == 0 {
		return ctx
	}

	g, err := Build(ctx.Forms[0])
	if err != nil {
		de := err.(*diagnostics.DiagnosticError)
		if de.File == "" {
			de.File = ctx.FilePath
		}
		ctx.Errors = append(ctx.Errors, de)
		return ctx
	}
	ctx.Graph = g
	return ctx
}
