package reducer_test

import (
	"testing"

	"github.com/skeinlang/skein/internal/builder"
	"github.com/skeinlang/skein/internal/env"
	"github.com/skeinlang/skein/internal/graph"
	"github.com/skeinlang/skein/internal/lexer"
	"github.com/skeinlang/skein/internal/parser"
	"github.com/skeinlang/skein/internal/pipeline"
	"github.com/skeinlang/skein/internal/reducer"
	"github.com/skeinlang/skein/internal/sexpr"
)

func buildExpr(t *testing.T, source string) *graph.Graph {
	t.Helper()
	ctx := pipeline.NewPipelineContext(source)
	ctx.TokenStream = lexer.Tokenize(source)
	form := parser.New(ctx.TokenStream, ctx).ParseExpression()
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse %q: %v", source, ctx.Errors[0])
	}
	g, err := builder.Build(sexpr.Fold(form))
	if err != nil {
		t.Fatalf("build %q: %v", source, err)
	}
	return g
}

func basis(t *testing.T) *env.Environment {
	t.Helper()
	e, err := env.Default()
	if err != nil {
		t.Fatalf("default basis: %v", err)
	}
	return e
}

func reduce(t *testing.T, e *env.Environment, source string) string {
	t.Helper()
	g := buildExpr(t, source)
	return g.Format(reducer.New(e).Evaluate(g, g.Root))
}

func TestBasisCombinators(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"identity", "(I a)", "a"},
		{"const_keeps_first", "((K a) b)", "a"},
		{"const_flipped", "((F a) b)", "b"},
		{"skk_is_identity", "(((S K) K) x)", "x"},
		{"flat_spelling_folds_left", "(S K K x)", "x"},
		{"composition", "(((B f) g) x)", "(f (g x))"},
		{"flip", "(((C f) x) y)", "((f y) x)"},
		{"s_distributes", "(((S f) g) x)", "((f x) (g x))"},
		{"partial_application_is_a_value", "(K a)", "(() a)"},
	}

	e := basis(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reduce(t, e, tc.input); got != tc.expected {
				t.Errorf("reduce(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestRawBindingForms(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"raw_identity", "((() ()) a)", "a"},
		{"binding_pair_is_a_value", "(() a)", "(() a)"},
		{"lone_slot_passes_through", "()", "()"},
		{"stuck_application", "(a b)", "(a b)"},
		{"stuck_with_unbound_slot", "(x ())", "(x ())"},
		{"argument_discarded", "((() (() ())) a)", "(() ())"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reduce(t, nil, tc.input); got != tc.expected {
				t.Errorf("reduce(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestUnknownSymbolsAreInert(t *testing.T) {
	e := basis(t)
	if got := reduce(t, e, "(mystery a)"); got != "(mystery a)" {
		t.Errorf("free head should stay stuck, got %q", got)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	e := basis(t)
	g := buildExpr(t, "(((S K) K) x)")
	r := reducer.New(e)

	once := r.Evaluate(g, g.Root)
	twice := r.Evaluate(g, once)
	if g.Format(once) != g.Format(twice) {
		t.Errorf("second evaluation changed the result: %q vs %q", g.Format(once), g.Format(twice))
	}
}

func TestPrecompiledAndLazyAgree(t *testing.T) {
	e := basis(t)
	inputs := []string{"(I a)", "((K a) b)", "(((S K) K) x)", "(((B f) g) x)"}

	for _, input := range inputs {
		lazyG := buildExpr(t, input)
		lazy := lazyG.Format(reducer.New(e).Evaluate(lazyG, lazyG.Root))

		eagerG := buildExpr(t, input)
		eagerG.Root = e.ExpandAll(eagerG, eagerG.Root)
		// With the graph fully expanded no environment is needed at all.
		eager := eagerG.Format((&reducer.Reducer{}).Evaluate(eagerG, eagerG.Root))

		if lazy != eager {
			t.Errorf("reduce(%q): lazy %q != precompiled %q", input, lazy, eager)
		}
	}
}

func TestResultRoundTrips(t *testing.T) {
	e := basis(t)
	inputs := []string{"(I a)", "(K a)", "(((B f) g) x)", "(x ())"}

	for _, input := range inputs {
		first := reduce(t, e, input)
		second := reduce(t, e, first)
		if first != second {
			t.Errorf("reduce(%q): reparsed result reduced differently: %q vs %q", input, first, second)
		}
	}
}

type countingTracer struct {
	cycles int
	stuck  int
}

func (c *countingTracer) Snapshot(g *graph.Graph, focus graph.NodeID, step reducer.Step) {
	c.cycles++
	if step.Binder == graph.Unbound {
		c.stuck++
	}
}

func TestCycleCounts(t *testing.T) {
	testCases := []struct {
		input  string
		cycles int
		stuck  int
	}{
		{"(I a)", 1, 0},
		{"((K a) b)", 2, 0},
		{"(((S K) K) x)", 6, 0},
		{"(a b)", 1, 1},
	}

	e := basis(t)
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			g := buildExpr(t, tc.input)
			tracer := &countingTracer{}
			r := &reducer.Reducer{Env: e, Tracer: tracer}
			r.Evaluate(g, g.Root)

			if tracer.cycles != tc.cycles {
				t.Errorf("expected %d cycles, got %d", tc.cycles, tracer.cycles)
			}
			if tracer.stuck != tc.stuck {
				t.Errorf("expected %d stuck applications, got %d", tc.stuck, tracer.stuck)
			}
		})
	}
}

func TestAnchorsNameConsumedBinders(t *testing.T) {
	e := basis(t)
	g := buildExpr(t, "(I a)")

	var steps []reducer.Step
	r := &reducer.Reducer{Env: e, Tracer: tracerFunc(func(_ *graph.Graph, _ graph.NodeID, step reducer.Step) {
		steps = append(steps, step)
	})}
	r.Evaluate(g, g.Root)

	if len(steps) != 1 {
		t.Fatalf("expected one cycle, got %d", len(steps))
	}
	if steps[0].Binder == graph.Unbound {
		t.Fatal("substituting cycle reported as stuck")
	}
	if len(steps[0].Anchors) == 0 {
		t.Fatal("expected at least one anchor")
	}
	for _, id := range steps[0].Anchors {
		n := g.Node(id)
		if n.Kind != graph.BINDER_NODE || n.Binder != steps[0].Binder {
			t.Errorf("anchor %d is %s with binder %d, expected a binder carrying %d",
				id, n.Kind, n.Binder, steps[0].Binder)
		}
	}
}

type tracerFunc func(*graph.Graph, graph.NodeID, reducer.Step)

func (f tracerFunc) Snapshot(g *graph.Graph, focus graph.NodeID, step reducer.Step) {
	f(g, focus, step)
}
