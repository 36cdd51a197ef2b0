package pipeline

import (
	"github.com/skeinlang/skein/internal/diagnostics"
	"github.com/skeinlang/skein/internal/graph"
	"github.com/skeinlang/skein/internal/sexpr"
	"github.com/skeinlang/skein/internal/token"
)

// PipelineContext carries one expression through the processing stages.
// Stages read the fields earlier stages filled in and append diagnostics
// instead of aborting, so a caller sees everything that went wrong at once.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	TokenStream []token.Token
	Forms       []sexpr.Form
	Graph       *graph.Graph

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(sourceCode string) *PipelineContext {
	return &PipelineContext{SourceCode: sourceCode}
}

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages.
	}
	return ctx
}
