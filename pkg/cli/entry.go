package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/skeinlang/skein/internal/builder"
	"github.com/skeinlang/skein/internal/config"
	"github.com/skeinlang/skein/internal/env"
	"github.com/skeinlang/skein/internal/lexer"
	"github.com/skeinlang/skein/internal/parser"
	"github.com/skeinlang/skein/internal/pipeline"
	"github.com/skeinlang/skein/internal/prettyprinter"
	"github.com/skeinlang/skein/internal/reducer"
	"github.com/skeinlang/skein/internal/trace"
)

const usage = `Usage: skein [flags] [expression ...]

Evaluates SK-calculus expressions against a combinator basis. With no
expressions, two canonical examples run instead.

Flags:
  --defs=<path>      load the basis from <path> instead of the embedded one
  --trace=<path>     write a JSON snapshot trace of every reduction step
  --config=<path>    load run configuration (YAML); flags override it
  --precompile       expand basis names before reduction (default)
  --no-precompile    resolve basis names lazily during reduction
  --color            force colorized output
  --no-color         disable colorized output
  -h, --help         show this help
`

type options struct {
	defs        string
	trace       string
	configPath  string
	precompile  *bool
	color       string
	expressions []string
	help        bool
}

func parseArgs(args []string) (*options, error) {
	opts := &options{}
	boolp := func(v bool) *bool { return &v }
	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help" || arg == "-help":
			opts.help = true
		case strings.HasPrefix(arg, "--defs="):
			opts.defs = strings.TrimPrefix(arg, "--defs=")
		case strings.HasPrefix(arg, "--trace="):
			opts.trace = strings.TrimPrefix(arg, "--trace=")
		case strings.HasPrefix(arg, "--config="):
			opts.configPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--precompile":
			opts.precompile = boolp(true)
		case arg == "--no-precompile":
			opts.precompile = boolp(false)
		case arg == "--color":
			opts.color = config.ColorAlways
		case arg == "--no-color":
			opts.color = config.ColorNever
		case strings.HasPrefix(arg, "-") && arg != "-":
			return nil, fmt.Errorf("unknown flag %q", arg)
		default:
			opts.expressions = append(opts.expressions, arg)
		}
	}
	return opts, nil
}

// mergeConfig fills options the command line left unset from the run
// configuration file.
func mergeConfig(opts *options, cfg *config.RunConfig) {
	if opts.defs == "" {
		opts.defs = cfg.Defs
	}
	if opts.trace == "" {
		opts.trace = cfg.Trace
	}
	if opts.precompile == nil {
		opts.precompile = cfg.Precompile
	}
	if opts.color == "" {
		opts.color = cfg.Color
	}
	if len(opts.expressions) == 0 {
		opts.expressions = cfg.Expressions
	}
}

// Run executes the CLI and returns the process exit code. Per-expression
// failures are reported and skipped; the run only fails when setup or
// trace-file I/O fails, or when no expression evaluated at all.
func Run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		fmt.Fprint(stderr, usage)
		return 1
	}
	if opts.help {
		fmt.Fprint(stdout, usage)
		return 0
	}

	configPath := opts.configPath
	if configPath == "" {
		if _, err := os.Stat(config.DefaultConfigFile); err == nil {
			configPath = config.DefaultConfigFile
		}
	}
	if configPath != "" {
		cfg, err := config.LoadRunConfig(configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return 1
		}
		mergeConfig(opts, cfg)
	}

	environment, err := loadEnvironment(opts.defs)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading definitions: %s\n", err)
		return 1
	}

	expressions := opts.expressions
	if len(expressions) == 0 {
		expressions = config.DefaultExpressions
	}

	printer := prettyprinter.New(useColor(opts.color, stdout))
	tracing := opts.trace != ""
	var entries []trace.Entry

	evaluated := 0
	for _, expression := range expressions {
		ctx := pipeline.NewPipelineContext(expression)
		processing := pipeline.New(
			&lexer.LexerProcessor{},
			&parser.ParserProcessor{},
			&builder.BuilderProcessor{},
		)
		ctx = processing.Run(ctx)
		if len(ctx.Errors) > 0 {
			fmt.Fprintf(stderr, "%s:\n", expression)
			for _, err := range ctx.Errors {
				fmt.Fprintf(stderr, "- %s\n", err.Error())
			}
			continue
		}

		g := ctx.Graph
		if opts.precompile == nil || *opts.precompile {
			g.Root = environment.ExpandAll(g, g.Root)
		}

		red := reducer.New(environment)
		var recorder *trace.Recorder
		if tracing {
			recorder = trace.NewRecorder()
			red.Tracer = recorder
		}
		g.Root = red.Evaluate(g, g.Root)
		evaluated++

		fmt.Fprintln(stdout, printer.Print(g, g.Root))
		if tracing {
			entries = append(entries, trace.Entry{
				Expression: expression,
				RunID:      recorder.RunID,
				Snapshots:  recorder.Snapshots,
			})
		}
	}

	if tracing {
		if err := trace.WriteFile(opts.trace, entries); err != nil {
			fmt.Fprintf(stderr, "Error writing trace: %s\n", err)
			return 1
		}
	}
	if evaluated == 0 {
		return 1
	}
	return 0
}

func loadEnvironment(defs string) (*env.Environment, error) {
	if defs == "" {
		return env.Default()
	}
	e := env.New()
	if err := e.LoadFile(defs); err != nil {
		return nil, err
	}
	return e, nil
}

func useColor(mode string, stdout io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := stdout.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
