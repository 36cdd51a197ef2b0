package parser

import (
	"fmt"

	"github.com/skeinlang/skein/internal/diagnostics"
	"github.com/skeinlang/skein/internal/pipeline"
	"github.com/skeinlang/skein/internal/sexpr"
	"github.com/skeinlang/skein/internal/token"
)

type Parser struct {
	tokens   []token.Token
	position int

	ctx *pipeline.PipelineContext
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	return &Parser{tokens: tokens, ctx: ctx}
}

func (p *Parser) curToken() token.Token {
	if p.position >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.position]
}

func (p *Parser) nextToken() {
	p.position++
}

func (p *Parser) errorf(code string, tok token.Token, format string, args ...interface{}) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, tok, fmt.Sprintf(format, args...)))
}

// ParseForm parses the next complete form from the stream. It returns nil
// after appending a diagnostic when the stream is malformed or exhausted.
func (p *Parser) ParseForm() sexpr.Form {
	tok := p.curToken()
	switch tok.Type {
	case token.ATOM:
		p.nextToken()
		return &sexpr.Atom{Token: tok, Value: tok.Lexeme}
	case token.LPAREN:
		return p.parseList()
	case token.RPAREN:
		p.errorf(diagnostics.ErrP002, tok, "unexpected ')'")
		p.nextToken()
		return nil
	case token.EOF:
		p.errorf(diagnostics.ErrP001, tok, "unexpected end of input")
		return nil
	default:
		p.errorf(diagnostics.ErrP001, tok, "unexpected token %q", tok.Lexeme)
		p.nextToken()
		return nil
	}
}

func (p *Parser) parseList() sexpr.Form {
	open := p.curToken()
	p.nextToken() // consume '('

	list := &sexpr.List{Token: open}
	for {
		tok := p.curToken()
		switch tok.Type {
		case token.RPAREN:
			p.nextToken()
			return list
		case token.EOF:
			p.errorf(diagnostics.ErrP001, open, "unbalanced parentheses: '(' is never closed")
			return nil
		default:
			item := p.ParseForm()
			if item == nil {
				return nil
			}
			list.Items = append(list.Items, item)
		}
	}
}

// AtEOF reports whether the parser has consumed every non-EOF token.
func (p *Parser) AtEOF() bool {
	return p.curToken().Type == token.EOF
}

// ParseExpression parses exactly one form and rejects trailing tokens.
func (p *Parser) ParseExpression() sexpr.Form {
	form := p.ParseForm()
	if form == nil {
		return nil
	}
	if !p.AtEOF() {
		tok := p.curToken()
		p.errorf(diagnostics.ErrP003, tok, "trailing tokens after complete form, starting at %q", tok.Lexeme)
		return nil
	}
	return form
}

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		err := diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.TokenStream, ctx)
	form := parser.ParseExpression()
	if form != nil {
		ctx.Forms = []sexpr.Form{sexpr.Fold(form)}
	}

	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	return ctx
}
