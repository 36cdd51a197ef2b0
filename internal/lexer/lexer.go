package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/skeinlang/skein/internal/pipeline"
	"github.com/skeinlang/skein/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Line: l.line, Column: l.column}
	case '(':
		tok := token.Token{Type: token.LPAREN, Lexeme: "(", Line: l.line, Column: l.column}
		l.readChar()
		return tok
	case ')':
		tok := token.Token{Type: token.RPAREN, Lexeme: ")", Line: l.line, Column: l.column}
		l.readChar()
		return tok
	default:
		return l.readAtom()
	}
}

// readAtom consumes a run of characters up to whitespace, a parenthesis or a
// comment start.
func (l *Lexer) readAtom() token.Token {
	line, column := l.line, l.column
	start := l.position
	for l.ch != 0 && !isDelimiter(l.ch) {
		l.readChar()
	}
	return token.Token{
		Type:   token.ATOM,
		Lexeme: l.input[start:l.position],
		Line:   line,
		Column: column,
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch != 0 && unicode.IsSpace(l.ch) {
			l.readChar()
		}
		if l.ch != ';' {
			return
		}
		for l.ch != 0 && l.ch != '\n' {
			l.readChar()
		}
	}
}

func isDelimiter(ch rune) bool {
	return unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == ';'
}

// Tokenize runs the lexer to EOF and returns the full token stream, with the
// EOF token included as the final element.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.TokenStream = Tokenize(ctx.SourceCode)
	return ctx
}
