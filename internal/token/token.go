package token

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	ATOM   TokenType = "ATOM"
	LPAREN TokenType = "LPAREN"
	RPAREN TokenType = "RPAREN"
)

type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}
