package diagnostics

import (
	"fmt"
	"strings"

	"github.com/skeinlang/skein/internal/token"
)

// Error codes. The prefix letter carries the category: P = parse,
// S = shape (graph building), D = definition loading, T = trace I/O.
const (
	ErrP001 = "P001" // unbalanced parentheses / unexpected end of input
	ErrP002 = "P002" // unexpected closing parenthesis
	ErrP003 = "P003" // trailing tokens after a complete form
	ErrS001 = "S001" // list shape not 0 or 2 elements
	ErrD001 = "D001" // top-level form is not a def
	ErrD002 = "D002" // malformed def arguments
	ErrT001 = "T001" // trace export failure
)

// DiagnosticError is a positional error produced by any pipeline stage.
type DiagnosticError struct {
	Code    string
	File    string
	Line    int
	Column  int
	Message string
}

func NewError(code string, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: message,
	}
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: [%s] %s", e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// IsParseError reports whether err is a malformed s-expression diagnostic.
func IsParseError(err error) bool { return hasPrefix(err, "P") }

// IsShapeError reports whether err is a list-shape diagnostic from graph building.
func IsShapeError(err error) bool { return hasPrefix(err, "S") }

// IsDefinitionFormError reports whether err is a malformed basis def diagnostic.
func IsDefinitionFormError(err error) bool { return hasPrefix(err, "D") }

func hasPrefix(err error, prefix string) bool {
	de, ok := err.(*DiagnosticError)
	return ok && strings.HasPrefix(de.Code, prefix)
}
