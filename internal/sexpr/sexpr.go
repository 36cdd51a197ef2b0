package sexpr

import (
	"strings"

	"github.com/skeinlang/skein/internal/token"
)

// Form is the base interface for parsed s-expression forms.
type Form interface {
	GetToken() token.Token
	String() string
}

// Atom is a bare, whitespace- or paren-delimited token.
type Atom struct {
	Token token.Token
	Value string
}

func (a *Atom) GetToken() token.Token { return a.Token }
func (a *Atom) String() string        { return a.Value }

// List is a parenthesized sequence of forms. Lists of any length come out of
// the parser; downstream stages expect length 0 or 2 after Fold.
type List struct {
	Token token.Token // the opening parenthesis
	Items []Form
}

func (l *List) GetToken() token.Token { return l.Token }
func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Fold rewrites multi-element lists into left-associated nested pairs, so
// (S K K x) becomes (((S K) K) x). Lists of length 0, 1 and 2 are returned
// with their items folded but their own shape untouched.
func Fold(form Form) Form {
	list, ok := form.(*List)
	if !ok {
		return form
	}
	items := make([]Form, len(list.Items))
	for i, item := range list.Items {
		items[i] = Fold(item)
	}
	if len(items) <= 2 {
		return &List{Token: list.Token, Items: items}
	}
	acc := &List{Token: list.Token, Items: items[:2]}
	for _, item := range items[2:] {
		acc = &List{Token: list.Token, Items: []Form{acc, item}}
	}
	return acc
}
