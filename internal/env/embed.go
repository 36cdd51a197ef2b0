package env

import _ "embed"

//go:embed basis.sk
var defaultBasis string

// Default loads the embedded combinator basis.
func Default() (*Environment, error) {
	e := New()
	if err := e.Load(defaultBasis, "basis.sk"); err != nil {
		return nil, err
	}
	return e, nil
}
