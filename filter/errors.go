package filter

import (
	"errors"
	"fmt"
)

// ErrSyntax is the sentinel every SyntaxError unwraps to.
var ErrSyntax = errors.New("filter: invalid expression")

// SyntaxError reports a malformed filter expression. Position is the 0-based
// byte offset of the offending token.
type SyntaxError struct {
	Message  string
	Position int
}

func (e *SyntaxError) Error() string {
	if e == nil {
		return ErrSyntax.Error()
	}
	return fmt.Sprintf("%s: %s (position %d)", ErrSyntax.Error(), e.Message, e.Position)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
