package parser

import (
	"fmt"

	"github.com/cwbudde/go-tpcc/internal/lexer"
)

// Error reports an unexpected terminal encountered while parsing. Parsing
// aborts on the first Error; there is no error recovery.
type Error struct {
	Message string
	Token   lexer.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (got %s at %s)", e.Message, e.Token, e.Token.Pos)
}

// Pos satisfies the Positioned interface used by internal/errors.
func (e *Error) Pos() lexer.Position { return e.Token.Pos }

func newError(tok lexer.Token, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Token: tok}
}
