package quaternion

import (
	"fmt"

	"github.com/cwbudde/go-tpcc/internal/ast"
	"github.com/cwbudde/go-tpcc/internal/lexer"
)

// Error reports an AST shape the Quaternizer does not know how to lower:
// an unsupported statement kind, an unsupported expression operand, or an
// operator that doesn't belong where it was found (e.g. a relational
// operator used as an arithmetic one). Quaternization aborts on the first
// Error; there is no partial output.
type Error struct {
	Message string
	Node    ast.Node
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (at %s)", e.Message, e.Node.Pos())
}

// Pos satisfies the Positioned interface used by internal/errors.
func (e *Error) Pos() lexer.Position { return e.Node.Pos() }

func newError(node ast.Node, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Node: node}
}
