// Package ast defines the abstract syntax tree produced by the parser.
package ast

import (
	"bytes"
	"fmt"

	"github.com/cwbudde/go-tpcc/internal/lexer"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// VariableType enumerates the supported declared types. Integer is the only
// one the dialect recognizes.
type VariableType int

// Integer is the sole supported VariableType.
const Integer VariableType = 0

func (VariableType) String() string { return "Integer" }

// NumberLiteral is an integer constant.
type NumberLiteral struct {
	Token lexer.Token
	Value int
}

func (n *NumberLiteral) expressionNode()         {}
func (n *NumberLiteral) TokenLiteral() string    { return n.Token.Literal }
func (n *NumberLiteral) Pos() lexer.Position     { return n.Token.Pos }
func (n *NumberLiteral) String() string          { return n.Token.Literal }

// Identifier is a reference to a declared variable.
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Name }

// BinaryExpression is a two-operand expression. Operator is the lexer
// terminal of the infix operator (one of the arithmetic, relational, or
// boolean operator token types).
type BinaryExpression struct {
	Token    lexer.Token // the operator token
	Left     Expression
	Right    Expression
	Operator lexer.TokenType
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Token.Literal + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}

// Program is the procedure's PROGRAM header statement.
type Program struct {
	Token lexer.Token
	Name  string
}

func (p *Program) statementNode()      {}
func (p *Program) TokenLiteral() string { return p.Token.Literal }
func (p *Program) Pos() lexer.Position  { return p.Token.Pos }
func (p *Program) String() string       { return fmt.Sprintf("program %s;", p.Name) }

// VariableDeclaration declares one or more names of the same VariableType.
type VariableDeclaration struct {
	Token lexer.Token // the VAR token
	Names []*Identifier
	Type  VariableType
}

func (v *VariableDeclaration) statementNode()      {}
func (v *VariableDeclaration) TokenLiteral() string { return v.Token.Literal }
func (v *VariableDeclaration) Pos() lexer.Position  { return v.Token.Pos }
func (v *VariableDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("var ")
	for i, n := range v.Names {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(n.Name)
	}
	out.WriteString(": " + v.Type.String() + ";")
	return out.String()
}

// VariableAssignment is `target := value;`.
type VariableAssignment struct {
	Token  lexer.Token // the := token
	Target *Identifier
	Value  Expression
}

func (v *VariableAssignment) statementNode()      {}
func (v *VariableAssignment) TokenLiteral() string { return v.Token.Literal }
func (v *VariableAssignment) Pos() lexer.Position  { return v.Target.Pos() }
func (v *VariableAssignment) String() string {
	return fmt.Sprintf("%s := %s;", v.Target.Name, v.Value.String())
}

// PrintStatement is `write expression`.
type PrintStatement struct {
	Token      lexer.Token // the WRITE token
	Expression Expression
}

func (p *PrintStatement) statementNode()      {}
func (p *PrintStatement) TokenLiteral() string { return p.Token.Literal }
func (p *PrintStatement) Pos() lexer.Position  { return p.Token.Pos }
func (p *PrintStatement) String() string       { return "write " + p.Expression.String() }

// ReadStatement is `read target`.
type ReadStatement struct {
	Token  lexer.Token // the READ token
	Target *Identifier
}

func (r *ReadStatement) statementNode()      {}
func (r *ReadStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReadStatement) Pos() lexer.Position  { return r.Token.Pos }
func (r *ReadStatement) String() string       { return "read " + r.Target.Name }

// IfStatement is `if condition then true_body (else false_body)?`.
// FalseBody may be empty (no ELSE clause).
type IfStatement struct {
	Token     lexer.Token // the IF token
	Condition Expression
	TrueBody  []Statement
	FalseBody []Statement
}

func (s *IfStatement) statementNode()      {}
func (s *IfStatement) TokenLiteral() string { return s.Token.Literal }
func (s *IfStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(s.Condition.String())
	out.WriteString(" then ... ")
	if len(s.FalseBody) > 0 {
		out.WriteString("else ...")
	}
	return out.String()
}

// WhileStatement is `while condition do body`.
type WhileStatement struct {
	Token     lexer.Token // the WHILE token
	Condition Expression
	Body      []Statement
}

func (s *WhileStatement) statementNode()      {}
func (s *WhileStatement) TokenLiteral() string { return s.Token.Literal }
func (s *WhileStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *WhileStatement) String() string {
	return "while " + s.Condition.String() + " do ..."
}

// RepeatStatement is `repeat body until condition`.
type RepeatStatement struct {
	Token     lexer.Token // the REPEAT token
	Body      []Statement
	Condition Expression
}

func (s *RepeatStatement) statementNode()      {}
func (s *RepeatStatement) TokenLiteral() string { return s.Token.Literal }
func (s *RepeatStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *RepeatStatement) String() string {
	return "repeat ... until " + s.Condition.String()
}
