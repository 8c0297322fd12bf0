// Package parser builds an AST from a token stream using recursive descent
// with precedence-climbing expression parsing.
package parser

import (
	"strconv"

	"github.com/cwbudde/go-tpcc/internal/ast"
	"github.com/cwbudde/go-tpcc/internal/lexer"
)

// precedence levels, per the table in spec.md §4.2. Relational operators
// bind tightest; this is deliberate, not an oversight — conditions are
// parsed as ordinary expressions, and the quaternion package's
// transCondition dispatches on the root operator.
const (
	lowest = iota
	precOr
	precAnd
	precAdditive
	precMultiplicative
	precRelational
)

func precedenceOf(t lexer.TokenType) int {
	switch t {
	case lexer.OR:
		return precOr
	case lexer.AND:
		return precAnd
	case lexer.PLUS, lexer.MINUS:
		return precAdditive
	case lexer.MULT, lexer.DIV:
		return precMultiplicative
	case lexer.EQ, lexer.NE, lexer.LT, lexer.GT, lexer.LE, lexer.GE:
		return precRelational
	default:
		return lowest
	}
}

// Parser consumes tokens from a Lexer with one token of buffered lookahead:
// current is the token being examined, next is the token after it.
type Parser struct {
	lex     *lexer.Lexer
	current lexer.Token
	next    lexer.Token
	symbols map[string]struct{}
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) (*Parser, error) {
	p := &Parser{lex: l, symbols: make(map[string]struct{})}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.current = p.next
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.next = tok
	return nil
}

func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if p.current.Type != t {
		return lexer.Token{}, newError(p.current, "expected %s", t)
	}
	tok := p.current
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

// Parse consumes the entire token stream and returns the top-level
// statement list: Program first, followed by the procedure body's
// statements. Declarations and the procedure header are validated but not
// included in the returned list (spec.md §3: "not required to appear as
// statements fed to the Quaternizer").
func (p *Parser) Parse() ([]ast.Statement, error) {
	progTok, err := p.expect(lexer.PROG)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SCOLON); err != nil {
		return nil, err
	}

	if p.current.Type == lexer.VAR {
		if err := p.parseVariableDecl(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.PROC); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IDENT); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SCOLON); err != nil {
		return nil, err
	}

	body, err := p.parseBeginEndBlock()
	if err != nil {
		return nil, err
	}

	statements := make([]ast.Statement, 0, len(body)+1)
	statements = append(statements, &ast.Program{Token: progTok, Name: nameTok.Literal})
	statements = append(statements, body...)
	return statements, nil
}

// parseVariableDecl parses `VAR ident (, ident)* : INT ;` and records the
// declared names in the parser's symbol table.
func (p *Parser) parseVariableDecl() error {
	if _, err := p.expect(lexer.VAR); err != nil {
		return err
	}

	var names []*ast.Identifier
	for {
		tok, err := p.expect(lexer.IDENT)
		if err != nil {
			return err
		}
		names = append(names, &ast.Identifier{Token: tok, Name: tok.Literal})
		if p.current.Type != lexer.COMMA {
			break
		}
		if err := p.advance(); err != nil {
			return err
		}
	}

	if _, err := p.expect(lexer.COLON); err != nil {
		return err
	}
	if _, err := p.expect(lexer.INT); err != nil {
		return err
	}
	if _, err := p.expect(lexer.SCOLON); err != nil {
		return err
	}

	for _, n := range names {
		p.symbols[n.Name] = struct{}{}
	}
	return nil
}

// checkDeclared returns a *Error if name was never declared by a VAR block.
func (p *Parser) checkDeclared(tok lexer.Token, name string) error {
	if _, ok := p.symbols[name]; !ok {
		return newError(tok, "undeclared identifier %q", name)
	}
	return nil
}

// parseBeginEndBlock parses `BEGIN stmt* END` and returns the statements.
func (p *Parser) parseBeginEndBlock() ([]ast.Statement, error) {
	if _, err := p.expect(lexer.BEGIN); err != nil {
		return nil, err
	}

	var statements []ast.Statement
	for p.current.Type != lexer.END {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	if _, err := p.expect(lexer.END); err != nil {
		return nil, err
	}
	return statements, nil
}

// parseBlock parses the body of IF/WHILE branches: either a BEGIN..END
// block or a single statement, per spec.md §4.2's `block` production.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if p.current.Type == lexer.BEGIN {
		return p.parseBeginEndBlock()
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return []ast.Statement{stmt}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current.Type {
	case lexer.IDENT:
		return p.parseAssignment()
	case lexer.WRITE:
		return p.parsePrintStatement()
	case lexer.READ:
		return p.parseReadStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.REPEAT:
		return p.parseRepeatStatement()
	default:
		return nil, newError(p.current, "unexpected token at start of statement")
	}
}

func (p *Parser) parseAssignment() (ast.Statement, error) {
	nameTok := p.current
	if err := p.checkDeclared(nameTok, nameTok.Literal); err != nil {
		return nil, err
	}
	target := &ast.Identifier{Token: nameTok, Name: nameTok.Literal}
	if err := p.advance(); err != nil {
		return nil, err
	}

	assignTok, err := p.expect(lexer.ASSIGN)
	if err != nil {
		return nil, err
	}

	value, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.SCOLON); err != nil {
		return nil, err
	}

	return &ast.VariableAssignment{Token: assignTok, Target: target, Value: value}, nil
}

func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	tok, err := p.expect(lexer.WRITE)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SCOLON); err != nil {
		return nil, err
	}
	return &ast.PrintStatement{Token: tok, Expression: expr}, nil
}

func (p *Parser) parseReadStatement() (ast.Statement, error) {
	tok, err := p.expect(lexer.READ)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if err := p.checkDeclared(nameTok, nameTok.Literal); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SCOLON); err != nil {
		return nil, err
	}
	target := &ast.Identifier{Token: nameTok, Name: nameTok.Literal}
	return &ast.ReadStatement{Token: tok, Target: target}, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	tok, err := p.expect(lexer.IF)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.THEN); err != nil {
		return nil, err
	}
	trueBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var falseBody []ast.Statement
	if p.current.Type == lexer.ELSE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		falseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStatement{Token: tok, Condition: cond, TrueBody: trueBody, FalseBody: falseBody}, nil
}

func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	tok, err := p.expect(lexer.WHILE)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DO); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}, nil
}

// parseRepeatStatement parses `REPEAT stmt* UNTIL expression ;`. Unlike the
// IF/WHILE block forms, the body is a bare statement sequence terminated by
// UNTIL, not a BEGIN..END block — and per spec.md §9 reference bug #3, no
// trailing DOT is consumed after the condition; only the SCOLON is.
func (p *Parser) parseRepeatStatement() (ast.Statement, error) {
	tok, err := p.expect(lexer.REPEAT)
	if err != nil {
		return nil, err
	}

	var body []ast.Statement
	for p.current.Type != lexer.UNTIL {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	if _, err := p.expect(lexer.UNTIL); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SCOLON); err != nil {
		return nil, err
	}

	return &ast.RepeatStatement{Token: tok, Body: body, Condition: cond}, nil
}

// parseExpression implements precedence climbing: it parses one primary and
// then repeatedly consumes infix operators whose precedence is at least
// minPrec, recursing with the operator's precedence plus one on the right
// operand so that operators at equal precedence associate left.
func (p *Parser) parseExpression(minPrec int) (ast.Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		prec := precedenceOf(p.current.Type)
		if prec == lowest || prec < minPrec {
			return left, nil
		}

		opTok := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseExpression(prec + 1)
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpression{Token: opTok, Left: left, Right: right, Operator: opTok.Type}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.current.Type {
	case lexer.INTCONST:
		tok := p.current
		value, err := strconv.ParseInt(tok.Literal, 10, 32)
		if err != nil {
			return nil, newError(tok, "integer literal %q out of 32-bit range", tok.Literal)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.NumberLiteral{Token: tok, Value: int(value)}, nil
	case lexer.IDENT:
		tok := p.current
		if err := p.checkDeclared(tok, tok.Literal); err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Token: tok, Name: tok.Literal}, nil
	case lexer.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, newError(p.current, "expected an expression")
	}
}
