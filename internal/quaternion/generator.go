package quaternion

import (
	"strconv"

	"github.com/cwbudde/go-tpcc/internal/ast"
	"github.com/cwbudde/go-tpcc/internal/lexer"
)

// Generator lowers a statement list into a Quaternion vector. A fresh
// Generator owns its quaternion vector and counters; nothing is shared
// across separate Generate calls on separate instances, so concurrent
// compilations never cross-contaminate (spec.md §9 "Global/class-level
// state").
type Generator struct {
	quaternions []Quaternion
	tempCounter int
}

// New creates an empty Generator.
func New() *Generator {
	return &Generator{}
}

// Generate lowers the top-level statement list (Program followed by the
// procedure body, as returned by parser.Parse) into the quaternion
// vector, and returns it. The first statement is expected to be
// *ast.Program and is skipped: the dialect supports exactly one program
// with one procedure, so there is nothing to lower for the header itself.
func (g *Generator) Generate(statements []ast.Statement) ([]Quaternion, error) {
	var body []ast.Statement
	for _, stmt := range statements {
		if _, ok := stmt.(*ast.Program); ok {
			continue
		}
		body = append(body, stmt)
	}

	trailing, err := g.lowerStatements(body)
	if err != nil {
		return nil, err
	}
	if trailing != 0 {
		g.backpatch(trailing, g.currentPos()+1)
	}
	return g.quaternions, nil
}

func (g *Generator) currentPos() int {
	return len(g.quaternions)
}

func (g *Generator) emit(q Quaternion) int {
	g.quaternions = append(g.quaternions, q)
	return len(g.quaternions)
}

func (g *Generator) getTemporaryVariable() string {
	g.tempCounter++
	return "t" + strconv.Itoa(g.tempCounter)
}

// backpatch walks the pending-jump chain starting at head, setting every
// quaternion's Dest field along the way to target. A head of 0 is the
// empty list and backpatch is a no-op.
func (g *Generator) backpatch(head, target int) {
	for head != 0 && head <= len(g.quaternions) {
		dest := jumpDest(g.quaternions[head-1])
		old := *dest
		*dest = target
		head = old
	}
}

// merge concatenates two pending-jump lists without resolving either:
// it walks rhs to its terminator (a Dest of 0) and grafts lhs on. The
// returned head is rhs's, so a later backpatch visits rhs's chain first.
func (g *Generator) merge(lhs, rhs int) int {
	if rhs == 0 {
		return lhs
	}
	head := rhs
	for {
		dest := jumpDest(g.quaternions[head-1])
		if *dest == 0 {
			*dest = lhs
			return rhs
		}
		head = *dest
	}
}

// lowerStatements lowers stmts in order. Each statement's own pending
// jump-list (only IfStatement and WhileStatement ever produce one) is
// resolved to the position where the next statement begins; the pending
// list of the last statement, if any, is returned for the caller to
// resolve against whatever follows the whole list.
func (g *Generator) lowerStatements(stmts []ast.Statement) (int, error) {
	pending := 0
	for _, stmt := range stmts {
		if pending != 0 {
			g.backpatch(pending, g.currentPos()+1)
			pending = 0
		}
		p, err := g.lowerStatement(stmt)
		if err != nil {
			return 0, err
		}
		pending = p
	}
	return pending, nil
}

func (g *Generator) lowerStatement(stmt ast.Statement) (int, error) {
	switch s := stmt.(type) {
	case *ast.VariableAssignment:
		return 0, g.lowerAssignment(s)
	case *ast.IfStatement:
		return g.lowerIf(s)
	case *ast.WhileStatement:
		return g.lowerWhile(s)
	case *ast.RepeatStatement:
		return 0, g.lowerRepeat(s)
	case *ast.VariableDeclaration:
		// Consumed by the parser for symbol-table validation only; not
		// expected in the statement list Generate receives, but lowering
		// it to nothing is harmless if present.
		return 0, nil
	case *ast.ReadStatement, *ast.PrintStatement:
		// spec.md's quaternion model has no I/O variant, and never
		// defines READ/WRITE lowering: the dialect's later code
		// generator, which would give these instructions meaning, is
		// explicitly out of scope. Matches original_source/quaternizer.py,
		// whose parse_node raises on any node besides Program,
		// VariableAssignment, If, While and Repeat.
		return 0, newError(stmt, "quaternizer cannot lower %T: no quaternion variant represents I/O", stmt)
	default:
		return 0, newError(stmt, "unsupported statement node %T", stmt)
	}
}

func (g *Generator) lowerAssignment(s *ast.VariableAssignment) error {
	source, err := g.assignmentSource(s.Value)
	if err != nil {
		return err
	}
	g.emit(&Assign{Dest: s.Target.Name, Type: "Integer", Source: source})
	return nil
}

// assignmentSource materializes the right-hand side of an assignment into
// an operand string, per spec.md §4.3 "Assignment lowering".
func (g *Generator) assignmentSource(expr ast.Expression) (string, error) {
	switch v := expr.(type) {
	case *ast.NumberLiteral:
		return strconv.Itoa(v.Value), nil
	case *ast.Identifier:
		return v.Name, nil
	case *ast.BinaryExpression:
		if !v.Operator.IsArithmetic() {
			return "", newError(v, "assignment value must be an arithmetic expression")
		}
		return g.calculateExpression(v)
	default:
		return "", newError(expr, "unsupported assignment value %T", expr)
	}
}

// calculateExpression recursively lowers an arithmetic BinaryExpression
// tree, emitting one Calc per interior node in postorder and returning the
// operand string (a literal, an identifier, or a freshly allocated
// temporary) that holds the node's value.
func (g *Generator) calculateExpression(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return strconv.Itoa(e.Value), nil
	case *ast.Identifier:
		return e.Name, nil
	case *ast.BinaryExpression:
		if !e.Operator.IsArithmetic() {
			return "", newError(e, "unexpected expression operator %s", e.Token.Literal)
		}
		lhs, err := g.calculateExpression(e.Left)
		if err != nil {
			return "", err
		}
		rhs, err := g.calculateExpression(e.Right)
		if err != nil {
			return "", err
		}
		tmp := g.getTemporaryVariable()
		g.emit(&Calc{LHS: lhs, RHS: rhs, Op: arithSymbol(e.Operator), Dest: tmp})
		return tmp, nil
	default:
		return "", newError(expr, "unexpected expression operand %T", expr)
	}
}

func arithSymbol(t lexer.TokenType) string {
	switch t {
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.MULT:
		return "*"
	case lexer.DIV:
		return "/"
	default:
		return "?"
	}
}

func relSymbol(t lexer.TokenType) string {
	switch t {
	case lexer.EQ:
		return "="
	case lexer.NE:
		return "!="
	case lexer.LT:
		return "<"
	case lexer.GT:
		return ">"
	case lexer.LE:
		return "<="
	case lexer.GE:
		return ">="
	default:
		return "?"
	}
}

// conditionOperand materializes a relational operator's operand. A nested
// BinaryExpression here must have an arithmetic root and is lowered with
// calculateExpression — never recursed into trans_condition, which would
// misinterpret an arithmetic subexpression as a nested condition and
// mis-emit a conditional jump for it (spec.md §9, reference bug #2).
func (g *Generator) conditionOperand(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return strconv.Itoa(e.Value), nil
	case *ast.Identifier:
		return e.Name, nil
	case *ast.BinaryExpression:
		if !e.Operator.IsArithmetic() {
			return "", newError(e, "condition operand must be arithmetic, not a nested relational or boolean expression")
		}
		return g.calculateExpression(e)
	default:
		return "", newError(expr, "unexpected condition operand %T", expr)
	}
}

// transCondition lowers a boolean condition and returns (code_begin,
// true_list, false_list): code_begin is the position of the condition's
// first emitted instruction, true_list/false_list are the heads of the
// pending jump chains taken when the condition is true/false respectively.
func (g *Generator) transCondition(cond ast.Expression) (int, int, int, error) {
	bin, ok := cond.(*ast.BinaryExpression)
	if !ok {
		return 0, 0, 0, newError(cond, "condition must be a relational or boolean expression, got %T", cond)
	}

	switch bin.Operator {
	case lexer.OR:
		lBegin, lTrue, lFalse, err := g.transCondition(bin.Left)
		if err != nil {
			return 0, 0, 0, err
		}
		rBegin, rTrue, rFalse, err := g.transCondition(bin.Right)
		if err != nil {
			return 0, 0, 0, err
		}
		g.backpatch(lFalse, rBegin)
		return lBegin, g.merge(lTrue, rTrue), rFalse, nil

	case lexer.AND:
		lBegin, lTrue, lFalse, err := g.transCondition(bin.Left)
		if err != nil {
			return 0, 0, 0, err
		}
		rBegin, rTrue, rFalse, err := g.transCondition(bin.Right)
		if err != nil {
			return 0, 0, 0, err
		}
		g.backpatch(lTrue, rBegin)
		return lBegin, rTrue, g.merge(lFalse, rFalse), nil

	default:
		if !bin.Operator.IsRelational() {
			return 0, 0, 0, newError(bin, "unexpected condition operator %s", bin.Token.Literal)
		}
		begin := g.currentPos() + 1
		lhs, err := g.conditionOperand(bin.Left)
		if err != nil {
			return 0, 0, 0, err
		}
		rhs, err := g.conditionOperand(bin.Right)
		if err != nil {
			return 0, 0, 0, err
		}
		start := g.emit(&CondJump{Op: relSymbol(bin.Operator), LHS: lhs, RHS: rhs, Dest: 0})
		g.emit(&UncondJump{Dest: 0})
		return begin, start, start + 1, nil
	}
}

// lowerIf implements spec.md §4.3 IfStatementNode, with the bypass jump
// over the false branch treated as a real pending list that the enclosing
// statement list resolves (spec.md §9, reference bug #1) rather than
// silently dropped.
func (g *Generator) lowerIf(s *ast.IfStatement) (int, error) {
	_, trueList, falseList, err := g.transCondition(s.Condition)
	if err != nil {
		return 0, err
	}

	trueBegin := g.currentPos() + 1
	g.backpatch(trueList, trueBegin)

	trueTrailing, err := g.lowerStatements(s.TrueBody)
	if err != nil {
		return 0, err
	}
	if trueTrailing != 0 {
		g.backpatch(trueTrailing, g.currentPos()+1)
	}

	out := g.emit(&UncondJump{Dest: 0})

	falseBegin := g.currentPos() + 1
	g.backpatch(falseList, falseBegin)

	falseTrailing, err := g.lowerStatements(s.FalseBody)
	if err != nil {
		return 0, err
	}
	if falseTrailing != 0 {
		g.backpatch(falseTrailing, g.currentPos()+1)
	}

	return out, nil
}

// lowerWhile implements spec.md §4.3 WhileStatementNode. The returned
// false-list is the loop's exit: it is left pending for the enclosing
// statement list to resolve to "one past the whole while structure",
// which includes the loop-back jump this function itself emits last.
func (g *Generator) lowerWhile(s *ast.WhileStatement) (int, error) {
	condBegin := g.currentPos() + 1
	_, trueList, falseList, err := g.transCondition(s.Condition)
	if err != nil {
		return 0, err
	}

	bodyBegin := g.currentPos() + 1
	g.backpatch(trueList, bodyBegin)

	trailing, err := g.lowerStatements(s.Body)
	if err != nil {
		return 0, err
	}
	if trailing != 0 {
		g.backpatch(trailing, g.currentPos()+1)
	}

	g.emit(&UncondJump{Dest: condBegin})
	return falseList, nil
}

// lowerRepeat implements spec.md §4.3 RepeatStatementNode. Unlike If and
// While, Repeat resolves both of its condition's exits internally: the
// true-exit (leave the loop) to the position after the whole structure,
// the false-exit (the UNTIL failed) back to the body's first instruction.
// Nothing is left pending for the caller.
func (g *Generator) lowerRepeat(s *ast.RepeatStatement) error {
	repeatBegin := g.currentPos() + 1

	trailing, err := g.lowerStatements(s.Body)
	if err != nil {
		return err
	}
	if trailing != 0 {
		g.backpatch(trailing, g.currentPos()+1)
	}

	_, trueList, falseList, err := g.transCondition(s.Condition)
	if err != nil {
		return err
	}

	repeatEnd := g.currentPos() + 1
	g.backpatch(trueList, repeatEnd)
	g.backpatch(falseList, repeatBegin)
	return nil
}
