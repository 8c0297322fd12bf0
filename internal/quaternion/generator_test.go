package quaternion

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-tpcc/internal/lexer"
	"github.com/cwbudde/go-tpcc/internal/parser"
)

// lowerBody parses a Program/VAR header around body and returns the
// generated quaternion listing, mirroring the pipeline the CLI drives.
func lowerBody(t *testing.T, names string, body string) string {
	t.Helper()
	source := "program p;\nvar " + names + ": integer;\nprocedure p;\nbegin\n" + body + "\nend"

	p, err := parser.New(lexer.New(source))
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	statements, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	g := New()
	quaternions, err := g.Generate(statements)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return Render(quaternions)
}

func trimLines(s string) string {
	return strings.TrimRight(s, "\n")
}

// TestScenarioA_Assignment pins the arithmetic-assignment lowering.
func TestScenarioA_Assignment(t *testing.T) {
	got := trimLines(lowerBody(t, "a, b, c", "a := b + c * 2;"))
	want := trimLines(`(1) (*, c, 2, t1)
(2) (+, b, t1, t2)
(3) (:=, t2, -, a)
`)
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestScenarioB_IfNoElse pins the IF bypass-jump-as-pending-list fix: both
// the false-exit of the condition and the post-body bypass resolve to the
// position right after the whole IF.
func TestScenarioB_IfNoElse(t *testing.T) {
	got := trimLines(lowerBody(t, "a, b", "if a > 0 then b := 1;"))
	want := trimLines(`(1) (j>, a, 0, 3)
(2) (j, -, -, 5)
(3) (:=, 1, -, b)
(4) (j, -, -, 5)
`)
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestScenarioC_ShortCircuitOr pins the OR merge: the left relation's
// false-list feeds into the right relation's start, and the true-lists of
// both sides merge into one list backpatched to the body.
func TestScenarioC_ShortCircuitOr(t *testing.T) {
	got := trimLines(lowerBody(t, "a, b, c", "if a = 1 or b = 2 then c := 3;"))
	want := trimLines(`(1) (j=, a, 1, 5)
(2) (j, -, -, 3)
(3) (j=, b, 2, 5)
(4) (j, -, -, 7)
(5) (:=, 3, -, c)
(6) (j, -, -, 7)
`)
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestScenarioD_While pins the while-loop lowering. The loop exit resolves
// to one past the whole structure (including the loop-back jump this
// function itself emits last): with five instructions total, that is
// position 6, not the position of the loop-back jump itself. (A plausible
// literal reading elsewhere puts this at 5, which would make the loop-back
// jump its own exit target; current_pos()+1, applied consistently at every
// other backpatch site in this package, gives 6.)
func TestScenarioD_While(t *testing.T) {
	got := trimLines(lowerBody(t, "i, n", "while i < n do i := i + 1;"))
	want := trimLines(`(1) (j<, i, n, 3)
(2) (j, -, -, 6)
(3) (+, i, 1, t1)
(4) (:=, t1, -, i)
(5) (j, -, -, 1)
`)
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestScenarioE_Repeat pins the repeat-loop lowering, which resolves both
// exits internally and leaves nothing pending for the caller.
func TestScenarioE_Repeat(t *testing.T) {
	got := trimLines(lowerBody(t, "x", "repeat x := x - 1; until x = 0;"))
	want := trimLines(`(1) (-, x, 1, t1)
(2) (:=, t1, -, x)
(3) (j=, x, 0, 5)
(4) (j, -, -, 1)
`)
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestScenarioF_ShortCircuitAnd pins the AND merge: the true-exit of the
// first relation feeds the second relation's start, and the false-exits of
// both merge into one list.
func TestScenarioF_ShortCircuitAnd(t *testing.T) {
	got := trimLines(lowerBody(t, "a, b, c", "if a > 0 and b > 0 then c := 1;"))
	want := trimLines(`(1) (j>, a, 0, 3)
(2) (j, -, -, 7)
(3) (j>, b, 0, 5)
(4) (j, -, -, 7)
(5) (:=, 1, -, c)
(6) (j, -, -, 7)
`)
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestConditionOperandIsArithmeticOnly pins reference bug #2's fix: an
// arithmetic BinaryExpression directly beneath a relational operator is
// lowered through calculateExpression (emitting a Calc for it), never
// recursed into transCondition.
func TestConditionOperandIsArithmeticOnly(t *testing.T) {
	got := trimLines(lowerBody(t, "a, b, c", "if (a + 1) > b then c := 1;"))
	want := trimLines(`(1) (+, a, 1, t1)
(2) (j>, t1, b, 4)
(3) (j, -, -, 6)
(4) (:=, 1, -, c)
(5) (j, -, -, 6)
`)
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestReadWriteRejected(t *testing.T) {
	source := "program p;\nvar x: integer;\nprocedure p;\nbegin\nwrite x;\nend"
	p, err := parser.New(lexer.New(source))
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	statements, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	g := New()
	_, err = g.Generate(statements)
	if err == nil {
		t.Fatal("expected an error lowering a PrintStatement, got nil")
	}
	if _, ok := err.(*Error); !ok {
		t.Fatalf("expected *quaternion.Error, got %T", err)
	}
}

func TestBackpatchChain(t *testing.T) {
	g := New()
	a := g.emit(&UncondJump{Dest: 0})
	b := g.emit(&UncondJump{Dest: 0})
	c := g.emit(&UncondJump{Dest: 0})

	chain := g.merge(a, g.merge(b, c))
	g.backpatch(chain, 42)

	for i, q := range g.quaternions {
		u := q.(*UncondJump)
		if u.Dest != 42 {
			t.Errorf("quaternion %d: Dest = %d, want 42", i+1, u.Dest)
		}
	}
}

