// Package quaternion lowers an AST into a position-addressed vector of
// four-field instructions ("quaternions"), using the classic
// truelist/falselist backpatching technique for control flow.
package quaternion

import "fmt"

// Quaternion is the common interface of the four instruction variants.
// Render produces the one-line textual form used by the CLI and the
// snapshot tests, prefixed with the instruction's 1-based position.
type Quaternion interface {
	Render(pos int) string
}

// Assign is `dest := source`. Textual form: (:=, source, -, dest).
type Assign struct {
	Dest   string
	Type   string // "Integer"; the only supported type
	Source string
}

// Render implements Quaternion.
func (a *Assign) Render(pos int) string {
	return fmt.Sprintf("(%d) (:=, %s, -, %s)", pos, a.Source, a.Dest)
}

// Calc computes `dest := lhs op rhs` for op in {+,-,*,/}.
type Calc struct {
	LHS  string
	RHS  string
	Op   string
	Dest string
}

// Render implements Quaternion.
func (c *Calc) Render(pos int) string {
	return fmt.Sprintf("(%d) (%s, %s, %s, %s)", pos, c.Op, c.LHS, c.RHS, c.Dest)
}

// CondJump jumps to Dest when `lhs op rhs` holds, for op in
// {=,!=,<,>,<=,>=}. Dest of 0 marks it unresolved, or the head of a
// pending jump-list chained through the Dest field itself.
type CondJump struct {
	Op   string
	LHS  string
	RHS  string
	Dest int
}

// Render implements Quaternion.
func (c *CondJump) Render(pos int) string {
	return fmt.Sprintf("(%d) (j%s, %s, %s, %d)", pos, c.Op, c.LHS, c.RHS, c.Dest)
}

// UncondJump always jumps to Dest. Dest of 0 marks it unresolved, or the
// head of a pending jump-list chained through the Dest field itself.
type UncondJump struct {
	Dest int
}

// Render implements Quaternion.
func (u *UncondJump) Render(pos int) string {
	return fmt.Sprintf("(%d) (j, -, -, %d)", pos, u.Dest)
}

// jumpDest returns a pointer to q's Dest field if q participates in the
// backpatch chain (CondJump, UncondJump), or nil otherwise. Assign and
// Calc never carry pending jumps.
func jumpDest(q Quaternion) *int {
	switch v := q.(type) {
	case *CondJump:
		return &v.Dest
	case *UncondJump:
		return &v.Dest
	default:
		return nil
	}
}

// Render renders the full quaternion listing, one instruction per line,
// each prefixed by its 1-based position in parentheses. This is the
// output format of spec.md §6.
func Render(quaternions []Quaternion) string {
	out := ""
	for i, q := range quaternions {
		out += q.Render(i+1) + "\n"
	}
	return out
}
