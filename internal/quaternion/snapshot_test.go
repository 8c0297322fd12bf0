package quaternion

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestMain lets go-snaps prune obsolete snapshots after the full package
// test run, per its documented setup.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// TestSnapshot_Gcd snapshots the quaternion listing for a small
// multi-construct program (nested IF inside a WHILE, computing a GCD by
// repeated subtraction), exercising loop exits, a nested condition and
// both arithmetic and relational lowering in one listing.
func TestSnapshot_Gcd(t *testing.T) {
	got := lowerBody(t, "a, b", `
while a <> b do
begin
	if a > b then a := a - b;
	else b := b - a;
end`)
	snaps.MatchSnapshot(t, got)
}

// TestSnapshot_NestedIfElse snapshots an IF/ELSE where both branches
// contain further statements, to pin the false-branch bypass resolution
// when a non-empty FalseBody is present.
func TestSnapshot_NestedIfElse(t *testing.T) {
	got := lowerBody(t, "x, y", `
if x > y then
begin
	y := y + 1;
end
else
begin
	x := x + 1;
	y := y - 1;
end`)
	snaps.MatchSnapshot(t, got)
}
