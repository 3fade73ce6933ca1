package dot

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/satbudget"
	"relkat.dev/core/internal/term"
)

// TestCubeStringRendersLiteralsInOrder pins cubeString's rendering against a
// golden string, using go-cmp the way a structural diff assertion over a
// cube/model rendering is meant to (SPEC_FULL.md 8).
func TestCubeStringRendersLiteralsInOrder(t *testing.T) {
	u := term.New()
	a := u.Intern("a")
	lits := []literal.Literal{
		literal.Edge(0, 1, a, false, satbudget.Budget{}),
		literal.Equality(1, 2, true),
	}
	c := literal.NewCube(u, lits)

	got := cubeString(u, c)
	want := "(0,1,a) & 1!=2"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cubeString mismatch (-want +got):\n%s", diff)
	}
}

// TestCubeStringEmptyCubeIsTop guards the TOP-rendering edge case with the
// same go-cmp diff style.
func TestCubeStringEmptyCubeIsTop(t *testing.T) {
	u := term.New()
	c := literal.NewCube(u, nil)
	if diff := cmp.Diff("TOP", cubeString(u, c)); diff != "" {
		t.Errorf("cubeString mismatch (-want +got):\n%s", diff)
	}
}
