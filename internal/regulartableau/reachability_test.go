package regulartableau

import (
	"testing"

	"github.com/go-quicktest/qt"

	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/rename"
	"relkat.dev/core/internal/satbudget"
	"relkat.dev/core/internal/term"
)

func distinctNode(t *testing.T, s *store, u *term.Universe, name string) *Node {
	t.Helper()
	lit := literal.Edge(0, 1, u.Intern(name), false, satbudget.Budget{})
	n, _ := s.canonicalize(literal.NewCube(u, []literal.Literal{lit}))
	return n
}

// TestRemoveRegularEdgeRequeuesStillReachableLeaf guards the reachability
// rebuild against the scenario repair's path-scoped edge removal creates:
// a node (x) reachable via two independent parents, one of them its
// reachability-tree parent (p1) and the other a separate, already-expanded
// node (p3) with its own direct edge to x. Severing p1->x (as repair does
// when it fixes p1's inconsistency) must not strand x: it stays reachable
// via p3, and since it is still an open, unclosed leaf, removeRegularEdge
// must report it so repair can put it back on the stack.
func TestRemoveRegularEdgeRequeuesStillReachableLeaf(t *testing.T) {
	u := term.New()
	s := newStore(u)

	root := distinctNode(t, s, u, "root")
	p1 := distinctNode(t, s, u, "p1")
	p3 := distinctNode(t, s, u, "p3")
	x := distinctNode(t, s, u, "x")

	root.reachabilityTreeParent = root
	roots := []*Node{root}

	s.addRegularEdge(root, p1, rename.Empty)
	s.addRegularEdge(root, p3, rename.Empty)
	s.addRegularEdge(p1, x, rename.Empty)
	// x is already reachable via p1, so this second edge never becomes the
	// tree edge, but it keeps x reachable once p1->x is gone.
	s.addRegularEdge(p3, x, rename.Empty)

	qt.Assert(t, qt.Equals(x.reachabilityTreeParent, p1))

	again := s.removeRegularEdge(p1, x, roots)

	qt.Assert(t, qt.IsTrue(s.reachable(x)))
	qt.Assert(t, qt.Equals(x.reachabilityTreeParent, p3))
	qt.Assert(t, qt.IsTrue(x.IsLeaf()))
	qt.Assert(t, qt.IsFalse(x.closed))

	found := false
	for _, n := range again {
		if n == x {
			found = true
		}
	}
	qt.Assert(t, qt.IsTrue(found))
}

// TestRemoveRegularEdgeDropsNowUnreachableLeaf covers the companion case:
// once no surviving edge reaches a node, the rebuild leaves it unreachable
// and it is absent from the requeue list, while p1, which lost its only
// out-edge and is now a reachable open leaf, is reported.
func TestRemoveRegularEdgeDropsNowUnreachableLeaf(t *testing.T) {
	u := term.New()
	s := newStore(u)

	root := distinctNode(t, s, u, "root")
	p1 := distinctNode(t, s, u, "p1")
	x := distinctNode(t, s, u, "x")

	root.reachabilityTreeParent = root
	roots := []*Node{root}

	s.addRegularEdge(root, p1, rename.Empty)
	s.addRegularEdge(p1, x, rename.Empty)

	again := s.removeRegularEdge(p1, x, roots)

	qt.Assert(t, qt.IsFalse(s.reachable(x)))
	qt.Assert(t, qt.HasLen(again, 1))
	qt.Assert(t, qt.Equals(again[0], p1))
}
