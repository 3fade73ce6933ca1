package localtableau

import (
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/term"
)

// segment classifies a node for the priority worklist of spec.md 4.5.
// The four segments are kept as plain slices rather than the original's
// intrusive doubly linked sentinel-bounded list: appending to the back and
// popping from the front are amortized O(1), but pushing a non-leaf to the
// front of segOther copies the whole segment, which is O(n).
type segment int

const (
	segPositiveEquality segment = iota
	segPositive
	segNonNormalNegated
	segOther
	numSegments
)

func classify(u *term.Universe, lit literal.Literal) segment {
	switch {
	case lit.Kind() == literal.KindEquality && !lit.Negated():
		return segPositiveEquality
	case !lit.Negated():
		return segPositive
	case !lit.IsNormal(u):
		return segNonNormalNegated
	default:
		return segOther
	}
}

// worklist is the priority queue driving applyRule: higher
// priority segments always drain before lower ones.
type worklist struct {
	segs [numSegments][]*Node
}

// push enqueues n into its segment. Within segOther, leaves go to the back
// and internal nodes to the front, so already-reducible non-leaves get
// picked up before we re-visit a leaf whose rule may not even apply yet.
func (w *worklist) push(u *term.Universe, n *Node) {
	seg := classify(u, n.lit)
	if seg == segOther && !n.IsLeaf() {
		w.segs[seg] = append([]*Node{n}, w.segs[seg]...)
		return
	}
	w.segs[seg] = append(w.segs[seg], n)
}

// pop removes and returns the highest-priority node, or ok=false if empty.
func (w *worklist) pop() (n *Node, ok bool) {
	for i := range w.segs {
		if len(w.segs[i]) > 0 {
			n = w.segs[i][0]
			w.segs[i] = w.segs[i][1:]
			return n, true
		}
	}
	return nil, false
}
