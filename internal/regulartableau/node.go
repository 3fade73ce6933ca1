// Package regulartableau implements the regular tableau of spec.md 4.6: a
// finite-state graph of canonicalized cubes explored via the positive modal
// rule, with subsumption by renaming-canonicalization, lazy inconsistency
// repair, and counter-example extraction from a genuinely open leaf.
package regulartableau

import (
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/rename"
)

// edge is one arrow between RegularNodes, carrying the renaming that maps
// the source's events onto the target's canonical events (spec.md 4.6). isEpsilon marks an inconsistency-derived short-cut edge.
type edge struct {
	ren       rename.Renaming
	isEpsilon bool
}

// Node is one regular-tableau node: a frozen, canonicalized cube, its
// outgoing and incoming edges (both regular and epsilon, merged and
// distinguished by edge.isEpsilon), a reachability-tree parent pointer, and
// a cache of children already confirmed inconsistent so the lazy repair
// pass never re-derives the same fix twice.
type Node struct {
	Cube literal.Cube

	out map[*Node]edge
	in  map[*Node]edge

	reachabilityTreeParent *Node
	closed                 bool

	fixedInconsistent map[*Node]bool
}

func newNode(c literal.Cube) *Node {
	return &Node{
		Cube:              c,
		out:               make(map[*Node]edge),
		in:                make(map[*Node]edge),
		fixedInconsistent: make(map[*Node]bool),
	}
}

// IsLeaf reports whether n has no outgoing edges of either kind.
func (n *Node) IsLeaf() bool { return len(n.out) == 0 }

// IsClosed reports whether n has been closed (by immediate contradiction or
// a lazy inconsistency repair run that found no fix).
func (n *Node) IsClosed() bool { return n.closed }

// Edges returns n's regular (non-epsilon) out-edges as child->renaming.
func (n *Node) Edges() map[*Node]rename.Renaming {
	out := make(map[*Node]rename.Renaming)
	for c, e := range n.out {
		if !e.isEpsilon {
			out[c] = e.ren
		}
	}
	return out
}

// EpsilonEdges returns n's epsilon out-edges as child->renaming.
func (n *Node) EpsilonEdges() map[*Node]rename.Renaming {
	out := make(map[*Node]rename.Renaming)
	for c, e := range n.out {
		if e.isEpsilon {
			out[c] = e.ren
		}
	}
	return out
}
