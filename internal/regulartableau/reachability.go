package regulartableau

import "relkat.dev/core/internal/rename"

// addRegularEdge installs a regular edge parent -> child, suppressing
// duplicates, and maintains the reachability-tree spanning forest
// (spec.md 4.6). newlyReachable collects any node that became reachable by
// this call, so callers (expansion) can push freshly-reachable open leaves
// onto the worklist.
func (s *store) addRegularEdge(parent, child *Node, r rename.Renaming) (newlyReachable []*Node) {
	return s.addEdge(parent, child, r, false)
}

// addEpsilonEdge installs an epsilon edge parent -> child and, per
// spec.md 4.6, also adds direct edges from every node that can already
// reach parent (its in-edges, transitively via already-installed edges are
// not re-walked; only immediate parents/grandparents per the spec's literal
// wording) to child, composing renamings.
func (s *store) addEpsilonEdge(parent, child *Node, r rename.Renaming) (newlyReachable []*Node) {
	newlyReachable = append(newlyReachable, s.addEdge(parent, child, r, true)...)
	for gp, ge := range parent.in {
		composed := ge.ren.ComposeTotal(r)
		newlyReachable = append(newlyReachable, s.addEdge(gp, child, composed, ge.isEpsilon)...)
	}
	return newlyReachable
}

func (s *store) addEdge(parent, child *Node, r rename.Renaming, epsilon bool) (newlyReachable []*Node) {
	if e, ok := parent.out[child]; ok && e.isEpsilon == epsilon && e.ren.Equal(r) {
		return nil
	}
	e := edge{ren: r, isEpsilon: epsilon}
	parent.out[child] = e
	child.in[parent] = e

	if s.reachable(child) || !s.reachable(parent) {
		return nil
	}
	child.reachabilityTreeParent = parent
	newlyReachable = append(newlyReachable, child)
	queue := []*Node{child}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for desc := range cur.out {
			if !s.reachable(desc) {
				desc.reachabilityTreeParent = cur
				newlyReachable = append(newlyReachable, desc)
				queue = append(queue, desc)
			}
		}
	}
	return newlyReachable
}

// removeRegularEdge deletes the regular edge parent -> child and, if that
// edge was the tree edge supporting child's reachability, rebuilds the
// entire spanning forest by BFS from the root set (spec.md 4.6).
// newlyReachable reports every still-(or-again-)reachable, unclosed leaf
// after the rebuild, the same way addEdge reports freshly-reachable nodes,
// so repair can re-queue them: a node's own tree edge can be the one
// severed here (repair walks the path starting at the spurious leaf
// itself), and since nodes are canonicalized and shared, it can remain
// reachable the whole time via a second, pre-existing regular edge from a
// different, already-expanded parent — just re-parented to that edge by
// this rebuild rather than freshly discovered. Such a leaf was never
// marked closed and never gets a new tree edge added for it, so nothing
// else will ever put it back on the stack; reporting it here is the only
// way repair learns it still needs examining.
func (s *store) removeRegularEdge(parent, child *Node, roots []*Node) (newlyReachable []*Node) {
	delete(parent.out, child)
	delete(child.in, parent)
	if child.reachabilityTreeParent == parent {
		return s.rebuildReachabilityTree(roots)
	}
	return nil
}

func (s *store) rebuildReachabilityTree(roots []*Node) (newlyReachable []*Node) {
	for _, n := range s.nodes {
		n.reachabilityTreeParent = nil
	}
	var queue []*Node
	for _, r := range roots {
		r.reachabilityTreeParent = r
		queue = append(queue, r)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for desc := range cur.out {
			if desc.reachabilityTreeParent == nil {
				desc.reachabilityTreeParent = cur
				queue = append(queue, desc)
			}
		}
	}
	for _, n := range s.nodes {
		if s.reachable(n) && n.IsLeaf() && !n.closed {
			newlyReachable = append(newlyReachable, n)
		}
	}
	return newlyReachable
}

// reachable reports whether n has a path from the root set recorded in the
// current spanning forest.
func (s *store) reachable(n *Node) bool {
	return n.reachabilityTreeParent != nil
}
