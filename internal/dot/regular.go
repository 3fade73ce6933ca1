package dot

import (
	"fmt"
	"io"

	"relkat.dev/core/internal/regulartableau"
	"relkat.dev/core/internal/rename"
	"relkat.dev/core/internal/term"
)

// WriteRegular renders the regular-tableau proof DAG: every canonical node
// ever inserted, its regular edges (solid) and epsilon edges (dashed),
// colored green when closed, grey when no longer reachable from the root
// set, red when it lies on the counter-example path (onPath may be nil).
func WriteRegular(w io.Writer, u *term.Universe, t *regulartableau.Tableau, onPath []*regulartableau.Node) {
	writeHeader(w, "regular")

	reachable := make(map[*regulartableau.Node]bool)
	var walk func(n *regulartableau.Node)
	seen := make(map[*regulartableau.Node]bool)
	walk = func(n *regulartableau.Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		reachable[n] = true
		for c := range n.Edges() {
			walk(c)
		}
		for c := range n.EpsilonEdges() {
			walk(c)
		}
	}
	for _, r := range t.Roots() {
		walk(r)
	}

	onPathSet := make(map[*regulartableau.Node]bool, len(onPath))
	for _, n := range onPath {
		onPathSet[n] = true
	}

	ids := make(map[*regulartableau.Node]int)
	all := t.AllNodes()
	for i, n := range all {
		ids[n] = i
	}

	for _, n := range all {
		color := nodeColor(n.IsClosed(), reachable[n], onPathSet[n])
		fmt.Fprintf(w, "  n%d [label=%q, color=%s];\n", ids[n], cubeString(u, n.Cube), color)
	}
	for _, n := range all {
		for c, r := range n.Edges() {
			fmt.Fprintf(w, "  n%d -> n%d [label=%q];\n", ids[n], ids[c], renamingString(r))
		}
		for c, r := range n.EpsilonEdges() {
			fmt.Fprintf(w, "  n%d -> n%d [label=%q, style=dashed];\n", ids[n], ids[c], renamingString(r))
		}
	}
	writeFooter(w)
}

func renamingString(r rename.Renaming) string {
	out := ""
	for i, p := range r.Pairs() {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%d->%d", p.From, p.To)
	}
	return out
}
