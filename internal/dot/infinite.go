package dot

import (
	"fmt"
	"io"

	"relkat.dev/core/internal/localtableau"
	"relkat.dev/core/internal/term"
)

// WriteInfinite renders a local tableau's (unbounded, non-regular) proof
// tree: spec.md 6's "infinite" output, used when the CLI's debugging mode
// runs the local solver directly instead of the regular tableau.
func WriteInfinite(w io.Writer, u *term.Universe, lt *localtableau.Tableau) {
	writeHeader(w, "infinite")
	next := 0
	ids := make(map[*localtableau.Node]int)
	var walk func(n *localtableau.Node)
	walk = func(n *localtableau.Node) {
		id := next
		ids[n] = id
		next++
		color := "black"
		if n.IsClosed() {
			color = "green"
		}
		fmt.Fprintf(w, "  n%d [label=%q, color=%s];\n", id, litString(u, n.Literal()), color)
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(lt.Root())
	for n, id := range ids {
		for _, c := range n.Children() {
			fmt.Fprintf(w, "  n%d -> n%d;\n", id, ids[c])
		}
	}
	writeFooter(w)
}
