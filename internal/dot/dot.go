// Package dot renders the four Graphviz outputs spec.md 6 names — the
// regular-tableau proof DAG, the local ("infinite") tableau tree, the
// counter-example model, and the counter-example path — as plain
// `digraph` text, in the style of term.Universe's own SetString/RelString
// debug renderer (strings.Builder, no templating dependency). No
// third-party Graphviz-writing library appears anywhere in the example
// corpus, and spec.md's own Non-goals scope "Graphviz emission detail
// beyond a faithful .dot walk" out of scope, so a hand-rolled walk over
// fmt.Fprintf is the right size for this concern (see DESIGN.md).
package dot

import (
	"fmt"
	"io"

	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/localtableau"
	"relkat.dev/core/internal/model"
	"relkat.dev/core/internal/regulartableau"
	"relkat.dev/core/internal/term"
)

func litString(u *term.Universe, l literal.Literal) string {
	neg := ""
	if l.Negated() {
		neg = "!"
	}
	switch l.Kind() {
	case literal.KindEdge:
		ev := l.Events()
		return fmt.Sprintf("%s(%d,%d,%s)", neg, ev[0], ev[1], u.NameString(l.Base()))
	case literal.KindSet:
		ev := l.Events()
		return fmt.Sprintf("%s(%d in %s)", neg, ev[0], u.NameString(l.Base()))
	case literal.KindEquality:
		ev := l.Events()
		if l.Negated() {
			return fmt.Sprintf("%d!=%d", ev[0], ev[1])
		}
		return fmt.Sprintf("%d=%d", ev[0], ev[1])
	case literal.KindNonEmptiness:
		return fmt.Sprintf("%sne(%s)", neg, u.SetString(l.SetTerm().Set))
	case literal.KindConstant:
		if l.IsTop() {
			return "TOP"
		}
		return "BOTTOM"
	default:
		return "?"
	}
}

func cubeString(u *term.Universe, c literal.Cube) string {
	out := ""
	for i, l := range c.Literals() {
		if i > 0 {
			out += " & "
		}
		out += litString(u, l)
	}
	if out == "" {
		return "TOP"
	}
	return out
}

func writeHeader(w io.Writer, name string) {
	fmt.Fprintf(w, "digraph %s {\n", name)
	fmt.Fprintf(w, "  node [shape=box, fontname=\"monospace\"];\n")
}

func writeFooter(w io.Writer) {
	fmt.Fprintf(w, "}\n")
}

func nodeColor(closed, reachable, onPath bool) string {
	switch {
	case onPath:
		return "red"
	case closed:
		return "green"
	case !reachable:
		return "grey"
	default:
		return "black"
	}
}
