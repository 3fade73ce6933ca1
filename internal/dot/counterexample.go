package dot

import (
	"fmt"
	"io"
	"sort"

	"relkat.dev/core/internal/model"
	"relkat.dev/core/internal/regulartableau"
	"relkat.dev/core/internal/term"
)

// WriteCounterexampleModel renders the witness Model built from a
// genuinely open leaf's path (spec.md 4.7): one node per event, one edge
// per base-relation fact, and a label listing base-set memberships.
func WriteCounterexampleModel(w io.Writer, u *term.Universe, m *model.Model, baseRelations, baseSets []term.Name) {
	writeHeader(w, "counterexampleModel")
	events := m.Events()
	for _, e := range events {
		var members []string
		for _, b := range baseSets {
			if _, ok := m.HasSetMember(e, b); ok {
				members = append(members, u.NameString(b))
			}
		}
		sort.Strings(members)
		label := fmt.Sprintf("%d", e)
		if len(members) > 0 {
			label = fmt.Sprintf("%d [%v]", e, members)
		}
		fmt.Fprintf(w, "  e%d [label=%q, color=red];\n", e, label)
	}
	for _, b := range baseRelations {
		for _, e1 := range events {
			for _, e2 := range events {
				if _, ok := m.HasEdge(e1, e2, b); ok {
					fmt.Fprintf(w, "  e%d -> e%d [label=%q];\n", e1, e2, u.NameString(b))
				}
			}
		}
	}
	writeFooter(w)
}

// WriteCounterexamplePath renders the reachability-tree path from a
// regular-tableau root down to the genuinely open leaf that failed to
// close, the chain of cubes a reader walks to reconstruct why the goal is
// not provable.
func WriteCounterexamplePath(w io.Writer, u *term.Universe, path []regulartableau.PathStep) {
	writeHeader(w, "counterexamplePath")
	for i, step := range path {
		fmt.Fprintf(w, "  n%d [label=%q, color=red];\n", i, cubeString(u, step.Node.Cube))
		if i > 0 {
			fmt.Fprintf(w, "  n%d -> n%d [label=%q, color=red];\n", i-1, i, renamingString(step.RenamingFromParent))
		}
	}
	writeFooter(w)
}
