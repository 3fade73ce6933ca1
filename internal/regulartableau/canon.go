package regulartableau

import (
	"sort"

	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/rename"
	"relkat.dev/core/internal/rules"
	"relkat.dev/core/internal/term"
)

// store owns every RegularNode, deduplicated by canonical cube signature.
type store struct {
	u     *term.Universe
	nodes map[string]*Node
}

func newStore(u *term.Universe) *store {
	return &store{u: u, nodes: make(map[string]*Node)}
}

// canonicalize implements spec.md 4.6's node-insertion canonicalization:
// select the literals relevant for comparison (here: every positive
// literal, and every negated literal — topEvents is not tracked, see
// DESIGN.md, so the full negated set stands in for "negated top-event
// literals"), sort them deterministically, number their events by first
// occurrence, apply that renaming, and look up or insert the result.
// It returns the canonical node and the renaming mapping the caller's
// events onto that node's namespace.
func (s *store) canonicalize(raw literal.Cube) (*Node, rename.Renaming) {
	relevant := relevantLiterals(raw)
	sort.Slice(relevant, func(i, j int) bool { return literal.Less(s.u, relevant[i], relevant[j]) })

	ren := firstOccurrenceRenaming(s.u, relevant)

	renamed := make([]literal.Literal, len(relevant))
	for i, l := range relevant {
		renamed[i] = l.Rename(s.u, ren)
	}
	canon := literal.NewCube(s.u, renamed)

	// spec.md 4.8's redundancy-elimination pass runs here: this is the
	// chokepoint every cube crosses on its way to becoming (or being
	// looked up as) a regular-tableau node, matching spec.md's framing
	// ("before handing a cube to the regular tableau").
	canon = rules.Preprocess(s.u, canon)

	sig := canon.Signature(s.u)
	if n, ok := s.nodes[sig]; ok {
		return n, ren
	}
	n := newNode(canon)
	s.nodes[sig] = n
	return n, ren
}

// relevantLiterals selects the literals spec.md 4.6 canonicalizes on.
func relevantLiterals(c literal.Cube) []literal.Literal {
	out := make([]literal.Literal, 0, c.Len())
	for _, l := range c.Literals() {
		if l.Kind() == literal.KindConstant {
			continue
		}
		out = append(out, l)
	}
	return out
}

// firstOccurrenceRenaming builds the minimal renaming that numbers every
// event appearing in sorted (by canonicalization order) 0..n-1 by first
// occurrence, so that two structurally isomorphic cubes canonicalize to
// the same node regardless of their original event numbering.
func firstOccurrenceRenaming(u *term.Universe, sorted []literal.Literal) rename.Renaming {
	seen := make(map[term.EventLabel]bool)
	var pairs []rename.Pair
	next := int32(0)
	add := func(ev term.EventLabel) {
		if seen[ev] {
			return
		}
		seen[ev] = true
		pairs = append(pairs, rename.Pair{From: ev, To: next})
		next++
	}
	for _, l := range sorted {
		for _, ev := range literalEvents(u, l) {
			add(ev)
		}
	}
	return rename.New(pairs)
}

// literalEvents returns the event labels appearing in l.
func literalEvents(u *term.Universe, l literal.Literal) []term.EventLabel {
	switch l.Kind() {
	case literal.KindEdge, literal.KindEquality:
		ev := l.Events()
		return []term.EventLabel{ev[0], ev[1]}
	case literal.KindSet:
		ev := l.Events()
		return []term.EventLabel{ev[0]}
	case literal.KindNonEmptiness:
		return u.SetFacts(l.SetTerm().Set).Events
	default:
		return nil
	}
}
