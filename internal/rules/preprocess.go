package rules

import (
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/term"
)

// parentMap is spec.md 4.8's "parent map of conjunctive contexts": for every
// relation appearing inside a positive literal's Set term, the immediately
// enclosing relations that narrow it conjunctively, keyed by the narrowed
// (child) relation.
//
// Grounded on _examples/original_source/src/Preprocessing.h's
// updateParentMap. That function records a parent only when a composition
// or intersection has a setIdentity operand — i.e. one side restricts to a
// particular set rather than standing for "the whole other side" — since
// only then is the compound term a sound (conjunctive, implication-only)
// narrowing of its other operand, safe to substitute for later. A plain
// union is disjunctive in general and is not recorded here; the only union
// recorded is the "restrictive union" case where both operands are
// setIdentity, see DESIGN.md.
type parentMap map[term.RelID]map[term.RelID]bool

func (m parentMap) add(child, parent term.RelID) {
	set, ok := m[child]
	if !ok {
		set = make(map[term.RelID]bool)
		m[child] = set
	}
	set[parent] = true
}

// updateParentMapRel walks r's term tree, recording every conjunctive
// parent-child pair it finds into pm.
func updateParentMapRel(u *term.Universe, r term.RelID, pm parentMap) {
	switch u.RelOp(r) {
	case term.RelBase, term.RelIdentity, term.RelEmpty, term.RelFull, term.RelCartesianProduct:
		return
	case term.RelComposition, term.RelIntersection:
		left, right := u.RelLeft(r), u.RelRight(r)
		if u.RelOp(left) == term.RelSetIdentity {
			pm.add(right, r)
		}
		if u.RelOp(right) == term.RelSetIdentity {
			pm.add(left, r)
		}
		updateParentMapRel(u, left, pm)
		updateParentMapRel(u, right, pm)
	case term.RelUnion:
		left, right := u.RelLeft(r), u.RelRight(r)
		if u.RelOp(left) == term.RelSetIdentity && u.RelOp(right) == term.RelSetIdentity {
			pm.add(left, r)
			pm.add(right, r)
		}
		updateParentMapRel(u, left, pm)
		updateParentMapRel(u, right, pm)
	case term.RelConverse, term.RelTransitiveClosure:
		updateParentMapRel(u, u.RelLeft(r), pm)
	case term.RelSetIdentity:
		updateParentMapSet(u, u.RelSet(r), pm)
	}
}

// updateParentMapSet walks s's term tree, descending into every relation it
// mentions (image/domain) via updateParentMapRel.
func updateParentMapSet(u *term.Universe, s term.SetID, pm parentMap) {
	switch u.SetOp(s) {
	case term.SetBase, term.SetEvent, term.SetEmpty, term.SetFull:
		return
	case term.SetImage, term.SetDomain:
		updateParentMapSet(u, u.SetLeft(s), pm)
		updateParentMapRel(u, u.SetRelation(s), pm)
	case term.SetUnion, term.SetIntersection:
		updateParentMapSet(u, u.SetLeft(s), pm)
		updateParentMapSet(u, u.SetRight(s), pm)
	}
}

// greatestCommonConjunctiveContext builds, for every base relation reachable
// from positives, the chain of its unique enclosing conjunctive parents
// (spec.md 4.8): starting at the base relation, repeatedly follow the
// parent map as long as a relation has exactly one recorded parent. The
// chain is returned innermost-last (i.e. reversed from discovery order) so
// eliminateRedundantContexts tries the largest, most specific context
// first, matching the original's stated intent ("try to replace
// ([W];co-typed);[W] before [W];co-typed").
func greatestCommonConjunctiveContext(u *term.Universe, positives []literal.Literal) map[term.RelID][]term.RelID {
	pm := make(parentMap)
	for _, l := range positives {
		updateParentMapSet(u, l.SetTerm().Set, pm)
	}

	contexts := make(map[term.RelID][]term.RelID)
	for child := range pm {
		if u.RelOp(child) != term.RelBase {
			continue
		}
		var chain []term.RelID
		cur := child
		for {
			parents, ok := pm[cur]
			if !ok || len(parents) != 1 {
				break
			}
			var next term.RelID
			for p := range parents {
				next = p
			}
			chain = append(chain, next)
			cur = next
		}
		if len(chain) == 0 {
			continue
		}
		for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
			chain[i], chain[j] = chain[j], chain[i]
		}
		contexts[child] = chain
	}
	return contexts
}

// eliminateRedundantContexts tries, for the negated setNonEmptiness literal
// l, every (base relation, enclosing context) pair contexts records: if
// substituting the base relation for an occurrence of one of its contexts
// strictly shrinks l's Set term, the replacement is kept. Grounded on
// _examples/original_source/src/Preprocessing.h's
// eleminateRedundantConjunctiveContexts.
func eliminateRedundantContexts(u *term.Universe, l literal.Literal, contexts map[term.RelID][]term.RelID) literal.Literal {
	as := l.SetTerm()
	s := as.Set
	for base, chain := range contexts {
		for _, ctx := range chain {
			candidate, ok := u.SubstituteRelation(s, ctx, base)
			if !ok {
				continue
			}
			if setSize(u, candidate) < setSize(u, s) {
				s = candidate
			}
		}
	}
	if s == as.Set {
		return l
	}
	return literal.NonEmpty(s, true, as.Ann)
}

// Preprocess implements spec.md 4.8: a redundancy-elimination pass run on
// every cube before it becomes a regular-tableau node. It collapses
// negated literals' conjunctive contexts back down to the base relations
// they canonicalize into wherever that substitution strictly shrinks the
// literal, a semantics-preserving size reduction that keeps cube
// signatures from drifting apart over structurally-equivalent saturation
// unrollings. Cubes with no setNonEmptiness literals, or none that shrink,
// are returned unchanged.
func Preprocess(u *term.Universe, c literal.Cube) literal.Cube {
	lits := c.Literals()
	var positives []literal.Literal
	for _, l := range lits {
		if l.Kind() == literal.KindNonEmptiness && !l.Negated() {
			positives = append(positives, l)
		}
	}
	contexts := greatestCommonConjunctiveContext(u, positives)
	if len(contexts) == 0 {
		return c
	}

	out := make([]literal.Literal, len(lits))
	changed := false
	for i, l := range lits {
		if l.Kind() != literal.KindNonEmptiness || !l.Negated() {
			out[i] = l
			continue
		}
		out[i] = eliminateRedundantContexts(u, l, contexts)
		if out[i] != l {
			changed = true
		}
	}
	if !changed {
		return c
	}
	return literal.NewCube(u, out)
}

// setSize counts the nodes in s's term tree, the size measure spec.md 4.8's
// "strictly smaller canonical literal" criterion compares on.
func setSize(u *term.Universe, s term.SetID) int {
	switch u.SetOp(s) {
	case term.SetBase, term.SetEvent, term.SetEmpty, term.SetFull:
		return 1
	case term.SetImage, term.SetDomain:
		return 1 + setSize(u, u.SetLeft(s)) + relSize(u, u.SetRelation(s))
	case term.SetUnion, term.SetIntersection:
		return 1 + setSize(u, u.SetLeft(s)) + setSize(u, u.SetRight(s))
	default:
		return 1
	}
}

// relSize is setSize's Relation counterpart.
func relSize(u *term.Universe, r term.RelID) int {
	switch u.RelOp(r) {
	case term.RelBase, term.RelIdentity, term.RelEmpty, term.RelFull:
		return 1
	case term.RelUnion, term.RelIntersection, term.RelComposition:
		return 1 + relSize(u, u.RelLeft(r)) + relSize(u, u.RelRight(r))
	case term.RelConverse, term.RelTransitiveClosure:
		return 1 + relSize(u, u.RelLeft(r))
	case term.RelSetIdentity:
		return 1 + setSize(u, u.RelSet(r))
	case term.RelCartesianProduct:
		return 1 + setSize(u, u.CartesianLeft(r)) + setSize(u, u.CartesianRight(r))
	default:
		return 1
	}
}
