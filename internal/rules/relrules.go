package rules

import (
	"relkat.dev/core/internal/literal"
	"relkat.dev/core/internal/term"
)

// applyRelational handles setNonEmptiness(e;r) / setNonEmptiness(r;e) where
// s is an Image or Domain node (spec.md 4.4's "Relational rules"). image
// and domain are treated symmetrically: side tracks which one s is so the
// rebuilder can reconstruct the right shape.
func applyRelational(u *term.Universe, cfg Config, neg bool, s term.SetID, ann annTree) Result {
	isImage := u.SetOp(s) == term.SetImage
	e := u.SetLeft(s)
	r := u.SetRelation(s)

	rebuild := func(inner term.SetID, rel term.RelID) term.SetID {
		if isImage {
			return u.Image(inner, rel)
		}
		return u.Domain(inner, rel)
	}

	switch u.RelOp(r) {
	case term.RelBase:
		// Positive is deferred to modal unrolling (regulartableau);
		// negative is deferred to atomic/saturation inference.
		return Result{}

	case term.RelUnion:
		r1, r2 := u.RelLeft(r), u.RelRight(r)
		if !neg {
			return Result{Fired: true, DNF: one(mkCube(u, literal.NonEmpty(rebuild(e, r1), false, ann))).
				Or(one(mkCube(u, literal.NonEmpty(rebuild(e, r2), false, ann))))}
		}
		return Result{Fired: true, DNF: one(mkCube(u,
			literal.NonEmpty(rebuild(e, r1), true, ann),
			literal.NonEmpty(rebuild(e, r2), true, ann),
		))}

	case term.RelIntersection:
		r1, r2 := u.RelLeft(r), u.RelRight(r)
		newSet := u.SetIntersectionOf(rebuild(e, r1), rebuild(e, r2))
		return Result{Fired: true, DNF: one(mkCube(u, literal.NonEmpty(newSet, neg, ann)))}

	case term.RelComposition:
		a, b := u.RelLeft(r), u.RelRight(r)
		var newSet term.SetID
		if isImage {
			newSet = u.Image(u.Image(e, a), b)
		} else {
			newSet = u.Domain(u.Domain(e, b), a)
		}
		return Result{Fired: true, DNF: one(mkCube(u, literal.NonEmpty(newSet, neg, ann)))}

	case term.RelConverse:
		inner := u.RelLeft(r)
		var newSet term.SetID
		if isImage {
			newSet = u.Domain(e, inner)
		} else {
			newSet = u.Image(e, inner)
		}
		return Result{Fired: true, DNF: one(mkCube(u, literal.NonEmpty(newSet, neg, ann)))}

	case term.RelEmpty:
		if !neg {
			return Result{Fired: true, DNF: one(mkCube(u, literal.Bottom()))}
		}
		return Result{Fired: true, DNF: one(mkCube(u, literal.Top()))}

	case term.RelFull:
		if !neg {
			return Result{Fired: true, DNF: one(mkCube(u, literal.Top()))}
		}
		return Result{}

	case term.RelIdentity:
		return Result{Fired: true, DNF: one(mkCube(u, literal.NonEmpty(e, neg, ann)))}

	case term.RelSetIdentity:
		inner := u.RelSet(r)
		if !neg {
			return Result{Fired: true, DNF: one(mkCube(u,
				literal.NonEmpty(u.SetIntersectionOf(e, inner), false, ann),
				literal.NonEmpty(e, false, ann),
			))}
		}
		return Result{Fired: true, DNF: one(mkCube(u, literal.NonEmpty(u.SetIntersectionOf(e, inner), true, ann))).
			Or(one(mkCube(u, literal.NonEmpty(e, true, ann))))}

	case term.RelTransitiveClosure:
		inner := u.RelLeft(r)
		if !neg {
			once := rebuild(e, inner)
			unrolled := rebuild(once, r)
			return Result{Fired: true, Unrolled: true, DNF: one(mkCube(u, literal.NonEmpty(unrolled, false, ann))).
				Or(one(mkCube(u, literal.NonEmpty(e, false, ann))))}
		}
		once := rebuild(e, inner)
		return Result{Fired: true, DNF: one(mkCube(u,
			literal.NonEmpty(rebuild(once, r), true, ann),
			literal.NonEmpty(e, true, ann),
		))}

	case term.RelCartesianProduct:
		// No rule handles a cartesian product: the literal is reported as
		// not fired and no diagnostic is raised, here or in the caller.
		return Result{}

	default:
		return Result{}
	}
}
