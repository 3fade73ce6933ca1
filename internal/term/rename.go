package term

import "relkat.dev/core/internal/rename"

// RenameSet rewrites every event label appearing in id via r (applied
// totally: labels outside r's domain are left unchanged), rebuilding the
// term bottom-up through the Universe so the result is itself
// hash-consed. Base sets and the nullary constants are fixed; unions,
// intersections, image and domain recurse into their operands.
func (u *Universe) RenameSet(id SetID, r rename.Renaming) SetID {
	n := u.set(id)
	switch n.op {
	case SetBase, SetEmpty, SetFull:
		return id
	case SetEvent:
		return u.Event(r.ApplyTotal(n.label))
	case SetUnion:
		return u.SetUnionOf(u.RenameSet(n.left, r), u.RenameSet(n.right, r))
	case SetIntersection:
		return u.SetIntersectionOf(u.RenameSet(n.left, r), u.RenameSet(n.right, r))
	case SetImage:
		return u.Image(u.RenameSet(n.left, r), u.RenameRelation(n.rel, r))
	case SetDomain:
		return u.Domain(u.RenameSet(n.left, r), u.RenameRelation(n.rel, r))
	default:
		return id
	}
}

// RenameRelation is the Relation counterpart of RenameSet. Unary relation
// operators (converse, transitive closure) are shape-preserving: renaming
// recurses into the operand and rebuilds the same operator, per spec.md
// 4.1.
func (u *Universe) RenameRelation(id RelID, r rename.Renaming) RelID {
	n := u.rel(id)
	switch n.op {
	case RelBase, RelIdentity, RelEmpty, RelFull:
		return id
	case RelUnion:
		return u.RelUnionOf(u.RenameRelation(n.left, r), u.RenameRelation(n.right, r))
	case RelIntersection:
		return u.RelIntersectionOf(u.RenameRelation(n.left, r), u.RenameRelation(n.right, r))
	case RelComposition:
		return u.Compose(u.RenameRelation(n.left, r), u.RenameRelation(n.right, r))
	case RelConverse:
		return u.Converse(u.RenameRelation(n.left, r))
	case RelTransitiveClosure:
		return u.TransitiveClosureOf(u.RenameRelation(n.left, r))
	case RelSetIdentity:
		return u.SetIdentity(u.RenameSet(n.set, r))
	case RelCartesianProduct:
		return u.CartesianProduct(u.RenameSet(n.set, r), u.RenameSet(n.set2, r))
	default:
		return id
	}
}
