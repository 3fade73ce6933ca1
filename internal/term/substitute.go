package term

import "relkat.dev/core/internal/rename"

// SubstituteAllEvents rewrites every occurrence of search to replace,
// equivalent to a RenameSet/RenameRelation with the single-pair renaming
// {search -> replace} (spec.md 4.3's substituteAll).
func (u *Universe) SubstituteAllEvents(id SetID, search, replace EventLabel) SetID {
	return u.RenameSet(id, rename.New([]rename.Pair{{From: search, To: replace}}))
}

// SubstituteAllEventsRel is the Relation counterpart of SubstituteAllEvents.
func (u *Universe) SubstituteAllEventsRel(id RelID, search, replace EventLabel) RelID {
	return u.RenameRelation(id, rename.New([]rename.Pair{{From: search, To: replace}}))
}

// SubstituteNthEvent rewrites only the nth (1-indexed, left-to-right)
// occurrence of search within id, leaving every other occurrence untouched,
// per spec.md 4.3's substitute(set, search, replace, nth).
func (u *Universe) SubstituteNthEvent(id SetID, search, replace EventLabel, nth int) SetID {
	c := &substCounter{search: search, replace: replace, nth: nth}
	return c.set(u, id)
}

// SubstituteNthEventRel is the Relation counterpart of SubstituteNthEvent.
func (u *Universe) SubstituteNthEventRel(id RelID, search, replace EventLabel, nth int) RelID {
	c := &substCounter{search: search, replace: replace, nth: nth}
	return c.rel(u, id)
}

// SubstituteRelation replaces every occurrence of search with replace
// within id's term tree (structural equality by hash-consed ID): the
// relation-for-relation counterpart of SubstituteAllEvents, used by
// package rules' redundancy-elimination pass (spec.md 4.8) to collapse a
// conjunctive context enclosing a base relation back to that base relation.
// ok reports whether any occurrence of search was found.
func (u *Universe) SubstituteRelation(id SetID, search, replace RelID) (out SetID, ok bool) {
	c := &relSubst{search: search, replace: replace}
	return c.set(u, id), c.found
}

// SubstituteRelationRel is the Relation counterpart of SubstituteRelation.
func (u *Universe) SubstituteRelationRel(id RelID, search, replace RelID) (out RelID, ok bool) {
	c := &relSubst{search: search, replace: replace}
	return c.rel(u, id), c.found
}

type relSubst struct {
	search, replace RelID
	found           bool
}

func (c *relSubst) set(u *Universe, id SetID) SetID {
	n := u.set(id)
	switch n.op {
	case SetBase, SetEvent, SetEmpty, SetFull:
		return id
	case SetUnion:
		return u.SetUnionOf(c.set(u, n.left), c.set(u, n.right))
	case SetIntersection:
		return u.SetIntersectionOf(c.set(u, n.left), c.set(u, n.right))
	case SetImage:
		return u.Image(c.set(u, n.left), c.rel(u, n.rel))
	case SetDomain:
		return u.Domain(c.set(u, n.left), c.rel(u, n.rel))
	default:
		return id
	}
}

func (c *relSubst) rel(u *Universe, id RelID) RelID {
	if id == c.search {
		c.found = true
		return c.replace
	}
	n := u.rel(id)
	switch n.op {
	case RelBase, RelIdentity, RelEmpty, RelFull:
		return id
	case RelUnion:
		return u.RelUnionOf(c.rel(u, n.left), c.rel(u, n.right))
	case RelIntersection:
		return u.RelIntersectionOf(c.rel(u, n.left), c.rel(u, n.right))
	case RelComposition:
		return u.Compose(c.rel(u, n.left), c.rel(u, n.right))
	case RelConverse:
		return u.Converse(c.rel(u, n.left))
	case RelTransitiveClosure:
		return u.TransitiveClosureOf(c.rel(u, n.left))
	case RelSetIdentity:
		return u.SetIdentity(c.set(u, n.set))
	case RelCartesianProduct:
		return u.CartesianProduct(c.set(u, n.set), c.set(u, n.set2))
	default:
		return id
	}
}

type substCounter struct {
	search, replace EventLabel
	nth             int
	seen            int
}

func (c *substCounter) set(u *Universe, id SetID) SetID {
	n := u.set(id)
	switch n.op {
	case SetBase, SetEmpty, SetFull:
		return id
	case SetEvent:
		if n.label != c.search {
			return id
		}
		c.seen++
		if c.seen == c.nth {
			return u.Event(c.replace)
		}
		return id
	case SetUnion:
		return u.SetUnionOf(c.set(u, n.left), c.set(u, n.right))
	case SetIntersection:
		return u.SetIntersectionOf(c.set(u, n.left), c.set(u, n.right))
	case SetImage:
		left := c.set(u, n.left)
		rel := c.rel(u, n.rel)
		return u.Image(left, rel)
	case SetDomain:
		left := c.set(u, n.left)
		rel := c.rel(u, n.rel)
		return u.Domain(left, rel)
	default:
		return id
	}
}

func (c *substCounter) rel(u *Universe, id RelID) RelID {
	n := u.rel(id)
	switch n.op {
	case RelBase, RelIdentity, RelEmpty, RelFull:
		return id
	case RelUnion:
		return u.RelUnionOf(c.rel(u, n.left), c.rel(u, n.right))
	case RelIntersection:
		return u.RelIntersectionOf(c.rel(u, n.left), c.rel(u, n.right))
	case RelComposition:
		return u.Compose(c.rel(u, n.left), c.rel(u, n.right))
	case RelConverse:
		return u.Converse(c.rel(u, n.left))
	case RelTransitiveClosure:
		return u.TransitiveClosureOf(c.rel(u, n.left))
	case RelSetIdentity:
		return u.SetIdentity(c.set(u, n.set))
	case RelCartesianProduct:
		return u.CartesianProduct(c.set(u, n.set), c.set(u, n.set2))
	default:
		return id
	}
}
