// Package term implements the hash-consed, immutable term universe of
// spec.md 3 and 4.1: Set and Relation node kinds, cached derived facts, and
// the name-interning table used to keep hash-cons keys cheap to compare.
//
// Two structurally equal terms have identical identity by construction: the
// Universe's factory methods intern on (operator, operand ids...) and return
// the existing SetID/RelID if one already exists. Equality of terms is
// therefore equality of these small integer ids, and hashing a term is
// hashing its id.
package term

// EventLabel is an existentially-quantified point, referenced by an integer
// label (spec.md glossary). Labels are allocated in ascending order by
// Universe.FreshEvent and compared numerically.
type EventLabel = int32

// Name is an interned base-relation or base-set name.
type Name int32

// SetID identifies a hash-consed Set term. The zero value is never a valid
// id; ids start at 1.
type SetID uint32

// RelID identifies a hash-consed Relation term. The zero value is never a
// valid id; ids start at 1.
type RelID uint32

// SetOp tags the operator of a Set term.
type SetOp uint8

const (
	SetInvalid SetOp = iota
	SetBase           // baseSet(name)
	SetEvent          // event(label)
	SetEmpty          // emptySet
	SetFull           // fullSet
	SetUnion          // l ∪ r
	SetIntersection   // l ∩ r
	SetImage          // set;relation  (e;r)
	SetDomain         // relation;set  (r;e)
)

func (op SetOp) String() string {
	switch op {
	case SetBase:
		return "baseSet"
	case SetEvent:
		return "event"
	case SetEmpty:
		return "emptySet"
	case SetFull:
		return "fullSet"
	case SetUnion:
		return "union"
	case SetIntersection:
		return "intersection"
	case SetImage:
		return "image"
	case SetDomain:
		return "domain"
	default:
		return "invalidSetOp"
	}
}

// RelOp tags the operator of a Relation term.
type RelOp uint8

const (
	RelInvalid RelOp = iota
	RelBase               // baseRelation(name)
	RelIdentity           // id
	RelEmpty              // empty
	RelFull               // full
	RelUnion              // l ∪ r
	RelIntersection       // l ∩ r
	RelComposition        // l;r
	RelConverse           // x⁻¹
	RelTransitiveClosure  // x*
	RelSetIdentity        // [S]
	RelCartesianProduct   // rejected at rule-application time
)

func (op RelOp) String() string {
	switch op {
	case RelBase:
		return "baseRelation"
	case RelIdentity:
		return "id"
	case RelEmpty:
		return "empty"
	case RelFull:
		return "full"
	case RelUnion:
		return "union"
	case RelIntersection:
		return "intersection"
	case RelComposition:
		return "composition"
	case RelConverse:
		return "converse"
	case RelTransitiveClosure:
		return "transitiveClosure"
	case RelSetIdentity:
		return "setIdentity"
	case RelCartesianProduct:
		return "cartesianProduct"
	default:
		return "invalidRelOp"
	}
}

// Side records which operand of a minimal event/base-relation sub-term is
// the event: Image means "e;b" (event on the left), Domain means "b;e".
type Side uint8

const (
	Image Side = iota
	Domain
)

// EventBasePair is a minimal normal sub-term e.b or b.e, per spec.md 3.
type EventBasePair struct {
	Event EventLabel
	Base  Name
	Side  Side
}

// Facts are the cached, initialization-time derived data spec.md 3 requires
// on every term node: normality, the presence of full/base leaves, and the
// event-related sets used by literal normalization and the rewrite rules.
type Facts struct {
	IsNormal            bool
	HasFullSet          bool
	HasBaseSet          bool
	HasFullRelation     bool
	HasBaseRelation     bool
	HasCartesianProduct bool

	// Events are all event labels appearing anywhere in the term, sorted
	// and duplicate-free.
	Events []EventLabel

	// NormalEvents are the events of the unique event form that root a
	// normal literal (spec.md 3), sorted and duplicate-free.
	NormalEvents []EventLabel

	// EventBasePairs are the minimal normal sub-terms e.b or b.e found
	// anywhere in the term, in first-occurrence order.
	EventBasePairs []EventBasePair
}
