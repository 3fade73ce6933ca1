package term

import (
	"sync"

	"github.com/mpvl/unique"
)

// setNode is one hash-consed Set term. Operand slots are populated exactly
// as op demands (spec.md 4.1): union/intersection use left/right; image and
// domain use left (the set operand) and rel; baseSet uses name; event uses
// label. Unused slots are left zero.
type setNode struct {
	op    SetOp
	left  SetID
	right SetID
	rel   RelID
	name  Name
	label EventLabel
	facts Facts
}

// relNode is one hash-consed Relation term.
type relNode struct {
	op    RelOp
	left  RelID
	right RelID
	set   SetID
	set2  SetID // second Set operand of a cartesianProduct
	name  Name
	facts Facts
}

type setKey struct {
	op    SetOp
	left  SetID
	right SetID
	rel   RelID
	name  Name
	label EventLabel
}

type relKey struct {
	op    RelOp
	left  RelID
	right RelID
	set   SetID
	set2  SetID
	name  Name
}

// Universe is the hash-consing arena for one solver run: it interns base
// names into small ids (mirroring the teacher's runtime.Index string
// table), and interns Set/Relation nodes into append-only arenas indexed by
// operator-specific keys (spec.md 9: "Replace raw pointers with typed ids").
type Universe struct {
	mu sync.Mutex

	nameOf   map[string]Name
	nameStr  []string // nameStr[0] is unused; names start at 1

	sets     []setNode // sets[0] is an invalid sentinel
	setIndex map[setKey]SetID

	rels     []relNode // rels[0] is an invalid sentinel
	relIndex map[relKey]RelID

	nextEvent EventLabel
}

// New creates an empty Universe.
func New() *Universe {
	return &Universe{
		nameOf:   make(map[string]Name),
		nameStr:  []string{""},
		sets:     []setNode{{}},
		setIndex: make(map[setKey]SetID),
		rels:     []relNode{{}},
		relIndex: make(map[relKey]RelID),
	}
}

// Shared is a process-wide Universe, used by assume.Global. cmd/relkat does
// not use it: each session builds its own Universe with New.
var Shared = New()

// Intern returns the interned Name for s, allocating a new one if needed.
func (u *Universe) Intern(s string) Name {
	u.mu.Lock()
	defer u.mu.Unlock()
	if n, ok := u.nameOf[s]; ok {
		return n
	}
	n := Name(len(u.nameStr))
	u.nameOf[s] = n
	u.nameStr = append(u.nameStr, s)
	return n
}

// NameString returns the interned string for n.
func (u *Universe) NameString(n Name) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if int(n) <= 0 || int(n) >= len(u.nameStr) {
		return ""
	}
	return u.nameStr[n]
}

// FreshEvent allocates a strictly-increasing fresh event label. spec.md 4.4
// requires the produced event to be "strictly greater than every active
// event in the cube"; a monotonic per-Universe counter guarantees this
// across the whole run, not just within one cube.
func (u *Universe) FreshEvent() EventLabel {
	u.mu.Lock()
	defer u.mu.Unlock()
	l := u.nextEvent
	u.nextEvent++
	return l
}

// ObserveEvent advances the fresh-event counter so that future fresh events
// stay strictly above any label already in use (e.g. ones read from a proof
// file rather than allocated by FreshEvent).
func (u *Universe) ObserveEvent(label EventLabel) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if label >= u.nextEvent {
		u.nextEvent = label + 1
	}
}

func sortedUniqueEvents(a, b []EventLabel) []EventLabel {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	cp := make(eventSlice, 0, len(a)+len(b))
	cp = append(cp, a...)
	cp = append(cp, b...)
	n := unique.Sort(cp)
	return []EventLabel(cp[:n])
}

type eventSlice []EventLabel

func (s eventSlice) Len() int           { return len(s) }
func (s eventSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s eventSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s eventSlice) Equal(i, j int) bool { return s[i] == s[j] }

func mergeEventBasePairs(a, b []EventBasePair) []EventBasePair {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	seen := make(map[EventBasePair]bool, len(a)+len(b))
	out := make([]EventBasePair, 0, len(a)+len(b))
	for _, p := range a {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range b {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// internSet looks up or inserts a setNode, eagerly computing its Facts on
// first insertion (spec.md 4.1: "on first insertion, the cache for derived
// data is populated eagerly").
func (u *Universe) internSet(n setNode, key setKey) SetID {
	u.mu.Lock()
	defer u.mu.Unlock()
	if id, ok := u.setIndex[key]; ok {
		return id
	}
	id := SetID(len(u.sets))
	u.sets = append(u.sets, n)
	u.setIndex[key] = id
	return id
}

func (u *Universe) internRel(n relNode, key relKey) RelID {
	u.mu.Lock()
	defer u.mu.Unlock()
	if id, ok := u.relIndex[key]; ok {
		return id
	}
	id := RelID(len(u.rels))
	u.rels = append(u.rels, n)
	u.relIndex[key] = id
	return id
}

func (u *Universe) set(id SetID) setNode {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.sets[id]
}

func (u *Universe) rel(id RelID) relNode {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rels[id]
}

// -- Set accessors --

func (u *Universe) SetOp(id SetID) SetOp         { return u.set(id).op }
func (u *Universe) SetLeft(id SetID) SetID       { return u.set(id).left }
func (u *Universe) SetRight(id SetID) SetID      { return u.set(id).right }
func (u *Universe) SetRelation(id SetID) RelID   { return u.set(id).rel }
func (u *Universe) SetName(id SetID) Name        { return u.set(id).name }
func (u *Universe) SetLabel(id SetID) EventLabel { return u.set(id).label }
func (u *Universe) SetFacts(id SetID) Facts      { return u.set(id).facts }

// -- Relation accessors --

func (u *Universe) RelOp(id RelID) RelOp      { return u.rel(id).op }
func (u *Universe) RelLeft(id RelID) RelID    { return u.rel(id).left }
func (u *Universe) RelRight(id RelID) RelID   { return u.rel(id).right }
func (u *Universe) RelSet(id RelID) SetID     { return u.rel(id).set }
func (u *Universe) RelName(id RelID) Name     { return u.rel(id).name }
func (u *Universe) RelFacts(id RelID) Facts   { return u.rel(id).facts }

// -- Set factories --

func (u *Universe) BaseSet(name string) SetID {
	n := u.Intern(name)
	key := setKey{op: SetBase, name: n}
	return u.internSet(setNode{op: SetBase, name: n, facts: Facts{IsNormal: true, HasBaseSet: true}}, key)
}

func (u *Universe) Event(label EventLabel) SetID {
	key := setKey{op: SetEvent, label: label}
	facts := Facts{IsNormal: true, Events: []EventLabel{label}, NormalEvents: []EventLabel{label}}
	return u.internSet(setNode{op: SetEvent, label: label, facts: facts}, key)
}

func (u *Universe) EmptySet() SetID {
	return u.internSet(setNode{op: SetEmpty, facts: Facts{IsNormal: true}}, setKey{op: SetEmpty})
}

func (u *Universe) FullSet() SetID {
	return u.internSet(setNode{op: SetFull, facts: Facts{IsNormal: true, HasFullSet: true}}, setKey{op: SetFull})
}

// isEventOnly reports whether a Set term is a (possibly nested) union of
// pure events, the only shape spec.md 3 allows above events in normal form.
func (u *Universe) isEventOnly(id SetID) bool {
	n := u.set(id)
	switch n.op {
	case SetEvent:
		return true
	case SetUnion:
		return u.isEventOnly(n.left) && u.isEventOnly(n.right)
	default:
		return false
	}
}

func (u *Universe) SetUnionOf(l, r SetID) SetID {
	lf, rf := u.set(l).facts, u.set(r).facts
	key := setKey{op: SetUnion, left: l, right: r}
	facts := Facts{
		IsNormal:       u.isEventOnly(l) && u.isEventOnly(r),
		HasFullSet:     lf.HasFullSet || rf.HasFullSet,
		HasBaseSet:     lf.HasBaseSet || rf.HasBaseSet,
		Events:         sortedUniqueEvents(lf.Events, rf.Events),
		NormalEvents:   sortedUniqueEvents(lf.NormalEvents, rf.NormalEvents),
		EventBasePairs: mergeEventBasePairs(lf.EventBasePairs, rf.EventBasePairs),
	}
	return u.internSet(setNode{op: SetUnion, left: l, right: r, facts: facts}, key)
}

func (u *Universe) SetIntersectionOf(l, r SetID) SetID {
	lf, rf := u.set(l).facts, u.set(r).facts
	key := setKey{op: SetIntersection, left: l, right: r}
	facts := Facts{
		IsNormal:       false,
		HasFullSet:     lf.HasFullSet || rf.HasFullSet,
		HasBaseSet:     lf.HasBaseSet || rf.HasBaseSet,
		Events:         sortedUniqueEvents(lf.Events, rf.Events),
		NormalEvents:   sortedUniqueEvents(lf.NormalEvents, rf.NormalEvents),
		EventBasePairs: mergeEventBasePairs(lf.EventBasePairs, rf.EventBasePairs),
	}
	return u.internSet(setNode{op: SetIntersection, left: l, right: r, facts: facts}, key)
}

// Image constructs set;relation, i.e. e;r with the event (or compound set)
// on the left: the literal's innermost event followed by the relation.
func (u *Universe) Image(set SetID, rel RelID) SetID {
	sf, rf := u.set(set).facts, u.rel(rel).facts
	sop, rop := u.set(set).op, u.rel(rel).op
	key := setKey{op: SetImage, left: set, rel: rel}
	facts := Facts{
		IsNormal:    sop == SetEvent && rop == RelBase,
		HasFullSet:  sf.HasFullSet || rf.HasFullRelation,
		HasBaseSet:  sf.HasBaseSet || rf.HasBaseRelation,
		Events:      sortedUniqueEvents(sf.Events, rf.Events),
	}
	if sop == SetEvent {
		facts.NormalEvents = sf.Events
	} else {
		facts.NormalEvents = sf.NormalEvents
	}
	ebp := mergeEventBasePairs(sf.EventBasePairs, rf.EventBasePairs)
	if sop == SetEvent && rop == RelBase {
		ebp = mergeEventBasePairs(ebp, []EventBasePair{{Event: u.set(set).label, Base: u.rel(rel).name, Side: Image}})
	}
	facts.EventBasePairs = ebp
	return u.internSet(setNode{op: SetImage, left: set, rel: rel, facts: facts}, key)
}

// Domain constructs relation;set, i.e. r;e with the event on the right.
func (u *Universe) Domain(set SetID, rel RelID) SetID {
	sf, rf := u.set(set).facts, u.rel(rel).facts
	sop, rop := u.set(set).op, u.rel(rel).op
	key := setKey{op: SetDomain, left: set, rel: rel}
	facts := Facts{
		IsNormal:   sop == SetEvent && rop == RelBase,
		HasFullSet: sf.HasFullSet || rf.HasFullRelation,
		HasBaseSet: sf.HasBaseSet || rf.HasBaseRelation,
		Events:     sortedUniqueEvents(sf.Events, rf.Events),
	}
	if sop == SetEvent {
		facts.NormalEvents = sf.Events
	} else {
		facts.NormalEvents = sf.NormalEvents
	}
	ebp := mergeEventBasePairs(sf.EventBasePairs, rf.EventBasePairs)
	if sop == SetEvent && rop == RelBase {
		ebp = mergeEventBasePairs(ebp, []EventBasePair{{Event: u.set(set).label, Base: u.rel(rel).name, Side: Domain}})
	}
	facts.EventBasePairs = ebp
	return u.internSet(setNode{op: SetDomain, left: set, rel: rel, facts: facts}, key)
}

// -- Relation factories --

func (u *Universe) BaseRelation(name string) RelID {
	n := u.Intern(name)
	key := relKey{op: RelBase, name: n}
	return u.internRel(relNode{op: RelBase, name: n, facts: Facts{IsNormal: true, HasBaseRelation: true}}, key)
}

func (u *Universe) Identity() RelID {
	return u.internRel(relNode{op: RelIdentity, facts: Facts{IsNormal: true}}, relKey{op: RelIdentity})
}

func (u *Universe) EmptyRelation() RelID {
	return u.internRel(relNode{op: RelEmpty, facts: Facts{IsNormal: true}}, relKey{op: RelEmpty})
}

func (u *Universe) FullRelation() RelID {
	return u.internRel(relNode{op: RelFull, facts: Facts{IsNormal: true, HasFullRelation: true}}, relKey{op: RelFull})
}

func (u *Universe) RelUnionOf(l, r RelID) RelID {
	lf, rf := u.rel(l).facts, u.rel(r).facts
	facts := mergeRelFacts(lf, rf)
	return u.internRel(relNode{op: RelUnion, left: l, right: r, facts: facts}, relKey{op: RelUnion, left: l, right: r})
}

func (u *Universe) RelIntersectionOf(l, r RelID) RelID {
	lf, rf := u.rel(l).facts, u.rel(r).facts
	facts := mergeRelFacts(lf, rf)
	return u.internRel(relNode{op: RelIntersection, left: l, right: r, facts: facts}, relKey{op: RelIntersection, left: l, right: r})
}

func (u *Universe) Compose(l, r RelID) RelID {
	lf, rf := u.rel(l).facts, u.rel(r).facts
	facts := mergeRelFacts(lf, rf)
	return u.internRel(relNode{op: RelComposition, left: l, right: r, facts: facts}, relKey{op: RelComposition, left: l, right: r})
}

func (u *Universe) Converse(x RelID) RelID {
	facts := u.rel(x).facts
	facts.IsNormal = false
	return u.internRel(relNode{op: RelConverse, left: x, facts: facts}, relKey{op: RelConverse, left: x})
}

func (u *Universe) TransitiveClosureOf(x RelID) RelID {
	facts := u.rel(x).facts
	facts.IsNormal = false
	return u.internRel(relNode{op: RelTransitiveClosure, left: x, facts: facts}, relKey{op: RelTransitiveClosure, left: x})
}

func (u *Universe) SetIdentity(s SetID) RelID {
	sf := u.set(s).facts
	facts := Facts{
		HasFullSet:     sf.HasFullSet,
		HasBaseSet:     sf.HasBaseSet,
		Events:         sf.Events,
		EventBasePairs: sf.EventBasePairs,
	}
	return u.internRel(relNode{op: RelSetIdentity, set: s, facts: facts}, relKey{op: RelSetIdentity, set: s})
}

// CartesianProduct is representable (it can be hash-consed and printed), but
// no rewrite rule fires on it and no error is reported for it: a literal
// over a cartesian product is left unreduced.
func (u *Universe) CartesianProduct(l, r SetID) RelID {
	lf, rf := u.set(l).facts, u.set(r).facts
	facts := Facts{
		HasCartesianProduct: true,
		HasFullSet:          lf.HasFullSet || rf.HasFullSet,
		HasBaseSet:          lf.HasBaseSet || rf.HasBaseSet,
		Events:              sortedUniqueEvents(lf.Events, rf.Events),
	}
	key := relKey{op: RelCartesianProduct, set: l, set2: r}
	return u.internRel(relNode{op: RelCartesianProduct, set: l, set2: r, facts: facts}, key)
}

// CartesianLeft and CartesianRight recover the two Set operands of a
// cartesianProduct relation.
func (u *Universe) CartesianLeft(id RelID) SetID  { return u.rel(id).set }
func (u *Universe) CartesianRight(id RelID) SetID { return u.rel(id).set2 }

func mergeRelFacts(lf, rf Facts) Facts {
	return Facts{
		IsNormal:            false,
		HasFullSet:          lf.HasFullSet || rf.HasFullSet,
		HasBaseSet:          lf.HasBaseSet || rf.HasBaseSet,
		HasFullRelation:     lf.HasFullRelation || rf.HasFullRelation,
		HasBaseRelation:     lf.HasBaseRelation || rf.HasBaseRelation,
		HasCartesianProduct: lf.HasCartesianProduct || rf.HasCartesianProduct,
		Events:              sortedUniqueEvents(lf.Events, rf.Events),
		EventBasePairs:      mergeEventBasePairs(lf.EventBasePairs, rf.EventBasePairs),
	}
}
