// Package assume implements the assumption store of spec.md 3 ("Assumption
// store") and 4.9: base-relation and base-set inequalities, and
// identity-bounded relations, that the saturation rules (package rules)
// consult while reducing a negated literal.
package assume

import "relkat.dev/core/internal/term"

// Store holds the three assumption maps. The zero value is not usable;
// construct with New. A Store is process-wide by convention (see Global)
// but every constructor takes an explicit Universe, so a session that
// wants isolated assumptions (tests, a REPL that resets state) can own one.
type Store struct {
	u *term.Universe

	baseRelations map[term.Name]term.RelID
	baseSets      map[term.Name]term.SetID
	idAssumptions []term.RelID

	masterID      term.RelID
	masterIDValid bool
}

// New returns an empty Store bound to u.
func New(u *term.Universe) *Store {
	return &Store{
		u:             u,
		baseRelations: make(map[term.Name]term.RelID),
		baseSets:      make(map[term.Name]term.SetID),
	}
}

// Global is the process-wide default store, bound to term.Shared, used by
// callers that do not need an isolated assumption set (e.g. the cat
// language frontend evaluating one proof file per process).
var Global = New(term.Shared)

// AssumeBaseRelation records R <= b for the base relation named name: the
// saturation rules may substitute b by R in a negated literal.
func (s *Store) AssumeBaseRelation(name term.Name, bound term.RelID) {
	s.baseRelations[name] = bound
}

// AssumeBaseSet records R <= B for the base set named name.
func (s *Store) AssumeBaseSet(name term.Name, bound term.SetID) {
	s.baseSets[name] = bound
}

// AssumeID records that bound is id-bounded (bound <= id): it contributes
// to the master identity relation used by id-saturation.
func (s *Store) AssumeID(bound term.RelID) {
	s.idAssumptions = append(s.idAssumptions, bound)
	s.masterIDValid = false
}

// BaseRelationBound implements rules.Assumptions.
func (s *Store) BaseRelationBound(name term.Name) (term.RelID, bool) {
	r, ok := s.baseRelations[name]
	return r, ok
}

// BaseSetBound implements rules.Assumptions.
func (s *Store) BaseSetBound(name term.Name) (term.SetID, bool) {
	set, ok := s.baseSets[name]
	return set, ok
}

// MasterIdRelation returns the union of every id-bounded relation
// (spec.md 3's masterIdRelation()), built once from idAssumptions and
// cached until a new AssumeID invalidates it. An empty assumption set
// yields the empty relation, which id-saturation never fires against.
func (s *Store) MasterIdRelation() term.RelID {
	if s.masterIDValid {
		return s.masterID
	}
	acc := s.u.EmptyRelation()
	for _, r := range s.idAssumptions {
		acc = s.u.RelUnionOf(acc, r)
	}
	s.masterID = acc
	s.masterIDValid = true
	return acc
}

// IDAssumptions returns the raw id-bounded relation list, used by model
// extraction's fixpoint closure (spec.md 4.7).
func (s *Store) IDAssumptions() []term.RelID {
	return append([]term.RelID(nil), s.idAssumptions...)
}

// BaseAssumptions returns the base-relation assumption map, used by model
// extraction's fixpoint closure.
func (s *Store) BaseAssumptions() map[term.Name]term.RelID {
	return s.baseRelations
}

// BaseSetAssumptions returns the base-set assumption map, used by model
// extraction's fixpoint closure.
func (s *Store) BaseSetAssumptions() map[term.Name]term.SetID {
	return s.baseSets
}
