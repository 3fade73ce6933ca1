// Package satbudget defines the saturation annotation payload used to
// bound the saturation rewrite rules of spec.md 4.4: a remaining-budget pair
// (id, base) attached to negated literals and their sub-terms.
package satbudget

// Budget counts the remaining saturation steps available to a negated
// literal's sub-term: ID for id-saturation, Base for base-relation/base-set
// saturation.
type Budget struct {
	ID   int
	Base int
}

// Meet is the annotation meet used by annotation.Table: the componentwise
// maximum of remaining budgets, per spec.md 3.2 ("meet is the componentwise
// maximum of remaining budgets; 'none' is the top").
func (b Budget) Meet(o Budget) Budget {
	return Budget{ID: max(b.ID, o.ID), Base: max(b.Base, o.Base)}
}

// Min returns the pointwise smaller of two budgets, used by
// annotation.Min to bound saturation cost during cache lookups.
func Min(a, b Budget) Budget {
	return Budget{ID: min(a.ID, b.ID), Base: min(a.Base, b.Base)}
}

// Less reports whether a is pointwise no greater than b and strictly less in
// at least one component; used only where a strict order is required.
func Less(a, b Budget) bool {
	return (a.ID <= b.ID && a.Base <= b.Base) && (a.ID < b.ID || a.Base < b.Base)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
