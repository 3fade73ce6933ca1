// Package rename implements Renaming: a strict partial permutation on event
// labels, represented as a sorted vector of (from, to) pairs with unique
// domain and unique range, per spec.md 3.
package rename

import (
	"sort"

	"github.com/mpvl/unique"
)

// Pair is one (from, to) mapping of a Renaming.
type Pair struct {
	From, To int32
}

// Renaming is a strict partial permutation on event labels: a sorted vector
// of (from, to) pairs, unique in both domain and range.
type Renaming struct {
	pairs []Pair
}

// Empty is the identity-on-nothing renaming.
var Empty = Renaming{}

// byFrom sorts and dedups pairs by From, for use with mpvl/unique.
type byFrom []Pair

func (p byFrom) Len() int           { return len(p) }
func (p byFrom) Less(i, j int) bool { return p[i].From < p[j].From }
func (p byFrom) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p byFrom) Equal(i, j int) bool {
	return p[i].From == p[j].From && p[i].To == p[j].To
}

// New builds a Renaming from an unordered, possibly-redundant list of pairs.
// It panics (a programmer error, not a user-facing one) if the same From
// maps to two different To values, or two distinct From values share a To.
func New(pairs []Pair) Renaming {
	cp := append([]Pair(nil), pairs...)
	n := unique.Sort(byFrom(cp))
	cp = cp[:n]
	seenTo := make(map[int32]bool, len(cp))
	for i := 1; i < len(cp); i++ {
		if cp[i].From == cp[i-1].From {
			panic("rename: conflicting mapping for the same From label")
		}
	}
	for _, p := range cp {
		if seenTo[p.To] {
			panic("rename: conflicting mapping into the same To label")
		}
		seenTo[p.To] = true
	}
	return Renaming{pairs: cp}
}

// int32s is a sortable, dedupable []int32, for use with mpvl/unique.
type int32s []int32

func (s int32s) Len() int           { return len(s) }
func (s int32s) Less(i, j int) bool { return s[i] < s[j] }
func (s int32s) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s int32s) Equal(i, j int) bool { return s[i] == s[j] }

// Minimal packs a list of labels (not necessarily sorted, possibly with
// duplicates) into the renaming that maps them to 0..n-1, in ascending order
// of the original labels.
func Minimal(labels []int32) Renaming {
	cp := append(int32s(nil), labels...)
	n := unique.Sort(cp)
	cp = cp[:n]
	pairs := make([]Pair, len(cp))
	for i, from := range cp {
		pairs[i] = Pair{From: from, To: int32(i)}
	}
	return Renaming{pairs: pairs}
}

// Identity builds the identity renaming over the given set of labels.
func Identity(labels []int32) Renaming {
	pairs := make([]Pair, len(labels))
	for i, l := range labels {
		pairs[i] = Pair{From: l, To: l}
	}
	return New(pairs)
}

// IsEmpty reports whether r has no pairs.
func (r Renaming) IsEmpty() bool { return len(r.pairs) == 0 }

// Len returns the number of pairs.
func (r Renaming) Len() int { return len(r.pairs) }

// Pairs returns the sorted pairs of r. The caller must not modify the result.
func (r Renaming) Pairs() []Pair { return r.pairs }

// Apply looks up the strict image of label under r.
func (r Renaming) Apply(label int32) (int32, bool) {
	i := sort.Search(len(r.pairs), func(i int) bool { return r.pairs[i].From >= label })
	if i < len(r.pairs) && r.pairs[i].From == label {
		return r.pairs[i].To, true
	}
	return 0, false
}

// ApplyTotal applies r, leaving labels outside its domain unchanged. This is
// "rename-by-identity for unknowns", used when building a total compose.
func (r Renaming) ApplyTotal(label int32) int32 {
	if to, ok := r.Apply(label); ok {
		return to
	}
	return label
}

// Domain returns the sorted, distinct From labels of r.
func (r Renaming) Domain() []int32 {
	out := make([]int32, len(r.pairs))
	for i, p := range r.pairs {
		out[i] = p.From
	}
	return out
}

// Range returns the To labels of r, sorted by corresponding From.
func (r Renaming) Range() []int32 {
	out := make([]int32, len(r.pairs))
	for i, p := range r.pairs {
		out[i] = p.To
	}
	return out
}

// Invert swaps From and To in every pair and re-sorts by the new From
// (the old To). Since domain and range are each unique, the result is a
// well-formed Renaming.
func (r Renaming) Invert() Renaming {
	pairs := make([]Pair, len(r.pairs))
	for i, p := range r.pairs {
		pairs[i] = Pair{From: p.To, To: p.From}
	}
	return New(pairs)
}

// ComposeStrict computes the strict composition r;other: a pair (f, t) is
// kept only when other maps r's target to some t. Pairs whose target is
// undefined in other are dropped.
func (r Renaming) ComposeStrict(other Renaming) Renaming {
	var pairs []Pair
	for _, p := range r.pairs {
		if to, ok := other.Apply(p.To); ok {
			pairs = append(pairs, Pair{From: p.From, To: to})
		}
	}
	return New(pairs)
}

// ComposeTotal computes the total composition r;other, treating other as the
// identity outside its domain: every pair of r survives, with its target
// rewritten by other when other defines it.
func (r Renaming) ComposeTotal(other Renaming) Renaming {
	pairs := make([]Pair, len(r.pairs))
	for i, p := range r.pairs {
		pairs[i] = Pair{From: p.From, To: other.ApplyTotal(p.To)}
	}
	return New(pairs)
}

// Equal reports whether r and other contain exactly the same pairs.
func (r Renaming) Equal(other Renaming) bool {
	if len(r.pairs) != len(other.pairs) {
		return false
	}
	for i, p := range r.pairs {
		if other.pairs[i] != p {
			return false
		}
	}
	return true
}
