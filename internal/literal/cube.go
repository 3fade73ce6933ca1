package literal

import (
	"sort"

	"relkat.dev/core/internal/term"
)

// Cube is a conjunction of literals: one node of the DNF a local tableau
// produces from a goal (spec.md 4.2, 4.5). Literals are kept sorted by
// Compare and deduplicated so that two cubes with the same literal set
// compare equal by value.
type Cube struct {
	lits []Literal
}

// NewCube builds a Cube from lits, sorting and deduplicating them and
// collapsing to the single-literal Bottom cube as soon as two literals are
// direct complements of one another (the branch closes).
func NewCube(u *term.Universe, lits []Literal) Cube {
	out := make([]Literal, 0, len(lits))
	for _, l := range lits {
		if l.IsBottom() {
			return Cube{lits: []Literal{Bottom()}}
		}
		if l.IsTop() {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return Less(u, out[i], out[j]) })
	out = dedup(u, out)
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			if out[i].IsComplementOf(u, out[j]) {
				return Cube{lits: []Literal{Bottom()}}
			}
		}
	}
	if len(out) == 0 {
		out = []Literal{Top()}
	}
	return Cube{lits: out}
}

func dedup(u *term.Universe, sorted []Literal) []Literal {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, l := range sorted[1:] {
		if Compare(u, out[len(out)-1], l) != 0 {
			out = append(out, l)
		}
	}
	return out
}

// Literals returns the cube's literals in canonical order.
func (c Cube) Literals() []Literal { return c.lits }

// Len reports the number of literals in c.
func (c Cube) Len() int { return len(c.lits) }

// IsClosed reports whether c is the trivially unsatisfiable Bottom cube.
func (c Cube) IsClosed() bool {
	return len(c.lits) == 1 && c.lits[0].IsBottom()
}

// IsNormal reports whether every literal in c is normal (spec.md 4.3);
// a cube all of whose literals are normal is itself normal and may be
// handed to the regular tableau as a node.
func (c Cube) IsNormal(u *term.Universe) bool {
	for _, l := range c.lits {
		if !l.IsNormal(u) {
			return false
		}
	}
	return true
}

// Merge returns the conjunction of c and other, re-canonicalized.
func (c Cube) Merge(u *term.Universe, other Cube) Cube {
	if c.IsClosed() || other.IsClosed() {
		return Cube{lits: []Literal{Bottom()}}
	}
	merged := make([]Literal, 0, len(c.lits)+len(other.lits))
	merged = append(merged, c.lits...)
	merged = append(merged, other.lits...)
	return NewCube(u, merged)
}

// Substitute rewrites every literal in c via Literal.Substitute.
func (c Cube) Substitute(u *term.Universe, search, replace term.EventLabel) Cube {
	out := make([]Literal, len(c.lits))
	for i, l := range c.lits {
		out[i] = l.Substitute(u, search, replace)
	}
	return NewCube(u, out)
}

// Signature renders c as a string unique to its (already-canonical) literal
// sequence, used as a hash-map key by the regular tableau's node store.
func (c Cube) Signature(u *term.Universe) string {
	var b []byte
	for _, l := range c.lits {
		b = append(b, l.key(u)...)
		b = append(b, ';')
	}
	return string(b)
}

// Equal reports whether c and other contain the same literals; both must
// already be canonical (the result of NewCube).
func (c Cube) Equal(u *term.Universe, other Cube) bool {
	if len(c.lits) != len(other.lits) {
		return false
	}
	for i := range c.lits {
		if Compare(u, c.lits[i], other.lits[i]) != 0 {
			return false
		}
	}
	return true
}

// DNF is a disjunction of cubes: the normal form a local tableau reduces a
// goal to (spec.md 4.2).
type DNF struct {
	Cubes []Cube
}

// Or appends other's cubes to d, dropping closed cubes (since a closed
// disjunct contributes nothing to satisfiability) unless every cube is
// closed, in which case the DNF itself is unsatisfiable and collapses to a
// single Bottom cube.
func (d DNF) Or(other DNF) DNF {
	cubes := make([]Cube, 0, len(d.Cubes)+len(other.Cubes))
	cubes = append(cubes, d.Cubes...)
	cubes = append(cubes, other.Cubes...)
	return normalizeDNF(cubes)
}

func normalizeDNF(cubes []Cube) DNF {
	live := make([]Cube, 0, len(cubes))
	for _, c := range cubes {
		if !c.IsClosed() {
			live = append(live, c)
		}
	}
	if len(live) == 0 {
		return DNF{Cubes: []Cube{{lits: []Literal{Bottom()}}}}
	}
	return DNF{Cubes: live}
}

// And distributes c across every cube of d (conjunction of a DNF with a
// single cube), used when a rule produces a new cube to be conjoined into
// an existing disjunct (spec.md 4.4).
func (d DNF) And(u *term.Universe, c Cube) DNF {
	out := make([]Cube, 0, len(d.Cubes))
	for _, dc := range d.Cubes {
		out = append(out, dc.Merge(u, c))
	}
	return normalizeDNF(out)
}

// IsUnsatisfiable reports whether every cube in d is closed.
func (d DNF) IsUnsatisfiable() bool {
	return len(d.Cubes) == 1 && d.Cubes[0].IsClosed()
}
