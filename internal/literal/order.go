package literal

import (
	"fmt"

	"relkat.dev/core/internal/term"
)

// kindOrder fixes a deterministic ordering across kinds, used only as a
// tie-breaker once the positive/negative split has been applied.
func kindOrder(k Kind) int {
	switch k {
	case KindConstant:
		return 0
	case KindEquality:
		return 1
	case KindSet:
		return 2
	case KindEdge:
		return 3
	case KindNonEmptiness:
		return 4
	default:
		return 5
	}
}

// key renders the printed form Compare orders on: the negation flag, then
// the kind tag, then a printed representation of the literal's payload.
// Grounded on the
// underlying Universe so that base-relation/base-set names and event
// labels compare by their textual form rather than by hash-cons id, which
// is only stable within one run.
func (l Literal) key(u *term.Universe) string {
	neg := 0
	if l.neg {
		neg = 1
	}
	var payload string
	switch l.kind {
	case KindEdge:
		payload = fmt.Sprintf("%d,%d,%s", l.e1, l.e2, u.NameString(l.base))
	case KindSet:
		payload = fmt.Sprintf("%d,%s", l.e1, u.NameString(l.base))
	case KindEquality:
		payload = fmt.Sprintf("%d,%d", l.e1, l.e2)
	case KindNonEmptiness:
		payload = u.SetString(l.as.Set)
	case KindConstant:
		payload = fmt.Sprintf("%v", l.top)
	}
	return fmt.Sprintf("%d|%d|%s", neg, kindOrder(l.kind), payload)
}

// Compare implements spec.md 4.3's <=> total order over literals: positive
// literals before negated ones, then shorter printed form first, then
// lexicographic, with the kind tag folded in ahead of the textual payload
// so that equal-length literals of different shapes never alias.
func Compare(u *term.Universe, a, b Literal) int {
	if a.neg != b.neg {
		if !a.neg {
			return -1
		}
		return 1
	}
	ka, kb := a.key(u), b.key(u)
	if len(ka) != len(kb) {
		if len(ka) < len(kb) {
			return -1
		}
		return 1
	}
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	default:
		return 0
	}
}

// Less is a convenience wrapper around Compare for use with sort.Slice.
func Less(u *term.Universe, a, b Literal) bool {
	return Compare(u, a, b) < 0
}
