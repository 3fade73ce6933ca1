package term

import (
	"fmt"
	"strconv"
	"strings"
)

// SetString renders id as a textual expression, used for debugging and for
// the printed-length/lexicographic tie-break in literal ordering (spec.md
// 4.3). It is stable within one run (ids are process-local), not across
// processes (spec.md 9's open question).
func (u *Universe) SetString(id SetID) string {
	n := u.set(id)
	switch n.op {
	case SetBase:
		return u.NameString(n.name)
	case SetEvent:
		return strconv.FormatInt(int64(n.label), 10)
	case SetEmpty:
		return "0"
	case SetFull:
		return "U"
	case SetUnion:
		return fmt.Sprintf("(%s | %s)", u.SetString(n.left), u.SetString(n.right))
	case SetIntersection:
		return fmt.Sprintf("(%s & %s)", u.SetString(n.left), u.SetString(n.right))
	case SetImage:
		return fmt.Sprintf("%s;%s", u.SetString(n.left), u.RelString(n.rel))
	case SetDomain:
		return fmt.Sprintf("%s;%s", u.RelString(n.rel), u.SetString(n.left))
	default:
		return "<invalid-set>"
	}
}

// RelString is the Relation counterpart of SetString.
func (u *Universe) RelString(id RelID) string {
	n := u.rel(id)
	switch n.op {
	case RelBase:
		return u.NameString(n.name)
	case RelIdentity:
		return "id"
	case RelEmpty:
		return "0"
	case RelFull:
		return "U"
	case RelUnion:
		return fmt.Sprintf("(%s | %s)", u.RelString(n.left), u.RelString(n.right))
	case RelIntersection:
		return fmt.Sprintf("(%s & %s)", u.RelString(n.left), u.RelString(n.right))
	case RelComposition:
		return fmt.Sprintf("(%s;%s)", u.RelString(n.left), u.RelString(n.right))
	case RelConverse:
		return fmt.Sprintf("%s^-1", u.RelString(n.left))
	case RelTransitiveClosure:
		return fmt.Sprintf("%s*", u.RelString(n.left))
	case RelSetIdentity:
		return fmt.Sprintf("[%s]", u.SetString(n.set))
	case RelCartesianProduct:
		return fmt.Sprintf("(%s * %s)", u.SetString(n.set), u.SetString(n.set2))
	default:
		return "<invalid-rel>"
	}
}

// Dump renders the whole arena as text.
func (u *Universe) Dump() string {
	var b strings.Builder
	for i := 1; i < len(u.sets); i++ {
		fmt.Fprintf(&b, "s%d = %s\n", i, u.SetString(SetID(i)))
	}
	for i := 1; i < len(u.rels); i++ {
		fmt.Fprintf(&b, "r%d = %s\n", i, u.RelString(RelID(i)))
	}
	return b.String()
}
