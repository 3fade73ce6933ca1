package catlang

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/rogpeppe/go-internal/txtar"

	"relkat.dev/core/internal/assume"
	"relkat.dev/core/internal/term"
)

// want is golden_test.go's expectation format for one testdata/*.txtar
// fixture's "want.txt" file: "key=comma,separated,values" lines, parsed
// loosely since the fixture set is small and hand-written.
type want struct {
	goals         int
	baseRelations []string
	baseSets      []string
}

func parseWant(t *testing.T, data []byte) want {
	t.Helper()
	var w want
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			t.Fatalf("malformed want line %q", line)
		}
		switch k {
		case "goals":
			n := 0
			for _, r := range v {
				if r < '0' || r > '9' {
					t.Fatalf("bad goals count %q", v)
				}
				n = n*10 + int(r-'0')
			}
			w.goals = n
		case "baseRelations":
			w.baseRelations = strings.Split(v, ",")
		case "baseSets":
			w.baseSets = strings.Split(v, ",")
		default:
			t.Fatalf("unknown want key %q", k)
		}
	}
	return w
}

// TestGoldenProofFiles runs every internal/catlang/testdata/*.txtar fixture
// (in the teacher's own txtar-golden-fixture style, package
// github.com/rogpeppe/go-internal/txtar) through Parse and checks the goal
// count and the auto-registered base relation/set names against the
// fixture's "want.txt" file.
func TestGoldenProofFiles(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.txtar")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(len(paths) > 0))

	for _, p := range paths {
		p := p
		t.Run(filepath.Base(p), func(t *testing.T) {
			data, err := os.ReadFile(p)
			qt.Assert(t, qt.IsNil(err))
			ar := txtar.Parse(data)

			var input, wantFile []byte
			for _, f := range ar.Files {
				switch f.Name {
				case "input.cat":
					input = f.Data
				case "want.txt":
					wantFile = f.Data
				}
			}
			qt.Assert(t, qt.IsTrue(input != nil))
			qt.Assert(t, qt.IsTrue(wantFile != nil))
			w := parseWant(t, wantFile)

			u := term.New()
			store := assume.New(u)
			prog, err := Parse(u, store, p, input)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.HasLen(prog.Goals, w.goals))

			qt.Assert(t, qt.IsTrue(sameNameSet(u, prog.BaseRelations, w.baseRelations)))
			qt.Assert(t, qt.IsTrue(sameNameSet(u, prog.BaseSets, w.baseSets)))
		})
	}
}

// sameNameSet reports whether got (interned Names) and want (raw strings)
// describe the same set, ignoring order.
func sameNameSet(u *term.Universe, got []term.Name, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[string]bool, len(got))
	for _, n := range got {
		seen[u.NameString(n)] = true
	}
	for _, w := range want {
		if !seen[w] {
			return false
		}
	}
	return true
}
