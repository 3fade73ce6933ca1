package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"relkat.dev/core/internal/catdebug"
	"relkat.dev/core/internal/catlang"
	"relkat.dev/core/internal/diag"
	"relkat.dev/core/internal/dot"
	"relkat.dev/core/internal/regulartableau"
	"relkat.dev/core/internal/session"
)

// errUnprovable marks that every goal parsed cleanly and at least one was
// decided not to hold: already reported to stdout, so Main should exit
// nonzero without printing anything further to stderr.
var errUnprovable = errors.New("one or more goals were not provable")

func runFile(cmd *cobra.Command, path string, saturation int, local bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return diag.Errorf("%v", err)
	}
	s := session.New(saturation)
	prog, err := s.LoadFile(path, src)
	if err != nil {
		return err
	}
	return decideProgram(cmd, s, prog, path, local)
}

// runREPL implements spec.md 6's no-argument mode: a single
// whitespace-separated command line read from standard input, tokenized
// with shlex the way a shell would split it.
func runREPL(cmd *cobra.Command, saturation int) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return diag.Errorf("cannot read command: %v", err)
	}
	fields, err := shlex.Split(line)
	if err != nil {
		return diag.Errorf("cannot tokenize input: %v", err)
	}
	if len(fields) == 0 {
		return nil
	}

	s := session.New(saturation)
	prog, err := s.LoadLine(strings.Join(fields, " "))
	if err != nil {
		return err
	}
	return decideProgram(cmd, s, prog, "<stdin>", false)
}

func decideProgram(cmd *cobra.Command, s *session.Session, prog *catlang.Program, path string, local bool) error {
	allProvable := true
	for _, g := range prog.Goals {
		provable, err := decideAndReport(cmd, s, prog, path, g, local)
		if err != nil {
			return err
		}
		if !provable {
			allProvable = false
		}
	}
	if !allProvable {
		return errUnprovable
	}
	return nil
}

func decideAndReport(cmd *cobra.Command, s *session.Session, prog *catlang.Program, path string, g catlang.Goal, local bool) (bool, error) {
	out := cmd.OutOrStdout()

	if local {
		outcome := s.DecideLocal(g)
		reportOutcome(out, s, g, outcome.Provable)
		if catdebug.Flags.Dot {
			writeDotFile(out, path, "infinite", func(w io.Writer) {
				dot.WriteInfinite(w, s.U, outcome.Local)
			})
		}
		return outcome.Provable, nil
	}

	outcome, err := s.Decide(g)
	if err != nil {
		return false, err
	}
	reportOutcome(out, s, g, outcome.Provable)

	if catdebug.Flags.Dot {
		writeDotFile(out, path, "regular", func(w io.Writer) {
			dot.WriteRegular(w, s.U, outcome.Regular, pathNodes(outcome.Path))
		})
		if !outcome.Provable {
			writeDotFile(out, path, "counterexamplePath", func(w io.Writer) {
				dot.WriteCounterexamplePath(w, s.U, outcome.Path)
			})
			writeDotFile(out, path, "counterexampleModel", func(w io.Writer) {
				dot.WriteCounterexampleModel(w, s.U, outcome.Model, prog.BaseRelations, prog.BaseSets)
			})
		}
	}
	return outcome.Provable, nil
}

func reportOutcome(w io.Writer, s *session.Session, g catlang.Goal, provable bool) {
	verdict := "holds"
	if !provable {
		verdict = "does not hold"
	}
	fmt.Fprintf(w, "%s: %s %s\n", g.Pos, goalLabel(s, g), verdict)
}

func goalLabel(s *session.Session, g catlang.Goal) string {
	if g.Kind != "goal" {
		return g.Kind
	}
	return fmt.Sprintf("%s <= %s", s.U.RelString(g.Left), s.U.RelString(g.Right))
}

func pathNodes(path []regulartableau.PathStep) []*regulartableau.Node {
	out := make([]*regulartableau.Node, len(path))
	for i, step := range path {
		out[i] = step.Node
	}
	return out
}

// writeDotFile writes one of spec.md 6's four Graphviz outputs next to the
// input proof file (path.<suffix>.dot), reporting write failures to out
// rather than aborting the decision that already succeeded.
func writeDotFile(out io.Writer, srcPath, suffix string, write func(w io.Writer)) {
	dir := filepath.Dir(srcPath)
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	name := filepath.Join(dir, fmt.Sprintf("%s.%s.dot", base, suffix))
	f, err := os.Create(name)
	if err != nil {
		fmt.Fprintf(out, "cannot write %s: %v\n", name, err)
		return
	}
	defer f.Close()
	write(f)
}
