package catlang

import (
	"relkat.dev/core/internal/diag"
	"relkat.dev/core/internal/term"
)

// symKind tags what a let-bound identifier resolves to.
type symKind int

const (
	symRelation symKind = iota
	symSet
)

type symbol struct {
	kind symKind
	rel  term.RelID
	set  term.SetID
}

// Goal is one claim to decide: Left <= Right. Axiom declarations desugar to
// a Goal with Kind naming the axiom ("empty" for emptyAxiom, otherwise the
// keyword itself; spec.md 6's rewrite), so callers can report the axiom
// kind rather than the expanded expression.
type Goal struct {
	Pos         diag.Position
	Kind        string // "goal", "empty", "irreflexive", "acyclic"
	Left, Right term.RelID
}

// Program is the result of parsing one proof file or REPL line: every
// goal/axiom declaration, in file order, plus every base relation/set name
// the program mentioned (assume statements have already been applied to
// the parser's Store by the time Parse returns; BaseRelations/BaseSets
// exist so a caller building a counter-example rendering, cmd/relkat, has
// something to label model edges and memberships with without re-walking
// every Goal's term tree).
type Program struct {
	Goals         []Goal
	BaseRelations []term.Name
	BaseSets      []term.Name
}

// parser is a hand-written recursive-descent parser over catlang's token
// stream, modeled on the teacher's cue/parser: one token of lookahead,
// methods named after grammar productions, errors collected via diag.Error
// rather than panicking (a malformed proof file is a fatal, user-reportable
// fault, not a programmer error).
type parser struct {
	u     *term.Universe
	store Assumptions

	sc  *scanner
	tok token
	err *diag.Error

	syms          map[string]symbol
	baseRelations map[term.Name]bool
	baseSets      map[term.Name]bool
}

// Assumptions is the subset of *assume.Store the parser populates when it
// encounters an "assume" statement. Declared locally (as internal/rules
// does for its own Assumptions interface) to avoid a dependency on
// internal/assume from internal/catlang; *assume.Store satisfies it
// structurally.
type Assumptions interface {
	AssumeBaseRelation(name term.Name, bound term.RelID)
	AssumeBaseSet(name term.Name, bound term.SetID)
	AssumeID(bound term.RelID)
}

// Parse reads one complete proof file's worth of declarations from src,
// applying any "assume" statements to store as it goes and returning every
// goal/axiom declaration in file order.
func Parse(u *term.Universe, store Assumptions, file string, src []byte) (*Program, error) {
	p := &parser{
		u:             u,
		store:         store,
		sc:            newScanner(file, src),
		syms:          make(map[string]symbol),
		baseRelations: make(map[term.Name]bool),
		baseSets:      make(map[term.Name]bool),
	}
	p.advance()
	prog := &Program{}
	for p.tok != tokEOF {
		g, ok := p.statement()
		if p.err != nil {
			return nil, p.err
		}
		if ok {
			prog.Goals = append(prog.Goals, g)
		}
	}
	for n := range p.baseRelations {
		prog.BaseRelations = append(prog.BaseRelations, n)
	}
	for n := range p.baseSets {
		prog.BaseSets = append(prog.BaseSets, n)
	}
	return prog, nil
}

// ParseLine reads a single REPL statement (spec.md 6's "single
// whitespace-separated command line" read from stdin), tokenized by the
// caller (cmd/relkat's REPL loop, via github.com/google/shlex) and re-joined with
// spaces before being handed to the same scanner/parser as a one-line file.
func ParseLine(u *term.Universe, store Assumptions, line string) (*Program, error) {
	return Parse(u, store, "<stdin>", []byte(line))
}

func (p *parser) advance() {
	p.tok = p.sc.scan()
}

func (p *parser) expect(t token) diag.Position {
	pos := p.sc.pos()
	if p.tok != t && p.err == nil {
		p.err = diag.Newf(pos, "expected %s, found %s", t, p.tok)
	}
	p.advance()
	return pos
}

func (p *parser) fail(format string, args ...interface{}) {
	if p.err == nil {
		p.err = diag.Newf(p.sc.pos(), format, args...)
	}
}

// statement parses one top-level declaration. ok is false for declarations
// that do not themselves produce a Goal (let bindings, assume statements).
func (p *parser) statement() (Goal, bool) {
	switch p.tok {
	case tokKwLet:
		p.letStmt()
		return Goal{}, false
	case tokKwAssume:
		p.assumeStmt()
		return Goal{}, false
	case tokKwEmptyAxiom:
		pos := p.sc.pos()
		p.advance()
		r := p.relExpr()
		return Goal{Pos: pos, Kind: "empty", Left: r, Right: p.u.EmptyRelation()}, true
	case tokKwIrreflexive:
		pos := p.sc.pos()
		p.advance()
		r := p.relExpr()
		lhs := p.u.RelIntersectionOf(r, p.u.Identity())
		return Goal{Pos: pos, Kind: "irreflexive", Left: lhs, Right: p.u.EmptyRelation()}, true
	case tokKwAcyclic:
		pos := p.sc.pos()
		p.advance()
		r := p.relExpr()
		lhs := p.u.RelIntersectionOf(p.u.Compose(r, p.u.TransitiveClosureOf(r)), p.u.Identity())
		return Goal{Pos: pos, Kind: "acyclic", Left: lhs, Right: p.u.EmptyRelation()}, true
	case tokKwGoal:
		pos := p.sc.pos()
		p.advance()
		l := p.relExpr()
		p.expect(tokLe)
		r := p.relExpr()
		return Goal{Pos: pos, Kind: "goal", Left: l, Right: r}, true
	default:
		p.fail("expected a declaration, found %s", p.tok)
		p.advance()
		return Goal{}, false
	}
}

func (p *parser) letStmt() {
	p.advance() // "let"
	switch p.tok {
	case tokKwRelation:
		p.advance()
		name := p.identLit()
		p.expect(tokEquals)
		r := p.relExpr()
		p.syms[name] = symbol{kind: symRelation, rel: r}
	case tokKwSet:
		p.advance()
		name := p.identLit()
		p.expect(tokEquals)
		s := p.setExpr()
		p.syms[name] = symbol{kind: symSet, set: s}
	default:
		p.fail("expected %s or %s after let, found %s", tokKwRelation, tokKwSet, p.tok)
	}
}

func (p *parser) assumeStmt() {
	p.advance() // "assume"
	switch p.tok {
	case tokKwBase:
		p.advance()
		name := p.identLit()
		p.expect(tokEquals)
		r := p.relExpr()
		interned := p.u.Intern(name)
		p.store.AssumeBaseRelation(interned, r)
		p.baseRelations[interned] = true
	case tokKwBaseSet:
		p.advance()
		name := p.identLit()
		p.expect(tokEquals)
		s := p.setExpr()
		interned := p.u.Intern(name)
		p.store.AssumeBaseSet(interned, s)
		p.baseSets[interned] = true
	case tokKwId:
		p.advance()
		r := p.relExpr()
		p.store.AssumeID(r)
	default:
		p.fail("expected base, baseSet or id after assume, found %s", p.tok)
	}
}

func (p *parser) identLit() string {
	if p.tok != tokIdent {
		p.fail("expected identifier, found %s", p.tok)
		return ""
	}
	lit := p.sc.lit
	p.advance()
	return lit
}

// --- relation expressions ---

func (p *parser) relExpr() term.RelID { return p.relUnion() }

func (p *parser) relUnion() term.RelID {
	l := p.relIntersect()
	for p.tok == tokPipe {
		p.advance()
		l = p.u.RelUnionOf(l, p.relIntersect())
	}
	return l
}

func (p *parser) relIntersect() term.RelID {
	l := p.relComposition()
	for p.tok == tokAmp {
		p.advance()
		l = p.u.RelIntersectionOf(l, p.relComposition())
	}
	return l
}

func (p *parser) relComposition() term.RelID {
	l := p.relPostfix()
	for p.tok == tokSemi {
		p.advance()
		l = p.u.Compose(l, p.relPostfix())
	}
	return l
}

func (p *parser) relPostfix() term.RelID {
	l := p.relPrimary()
	for p.tok == tokStar || p.tok == tokTilde {
		switch p.tok {
		case tokStar:
			l = p.u.TransitiveClosureOf(l)
		case tokTilde:
			l = p.u.Converse(l)
		}
		p.advance()
	}
	return l
}

func (p *parser) relPrimary() term.RelID {
	switch p.tok {
	case tokKwId:
		p.advance()
		return p.u.Identity()
	case tokKwEmptyRel:
		p.advance()
		return p.u.EmptyRelation()
	case tokKwFullRel:
		p.advance()
		return p.u.FullRelation()
	case tokLBrack:
		p.advance()
		s := p.setExpr()
		p.expect(tokRBrack)
		return p.u.SetIdentity(s)
	case tokLParen:
		p.advance()
		r := p.relExpr()
		p.expect(tokRParen)
		return r
	case tokIdent:
		name := p.sc.lit
		p.advance()
		if sym, ok := p.syms[name]; ok {
			if sym.kind != symRelation {
				p.fail("%q is bound to a set, not a relation", name)
				return p.u.EmptyRelation()
			}
			return sym.rel
		}
		p.baseRelations[p.u.Intern(name)] = true
		return p.u.BaseRelation(name)
	default:
		p.fail("expected a relation expression, found %s", p.tok)
		p.advance()
		return p.u.EmptyRelation()
	}
}

// --- set expressions ---

func (p *parser) setExpr() term.SetID { return p.setUnion() }

func (p *parser) setUnion() term.SetID {
	l := p.setIntersect()
	for p.tok == tokPipe {
		p.advance()
		l = p.u.SetUnionOf(l, p.setIntersect())
	}
	return l
}

func (p *parser) setIntersect() term.SetID {
	l := p.setPrimary()
	for p.tok == tokAmp {
		p.advance()
		l = p.u.SetIntersectionOf(l, p.setPrimary())
	}
	return l
}

func (p *parser) setPrimary() term.SetID {
	switch p.tok {
	case tokKwEmptySet:
		p.advance()
		return p.u.EmptySet()
	case tokKwFullSet:
		p.advance()
		return p.u.FullSet()
	case tokNumber:
		ev := term.EventLabel(p.sc.num)
		p.advance()
		p.u.ObserveEvent(ev)
		return p.u.Event(ev)
	case tokKwImage:
		p.advance()
		p.expect(tokLParen)
		s := p.setExpr()
		p.expect(tokComma)
		r := p.relExpr()
		p.expect(tokRParen)
		return p.u.Image(s, r)
	case tokKwDomain:
		p.advance()
		p.expect(tokLParen)
		s := p.setExpr()
		p.expect(tokComma)
		r := p.relExpr()
		p.expect(tokRParen)
		return p.u.Domain(s, r)
	case tokLParen:
		p.advance()
		s := p.setExpr()
		p.expect(tokRParen)
		return s
	case tokIdent:
		name := p.sc.lit
		p.advance()
		if sym, ok := p.syms[name]; ok {
			if sym.kind != symSet {
				p.fail("%q is bound to a relation, not a set", name)
				return p.u.EmptySet()
			}
			return sym.set
		}
		p.baseSets[p.u.Intern(name)] = true
		return p.u.BaseSet(name)
	default:
		p.fail("expected a set expression, found %s", p.tok)
		p.advance()
		return p.u.EmptySet()
	}
}
