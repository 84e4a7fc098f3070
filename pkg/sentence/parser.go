package sentence

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/alecthomas/participle"
)

// Mode selects which atomic forms the parser accepts. It is a parameter to
// Parse, never global state, so a single process can freely mix
// propositional and RQ parsing (e.g. a propositional base alongside an RQ
// query, or vice versa during migration).
type Mode int

const (
	// Propositional atoms are bare identifiers only; concept/role/quantifier
	// forms are rejected.
	Propositional Mode = iota
	// RQ atoms must be concept or role assertions; bare identifiers are
	// rejected, as are ALL/SOME quantifiers appearing as leaves of another
	// quantifier (there is no nesting in this grammar to begin with).
	RQ
)

// ParseError reports malformed input at a specific source position, per
// §4.1 of the specification: "On malformed input it fails with
// ParseError(message, position)."
type ParseError struct {
	Message string
	Pos     Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// The concrete syntax tree below mirrors the precedence ladder of the object
// language (weakest to tightest: ->, |, &, unary ~/parens, atoms) using the
// same participle struct-tag idioms as the teacher's package/parser.go:
// self-referential pointer fields for right-associative recursion (Select's
// SubSelect), a "first field then a repeated slice" shape for
// left-associative operators (participle grammars can't be left-recursive),
// and multi-field alternation groups for choices among several shapes
// (Statement's Select/Insert/CreateTable, Select's Many/One).

type cstImpl struct {
	Left  *cstDisj `@@`
	Right *cstImpl `[ "->" @@ ]`
}

type cstDisj struct {
	Left *cstConj   `@@`
	Rest []*cstConj `{ "|" @@ }`
}

type cstConj struct {
	Left *cstUnary   `@@`
	Rest []*cstUnary `{ "&" @@ }`
}

type cstUnary struct {
	Not   *cstUnary `  "~" @@`
	Group *cstImpl  `| "(" @@ ")"`
	Atom  *cstAtom  `| @@`
}

type cstAtom struct {
	Restriction *cstRestriction `  @@`
	Ident       *cstIdentAtom   `| @@`
}

// cstRestriction covers both "ALL R.C(a)" and "SOME R.C(a)"; All/Some mirror
// the teacher's Select.Many/One pair, a boolean captured per alternative
// branch of a keyword choice spanning two struct fields.
type cstRestriction struct {
	All        bool   `( @"ALL"`
	Some       bool   `| @"SOME" )`
	Role       string `@Ident "."`
	Concept    string `@Ident "("`
	Individual string `@Ident ")"`
}

// cstIdentAtom covers a bare identifier and both concept/role assertion
// shapes; Args is nil for a bare identifier.
type cstIdentAtom struct {
	Name string   `@Ident`
	Args *cstArgs `[ @@ ]`
}

// cstArgs is "(" IDENT ["," IDENT] ")", grounded on the teacher's
// Insert.Values field (leading literal, capture, optional continuation,
// trailing literal all sharing one grammar production).
type cstArgs struct {
	First  string `"(" @Ident`
	Second string `[ "," @Ident ] ")"`
}

var grammarParser = participle.MustBuild(&cstImpl{}, sentenceLexer)

// errPosPattern extracts the "line:col:" prefix participle formats its
// errors with. Every input this package ever parses is single-line, so a
// failed extraction still leaves callers with a correct line number.
var errPosPattern = regexp.MustCompile(`^(\d+):(\d+):\s*(.*)$`)

func wrapParseError(err error) *ParseError {
	if m := errPosPattern.FindStringSubmatch(err.Error()); m != nil {
		line, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		return &ParseError{Message: m[3], Pos: Position{Line: line, Col: col}}
	}
	return &ParseError{Message: err.Error(), Pos: Position{Line: 1}}
}

// Parse parses a single sentence in the given mode.
func Parse(input string, mode Mode) (Sentence, error) {
	cst := &cstImpl{}
	if err := grammarParser.ParseString(input, cst); err != nil {
		return nil, wrapParseError(err)
	}
	return buildImpl(cst, mode)
}

// buildImpl ::= disj ('->' disj)*   -- right associative, via cstImpl.Right
func buildImpl(n *cstImpl, mode Mode) (Sentence, error) {
	left, err := buildDisj(n.Left, mode)
	if err != nil {
		return nil, err
	}
	if n.Right == nil {
		return left, nil
	}
	right, err := buildImpl(n.Right, mode)
	if err != nil {
		return nil, err
	}
	return Implies{Left: left, Right: right}, nil
}

// buildDisj ::= conj ('|' conj)*   -- left associative
func buildDisj(n *cstDisj, mode Mode) (Sentence, error) {
	left, err := buildConj(n.Left, mode)
	if err != nil {
		return nil, err
	}
	for _, r := range n.Rest {
		right, err := buildConj(r, mode)
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

// buildConj ::= unary ('&' unary)*   -- left associative
func buildConj(n *cstConj, mode Mode) (Sentence, error) {
	left, err := buildUnary(n.Left, mode)
	if err != nil {
		return nil, err
	}
	for _, r := range n.Rest {
		right, err := buildUnary(r, mode)
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

func buildUnary(n *cstUnary, mode Mode) (Sentence, error) {
	switch {
	case n.Not != nil:
		sub, err := buildUnary(n.Not, mode)
		if err != nil {
			return nil, err
		}
		return Not{Sub: sub}, nil
	case n.Group != nil:
		return buildImpl(n.Group, mode)
	default:
		return buildAtom(n.Atom, mode)
	}
}

func buildAtom(n *cstAtom, mode Mode) (Sentence, error) {
	if r := n.Restriction; r != nil {
		if mode != RQ {
			kw := "ALL"
			if r.Some {
				kw = "SOME"
			}
			return nil, &ParseError{Message: fmt.Sprintf("restricted quantifier '%s' not permitted outside RQ mode", kw)}
		}
		if r.All {
			return AllRestrict{Role: r.Role, Concept: r.Concept, Individual: r.Individual}, nil
		}
		return SomeRestrict{Role: r.Role, Concept: r.Concept, Individual: r.Individual}, nil
	}

	id := n.Ident
	if id.Args == nil {
		if mode == RQ {
			return nil, &ParseError{Message: fmt.Sprintf("bare identifier %q not permitted in RQ mode; use a concept or role assertion", id.Name)}
		}
		return Atom{Name: id.Name}, nil
	}
	if mode != RQ {
		return nil, &ParseError{Message: fmt.Sprintf("concept/role assertion %q(...) not permitted outside RQ mode", id.Name)}
	}
	if id.Args.Second != "" {
		return RoleAtom{Role: id.Name, Subject: id.Args.First, Object: id.Args.Second}, nil
	}
	return ConceptAtom{Concept: id.Name, Individual: id.Args.First}, nil
}
