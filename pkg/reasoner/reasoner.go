// Package reasoner implements root-first, depth-limited backward proof
// search for the NMMS sequent calculus (§4.3 of the specification), with the
// four restricted-quantifier rules (§4.4.3) folded into the same dispatch
// since sentence.Sentence already unifies propositional and RQ variants.
//
// The search style is grounded in the teacher's parserlib.ParserState
// (package/parserlib/parser.go): a single recursive `runRule`-style dispatch
// switching on the concrete node type, threading a small piece of mutable
// state (here, the proof trace and memo cache) through the recursion instead
// of building a return-value tree.
package reasoner

import (
	"fmt"

	"github.com/nmms-lang/nmms/pkg/sentence"
)

// DefaultMaxDepth is the default recursion depth limit (§4.3.1).
const DefaultMaxDepth = 25

// Base is the axiom oracle a Reasoner consults at every leaf. base.MaterialBase
// implements it; tests may supply a stub.
type Base interface {
	IsAxiom(gamma, delta sentence.Set) bool
}

// cacheState is the three-valued memoization tag from the design notes
// (§9): a dedicated enum rather than overloading a bool with a sentinel.
type cacheState int

const (
	pending cacheState = iota
	provable
	refutable
)

// ProofResult is the immutable outcome of one derives call (§3).
type ProofResult struct {
	Derivable    bool
	Trace        []string
	DepthReached int
	CacheHits    int
}

// Reasoner performs proof search against a Base. A Reasoner may be reused
// across many derives calls (the base itself is treated as unchanging), but
// each call gets its own memoization table — per §5, "the memoization cache
// is created per derives call and owned exclusively by that call".
type Reasoner struct {
	base     Base
	maxDepth int

	// blockingEnabled toggles [R∃R.C]'s concept-label subset blocking
	// (OQ-2). Configurable per §OQ-2's instruction to make it optional.
	blockingEnabled bool
	onBlockWarning  func(fresh, individual string)
	onTrace         func(line string)

	trace        []string
	cache        map[string]cacheState
	depthReached int
	cacheHits    int
	blockWarned  bool
}

// Option configures a Reasoner at construction time.
type Option func(*Reasoner)

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(r *Reasoner) { r.maxDepth = n }
}

// WithBlocking toggles [R∃R.C] concept-label subset blocking (default: on,
// matching the reference implementation's experimental behaviour, OQ-2).
func WithBlocking(enabled bool) Option {
	return func(r *Reasoner) { r.blockingEnabled = enabled }
}

// WithTraceListener registers a callback invoked synchronously with every
// trace line as it's produced, in prefix order — a transport (§11) can
// forward each line to a remote client as the search proceeds rather than
// waiting for the whole ProofResult.
func WithTraceListener(fn func(line string)) Option {
	return func(r *Reasoner) { r.onTrace = fn }
}

// WithBlockWarning registers a callback fired the first time a run attempts
// a fresh [R∃R.C] witness (i.e. the canonical name is free and blocking did
// not stop it), once per Derives call, mirroring the reference
// implementation's one-time warnings.Warn (OQ-2). fn receives the fresh
// witness name and the individual a of SOME R.C(a). Callers that don't care
// may omit this option.
func WithBlockWarning(fn func(fresh, individual string)) Option {
	return func(r *Reasoner) { r.onBlockWarning = fn }
}

// New builds a Reasoner over base.
func New(base Base, opts ...Option) *Reasoner {
	r := &Reasoner{
		base:            base,
		maxDepth:        DefaultMaxDepth,
		blockingEnabled: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Derives attempts to prove antecedent => consequent, returning a full
// ProofResult (§4.3.1).
func (r *Reasoner) Derives(antecedent, consequent sentence.Set) ProofResult {
	r.trace = nil
	r.cache = make(map[string]cacheState)
	r.depthReached = 0
	r.cacheHits = 0
	r.blockWarned = false

	derivable := r.prove(antecedent, consequent, 0)

	return ProofResult{
		Derivable:    derivable,
		Trace:        append([]string(nil), r.trace...),
		DepthReached: r.depthReached,
		CacheHits:    r.cacheHits,
	}
}

// Query is a thin alias for Derives returning only the Derivable field
// (§4.3.1).
func (r *Reasoner) Query(antecedent, consequent sentence.Set) bool {
	return r.Derives(antecedent, consequent).Derivable
}

func sequentKey(gamma, delta sentence.Set) string {
	return gamma.Key() + "\x00" + delta.Key()
}

func indentFor(depth int) string {
	out := make([]byte, depth*2)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

func (r *Reasoner) emit(depth int, format string, args ...interface{}) {
	line := indentFor(depth) + fmt.Sprintf(format, args...)
	r.trace = append(r.trace, line)
	if r.onTrace != nil {
		r.onTrace(line)
	}
}

// prove is the backward search core described step-by-step in §4.3.2.
func (r *Reasoner) prove(gamma, delta sentence.Set, depth int) bool {
	if depth > r.depthReached {
		r.depthReached = depth
	}

	// 1. Axiom check first.
	if r.base.IsAxiom(gamma, delta) {
		r.emit(depth, "AXIOM: %s => %s", gamma, delta)
		r.cache[sequentKey(gamma, delta)] = provable
		return true
	}

	key := sequentKey(gamma, delta)

	// 2. Memoization.
	if state, ok := r.cache[key]; ok {
		switch state {
		case provable:
			r.cacheHits++
			r.emit(depth, "CACHED: %s => %s", gamma, delta)
			return true
		case refutable:
			r.cacheHits++
			r.emit(depth, "CACHED: %s => %s", gamma, delta)
			return false
		case pending:
			// 3. Cycle detection: an in-progress goal reappearing in its
			// own sub-proof is treated as false for this branch, without
			// counting as a cache hit.
			r.emit(depth, "CYCLE: %s => %s", gamma, delta)
			return false
		}
	}

	// Depth limit: only reached for a non-axiomatic, not-yet-cached goal.
	if depth >= r.maxDepth {
		r.emit(depth, "DEPTH LIMIT")
		r.cache[key] = refutable
		return false
	}

	// 3. Cycle sentinel, set before recursing.
	r.cache[key] = pending

	// 4. Rule selection: complex sentences in Γ, then Δ, sorted ascending.
	result := r.tryLeftRules(gamma, delta, depth) || r.tryRightRules(gamma, delta, depth)

	if result {
		r.cache[key] = provable
	} else {
		// 5. Exhaustion.
		r.cache[key] = refutable
		r.emit(depth, "FAIL: %s => %s", gamma, delta)
	}
	return result
}
