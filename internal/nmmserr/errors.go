// Package nmmserr holds the typed error kinds the core API raises,
// grounded on the teacher's per-package error.go convention (one exported
// struct per failure kind, wrapped through github.com/pkg/errors at call
// sites that add context).
package nmmserr

import (
	"fmt"

	"github.com/nmms-lang/nmms/pkg/sentence"
)

// ValidationError reports an invariant violation at the material base
// boundary — a non-atomic sentence where an atom was required, or a
// malformed schema. The base is left unchanged when this is raised.
//
// Sentence is the offending value itself, not just its rendered form, so a
// caller can inspect it programmatically (its Sentence variant, whether it's
// atomic, etc.) instead of re-parsing Reason's prose. It is nil for
// failures that aren't about one specific sentence (e.g. a malformed
// consequence set caught before any one member is singled out).
type ValidationError struct {
	Context  string // which operation raised it, e.g. "add_atom"
	Sentence sentence.Sentence
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Context, e.Reason)
}

// SchemaError reports a malformed schema record, e.g. during JSON load.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %s", e.Reason)
}
