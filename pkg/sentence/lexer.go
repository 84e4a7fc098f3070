package sentence

import "github.com/alecthomas/participle/lexer"

// sentenceLexer tokenizes NMMS surface syntax, grounded on the teacher's
// sqlLexer (package/parser.go): one regexp.Regexp with named capture groups,
// more specific alternatives ordered before more general ones so Go's
// leftmost-first alternation resolves ambiguity the same way the teacher's
// own "<>|!=|<=|>=|[...]" ordering does for its Operators class.
//
// The Keyword group is word-boundary guarded (unlike the teacher's, which
// relies on its keyword list never sharing a prefix with an identifier) so
// that "ALLOWED" lexes as a single Ident rather than the keyword "ALL"
// followed by "OWED" — RQ has exactly two keywords and no such guarantee.
var sentenceLexer = lexer.Must(lexer.Regexp(
	`(\s+)` +
		`|(?P<Keyword>ALL|SOME)\b` +
		`|(?P<Ident>[A-Za-z_][A-Za-z0-9_]*)` +
		`|(?P<Operators>\|~|->|=>|[~&|.(),])`,
))
