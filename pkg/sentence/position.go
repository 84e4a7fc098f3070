package sentence

import "fmt"

// Position marks a location in source text: line/column for human-readable
// error messages, plus a byte offset for slicing. It mirrors participle's own
// lexer.Position, dropping the Filename field — sentences are always parsed
// from an in-memory string, never a named file.
type Position struct {
	Line   int
	Col    int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, col %d", p.Line, p.Col)
}
