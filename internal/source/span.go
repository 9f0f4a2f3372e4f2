package source

import (
	"fmt"
)

// Span represents a contiguous byte range within a single source file —
// Start inclusive, End exclusive. Spans are produced by the parser (out of
// this module's scope) and flow through unchanged: the checker, unifier,
// and diagnostic renderer only ever read one, never rewrite it in place.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Empty reports whether the span has zero length — the shape an insertion
// point diagnostic (as opposed to a highlighted range) carries.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Len returns the span's length in bytes.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
