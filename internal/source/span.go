package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range [Start, End) within one file's content.
type Span struct {
	Start int // в байтах включительно
	End   int // в байтах не включительно
}

// SpanOf converts parser offsets into a Span.
func SpanOf(start, end uint32) (Span, error) {
	s, err := safecast.Conv[int](start)
	if err != nil {
		return Span{}, fmt.Errorf("span start overflow: %w", err)
	}
	e, err := safecast.Conv[int](end)
	if err != nil {
		return Span{}, fmt.Errorf("span end overflow: %w", err)
	}
	return Span{Start: s, End: e}, nil
}

// At returns the empty span at off, used for insertions.
func At(off int) Span {
	return Span{Start: off, End: off}
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Text returns the bytes of content covered by s.
func (s Span) Text(content []byte) string {
	if s.Start < 0 || s.End > len(content) || s.Start > s.End {
		return ""
	}
	return string(content[s.Start:s.End])
}
