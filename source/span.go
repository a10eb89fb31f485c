package source

import (
	"fmt"
	"strings"
)

type Span struct {
	Path   string   `json:"path"`
	Start  Location `json:"start"`
	End    Location `json:"end"`
	Source string   `json:"source"`
}

// Location is a position in the host file. Lines and columns are 1-based;
// Index is the byte offset into the text that was tokenized.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Index  int `json:"index"`
}

func JoinSpans(left Span, right Span, source string) Span {
	return Span{
		Path:   left.Path,
		Start:  left.Start,
		End:    right.End,
		Source: source[left.Start.Index:max(right.End.Index, left.Start.Index)],
	}
}

// PointSpan returns an empty span located at `location`.
func PointSpan(path string, location Location) Span {
	return Span{
		Path:  path,
		Start: location,
		End:   location,
	}
}

func CompareSpans(left Span, right Span) int {
	if left.Path != right.Path {
		return strings.Compare(left.Path, right.Path)
	}

	if left.Start.Index != right.Start.Index {
		return left.Start.Index - right.Start.Index
	}

	if left.End.Index != right.End.Index {
		return left.End.Index - right.End.Index
	}

	return 0
}

func SpansAreEqual(left Span, right Span) bool {
	return CompareSpans(left, right) == 0
}

func (span Span) IsEmpty() bool {
	return span.Start.Index == span.End.Index
}

func (span Span) String() string {
	if span.Path == "" {
		return fmt.Sprintf("%d:%d", span.Start.Line, span.Start.Column)
	}

	return fmt.Sprintf("%s:%d:%d", span.Path, span.Start.Line, span.Start.Column)
}

func NullSpan() Span {
	return Span{
		Path:   "",
		Start:  NullLocation(),
		End:    NullLocation(),
		Source: "",
	}
}

func NullLocation() Location {
	return Location{
		Line:   1,
		Column: 1,
		Index:  0,
	}
}

// Offset moves a location produced relative to the start of some text so that
// it is relative to `base`, the position of that text in its file. Columns are
// only shifted on the first line.
func (location Location) Offset(base Location) Location {
	if location.Line == 1 {
		location.Column += base.Column - 1
	}

	location.Line += base.Line - 1

	return location
}
