package text

import "fmt"

// ByteOffset represents a byte position in a buffer.
// This is the fundamental position type, directly indexing into the text.
type ByteOffset = int64

// Point represents a line and column position.
// Both Line and Column are 0-indexed.
// Column is measured in bytes from the start of the line.
//
// A Point doubles as a line/column extent: the extent of a span of text
// is the number of newlines it contains and the byte length of its final
// line. Extents combine with Add, matching how Summary combines.
type Point struct {
	Line   uint32 // 0-indexed line number
	Column uint32 // 0-indexed column (byte offset within line)
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero point (0:0).
func (p Point) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// Add combines p with a following extent. If other spans no lines, it
// extends p's final line; otherwise the result takes other's column.
func (p Point) Add(other Point) Point {
	if other.Line == 0 {
		return Point{Line: p.Line, Column: p.Column + other.Column}
	}
	return Point{Line: p.Line + other.Line, Column: other.Column}
}

// Sub returns the extent from other to p. Precondition: other <= p.
func (p Point) Sub(other Point) Point {
	if p.Line == other.Line {
		return Point{Line: 0, Column: p.Column - other.Column}
	}
	return Point{Line: p.Line - other.Line, Column: p.Column}
}

// AddSummary advances p by the line/column extent of a summary.
// This makes Point usable as a seek dimension over summaries.
func (p Point) AddSummary(s Summary) Point {
	return p.Add(s.Lines)
}
