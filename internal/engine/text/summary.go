package text

import "strings"

// Summary holds aggregated metrics for a span of text: its byte length
// and its line/column extent. This is the dimension type that prefix sums
// over excerpts are computed in.
type Summary struct {
	// Bytes is the UTF-8 byte count of the span.
	Bytes ByteOffset

	// Lines is the line/column extent of the span: Line is the number of
	// newline characters, Column is the byte length of the final line.
	Lines Point
}

// Add combines two summaries (monoid operation). The receiver describes
// the earlier span, other the span immediately following it.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Bytes: s.Bytes + other.Bytes,
		Lines: s.Lines.Add(other.Lines),
	}
}

// IsZero returns true if this is the zero/identity summary.
func (s Summary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates the metrics of a string.
func ComputeSummary(text string) Summary {
	lines := uint32(strings.Count(text, "\n"))
	lastLine := text
	if lines > 0 {
		lastLine = text[strings.LastIndexByte(text, '\n')+1:]
	}
	return Summary{
		Bytes: ByteOffset(len(text)),
		Lines: Point{Line: lines, Column: uint32(len(lastLine))},
	}
}
