package multibuffer

import "github.com/dshills/multibuf/internal/engine/text"

// Dimension is a coordinate type derivable from text summaries. Offset
// and text.Point both satisfy it, letting one resolution algorithm
// serve every coordinate system without dynamic dispatch. The zero
// value of a Dimension must be the origin of the composed view.
type Dimension[D any] interface {
	// AddSummary advances the coordinate by the extent of a summary.
	AddSummary(s text.Summary) D
}

// Offset is a byte-offset coordinate in the composed view.
type Offset int64

// AddSummary advances the offset by the byte length of a summary.
func (o Offset) AddSummary(s text.Summary) Offset {
	return o + Offset(s.Bytes)
}

// Range is a half-open span [Start, End) in some coordinate system.
type Range[D any] struct {
	Start D
	End   D
}
