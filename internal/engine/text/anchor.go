package text

import (
	"fmt"
	"math"
)

// Bias determines which side of an exact-offset insertion an anchor
// moves to when new text is inserted at the anchor's position.
type Bias uint8

const (
	// BiasLeft keeps the anchor before text inserted at its position.
	BiasLeft Bias = iota

	// BiasRight moves the anchor after text inserted at its position.
	BiasRight
)

// String returns a human-readable representation of the bias.
func (b Bias) String() string {
	if b == BiasLeft {
		return "left"
	}
	return "right"
}

// Anchor is a position reference scoped to one buffer. It is a plain
// value with no reference to buffer data; resolving it requires a
// Snapshot. Resolution is idempotent for a fixed snapshot.
type Anchor struct {
	Offset ByteOffset
	Bias   Bias
}

// AnchorMin returns the anchor that resolves before all buffer content.
func AnchorMin() Anchor {
	return Anchor{Offset: 0, Bias: BiasLeft}
}

// AnchorMax returns the anchor that resolves after all buffer content.
func AnchorMax() Anchor {
	return Anchor{Offset: math.MaxInt64, Bias: BiasRight}
}

// ToOffset resolves the anchor to a byte offset in the snapshot.
func (a Anchor) ToOffset(s *Snapshot) ByteOffset {
	return s.ClipOffset(a.Offset, a.Bias)
}

// ToPoint resolves the anchor to a line/column position in the snapshot.
func (a Anchor) ToPoint(s *Snapshot) Point {
	return s.OffsetToPoint(a.ToOffset(s))
}

// Summary resolves the anchor to the text summary of everything that
// precedes it in the snapshot.
func (a Anchor) Summary(s *Snapshot) Summary {
	return s.SummaryForRange(0, a.ToOffset(s))
}

// WithBias returns an anchor at the same resolved position carrying the
// requested bias. If the anchor already has that bias it is returned
// unchanged.
func (a Anchor) WithBias(bias Bias, s *Snapshot) Anchor {
	if a.Bias == bias {
		return a
	}
	return Anchor{Offset: a.ToOffset(s), Bias: bias}
}

// Compare orders two anchors by their resolved position in the snapshot.
// Anchors at the same offset are ordered by bias: left before right.
func (a Anchor) Compare(other Anchor, s *Snapshot) int {
	ao := a.ToOffset(s)
	bo := other.ToOffset(s)
	if ao < bo {
		return -1
	}
	if ao > bo {
		return 1
	}
	if a.Bias == other.Bias {
		return 0
	}
	if a.Bias == BiasLeft {
		return -1
	}
	return 1
}

// String returns a human-readable representation of the anchor.
func (a Anchor) String() string {
	return fmt.Sprintf("%d/%s", a.Offset, a.Bias)
}
