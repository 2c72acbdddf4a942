package multibuffer

import (
	"fmt"

	"github.com/dshills/multibuf/internal/engine/text"
)

// AnchorRange is a half-open range of composed-view anchors:
// [Start, End).
type AnchorRange struct {
	Start Anchor
	End   Anchor
}

// Compare orders two anchor ranges: primarily by start, and on equal
// starts by end in reverse, so that among ranges sharing a start the
// widest sorts first. Range-sorted consumers such as overlapping
// highlight resolution depend on the widest-first convention.
//
// Returns ErrExcerptNotFound under the same conditions as
// Anchor.Compare.
func (r AnchorRange) Compare(other AnchorRange, s *Snapshot) (int, error) {
	c, err := r.Start.Compare(other.Start, s)
	if err != nil {
		return 0, fmt.Errorf("comparing range starts: %w", err)
	}
	if c != 0 {
		return c, nil
	}
	c, err = other.End.Compare(r.End, s)
	if err != nil {
		return 0, fmt.Errorf("comparing range ends: %w", err)
	}
	return c, nil
}

// ToOffsetRange resolves both endpoints to composed-view byte offsets
// independently. No validation that Start resolves at or before End is
// performed; callers are responsible for constructing sensible ranges.
func (r AnchorRange) ToOffsetRange(s *Snapshot) Range[text.ByteOffset] {
	return Range[text.ByteOffset]{
		Start: r.Start.ToOffset(s),
		End:   r.End.ToOffset(s),
	}
}

// ToPointRange resolves both endpoints to composed-view points
// independently.
func (r AnchorRange) ToPointRange(s *Snapshot) Range[text.Point] {
	return Range[text.Point]{
		Start: r.Start.ToPoint(s),
		End:   r.End.ToPoint(s),
	}
}
