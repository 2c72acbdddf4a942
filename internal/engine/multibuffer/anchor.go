package multibuffer

import (
	"fmt"

	"github.com/dshills/multibuf/internal/engine/excerpt"
	"github.com/dshills/multibuf/internal/engine/text"
)

// Anchor is a stable, edit-resistant reference to a location in the
// composed view: the ID of the excerpt containing the location plus a
// buffer-local anchor within that excerpt's source buffer. Anchors are
// plain values holding no reference to buffer or excerpt data; they are
// resolved on demand against a Snapshot.
type Anchor struct {
	ExcerptID  excerpt.ID
	TextAnchor text.Anchor
}

// MinAnchor returns the sentinel anchor ordered before every location
// in any composed view.
func MinAnchor() Anchor {
	return Anchor{ExcerptID: excerpt.MinID, TextAnchor: text.AnchorMin()}
}

// MaxAnchor returns the sentinel anchor ordered after every location in
// any composed view.
func MaxAnchor() Anchor {
	return Anchor{ExcerptID: excerpt.MaxID, TextAnchor: text.AnchorMax()}
}

// Compare orders two anchors within the snapshot. Anchors in different
// excerpts order by excerpt ID; anchors in the same excerpt order by
// their resolved buffer position, with bias breaking exact-offset ties
// (left before right).
//
// Returns ErrExcerptNotFound if both anchors name the same excerpt and
// that excerpt no longer exists in the snapshot: the ordering of two
// positions inside a removed excerpt is undefined, and guessing would
// silently corrupt sort order downstream.
func (a Anchor) Compare(other Anchor, s *Snapshot) (int, error) {
	if a.ExcerptID < other.ExcerptID {
		return -1, nil
	}
	if a.ExcerptID > other.ExcerptID {
		return 1, nil
	}
	if a.TextAnchor == other.TextAnchor {
		return 0, nil
	}
	exc := s.excerptFor(a.ExcerptID)
	if exc == nil {
		return 0, fmt.Errorf("comparing anchors in excerpt %d: %w", a.ExcerptID, ErrExcerptNotFound)
	}
	return a.TextAnchor.Compare(other.TextAnchor, exc.Buffer()), nil
}

// BiasLeft returns an anchor at the same position that stays before
// text inserted exactly at it. If the anchor is already left-biased, or
// its excerpt is absent from the snapshot, the anchor is returned
// unchanged; bias only matters the next time the anchor resolves, so a
// missing excerpt makes the change moot rather than an error.
func (a Anchor) BiasLeft(s *Snapshot) Anchor {
	return a.withBias(text.BiasLeft, s)
}

// BiasRight returns an anchor at the same position that moves after
// text inserted exactly at it, with the same lenient behavior as
// BiasLeft.
func (a Anchor) BiasRight(s *Snapshot) Anchor {
	return a.withBias(text.BiasRight, s)
}

func (a Anchor) withBias(bias text.Bias, s *Snapshot) Anchor {
	if a.TextAnchor.Bias == bias {
		return a
	}
	exc := s.excerptFor(a.ExcerptID)
	if exc == nil {
		return a
	}
	return Anchor{
		ExcerptID:  a.ExcerptID,
		TextAnchor: a.TextAnchor.WithBias(bias, exc.Buffer()),
	}
}

// Summary resolves an anchor to a coordinate of type D: the prefix
// summary of every excerpt before the anchor's, plus the excerpt's
// header, plus the buffer extent from the excerpt's start to the
// anchor. If the anchor's excerpt is gone, the result is the position
// where that part of the view now is (the prefix at the seek's landing
// point); resolution runs on every render pass and must not fail for a
// stale anchor.
func Summary[D Dimension[D]](s *Snapshot, a Anchor) D {
	var d D
	c := s.excerpts.Cursor()
	if c.Seek(a.ExcerptID) {
		exc := c.Item()
		d = d.AddSummary(c.Start()).AddSummary(exc.HeaderSummary())
		target := a.TextAnchor.ToOffset(exc.Buffer())
		if target > exc.EndOffset() {
			target = exc.EndOffset()
		}
		if target > exc.StartOffset() {
			d = d.AddSummary(exc.Buffer().SummaryForRange(exc.StartOffset(), target))
		}
		return d
	}
	return d.AddSummary(c.Start())
}

// ToOffset resolves the anchor to a composed-view byte offset.
func (a Anchor) ToOffset(s *Snapshot) text.ByteOffset {
	return text.ByteOffset(Summary[Offset](s, a))
}

// ToPoint resolves the anchor to a composed-view line/column position.
func (a Anchor) ToPoint(s *Snapshot) text.Point {
	return Summary[text.Point](s, a)
}

// String returns a human-readable representation of the anchor.
func (a Anchor) String() string {
	return fmt.Sprintf("anchor(%d, %s)", a.ExcerptID, a.TextAnchor)
}
