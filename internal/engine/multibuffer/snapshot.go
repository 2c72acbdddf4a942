package multibuffer

import (
	"strings"

	"github.com/dshills/multibuf/internal/engine/excerpt"
	"github.com/dshills/multibuf/internal/engine/text"
)

// Snapshot is an immutable view of the composed multi-buffer at a point
// in time. All anchor and range operations resolve against a snapshot;
// edits and excerpt-list changes elsewhere produce new snapshots rather
// than mutating existing ones, so a snapshot may be read concurrently
// without synchronization.
//
// Callers must pass the same snapshot to every call within one logical
// operation; mixing snapshots taken at different times produces
// positions from different points in time.
type Snapshot struct {
	excerpts *excerpt.Tree
}

// NewSnapshot creates a snapshot over the given excerpt tree.
func NewSnapshot(excerpts *excerpt.Tree) *Snapshot {
	return &Snapshot{excerpts: excerpts}
}

// Len returns the total byte length of the composed view, excerpt
// headers included.
func (s *Snapshot) Len() text.ByteOffset {
	return s.excerpts.Summary().Bytes
}

// MaxPoint returns the line/column position of the end of the composed
// view.
func (s *Snapshot) MaxPoint() text.Point {
	return s.excerpts.Summary().Lines
}

// ExcerptCount returns the number of excerpts in the composed view.
func (s *Snapshot) ExcerptCount() int {
	return s.excerpts.Len()
}

// Text materializes the full composed view, with each excerpt's header
// rendered as blank lines.
func (s *Snapshot) Text() string {
	var b strings.Builder
	b.Grow(int(s.Len()))
	for c := s.excerpts.Cursor(); c.Item() != nil; c.Next() {
		b.WriteString(c.Item().Text())
	}
	return b.String()
}

// ClipOffset clamps a composed-view offset to a valid position. Offsets
// inside an excerpt header snap back to the excerpt's start; offsets
// past the end of the view clamp to the view length. Within excerpt
// content the underlying buffer resolves rune boundaries using bias.
func (s *Snapshot) ClipOffset(offset text.ByteOffset, bias text.Bias) text.ByteOffset {
	if offset < 0 {
		return 0
	}
	c := s.excerpts.Cursor()
	c.SeekOffset(offset)
	exc := c.Item()
	if exc == nil {
		return s.Len()
	}
	start := c.Start().Bytes
	afterHeader := start + exc.HeaderSummary().Bytes
	if offset < afterHeader {
		return start
	}
	bufferOffset := exc.Buffer().ClipOffset(exc.StartOffset()+(offset-afterHeader), bias)
	if bufferOffset > exc.EndOffset() {
		bufferOffset = exc.EndOffset()
	}
	if bufferOffset < exc.StartOffset() {
		bufferOffset = exc.StartOffset()
	}
	return afterHeader + (bufferOffset - exc.StartOffset())
}

// ClipPoint clamps a composed-view point to a valid position.
func (s *Snapshot) ClipPoint(point text.Point, bias text.Bias) text.Point {
	return s.OffsetToPoint(s.ClipOffset(s.PointToOffset(point), bias))
}

// OffsetToPoint converts a composed-view byte offset to line/column.
func (s *Snapshot) OffsetToPoint(offset text.ByteOffset) text.Point {
	if offset < 0 {
		return text.Point{}
	}
	c := s.excerpts.Cursor()
	c.SeekOffset(offset)
	exc := c.Item()
	if exc == nil {
		return s.MaxPoint()
	}
	start := c.Start()
	relative := offset - start.Bytes
	header := exc.HeaderSummary().Bytes
	if relative <= header {
		// Each header byte is a newline.
		return start.Lines.Add(text.Point{Line: uint32(relative), Column: 0})
	}
	bufferOffset := exc.StartOffset() + (relative - header)
	if bufferOffset > exc.EndOffset() {
		bufferOffset = exc.EndOffset()
	}
	extent := exc.Buffer().SummaryForRange(exc.StartOffset(), bufferOffset).Lines
	return start.Lines.Add(exc.HeaderSummary().Lines).Add(extent)
}

// PointToOffset converts a composed-view line/column position to a byte
// offset. Points inside an excerpt header snap back to the excerpt's
// start, matching ClipOffset.
func (s *Snapshot) PointToOffset(point text.Point) text.ByteOffset {
	c := s.excerpts.Cursor()
	c.SeekPoint(point)
	exc := c.Item()
	if exc == nil {
		return s.Len()
	}
	start := c.Start()
	afterHeader := start.Lines.Add(exc.HeaderSummary().Lines)
	if point.Before(afterHeader) {
		return start.Bytes
	}
	extent := point.Sub(afterHeader)
	bufferStart := exc.Buffer().OffsetToPoint(exc.StartOffset())
	bufferOffset := exc.Buffer().PointToOffset(bufferStart.Add(extent))
	if bufferOffset > exc.EndOffset() {
		bufferOffset = exc.EndOffset()
	}
	if bufferOffset < exc.StartOffset() {
		bufferOffset = exc.StartOffset()
	}
	return start.Bytes + exc.HeaderSummary().Bytes + (bufferOffset - exc.StartOffset())
}

// AnchorAt returns an anchor tracking the position at the given
// composed-view offset with the given bias. Offsets inside an excerpt
// header anchor to the excerpt's first content position; offsets at or
// past the end of the view return the maximum sentinel.
func (s *Snapshot) AnchorAt(offset text.ByteOffset, bias text.Bias) Anchor {
	offset = s.ClipOffset(offset, bias)
	if offset >= s.Len() {
		return MaxAnchor()
	}
	c := s.excerpts.Cursor()
	c.SeekOffset(offset)
	exc := c.Item()
	if exc == nil {
		return MaxAnchor()
	}
	start := c.Start().Bytes
	afterHeader := start + exc.HeaderSummary().Bytes
	bufferOffset := exc.StartOffset()
	if offset > afterHeader {
		bufferOffset += offset - afterHeader
	}
	return Anchor{
		ExcerptID:  exc.ID(),
		TextAnchor: text.Anchor{Offset: bufferOffset, Bias: bias},
	}
}

// AnchorBefore returns a left-biased anchor at the given offset.
func (s *Snapshot) AnchorBefore(offset text.ByteOffset) Anchor {
	return s.AnchorAt(offset, text.BiasLeft)
}

// AnchorAfter returns a right-biased anchor at the given offset.
func (s *Snapshot) AnchorAfter(offset text.ByteOffset) Anchor {
	return s.AnchorAt(offset, text.BiasRight)
}

// excerptFor returns the excerpt with the given ID, or nil if the
// snapshot no longer contains it.
func (s *Snapshot) excerptFor(id excerpt.ID) *excerpt.Excerpt {
	c := s.excerpts.Cursor()
	if c.Seek(id) {
		return c.Item()
	}
	return nil
}
