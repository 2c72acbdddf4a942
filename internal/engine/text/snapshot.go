package text

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Snapshot provides a read-only view of a buffer at a specific point in
// time. It is safe for concurrent access and will not change even if the
// buffer it was taken from is edited afterwards.
type Snapshot struct {
	id      uuid.UUID
	content string
}

// NewSnapshot creates a snapshot of the given content with a fresh
// buffer identity.
func NewSnapshot(content string) *Snapshot {
	return &Snapshot{id: uuid.New(), content: content}
}

// ID returns the identity of the buffer this snapshot was taken from.
func (s *Snapshot) ID() uuid.UUID {
	return s.id
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.content
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return ByteOffset(len(s.content))
}

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool {
	return len(s.content) == 0
}

// Slice returns the text in the given byte range, clamped to the
// snapshot bounds.
func (s *Snapshot) Slice(start, end ByteOffset) string {
	start = s.clamp(start)
	end = s.clamp(end)
	if start >= end {
		return ""
	}
	return s.content[start:end]
}

// SummaryForRange computes the text summary of the given byte range,
// clamped to the snapshot bounds.
func (s *Snapshot) SummaryForRange(start, end ByteOffset) Summary {
	return ComputeSummary(s.Slice(start, end))
}

// OffsetToPoint converts a byte offset to line/column.
func (s *Snapshot) OffsetToPoint(offset ByteOffset) Point {
	return ComputeSummary(s.Slice(0, offset)).Lines
}

// PointToOffset converts line/column to a byte offset. Points past the
// end of a line clamp to the line end; points past the last line clamp
// to the snapshot end.
func (s *Snapshot) PointToOffset(point Point) ByteOffset {
	rest := s.content
	var lineStart ByteOffset
	for line := uint32(0); line < point.Line; line++ {
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			return s.Len()
		}
		lineStart += ByteOffset(nl) + 1
		rest = rest[nl+1:]
	}
	lineLen := ByteOffset(len(rest))
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		lineLen = ByteOffset(nl)
	}
	column := ByteOffset(point.Column)
	if column > lineLen {
		column = lineLen
	}
	return lineStart + column
}

// ClipOffset clamps an offset into the valid snapshot range, moving it
// to a rune boundary in the direction of bias if it would otherwise
// split a UTF-8 sequence.
func (s *Snapshot) ClipOffset(offset ByteOffset, bias Bias) ByteOffset {
	offset = s.clamp(offset)
	if offset == s.Len() {
		return offset
	}
	switch bias {
	case BiasLeft:
		for offset > 0 && !utf8.RuneStart(s.content[offset]) {
			offset--
		}
	case BiasRight:
		for offset < s.Len() && !utf8.RuneStart(s.content[offset]) {
			offset++
		}
	}
	return offset
}

func (s *Snapshot) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > s.Len() {
		return s.Len()
	}
	return offset
}
