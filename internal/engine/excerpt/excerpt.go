package excerpt

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/dshills/multibuf/internal/engine/text"
)

// ID uniquely identifies one excerpt within a composed view. IDs are
// totally ordered and monotonically assigned, so excerpt order in the
// view matches ID order, and an excerpt keeps its ID for its lifetime
// even as excerpts around it come and go.
type ID uint64

const (
	// MinID sorts before every real excerpt ID. It stands for the start
	// of the composed view without naming a live excerpt.
	MinID ID = 0

	// MaxID sorts after every real excerpt ID. It stands for the end of
	// the composed view without naming a live excerpt.
	MaxID ID = math.MaxUint64
)

// idCounter is used to generate unique excerpt IDs.
var idCounter uint64

// NextID generates a new unique excerpt ID.
// This is thread-safe using atomic operations.
func NextID() ID {
	return ID(atomic.AddUint64(&idCounter, 1))
}

// Excerpt is a contiguous, bounded view into one source buffer, exposed
// as one logical unit inside the composed view. It is immutable once
// constructed.
type Excerpt struct {
	id           ID
	buffer       *text.Snapshot
	start        text.ByteOffset
	end          text.ByteOffset
	headerHeight uint32
	summary      text.Summary
}

// New creates an excerpt over buffer content [start, end) with a header
// of headerHeight framing lines. The range is clamped to the buffer.
func New(id ID, buffer *text.Snapshot, start, end text.ByteOffset, headerHeight uint32) *Excerpt {
	start = buffer.ClipOffset(start, text.BiasLeft)
	end = buffer.ClipOffset(end, text.BiasRight)
	if end < start {
		end = start
	}
	e := &Excerpt{
		id:           id,
		buffer:       buffer,
		start:        start,
		end:          end,
		headerHeight: headerHeight,
	}
	e.summary = e.HeaderSummary().Add(buffer.SummaryForRange(start, end))
	return e
}

// ID returns the excerpt's identifier.
func (e *Excerpt) ID() ID {
	return e.id
}

// Buffer returns the snapshot of the excerpt's source buffer.
func (e *Excerpt) Buffer() *text.Snapshot {
	return e.buffer
}

// StartOffset returns the start of the excerpt's range within its
// source buffer.
func (e *Excerpt) StartOffset() text.ByteOffset {
	return e.start
}

// EndOffset returns the end of the excerpt's range within its source
// buffer (exclusive).
func (e *Excerpt) EndOffset() text.ByteOffset {
	return e.end
}

// HeaderHeight returns the number of framing lines the excerpt
// contributes before its buffer content.
func (e *Excerpt) HeaderHeight() uint32 {
	return e.headerHeight
}

// HeaderSummary returns the text summary of the excerpt's header. Each
// header line occupies one newline byte in the composed view.
func (e *Excerpt) HeaderSummary() text.Summary {
	return text.Summary{
		Bytes: text.ByteOffset(e.headerHeight),
		Lines: text.Point{Line: e.headerHeight, Column: 0},
	}
}

// Summary returns the excerpt's total text summary, header included.
func (e *Excerpt) Summary() text.Summary {
	return e.summary
}

// Text returns the excerpt's contribution to the composed view: the
// header rendered as newlines followed by the buffer slice.
func (e *Excerpt) Text() string {
	return strings.Repeat("\n", int(e.headerHeight)) + e.buffer.Slice(e.start, e.end)
}

// String returns a human-readable representation of the excerpt.
func (e *Excerpt) String() string {
	return fmt.Sprintf("excerpt %d [%d:%d) header=%d", e.id, e.start, e.end, e.headerHeight)
}
