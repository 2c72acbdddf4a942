package multibuffer

import (
	"cmp"
	"sort"

	"github.com/dshills/multibuf/internal/engine/excerpt"
	"github.com/dshills/multibuf/internal/engine/text"
)

// AnchorRangeMap associates values with half-open ranges of
// composed-view positions. Storage is two-level: one entry per excerpt
// that has at least one range, each holding a buffer-relative range map
// for that excerpt. Composed-view coordinates are only materialized
// when a query runs, so storing ranges costs nothing as buffers are
// edited.
//
// Entries are sorted by excerpt ID; each excerpt-local map maintains
// its own key order. Entries for excerpts that have since been removed
// from the snapshot are invisible to every query here; pruning them is
// the excerpt-list maintainer's job, not the read path's.
type AnchorRangeMap[T any] struct {
	entries []excerptRanges[T]
}

type excerptRanges[T any] struct {
	excerptID excerpt.ID
	ranges    *text.RangeMap[T]
}

// RangeValue associates a value with a composed-view offset range.
type RangeValue[T any] struct {
	Start text.ByteOffset
	End   text.ByteOffset
	Value T
}

// BuildRangeMap converts composed-view offset ranges into an
// AnchorRangeMap against the snapshot, tagging range starts with
// startBias and ends with endBias. Input ranges must be sorted by start
// offset. Each range is stored in the excerpt containing its start and
// clamped to that excerpt's span; ranges starting at or past the end of
// the view are dropped.
func BuildRangeMap[T any](s *Snapshot, startBias, endBias text.Bias, ranges []RangeValue[T]) *AnchorRangeMap[T] {
	m := &AnchorRangeMap[T]{}
	c := s.excerpts.Cursor()

	var pending []text.RangeEntry[T]
	var pendingID excerpt.ID
	var pendingBuffer *text.Snapshot
	flush := func() {
		if len(pending) > 0 {
			m.entries = append(m.entries, excerptRanges[T]{
				excerptID: pendingID,
				ranges:    text.NewRangeMap(pendingBuffer, pending),
			})
			pending = nil
		}
	}

	for _, r := range ranges {
		c.SeekOffset(r.Start)
		exc := c.Item()
		if exc == nil {
			continue
		}
		afterHeader := c.Start().Bytes + exc.HeaderSummary().Bytes
		start := excerptLocalOffset(exc, afterHeader, r.Start)
		end := excerptLocalOffset(exc, afterHeader, r.End)
		if end < start {
			end = start
		}
		if exc.ID() != pendingID {
			flush()
			pendingID = exc.ID()
			pendingBuffer = exc.Buffer()
		}
		pending = append(pending, text.RangeEntry[T]{
			Range: text.AnchorRange{
				Start: text.Anchor{Offset: start, Bias: startBias},
				End:   text.Anchor{Offset: end, Bias: endBias},
			},
			Value: r.Value,
		})
	}
	flush()
	return m
}

// excerptLocalOffset maps a composed-view offset into the excerpt's
// buffer, clamping to the excerpt's span.
func excerptLocalOffset(exc *excerpt.Excerpt, afterHeader, offset text.ByteOffset) text.ByteOffset {
	local := exc.StartOffset()
	if offset > afterHeader {
		local += offset - afterHeader
	}
	if local > exc.EndOffset() {
		local = exc.EndOffset()
	}
	return local
}

// Len returns the total number of ranges across all excerpts.
func (m *AnchorRangeMap[T]) Len() int {
	n := 0
	for _, entry := range m.entries {
		n += entry.ranges.Len()
	}
	return n
}

// Ranges returns an iterator over every stored range resolved into
// coordinates of type D against the snapshot, in composed-view order.
// Entries for excerpts missing from the snapshot are skipped.
func Ranges[D Dimension[D], T any](m *AnchorRangeMap[T], s *Snapshot) *RangeIterator[D, T] {
	return &RangeIterator[D, T]{
		snapshot: s,
		entries:  m.entries,
	}
}

// IntersectingRanges returns an iterator over the stored ranges that
// intersect the query range, resolved into coordinates of type D. Each
// query endpoint carries its own bias, which decides whether zero-width
// touches count as intersections.
//
// The walk starts at the excerpt containing the query's start and stops
// as soon as an excerpt begins past the query's end, so cost is bounded
// by the excerpts the query actually spans, not the map size. Within
// each excerpt the query is clamped to the excerpt's buffer span: an
// endpoint outside the span snaps to the excerpt boundary with a fixed
// bias (left for the start, right for the end) rather than the caller's
// bias. Boundary-crossing consumers depend on this exact snap; do not
// substitute the caller's bias here.
func IntersectingRanges[D Dimension[D], T any](m *AnchorRangeMap[T], s *Snapshot, query AnchorRange) *RangeIterator[D, T] {
	q := &rangeQuery{
		start:     query.Start.ToOffset(s),
		end:       query.End.ToOffset(s),
		startBias: query.Start.TextAnchor.Bias,
		endBias:   query.End.TextAnchor.Bias,
	}

	// One seek to find the excerpt containing the query start; entries
	// for earlier excerpts cannot intersect because stored ranges never
	// extend past their excerpt.
	entryIdx := len(m.entries)
	c := s.excerpts.Cursor()
	c.SeekOffset(q.start)
	if exc := c.Item(); exc != nil {
		firstID := exc.ID()
		entryIdx = sort.Search(len(m.entries), func(i int) bool {
			return m.entries[i].excerptID >= firstID
		})
	}

	return &RangeIterator[D, T]{
		snapshot: s,
		entries:  m.entries,
		entryIdx: entryIdx,
		query:    q,
	}
}

type rangeQuery struct {
	start     text.ByteOffset
	end       text.ByteOffset
	startBias text.Bias
	endBias   text.Bias
}

// RangeIterator lazily yields (range, value) pairs in composed-view
// order. It is finite and not restartable; obtain a fresh iterator to
// re-walk. Partial consumption is safe.
type RangeIterator[D Dimension[D], T any] struct {
	snapshot *Snapshot
	entries  []excerptRanges[T]
	entryIdx int
	query    *rangeQuery

	// state for the excerpt currently being drained
	exc       *excerpt.Excerpt
	base      D
	all       []text.RangeEntry[T]
	allIdx    int
	intersect *text.IntersectIterator[T]

	current Range[D]
	value   T
}

// Next advances to the next resolved range.
// Returns true if there is one, false if iteration is complete.
func (it *RangeIterator[D, T]) Next() bool {
	for {
		if it.exc != nil {
			if it.query == nil {
				if it.allIdx < len(it.all) {
					it.emit(it.all[it.allIdx])
					it.allIdx++
					return true
				}
			} else if it.intersect.Next() {
				it.emit(it.intersect.Entry())
				return true
			}
			it.exc = nil
		}

		if it.entryIdx >= len(it.entries) {
			return false
		}
		entry := it.entries[it.entryIdx]
		it.entryIdx++

		c := it.snapshot.excerpts.Cursor()
		if !c.Seek(entry.excerptID) {
			// Excerpt was removed; its ranges are invisible, not an error.
			continue
		}
		exc := c.Item()
		composedStart := c.Start().Bytes
		if it.query != nil && composedStart > it.query.end {
			it.entryIdx = len(it.entries)
			return false
		}

		var base D
		it.base = base.AddSummary(c.Start()).AddSummary(exc.HeaderSummary())
		it.exc = exc
		if it.query == nil {
			it.all = entry.ranges.Entries()
			it.allIdx = 0
		} else {
			local := clampQueryToExcerpt(it.query, exc, composedStart)
			it.intersect = entry.ranges.Intersecting(exc.Buffer(), local)
		}
	}
}

// Range returns the current resolved range.
func (it *RangeIterator[D, T]) Range() Range[D] {
	return it.current
}

// Value returns the value associated with the current range.
func (it *RangeIterator[D, T]) Value() T {
	return it.value
}

func (it *RangeIterator[D, T]) emit(entry text.RangeEntry[T]) {
	it.current = resolveLocalRange(it.exc, it.base, entry.Range)
	it.value = entry.Value
}

// resolveLocalRange maps a buffer-relative range into composed-view
// coordinates by adding the excerpt's content-start dimension to both
// endpoints.
func resolveLocalRange[D Dimension[D]](exc *excerpt.Excerpt, base D, r text.AnchorRange) Range[D] {
	buffer := exc.Buffer()
	start := clampOffsetToExcerpt(exc, r.Start.ToOffset(buffer))
	end := clampOffsetToExcerpt(exc, r.End.ToOffset(buffer))
	return Range[D]{
		Start: base.AddSummary(buffer.SummaryForRange(exc.StartOffset(), start)),
		End:   base.AddSummary(buffer.SummaryForRange(exc.StartOffset(), end)),
	}
}

func clampOffsetToExcerpt(exc *excerpt.Excerpt, offset text.ByteOffset) text.ByteOffset {
	if offset < exc.StartOffset() {
		return exc.StartOffset()
	}
	if offset > exc.EndOffset() {
		return exc.EndOffset()
	}
	return offset
}

// clampQueryToExcerpt converts the composed-view query range into a
// buffer-relative anchor range for one excerpt. An endpoint landing
// inside the excerpt's span keeps the caller's bias; an endpoint
// outside it snaps to the boundary with a fixed bias (left at the
// start, right at the end).
func clampQueryToExcerpt(q *rangeQuery, exc *excerpt.Excerpt, composedStart text.ByteOffset) text.AnchorRange {
	afterHeader := composedStart + exc.HeaderSummary().Bytes
	composedEnd := composedStart + exc.Summary().Bytes

	start := text.Anchor{Offset: exc.StartOffset(), Bias: text.BiasLeft}
	if q.start >= afterHeader {
		offset := exc.StartOffset() + (q.start - afterHeader)
		if offset > exc.EndOffset() {
			offset = exc.EndOffset()
		}
		start = text.Anchor{Offset: offset, Bias: q.startBias}
	}

	end := text.Anchor{Offset: exc.EndOffset(), Bias: text.BiasRight}
	if q.end < composedEnd {
		offset := exc.StartOffset()
		if q.end > afterHeader {
			offset += q.end - afterHeader
		}
		end = text.Anchor{Offset: offset, Bias: q.endBias}
	}

	return text.AnchorRange{Start: start, End: end}
}

// MinByKey scans every entry and returns the range whose value has the
// smallest key, resolved into coordinates of type D. Keys carry no
// positional order, so every entry is scanned.
// Entries for missing excerpts are skipped. Ties keep the first entry
// in excerpt order; a later entry only wins with a strictly smaller
// key. Returns false if no entry resolves.
func MinByKey[D Dimension[D], T any, K cmp.Ordered](m *AnchorRangeMap[T], s *Snapshot, key func(T) K) (Range[D], T, bool) {
	return extremumByKey[D](m, s, key,
		func(candidate, best K) bool { return candidate < best },
		text.MinEntryByKey[T, K])
}

// MaxByKey is MinByKey's mirror: the range whose value has the largest
// key, first entry winning ties.
func MaxByKey[D Dimension[D], T any, K cmp.Ordered](m *AnchorRangeMap[T], s *Snapshot, key func(T) K) (Range[D], T, bool) {
	return extremumByKey[D](m, s, key,
		func(candidate, best K) bool { return candidate > best },
		text.MaxEntryByKey[T, K])
}

func extremumByKey[D Dimension[D], T any, K cmp.Ordered](
	m *AnchorRangeMap[T],
	s *Snapshot,
	key func(T) K,
	better func(candidate, best K) bool,
	localBest func(*text.RangeMap[T], func(T) K) (text.RangeEntry[T], bool),
) (Range[D], T, bool) {
	var bestEntry text.RangeEntry[T]
	var bestExc *excerpt.Excerpt
	var bestPrefix text.Summary
	var bestKey K
	found := false

	c := s.excerpts.Cursor()
	for _, entry := range m.entries {
		if !c.Seek(entry.excerptID) {
			continue
		}
		candidate, ok := localBest(entry.ranges, key)
		if !ok {
			continue
		}
		k := key(candidate.Value)
		if !found || better(k, bestKey) {
			bestEntry = candidate
			bestExc = c.Item()
			bestPrefix = c.Start()
			bestKey = k
			found = true
		}
	}

	if !found {
		var zero Range[D]
		var zeroV T
		return zero, zeroV, false
	}
	var base D
	base = base.AddSummary(bestPrefix).AddSummary(bestExc.HeaderSummary())
	return resolveLocalRange(bestExc, base, bestEntry.Range), bestEntry.Value, true
}
