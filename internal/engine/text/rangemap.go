package text

import (
	"cmp"
	"sort"
)

// AnchorRange is a half-open range of anchors within one buffer:
// [Start, End).
type AnchorRange struct {
	Start Anchor
	End   Anchor
}

// RangeEntry associates a value with an anchor range.
type RangeEntry[T any] struct {
	Range AnchorRange
	Value T
}

// RangeMap is an ordered collection of values keyed by anchor ranges
// within one buffer. Entries are kept sorted by resolved start position;
// among entries with equal starts, the wider range sorts first. A
// RangeMap is immutable once built.
type RangeMap[T any] struct {
	entries []RangeEntry[T]
}

// NewRangeMap builds a range map from the given entries, sorting them
// into the map's key order against the snapshot.
func NewRangeMap[T any](s *Snapshot, entries []RangeEntry[T]) *RangeMap[T] {
	sorted := make([]RangeEntry[T], len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		c := sorted[i].Range.Start.Compare(sorted[j].Range.Start, s)
		if c != 0 {
			return c < 0
		}
		// Wider range first on equal starts.
		return sorted[i].Range.End.Compare(sorted[j].Range.End, s) > 0
	})
	return &RangeMap[T]{entries: sorted}
}

// Len returns the number of entries in the map.
func (m *RangeMap[T]) Len() int {
	return len(m.entries)
}

// Entries returns the entries in key order. Callers must not modify the
// returned slice.
func (m *RangeMap[T]) Entries() []RangeEntry[T] {
	return m.entries
}

// Intersecting returns an iterator over the entries whose range
// intersects the query range. Intersection is bias-sensitive: an entry
// touching the query only at a shared offset intersects it when the
// anchor biases place the entry boundary past the query boundary.
func (m *RangeMap[T]) Intersecting(s *Snapshot, query AnchorRange) *IntersectIterator[T] {
	return &IntersectIterator[T]{
		snapshot: s,
		entries:  m.entries,
		query:    query,
	}
}

// IntersectIterator iterates over range-map entries intersecting a query
// range. It is not restartable; obtain a fresh iterator to re-walk.
type IntersectIterator[T any] struct {
	snapshot *Snapshot
	entries  []RangeEntry[T]
	query    AnchorRange
	index    int
	current  RangeEntry[T]
}

// Next advances to the next intersecting entry.
// Returns true if there is one, false if iteration is complete.
func (it *IntersectIterator[T]) Next() bool {
	for it.index < len(it.entries) {
		entry := it.entries[it.index]
		it.index++
		// Entries are sorted by start, so once a start reaches the query
		// end no later entry can intersect.
		if entry.Range.Start.Compare(it.query.End, it.snapshot) >= 0 {
			it.index = len(it.entries)
			return false
		}
		if entry.Range.End.Compare(it.query.Start, it.snapshot) > 0 {
			it.current = entry
			return true
		}
	}
	return false
}

// Entry returns the current entry.
func (it *IntersectIterator[T]) Entry() RangeEntry[T] {
	return it.current
}

// MinEntryByKey returns the entry whose value has the smallest key,
// or false if the map is empty. Ties keep the first entry in key order.
func MinEntryByKey[T any, K cmp.Ordered](m *RangeMap[T], key func(T) K) (RangeEntry[T], bool) {
	var best RangeEntry[T]
	var bestKey K
	found := false
	for _, entry := range m.entries {
		k := key(entry.Value)
		if !found || k < bestKey {
			best = entry
			bestKey = k
			found = true
		}
	}
	return best, found
}

// MaxEntryByKey returns the entry whose value has the largest key,
// or false if the map is empty. Ties keep the first entry in key order.
func MaxEntryByKey[T any, K cmp.Ordered](m *RangeMap[T], key func(T) K) (RangeEntry[T], bool) {
	var best RangeEntry[T]
	var bestKey K
	found := false
	for _, entry := range m.entries {
		k := key(entry.Value)
		if !found || k > bestKey {
			best = entry
			bestKey = k
			found = true
		}
	}
	return best, found
}
