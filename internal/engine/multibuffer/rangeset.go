package multibuffer

import "github.com/dshills/multibuf/internal/engine/text"

// AnchorRangeSet stores bare spans of composed-view positions, for
// callers that only need "is this span covered" semantics. It is a thin
// wrapper over an AnchorRangeMap with no payload.
type AnchorRangeSet struct {
	ranges *AnchorRangeMap[struct{}]
}

// BuildRangeSet converts composed-view offset ranges into an
// AnchorRangeSet, with the same preconditions as BuildRangeMap.
func BuildRangeSet(s *Snapshot, startBias, endBias text.Bias, ranges []Range[text.ByteOffset]) *AnchorRangeSet {
	values := make([]RangeValue[struct{}], len(ranges))
	for i, r := range ranges {
		values[i] = RangeValue[struct{}]{Start: r.Start, End: r.End}
	}
	return &AnchorRangeSet{ranges: BuildRangeMap(s, startBias, endBias, values)}
}

// Len returns the number of spans in the set.
func (set *AnchorRangeSet) Len() int {
	return set.ranges.Len()
}

// SetRanges returns an iterator over the set's spans resolved into
// coordinates of type D, in composed-view order. Use Range on the
// iterator; there are no values.
func SetRanges[D Dimension[D]](set *AnchorRangeSet, s *Snapshot) *RangeIterator[D, struct{}] {
	return Ranges[D](set.ranges, s)
}
