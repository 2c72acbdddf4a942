// Package multibuffer provides anchor-based position tracking for a
// composed multi-buffer view: a single logical document assembled from
// excerpts of one or more underlying buffers.
//
// An Anchor pairs an excerpt ID with a buffer-local anchor, giving a
// stable reference to a location in the composed view that survives
// edits to any underlying buffer. Anchors are plain values; every
// operation resolves them against an immutable Snapshot of the excerpt
// tree, so snapshots may be shared across goroutines without
// synchronization and anchors created against an old snapshot simply
// re-resolve against a newer one.
//
// Coordinate translation between byte offsets, line/column points, and
// anchors is O(log n) in the number of excerpts: resolving an anchor
// seeks the excerpt summary tree for its excerpt, then adds the
// intra-excerpt position to the tree's prefix summary. One generic
// algorithm (Summary) serves every coordinate type through the
// Dimension constraint.
//
// AnchorRangeMap associates values with half-open ranges of composed
// positions, storing ranges per excerpt in buffer-relative form and
// materializing composed coordinates only when queried. AnchorRangeSet
// applies the same machinery to bare spans.
//
// # Error handling
//
// Only Anchor.Compare and AnchorRange.Compare return errors: comparing
// two anchors inside an excerpt that no longer exists has no defined
// answer, and an undefined ordering would corrupt sorted consumers.
// Everything else degrades gracefully. Resolution of an anchor whose
// excerpt was removed lands at the nearest surviving position, bias
// changes on such an anchor return it unchanged, and range queries skip
// entries for removed excerpts. These paths run on every render pass
// and must never fail for a transiently stale anchor.
package multibuffer
