// Package text provides single-buffer primitives for the multibuf engine:
// immutable buffer snapshots, text-dimension summaries, and local anchors.
//
// A Snapshot is a read-only view of one buffer's content at a point in
// time. Snapshots are immutable once constructed and safe for concurrent
// use without synchronization; an edit elsewhere produces a new Snapshot
// rather than mutating an existing one.
//
// An Anchor is a position reference scoped to one buffer. It stores a raw
// byte offset plus a Bias that resolves the ambiguity of an insertion
// landing exactly at the anchor's position: a left-biased anchor stays
// before the inserted text, a right-biased anchor moves after it. Anchors
// are plain values; they are meaningless until resolved against a
// Snapshot, which keeps them cheap to copy and store.
//
// A Summary is the monoid of text dimensions (byte count and line/column
// extent) over a span of text. Summaries combine associatively with Add,
// so prefix sums over concatenated spans can be computed by reduction.
//
// A RangeMap associates values with half-open anchor ranges within one
// buffer. It is the excerpt-local storage behind the engine's composed
// multi-buffer range maps.
package text
