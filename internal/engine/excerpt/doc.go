// Package excerpt maintains the ordered list of excerpts that a composed
// multi-buffer view is assembled from, together with the aggregate
// summary structure that makes "text before excerpt X" an O(log n)
// query.
//
// An Excerpt is a contiguous view into one source buffer, identified by
// a stable, totally ordered ID, framed by a header of zero or more
// separator lines, and carrying a cached text summary that folds the
// header in. A Tree is an immutable ordered sequence of excerpts with
// precomputed prefix summaries; a Cursor seeks it by excerpt ID or by
// composed-view byte offset. Mutation of the excerpt list happens by
// building a new Tree, never by editing one in place.
package excerpt
