package excerpt

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/multibuf/internal/engine/text"
)

// Errors returned by tree construction.
var (
	// ErrUnorderedExcerpts indicates excerpt IDs are not strictly
	// increasing.
	ErrUnorderedExcerpts = errors.New("excerpt ids are not strictly increasing")

	// ErrSentinelID indicates an excerpt uses a reserved sentinel ID.
	ErrSentinelID = errors.New("excerpt uses a reserved sentinel id")
)

// Tree is an immutable ordered sequence of excerpts with precomputed
// prefix summaries. Building a tree is O(n); seeking it is O(log n).
// Trees are safe for concurrent use once constructed.
type Tree struct {
	excerpts []*Excerpt
	// prefix[i] is the combined summary of excerpts[:i];
	// prefix[len(excerpts)] is the summary of the whole view.
	prefix []text.Summary
}

// NewTree builds a tree over the given excerpts. Excerpts must be in
// strictly increasing ID order and must not use the sentinel IDs.
func NewTree(excerpts []*Excerpt) (*Tree, error) {
	prefix := make([]text.Summary, len(excerpts)+1)
	var prev ID
	for i, e := range excerpts {
		if e.ID() == MinID || e.ID() == MaxID {
			return nil, fmt.Errorf("excerpt %d: %w", e.ID(), ErrSentinelID)
		}
		if i > 0 && e.ID() <= prev {
			return nil, fmt.Errorf("excerpt %d after %d: %w", e.ID(), prev, ErrUnorderedExcerpts)
		}
		prev = e.ID()
		prefix[i+1] = prefix[i].Add(e.Summary())
	}
	return &Tree{excerpts: excerpts, prefix: prefix}, nil
}

// Len returns the number of excerpts in the tree.
func (t *Tree) Len() int {
	return len(t.excerpts)
}

// Summary returns the combined summary of the entire composed view.
func (t *Tree) Summary() text.Summary {
	return t.prefix[len(t.excerpts)]
}

// Cursor returns a new cursor positioned before the first excerpt.
func (t *Tree) Cursor() *Cursor {
	return &Cursor{tree: t}
}

// Cursor navigates a tree, maintaining the prefix summary of everything
// before its current excerpt. A cursor is a lightweight view; it does
// not modify the tree and multiple cursors may walk one tree
// concurrently.
type Cursor struct {
	tree  *Tree
	index int
}

// Seek positions the cursor at the excerpt with the given ID, or at the
// first excerpt past it if the ID is absent. Returns true on an exact
// match.
func (c *Cursor) Seek(id ID) bool {
	c.index = sort.Search(len(c.tree.excerpts), func(i int) bool {
		return c.tree.excerpts[i].ID() >= id
	})
	item := c.Item()
	return item != nil && item.ID() == id
}

// SeekOffset positions the cursor at the excerpt containing the given
// composed-view byte offset. An offset on the boundary between two
// excerpts belongs to the later one; an offset at or past the end of
// the view leaves the cursor past the last excerpt.
func (c *Cursor) SeekOffset(offset text.ByteOffset) {
	c.index = sort.Search(len(c.tree.excerpts), func(i int) bool {
		return c.tree.prefix[i+1].Bytes > offset
	})
}

// SeekPoint positions the cursor at the excerpt containing the given
// composed-view point, with boundary handling matching SeekOffset.
func (c *Cursor) SeekPoint(point text.Point) {
	c.index = sort.Search(len(c.tree.excerpts), func(i int) bool {
		return c.tree.prefix[i+1].Lines.After(point)
	})
}

// Item returns the excerpt at the cursor, or nil if the cursor is past
// the end of the tree.
func (c *Cursor) Item() *Excerpt {
	if c.index >= len(c.tree.excerpts) {
		return nil
	}
	return c.tree.excerpts[c.index]
}

// Start returns the combined summary of all excerpts before the cursor.
func (c *Cursor) Start() text.Summary {
	if c.index >= len(c.tree.excerpts) {
		return c.tree.Summary()
	}
	return c.tree.prefix[c.index]
}

// Next advances the cursor to the following excerpt.
func (c *Cursor) Next() {
	if c.index < len(c.tree.excerpts) {
		c.index++
	}
}
