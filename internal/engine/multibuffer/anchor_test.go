package multibuffer

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/multibuf/internal/engine/excerpt"
	"github.com/dshills/multibuf/internal/engine/text"
)

func buildSnapshot(t *testing.T, excerpts ...*excerpt.Excerpt) *Snapshot {
	t.Helper()
	tree, err := excerpt.NewTree(excerpts)
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}
	return NewSnapshot(tree)
}

// twoExcerptView builds the composed view used across these tests:
// excerpt 1 exposes the first 100 bytes of a ten-line buffer, excerpt 2
// exposes bytes [50,80) of a second buffer behind a one-line header.
func twoExcerptView(t *testing.T) (*Snapshot, *text.Snapshot, *text.Snapshot) {
	t.Helper()
	buf1 := text.NewSnapshot(strings.Repeat("0123456789\n", 10)) // 110 bytes
	buf2 := text.NewSnapshot(strings.Repeat("abcdefghi\n", 10))  // 100 bytes
	snap := buildSnapshot(t,
		excerpt.New(1, buf1, 0, 100, 0),
		excerpt.New(2, buf2, 50, 80, 1),
	)
	return snap, buf1, buf2
}

func TestAnchorEndToEndResolution(t *testing.T) {
	snap, _, _ := twoExcerptView(t)

	inFirst := Anchor{
		ExcerptID:  1,
		TextAnchor: text.Anchor{Offset: 30, Bias: text.BiasLeft},
	}
	if got := inFirst.ToOffset(snap); got != 30 {
		t.Errorf("anchor in first excerpt resolved to %d, want 30", got)
	}

	// Buffer-relative offset 60 is 10 bytes into the second excerpt's
	// range [50,80); composed position is 100 (first excerpt) + 1
	// (header line) + 10.
	inSecond := Anchor{
		ExcerptID:  2,
		TextAnchor: text.Anchor{Offset: 60, Bias: text.BiasLeft},
	}
	if got := inSecond.ToOffset(snap); got != 111 {
		t.Errorf("anchor in second excerpt resolved to %d, want 111", got)
	}

	// The same anchor as a point: excerpt one contributes 100 bytes of
	// ten 10-byte lines (9 newlines within [0,100)), the header adds a
	// line, and offset 60 sits at line 6 column 0 of buffer two, which
	// is one full line past the excerpt start at line 5.
	point := inSecond.ToPoint(snap)
	if point != (text.Point{Line: 11, Column: 0}) {
		t.Errorf("anchor point = %v, want (11:0)", point)
	}
}

func TestAnchorSentinelOrdering(t *testing.T) {
	snap, _, _ := twoExcerptView(t)

	anchors := []Anchor{
		MinAnchor(),
		snap.AnchorBefore(0),
		snap.AnchorAt(57, text.BiasLeft),
		snap.AnchorAfter(131),
		MaxAnchor(),
	}
	for _, a := range anchors {
		if c, err := MinAnchor().Compare(a, snap); err != nil || c > 0 {
			t.Errorf("min anchor compared %d (err %v) against %v", c, err, a)
		}
		if c, err := MaxAnchor().Compare(a, snap); err != nil || c < 0 {
			t.Errorf("max anchor compared %d (err %v) against %v", c, err, a)
		}
	}

	if got := MinAnchor().ToOffset(snap); got != 0 {
		t.Errorf("min anchor offset = %d, want 0", got)
	}
	if got := MaxAnchor().ToOffset(snap); got != snap.Len() {
		t.Errorf("max anchor offset = %d, want %d", got, snap.Len())
	}
}

func TestAnchorCompareSameExcerpt(t *testing.T) {
	snap, _, _ := twoExcerptView(t)

	a := Anchor{ExcerptID: 1, TextAnchor: text.Anchor{Offset: 10, Bias: text.BiasLeft}}
	b := Anchor{ExcerptID: 1, TextAnchor: text.Anchor{Offset: 20, Bias: text.BiasLeft}}

	if c, err := a.Compare(b, snap); err != nil || c != -1 {
		t.Errorf("Compare = %d, %v; want -1", c, err)
	}
	if c, err := b.Compare(a, snap); err != nil || c != 1 {
		t.Errorf("Compare = %d, %v; want 1", c, err)
	}

	// Within one excerpt the local anchors decide: left bias orders
	// before right bias at the same offset.
	left := Anchor{ExcerptID: 1, TextAnchor: text.Anchor{Offset: 10, Bias: text.BiasLeft}}
	right := Anchor{ExcerptID: 1, TextAnchor: text.Anchor{Offset: 10, Bias: text.BiasRight}}
	if c, err := left.Compare(right, snap); err != nil || c != -1 {
		t.Errorf("left vs right bias = %d, %v; want -1", c, err)
	}
}

func TestAnchorCompareAcrossExcerpts(t *testing.T) {
	snap, _, _ := twoExcerptView(t)

	// Excerpt order decides even when the raw buffer offsets reverse.
	a := Anchor{ExcerptID: 1, TextAnchor: text.Anchor{Offset: 99, Bias: text.BiasLeft}}
	b := Anchor{ExcerptID: 2, TextAnchor: text.Anchor{Offset: 50, Bias: text.BiasLeft}}
	if c, err := a.Compare(b, snap); err != nil || c != -1 {
		t.Errorf("Compare across excerpts = %d, %v; want -1", c, err)
	}
}

func TestAnchorCompareMissingExcerpt(t *testing.T) {
	snap, _, buf2 := twoExcerptView(t)

	a := Anchor{ExcerptID: 7, TextAnchor: text.Anchor{Offset: 1, Bias: text.BiasLeft}}
	b := Anchor{ExcerptID: 7, TextAnchor: text.Anchor{Offset: 2, Bias: text.BiasLeft}}
	if _, err := a.Compare(b, snap); !errors.Is(err, ErrExcerptNotFound) {
		t.Errorf("expected ErrExcerptNotFound, got %v", err)
	}

	// Identical anchors compare equal without needing the excerpt.
	if c, err := a.Compare(a, snap); err != nil || c != 0 {
		t.Errorf("identical anchors = %d, %v; want 0, nil", c, err)
	}

	// Different excerpt ids compare by id alone, even if one is gone.
	c := Anchor{ExcerptID: 2, TextAnchor: text.Anchor{Offset: buf2.Len(), Bias: text.BiasLeft}}
	if got, err := a.Compare(c, snap); err != nil || got != 1 {
		t.Errorf("Compare by id = %d, %v; want 1, nil", got, err)
	}
}

func TestAnchorResolutionMonotonicity(t *testing.T) {
	snap, _, _ := twoExcerptView(t)

	anchors := []Anchor{
		MinAnchor(),
		snap.AnchorBefore(0),
		snap.AnchorAt(30, text.BiasLeft),
		snap.AnchorAt(30, text.BiasRight),
		snap.AnchorAt(100, text.BiasLeft),
		snap.AnchorAt(111, text.BiasRight),
		MaxAnchor(),
	}
	for i, a := range anchors {
		for _, b := range anchors[i+1:] {
			c, err := a.Compare(b, snap)
			if err != nil {
				t.Fatalf("Compare failed: %v", err)
			}
			if c < 0 && a.ToOffset(snap) > b.ToOffset(snap) {
				t.Errorf("ordering of %v and %v disagrees with resolved offsets", a, b)
			}
		}
	}
}

func TestAnchorBiasIdempotence(t *testing.T) {
	snap, _, _ := twoExcerptView(t)
	a := snap.AnchorAt(57, text.BiasLeft)

	onceRight := a.BiasRight(snap)
	if onceRight.TextAnchor.Bias != text.BiasRight {
		t.Fatalf("BiasRight did not flip bias: %v", onceRight)
	}
	if twice := onceRight.BiasRight(snap); twice != onceRight {
		t.Error("BiasRight should be idempotent")
	}

	backLeft := onceRight.BiasLeft(snap)
	if backLeft.TextAnchor.Bias != text.BiasLeft {
		t.Fatalf("BiasLeft did not flip bias: %v", backLeft)
	}
	if twice := backLeft.BiasLeft(snap); twice != backLeft {
		t.Error("BiasLeft should be idempotent")
	}
}

func TestAnchorBiasMissingExcerpt(t *testing.T) {
	snap, _, _ := twoExcerptView(t)
	a := Anchor{ExcerptID: 42, TextAnchor: text.Anchor{Offset: 3, Bias: text.BiasLeft}}

	// A missing excerpt means bias no longer matters; the anchor comes
	// back unchanged rather than failing.
	if got := a.BiasRight(snap); got != a {
		t.Errorf("BiasRight on missing excerpt = %v, want unchanged anchor", got)
	}
}

func TestAnchorResolutionDegradesWhenExcerptRemoved(t *testing.T) {
	buf1 := text.NewSnapshot("first excerpt text")
	buf2 := text.NewSnapshot("second excerpt text")
	first := excerpt.New(1, buf1, 0, 5, 0)
	second := excerpt.New(3, buf2, 0, 6, 0)

	before := buildSnapshot(t, first, second)
	a := Anchor{ExcerptID: 3, TextAnchor: text.Anchor{Offset: 4, Bias: text.BiasLeft}}
	if got := a.ToOffset(before); got != 9 {
		t.Fatalf("offset before removal = %d, want 9", got)
	}

	// Remove the anchor's excerpt: resolution lands where that part of
	// the document now is, the end of the remaining content.
	after := buildSnapshot(t, first)
	if got := a.ToOffset(after); got != 5 {
		t.Errorf("offset after removal = %d, want 5", got)
	}

	// An excerpt inserted after the removed one: the anchor degrades to
	// the seek's landing position, the start of the next excerpt.
	third := excerpt.New(5, buf2, 10, 16, 0)
	shifted := buildSnapshot(t, first, third)
	if got := a.ToOffset(shifted); got != 5 {
		t.Errorf("offset with successor excerpt = %d, want 5", got)
	}
}

func TestAnchorSummaryClampsToExcerptRange(t *testing.T) {
	buf := text.NewSnapshot("abcdefghij")
	snap := buildSnapshot(t, excerpt.New(1, buf, 2, 6, 0))

	// Anchor before the excerpt's range clamps to the excerpt start.
	before := Anchor{ExcerptID: 1, TextAnchor: text.Anchor{Offset: 0, Bias: text.BiasLeft}}
	if got := before.ToOffset(snap); got != 0 {
		t.Errorf("anchor before excerpt range = %d, want 0", got)
	}

	// Anchor past the excerpt's range clamps to the excerpt end.
	past := Anchor{ExcerptID: 1, TextAnchor: text.Anchor{Offset: 9, Bias: text.BiasLeft}}
	if got := past.ToOffset(snap); got != 4 {
		t.Errorf("anchor past excerpt range = %d, want 4", got)
	}
}

func TestAnchorRoundTrip(t *testing.T) {
	snap, _, _ := twoExcerptView(t)

	for _, offset := range []text.ByteOffset{0, 1, 30, 99, 101, 115, 130} {
		a := snap.AnchorAt(offset, text.BiasLeft)
		want := snap.ClipOffset(offset, text.BiasLeft)
		if got := a.ToOffset(snap); got != want {
			t.Errorf("AnchorAt(%d) round-trips to %d, want %d", offset, got, want)
		}
	}

	// Offset 100 falls on the second excerpt's header line. There is no
	// anchorable content there, so the anchor tracks the excerpt's first
	// content byte just past the header.
	if got := snap.AnchorAt(100, text.BiasLeft).ToOffset(snap); got != 101 {
		t.Errorf("header-position anchor resolved to %d, want 101", got)
	}
}
