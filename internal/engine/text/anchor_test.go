package text

import "testing"

func TestSnapshotConversions(t *testing.T) {
	s := NewSnapshot("one\ntwo\nthree")

	if s.Len() != 13 {
		t.Fatalf("expected length 13, got %d", s.Len())
	}
	if got := s.OffsetToPoint(5); got != (Point{Line: 1, Column: 1}) {
		t.Errorf("OffsetToPoint(5) = %v", got)
	}
	if got := s.PointToOffset(Point{Line: 1, Column: 1}); got != 5 {
		t.Errorf("PointToOffset(1:1) = %d", got)
	}
	if got := s.PointToOffset(Point{Line: 0, Column: 99}); got != 3 {
		t.Errorf("past-line-end point should clamp to line end, got %d", got)
	}
	if got := s.PointToOffset(Point{Line: 9, Column: 0}); got != 13 {
		t.Errorf("past-last-line point should clamp to end, got %d", got)
	}
}

func TestSnapshotClipOffset(t *testing.T) {
	s := NewSnapshot("aéb") // é is 2 bytes at offset 1

	if got := s.ClipOffset(-5, BiasLeft); got != 0 {
		t.Errorf("negative offset should clip to 0, got %d", got)
	}
	if got := s.ClipOffset(100, BiasRight); got != s.Len() {
		t.Errorf("oversized offset should clip to length, got %d", got)
	}
	if got := s.ClipOffset(2, BiasLeft); got != 1 {
		t.Errorf("mid-rune left clip = %d, want 1", got)
	}
	if got := s.ClipOffset(2, BiasRight); got != 3 {
		t.Errorf("mid-rune right clip = %d, want 3", got)
	}
}

func TestAnchorResolve(t *testing.T) {
	s := NewSnapshot("hello\nworld")

	a := Anchor{Offset: 8, Bias: BiasLeft}
	if got := a.ToOffset(s); got != 8 {
		t.Errorf("ToOffset = %d, want 8", got)
	}
	if got := a.ToPoint(s); got != (Point{Line: 1, Column: 2}) {
		t.Errorf("ToPoint = %v", got)
	}
	sum := a.Summary(s)
	if sum.Bytes != 8 || sum.Lines != (Point{Line: 1, Column: 2}) {
		t.Errorf("Summary = %+v", sum)
	}
}

func TestAnchorSentinels(t *testing.T) {
	s := NewSnapshot("some text")

	if got := AnchorMin().ToOffset(s); got != 0 {
		t.Errorf("min anchor resolves to %d, want 0", got)
	}
	if got := AnchorMax().ToOffset(s); got != s.Len() {
		t.Errorf("max anchor resolves to %d, want %d", got, s.Len())
	}
}

func TestAnchorCompare(t *testing.T) {
	s := NewSnapshot("hello")

	a := Anchor{Offset: 1, Bias: BiasLeft}
	b := Anchor{Offset: 3, Bias: BiasLeft}
	if a.Compare(b, s) != -1 || b.Compare(a, s) != 1 {
		t.Error("anchors should order by offset")
	}

	left := Anchor{Offset: 2, Bias: BiasLeft}
	right := Anchor{Offset: 2, Bias: BiasRight}
	if left.Compare(right, s) != -1 {
		t.Error("left bias should order before right bias at the same offset")
	}
	if right.Compare(left, s) != 1 {
		t.Error("right bias should order after left bias at the same offset")
	}
	if left.Compare(left, s) != 0 {
		t.Error("anchor should compare equal to itself")
	}
}

func TestAnchorWithBias(t *testing.T) {
	s := NewSnapshot("hello")
	a := Anchor{Offset: 2, Bias: BiasLeft}

	if got := a.WithBias(BiasLeft, s); got != a {
		t.Error("WithBias with matching bias should return the anchor unchanged")
	}

	flipped := a.WithBias(BiasRight, s)
	if flipped.Bias != BiasRight || flipped.Offset != 2 {
		t.Errorf("WithBias = %v", flipped)
	}
	// Flipping is idempotent.
	if got := flipped.WithBias(BiasRight, s); got != flipped {
		t.Error("repeated WithBias should be a no-op")
	}
}
