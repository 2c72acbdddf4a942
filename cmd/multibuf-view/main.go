// Package main is a terminal viewer for composed multi-buffer views.
//
// It assembles a composed view from excerpts of several sample buffers
// and lets the cursor be carried by a global anchor: toggling excerpts
// in and out of the view rebuilds the snapshot, and the cursor
// re-resolves to wherever its anchored text now lives.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/multibuf/internal/engine/excerpt"
	"github.com/dshills/multibuf/internal/engine/multibuffer"
	"github.com/dshills/multibuf/internal/engine/text"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
)

func main() {
	os.Exit(run())
}

func run() int {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "multibuf-view - composed multi-buffer viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: multibuf-view [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  h/l, left/right   Move the anchored cursor\n")
		fmt.Fprintf(os.Stderr, "  x                 Toggle the middle excerpt in and out\n")
		fmt.Fprintf(os.Stderr, "  q, esc            Quit\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("multibuf-view %s\n", version)
		return 0
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	v := newViewer()
	v.loop(screen)
	return 0
}

// viewer holds the sample buffers, the excerpts composed from them, and
// the anchor carrying the cursor across snapshot rebuilds.
type viewer struct {
	excerpts []*excerpt.Excerpt
	middle   bool // middle excerpt currently included
	snapshot *multibuffer.Snapshot
	cursor   multibuffer.Anchor
	matches  *multibuffer.AnchorRangeMap[string]
}

func newViewer() *viewer {
	buf1 := text.NewSnapshot("package main\n\nfunc main() {\n\tgreet()\n}\n")
	buf2 := text.NewSnapshot("// greet prints a greeting.\nfunc greet() {\n\tfmt.Println(\"hello\")\n}\n")
	buf3 := text.NewSnapshot("hello tests\nfunc TestGreet(t *testing.T) {}\n")

	v := &viewer{
		excerpts: []*excerpt.Excerpt{
			excerpt.New(excerpt.NextID(), buf1, 0, buf1.Len(), 1),
			excerpt.New(excerpt.NextID(), buf2, 0, buf2.Len(), 1),
			excerpt.New(excerpt.NextID(), buf3, 0, buf3.Len(), 1),
		},
		middle: true,
	}
	v.rebuild()
	v.cursor = v.snapshot.AnchorBefore(0)
	v.matches = findMatches(v.snapshot, "greet")
	return v
}

// rebuild composes a fresh snapshot from the currently included
// excerpts. Anchors held elsewhere stay valid values and simply
// re-resolve against the new snapshot.
func (v *viewer) rebuild() {
	included := make([]*excerpt.Excerpt, 0, len(v.excerpts))
	for i, e := range v.excerpts {
		if i == 1 && !v.middle {
			continue
		}
		included = append(included, e)
	}
	tree, err := excerpt.NewTree(included)
	if err != nil {
		// Excerpt IDs are assigned in order above; this cannot happen.
		panic(err)
	}
	v.snapshot = multibuffer.NewSnapshot(tree)
}

// findMatches builds a range map of every occurrence of needle in the
// composed view, demonstrating range storage that survives excerpt
// toggling.
func findMatches(snap *multibuffer.Snapshot, needle string) *multibuffer.AnchorRangeMap[string] {
	rendered := snap.Text()
	var ranges []multibuffer.RangeValue[string]
	for from := 0; ; {
		i := strings.Index(rendered[from:], needle)
		if i < 0 {
			break
		}
		start := text.ByteOffset(from + i)
		ranges = append(ranges, multibuffer.RangeValue[string]{
			Start: start,
			End:   start + text.ByteOffset(len(needle)),
			Value: needle,
		})
		from += i + len(needle)
	}
	return multibuffer.BuildRangeMap(snap, text.BiasRight, text.BiasLeft, ranges)
}

func (v *viewer) loop(screen tcell.Screen) {
	for {
		v.draw(screen)
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
				return
			case ev.Key() == tcell.KeyLeft || ev.Rune() == 'h':
				v.moveCursor(-1)
			case ev.Key() == tcell.KeyRight || ev.Rune() == 'l':
				v.moveCursor(1)
			case ev.Rune() == 'x':
				v.middle = !v.middle
				v.rebuild()
			}
		}
	}
}

// moveCursor resolves the anchor, steps it, and re-anchors, so the
// cursor is always a stable reference rather than a raw offset. Header
// positions resolve to the following content, so stepping keeps going
// until the resolved position actually moves.
func (v *viewer) moveCursor(delta text.ByteOffset) {
	here := v.cursor.ToOffset(v.snapshot)
	for target := here + delta; target >= 0 && target <= v.snapshot.Len(); target += delta {
		a := v.snapshot.AnchorAt(v.snapshot.ClipOffset(target, text.BiasLeft), text.BiasLeft)
		if a.ToOffset(v.snapshot) != here {
			v.cursor = a
			return
		}
	}
}

func (v *viewer) draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()

	base := tcell.StyleDefault
	header := base.Foreground(tcell.ColorYellow).Bold(true)
	match := base.Background(tcell.ColorDarkBlue)

	highlighted := matchOffsets(v.matches, v.snapshot)
	cursorOffset := v.cursor.ToOffset(v.snapshot)
	cursorPoint := v.cursor.ToPoint(v.snapshot)

	lines := strings.Split(v.snapshot.Text(), "\n")
	headerRows := v.headerRows()
	var offset text.ByteOffset
	for row := 0; row < height-1 && row < len(lines); row++ {
		line := lines[row]
		if headerRows[row] {
			for x := 0; x < width; x++ {
				screen.SetContent(x, row, '─', nil, header)
			}
		} else {
			for x, r := range line {
				st := base
				if covered(highlighted, offset+text.ByteOffset(x)) {
					st = match
				}
				screen.SetContent(x, row, r, nil, st)
			}
		}
		offset += text.ByteOffset(len(line)) + 1
	}

	status := fmt.Sprintf(" cursor: offset %d, line %d, col %d | anchor %v | x: toggle excerpt, q: quit ",
		cursorOffset, cursorPoint.Line, cursorPoint.Column, v.cursor)
	statusStyle := base.Reverse(true)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		screen.SetContent(x, height-1, r, nil, statusStyle)
	}

	screen.ShowCursor(int(cursorPoint.Column), int(cursorPoint.Line))
	screen.Show()
}

// headerRows returns the composed rows occupied by excerpt headers.
func (v *viewer) headerRows() map[int]bool {
	rows := make(map[int]bool)
	var composed text.Summary
	for i, e := range v.excerpts {
		if i == 1 && !v.middle {
			continue
		}
		for h := uint32(0); h < e.HeaderHeight(); h++ {
			rows[int(composed.Lines.Line+h)] = true
		}
		composed = composed.Add(e.Summary())
	}
	return rows
}

// matchOffsets resolves the match ranges into offset spans for drawing.
func matchOffsets(m *multibuffer.AnchorRangeMap[string], snap *multibuffer.Snapshot) []multibuffer.Range[multibuffer.Offset] {
	var spans []multibuffer.Range[multibuffer.Offset]
	for it := multibuffer.Ranges[multibuffer.Offset](m, snap); it.Next(); {
		spans = append(spans, it.Range())
	}
	return spans
}

func covered(spans []multibuffer.Range[multibuffer.Offset], offset text.ByteOffset) bool {
	for _, s := range spans {
		if multibuffer.Offset(offset) >= s.Start && multibuffer.Offset(offset) < s.End {
			return true
		}
	}
	return false
}
