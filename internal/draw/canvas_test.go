package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestDrawCircle(t *testing.T) {
	c := NewCanvas(20, 10) // Logical 20 x 20
	c.DrawCircle(Point{X: 10, Y: 10}, 4, true)

	for _, p := range []Point{{10, 10}, {12, 10}, {10, 7}, {14, 10}} {
		if !c.PixelSet(p.X, p.Y) {
			t.Errorf("pixel %v not lit", p)
		}
	}
	for _, p := range []Point{{0, 0}, {19, 19}, {10, 16}} {
		if c.PixelSet(p.X, p.Y) {
			t.Errorf("pixel %v lit outside the circle", p)
		}
	}

	c.Clear()
	c.DrawCircle(Point{X: 10, Y: 10}, 4, false)
	if !c.PixelSet(10, 10) {
		t.Error("center dot missing from outline circle")
	}
	if c.PixelSet(11, 11) {
		t.Error("outline circle is filled")
	}
}

func TestDrawRectOutline(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawRect(Point{X: 2, Y: 2}, Point{X: 8, Y: 6}, false)
	for _, p := range []Point{{2, 2}, {8, 2}, {8, 6}, {2, 6}, {5, 2}} {
		if !c.PixelSet(p.X, p.Y) {
			t.Errorf("edge pixel %v not lit", p)
		}
	}
	if c.PixelSet(5, 4) {
		t.Error("interior lit for an outline rectangle")
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(1, 0)
	c.Set(1, 1)
	c.Set(2, 3)

	var buf bytes.Buffer
	c.Render(&buf)
	got := buf.String()

	for _, want := range []string{
		"\033[1;1H" + string(BlockUpperHalf),
		"\033[1;2H" + string(BlockFull),
		"\033[2;3H" + string(BlockLowerHalf),
	} {
		if !strings.Contains(got, want) {
			t.Errorf("render output %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "\033[1;4H") {
		t.Errorf("render output %q wrote an empty cell", got)
	}
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)

	var buf bytes.Buffer
	c.Render(&buf)
	buf.Reset()

	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", buf.String())
	}

	// Pixel gone: the cell is blanked.
	c.Clear()
	c.Render(&buf)
	if got, want := buf.String(), "\033[1;1H "; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	buf.Reset()
	c.MarkTextDirty(2, 2, 2)
	c.Render(&buf)
	if got, want := buf.String(), "\033[2;2H \033[2;3H "; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	buf.Reset()
	c.ForceRedraw()
	c.Render(&buf)
	if got := strings.Count(buf.String(), "\033["); got != 8 {
		t.Fatalf("forced redraw wrote %d cells, want 8", got)
	}
}
