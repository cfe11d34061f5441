package uihelpers

import (
	"math"
	"testing"
	"time"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct {
		in    int
		wantW int
	}{
		{100, 640},
		{600, 640},
		{1000, 938},
		{2000, 1888},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.in)
		if w != c.wantW {
			t.Fatalf("input %d => width %d want %d", c.in, w, c.wantW)
		}
		if h < 180 || h > 360 {
			t.Fatalf("height clamp violated for input %d => h=%d", c.in, h)
		}
	}
}

func TestComputeReferenceColumnWidths(t *testing.T) {
	if narrow := ComputeReferenceColumnWidths(500); narrow[3] != 0 {
		t.Fatalf("size column should hide when narrow: %#v", narrow)
	}
	if wide := ComputeReferenceColumnWidths(1200); wide != [4]int{120, 90, 60, 90} {
		t.Fatalf("wide widths mismatch: %#v", wide)
	}
}

func TestContainRect(t *testing.T) {
	x, y, w, h, s := ContainRect(800, 200, 400, 400)
	if s != 0.5 || w != 400 || h != 100 || x != 0 || y != 150 {
		t.Fatalf("contain => x=%v y=%v w=%v h=%v s=%v", x, y, w, h, s)
	}
	if _, _, w, _, s := ContainRect(0, 10, 10, 10); w != 0 || s != 1 {
		t.Fatalf("degenerate image should map to nothing")
	}
}

func TestChartValueAt(t *testing.T) {
	// 1000x250 image shown at half size in a 500x400 box: drawn at y=137.5, scale 0.5
	// plot spans image x 16..932, i.e. view x 8..466
	cases := []struct {
		x    float32
		want float64
		ok   bool
	}{
		{8, 0, true},
		{466, 100, true},
		{237, 50, true},
		{4, 0, false},
		{480, 0, false},
	}
	for _, c := range cases {
		got, ok := ChartValueAt(c.x, 1000, 250, 500, 400, 0, 100)
		if ok != c.ok || (ok && math.Abs(got-c.want) > 1e-9) {
			t.Fatalf("ChartValueAt(%v) => (%v,%v) want (%v,%v)", c.x, got, ok, c.want, c.ok)
		}
	}
	if _, ok := ChartValueAt(10, 50, 20, 500, 400, 0, 100); ok {
		t.Fatalf("image narrower than the insets should not map")
	}
}

func TestPositionAt(t *testing.T) {
	cases := []struct {
		x, offset, w float64
		n, want      int
	}{
		{10, 0, 50, 10, 0},
		{60, 0, 50, 10, 1},
		{10, 100, 50, 10, 2},
		{-5, 0, 50, 10, -1},
		{499, 0, 50, 10, 9},
		{500, 0, 50, 10, -1},
		{10, 0, 0, 10, -1},
	}
	for _, c := range cases {
		if got := PositionAt(c.x, c.offset, c.w, c.n); got != c.want {
			t.Fatalf("PositionAt(%v,%v,%v,%d) => %d want %d", c.x, c.offset, c.w, c.n, got, c.want)
		}
	}
}

func TestZoomAndPlayback(t *testing.T) {
	if got := ZoomedItemWidth(48, 0.25); got != 12 {
		t.Fatalf("zoomed width => %v", got)
	}
	if got := ZoomedItemWidth(8, 0.25); got != 4 {
		t.Fatalf("zoomed width floor => %v", got)
	}
	if got := PlaybackInterval(25); got != 40*time.Millisecond {
		t.Fatalf("25fps => %v", got)
	}
	if got := PlaybackInterval(0); math.Abs(float64(got-time.Second/30)) > 1 {
		t.Fatalf("default fps => %v", got)
	}
	if got := PlaybackInterval(1000); got != time.Second/240 {
		t.Fatalf("clamped fps => %v", got)
	}
}

func TestCellLabel(t *testing.T) {
	cases := []struct {
		w    float64
		want string
	}{
		{20, "P"},
		{48, "P\n12"},
		{96, "P\n12\n1.5K"},
	}
	for _, c := range cases {
		if got := CellLabel(12, "P", 1536, c.w); got != c.want {
			t.Fatalf("CellLabel width %v => %q want %q", c.w, got, c.want)
		}
	}
}
