package viewport

import (
	"math"
	"testing"

	"github.com/iafilius/FrameTimeline/src/types"
)

func TestComputeWindowFormula(t *testing.T) {
	cases := []struct {
		offset, item, container float64
		count, overscan         int
		want                    Window
	}{
		{0, 50, 500, 1000, 3, Window{0, 13}},
		{1000, 50, 500, 1000, 3, Window{17, 33}},
		{1025, 50, 500, 1000, 0, Window{20, 31}},
		{49000, 50, 1000, 1000, 5, Window{975, 1000}},
		{0, 50, 500, 4, 2, Window{0, 4}},
	}
	for _, c := range cases {
		got := ComputeWindow(c.offset, c.item, c.container, c.count, c.overscan)
		if got != c.want {
			t.Fatalf("ComputeWindow(%v,%v,%v,%d,%d) => %+v want %+v", c.offset, c.item, c.container, c.count, c.overscan, got, c.want)
		}
	}
}

func TestComputeWindowEmptySequence(t *testing.T) {
	if got := ComputeWindow(120, 40, 800, 0, 3); got != (Window{}) {
		t.Fatalf("itemCount=0 => %+v want {0 0}", got)
	}
	if got := ComputeWindow(120, 0, 800, 10, 3); got != (Window{}) {
		t.Fatalf("itemWidth=0 => %+v want {0 0}", got)
	}
}

func TestComputeWindowExtremeOffsets(t *testing.T) {
	inf := math.Inf(1)
	cases := []struct {
		offset, container float64
		want              Window
	}{
		{1e300, 500, Window{100, 100}},
		{inf, 500, Window{100, 100}},
		{-1e300, 500, Window{0, 0}},
		{math.Inf(-1), 500, Window{0, 0}},
		{1000, inf, Window{18, 100}},
		{math.Inf(-1), inf, Window{}},
	}
	for _, c := range cases {
		if got := ComputeWindow(c.offset, 50, c.container, 100, 2); got != c.want {
			t.Fatalf("ComputeWindow(%v, container %v) => %+v want %+v", c.offset, c.container, got, c.want)
		}
	}
}

func TestComputeWindowBounded(t *testing.T) {
	item, container := 37.0, 613.0
	count := 5000
	extent := Extent(count, item)
	for _, overscan := range []int{0, 1, 4} {
		bound := int(math.Ceil(container/item)) + 2*overscan + 1
		for off := 0.0; off <= extent-container; off += 13.7 {
			w := ComputeWindow(off, item, container, count, overscan)
			if w.Start > w.End {
				t.Fatalf("start > end at offset %v: %+v", off, w)
			}
			if w.Len() > bound {
				t.Fatalf("window too large at offset %v: %d > %d", off, w.Len(), bound)
			}
		}
	}
	// past the end never inverts
	if w := ComputeWindow(extent*3, item, container, count, 2); w.Start > w.End {
		t.Fatalf("past end inverted: %+v", w)
	}
	if w := ComputeWindow(-500, item, container, count, 2); w.Start != 0 || w.End < 0 {
		t.Fatalf("negative offset => %+v", w)
	}
}

func TestScrollThumbStable(t *testing.T) {
	extent := Extent(1000, 50)
	th := ScrollThumb(0, 500, extent, 500, 2)
	if th.Width != 5 || th.Offset != 0 {
		t.Fatalf("thumb at start => %+v", th)
	}
	th = ScrollThumb(extent-500, 500, extent, 500, 20)
	if th.Width != 20 || math.Abs(th.Offset+th.Width-500) > 1e-9 {
		t.Fatalf("thumb at end should touch track end => %+v", th)
	}
	th = ScrollThumb(0, 800, 400, 300, 10)
	if th.Width != 300 {
		t.Fatalf("content fitting container should fill track => %+v", th)
	}
	if got := OffsetForThumb(250, 500, extent, 500); got != 25000 {
		t.Fatalf("OffsetForThumb => %v want 25000", got)
	}
}

func TestSynchronizerCentersSelection(t *testing.T) {
	s := NewSynchronizer(50, 500, 1000)
	s.SetSelectedIndex(100)
	// 100*50 - 250 + 25
	if got := s.Offset(); got != 4775 {
		t.Fatalf("centered offset => %v want 4775", got)
	}
	s.SetSelectedIndex(0)
	if s.Offset() != 0 {
		t.Fatalf("first frame should clamp to 0, got %v", s.Offset())
	}
	s.SetSelectedIndex(5000)
	if s.Selected() != 999 || s.Offset() != 49500 {
		t.Fatalf("out of range => sel %d offset %v want 999/49500", s.Selected(), s.Offset())
	}
}

func TestSynchronizerDragSuppressesCentering(t *testing.T) {
	s := NewSynchronizer(50, 500, 1000)
	var notified []int
	s.OnIndexChange = func(i int) { notified = append(notified, i) }
	s.ScrollTo(1000)
	s.DragStart(300)
	s.DragMove(200) // pointer moved left 100px => offset +100
	if s.Offset() != 1100 {
		t.Fatalf("drag offset => %v want 1100", s.Offset())
	}
	if s.Selected() != 22 || len(notified) != 1 || notified[0] != 22 {
		t.Fatalf("drag index => %d notified %v want 22", s.Selected(), notified)
	}
	s.DragMove(200) // same pointer, same index: no duplicate notification
	if len(notified) != 1 {
		t.Fatalf("duplicate notification: %v", notified)
	}
	// playback tick during drag must not move the scroll
	s.SetSelectedIndex(500)
	if s.Offset() != 1100 {
		t.Fatalf("centering ran during drag: offset %v", s.Offset())
	}
	s.DragEnd()
	s.DragEnd() // release is idempotent
	if s.Dragging() {
		t.Fatalf("still dragging after DragEnd")
	}
	s.SetSelectedIndex(500)
	if s.Offset() != 500*50-250+25 {
		t.Fatalf("centering after drag => %v", s.Offset())
	}
}

func TestSynchronizerDragClamps(t *testing.T) {
	s := NewSynchronizer(50, 500, 100)
	var last = -1
	s.OnIndexChange = func(i int) { last = i }
	s.ScrollTo(100)
	s.DragStart(0)
	s.DragMove(10000)
	if s.Offset() != 0 || s.Selected() != 0 {
		t.Fatalf("drag past start => offset %v sel %d", s.Offset(), s.Selected())
	}
	s.DragMove(-100000)
	if s.Offset() != 4500 || s.Selected() != 90 || last != 90 {
		t.Fatalf("drag past end => offset %v sel %d last %d", s.Offset(), s.Selected(), last)
	}
	s.DragEnd()
}

func TestSynchronizerScrollNeverChangesIndex(t *testing.T) {
	s := NewSynchronizer(40, 400, 300)
	s.SetSelectedIndex(10)
	called := false
	s.OnIndexChange = func(int) { called = true }
	s.ScrollTo(5000)
	s.ScrollBy(-30)
	if called || s.Selected() != 10 {
		t.Fatalf("scroll changed selection: %d called=%v", s.Selected(), called)
	}
	// DragMove without DragStart is ignored
	s.DragMove(123)
	if called {
		t.Fatalf("DragMove without DragStart notified")
	}
}

func TestSynchronizerEmptyIsNoop(t *testing.T) {
	s := NewSynchronizer(50, 500, 0)
	s.OnIndexChange = func(int) { t.Fatalf("no index change expected on empty sequence") }
	s.SetSelectedIndex(3)
	s.DragStart(10)
	s.DragMove(-400)
	s.DragEnd()
	s.ScrollTo(250)
	if s.Offset() != 0 || s.Selected() != 0 {
		t.Fatalf("empty sequence changed state: offset %v sel %d", s.Offset(), s.Selected())
	}
	if w := s.Window(3); w != (Window{}) {
		t.Fatalf("empty window => %+v", w)
	}
	if math.IsNaN(s.Offset()) {
		t.Fatalf("NaN offset")
	}
}

func TestSynchronizerResizeAndZoom(t *testing.T) {
	s := NewSynchronizer(50, 500, 100)
	s.SetSelectedIndex(99)
	s.SetContainerWidth(1000)
	if s.Offset() != 4000 {
		t.Fatalf("resize should re-clamp offset: %v", s.Offset())
	}
	s.SetItemWidth(100)
	// centering 99 would need 9450, clamped to extent-container
	if s.Offset() != 9000 {
		t.Fatalf("zoom should keep selection centered (clamped): %v", s.Offset())
	}
	s.SetItemCount(10)
	if s.Selected() != 9 || s.Offset() != 0 {
		t.Fatalf("shrink => sel %d offset %v", s.Selected(), s.Offset())
	}
}

func TestSynchronizerOnScroll(t *testing.T) {
	s := NewSynchronizer(10, 100, 100)
	var calls []float64
	s.OnScroll = func(o float64) { calls = append(calls, o) }
	s.ScrollTo(50)
	s.ScrollTo(50)
	s.ScrollTo(5000)
	if len(calls) != 2 || calls[0] != 50 || calls[1] != 900 {
		t.Fatalf("OnScroll calls => %v", calls)
	}
}

func TestPanZoomWheelGating(t *testing.T) {
	p := NewPanZoom(DefaultZoomConfig())
	if p.Wheel(-1, false) {
		t.Fatalf("wheel without modifier should not zoom")
	}
	if !p.Wheel(-1, true) || p.Zoom() != 1.25 {
		t.Fatalf("wheel up with modifier => %v want 1.25", p.Zoom())
	}
	if !p.Wheel(3, true) || p.Zoom() != 1 {
		t.Fatalf("wheel down => %v want 1", p.Zoom())
	}
	for i := 0; i < 40; i++ {
		p.ZoomIn()
	}
	if p.Zoom() != 4 || p.ZoomIn() {
		t.Fatalf("zoom should clamp at 4: %v", p.Zoom())
	}
	for i := 0; i < 40; i++ {
		p.ZoomOut()
	}
	if p.Zoom() != 0.25 {
		t.Fatalf("zoom should clamp at 0.25: %v", p.Zoom())
	}
	free := NewPanZoom(ZoomConfig{Min: 0.5, Max: 2, Step: 0.5})
	if !free.Wheel(-1, false) || free.Zoom() != 1.5 {
		t.Fatalf("modifier not required => %v", free.Zoom())
	}
}

func TestPanZoomPan(t *testing.T) {
	p := NewPanZoom(ZoomConfig{})
	changes := 0
	p.OnChange = func(float64, float64, float64) { changes++ }
	p.PanMove(10, 10)
	if changes != 0 {
		t.Fatalf("pan without start changed state")
	}
	p.PanStart(100, 100)
	p.PanMove(130, 90)
	p.PanMove(140, 95)
	x, y := p.Pan()
	if x != 40 || y != -5 || !p.IsDragging() {
		t.Fatalf("pan => (%v,%v) dragging=%v", x, y, p.IsDragging())
	}
	p.PanEnd()
	p.Reset()
	x, y = p.Pan()
	if x != 0 || y != 0 || p.Zoom() != 1 || p.IsDragging() {
		t.Fatalf("reset => zoom %v pan (%v,%v)", p.Zoom(), x, y)
	}
	if cfg := p.Config(); cfg.Min != 0.25 || cfg.Max != 4 || cfg.Step != 0.25 {
		t.Fatalf("zero config should take defaults: %+v", cfg)
	}
}

func TestMeasurers(t *testing.T) {
	strip := StripMeasurer{Layout: StripLayout{ItemWidth: 40, Top: 10, Height: 60}, Window: Window{2, 5}}
	if _, ok := strip.Measure(1); ok {
		t.Fatalf("position outside window should not be measured")
	}
	p, ok := strip.Measure(3)
	if !ok || p.CenterX != 140 || p.Top != 10 || p.Bottom != 70 {
		t.Fatalf("strip measure => %+v %v", p, ok)
	}
	seq, err := types.NewSequence([]types.FrameRecord{
		{FrameIndex: 0, FrameType: types.FrameTypeI},
		{FrameIndex: 1, FrameType: types.FrameTypeB},
		{FrameIndex: 2, FrameType: types.FrameTypeP},
	})
	if err != nil {
		t.Fatal(err)
	}
	lm := LayeredMeasurer{Seq: seq, ItemWidth: 20, RowHeight: 50, CellHeight: 30, Window: Window{0, 3}}
	b, ok := lm.Measure(1)
	if !ok || b.Top != 100 || b.Bottom != 130 || b.CenterX != 30 {
		t.Fatalf("layered B => %+v", b)
	}
	if _, ok := lm.Measure(7); ok {
		t.Fatalf("out of sequence should not be measured")
	}
	if TypeLevel("SI") != 3 || TypeLevel("IDR") != 0 {
		t.Fatalf("unexpected type levels")
	}
}
