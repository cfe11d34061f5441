package main

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"

	"github.com/iafilius/FrameTimeline/src/arrows"
	"github.com/iafilius/FrameTimeline/src/config"
	"github.com/iafilius/FrameTimeline/src/types"
	"github.com/iafilius/FrameTimeline/src/viewport"
)

// chainSeq is n P-frames, each referencing the one before it.
func chainSeq(t *testing.T, n int) *types.Sequence {
	t.Helper()
	frames := make([]types.FrameRecord, n)
	for i := range frames {
		frames[i] = types.FrameRecord{FrameIndex: i, FrameType: types.FrameTypeP, Size: 1000}
		if i > 0 {
			frames[i].RefFrames = []int{i - 1}
		}
	}
	seq, err := types.NewSequence(frames)
	if err != nil {
		t.Fatal(err)
	}
	return seq
}

// arrowState is a uiState without widgets whose deferred passes queue up until run.
type arrowState struct {
	*uiState
	pending []func()
}

func newArrowState(t *testing.T, n int) *arrowState {
	t.Helper()
	cfg := config.Default()
	seq := chainSeq(t, n)
	as := &arrowState{uiState: &uiState{cfg: cfg, seq: seq}}
	as.sync = viewport.NewSynchronizer(cfg.ItemWidth, 0, seq.Len())
	as.stripArrows, as.pyramidArrows = newArrowCalculators(cfg)
	as.stripArrows.SetSequence(seq)
	as.pyramidArrows.SetSequence(seq)
	as.afterLayout = func(f func()) { as.pending = append(as.pending, f) }
	return as
}

func (as *arrowState) run() {
	fs := as.pending
	as.pending = nil
	for _, f := range fs {
		f()
	}
}

// layout does what the strip renderer does on a layout pass.
func (as *arrowState) layout(width float64) {
	as.onStripResize(width)
	as.scheduleArrows()
}

func arrowCount(c *arrows.Calculator) int { return len(c.Output().Arrows) }

func TestArrowsWaitForStripWidth(t *testing.T) {
	as := newArrowState(t, 200)
	as.scheduleArrows()
	if len(as.pending) != 0 {
		t.Fatalf("no pass should be scheduled before the strip is laid out, got %d", len(as.pending))
	}
	if as.stripArrows.State() != arrows.Uncomputed {
		t.Fatalf("strip state => %s want uncomputed", as.stripArrows.State())
	}
}

func TestArrowsRemeasureAfterWiden(t *testing.T) {
	as := newArrowState(t, 200)

	// 200px at 48px cells: ceil(200/48)+5 = 10 cells materialized, 9 arrows between them
	as.layout(200)
	as.run()
	if got := arrowCount(as.stripArrows); got != 9 {
		t.Fatalf("narrow strip arrows => %d want 9", got)
	}
	if got := arrowCount(as.pyramidArrows); got != 9 {
		t.Fatalf("narrow pyramid arrows => %d want 9", got)
	}

	// a repeated layout at the same width asks for nothing
	as.layout(200)
	if len(as.pending) != 0 {
		t.Fatalf("same-width layout scheduled %d passes", len(as.pending))
	}

	// 1280px: ceil(1280/48)+5 = 32 cells, 31 arrows
	as.layout(1280)
	if len(as.pending) != 2 {
		t.Fatalf("widen should schedule strip and pyramid passes, got %d", len(as.pending))
	}
	as.run()
	if got := arrowCount(as.stripArrows); got != 31 {
		t.Fatalf("widened strip arrows => %d want 31", got)
	}
	if got := arrowCount(as.pyramidArrows); got != 31 {
		t.Fatalf("widened pyramid arrows => %d want 31", got)
	}
}

func TestArrowsResizeBeforePassRuns(t *testing.T) {
	as := newArrowState(t, 200)
	as.layout(1000)
	as.layout(1500)
	if len(as.pending) != 4 {
		t.Fatalf("pending passes => %d want 4", len(as.pending))
	}
	as.run()
	// only the passes issued at 1500px count: ceil(1500/48)+5 = 37 cells, 36 arrows
	if got := arrowCount(as.stripArrows); got != 36 {
		t.Fatalf("strip arrows => %d want 36", got)
	}
	if got := arrowCount(as.pyramidArrows); got != 36 {
		t.Fatalf("pyramid arrows => %d want 36", got)
	}
}

func TestPyramidResizeKeepsArrows(t *testing.T) {
	as := newArrowState(t, 200)
	as.layout(400)
	as.run()
	before := arrowCount(as.pyramidArrows)
	as.onPyramidResize(900)
	as.scheduleArrows()
	if len(as.pending) != 0 || arrowCount(as.pyramidArrows) != before || before == 0 {
		t.Fatalf("pyramid resize should keep %d arrows, got %d (pending %d)", before, arrowCount(as.pyramidArrows), len(as.pending))
	}
	if w := as.pyramidArrows.SVGWidth(); w < 900 {
		t.Fatalf("pyramid overlay width => %v want >= 900", w)
	}
}

func TestGraphPositionAt(t *testing.T) {
	as := newArrowState(t, 101)
	img, view := image.Pt(1000, 250), fyne.NewSize(500, 400)
	cases := []struct {
		x    float32
		want int
	}{
		{8, 0},
		{237, 50},
		{466, 100},
		{4, -1},
	}
	for _, c := range cases {
		if got := as.graphPositionAt(c.x, img, view); got != c.want {
			t.Fatalf("graphPositionAt(%v) => %d want %d", c.x, got, c.want)
		}
	}
}
