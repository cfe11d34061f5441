package main

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/FrameTimeline/cmd/frameviewer/uihelpers"
)

// graphView shows the rendered chart and selects the frame under a tap.
type graphView struct {
	widget.BaseWidget
	state *uiState
	img   *canvas.Image
}

func newGraphView(state *uiState, img *canvas.Image) *graphView {
	g := &graphView{state: state, img: img}
	g.ExtendBaseWidget(g)
	return g
}

func (g *graphView) CreateRenderer() fyne.WidgetRenderer { return widget.NewSimpleRenderer(g.img) }

func (g *graphView) Tapped(ev *fyne.PointEvent) {
	st := g.state
	if st.seq.Len() == 0 || g.img.Image == nil {
		return
	}
	if pos := st.graphPositionAt(ev.Position.X, g.img.Image.Bounds().Size(), g.Size()); pos >= 0 {
		st.selectIndex(pos)
	}
}

var _ fyne.Tappable = (*graphView)(nil)

// graphPositionAt maps a pointer x over the chart image to the nearest frame, or -1 off the plot.
// The chart x axis runs from the first to the last frame index.
func (st *uiState) graphPositionAt(x float32, img image.Point, view fyne.Size) int {
	n := st.seq.Len()
	if n == 0 {
		return -1
	}
	first, last := st.seq.At(0).FrameIndex, st.seq.At(n-1).FrameIndex
	if last == first {
		last = first + 1
	}
	v, ok := uihelpers.ChartValueAt(x, float32(img.X), float32(img.Y), view.Width, view.Height, float64(first), float64(last))
	if !ok {
		return -1
	}
	return st.seq.Nearest(int(math.Round(v)))
}
