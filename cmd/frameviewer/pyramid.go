package main

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"github.com/iafilius/FrameTimeline/src/arrows"
	"github.com/iafilius/FrameTimeline/src/logging"
	"github.com/iafilius/FrameTimeline/src/render"
	"github.com/iafilius/FrameTimeline/src/types"
	"github.com/iafilius/FrameTimeline/src/viewport"
)

const (
	pyramidRowHeight  = 56
	pyramidCellHeight = 32
	pyramidTopMargin  = 12
)

// pyramidScene is everything needed to draw the pyramid for one refresh.
type pyramidScene struct {
	Seq       *types.Sequence
	Window    viewport.Window
	ItemWidth float64
	Offset    float64
	Selected  int
	Zoom      float64
	PanX      float64
	PanY      float64
	Overlay   arrows.Overlay
	Width     int
	Height    int
}

func pyramidMeasurer(seq *types.Sequence, itemWidth float64, win viewport.Window) viewport.LayeredMeasurer {
	return viewport.LayeredMeasurer{Seq: seq, ItemWidth: itemWidth, RowHeight: pyramidRowHeight, CellHeight: pyramidCellHeight, Window: win}
}

// renderPyramid draws the windowed frames one row per type level, with the arrow overlay, then
// applies zoom and pan by scaling the unzoomed drawing.
func renderPyramid(s pyramidScene) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(s.Width, 1), max(s.Height, 1)))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{R: 24, G: 24, B: 27, A: 255}}, image.Point{}, draw.Src)
	if s.Seq.Len() == 0 || s.Width <= 0 || s.Height <= 0 {
		return dst
	}
	zoom := s.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	// content-space origin of the unzoomed source image
	ox := s.Offset - s.PanX/zoom
	oy := -pyramidTopMargin - s.PanY/zoom
	bw := int(math.Ceil(float64(s.Width) / zoom))
	bh := int(math.Ceil(float64(s.Height) / zoom))
	src := image.NewRGBA(image.Rect(0, 0, bw, bh))

	m := pyramidMeasurer(s.Seq, s.ItemWidth, s.Window)
	for pos := s.Window.Start; pos < s.Window.End; pos++ {
		p, ok := m.Measure(pos)
		if !ok {
			continue
		}
		x0 := int(p.CenterX - s.ItemWidth/2 - ox + 1)
		x1 := int(p.CenterX + s.ItemWidth/2 - ox - 1)
		r := image.Rect(x0, int(p.Top-oy), x1, int(p.Bottom-oy))
		if pos == s.Selected {
			draw.Draw(src, r.Inset(-2), &image.Uniform{C: colorSelected}, image.Point{}, draw.Src)
		}
		draw.Draw(src, r, &image.Uniform{C: typeColor(s.Seq.At(pos).FrameType)}, image.Point{}, draw.Src)
	}
	if ov, err := render.RasterizeOverlay(s.Overlay, ox, oy, bw, bh); err == nil {
		draw.Draw(src, src.Bounds(), ov, image.Point{}, draw.Over)
	} else {
		logging.Debugf("[viewer] pyramid overlay: %v", err)
	}
	if src.Bounds().Size() == dst.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Over)
		return dst
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// pyramidView shows the reference structure by frame type with pan (drag) and zoom (ctrl+wheel).
type pyramidView struct {
	widget.BaseWidget
	state *uiState
	pz    *viewport.PanZoom
	img   *canvas.Image
}

func newPyramidView(state *uiState) *pyramidView {
	p := &pyramidView{state: state, pz: viewport.NewPanZoom(state.cfg.ZoomConfig())}
	p.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	p.img.FillMode = canvas.ImageFillStretch
	p.pz.OnChange = func(float64, float64, float64) { p.Refresh() }
	p.ExtendBaseWidget(p)
	return p
}

func (p *pyramidView) CreateRenderer() fyne.WidgetRenderer {
	return &pyramidRenderer{p: p, objs: []fyne.CanvasObject{p.img}}
}

type pyramidRenderer struct {
	p    *pyramidView
	objs []fyne.CanvasObject
}

func (r *pyramidRenderer) Destroy() {}

func (r *pyramidRenderer) Layout(size fyne.Size) {
	st := r.p.state
	st.onPyramidResize(float64(size.Width))
	st.scheduleArrows()
	panX, panY := r.p.pz.Pan()
	r.p.img.Image = renderPyramid(pyramidScene{
		Seq:       st.seq,
		Window:    st.sync.Window(st.cfg.Overscan),
		ItemWidth: st.sync.ItemWidth(),
		Offset:    st.sync.Offset(),
		Selected:  st.sync.Selected(),
		Zoom:      r.p.pz.Zoom(),
		PanX:      panX,
		PanY:      panY,
		Overlay:   st.pyramidArrows.Output(),
		Width:     int(size.Width),
		Height:    int(size.Height),
	})
	r.p.img.Move(fyne.NewPos(0, 0))
	r.p.img.Resize(size)
}

func (r *pyramidRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, pyramidTopMargin+4*pyramidRowHeight)
}

func (r *pyramidRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *pyramidRenderer) Refresh() {
	r.Layout(r.p.Size())
	r.p.img.Refresh()
}

func (p *pyramidView) Dragged(ev *fyne.DragEvent) {
	if !p.pz.IsDragging() {
		p.pz.PanStart(float64(ev.Position.X-ev.Dragged.DX), float64(ev.Position.Y-ev.Dragged.DY))
	}
	p.pz.PanMove(float64(ev.Position.X), float64(ev.Position.Y))
}

func (p *pyramidView) DragEnd() { p.pz.PanEnd() }

func (p *pyramidView) Scrolled(ev *fyne.ScrollEvent) {
	p.pz.Wheel(float64(-ev.Scrolled.DY), modifierHeld())
}

// DoubleTapped resets zoom and pan.
func (p *pyramidView) DoubleTapped(*fyne.PointEvent) { p.pz.Reset() }

func (p *pyramidView) MouseIn(*desktop.MouseEvent)    {}
func (p *pyramidView) MouseMoved(*desktop.MouseEvent) {}
func (p *pyramidView) MouseOut()                      { p.pz.PanEnd() }

var (
	_ fyne.Draggable      = (*pyramidView)(nil)
	_ fyne.Scrollable     = (*pyramidView)(nil)
	_ fyne.DoubleTappable = (*pyramidView)(nil)
	_ desktop.Hoverable   = (*pyramidView)(nil)
)
