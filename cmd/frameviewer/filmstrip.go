package main

import (
	"image"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/FrameTimeline/cmd/frameviewer/uihelpers"
	"github.com/iafilius/FrameTimeline/src/render"
	"github.com/iafilius/FrameTimeline/src/types"
	"github.com/iafilius/FrameTimeline/src/viewport"
)

const (
	// arrowBand is the room below the cells where reference arrows hang.
	arrowBand   = 80
	thumbHeight = 6
)

var (
	colorKey      = color.RGBA{R: 239, G: 68, B: 68, A: 255}
	colorP        = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	colorB        = color.RGBA{R: 16, G: 185, B: 129, A: 255}
	colorOther    = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	colorSelected = color.RGBA{R: 250, G: 204, B: 21, A: 255}
)

func typeColor(t types.FrameType) color.RGBA {
	switch {
	case t.IsKey():
		return colorKey
	case t == types.FrameTypeP:
		return colorP
	case t == types.FrameTypeB:
		return colorB
	}
	return colorOther
}

// filmstrip is the virtualized frame strip. Only cells inside the synchronizer's window exist as
// canvas objects; they are pooled and rebound as the window moves.
type filmstrip struct {
	widget.BaseWidget
	state *uiState
}

func newFilmstrip(state *uiState) *filmstrip {
	f := &filmstrip{state: state}
	f.ExtendBaseWidget(f)
	return f
}

func (f *filmstrip) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{R: 24, G: 24, B: 27, A: 255})
	overlay := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	overlay.FillMode = canvas.ImageFillStretch
	overlay.ScaleMode = canvas.ImageScalePixels
	thumb := canvas.NewRectangle(color.RGBA{R: 160, G: 160, B: 170, A: 200})
	r := &filmstripRenderer{f: f, bg: bg, overlay: overlay, thumb: thumb}
	r.objs = []fyne.CanvasObject{bg, thumb, overlay}
	return r
}

// stripCell is one pooled cell: a colored block with up to three text lines.
type stripCell struct {
	rect  *canvas.Rectangle
	lines [3]*canvas.Text
}

func newStripCell() *stripCell {
	c := &stripCell{rect: canvas.NewRectangle(colorOther)}
	c.rect.StrokeWidth = 2
	for i := range c.lines {
		c.lines[i] = canvas.NewText("", color.White)
		c.lines[i].TextSize = 10
		c.lines[i].Alignment = fyne.TextAlignCenter
	}
	return c
}

func (c *stripCell) objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{c.rect, c.lines[0], c.lines[1], c.lines[2]}
}

func (c *stripCell) hide() {
	c.rect.Hide()
	for _, l := range c.lines {
		l.Hide()
	}
}

func (c *stripCell) bind(rec types.FrameRecord, x, w, h float32, selected bool) {
	c.rect.FillColor = typeColor(rec.FrameType)
	c.rect.StrokeColor = color.Transparent
	if selected {
		c.rect.StrokeColor = colorSelected
	}
	c.rect.Move(fyne.NewPos(x+1, 0))
	c.rect.Resize(fyne.NewSize(w-2, h))
	c.rect.Show()
	c.rect.Refresh()
	text := strings.Split(uihelpers.CellLabel(rec.FrameIndex, string(rec.FrameType), rec.Size, float64(w)), "\n")
	for i, l := range c.lines {
		if i >= len(text) {
			l.Hide()
			continue
		}
		l.Text = text[i]
		l.Move(fyne.NewPos(x, 4+float32(i)*14))
		l.Resize(fyne.NewSize(w, 14))
		l.Show()
		l.Refresh()
	}
}

type filmstripRenderer struct {
	f       *filmstrip
	bg      *canvas.Rectangle
	overlay *canvas.Image
	thumb   *canvas.Rectangle
	pool    []*stripCell
	objs    []fyne.CanvasObject
}

func (r *filmstripRenderer) Destroy() {}

func (r *filmstripRenderer) Layout(size fyne.Size) {
	st := r.f.state
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	st.onStripResize(float64(size.Width))

	win := st.sync.Window(st.cfg.Overscan)
	for len(r.pool) < win.Len() {
		c := newStripCell()
		r.pool = append(r.pool, c)
		r.objs = append(r.objs[:len(r.objs)-1], append(c.objects(), r.overlay)...)
	}
	w := float32(st.sync.ItemWidth())
	h := float32(st.cfg.StripHeight)
	off := st.sync.Offset()
	for i, c := range r.pool {
		pos := win.Start + i
		if pos >= win.End {
			c.hide()
			continue
		}
		x := float32(float64(pos)*st.sync.ItemWidth() - off)
		c.bind(st.seq.At(pos), x, w, h, pos == st.sync.Selected())
	}
	st.scheduleArrows()

	th := viewport.ScrollThumb(off, st.sync.ContainerWidth(), st.sync.Extent(), float64(size.Width), 24)
	r.thumb.Move(fyne.NewPos(float32(th.Offset), size.Height-thumbHeight))
	r.thumb.Resize(fyne.NewSize(float32(th.Width), thumbHeight))

	r.overlay.Move(fyne.NewPos(0, 0))
	r.overlay.Resize(size)
	if img := st.stripOverlayImage(int(size.Width), int(size.Height)); img != nil {
		r.overlay.Image = img
		r.overlay.Show()
	} else {
		r.overlay.Hide()
	}
}

func (r *filmstripRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, float32(r.f.state.cfg.StripHeight)+arrowBand)
}

func (r *filmstripRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *filmstripRenderer) Refresh() {
	r.Layout(r.f.Size())
	r.bg.Refresh()
	r.thumb.Refresh()
	r.overlay.Refresh()
}

// Dragged scrubs: the first event of a gesture starts the drag at the pointer's origin.
func (f *filmstrip) Dragged(ev *fyne.DragEvent) {
	s := f.state.sync
	if !s.Dragging() {
		s.DragStart(float64(ev.Position.X - ev.Dragged.DX))
	}
	s.DragMove(float64(ev.Position.X))
}

func (f *filmstrip) DragEnd() { f.state.sync.DragEnd() }

// Scrolled zooms with ctrl/cmd held and scrolls otherwise.
func (f *filmstrip) Scrolled(ev *fyne.ScrollEvent) {
	if f.state.stripZoom.Wheel(float64(-ev.Scrolled.DY), modifierHeld()) {
		return
	}
	delta := ev.Scrolled.DX
	if delta == 0 {
		delta = ev.Scrolled.DY
	}
	f.state.sync.ScrollBy(float64(-delta))
}

// Tapped selects the frame under the pointer, or jumps the scroll position when the scrollbar
// track is hit.
func (f *filmstrip) Tapped(ev *fyne.PointEvent) {
	st := f.state
	size := f.Size()
	if ev.Position.Y >= size.Height-2*thumbHeight {
		th := viewport.ScrollThumb(st.sync.Offset(), st.sync.ContainerWidth(), st.sync.Extent(), float64(size.Width), 24)
		st.sync.ScrollTo(viewport.OffsetForThumb(float64(ev.Position.X)-th.Width/2, st.sync.ContainerWidth(), st.sync.Extent(), float64(size.Width)))
		return
	}
	if ev.Position.Y > float32(st.cfg.StripHeight) {
		return
	}
	if pos := uihelpers.PositionAt(float64(ev.Position.X), st.sync.Offset(), st.sync.ItemWidth(), st.seq.Len()); pos >= 0 {
		st.selectIndex(pos)
	}
}

func (f *filmstrip) MouseIn(*desktop.MouseEvent)    {}
func (f *filmstrip) MouseMoved(*desktop.MouseEvent) {}

// MouseOut releases a scrub whose pointer left the strip.
func (f *filmstrip) MouseOut() { f.state.sync.DragEnd() }

func modifierHeld() bool {
	app := fyne.CurrentApp()
	if app == nil {
		return false
	}
	d, ok := app.Driver().(desktop.Driver)
	if !ok {
		return false
	}
	m := d.CurrentKeyModifiers()
	return m&(fyne.KeyModifierControl|fyne.KeyModifierSuper) != 0
}

var (
	_ fyne.Draggable    = (*filmstrip)(nil)
	_ fyne.Scrollable   = (*filmstrip)(nil)
	_ fyne.Tappable     = (*filmstrip)(nil)
	_ desktop.Hoverable = (*filmstrip)(nil)
)

// stripOverlayImage rasterizes the visible slice of the arrow overlay, or nil when not ready.
func (st *uiState) stripOverlayImage(w, h int) image.Image {
	ov := st.stripArrows.Output()
	if !ov.Ready || len(ov.Arrows) == 0 || w <= 0 || h <= 0 {
		return nil
	}
	img, err := render.RasterizeOverlay(ov, st.sync.Offset(), 0, w, h)
	if err != nil {
		return nil
	}
	return img
}

// stripMeasurer reports cell positions in strip content coordinates for the materialized window.
func stripMeasurer(itemWidth, height float64, win viewport.Window) viewport.StripMeasurer {
	return viewport.StripMeasurer{Layout: viewport.StripLayout{ItemWidth: itemWidth, Height: height}, Window: win}
}
