package arrows

import (
	"math"

	"github.com/iafilius/FrameTimeline/src/graph"
	"github.com/iafilius/FrameTimeline/src/types"
)

// PathCalculator draws the arrow from a dependent frame (src) to the frame it references (dst).
// Different views supply different shapes for the same resolved endpoints.
type PathCalculator interface {
	ComputeArrowPath(src, dst types.ScreenPosition, srcRec, dstRec types.FrameRecord, slot int) string
}

// PathFunc adapts a function to PathCalculator.
type PathFunc func(src, dst types.ScreenPosition, srcRec, dstRec types.FrameRecord, slot int) string

func (f PathFunc) ComputeArrowPath(src, dst types.ScreenPosition, srcRec, dstRec types.FrameRecord, slot int) string {
	return f(src, dst, srcRec, dstRec, slot)
}

const defaultHead = 6.0

// arrowHead appends a two-stroke head at (x,y) pointing along angle a.
func arrowHead(p *graph.Path, x, y, a, size float64) {
	const spread = math.Pi / 7
	p.MoveTo(x-size*math.Cos(a-spread), y-size*math.Sin(a-spread))
	p.LineTo(x, y)
	p.LineTo(x-size*math.Cos(a+spread), y-size*math.Sin(a+spread))
}

// FilmstripCurve hangs a quadratic curve below the strip, between the bottoms of both cells. Each
// slot dips further so parallel references stay apart.
type FilmstripCurve struct {
	HeadSize float64
}

func (f FilmstripCurve) ComputeArrowPath(src, dst types.ScreenPosition, _, _ types.FrameRecord, slot int) string {
	head := f.HeadSize
	if head <= 0 {
		head = defaultHead
	}
	sx, sy := src.CenterX, src.Bottom
	dx, dy := dst.CenterX, dst.Bottom
	cx := (sx + dx) / 2
	cy := math.Max(sy, dy) + slotDip(slot)
	var p graph.Path
	p.MoveTo(sx, sy)
	p.QuadTo(cx, cy, dx, dy)
	arrowHead(&p, dx, dy, math.Atan2(dy-cy, dx-cx), head)
	return p.String()
}

// PyramidElbow routes a right-angled connector between cells on different pyramid rows. Lanes are
// offset per slot.
type PyramidElbow struct {
	HeadSize float64
	Lane     float64
}

func (e PyramidElbow) ComputeArrowPath(src, dst types.ScreenPosition, _, _ types.FrameRecord, slot int) string {
	head := e.HeadSize
	if head <= 0 {
		head = defaultHead
	}
	lane := e.Lane
	if lane <= 0 {
		lane = 4
	}
	var sy, ey, midY float64
	switch {
	case dst.Bottom <= src.Top: // reference sits on a higher row
		sy, ey = src.Top, dst.Bottom
		midY = (sy+ey)/2 + float64(slot)*lane
	case dst.Top >= src.Bottom: // lower row
		sy, ey = src.Bottom, dst.Top
		midY = (sy+ey)/2 - float64(slot)*lane
	default: // same row: go over the top
		sy, ey = src.Top, dst.Top
		midY = math.Min(sy, ey) - 10 - float64(slot)*lane
	}
	var p graph.Path
	p.MoveTo(src.CenterX, sy)
	p.LineTo(src.CenterX, midY)
	p.LineTo(dst.CenterX, midY)
	p.LineTo(dst.CenterX, ey)
	a := math.Pi / 2
	if ey < midY {
		a = -math.Pi / 2
	}
	arrowHead(&p, dst.CenterX, ey, a, head)
	return p.String()
}

// StyleByName maps a configured arrow style to a PathCalculator. Unknown names get the curve.
func StyleByName(name string) PathCalculator {
	switch name {
	case "elbow", "pyramid":
		return PyramidElbow{}
	}
	return FilmstripCurve{}
}
