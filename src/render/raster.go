package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/FrameTimeline/src/arrows"
	"github.com/iafilius/FrameTimeline/src/graph"
	"github.com/iafilius/FrameTimeline/src/logging"
)

// ParseHexColor reads "#rrggbb"; anything else falls back to a neutral gray.
func ParseHexColor(s string) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// replayPath feeds parsed path data into a go-chart graphic context, shifted by (dx,dy).
func replayPath(gc *drawing.RasterGraphicContext, segs []graph.Segment, dx, dy float64) {
	for _, s := range segs {
		switch s.Cmd {
		case 'M':
			gc.MoveTo(s.Args[0]+dx, s.Args[1]+dy)
		case 'L':
			gc.LineTo(s.Args[0]+dx, s.Args[1]+dy)
		case 'Q':
			gc.QuadCurveTo(s.Args[0]+dx, s.Args[1]+dy, s.Args[2]+dx, s.Args[3]+dy)
		case 'Z':
			gc.Close()
		}
	}
}

// RasterizeOverlay draws the part of an overlay whose top-left corner is at (offsetX, offsetY) onto
// a transparent width x height image. Arrows whose path data cannot be parsed are skipped.
func RasterizeOverlay(ov arrows.Overlay, offsetX, offsetY float64, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rasterize overlay: invalid size %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if !ov.Ready || len(ov.Arrows) == 0 {
		return img, nil
	}
	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return nil, fmt.Errorf("rasterize overlay: %w", err)
	}
	face := basicfont.Face7x13
	for _, a := range ov.Arrows {
		segs, err := graph.ParsePath(a.PathData)
		if err != nil {
			logging.Debugf("render: arrow %d->%d: %v", a.SourceIndex, a.TargetIndex, err)
			continue
		}
		col := ParseHexColor(a.Color)
		gc.BeginPath()
		gc.SetStrokeColor(col)
		gc.SetLineWidth(1.5)
		replayPath(gc, segs, -offsetX, -offsetY)
		gc.Stroke()

		x := int(a.SourceX-offsetX) + 4
		if x < -100 || x > width {
			continue
		}
		y := int(a.LabelY-offsetY) + face.Metrics().Ascent.Ceil()/2
		dr := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face, Dot: fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}}
		dr.DrawString(a.Label)
	}
	return img, nil
}
