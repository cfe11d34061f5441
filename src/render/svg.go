// Package render turns overlay and graph geometry into SVG documents and raster images.
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/iafilius/FrameTimeline/src/arrows"
	"github.com/iafilius/FrameTimeline/src/graph"
)

const svgHeader = `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">` + "\n"

// OverlaySVG renders the arrow overlay. A not-ready overlay renders as an empty document of the
// same size, so hosts can swap it in without a layout jump.
func OverlaySVG(ov arrows.Overlay, height float64) string {
	var buf bytes.Buffer
	w, h := graph.FormatCoord(ov.SVGWidth), graph.FormatCoord(height)
	fmt.Fprintf(&buf, svgHeader, w, h, w, h)
	if ov.Ready {
		for _, a := range ov.Arrows {
			fmt.Fprintf(&buf, `  <path d="%s" stroke="%s" stroke-width="1.5" fill="none" data-source="%d" data-target="%d"/>`+"\n",
				a.PathData, a.Color, a.SourceIndex, a.TargetIndex)
			fmt.Fprintf(&buf, `  <text x="%s" y="%s" fill="%s" font-size="9" font-family="monospace" dominant-baseline="middle">%s</text>`+"\n",
				graph.FormatCoord(a.SourceX+4), graph.FormatCoord(a.LabelY), a.Color, html.EscapeString(a.Label))
		}
	}
	buf.WriteString("</svg>\n")
	return buf.String()
}

// GraphOptions configures GraphSVG.
type GraphOptions struct {
	Scale           graph.ScaleConfig
	SmoothingWindow int
	Stroke          string
	Fill            string
	TrendStroke     string
	Ticks           int
}

func (o GraphOptions) withDefaults() GraphOptions {
	if o.Stroke == "" {
		o.Stroke = "#3b82f6"
	}
	if o.Fill == "" {
		o.Fill = "rgba(59,130,246,0.2)"
	}
	if o.TrendStroke == "" {
		o.TrendStroke = "#f59e0b"
	}
	if o.Ticks <= 0 {
		o.Ticks = 5
	}
	return o
}

// GraphSVG draws an area + line graph of data with an optional rolling-average trend and y-axis
// tick labels. The y domain is widened to nice bounds unless the caller fixed it.
func GraphSVG(data []graph.DataPoint, opts GraphOptions) string {
	opts = opts.withDefaults()
	cfg := opts.Scale
	if cfg.YDomain == nil && len(data) > 0 {
		s := graph.CalculateScales(data, cfg)
		lo, hi := graph.NiceBounds(s.YDomain[0], s.YDomain[1])
		cfg.YDomain = &[2]float64{lo, hi}
	}
	sc := graph.CalculateScales(data, cfg)

	var buf bytes.Buffer
	w, h := graph.FormatCoord(cfg.Width), graph.FormatCoord(cfg.Height)
	fmt.Fprintf(&buf, svgHeader, w, h, w, h)

	left, right := cfg.Padding.Left, cfg.Width-cfg.Padding.Right
	for _, v := range graph.BuildNumericTicks(sc.YDomain[0], sc.YDomain[1], opts.Ticks) {
		y := graph.FormatCoord(sc.YScale(v))
		fmt.Fprintf(&buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#e5e7eb" stroke-width="1"/>`+"\n",
			graph.FormatCoord(left), y, graph.FormatCoord(right), y)
		fmt.Fprintf(&buf, `  <text x="%s" y="%s" font-size="10" text-anchor="end" dominant-baseline="middle">%s</text>`+"\n",
			graph.FormatCoord(left-4), y, html.EscapeString(graph.FormatNumericTick(v)))
	}
	if area := graph.GenerateAreaPath(data, sc.XScale, sc.YScale, cfg.Height, cfg.Padding.Bottom); area != "" {
		fmt.Fprintf(&buf, `  <path d="%s" fill="%s" stroke="none"/>`+"\n", area, opts.Fill)
	}
	if line := graph.GenerateLinePath(data, sc.XScale, sc.YScale); line != "" {
		fmt.Fprintf(&buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n", line, opts.Stroke)
	}
	if opts.SmoothingWindow >= 2 {
		trend := graph.SmoothPoints(data, opts.SmoothingWindow)
		if d := graph.GenerateLinePath(trend, sc.XScale, sc.YScale); d != "" {
			fmt.Fprintf(&buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n", d, opts.TrendStroke)
		}
	}
	buf.WriteString("</svg>\n")
	return buf.String()
}
