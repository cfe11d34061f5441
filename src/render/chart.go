package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/samber/lo"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/FrameTimeline/src/graph"
)

// ChartOptions configures RenderSeriesChart.
type ChartOptions struct {
	Title           string
	YName           string
	Width           int
	Height          int
	SmoothingWindow int
	// Selected marks a frame_index with a vertical line; negative disables it.
	Selected int
}

// Blank returns a white image, used where a chart cannot be drawn.
func Blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}

// RenderSeriesChart renders a series and its rolling average as a PNG-decoded image using go-chart.
// Empty data yields a blank image.
func RenderSeriesChart(data []graph.DataPoint, opts ChartOptions) (image.Image, error) {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 240
	}
	if len(data) == 0 {
		return Blank(opts.Width, opts.Height), nil
	}
	xs := make([]float64, len(data))
	ys := make([]float64, len(data))
	for i, p := range data {
		xs[i], ys[i] = p.X, p.Value
	}
	// go-chart needs two distinct x values
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0] + 1}
		ys = []float64{ys[0], ys[0]}
	}
	yMin, yMax := graph.NiceBounds(lo.Min(ys), lo.Max(ys))
	ticks := graph.BuildNumericTicks(yMin, yMax, 6)
	yTicks := make([]chart.Tick, len(ticks))
	for i, v := range ticks {
		yTicks[i] = chart.Tick{Value: v, Label: graph.FormatNumericTick(v)}
	}
	if len(ticks) > 0 {
		yMin, yMax = ticks[0], ticks[len(ticks)-1]
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    opts.YName,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: drawing.Color{R: 59, G: 130, B: 246, A: 255},
				FillColor:   drawing.Color{R: 59, G: 130, B: 246, A: 50},
				StrokeWidth: 1,
			},
		},
	}
	if opts.SmoothingWindow >= 2 {
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("avg(%d)", opts.SmoothingWindow),
			XValues: xs,
			YValues: graph.CalculateRollingAverage(ys, opts.SmoothingWindow),
			Style:   chart.Style{StrokeColor: drawing.Color{R: 245, G: 158, B: 11, A: 255}, StrokeWidth: 2},
		})
	}
	if opts.Selected >= 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "selected",
			XValues: []float64{float64(opts.Selected), float64(opts.Selected)},
			YValues: []float64{yMin, yMax},
			Style:   chart.Style{StrokeColor: drawing.Color{R: 239, G: 68, B: 68, A: 255}, StrokeWidth: 1},
		})
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "frame"},
		YAxis:      chart.YAxis{Name: opts.YName, Range: &chart.ContinuousRange{Min: yMin, Max: yMax}, Ticks: yTicks},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart %q: %w", opts.Title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart %q: %w", opts.Title, err)
	}
	return img, nil
}
