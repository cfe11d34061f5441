// Command framereader inspects a frame dump without a GUI: it prints a summary, the virtualized
// window and reference arrows for a given scroll position, and can write the overlay and graphs.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/iafilius/FrameTimeline/src/analysis"
	"github.com/iafilius/FrameTimeline/src/arrows"
	"github.com/iafilius/FrameTimeline/src/config"
	"github.com/iafilius/FrameTimeline/src/graph"
	"github.com/iafilius/FrameTimeline/src/logging"
	"github.com/iafilius/FrameTimeline/src/render"
	"github.com/iafilius/FrameTimeline/src/types"
	"github.com/iafilius/FrameTimeline/src/viewport"
)

type options struct {
	file       string
	configPath string
	envFile    string
	logLevel   string
	width      float64
	index      int
	scroll     float64
	overscan   int
	style      string
	fps        float64
	overlayOut string
	graphOut   string
	pngOut     string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("framereader", flag.ContinueOnError)
	var o options
	fs.StringVar(&o.file, "file", "frames.jsonl", "Path to frame dump (JSONL, one frame per line)")
	fs.StringVar(&o.configPath, "config", "", "Optional YAML config file")
	fs.StringVar(&o.envFile, "env", ".env", "Optional .env file with FRAMETIMELINE_* overrides")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level (debug|info|warn|error); overrides config")
	fs.Float64Var(&o.width, "width", 1280, "Viewport width in pixels")
	fs.IntVar(&o.index, "index", 0, "Selected frame position; the strip is centered on it")
	fs.Float64Var(&o.scroll, "scroll", -1, "Explicit scroll offset in pixels (overrides centering when >= 0)")
	fs.IntVar(&o.overscan, "overscan", -1, "Overscan items per side; overrides config when >= 0")
	fs.StringVar(&o.style, "style", "", "Arrow style (curve|elbow); overrides config")
	fs.Float64Var(&o.fps, "fps", 30, "Frame rate used for the bitrate series")
	fs.StringVar(&o.overlayOut, "svg", "", "Write the arrow overlay for the window as SVG")
	fs.StringVar(&o.graphOut, "graph-svg", "", "Write the frame size graph as SVG")
	fs.StringVar(&o.pngOut, "png", "", "Write the frame size chart as PNG")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	applied, err := cfg.ApplyEnv(o.envFile)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.overscan >= 0 {
		cfg.Overscan = o.overscan
	}
	if o.style != "" {
		cfg.Arrows.Style = o.style
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.SetLogLevel(cfg.LogLevel)
	if len(applied) > 0 {
		logging.Debugf("[framereader] env overrides: %v", applied)
	}

	seq, err := analysis.LoadFrames(o.file)
	if err != nil {
		return err
	}
	printSummary(out, analysis.Summarize(seq))
	if seq.Len() == 0 {
		return nil
	}

	sync := viewport.NewSynchronizer(cfg.ItemWidth, o.width, seq.Len())
	sync.SetSelectedIndex(o.index)
	if o.scroll >= 0 {
		sync.ScrollTo(o.scroll)
	}
	win := sync.Window(cfg.Overscan)
	fmt.Fprintf(out, "Viewport: offset=%s extent=%s window=[%d,%d) (%d of %d frames)\n",
		graph.FormatCoord(sync.Offset()), graph.FormatCoord(sync.Extent()), win.Start, win.End, win.Len(), seq.Len())

	sel := seq.At(sync.Selected())
	fmt.Fprintf(out, "Selected: #%d %s %s\n", sel.FrameIndex, sel.FrameType, graph.FormatBytes(float64(sel.Size)))
	for _, r := range arrows.ReferenceRows(seq, sel) {
		fmt.Fprintf(out, "  %-8s -> %-6d type=%-3s size=%s\n", r.Label, r.TargetIndex, r.TargetType, r.TargetSize)
	}

	overlay := computeOverlay(cfg, seq, win, o.width, sync.Extent())
	fmt.Fprintf(out, "Arrows: %d (overlay width %s)\n", len(overlay.Arrows), graph.FormatCoord(overlay.SVGWidth))

	if o.overlayOut != "" {
		if err := os.WriteFile(o.overlayOut, []byte(render.OverlaySVG(overlay, cfg.StripHeight+80)), 0o644); err != nil {
			return fmt.Errorf("write overlay: %w", err)
		}
	}
	sizes := analysis.SizeSeries(seq)
	if o.graphOut != "" {
		svg := render.GraphSVG(sizes, render.GraphOptions{Scale: cfg.ScaleConfig(), SmoothingWindow: cfg.Graph.SmoothingWindow})
		if err := os.WriteFile(o.graphOut, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("write graph: %w", err)
		}
	}
	if o.pngOut != "" {
		if err := writeChart(o.pngOut, sizes, cfg, sel.FrameIndex); err != nil {
			return err
		}
	}
	if rates := analysis.BitrateSeries(seq, o.fps); len(rates) > 0 {
		fmt.Fprintf(out, "Bitrate at selection: %s kbit/s\n", graph.FormatNumericTick(rates[sync.Selected()].Value))
	}
	return nil
}

// computeOverlay runs the two-phase arrow protocol synchronously against the strip layout of the
// current window.
func computeOverlay(cfg config.Config, seq *types.Sequence, win viewport.Window, containerWidth, contentWidth float64) arrows.Overlay {
	calc := arrows.NewCalculator(arrows.StyleByName(cfg.Arrows.Style), arrows.Options{})
	calc.SetEnabled(cfg.Arrows.Enabled)
	calc.SetSequence(seq)
	calc.Resize(containerWidth, contentWidth)
	ticket, ok := calc.RequestMeasurement()
	if ok {
		m := viewport.StripMeasurer{Layout: viewport.StripLayout{ItemWidth: cfg.ItemWidth, Height: cfg.StripHeight}, Window: win}
		calc.Measure(ticket, m)
	}
	return calc.Output()
}

func writeChart(path string, sizes []graph.DataPoint, cfg config.Config, selected int) error {
	img, err := render.RenderSeriesChart(sizes, render.ChartOptions{
		Title:           "Frame size",
		YName:           "bytes",
		Width:           int(cfg.Graph.Width),
		Height:          int(cfg.Graph.Height) + 80,
		SmoothingWindow: cfg.Graph.SmoothingWindow,
		Selected:        selected,
	})
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func printSummary(out io.Writer, s analysis.Summary) {
	fmt.Fprintf(out, "Frames: %d  Total: %s\n", s.Frames, graph.FormatBytes(float64(s.TotalBytes)))
	for _, ts := range s.Types {
		fmt.Fprintf(out, "  %-4s count=%-6d avg=%-10s max=%s\n", ts.Type, ts.Count, graph.FormatBytes(ts.AvgSize), graph.FormatBytes(float64(ts.MaxSize)))
	}
	if len(s.GOPLengths) > 0 {
		fmt.Fprintf(out, "GOPs: %d  avg=%.1f  max=%d\n", len(s.GOPLengths), s.AvgGOP, s.MaxGOP)
	}
	if s.MissingRefs > 0 {
		fmt.Fprintf(out, "Missing references: %d\n", s.MissingRefs)
	}
}
