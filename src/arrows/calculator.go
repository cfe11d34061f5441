package arrows

import (
	"math"
	"time"

	"github.com/iafilius/FrameTimeline/src/logging"
	"github.com/iafilius/FrameTimeline/src/types"
)

// State of the cached arrow geometry.
type State int

const (
	Uncomputed State = iota
	Measuring
	Ready
)

func (s State) String() string {
	switch s {
	case Uncomputed:
		return "uncomputed"
	case Measuring:
		return "measuring"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// Ticket identifies one scheduled measurement pass. A ticket goes stale when the calculator is
// reset after it was issued.
type Ticket struct {
	gen uint64
}

// DefaultMargin is added past the rightmost arrow endpoint when sizing the overlay.
const DefaultMargin = 40.0

// Options tune a Calculator.
type Options struct {
	// ResetOnResize drops cached arrows on container resize. Layouts whose cell positions depend
	// on the container width need it; fixed-width strips do not.
	ResetOnResize bool
	// Margin past the rightmost arrow; 0 means DefaultMargin.
	Margin float64
}

// Calculator owns the arrow overlay of one view.
//
// Protocol: the host calls RequestMeasurement once the frames it wants measured are rendered. If
// asked to, it schedules a pass (usually after a short delay) that calls Measure with the ticket.
// Requests made while a pass is pending share that pass. Not safe for concurrent use.
type Calculator struct {
	path PathCalculator
	opts Options

	seq     *types.Sequence
	enabled bool
	state   State
	gen     uint64

	arrows         []ArrowDescriptor
	maxX           float64
	containerWidth float64
	contentWidth   float64
}

// NewCalculator returns an enabled calculator drawing arrows with path.
func NewCalculator(path PathCalculator, opts Options) *Calculator {
	if path == nil {
		path = FilmstripCurve{}
	}
	if opts.Margin <= 0 {
		opts.Margin = DefaultMargin
	}
	return &Calculator{path: path, opts: opts, enabled: true}
}

func (c *Calculator) State() State  { return c.state }
func (c *Calculator) Enabled() bool { return c.enabled }

func (c *Calculator) reset(reason string) {
	c.gen++
	if c.state != Uncomputed {
		logging.Debugf("arrows: reset (%s) from %s", reason, c.state)
	}
	c.state = Uncomputed
	c.arrows = nil
	c.maxX = 0
}

// SetSequence points the calculator at seq. A different sequence drops cached geometry and any
// pending pass; the same pointer is a no-op.
func (c *Calculator) SetSequence(seq *types.Sequence) {
	if seq == c.seq {
		return
	}
	c.seq = seq
	c.reset("sequence changed")
}

// SetEnabled toggles the overlay. Any change drops cached geometry.
func (c *Calculator) SetEnabled(on bool) {
	if on == c.enabled {
		return
	}
	c.enabled = on
	c.reset("enabled changed")
}

// Cancel abandons a pending pass and cached output, e.g. on teardown.
func (c *Calculator) Cancel() { c.reset("cancelled") }

// RequestMeasurement asks for arrows to be computed. It returns the ticket of the pending pass and
// whether the caller has to schedule it; false means there is nothing to do or a pass with the
// same ticket is already scheduled.
func (c *Calculator) RequestMeasurement() (Ticket, bool) {
	if !c.enabled || c.seq.Len() == 0 {
		return Ticket{}, false
	}
	switch c.state {
	case Measuring:
		return Ticket{gen: c.gen}, false
	case Ready:
		return Ticket{}, false
	}
	c.state = Measuring
	return Ticket{gen: c.gen}, true
}

// Measure runs the pass for ticket t. It returns false and changes nothing when t is stale.
func (c *Calculator) Measure(t Ticket, m Measurer) bool {
	if c.state != Measuring || t.gen != c.gen {
		logging.Debugf("arrows: dropping stale measurement pass (ticket %d, current %d, %s)", t.gen, c.gen, c.state)
		return false
	}
	defer logging.TimeTrack(time.Now(), "arrows: measurement")

	n := c.seq.Len()
	pos := make([]types.ScreenPosition, n)
	measured := make([]bool, n)
	for i := 0; i < n; i++ {
		pos[i], measured[i] = m.Measure(i)
	}

	var out []ArrowDescriptor
	maxX := 0.0
	skipped := 0
	for i := 0; i < n; i++ {
		rec := c.seq.At(i)
		if len(rec.RefFrames) == 0 {
			continue
		}
		if !measured[i] {
			skipped += len(rec.RefFrames)
			continue
		}
		src := pos[i]
		for slot, ref := range rec.RefFrames {
			j, ok := c.seq.Lookup(ref)
			if !ok {
				logging.Debugf("arrows: frame %d slot %d references missing frame %d", rec.FrameIndex, slot, ref)
				skipped++
				continue
			}
			if !measured[j] {
				skipped++
				continue
			}
			dst := pos[j]
			sourceY := src.Bottom
			out = append(out, ArrowDescriptor{
				SourceIndex: rec.FrameIndex,
				TargetIndex: ref,
				SlotIndex:   slot,
				Label:       SlotLabel(rec, slot),
				Color:       SlotColor(slot),
				PathData:    c.path.ComputeArrowPath(src, dst, rec, c.seq.At(j), slot),
				SourceX:     src.CenterX,
				SourceY:     sourceY,
				LabelY:      sourceY + slotDip(slot)/2,
			})
			maxX = math.Max(maxX, math.Max(src.CenterX, dst.CenterX))
		}
	}
	if skipped > 0 {
		logging.Debugf("arrows: skipped %d arrows with unmeasured or missing endpoints", skipped)
	}
	c.arrows = out
	c.maxX = maxX
	c.state = Ready
	return true
}

// Resize records new container and content widths. Cached arrows are kept unless
// Options.ResetOnResize is set; the overlay width is refreshed either way.
func (c *Calculator) Resize(containerWidth, contentWidth float64) {
	changed := containerWidth != c.containerWidth
	c.containerWidth = containerWidth
	c.contentWidth = contentWidth
	if changed && c.opts.ResetOnResize && c.state != Uncomputed {
		c.reset("container resized")
	}
}

// SVGWidth is the width the overlay surface needs to cover every arrow, not just visible ones.
func (c *Calculator) SVGWidth() float64 {
	w := math.Max(c.containerWidth, c.contentWidth)
	if len(c.arrows) > 0 {
		w = math.Max(w, c.maxX+c.opts.Margin)
	}
	return w
}

// Output returns the cached overlay. Arrows is shared with the calculator and must not be modified.
func (c *Calculator) Output() Overlay {
	if !c.enabled || c.state != Ready {
		return Overlay{SVGWidth: c.SVGWidth()}
	}
	return Overlay{Arrows: c.arrows, SVGWidth: c.SVGWidth(), Ready: true}
}
