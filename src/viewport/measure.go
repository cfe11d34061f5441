package viewport

import "github.com/iafilius/FrameTimeline/src/types"

// StripLayout is a single-row filmstrip of fixed-width cells starting at x=0.
type StripLayout struct {
	ItemWidth float64
	Top       float64
	Height    float64
}

// Position is where the cell for sequence position pos is laid out, in content coordinates.
func (l StripLayout) Position(pos int) types.ScreenPosition {
	return types.ScreenPosition{
		CenterX: float64(pos)*l.ItemWidth + l.ItemWidth/2,
		Top:     l.Top,
		Bottom:  l.Top + l.Height,
	}
}

// StripMeasurer reports positions of the materialized cells only, like reading the laid-out
// elements of a virtualized list.
type StripMeasurer struct {
	Layout StripLayout
	Window Window
}

func (m StripMeasurer) Measure(pos int) (types.ScreenPosition, bool) {
	if !m.Window.Contains(pos) {
		return types.ScreenPosition{}, false
	}
	return m.Layout.Position(pos), true
}

// TypeLevel is the pyramid row of a frame type: key frames on top, then P, then B, then anything else.
func TypeLevel(t types.FrameType) int {
	switch {
	case t.IsKey():
		return 0
	case t == types.FrameTypeP:
		return 1
	case t == types.FrameTypeB:
		return 2
	}
	return 3
}

// LayeredMeasurer lays frames out as a pyramid: one column per position, one row per TypeLevel.
type LayeredMeasurer struct {
	Seq        *types.Sequence
	ItemWidth  float64
	RowHeight  float64
	CellHeight float64
	Window     Window
}

func (m LayeredMeasurer) Measure(pos int) (types.ScreenPosition, bool) {
	if pos < 0 || pos >= m.Seq.Len() || !m.Window.Contains(pos) {
		return types.ScreenPosition{}, false
	}
	top := float64(TypeLevel(m.Seq.At(pos).FrameType)) * m.RowHeight
	return types.ScreenPosition{
		CenterX: float64(pos)*m.ItemWidth + m.ItemWidth/2,
		Top:     top,
		Bottom:  top + m.CellHeight,
	}, true
}
