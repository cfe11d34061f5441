// Package arrows turns each frame's reference list into arrow geometry for an overlay drawn on top
// of the filmstrip or the pyramid diagram.
//
// Geometry depends on where the host laid frames out, so it is computed in one deferred
// measurement pass and cached. Scrolling never recomputes it; a new sequence, an enable toggle or
// (optionally) a resize does.
package arrows

import (
	"fmt"

	"github.com/iafilius/FrameTimeline/src/types"
)

// ArrowDescriptor is one drawable reference arrow. Indices are frame_index values, not positions.
type ArrowDescriptor struct {
	SourceIndex int
	TargetIndex int
	SlotIndex   int
	Label       string
	Color       string
	PathData    string
	SourceX     float64
	SourceY     float64
	LabelY      float64
}

// Overlay is everything an overlay renderer needs. Nothing should be drawn until Ready.
type Overlay struct {
	Arrows   []ArrowDescriptor
	SVGWidth float64
	Ready    bool
}

// Measurer reports the laid-out position of the frame at a sequence position. ok is false when
// that frame is not materialized.
type Measurer interface {
	Measure(pos int) (types.ScreenPosition, bool)
}

// labelBase and labelStep stack per-slot labels below the source frame.
const (
	labelBase = 30.0
	labelStep = 12.0
)

// slotDip is the vertical room reserved for a slot: its label sits halfway down it.
func slotDip(slot int) float64 { return labelBase + float64(slot)*labelStep }

var slotColors = []string{"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6", "#ec4899", "#14b8a6", "#f97316"}

// SlotColor is the stroke color used for reference slot slot.
func SlotColor(slot int) string {
	if slot < 0 {
		slot = -slot
	}
	return slotColors[slot%len(slotColors)]
}

// SlotLabel names reference slot slot of rec: the decoder's slot name when present, then the
// DPB slot number, then the bare slot position.
func SlotLabel(rec types.FrameRecord, slot int) string {
	if slot >= 0 && slot < len(rec.RefSlotInfo) && rec.RefSlotInfo[slot].Name != "" {
		return rec.RefSlotInfo[slot].Name
	}
	if slot >= 0 && slot < len(rec.RefSlots) {
		return fmt.Sprintf("SLOT%d", rec.RefSlots[slot])
	}
	return fmt.Sprintf("REF%d", slot)
}
