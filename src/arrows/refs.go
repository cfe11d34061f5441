package arrows

import (
	"fmt"

	"github.com/iafilius/FrameTimeline/src/types"
)

// Missing is shown in place of a reference that cannot be resolved.
const Missing = "-"

// ReferenceRow describes one reference slot of a frame for a details table.
type ReferenceRow struct {
	Slot        int
	Label       string
	TargetIndex int
	Present     bool
	TargetType  string
	TargetSize  string
}

// ReferenceRows lists rec's references in slot order. References to frames absent from seq are
// kept with Missing placeholders instead of failing the table.
func ReferenceRows(seq *types.Sequence, rec types.FrameRecord) []ReferenceRow {
	rows := make([]ReferenceRow, 0, len(rec.RefFrames))
	for slot, ref := range rec.RefFrames {
		row := ReferenceRow{
			Slot:        slot,
			Label:       SlotLabel(rec, slot),
			TargetIndex: ref,
			TargetType:  Missing,
			TargetSize:  Missing,
		}
		if pos, ok := seq.Lookup(ref); ok {
			target := seq.At(pos)
			row.Present = true
			row.TargetType = string(target.FrameType)
			row.TargetSize = fmt.Sprintf("%d", target.Size)
		}
		rows = append(rows, row)
	}
	return rows
}
