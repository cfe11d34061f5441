package analysis

import (
	"sort"

	"github.com/samber/lo"

	"github.com/iafilius/FrameTimeline/src/graph"
	"github.com/iafilius/FrameTimeline/src/types"
)

// TypeStats aggregates frames of one type.
type TypeStats struct {
	Type       types.FrameType
	Count      int
	TotalBytes int64
	AvgSize    float64
	MaxSize    int64
}

// Summary describes a whole sequence.
type Summary struct {
	Frames      int
	TotalBytes  int64
	Types       []TypeStats // sorted by type name
	GOPLengths  []int       // frames from each key frame up to the next
	AvgGOP      float64
	MaxGOP      int
	MissingRefs int // references to frames absent from the sequence
}

// Summarize computes per-type statistics and GOP lengths.
func Summarize(seq *types.Sequence) Summary {
	frames := seq.Frames()
	s := Summary{Frames: len(frames)}
	if len(frames) == 0 {
		return s
	}
	s.TotalBytes = lo.SumBy(frames, func(f types.FrameRecord) int64 { return f.Size })

	groups := lo.GroupBy(frames, func(f types.FrameRecord) types.FrameType { return f.FrameType })
	for t, group := range groups {
		total := lo.SumBy(group, func(f types.FrameRecord) int64 { return f.Size })
		largest := lo.MaxBy(group, func(a, b types.FrameRecord) bool { return a.Size > b.Size })
		s.Types = append(s.Types, TypeStats{
			Type:       t,
			Count:      len(group),
			TotalBytes: total,
			AvgSize:    float64(total) / float64(len(group)),
			MaxSize:    largest.Size,
		})
	}
	sort.Slice(s.Types, func(i, j int) bool { return s.Types[i].Type < s.Types[j].Type })

	start := -1
	for i, f := range frames {
		if !f.FrameType.IsKey() {
			continue
		}
		if start >= 0 {
			s.GOPLengths = append(s.GOPLengths, i-start)
		}
		start = i
	}
	if start >= 0 {
		s.GOPLengths = append(s.GOPLengths, len(frames)-start)
	}
	if len(s.GOPLengths) > 0 {
		s.AvgGOP = float64(lo.Sum(s.GOPLengths)) / float64(len(s.GOPLengths))
		s.MaxGOP = lo.Max(s.GOPLengths)
	}

	s.MissingRefs = lo.SumBy(frames, func(f types.FrameRecord) int {
		return lo.CountBy(f.RefFrames, func(ref int) bool {
			_, ok := seq.Lookup(ref)
			return !ok
		})
	})
	return s
}

// Stats returns the statistics for frame type t, if present.
func (s Summary) Stats(t types.FrameType) (TypeStats, bool) {
	return lo.Find(s.Types, func(ts TypeStats) bool { return ts.Type == t })
}

// SizeSeries maps each frame to (frame_index, size).
func SizeSeries(seq *types.Sequence) []graph.DataPoint {
	return lo.Map(seq.Frames(), func(f types.FrameRecord, _ int) graph.DataPoint {
		v := float64(f.Size)
		return graph.DataPoint{X: float64(f.FrameIndex), Y: v, Value: v}
	})
}

// BitrateSeries is the bitrate in kbit/s over the trailing second (fps frames) ending at each
// frame. The first frames average over what is available. fps <= 0 yields nil.
func BitrateSeries(seq *types.Sequence, fps float64) []graph.DataPoint {
	frames := seq.Frames()
	if fps <= 0 || len(frames) == 0 {
		return nil
	}
	span := int(fps + 0.5)
	if span < 1 {
		span = 1
	}
	out := make([]graph.DataPoint, len(frames))
	var sum int64
	for i, f := range frames {
		sum += f.Size
		if i >= span {
			sum -= frames[i-span].Size
		}
		n := lo.Min([]int{i + 1, span})
		kbps := float64(sum) * 8 / (float64(n) / fps) / 1000
		out[i] = graph.DataPoint{X: float64(f.FrameIndex), Y: kbps, Value: kbps}
	}
	return out
}
