// Package viewport virtualizes the frame strip: it decides which records are materialized for a
// scroll offset, keeps the selected frame and the scroll offset in step, and tracks pan/zoom.
package viewport

import "math"

// Window is the half-open range [Start, End) of sequence positions to materialize.
type Window struct {
	Start int
	End   int
}

// Len returns the number of materialized positions.
func (w Window) Len() int { return w.End - w.Start }

// Contains reports whether pos is materialized.
func (w Window) Contains(pos int) bool { return pos >= w.Start && pos < w.End }

// ComputeWindow returns the positions covering [scrollOffset, scrollOffset+containerWidth) plus
// overscan items on both sides. O(1); empty or zero-width input yields {0,0}.
func ComputeWindow(scrollOffset, itemWidth, containerWidth float64, itemCount, overscan int) Window {
	if itemCount <= 0 || itemWidth <= 0 || math.IsNaN(scrollOffset) {
		return Window{}
	}
	if overscan < 0 {
		overscan = 0
	}
	if containerWidth < 0 {
		containerWidth = 0
	}
	// Bounds are clamped as floats; converting huge or infinite offsets to int would overflow.
	startF := math.Floor(scrollOffset/itemWidth) - float64(overscan)
	endF := math.Ceil((scrollOffset+containerWidth)/itemWidth) + float64(overscan)
	if math.IsNaN(startF) || math.IsNaN(endF) {
		return Window{}
	}
	n := float64(itemCount)
	start := int(math.Max(0, math.Min(startF, n)))
	end := int(math.Max(0, math.Min(endF, n)))
	if start > end {
		start = end
	}
	return Window{Start: start, End: end}
}

// Extent is the total pixel width of the full sequence. Windowing never changes it.
func Extent(itemCount int, itemWidth float64) float64 {
	if itemCount <= 0 || itemWidth <= 0 {
		return 0
	}
	return float64(itemCount) * itemWidth
}

// Thumb is scrollbar thumb geometry inside a track.
type Thumb struct {
	Offset float64
	Width  float64
}

// ScrollThumb sizes the thumb as containerWidth/extent of the track and places it at
// scrollOffset/extent. Content that fits the container fills the track.
func ScrollThumb(scrollOffset, containerWidth, extent, trackWidth, minWidth float64) Thumb {
	if trackWidth <= 0 {
		return Thumb{}
	}
	if extent <= containerWidth || extent <= 0 {
		return Thumb{Offset: 0, Width: trackWidth}
	}
	w := trackWidth * containerWidth / extent
	if w < minWidth {
		w = minWidth
	}
	if w > trackWidth {
		w = trackWidth
	}
	off := trackWidth * scrollOffset / extent
	if off > trackWidth-w {
		off = trackWidth - w
	}
	if off < 0 {
		off = 0
	}
	return Thumb{Offset: off, Width: w}
}

// OffsetForThumb maps a thumb position back to a scroll offset, the inverse of ScrollThumb for a
// thumb dragged along the track.
func OffsetForThumb(thumbOffset, containerWidth, extent, trackWidth float64) float64 {
	if trackWidth <= 0 || extent <= containerWidth {
		return 0
	}
	off := thumbOffset * extent / trackWidth
	return math.Max(0, math.Min(off, extent-containerWidth))
}
