package uihelpers

import (
	"math"
	"strconv"
	"time"

	"github.com/iafilius/FrameTimeline/src/graph"
)

// ComputeChartDimensions applies width/height clamp rules used for the graph panel.
// Input: available canvas width. Returns clamped width & height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW*95/100 - 12
	if w < 640 {
		w = 640
	}
	h := int(float32(w) * 0.25)
	if h < 180 {
		h = 180
	}
	if h > 360 {
		h = 360
	}
	return w, h
}

// ComputeReferenceColumnWidths returns widths for the reference table (Slot, Target, Type, Size).
// Narrow windows drop the size column.
func ComputeReferenceColumnWidths(winW float32) [4]int {
	if winW < 700 {
		return [4]int{90, 70, 50, 0}
	}
	return [4]int{120, 90, 60, 90}
}

// ContainRect is where an image of imgW x imgH ends up when drawn with contain fill inside a
// viewW x viewH box: the drawn origin, size and scale factor.
func ContainRect(imgW, imgH, viewW, viewH float32) (x, y, w, h, scale float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, 0, 0, 1
	}
	scale = float32(math.Min(float64(viewW/imgW), float64(viewH/imgH)))
	w, h = imgW*scale, imgH*scale
	return (viewW - w) / 2, (viewH - h) / 2, w, h, scale
}

// Horizontal insets of the plot area inside a rendered chart image: the chart padding on the left,
// padding plus the y axis labels on the right.
const (
	ChartLeftInset  = 16
	ChartRightInset = 12 + 56
)

// ChartValueAt maps a pointer x over a chart image drawn with contain fill in a viewW x viewH box
// back to an x value, for a plot spanning [xMin, xMax]. ok is false off the plot area.
func ChartValueAt(pointerX, imgW, imgH, viewW, viewH float32, xMin, xMax float64) (float64, bool) {
	if imgW <= ChartLeftInset+ChartRightInset {
		return 0, false
	}
	drawX, _, w, _, scale := ContainRect(imgW, imgH, viewW, viewH)
	if w <= 0 {
		return 0, false
	}
	px := float64((pointerX - drawX) / scale)
	left, right := float64(ChartLeftInset), float64(imgW-ChartRightInset)
	if px < left || px > right {
		return 0, false
	}
	return graph.Invert([2]float64{xMin, xMax}, [2]float64{left, right})(px), true
}

// PositionAt maps a pointer x inside the strip to a sequence position, or -1 when it misses.
func PositionAt(pointerX, scrollOffset, itemWidth float64, itemCount int) int {
	if itemWidth <= 0 || itemCount <= 0 {
		return -1
	}
	p := int(math.Floor((pointerX + scrollOffset) / itemWidth))
	if p < 0 || p >= itemCount {
		return -1
	}
	return p
}

// ZoomedItemWidth scales the base cell width, never below 4px so cells stay clickable.
func ZoomedItemWidth(base, zoom float64) float64 {
	return math.Max(4, math.Round(base*zoom*100)/100)
}

// PlaybackInterval is the ticker period for playing at fps frames per second, clamped to 1-240 fps.
func PlaybackInterval(fps float64) time.Duration {
	if fps <= 0 || math.IsNaN(fps) {
		fps = 30
	}
	fps = math.Max(1, math.Min(240, fps))
	return time.Duration(float64(time.Second) / fps)
}

// CellLabel is the short text drawn in a filmstrip cell; wide cells also show the size in KiB.
func CellLabel(frameIndex int, frameType string, size int64, cellWidth float64) string {
	if cellWidth < 40 {
		return frameType
	}
	head := frameType + "\n" + strconv.Itoa(frameIndex)
	if cellWidth < 64 {
		return head
	}
	return head + "\n" + strconv.FormatFloat(float64(size)/1024, 'f', 1, 64) + "K"
}
