package graph

import (
	"math"
	"strconv"
)

// tickSteps are the mantissas tried for tick spacing, scaled by a power of ten.
var tickSteps = []float64{1, 2, 2.5, 5, 10}

// NiceBounds widens [min,max] by 5% on each side and rounds outward to the span's order of magnitude.
// A degenerate range is widened to span 1 first.
func NiceBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return 0, 1
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	lo := min - span*0.05
	hi := max + span*0.05
	mag := pow10Floor(span)
	return math.Floor(lo/mag) * mag, math.Ceil(hi/mag) * mag
}

// BuildNumericTicks returns roughly n tick values covering [min,max] at a 1/2/2.5/5 x 10^k spacing.
// Returns nil for n < 2 or NaN bounds.
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := pow10Floor(span / float64(n-1))
	step := mag
	best := math.MaxFloat64
	for _, c := range tickSteps {
		s := c * mag
		count := math.Max(2, math.Ceil(span/s)+1)
		if d := math.Abs(count - float64(n)); d < best {
			best = d
			step = s
		}
	}
	start := math.Floor(min/step) * step
	end := math.Ceil(max/step) * step
	var out []float64
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v > end+step*0.5 {
			break
		}
		out = append(out, round6(v))
	}
	return out
}

// FormatNumericTick prints a compact label with precision shrinking as magnitude grows.
func FormatNumericTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av == 0:
		return "0"
	default:
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
}

// FormatBytes prints a byte count using binary units, as frame sizes are shown.
func FormatBytes(v float64) string {
	switch av := math.Abs(v); {
	case av >= 1<<20:
		return strconv.FormatFloat(v/(1<<20), 'f', 1, 64) + " MiB"
	case av >= 1<<10:
		return strconv.FormatFloat(v/(1<<10), 'f', 1, 64) + " KiB"
	default:
		return strconv.FormatInt(int64(v), 10) + " B"
	}
}

// pow10Floor returns 10^floor(log10(x)), or 1 for non-positive x.
func pow10Floor(x float64) float64 {
	if x <= 0 || math.IsInf(x, 0) {
		return 1
	}
	return math.Pow(10, math.Floor(math.Log10(x)))
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
