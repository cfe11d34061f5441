package graph

// CalculateRollingAverage smooths values with a centered moving mean. Index i averages the slice
// [i-floor(window/2), i+ceil(window/2)) clamped to the array, so edges use a smaller asymmetric
// window and the output always has the input's length. Windows below 2 return values unchanged.
func CalculateRollingAverage(values []float64, window int) []float64 {
	if window < 2 {
		return values
	}
	n := len(values)
	out := make([]float64, n)
	// prefix sums keep each mean O(1)
	prefix := make([]float64, n+1)
	for i, v := range values {
		prefix[i+1] = prefix[i] + v
	}
	half := window / 2
	rest := window - half
	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + rest
		if hi > n {
			hi = n
		}
		out[i] = (prefix[hi] - prefix[lo]) / float64(hi-lo)
	}
	return out
}

// SmoothPoints applies CalculateRollingAverage to the Value of each point, keeping X and Y.
func SmoothPoints(data []DataPoint, window int) []DataPoint {
	if window < 2 {
		return data
	}
	vals := make([]float64, len(data))
	for i, d := range data {
		vals[i] = d.Value
	}
	sm := CalculateRollingAverage(vals, window)
	out := make([]DataPoint, len(data))
	for i, d := range data {
		d.Value = sm[i]
		out[i] = d
	}
	return out
}
