// Package graph holds the pure graph primitives: domain-to-pixel scales, line/area path strings,
// rolling-average smoothing and axis ticks. Nothing here depends on the virtualized timeline, so the
// same functions back the filmstrip overlay and standalone bitrate graphs.
package graph

// DataPoint is one graph input. Value (not Y) drives the vertical scale so callers can carry a
// display Y distinct from the plotted metric.
type DataPoint struct {
	X     float64
	Y     float64
	Value float64
}

// ScaleFunc maps a domain value to a pixel value.
type ScaleFunc func(float64) float64

// Padding is the pixel inset of the plot area.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// ScaleConfig describes the plot surface. XDomain / YDomain override the data-derived domains when set.
type ScaleConfig struct {
	Width   float64
	Height  float64
	Padding Padding
	XDomain *[2]float64
	YDomain *[2]float64
}

// Scales is the result of CalculateScales.
type Scales struct {
	XScale  ScaleFunc
	YScale  ScaleFunc
	XDomain [2]float64
	YDomain [2]float64
}

// LinearScale returns the affine map from domain to rng. A zero-width domain is treated as span 1.
func LinearScale(domain, rng [2]float64) ScaleFunc {
	span := domain[1] - domain[0]
	if span == 0 {
		span = 1
	}
	k := (rng[1] - rng[0]) / span
	d0, r0 := domain[0], rng[0]
	return func(v float64) float64 { return r0 + (v-d0)*k }
}

// Invert returns the inverse of LinearScale(domain, rng), mapping pixels back to domain values.
// A zero-width range maps everything to domain[0].
func Invert(domain, rng [2]float64) ScaleFunc {
	if rng[1] == rng[0] {
		d0 := domain[0]
		return func(float64) float64 { return d0 }
	}
	return LinearScale(rng, domain)
}

// CalculateScales derives x and y scales for data on the surface described by cfg.
// The y range is inverted: the domain minimum lands on the bottom of the plot area.
func CalculateScales(data []DataPoint, cfg ScaleConfig) Scales {
	xDomain, yDomain := dataDomains(data)
	if cfg.XDomain != nil {
		xDomain = *cfg.XDomain
	}
	if cfg.YDomain != nil {
		yDomain = *cfg.YDomain
	}
	p := cfg.Padding
	return Scales{
		XScale:  LinearScale(xDomain, [2]float64{p.Left, cfg.Width - p.Right}),
		YScale:  LinearScale(yDomain, [2]float64{cfg.Height - p.Bottom, p.Top}),
		XDomain: xDomain,
		YDomain: yDomain,
	}
}

// dataDomains computes [min,max] of X and of Value in one pass. Empty data yields [0,1] for both.
func dataDomains(data []DataPoint) (x, y [2]float64) {
	if len(data) == 0 {
		return [2]float64{0, 1}, [2]float64{0, 1}
	}
	x = [2]float64{data[0].X, data[0].X}
	y = [2]float64{data[0].Value, data[0].Value}
	for _, d := range data[1:] {
		if d.X < x[0] {
			x[0] = d.X
		}
		if d.X > x[1] {
			x[1] = d.X
		}
		if d.Value < y[0] {
			y[0] = d.Value
		}
		if d.Value > y[1] {
			y[1] = d.Value
		}
	}
	return x, y
}
