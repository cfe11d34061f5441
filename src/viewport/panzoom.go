package viewport

import "math"

// ZoomConfig bounds a pan/zoom surface.
type ZoomConfig struct {
	Min  float64
	Max  float64
	Step float64
	// RequireModifier makes wheel events zoom only while a modifier (ctrl/cmd) is held, leaving
	// the plain wheel for scrolling.
	RequireModifier bool
}

// DefaultZoomConfig is 0.25x-4x in 0.25 steps, modifier required.
func DefaultZoomConfig() ZoomConfig {
	return ZoomConfig{Min: 0.25, Max: 4, Step: 0.25, RequireModifier: true}
}

func (c ZoomConfig) sanitized() ZoomConfig {
	d := DefaultZoomConfig()
	if c.Min <= 0 {
		c.Min = d.Min
	}
	if c.Max <= 0 {
		c.Max = d.Max
	}
	if c.Max < c.Min {
		c.Min, c.Max = c.Max, c.Min
	}
	if c.Step <= 0 {
		c.Step = d.Step
	}
	return c
}

// PanZoom is the interaction state of a zoomable, draggable surface (e.g. the pyramid diagram).
type PanZoom struct {
	cfg      ZoomConfig
	zoom     float64
	panX     float64
	panY     float64
	dragging bool
	lastX    float64
	lastY    float64

	// OnChange is called after zoom or pan changes.
	OnChange func(zoom, panX, panY float64)
}

// NewPanZoom starts at zoom 1 (clamped into the configured bounds) with no pan.
func NewPanZoom(cfg ZoomConfig) *PanZoom {
	cfg = cfg.sanitized()
	return &PanZoom{cfg: cfg, zoom: clampZoom(1, cfg)}
}

func clampZoom(z float64, cfg ZoomConfig) float64 { return math.Max(cfg.Min, math.Min(cfg.Max, z)) }

func (p *PanZoom) Zoom() float64           { return p.zoom }
func (p *PanZoom) Pan() (float64, float64) { return p.panX, p.panY }
func (p *PanZoom) IsDragging() bool        { return p.dragging }
func (p *PanZoom) Config() ZoomConfig      { return p.cfg }

func (p *PanZoom) changed() {
	if p.OnChange != nil {
		p.OnChange(p.zoom, p.panX, p.panY)
	}
}

// SetZoom clamps and applies z, reporting whether the zoom changed.
func (p *PanZoom) SetZoom(z float64) bool {
	if math.IsNaN(z) {
		return false
	}
	z = clampZoom(z, p.cfg)
	if z == p.zoom {
		return false
	}
	p.zoom = z
	p.changed()
	return true
}

func (p *PanZoom) ZoomIn() bool  { return p.SetZoom(p.zoom + p.cfg.Step) }
func (p *PanZoom) ZoomOut() bool { return p.SetZoom(p.zoom - p.cfg.Step) }

// Wheel handles a wheel event. Negative deltaY (wheel up) zooms in. Without the required
// modifier the event is left for scrolling and false is returned.
func (p *PanZoom) Wheel(deltaY float64, modifier bool) bool {
	if p.cfg.RequireModifier && !modifier {
		return false
	}
	switch {
	case deltaY < 0:
		return p.ZoomIn()
	case deltaY > 0:
		return p.ZoomOut()
	}
	return false
}

// Reset returns to zoom 1 and no pan.
func (p *PanZoom) Reset() {
	p.zoom = clampZoom(1, p.cfg)
	p.panX, p.panY = 0, 0
	p.dragging = false
	p.changed()
}

func (p *PanZoom) PanStart(x, y float64) {
	p.dragging = true
	p.lastX, p.lastY = x, y
}

// PanMove pans by the pointer delta since the previous event.
func (p *PanZoom) PanMove(x, y float64) {
	if !p.dragging {
		return
	}
	p.panX += x - p.lastX
	p.panY += y - p.lastY
	p.lastX, p.lastY = x, y
	p.changed()
}

// PanEnd is safe to call without an active pan.
func (p *PanZoom) PanEnd() { p.dragging = false }
