package viewport

import (
	"math"

	"github.com/samber/lo"
)

// Synchronizer keeps the selected frame index and the scroll offset consistent.
//
// Selection normally flows index -> scroll: an external index change centers that frame. The only
// scroll -> index path is an explicit drag, and while a drag is active centering is suppressed, so
// the two directions never run at the same time. Not safe for concurrent use.
type Synchronizer struct {
	itemWidth      float64
	containerWidth float64
	itemCount      int

	offset   float64
	selected int
	dragging bool

	dragStartX      float64
	dragStartOffset float64

	// OnIndexChange is called when a drag moves the selection.
	OnIndexChange func(index int)
	// OnScroll is called whenever the offset changes.
	OnScroll func(offset float64)
}

// NewSynchronizer creates a synchronizer at offset 0 with frame 0 selected.
func NewSynchronizer(itemWidth, containerWidth float64, itemCount int) *Synchronizer {
	return &Synchronizer{itemWidth: itemWidth, containerWidth: containerWidth, itemCount: itemCount}
}

func (s *Synchronizer) Offset() float64         { return s.offset }
func (s *Synchronizer) Selected() int           { return s.selected }
func (s *Synchronizer) Dragging() bool          { return s.dragging }
func (s *Synchronizer) ItemWidth() float64      { return s.itemWidth }
func (s *Synchronizer) ContainerWidth() float64 { return s.containerWidth }
func (s *Synchronizer) ItemCount() int          { return s.itemCount }

// Extent is the pixel width of the whole sequence.
func (s *Synchronizer) Extent() float64 { return Extent(s.itemCount, s.itemWidth) }

// Window returns the positions to materialize at the current offset.
func (s *Synchronizer) Window(overscan int) Window {
	return ComputeWindow(s.offset, s.itemWidth, s.containerWidth, s.itemCount, overscan)
}

func (s *Synchronizer) empty() bool { return s.itemCount <= 0 || s.itemWidth <= 0 }

func (s *Synchronizer) clampOffset(o float64) float64 {
	max := s.Extent() - s.containerWidth
	if max < 0 || math.IsNaN(o) {
		return 0
	}
	return math.Max(0, math.Min(o, max))
}

func (s *Synchronizer) setOffset(o float64) {
	o = s.clampOffset(o)
	if o == s.offset {
		return
	}
	s.offset = o
	if s.OnScroll != nil {
		s.OnScroll(o)
	}
}

// centerOn scrolls so frame i sits in the middle of the container.
func (s *Synchronizer) centerOn(i int) {
	s.setOffset(float64(i)*s.itemWidth - s.containerWidth/2 + s.itemWidth/2)
}

// SetSelectedIndex applies an externally driven selection (playback, keyboard). Outside a drag
// the frame is centered; during a drag only the index is recorded.
func (s *Synchronizer) SetSelectedIndex(i int) {
	if s.empty() {
		return
	}
	s.selected = lo.Clamp(i, 0, s.itemCount-1)
	if s.dragging {
		return
	}
	s.centerOn(s.selected)
}

// DragStart begins a scrub at pointer x.
func (s *Synchronizer) DragStart(pointerX float64) {
	if s.empty() {
		return
	}
	s.dragging = true
	s.dragStartX = pointerX
	s.dragStartOffset = s.offset
}

// DragMove scrolls by the pointer delta since DragStart and selects the frame at the new offset.
func (s *Synchronizer) DragMove(pointerX float64) {
	if !s.dragging || s.empty() {
		return
	}
	s.setOffset(s.dragStartOffset - (pointerX - s.dragStartX))
	idx := lo.Clamp(int(math.Floor(s.offset/s.itemWidth)), 0, s.itemCount-1)
	if idx == s.selected {
		return
	}
	s.selected = idx
	if s.OnIndexChange != nil {
		s.OnIndexChange(idx)
	}
}

// DragEnd releases the scrub. Safe to call without a matching DragStart, so hosts can call it on
// pointer-leave as well as on release.
func (s *Synchronizer) DragEnd() { s.dragging = false }

// ScrollTo applies a user scroll (wheel, scrollbar). It never changes the selection.
func (s *Synchronizer) ScrollTo(offset float64) {
	if s.empty() {
		return
	}
	s.setOffset(offset)
}

// ScrollBy scrolls relative to the current offset.
func (s *Synchronizer) ScrollBy(delta float64) { s.ScrollTo(s.offset + delta) }

// SetContainerWidth updates the viewport width and re-clamps the offset.
func (s *Synchronizer) SetContainerWidth(w float64) {
	if w < 0 {
		w = 0
	}
	s.containerWidth = w
	s.setOffset(s.offset)
}

// SetItemCount updates the sequence length, clamping selection and offset.
func (s *Synchronizer) SetItemCount(n int) {
	if n < 0 {
		n = 0
	}
	s.itemCount = n
	if n == 0 {
		s.selected = 0
		s.dragging = false
		s.setOffset(0)
		return
	}
	if s.selected >= n {
		s.selected = n - 1
	}
	s.setOffset(s.offset)
}

// SetItemWidth changes the cell width (zoom). Outside a drag the selected frame stays centered.
func (s *Synchronizer) SetItemWidth(w float64) {
	if w <= 0 || w == s.itemWidth {
		return
	}
	s.itemWidth = w
	if s.empty() {
		return
	}
	if s.dragging {
		s.setOffset(s.offset)
		return
	}
	s.centerOn(s.selected)
}
