// Package types holds the frame records shared by the timeline packages. Records are produced by the
// decode backend and are only read here.
package types

import (
	"errors"
	"fmt"
	"sort"
)

// FrameType is the coded picture type as reported by the decoder ("I", "P", "B", ...).
// Unknown values are kept verbatim.
type FrameType string

const (
	FrameTypeI FrameType = "I"
	FrameTypeP FrameType = "P"
	FrameTypeB FrameType = "B"
)

// IsKey reports whether the frame starts a new group of pictures.
func (t FrameType) IsKey() bool { return t == FrameTypeI || t == "IDR" }

// RefSlotInfo carries decoder metadata for one reference slot, parallel to FrameRecord.RefFrames.
type RefSlotInfo struct {
	Name string `json:"name,omitempty"`
}

// FrameRecord is one decoded frame.
type FrameRecord struct {
	FrameIndex  int           `json:"frame_index"`
	FrameType   FrameType     `json:"frame_type"`
	Size        int64         `json:"size"`
	PTS         int64         `json:"pts,omitempty"`
	DTS         int64         `json:"dts,omitempty"`
	RefFrames   []int         `json:"ref_frames,omitempty"`
	RefSlots    []int         `json:"ref_slots,omitempty"`
	RefSlotInfo []RefSlotInfo `json:"ref_slot_info,omitempty"`
}

// ErrFrameOrder is returned when frame indices are negative or not strictly increasing.
var ErrFrameOrder = errors.New("frame indices must be non-negative and strictly increasing")

// Sequence is an immutable, ordered set of frames. The pointer identifies the sequence: a new
// Sequence value means new input for anything caching derived geometry.
type Sequence struct {
	frames []FrameRecord
}

// NewSequence validates ordering and wraps frames. The slice is not copied; callers must not
// mutate it afterwards.
func NewSequence(frames []FrameRecord) (*Sequence, error) {
	prev := -1
	for i, f := range frames {
		if f.FrameIndex < 0 || f.FrameIndex <= prev {
			return nil, fmt.Errorf("frame at position %d has index %d after %d: %w", i, f.FrameIndex, prev, ErrFrameOrder)
		}
		prev = f.FrameIndex
	}
	return &Sequence{frames: frames}, nil
}

// Len returns the number of frames; a nil sequence is empty.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}

// At returns the frame at sequence position pos.
func (s *Sequence) At(pos int) FrameRecord { return s.frames[pos] }

// Frames exposes the underlying records (read-only by convention).
func (s *Sequence) Frames() []FrameRecord {
	if s == nil {
		return nil
	}
	return s.frames
}

// Lookup finds the sequence position of frameIndex.
func (s *Sequence) Lookup(frameIndex int) (int, bool) {
	n := s.Len()
	pos := sort.Search(n, func(i int) bool { return s.frames[i].FrameIndex >= frameIndex })
	if pos < n && s.frames[pos].FrameIndex == frameIndex {
		return pos, true
	}
	return 0, false
}

// Nearest returns the position of the frame whose index is closest to frameIndex, preferring the
// earlier frame on a tie, or -1 for an empty sequence.
func (s *Sequence) Nearest(frameIndex int) int {
	n := s.Len()
	if n == 0 {
		return -1
	}
	pos := sort.Search(n, func(i int) bool { return s.frames[i].FrameIndex >= frameIndex })
	if pos == n {
		return n - 1
	}
	if pos > 0 && frameIndex-s.frames[pos-1].FrameIndex <= s.frames[pos].FrameIndex-frameIndex {
		return pos - 1
	}
	return pos
}

// ScreenPosition is a measured frame element, relative to the scroll container origin.
// Only valid for the layout pass it was taken from.
type ScreenPosition struct {
	CenterX float64
	Top     float64
	Bottom  float64
}
