package main

import (
	"fmt"
	"image"
	"time"

	"fyne.io/fyne/v2"

	"github.com/iafilius/FrameTimeline/cmd/frameviewer/uihelpers"
	"github.com/iafilius/FrameTimeline/src/analysis"
	"github.com/iafilius/FrameTimeline/src/arrows"
	"github.com/iafilius/FrameTimeline/src/config"
	"github.com/iafilius/FrameTimeline/src/graph"
	"github.com/iafilius/FrameTimeline/src/logging"
	"github.com/iafilius/FrameTimeline/src/render"
	"github.com/iafilius/FrameTimeline/src/types"
)

// All uiState methods run on the fyne UI goroutine; background timers hop back with fyne.Do.

func (st *uiState) setSequence(seq *types.Sequence) {
	st.stopPlayback()
	st.seq = seq
	st.summary = analysis.Summarize(seq)
	st.sync.SetItemCount(seq.Len())
	st.sync.SetSelectedIndex(0)
	st.stripArrows.SetSequence(seq)
	st.pyramidArrows.SetSequence(seq)
	st.stripArrows.Resize(st.sync.ContainerWidth(), st.sync.Extent())
	logging.Infof("[viewer] %d frames, %d GOPs, %d missing references", st.summary.Frames, len(st.summary.GOPLengths), st.summary.MissingRefs)
	st.selectionChanged()
	st.scheduleArrows()
}

// selectIndex is the external selection path (keys, taps, playback).
func (st *uiState) selectIndex(i int) {
	if st.seq.Len() == 0 {
		return
	}
	st.sync.SetSelectedIndex(i)
	st.selectionChanged()
}

func (st *uiState) selectionChanged() {
	if st.seq.Len() == 0 {
		st.refRows = nil
		st.info.SetText("No frames")
		st.refreshViews()
		return
	}
	rec := st.seq.At(st.sync.Selected())
	st.refRows = arrows.ReferenceRows(st.seq, rec)
	st.info.SetText(fmt.Sprintf("Frame %d/%d  #%d  %s  %s  refs=%d  zoom=%.2fx",
		st.sync.Selected()+1, st.seq.Len(), rec.FrameIndex, rec.FrameType,
		graph.FormatBytes(float64(rec.Size)), len(rec.RefFrames), st.stripZoom.Zoom()))
	if st.refsTable != nil {
		st.refsTable.Refresh()
	}
	st.refreshViews()
	st.redrawGraph()
}

// setReferenceColumns sizes the reference table for a window winW wide.
func (st *uiState) setReferenceColumns(winW float32) {
	if st.refsTable == nil {
		return
	}
	for i, w := range uihelpers.ComputeReferenceColumnWidths(winW) {
		st.refsTable.SetColumnWidth(i, float32(w))
	}
}

func (st *uiState) refreshViews() {
	if st.strip != nil {
		st.strip.Refresh()
	}
	if st.pyramid != nil {
		st.pyramid.Refresh()
	}
}

// applyStripZoom changes the cell width. Cell positions move, so strip arrows are recomputed.
func (st *uiState) applyStripZoom(z float64) {
	st.sync.SetItemWidth(uihelpers.ZoomedItemWidth(st.cfg.ItemWidth, z))
	st.stripArrows.Cancel()
	st.pyramidArrows.Cancel()
	st.stripArrows.Resize(st.sync.ContainerWidth(), st.sync.Extent())
	st.scheduleArrows()
	st.selectionChanged()
}

// newArrowCalculators builds the strip and pyramid calculators. Both measure the synchronizer's
// window, which widens with the strip, so the strip calculator drops its arrows on a width change
// and onStripResize cancels the pyramid's.
func newArrowCalculators(cfg config.Config) (strip, pyramid *arrows.Calculator) {
	strip = arrows.NewCalculator(arrows.StyleByName(cfg.Arrows.Style), arrows.Options{ResetOnResize: true})
	pyramid = arrows.NewCalculator(arrows.PyramidElbow{}, arrows.Options{})
	return strip, pyramid
}

// onStripResize is called from layout with the strip width.
func (st *uiState) onStripResize(w float64) {
	if w == st.sync.ContainerWidth() {
		return
	}
	st.sync.SetContainerWidth(w)
	st.stripArrows.Resize(w, st.sync.Extent())
	st.pyramidArrows.Cancel()
}

// onPyramidResize only changes the overlay width: pyramid cells are placed from the strip window.
func (st *uiState) onPyramidResize(w float64) {
	if w == st.pyramidWidth {
		return
	}
	st.pyramidWidth = w
	st.pyramidArrows.Resize(w, st.sync.Extent())
}

// scheduleArrows asks both calculators for a pass. Renderers call it after binding cells; the
// pass itself runs after the current layout. Requests made before the pass runs share it.
func (st *uiState) scheduleArrows() {
	// nothing is materialized before the strip has a width
	if st.sync.ContainerWidth() <= 0 {
		return
	}
	if t, ok := st.stripArrows.RequestMeasurement(); ok {
		st.afterLayout(func() {
			if st.stripArrows.Measure(t, st.stripMeasurer()) && st.strip != nil {
				st.strip.Refresh()
			}
		})
	}
	if t, ok := st.pyramidArrows.RequestMeasurement(); ok {
		st.afterLayout(func() {
			m := pyramidMeasurer(st.seq, st.sync.ItemWidth(), st.sync.Window(st.cfg.Overscan))
			if st.pyramidArrows.Measure(t, m) && st.pyramid != nil {
				st.pyramid.Refresh()
			}
		})
	}
}

func (st *uiState) togglePlay() {
	if st.playing {
		st.stopPlayback()
		return
	}
	if st.seq.Len() == 0 {
		return
	}
	st.playing = true
	stop := make(chan struct{})
	st.stopPlay = stop
	interval := uihelpers.PlaybackInterval(st.fps)
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				fyne.Do(func() {
					if !st.playing {
						return
					}
					next := st.sync.Selected() + 1
					if next >= st.seq.Len() {
						st.stopPlayback()
						return
					}
					st.selectIndex(next)
				})
			}
		}
	}()
}

func (st *uiState) stopPlayback() {
	if !st.playing {
		return
	}
	st.playing = false
	close(st.stopPlay)
}

// redrawGraph coalesces graph renders: go-chart is too slow to run on every playback tick.
func (st *uiState) redrawGraph() {
	if st.graphImg == nil {
		return
	}
	st.graphGen++
	gen := st.graphGen
	time.AfterFunc(120*time.Millisecond, func() {
		fyne.Do(func() {
			if gen != st.graphGen {
				return
			}
			st.graphImg.Image = st.renderGraph()
			st.graphImg.Refresh()
		})
	})
}

func (st *uiState) renderGraph() image.Image {
	cw := 1100
	if c := st.window.Canvas(); c != nil {
		cw = int(c.Size().Width)
	}
	w, h := uihelpers.ComputeChartDimensions(cw)
	if st.seq.Len() == 0 {
		return render.Blank(w, h)
	}
	series, title, unit := analysis.SizeSeries(st.seq), "Frame size", "bytes"
	if st.graphMode == "bitrate" {
		series, title, unit = analysis.BitrateSeries(st.seq, st.fps), "Bitrate", "kbit/s"
	}
	img, err := render.RenderSeriesChart(series, render.ChartOptions{
		Title:           title,
		YName:           unit,
		Width:           w,
		Height:          h,
		SmoothingWindow: st.cfg.Graph.SmoothingWindow,
		Selected:        st.seq.At(st.sync.Selected()).FrameIndex,
	})
	if err != nil {
		logging.Warnf("[viewer] %s chart render error: %v; showing blank fallback", title, err)
		return render.Blank(w, h)
	}
	return img
}

func (st *uiState) stripMeasurer() arrows.Measurer {
	return stripMeasurer(st.sync.ItemWidth(), st.cfg.StripHeight, st.sync.Window(st.cfg.Overscan))
}
