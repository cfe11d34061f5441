// Command frameviewer is the desktop frame timeline: a virtualized filmstrip with reference arrows,
// a frame-type pyramid, a size/bitrate graph and a reference table for the selected frame.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/FrameTimeline/src/analysis"
	"github.com/iafilius/FrameTimeline/src/arrows"
	"github.com/iafilius/FrameTimeline/src/config"
	"github.com/iafilius/FrameTimeline/src/logging"
	"github.com/iafilius/FrameTimeline/src/types"
	"github.com/iafilius/FrameTimeline/src/viewport"
)

type uiState struct {
	app      fyne.App
	window   fyne.Window
	cfg      config.Config
	filePath string
	fps      float64

	seq     *types.Sequence
	summary analysis.Summary

	sync          *viewport.Synchronizer
	stripZoom     *viewport.PanZoom
	stripArrows   *arrows.Calculator
	pyramidArrows *arrows.Calculator
	pyramidWidth  float64

	strip     *filmstrip
	pyramid   *pyramidView
	graphImg  *canvas.Image
	graphMode string // "size" or "bitrate"
	refsTable *widget.Table
	refRows   []arrows.ReferenceRow
	info      *widget.Label
	fileLabel *widget.Label

	// afterLayout runs f on the UI goroutine once the current layout pass is done.
	afterLayout func(f func())

	playing  bool
	stopPlay chan struct{}
	graphGen int
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var fileFlag, configFlag, envFlag, logLevelFlag string
	var fpsFlag float64
	flag.StringVar(&fileFlag, "file", "", "Path to frame dump (JSONL)")
	flag.StringVar(&configFlag, "config", "", "Optional YAML config file")
	flag.StringVar(&envFlag, "env", ".env", "Optional .env file with FRAMETIMELINE_* overrides")
	flag.StringVar(&logLevelFlag, "log-level", "", "Log level (debug|info|warn|error); overrides config")
	flag.Float64Var(&fpsFlag, "fps", 30, "Playback and bitrate frame rate")
	flag.Parse()

	cfg, err := loadConfig(configFlag, envFlag, logLevelFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logging.SetLogLevel(cfg.LogLevel)

	a := app.NewWithID("com.frametimeline.viewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("Frame Timeline")
	w.Resize(fyne.NewSize(1200, 820))

	state := newUIState(a, w, cfg)
	state.fps = fpsFlag
	state.filePath = fileFlag
	if state.filePath == "" {
		state.filePath = a.Preferences().StringWithFallback("lastFile", "")
	}
	cfg.Arrows.Enabled = a.Preferences().BoolWithFallback("arrows", cfg.Arrows.Enabled)
	state.stripArrows.SetEnabled(cfg.Arrows.Enabled)
	state.pyramidArrows.SetEnabled(cfg.Arrows.Enabled)

	w.SetContent(buildContent(state, cfg.Arrows.Enabled))
	setupMenus(state)
	setupKeys(state)
	watchWidth(state)
	if state.filePath != "" {
		loadFile(state, state.filePath)
	}
	w.ShowAndRun()
}

func loadConfig(path, envFile, logLevel string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if _, err := cfg.ApplyEnv(envFile); err != nil {
		return cfg, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, cfg.Validate()
}

func newUIState(a fyne.App, w fyne.Window, cfg config.Config) *uiState {
	st := &uiState{app: a, window: w, cfg: cfg, graphMode: "size"}
	st.sync = viewport.NewSynchronizer(cfg.ItemWidth, 0, 0)
	st.sync.OnIndexChange = func(int) { st.selectionChanged() }
	st.sync.OnScroll = func(float64) { st.refreshViews() }
	st.stripZoom = viewport.NewPanZoom(cfg.ZoomConfig())
	st.stripZoom.OnChange = func(z, _, _ float64) { st.applyStripZoom(z) }
	st.stripArrows, st.pyramidArrows = newArrowCalculators(cfg)
	st.afterLayout = func(f func()) { go fyne.Do(f) }
	return st
}

func buildContent(st *uiState, arrowsOn bool) fyne.CanvasObject {
	st.fileLabel = widget.NewLabel(st.filePath)
	st.info = widget.NewLabel("No file loaded")
	st.strip = newFilmstrip(st)
	st.pyramid = newPyramidView(st)
	st.graphImg = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	st.graphImg.FillMode = canvas.ImageFillContain
	st.graphImg.SetMinSize(fyne.NewSize(640, 200))
	st.refsTable = newReferenceTable(st)

	arrowsChk := widget.NewCheck("Arrows", func(on bool) {
		st.stripArrows.SetEnabled(on)
		st.pyramidArrows.SetEnabled(on)
		st.app.Preferences().SetBool("arrows", on)
		st.scheduleArrows()
		st.refreshViews()
	})
	arrowsChk.SetChecked(arrowsOn)
	graphSelect := widget.NewSelect([]string{"Size", "Bitrate"}, func(v string) {
		if v == "Bitrate" {
			st.graphMode = "bitrate"
		} else {
			st.graphMode = "size"
		}
		st.redrawGraph()
	})
	graphSelect.Selected = "Size"
	playBtn := widget.NewButton("Play/Pause", func() { st.togglePlay() })
	zoomIn := widget.NewButton("+", func() { st.stripZoom.ZoomIn() })
	zoomOut := widget.NewButton("-", func() { st.stripZoom.ZoomOut() })
	openBtn := widget.NewButton("Open…", func() { openFileDialog(st) })

	top := container.NewHBox(openBtn, st.fileLabel, playBtn, zoomOut, zoomIn, arrowsChk, graphSelect)
	lower := container.NewHSplit(
		container.NewBorder(nil, nil, nil, nil, st.pyramid),
		container.NewBorder(widget.NewLabel("References"), nil, nil, nil, st.refsTable),
	)
	lower.Offset = 0.7
	body := container.NewVSplit(
		container.NewBorder(st.strip, nil, nil, nil, newGraphView(st, st.graphImg)),
		lower,
	)
	body.Offset = 0.55
	return container.NewBorder(top, st.info, nil, nil, body)
}

func newReferenceTable(st *uiState) *widget.Table {
	headers := [4]string{"Slot", "Target", "Type", "Size"}
	t := widget.NewTable(
		func() (int, int) { return len(st.refRows) + 1, 4 },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			l := o.(*widget.Label)
			if id.Row == 0 {
				l.TextStyle = fyne.TextStyle{Bold: true}
				l.SetText(headers[id.Col])
				return
			}
			l.TextStyle = fyne.TextStyle{}
			r := st.refRows[id.Row-1]
			switch id.Col {
			case 0:
				l.SetText(r.Label)
			case 1:
				l.SetText(fmt.Sprintf("#%d", r.TargetIndex))
			case 2:
				l.SetText(r.TargetType)
			default:
				l.SetText(r.TargetSize)
			}
		},
	)
	return t
}

func setupMenus(st *uiState) {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(st) }),
		fyne.NewMenuItem("Reload", func() { loadFile(st, st.filePath) }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { st.stripZoom.ZoomIn() }),
		fyne.NewMenuItem("Zoom Out", func() { st.stripZoom.ZoomOut() }),
		fyne.NewMenuItem("Reset Zoom", func() { st.stripZoom.Reset(); st.pyramid.pz.Reset() }),
	)
	st.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu))

	canv := st.window.Canvas()
	if canv == nil {
		return
	}
	canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(st) })
	canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(st) })
	canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadFile(st, st.filePath) })
	canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { st.window.Close() })
}

func setupKeys(st *uiState) {
	canv := st.window.Canvas()
	canv.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		sel := st.sync.Selected()
		switch ev.Name {
		case fyne.KeyLeft:
			st.selectIndex(sel - 1)
		case fyne.KeyRight:
			st.selectIndex(sel + 1)
		case fyne.KeyPageUp:
			st.selectIndex(sel - 10)
		case fyne.KeyPageDown:
			st.selectIndex(sel + 10)
		case fyne.KeyHome:
			st.selectIndex(0)
		case fyne.KeyEnd:
			st.selectIndex(st.seq.Len() - 1)
		case fyne.KeySpace:
			st.togglePlay()
		}
	})
	canv.SetOnTypedRune(func(r rune) {
		switch r {
		case '+', '=':
			st.stripZoom.ZoomIn()
		case '-':
			st.stripZoom.ZoomOut()
		case '0':
			st.stripZoom.Reset()
		}
	})
}

// watchWidth redraws the graph and resizes the reference columns when the window width changes;
// the graph is a raster image and does not follow layout on its own.
func watchWidth(st *uiState) {
	done := make(chan struct{})
	st.window.SetOnClosed(func() {
		st.stopPlayback()
		close(done)
	})
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		prevW := 0
		for {
			select {
			case <-done:
				return
			case <-t.C:
				c := st.window.Canvas()
				if c == nil {
					continue
				}
				curW := int(c.Size().Width)
				if curW != prevW {
					prevW = curW
					fyne.Do(func() {
						st.redrawGraph()
						st.setReferenceColumns(float32(curW))
					})
				}
			}
		}
	}()
}

func openFileDialog(st *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		loadFile(st, rc.URI().Path())
	}, st.window)
	d.Show()
}

func loadFile(st *uiState, path string) {
	if path == "" {
		return
	}
	seq, err := analysis.LoadFrames(path)
	if err != nil {
		logging.Errorf("[viewer] load %s: %v", path, err)
		dialog.ShowError(err, st.window)
		return
	}
	st.filePath = path
	st.fileLabel.SetText(path)
	st.app.Preferences().SetString("lastFile", path)
	logging.Logger().Info("frame dump opened", "path", path, "frames", seq.Len())
	st.setSequence(seq)
}
