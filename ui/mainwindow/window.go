// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"site-annotator/internal/app"
	"site-annotator/internal/editor"
	"site-annotator/internal/scene"
	"site-annotator/internal/version"
	"site-annotator/ui/canvas"
	"site-annotator/ui/panels"
	"site-annotator/ui/prefs"
)

const (
	prefKeyRegistry  = "lastRegistry"
	prefKeyScene     = "lastScene"
	prefKeyWinWidth  = "windowWidth"
	prefKeyWinHeight = "windowHeight"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	consumer  editor.Consumer
	editor    *editor.Editor
	canvas    *canvas.SceneCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
	registry  *scene.Registry
}

// New creates the main window. The consumer receives export results.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs, consumer editor.Consumer) *MainWindow {
	win := fyneApp.NewWindow("Site Annotator")

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		state:    state,
		prefs:    appPrefs,
		consumer: consumer,
	}

	mw.setupUI()
	mw.setupMenus()

	state.On(app.EventSceneLoaded, func(interface{}) {
		mw.attachEditor()
	})

	w := float32(appPrefs.Float(prefKeyWinWidth, 1280))
	h := float32(appPrefs.Float(prefKeyWinHeight, 800))
	mw.Resize(fyne.NewSize(w, h))
	mw.SetCloseIntercept(func() {
		mw.SavePreferences()
		mw.Close()
	})

	return mw
}

// setupUI creates the main layout: side panel | canvas, toolbar on top,
// status readout at the bottom.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewSceneCanvas()
	mw.sidePanel = panels.NewSidePanel(mw.state)
	mw.statusBar = widget.NewLabel("Ready")

	mw.canvas.OnReadout(func(text string) {
		if text == "" {
			text = "Ready"
		}
		mw.statusBar.SetText(text)
	})
	mw.canvas.OnPathsChanged(func() {
		mw.state.NotifyPathsChanged()
	})
	mw.sidePanel.Paths().OnDeleted = func() {
		mw.canvas.Refresh()
	}

	canvasArea := container.NewBorder(
		mw.createToolbar(), // top
		nil, nil, nil,
		mw.canvas,
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar), // bottom
		nil, nil,
		split,
	)
	mw.SetContent(content)
}

// createToolbar builds the zoom controls and the Export control. Hovering
// either region suppresses edge panning.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		if mw.editor != nil {
			mw.editor.Viewport().ZoomOut()
			mw.canvas.Refresh()
		}
	})
	zoomInBtn := widget.NewButton("+", func() {
		if mw.editor != nil {
			mw.editor.Viewport().ZoomIn()
			mw.canvas.Refresh()
		}
	})
	fitBtn := widget.NewButton("Fit", func() {
		if mw.editor != nil {
			mw.editor.Viewport().Reset()
			mw.canvas.Refresh()
		}
	})

	exportBtn := newHoverButton("Export", func() {
		mw.onExport()
	}, func(over bool) {
		if mw.editor != nil {
			mw.editor.SetOverExport(over)
		}
	})

	bar := container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
	)
	return newHoverRegion(container.NewBorder(nil, nil, bar, exportBtn), func(over bool) {
		if mw.editor != nil {
			mw.editor.SetOverToolbar(over)
		}
	})
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Scene Index...", mw.onOpenRegistry),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export", mw.onExport),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.SavePreferences()
			mw.app.Quit()
		}),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("Site Annotator",
				fmt.Sprintf("Version %s\nBuilt %s (%s)",
					version.Version, version.BuildTime, version.GitCommit),
				mw.Window)
		}),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

// OpenRegistry loads a scene index and opens one of its scenes.
func (mw *MainWindow) OpenRegistry(indexPath, sceneID string) error {
	reg, err := scene.LoadRegistry(indexPath)
	if err != nil {
		return err
	}
	mw.registry = reg
	mw.prefs.SetString(prefKeyRegistry, indexPath)

	if sceneID == "" {
		names := reg.Names()
		if len(names) == 0 {
			return fmt.Errorf("scene index %s is empty", indexPath)
		}
		sceneID = names[0]
	}
	if err := mw.state.OpenScene(reg, sceneID); err != nil {
		return err
	}
	mw.prefs.SetString(prefKeyScene, sceneID)
	return nil
}

// attachEditor rebuilds the editor around a freshly loaded document.
func (mw *MainWindow) attachEditor() {
	doc := mw.state.Doc
	if doc == nil {
		return
	}
	ed, err := editor.New(doc, mw.consumer)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.editor = ed
	mw.canvas.SetEditor(ed)
	mw.SetTitle(fmt.Sprintf("Site Annotator - %s", mw.state.SceneID))
}

func (mw *MainWindow) onOpenRegistry() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		if err := mw.OpenRegistry(path, ""); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.Show()
}

func (mw *MainWindow) onExport() {
	if mw.editor == nil {
		dialog.ShowInformation("Export", "No scene is open.", mw.Window)
		return
	}
	res, err := mw.editor.Export()
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.state.Emit(app.EventExported, res)

	msg := fmt.Sprintf("Exported %d path(s).", len(res.Waypoints))
	if len(res.Skipped) > 0 {
		msg += fmt.Sprintf("\n%d path(s) were skipped:", len(res.Skipped))
		for _, sk := range res.Skipped {
			msg += fmt.Sprintf("\n  path %d: %s", sk.Index, sk.Reason)
		}
	}
	dialog.ShowInformation("Export", msg, mw.Window)
}

// SavePreferences persists the window geometry and last scene.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefKeyWinWidth, float64(size.Width))
	mw.prefs.SetFloat(prefKeyWinHeight, float64(size.Height))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}
