// Package canvas provides the scene canvas: a pan/zoom view of the site
// image with polyline drawing on top.
package canvas

import (
	"image"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"site-annotator/internal/editor"
	"site-annotator/pkg/colorutil"
	"site-annotator/pkg/geometry"
)

// axesMargin is the inset, in logical units, between the widget edge and
// the axes box. The margin band is where edge-proximity panning engages.
const axesMargin float32 = 48

var _ fyne.Widget = (*SceneCanvas)(nil)
var _ fyne.Tappable = (*SceneCanvas)(nil)
var _ fyne.SecondaryTappable = (*SceneCanvas)(nil)
var _ fyne.DoubleTappable = (*SceneCanvas)(nil)
var _ fyne.Scrollable = (*SceneCanvas)(nil)
var _ desktop.Hoverable = (*SceneCanvas)(nil)

// SceneCanvas renders the current viewport of a scene document and
// translates pointer events into editor transitions. All drawing state
// lives in the editor; the canvas is a view plus thin event adapters.
type SceneCanvas struct {
	widget.BaseWidget

	editor *editor.Editor
	raster *fynecanvas.Raster

	// Continuous edge panning, driven one bounded step per frame.
	panAnim *fyne.Animation
	panEnv  editor.PanEnv
	panning bool

	onReadout      func(text string)
	onPathsChanged func()
}

// NewSceneCanvas creates an empty scene canvas. Nothing is rendered until
// SetEditor attaches an open document.
func NewSceneCanvas() *SceneCanvas {
	sc := &SceneCanvas{}
	sc.raster = fynecanvas.NewRaster(sc.draw)
	sc.raster.ScaleMode = fynecanvas.ImageScalePixels
	sc.ExtendBaseWidget(sc)
	return sc
}

// SetEditor attaches the editor whose document and viewport this canvas
// renders.
func (sc *SceneCanvas) SetEditor(ed *editor.Editor) {
	sc.stopPan()
	sc.editor = ed
	sc.Refresh()
}

// OnReadout sets the callback receiving live position readout text.
func (sc *SceneCanvas) OnReadout(callback func(text string)) {
	sc.onReadout = callback
}

// OnPathsChanged sets the callback invoked after a polyline is committed
// or discarded.
func (sc *SceneCanvas) OnPathsChanged(callback func()) {
	sc.onPathsChanged = callback
}

// Refresh redraws the canvas.
func (sc *SceneCanvas) Refresh() {
	sc.raster.Refresh()
	sc.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (sc *SceneCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &sceneCanvasRenderer{canvas: sc}
}

// Tapped handles a left click: it starts or extends the in-progress
// polyline. Clicks in the margin band are not waypoints.
func (sc *SceneCanvas) Tapped(ev *fyne.PointEvent) {
	if sc.editor == nil {
		return
	}
	frac, inside := sc.axesFraction(ev.Position)
	if !inside {
		return
	}
	sc.editor.HandleTap(sc.worldAt(frac))
	sc.Refresh()
}

// TappedSecondary handles a right click: it terminates the in-progress
// polyline.
func (sc *SceneCanvas) TappedSecondary(_ *fyne.PointEvent) {
	sc.finishPolyline()
}

// DoubleTapped also terminates the in-progress polyline. The preceding
// single tap has already appended a waypoint at the same location; commit
// dedup collapses it.
func (sc *SceneCanvas) DoubleTapped(_ *fyne.PointEvent) {
	sc.finishPolyline()
}

func (sc *SceneCanvas) finishPolyline() {
	if sc.editor == nil {
		return
	}
	sc.stopPan()
	outcome, _ := sc.editor.HandleFinish()
	if outcome == editor.Committed || outcome == editor.Discarded {
		if sc.onPathsChanged != nil {
			sc.onPathsChanged()
		}
	}
	sc.Refresh()
}

// Scrolled zooms around the pointer. Scrolling away from the surface
// (wheel down) zooms out.
func (sc *SceneCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if sc.editor == nil {
		return
	}
	delta := 1.0
	if ev.Scrolled.DY > 0 {
		delta = -1.0
	}
	frac, _ := sc.axesFraction(ev.Position)
	sc.editor.HandleScroll(sc.worldAt(frac), delta)
	sc.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (sc *SceneCanvas) MouseIn(ev *desktop.MouseEvent) {
	sc.MouseMoved(ev)
}

// MouseMoved updates the live readout and drives edge panning while the
// pointer sits in the margin band.
func (sc *SceneCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if sc.editor == nil {
		return
	}

	frac, inside := sc.axesFraction(ev.Position)
	if sc.onReadout != nil {
		sc.onReadout(sc.editor.Readout(sc.worldAt(frac)))
	}

	sc.panEnv = editor.PanEnv{Pointer: frac, Window: sc.windowFraction()}
	if inside {
		sc.stopPan()
		return
	}
	sc.startPan()
}

// MouseOut stops any active pan: the pointer left the containing window.
func (sc *SceneCanvas) MouseOut() {
	sc.stopPan()
	if sc.onReadout != nil {
		sc.onReadout("")
	}
}

// startPan begins the per-frame pan ticker if it is not already running.
// Each tick performs one bounded viewport step and redraws, so the motion
// stays continuous without ever blocking the event loop.
func (sc *SceneCanvas) startPan() {
	if sc.panning {
		return
	}
	sc.panning = true
	sc.panAnim = &fyne.Animation{
		Duration:    time.Second,
		RepeatCount: fyne.AnimationRepeatForever,
		Curve:       fyne.AnimationLinear,
		Tick: func(float32) {
			if sc.editor == nil || !sc.editor.TickPan(sc.panEnv) {
				sc.stopPan()
				return
			}
			sc.raster.Refresh()
		},
	}
	sc.panAnim.Start()
}

func (sc *SceneCanvas) stopPan() {
	if sc.panAnim != nil {
		sc.panAnim.Stop()
		sc.panAnim = nil
	}
	sc.panning = false
}

// axesRect returns the axes box in logical widget coordinates.
func (sc *SceneCanvas) axesRect() (x, y, w, h float32) {
	size := sc.Size()
	w = size.Width - 2*axesMargin
	h = size.Height - 2*axesMargin
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return axesMargin, axesMargin, w, h
}

// axesFraction converts a widget position to axis-fraction coordinates:
// the axes box is the unit square with Y growing up. inside reports
// whether the position lies within the box.
func (sc *SceneCanvas) axesFraction(pos fyne.Position) (geometry.Point2D, bool) {
	ax, ay, aw, ah := sc.axesRect()
	f := geometry.Point2D{
		X: float64((pos.X - ax) / aw),
		Y: 1 - float64((pos.Y-ay)/ah),
	}
	inside := f.X >= 0 && f.X <= 1 && f.Y >= 0 && f.Y <= 1
	return f, inside
}

// windowFraction returns the widget bounds in axis-fraction coordinates.
func (sc *SceneCanvas) windowFraction() geometry.Rect {
	_, _, aw, ah := sc.axesRect()
	size := sc.Size()
	mx := float64(axesMargin / aw)
	my := float64(axesMargin / ah)
	return geometry.Rect{
		X:      -mx,
		Y:      -my,
		Width:  float64(size.Width) / float64(aw),
		Height: float64(size.Height) / float64(ah),
	}
}

// worldAt maps axis-fraction coordinates to world coordinates through the
// current viewport. Total: fractions outside [0,1] extrapolate past the
// visible rectangle.
func (sc *SceneCanvas) worldAt(frac geometry.Point2D) geometry.Point2D {
	v := sc.editor.Viewport().View()
	return geometry.Point2D{
		X: v.X.Min + frac.X*v.X.Size(),
		Y: v.Y.Min + frac.Y*v.Y.Size(),
	}
}

// draw renders the viewport into the raster buffer: background, the
// visible slice of the site image, committed paths, and the in-progress
// polyline.
func (sc *SceneCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(output, color.RGBA{R: 24, G: 24, B: 28, A: 255})

	if sc.editor == nil || w < 4 || h < 4 {
		return output
	}

	// Device pixels per logical unit; the raster may be larger than the
	// widget on high-DPI displays.
	size := sc.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return output
	}
	scale := float64(w) / float64(size.Width)

	ax := int(float64(axesMargin) * scale)
	ay := int(float64(axesMargin) * scale)
	aw := w - 2*ax
	ah := h - 2*ay
	if aw < 2 || ah < 2 {
		return output
	}

	sc.drawImage(output, ax, ay, aw, ah)
	sc.drawPaths(output, ax, ay, aw, ah)
	drawBorder(output, ax, ay, aw, ah, color.RGBA{R: 110, G: 110, B: 110, A: 255})

	return output
}

// drawImage samples the site raster for every output pixel inside the
// axes box, inverse-mapping through viewport and image reference.
func (sc *SceneCanvas) drawImage(output *image.RGBA, ax, ay, aw, ah int) {
	doc := sc.editor.Document()
	mapper := sc.editor.Mapper()
	v := sc.editor.Viewport().View()
	srcBounds := doc.Image.Bounds()

	for y := 0; y < ah; y++ {
		// Output row y is this fraction from the top; world Y grows up.
		wy := v.Y.Max - (float64(y)+0.5)/float64(ah)*v.Y.Size()
		for x := 0; x < aw; x++ {
			wx := v.X.Min + (float64(x)+0.5)/float64(aw)*v.X.Size()
			px, py := mapper.WorldToPixel(wx, wy)
			sx := srcBounds.Min.X + int(px)
			sy := srcBounds.Min.Y + int(py)
			if sx < srcBounds.Min.X || sx >= srcBounds.Max.X ||
				sy < srcBounds.Min.Y || sy >= srcBounds.Max.Y {
				continue
			}
			output.Set(ax+x, ay+y, doc.Image.At(sx, sy))
		}
	}
}

// drawPaths overlays committed paths in their draw-order colors and the
// in-progress polyline in the selection color.
func (sc *SceneCanvas) drawPaths(output *image.RGBA, ax, ay, aw, ah int) {
	doc := sc.editor.Document()

	for i, p := range doc.Paths() {
		sc.drawPolyline(output, ax, ay, aw, ah, p.Points(), colorutil.PathColor(i))
	}
	if doc.InProgress != nil {
		sc.drawPolyline(output, ax, ay, aw, ah, doc.InProgress.Points(), colorutil.Yellow)
	}
}

func (sc *SceneCanvas) drawPolyline(output *image.RGBA, ax, ay, aw, ah int, points []geometry.Point2D, col color.RGBA) {
	v := sc.editor.Viewport().View()

	toOut := func(p geometry.Point2D) (int, int) {
		x := ax + int((p.X-v.X.Min)/v.X.Size()*float64(aw))
		y := ay + int((v.Y.Max-p.Y)/v.Y.Size()*float64(ah))
		return x, y
	}

	clip := image.Rect(ax, ay, ax+aw, ay+ah)
	for i := range points {
		x, y := toOut(points[i])
		drawMarker(output, x, y, col, clip)
		if i > 0 {
			x0, y0 := toOut(points[i-1])
			drawLine(output, x0, y0, x, y, col, 2, clip)
		}
	}
}
