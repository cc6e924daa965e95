package editor

import (
	"fmt"
	"log"

	"site-annotator/internal/geo"
	"site-annotator/internal/path"
	"site-annotator/internal/scene"
	"site-annotator/pkg/geometry"
)

// OutsideAxesReadout is shown when the pointer leaves the image's world
// extent.
const OutsideAxesReadout = "outside axes"

// Editor is the top-level orchestrator. UI callbacks stay thin: they
// translate raw events into the named transitions below, which mutate the
// viewport controller, the drawing session, and the document. All calls
// happen on the UI event thread.
type Editor struct {
	doc      *scene.Document
	mapper   *geo.Mapper
	viewport *ViewportController
	session  *Session
	consumer Consumer

	// Gating state mirrored from the UI. While any of these hold, edge
	// panning is suppressed.
	zoomBoxActive bool
	panToolActive bool
	overToolbar   bool
	overExport    bool
}

// New creates an editor over a validated document. The consumer receives
// export results; it may be nil when nothing downstream is attached.
func New(doc *scene.Document, consumer Consumer) (*Editor, error) {
	mapper, err := geo.NewMapper(doc.Ref)
	if err != nil {
		return nil, err
	}
	return &Editor{
		doc:      doc,
		mapper:   mapper,
		viewport: NewViewportController(doc.Ref.WorldExtent()),
		session:  NewSession(doc),
		consumer: consumer,
	}, nil
}

// Document returns the scene document.
func (e *Editor) Document() *scene.Document {
	return e.doc
}

// Mapper returns the pixel/world coordinate mapper.
func (e *Editor) Mapper() *geo.Mapper {
	return e.mapper
}

// Viewport returns the viewport controller.
func (e *Editor) Viewport() *ViewportController {
	return e.viewport
}

// Session returns the drawing session.
func (e *Editor) Session() *Session {
	return e.session
}

// HandleTap processes a left click at a world position: it starts a new
// polyline when idle, or appends a waypoint to the one in flight. Starting
// a polyline also snapshots the viewport for stable pan speed.
func (e *Editor) HandleTap(world geometry.Point2D) {
	if e.session.State() == Drawing {
		e.session.AddPoint(world)
		return
	}
	if e.session.PointerDown(world) {
		e.viewport.StartPan()
	}
}

// HandleFinish terminates the in-progress polyline (double click or right
// click) and returns the outcome. The pan snapshot is released.
func (e *Editor) HandleFinish() (SessionState, *path.Path) {
	outcome, committed := e.session.Finish()
	e.viewport.EndPan()
	if outcome == Committed {
		log.Printf("committed path %d with %d waypoints", e.doc.PathCount()-1, committed.Len())
	}
	return outcome, committed
}

// HandleScroll routes a scroll event to the zoom transition.
func (e *Editor) HandleScroll(focal geometry.Point2D, scrollDelta float64) {
	e.viewport.Zoom(focal, scrollDelta)
}

// Readout formats the live position feedback for a pointer at the given
// world position.
func (e *Editor) Readout(world geometry.Point2D) string {
	if !e.doc.Ref.ContainsWorld(world) {
		return OutsideAxesReadout
	}
	return fmt.Sprintf("%.2f, %.2f", world.X, world.Y)
}

// TickPan applies the UI gating state to the pan environment and performs
// one pan step. Returns whether the viewport moved; the caller re-renders
// after every step so motion stays continuous.
func (e *Editor) TickPan(env PanEnv) bool {
	env.ZoomBoxActive = e.zoomBoxActive
	env.PanToolActive = e.panToolActive
	env.OverToolbar = e.overToolbar
	env.OverExport = e.overExport
	return e.viewport.TickPan(env)
}

// SetZoomBoxActive marks the zoom-box interaction mode.
func (e *Editor) SetZoomBoxActive(active bool) { e.zoomBoxActive = active }

// SetPanToolActive marks the built-in pan tool mode.
func (e *Editor) SetPanToolActive(active bool) { e.panToolActive = active }

// SetOverToolbar marks the pointer hovering the zoom/pan toolbar.
func (e *Editor) SetOverToolbar(over bool) { e.overToolbar = over }

// SetOverExport marks the pointer hovering the export control.
func (e *Editor) SetOverExport(over bool) { e.overExport = over }

// Export derives waypoints and poses for every committed path and hands
// them to the consumer. Excluded paths are reported in the result, not
// treated as a failure.
func (e *Editor) Export() (*Result, error) {
	res := BuildResult(e.doc.Paths())
	for _, sk := range res.Skipped {
		log.Printf("export: skipping path %d: %s", sk.Index, sk.Reason)
	}
	if e.consumer != nil {
		if err := e.consumer.Consume(res); err != nil {
			return res, fmt.Errorf("export consumer: %w", err)
		}
	}
	return res, nil
}
