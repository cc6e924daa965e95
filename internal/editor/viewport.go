// Package editor holds the interaction state machines of the scene editor:
// viewport pan/zoom, the polyline drawing session, and the orchestrating
// controller that translates UI events into state transitions.
package editor

import (
	"math"

	"github.com/tanema/gween/ease"

	"site-annotator/pkg/geometry"
)

const (
	// zoomBase is the per-scroll-step scale factor. Positive scroll deltas
	// zoom out (scroll-away semantics).
	zoomBase = 1.1

	// maxPanStepFraction caps a single pan tick at 1% of the current span.
	maxPanStepFraction = 0.01

	// maxZoomOutFraction is the extent coverage at which edge panning is
	// suppressed: the view already shows essentially the whole site.
	maxZoomOutFraction = 0.95
)

// Span is one axis of a viewport, always non-degenerate (Min < Max).
type Span struct {
	Min, Max float64
}

// Size returns the span length.
func (s Span) Size() float64 {
	return s.Max - s.Min
}

// Contains reports whether v lies within the span.
func (s Span) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// Viewport is the currently visible world rectangle.
type Viewport struct {
	X, Y Span
}

// Rect returns the viewport as a world rectangle.
func (v Viewport) Rect() geometry.Rect {
	return geometry.Rect{X: v.X.Min, Y: v.Y.Min, Width: v.X.Size(), Height: v.Y.Size()}
}

// Contains reports whether a world point is visible.
func (v Viewport) Contains(p geometry.Point2D) bool {
	return v.X.Contains(p.X) && v.Y.Contains(p.Y)
}

// PanEnv describes the pointer situation for one pan tick. Pointer and
// Window use axis-fraction coordinates: the axes box is the unit square,
// with X growing right and Y growing up, so a pointer inside the axes has
// both coordinates in [0,1] and the containing window extends beyond.
type PanEnv struct {
	Pointer geometry.Point2D
	Window  geometry.Rect

	// Incompatible interaction modes and excluded UI regions. Any of
	// these suppresses panning entirely.
	ZoomBoxActive bool
	PanToolActive bool
	OverToolbar   bool
	OverExport    bool
}

func (e PanEnv) blocked() bool {
	return e.ZoomBoxActive || e.PanToolActive || e.OverToolbar || e.OverExport
}

// ViewportController owns the visible world rectangle and mutates it
// through discrete zoom and pan transitions, always keeping it inside the
// site's world extent.
type ViewportController struct {
	extent geometry.Rect
	view   Viewport

	// panRef is the viewport snapshot taken when a drawing session began.
	// Pan speed is computed against it so the feel stays stable while the
	// view slides.
	panRef *Viewport
}

// NewViewportController creates a controller showing the full extent.
func NewViewportController(extent geometry.Rect) *ViewportController {
	vc := &ViewportController{extent: extent}
	vc.view = Viewport{
		X: Span{Min: extent.X, Max: extent.MaxX()},
		Y: Span{Min: extent.Y, Max: extent.MaxY()},
	}
	return vc
}

// View returns the current viewport.
func (vc *ViewportController) View() Viewport {
	return vc.view
}

// Extent returns the full world extent the viewport is clamped to.
func (vc *ViewportController) Extent() geometry.Rect {
	return vc.extent
}

// Reset restores the viewport to the full extent.
func (vc *ViewportController) Reset() {
	vc.view = Viewport{
		X: Span{Min: vc.extent.X, Max: vc.extent.MaxX()},
		Y: Span{Min: vc.extent.Y, Max: vc.extent.MaxY()},
	}
}

// Zoom scales both axes around the focal point by zoomBase^scrollDelta and
// clamps the result to the world extent. A delta of 0 is a no-op.
func (vc *ViewportController) Zoom(focal geometry.Point2D, scrollDelta float64) {
	factor := math.Pow(zoomBase, scrollDelta)
	vc.view.X = clampSpan(scaleAround(vc.view.X, focal.X, factor),
		Span{Min: vc.extent.X, Max: vc.extent.MaxX()}, vc.view.X)
	vc.view.Y = clampSpan(scaleAround(vc.view.Y, focal.Y, factor),
		Span{Min: vc.extent.Y, Max: vc.extent.MaxY()}, vc.view.Y)
}

// ZoomIn zooms one step in around the view center.
func (vc *ViewportController) ZoomIn() {
	vc.Zoom(vc.view.Rect().Center(), -1)
}

// ZoomOut zooms one step out around the view center.
func (vc *ViewportController) ZoomOut() {
	vc.Zoom(vc.view.Rect().Center(), 1)
}

// StartPan snapshots the current viewport. Speed and activation of
// subsequent pan ticks are computed against the snapshot, not the live
// viewport.
func (vc *ViewportController) StartPan() {
	snap := vc.view
	vc.panRef = &snap
}

// EndPan discards the pan snapshot.
func (vc *ViewportController) EndPan() {
	vc.panRef = nil
}

// AtMaxZoomOut reports whether the view already covers at least 95% of the
// world extent on both axes.
func (vc *ViewportController) AtMaxZoomOut() bool {
	return vc.view.X.Size() >= maxZoomOutFraction*vc.extent.Width &&
		vc.view.Y.Size() >= maxZoomOutFraction*vc.extent.Height
}

// TickPan performs one bounded pan step toward the pointer and reports
// whether the viewport moved. It is idempotent at the stop conditions:
// pointer inside the axes, an excluded region or mode active, maximum
// zoom-out, or the extent boundary reached. The host event loop calls it
// once per frame while motion continues.
func (vc *ViewportController) TickPan(env PanEnv) bool {
	if env.blocked() || vc.AtMaxZoomOut() {
		return false
	}

	ref := vc.view
	if vc.panRef != nil {
		ref = *vc.panRef
	}

	movedX := vc.panAxis(&vc.view.X,
		Span{Min: vc.extent.X, Max: vc.extent.MaxX()},
		ref.X.Size(), env.Pointer.X, env.Window.X, env.Window.MaxX())
	movedY := vc.panAxis(&vc.view.Y,
		Span{Min: vc.extent.Y, Max: vc.extent.MaxY()},
		ref.Y.Size(), env.Pointer.Y, env.Window.Y, env.Window.MaxY())
	return movedX || movedY
}

// panAxis slides one axis toward an out-of-range pointer. u is the pointer
// position in axis-fraction units; winMin/winMax bound the containing
// window in the same units.
func (vc *ViewportController) panAxis(axis *Span, limit Span, refSpan, u, winMin, winMax float64) bool {
	switch {
	case u < 0 && u >= winMin:
		step := panStep(-u, -winMin, winMax-winMin, refSpan, axis.Size())
		delta := math.Min(step, axis.Min-limit.Min)
		if delta <= 0 {
			return false
		}
		axis.Min -= delta
		axis.Max -= delta
		return true

	case u > 1 && u <= winMax:
		step := panStep(u-1, winMax-1, winMax-winMin, refSpan, axis.Size())
		delta := math.Min(step, limit.Max-axis.Max)
		if delta <= 0 {
			return false
		}
		axis.Min += delta
		axis.Max += delta
		return true

	default:
		// Pointer inside the axis range, or outside the window.
		return false
	}
}

// panStep computes the world-units step for one tick. Speed ramps linearly
// from zero at the axis boundary to its maximum at a proximity threshold
// derived from the axis-to-window size ratio, and is capped at 1% of the
// current span.
func panStep(depth, margin, windowSize, refSpan, curSpan float64) float64 {
	if margin <= 0 || windowSize <= 0 {
		return 0
	}
	threshold := margin / windowSize // axis size is 1 in fraction units
	if threshold <= 0 {
		threshold = margin
	}

	ramp := float64(ease.Linear(float32(depth), 0, 1, float32(threshold)))
	if ramp > 1 {
		ramp = 1
	}

	step := ramp * maxPanStepFraction * refSpan
	if limit := maxPanStepFraction * curSpan; step > limit {
		step = limit
	}
	return step
}

// scaleAround scales a span about a focal value.
func scaleAround(s Span, focal, factor float64) Span {
	return Span{
		Min: focal - (focal-s.Min)*factor,
		Max: focal + (s.Max-focal)*factor,
	}
}

// clampSpan clamps a span's endpoints to a limit. If clamping would leave
// nothing visible the previous span is kept, so the viewport never
// degenerates or inverts.
func clampSpan(s, limit, prev Span) Span {
	if s.Min < limit.Min {
		s.Min = limit.Min
	}
	if s.Max > limit.Max {
		s.Max = limit.Max
	}
	if s.Max <= s.Min {
		return prev
	}
	return s
}
