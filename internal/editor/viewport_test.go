package editor

import (
	"math"
	"testing"

	"site-annotator/pkg/geometry"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func testExtent() geometry.Rect {
	return geometry.NewRect(0, 0, 100, 100)
}

// testWindow surrounds the unit axes box with a margin on every side.
func testWindow() geometry.Rect {
	return geometry.NewRect(-0.2, -0.2, 1.4, 1.4)
}

func viewApprox(t *testing.T, got, want Viewport, eps float64) {
	t.Helper()
	if !approxEqual(got.X.Min, want.X.Min, eps) || !approxEqual(got.X.Max, want.X.Max, eps) ||
		!approxEqual(got.Y.Min, want.Y.Min, eps) || !approxEqual(got.Y.Max, want.Y.Max, eps) {
		t.Errorf("viewport = %+v, want %+v", got, want)
	}
}

func TestZoomZeroDeltaIsNoOp(t *testing.T) {
	vc := NewViewportController(testExtent())
	before := vc.View()
	vc.Zoom(geometry.NewPoint2D(30, 70), 0)
	viewApprox(t, vc.View(), before, epsilon)
}

func TestZoomRoundTrip(t *testing.T) {
	vc := NewViewportController(testExtent())
	focal := geometry.NewPoint2D(50, 50)

	// Zoom in first so the outward step is not clamped by the extent.
	vc.Zoom(focal, -4)
	before := vc.View()

	vc.Zoom(focal, -2)
	vc.Zoom(focal, 2)
	viewApprox(t, vc.View(), before, 1e-6)
}

func TestZoomOutClampsToExtent(t *testing.T) {
	vc := NewViewportController(testExtent())
	vc.Zoom(geometry.NewPoint2D(10, 90), 25)

	v := vc.View()
	viewApprox(t, v, Viewport{X: Span{0, 100}, Y: Span{0, 100}}, epsilon)
	if v.X.Size() <= 0 || v.Y.Size() <= 0 {
		t.Fatalf("viewport degenerated: %+v", v)
	}
}

func TestZoomOffCenterFocalStaysWithinExtent(t *testing.T) {
	vc := NewViewportController(testExtent())
	vc.Zoom(geometry.NewPoint2D(95, 5), -3)
	for i := 0; i < 50; i++ {
		vc.Zoom(geometry.NewPoint2D(120, -30), 1)
		v := vc.View()
		if v.X.Min < 0 || v.X.Max > 100 || v.Y.Min < 0 || v.Y.Max > 100 {
			t.Fatalf("step %d: viewport %+v escaped extent", i, v)
		}
		if v.X.Size() <= 0 || v.Y.Size() <= 0 {
			t.Fatalf("step %d: viewport %+v inverted", i, v)
		}
	}
}

func TestTickPanSuppressedAtMaxZoomOut(t *testing.T) {
	vc := NewViewportController(testExtent())
	if !vc.AtMaxZoomOut() {
		t.Fatal("full view should count as max zoom-out")
	}

	env := PanEnv{Pointer: geometry.NewPoint2D(-0.15, 0.5), Window: testWindow()}
	if vc.TickPan(env) {
		t.Error("TickPan moved while at max zoom-out")
	}
}

func TestTickPanPointerInsideAxesDoesNothing(t *testing.T) {
	vc := NewViewportController(testExtent())
	vc.Zoom(geometry.NewPoint2D(50, 50), -5)

	env := PanEnv{Pointer: geometry.NewPoint2D(0.5, 0.5), Window: testWindow()}
	before := vc.View()
	if vc.TickPan(env) {
		t.Error("TickPan moved with pointer inside the axes")
	}
	viewApprox(t, vc.View(), before, epsilon)
}

func TestTickPanGating(t *testing.T) {
	cases := []struct {
		name string
		env  PanEnv
	}{
		{"zoom box", PanEnv{ZoomBoxActive: true}},
		{"pan tool", PanEnv{PanToolActive: true}},
		{"toolbar hover", PanEnv{OverToolbar: true}},
		{"export hover", PanEnv{OverExport: true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			vc := NewViewportController(testExtent())
			vc.Zoom(geometry.NewPoint2D(50, 50), -5)

			env := c.env
			env.Pointer = geometry.NewPoint2D(-0.15, 0.5)
			env.Window = testWindow()
			if vc.TickPan(env) {
				t.Error("TickPan moved despite gating")
			}
		})
	}
}

func TestTickPanStepCappedAtOnePercent(t *testing.T) {
	vc := NewViewportController(testExtent())
	vc.Zoom(geometry.NewPoint2D(50, 50), -5)
	vc.StartPan()

	// Pointer deep in the margin: full ramp, step must equal the cap.
	env := PanEnv{Pointer: geometry.NewPoint2D(-0.19, 0.5), Window: testWindow()}
	before := vc.View()
	if !vc.TickPan(env) {
		t.Fatal("TickPan did not move")
	}
	after := vc.View()

	moved := before.X.Min - after.X.Min
	want := maxPanStepFraction * before.X.Size()
	if !approxEqual(moved, want, 1e-9) {
		t.Errorf("pan step = %f, want %f", moved, want)
	}
	if !approxEqual(after.Y.Min, before.Y.Min, epsilon) {
		t.Error("pan moved the Y axis for an X-only pointer")
	}
}

func TestTickPanSpeedRampsNearAxisBoundary(t *testing.T) {
	vc := NewViewportController(testExtent())
	vc.Zoom(geometry.NewPoint2D(50, 50), -5)
	vc.StartPan()

	// threshold = margin/window = 0.2/1.4; half that depth gives half speed.
	threshold := 0.2 / 1.4
	env := PanEnv{Pointer: geometry.NewPoint2D(-threshold/2, 0.5), Window: testWindow()}
	before := vc.View()
	if !vc.TickPan(env) {
		t.Fatal("TickPan did not move")
	}
	moved := before.X.Min - vc.View().X.Min
	want := 0.5 * maxPanStepFraction * before.X.Size()
	if !approxEqual(moved, want, 1e-9) {
		t.Errorf("ramped pan step = %f, want %f", moved, want)
	}
}

func TestTickPanStopsAtExtentBoundary(t *testing.T) {
	vc := NewViewportController(testExtent())
	vc.Zoom(geometry.NewPoint2D(50, 50), -5)
	vc.StartPan()

	env := PanEnv{Pointer: geometry.NewPoint2D(-0.19, 0.5), Window: testWindow()}
	for i := 0; i < 10000; i++ {
		moved := vc.TickPan(env)
		v := vc.View()
		if v.X.Min < -epsilon || v.X.Max > 100+epsilon ||
			v.Y.Min < -epsilon || v.Y.Max > 100+epsilon {
			t.Fatalf("tick %d: viewport %+v escaped extent", i, v)
		}
		if !moved {
			break
		}
	}

	if !approxEqual(vc.View().X.Min, 0, epsilon) {
		t.Errorf("pan did not stop at the extent boundary: X.Min = %f", vc.View().X.Min)
	}
	if vc.TickPan(env) {
		t.Error("TickPan kept moving at the boundary")
	}
}

func TestTickPanPointerBeyondWindowDoesNothing(t *testing.T) {
	vc := NewViewportController(testExtent())
	vc.Zoom(geometry.NewPoint2D(50, 50), -5)

	env := PanEnv{Pointer: geometry.NewPoint2D(-5, 0.5), Window: testWindow()}
	if vc.TickPan(env) {
		t.Error("TickPan moved for a pointer outside the containing window")
	}
}

func TestStartPanSnapshotStabilizesSpeed(t *testing.T) {
	vc := NewViewportController(testExtent())
	vc.Zoom(geometry.NewPoint2D(50, 50), -5)
	vc.StartPan()
	snapSpan := vc.View().X.Size()

	// Zooming out mid-pan must not speed the pan up: the ramp still uses
	// the snapshot span.
	vc.Zoom(geometry.NewPoint2D(50, 50), 1)

	env := PanEnv{Pointer: geometry.NewPoint2D(-0.19, 0.5), Window: testWindow()}
	before := vc.View()
	if !vc.TickPan(env) {
		t.Fatal("TickPan did not move")
	}
	moved := before.X.Min - vc.View().X.Min
	want := maxPanStepFraction * snapSpan
	if !approxEqual(moved, want, 1e-9) {
		t.Errorf("snapshot pan step = %f, want %f", moved, want)
	}
}
