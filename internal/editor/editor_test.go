package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-annotator/internal/path"
	"site-annotator/pkg/geometry"
)

func TestEditorEndToEndExport(t *testing.T) {
	var delivered *Result
	consumer := ConsumerFunc(func(r *Result) error {
		delivered = r
		return nil
	})

	ed, err := New(testDoc(t), consumer)
	require.NoError(t, err)

	// First path: two clicks, double-click to finish.
	ed.HandleTap(geometry.NewPoint2D(1, 1))
	ed.HandleTap(geometry.NewPoint2D(2, 2))
	outcome, _ := ed.HandleFinish()
	require.Equal(t, Committed, outcome)

	// Second path: three clicks, right-click to finish.
	ed.HandleTap(geometry.NewPoint2D(5, 1))
	ed.HandleTap(geometry.NewPoint2D(6, 1))
	ed.HandleTap(geometry.NewPoint2D(6, 2))
	outcome, _ = ed.HandleFinish()
	require.Equal(t, Committed, outcome)

	res, err := ed.Export()
	require.NoError(t, err)
	require.Same(t, res, delivered)

	require.Len(t, res.Waypoints, 2)
	require.Len(t, res.RefPoses, 2)
	assert.Empty(t, res.Skipped)
	for i := range res.Waypoints {
		assert.Len(t, res.RefPoses[i], len(res.Waypoints[i]), "path %d pose count", i)
	}

	wantFirst := []geometry.Point2D{{X: 1, Y: 1}, {X: 2, Y: 2}}
	if diff := cmp.Diff(wantFirst, res.Waypoints[0]); diff != "" {
		t.Errorf("first waypoint path mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 45.0, res.RefPoses[0][0].Heading, 1e-9)
	assert.InDelta(t, 45.0, res.RefPoses[0][1].Heading, 1e-9)

	// Second path turns north at its corner.
	assert.InDelta(t, 0.0, res.RefPoses[1][1].Heading, 1e-9)
	assert.InDelta(t, 90.0, res.RefPoses[1][2].Heading, 1e-9)
}

func TestExportExcludesUnusablePathAndReports(t *testing.T) {
	doc := testDoc(t)
	ed, err := New(doc, nil)
	require.NoError(t, err)

	doc.AppendPath(path.FromPoints(geometry.NewPoint2D(1, 1), geometry.NewPoint2D(1, 1)))
	doc.AppendPath(path.FromPoints(geometry.NewPoint2D(1, 1), geometry.NewPoint2D(2, 1)))

	res, err := ed.Export()
	require.NoError(t, err)
	require.Len(t, res.Waypoints, 1)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 0, res.Skipped[0].Index)
	assert.NotEmpty(t, res.Skipped[0].Reason)
}

func TestExportConsumerFailureSurfaces(t *testing.T) {
	boom := errors.New("downstream unavailable")
	ed, err := New(testDoc(t), ConsumerFunc(func(*Result) error { return boom }))
	require.NoError(t, err)

	_, err = ed.Export()
	assert.ErrorIs(t, err, boom)
}

func TestReadoutFormatting(t *testing.T) {
	ed, err := New(testDoc(t), nil)
	require.NoError(t, err)

	assert.Equal(t, "1.50, 2.25", ed.Readout(geometry.NewPoint2D(1.5, 2.25)))
	assert.Equal(t, OutsideAxesReadout, ed.Readout(geometry.NewPoint2D(10.5, 2)))
	assert.Equal(t, OutsideAxesReadout, ed.Readout(geometry.NewPoint2D(2, -0.1)))
}

func TestTapOutsideImageDoesNotStartPath(t *testing.T) {
	ed, err := New(testDoc(t), nil)
	require.NoError(t, err)

	ed.HandleTap(geometry.NewPoint2D(50, 50))
	assert.Equal(t, Idle, ed.Session().State())

	outcome, _ := ed.HandleFinish()
	assert.Equal(t, Idle, outcome)
	assert.Zero(t, ed.Document().PathCount())
}

func TestHoverGatingBlocksPanThroughEditor(t *testing.T) {
	ed, err := New(testDoc(t), nil)
	require.NoError(t, err)
	ed.Viewport().Zoom(geometry.NewPoint2D(5, 2.5), -5)

	env := PanEnv{
		Pointer: geometry.NewPoint2D(-0.15, 0.5),
		Window:  geometry.NewRect(-0.2, -0.2, 1.4, 1.4),
	}
	require.True(t, ed.TickPan(env), "pan should move when nothing gates it")

	ed.SetOverExport(true)
	assert.False(t, ed.TickPan(env), "export hover must suppress panning")
	ed.SetOverExport(false)
	ed.SetOverToolbar(true)
	assert.False(t, ed.TickPan(env), "toolbar hover must suppress panning")
}
