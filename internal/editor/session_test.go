package editor

import (
	"image"
	"testing"

	"site-annotator/internal/geo"
	"site-annotator/internal/scene"
	"site-annotator/pkg/geometry"
)

func testDoc(t *testing.T) *scene.Document {
	t.Helper()
	ref := geo.ImageReference{
		PixelWidth:  100,
		PixelHeight: 50,
		WorldXMin:   0,
		WorldXMax:   10,
		WorldYMin:   0,
		WorldYMax:   5,
	}
	doc, err := scene.NewDocument(image.NewRGBA(image.Rect(0, 0, 100, 50)), ref)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc
}

func TestSingleClickThenRightClickIsDiscarded(t *testing.T) {
	doc := testDoc(t)
	s := NewSession(doc)

	if !s.PointerDown(geometry.NewPoint2D(1, 1)) {
		t.Fatal("PointerDown inside the image should start drawing")
	}
	outcome, committed := s.Finish()
	if outcome != Discarded {
		t.Errorf("outcome = %v, want Discarded", outcome)
	}
	if committed != nil {
		t.Error("discarded finish returned a path")
	}
	if doc.PathCount() != 0 {
		t.Errorf("document has %d paths, want 0", doc.PathCount())
	}
	if s.State() != Idle {
		t.Errorf("state after finish = %v, want Idle", s.State())
	}
}

func TestPointerDownOutsideImageIgnored(t *testing.T) {
	s := NewSession(testDoc(t))
	if s.PointerDown(geometry.NewPoint2D(11, 1)) {
		t.Error("PointerDown outside the world extent started drawing")
	}
	if s.State() != Idle {
		t.Errorf("state = %v, want Idle", s.State())
	}
}

func TestOnlyOneSessionAtATime(t *testing.T) {
	s := NewSession(testDoc(t))
	if !s.PointerDown(geometry.NewPoint2D(1, 1)) {
		t.Fatal("first PointerDown failed")
	}
	if s.PointerDown(geometry.NewPoint2D(2, 2)) {
		t.Error("PointerDown while drawing started a second session")
	}
}

func TestDrawCommitFlow(t *testing.T) {
	doc := testDoc(t)
	s := NewSession(doc)

	s.PointerDown(geometry.NewPoint2D(1, 1))
	if doc.InProgress == nil {
		t.Fatal("document not tracking the in-progress path")
	}
	s.AddPoint(geometry.NewPoint2D(2, 2))
	s.AddPoint(geometry.NewPoint2D(2, 2)) // accidental double-add
	s.AddPoint(geometry.NewPoint2D(3, 1))

	outcome, committed := s.Finish()
	if outcome != Committed {
		t.Fatalf("outcome = %v, want Committed", outcome)
	}
	if committed.Len() != 3 {
		t.Errorf("committed path has %d waypoints, want 3 after dedup", committed.Len())
	}
	if doc.PathCount() != 1 {
		t.Errorf("document has %d paths, want 1", doc.PathCount())
	}
	if doc.InProgress != nil {
		t.Error("in-progress path not cleared after commit")
	}

	// The session is reusable for the next polyline.
	if !s.PointerDown(geometry.NewPoint2D(4, 4)) {
		t.Error("session not reusable after a commit")
	}
}

func TestAddPointRequiresDrawing(t *testing.T) {
	s := NewSession(testDoc(t))
	if s.AddPoint(geometry.NewPoint2D(1, 1)) {
		t.Error("AddPoint succeeded while idle")
	}
}
