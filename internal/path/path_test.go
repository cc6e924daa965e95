package path

import (
	"errors"
	"math"
	"testing"

	"site-annotator/pkg/geometry"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func TestCommitDedupsExactRepeats(t *testing.T) {
	p := FromPoints(pt(0, 0), pt(0, 0), pt(5, 0))

	cleaned, err := p.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	want := []geometry.Point2D{pt(0, 0), pt(5, 0)}
	got := cleaned.Points()
	if len(got) != len(want) {
		t.Fatalf("Commit: got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Commit: point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCommitDedupsNonConsecutiveRepeats(t *testing.T) {
	// Revisiting an earlier waypoint keeps only the first occurrence.
	p := FromPoints(pt(0, 0), pt(3, 0), pt(0, 0), pt(3, 4))

	cleaned, err := p.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	want := []geometry.Point2D{pt(0, 0), pt(3, 0), pt(3, 4)}
	got := cleaned.Points()
	if len(got) != len(want) {
		t.Fatalf("Commit: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Commit: point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCommitRejectsShortPaths(t *testing.T) {
	if _, err := New().Commit(); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("empty path: err = %v, want ErrInsufficientPoints", err)
	}
	if _, err := FromPoints(pt(1, 1)).Commit(); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("single point: err = %v, want ErrInsufficientPoints", err)
	}
	// All duplicates collapse to a single waypoint.
	if _, err := FromPoints(pt(1, 1), pt(1, 1)).Commit(); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("duplicate-only path: err = %v, want ErrInsufficientPoints", err)
	}
}

func TestPosesStraightEast(t *testing.T) {
	poses, err := FromPoints(pt(0, 0), pt(5, 0)).Poses()
	if err != nil {
		t.Fatalf("Poses: %v", err)
	}
	if len(poses) != 2 {
		t.Fatalf("Poses: got %d poses, want 2", len(poses))
	}
	for i, p := range poses {
		if !approxEqual(p.Heading, 0, epsilon) {
			t.Errorf("pose %d heading = %f, want 0", i, p.Heading)
		}
	}
	if !approxEqual(poses[1].X, 5, epsilon) || !approxEqual(poses[1].Y, 0, epsilon) {
		t.Errorf("pose 1 position = (%f,%f), want (5,0)", poses[1].X, poses[1].Y)
	}
}

func TestPosesDiagonalDuplicatesFirstHeading(t *testing.T) {
	poses, err := FromPoints(pt(0, 0), pt(1, 1)).Poses()
	if err != nil {
		t.Fatalf("Poses: %v", err)
	}
	if !approxEqual(poses[0].Heading, 45, epsilon) {
		t.Errorf("pose 0 heading = %f, want 45", poses[0].Heading)
	}
	if !approxEqual(poses[1].Heading, 45, epsilon) {
		t.Errorf("pose 1 heading = %f, want 45", poses[1].Heading)
	}
}

func TestPosesSouthboundQuadrantCorrection(t *testing.T) {
	// Raw arccos angle is 90; dy<0 reflects it to 270.
	poses, err := FromPoints(pt(0, 0), pt(0, -1)).Poses()
	if err != nil {
		t.Fatalf("Poses: %v", err)
	}
	for i, p := range poses {
		if !approxEqual(p.Heading, 270, epsilon) {
			t.Errorf("pose %d heading = %f, want 270", i, p.Heading)
		}
	}
}

func TestPosesIncomingSegmentHeadings(t *testing.T) {
	// East then north: the corner waypoint keeps the heading of the
	// segment arriving at it, the last waypoint that of the final leg.
	poses, err := FromPoints(pt(0, 0), pt(1, 0), pt(1, 1)).Poses()
	if err != nil {
		t.Fatalf("Poses: %v", err)
	}
	want := []float64{0, 0, 90}
	for i, w := range want {
		if !approxEqual(poses[i].Heading, w, epsilon) {
			t.Errorf("pose %d heading = %f, want %f", i, poses[i].Heading, w)
		}
	}
}

func TestPosesWestHeading(t *testing.T) {
	poses, err := FromPoints(pt(0, 0), pt(-2, 0)).Poses()
	if err != nil {
		t.Fatalf("Poses: %v", err)
	}
	if !approxEqual(poses[1].Heading, 180, epsilon) {
		t.Errorf("westward heading = %f, want 180", poses[1].Heading)
	}
}

func TestPosesDegenerateSegment(t *testing.T) {
	// Uncommitted paths may still hold coincident consecutive points.
	_, err := FromPoints(pt(0, 0), pt(0, 0)).Poses()
	if !errors.Is(err, ErrDegenerateSegment) {
		t.Errorf("err = %v, want ErrDegenerateSegment", err)
	}
}

func TestHeadingNormalization(t *testing.T) {
	cases := []struct {
		dx, dy, want float64
	}{
		{1, 0, 0},
		{1, 1, 45},
		{0, 1, 90},
		{-1, 1, 135},
		{-1, 0, 180},
		{-1, -1, 225},
		{0, -1, 270},
		{1, -1, 315},
	}
	for _, c := range cases {
		got, err := headingDeg(c.dx, c.dy)
		if err != nil {
			t.Fatalf("headingDeg(%f,%f): %v", c.dx, c.dy, err)
		}
		if !approxEqual(got, c.want, epsilon) {
			t.Errorf("headingDeg(%f,%f) = %f, want %f", c.dx, c.dy, got, c.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("headingDeg(%f,%f) = %f outside [0,360)", c.dx, c.dy, got)
		}
	}
}
