// Package path holds drawn waypoint paths and derives oriented poses from
// them for downstream trajectory consumers.
package path

import (
	"errors"
	"math"

	"site-annotator/pkg/geometry"
)

var (
	// ErrInsufficientPoints indicates a path too short to commit.
	ErrInsufficientPoints = errors.New("path has fewer than 2 distinct points")

	// ErrDegenerateSegment indicates two coincident consecutive waypoints;
	// the heading of a zero-length segment is undefined.
	ErrDegenerateSegment = errors.New("path contains a zero-length segment")
)

// Pose is a world position with a heading in degrees, measured from the +X
// axis and normalized to [0, 360).
type Pose struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

// Path is an ordered sequence of world-coordinate waypoints.
type Path struct {
	points []geometry.Point2D
}

// New creates an empty path.
func New() *Path {
	return &Path{}
}

// FromPoints creates a path seeded with the given waypoints.
func FromPoints(points ...geometry.Point2D) *Path {
	p := &Path{points: make([]geometry.Point2D, len(points))}
	copy(p.points, points)
	return p
}

// Append adds a waypoint as the new last element.
func (p *Path) Append(pt geometry.Point2D) {
	p.points = append(p.points, pt)
}

// Len returns the number of waypoints.
func (p *Path) Len() int {
	return len(p.points)
}

// At returns the waypoint at index i.
func (p *Path) At(i int) geometry.Point2D {
	return p.points[i]
}

// Points returns a copy of the waypoints in order.
func (p *Path) Points() []geometry.Point2D {
	out := make([]geometry.Point2D, len(p.points))
	copy(out, p.points)
	return out
}

// Commit validates and cleans the path for inclusion in a document. Exact
// coordinate repeats are removed, keeping the first occurrence and
// preserving order. Returns ErrInsufficientPoints when fewer than 2
// waypoints were drawn, or when dedup leaves fewer than 2.
func (p *Path) Commit() (*Path, error) {
	if len(p.points) < 2 {
		return nil, ErrInsufficientPoints
	}

	seen := make(map[geometry.Point2D]bool, len(p.points))
	cleaned := make([]geometry.Point2D, 0, len(p.points))
	for _, pt := range p.points {
		if seen[pt] {
			continue
		}
		seen[pt] = true
		cleaned = append(cleaned, pt)
	}

	if len(cleaned) < 2 {
		return nil, ErrInsufficientPoints
	}
	return &Path{points: cleaned}, nil
}

// Poses derives an oriented pose for every waypoint. Each waypoint from the
// second onward takes the heading of the segment arriving at it; the first
// waypoint duplicates the second's heading since it has no incoming
// segment. Returns ErrDegenerateSegment if any consecutive waypoints
// coincide.
func (p *Path) Poses() ([]Pose, error) {
	n := len(p.points)
	if n < 2 {
		return nil, ErrInsufficientPoints
	}

	poses := make([]Pose, n)
	for i, pt := range p.points {
		poses[i] = Pose{X: pt.X, Y: pt.Y}
	}

	for i := 1; i < n; i++ {
		d := p.points[i].Sub(p.points[i-1])
		h, err := headingDeg(d.X, d.Y)
		if err != nil {
			return nil, err
		}
		poses[i].Heading = h
	}
	poses[0].Heading = poses[1].Heading

	return poses, nil
}

// headingDeg computes the orientation of the vector (dx, dy) in degrees
// from the +X axis. The arccosine gives [0, 180]; vectors in the lower
// half-plane are reflected to (180, 360).
func headingDeg(dx, dy float64) (float64, error) {
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, ErrDegenerateSegment
	}

	deg := math.Acos(dx/length) * 180 / math.Pi
	if dy < 0 {
		deg = 360 - deg
	}
	return math.Mod(deg, 360), nil
}
