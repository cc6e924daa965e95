package geo

import (
	"site-annotator/pkg/geometry"
)

// Mapper converts between pixel and world coordinates for one reference.
// Both directions are total for any finite input; results may lie outside
// the image extent and callers clamp where needed. The mapping is affine
// per axis with the Y axis inverted.
type Mapper struct {
	ref ImageReference
	sx  float64 // world units per pixel, X
	sy  float64 // world units per pixel, Y
}

// NewMapper builds a Mapper from a validated reference.
func NewMapper(ref ImageReference) (*Mapper, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return &Mapper{
		ref: ref,
		sx:  (ref.WorldXMax - ref.WorldXMin) / float64(ref.PixelWidth),
		sy:  (ref.WorldYMax - ref.WorldYMin) / float64(ref.PixelHeight),
	}, nil
}

// Reference returns the image reference the mapper was built from.
func (m *Mapper) Reference() ImageReference {
	return m.ref
}

// PixelToWorld converts a pixel position (column, row) to world coordinates.
func (m *Mapper) PixelToWorld(px, py float64) geometry.Point2D {
	return geometry.Point2D{
		X: m.ref.WorldXMin + px*m.sx,
		Y: m.ref.WorldYMax - py*m.sy,
	}
}

// WorldToPixel converts world coordinates to a pixel position (column, row).
func (m *Mapper) WorldToPixel(x, y float64) (px, py float64) {
	px = (x - m.ref.WorldXMin) / m.sx
	py = (m.ref.WorldYMax - y) / m.sy
	return px, py
}
