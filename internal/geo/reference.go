// Package geo maps between raster pixel coordinates and metric world
// coordinates for a georeferenced site image.
package geo

import (
	"errors"
	"fmt"
	"image"

	"site-annotator/pkg/geometry"
)

// ErrInvalidReference indicates a degenerate or inconsistent image reference.
var ErrInvalidReference = errors.New("invalid image reference")

// ImageReference binds a raster of known pixel size to a world-coordinate
// extent. Pixel row 0 corresponds to WorldYMax: image rows grow downward
// while world Y grows upward.
type ImageReference struct {
	PixelWidth  int     `json:"pixel_width"`
	PixelHeight int     `json:"pixel_height"`
	WorldXMin   float64 `json:"world_x_min"`
	WorldXMax   float64 `json:"world_x_max"`
	WorldYMin   float64 `json:"world_y_min"`
	WorldYMax   float64 `json:"world_y_max"`
}

// Validate checks the reference invariants: positive pixel dimensions and a
// non-degenerate world extent.
func (r ImageReference) Validate() error {
	if r.PixelWidth <= 0 || r.PixelHeight <= 0 {
		return fmt.Errorf("%w: pixel size %dx%d", ErrInvalidReference, r.PixelWidth, r.PixelHeight)
	}
	if r.WorldXMax <= r.WorldXMin {
		return fmt.Errorf("%w: world X range [%g, %g]", ErrInvalidReference, r.WorldXMin, r.WorldXMax)
	}
	if r.WorldYMax <= r.WorldYMin {
		return fmt.Errorf("%w: world Y range [%g, %g]", ErrInvalidReference, r.WorldYMin, r.WorldYMax)
	}
	return nil
}

// ValidateAgainst checks the reference against a decoded raster. The declared
// pixel size must match the image exactly.
func (r ImageReference) ValidateAgainst(img image.Image) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if img == nil {
		return fmt.Errorf("%w: no image", ErrInvalidReference)
	}
	b := img.Bounds()
	if b.Dx() != r.PixelWidth || b.Dy() != r.PixelHeight {
		return fmt.Errorf("%w: image is %dx%d, reference declares %dx%d",
			ErrInvalidReference, b.Dx(), b.Dy(), r.PixelWidth, r.PixelHeight)
	}
	return nil
}

// WorldExtent returns the full world-coordinate extent as a rectangle.
func (r ImageReference) WorldExtent() geometry.Rect {
	return geometry.Rect{
		X:      r.WorldXMin,
		Y:      r.WorldYMin,
		Width:  r.WorldXMax - r.WorldXMin,
		Height: r.WorldYMax - r.WorldYMin,
	}
}

// ContainsWorld reports whether a world point lies within the extent.
func (r ImageReference) ContainsWorld(p geometry.Point2D) bool {
	return r.WorldExtent().Contains(p)
}
