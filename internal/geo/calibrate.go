package geo

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"site-annotator/pkg/geometry"
)

// Calibrate fits an affine pixel-to-world transform from control point
// pairs using least squares. At least 3 non-collinear pairs are required;
// extra pairs are averaged out by the fit. Used for sites that come with
// surveyed control points instead of a declared world extent.
func Calibrate(pixels, worlds []geometry.Point2D) (geometry.AffineTransform, error) {
	if len(pixels) != len(worlds) {
		return geometry.AffineTransform{}, fmt.Errorf("%w: %d pixel points vs %d world points",
			ErrInvalidReference, len(pixels), len(worlds))
	}
	if len(pixels) < 3 {
		return geometry.AffineTransform{}, fmt.Errorf("%w: need at least 3 control points, got %d",
			ErrInvalidReference, len(pixels))
	}

	n := len(pixels)
	a := mat.NewDense(n, 3, nil)
	b := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		a.Set(i, 0, pixels[i].X)
		a.Set(i, 1, pixels[i].Y)
		a.Set(i, 2, 1)
		b.Set(i, 0, worlds[i].X)
		b.Set(i, 1, worlds[i].Y)
	}

	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		return geometry.AffineTransform{}, fmt.Errorf("%w: control points are collinear: %v",
			ErrInvalidReference, err)
	}

	return geometry.AffineTransform{
		A: x.At(0, 0), B: x.At(1, 0), TX: x.At(2, 0),
		C: x.At(0, 1), D: x.At(1, 1), TY: x.At(2, 1),
	}, nil
}
