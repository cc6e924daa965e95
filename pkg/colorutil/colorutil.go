// Package colorutil provides shared color utilities for the site annotator.
package colorutil

import (
	"image/color"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange  = color.RGBA{R: 255, G: 160, B: 0, A: 255}
	Red     = color.RGBA{R: 230, G: 40, B: 40, A: 255}
)

// pathPalette is the cycle of colors assigned to committed paths by index.
var pathPalette = []color.RGBA{
	Cyan,
	Magenta,
	Green,
	Orange,
	Blue,
	Red,
	White,
}

// PathColor returns a stable, visually distinct color for the path at the
// given draw-order index. Indices beyond the palette wrap around.
func PathColor(index int) color.RGBA {
	if index < 0 {
		index = 0
	}
	return pathPalette[index%len(pathPalette)]
}
