// Package canvas drawing primitives for path overlays.
package canvas

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
)

// fill paints the whole buffer with one color.
func fill(output *image.RGBA, col color.RGBA) {
	b := output.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			output.SetRGBA(x, y, col)
		}
	}
}

// drawBorder draws a 1 pixel rectangle outline.
func drawBorder(output *image.RGBA, x, y, w, h int, col color.RGBA) {
	for i := 0; i < w; i++ {
		output.SetRGBA(x+i, y, col)
		output.SetRGBA(x+i, y+h-1, col)
	}
	for i := 0; i < h; i++ {
		output.SetRGBA(x, y+i, col)
		output.SetRGBA(x+w-1, y+i, col)
	}
}

// drawMarker draws a filled 5x5 waypoint marker, clipped.
func drawMarker(output *image.RGBA, cx, cy int, col color.RGBA, clip image.Rectangle) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			setClipped(output, cx+dx, cy+dy, col, clip)
		}
	}
}

// drawLine draws a clipped line with the given thickness using integer
// Bresenham stepping.
func drawLine(output *image.RGBA, x0, y0, x1, y1 int, col color.RGBA, thickness int, clip image.Rectangle) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			if dx >= dy {
				setClipped(output, x0, y0+t, col, clip)
			} else {
				setClipped(output, x0+t, y0, col, clip)
			}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func setClipped(output *image.RGBA, x, y int, col color.RGBA, clip image.Rectangle) {
	if x < clip.Min.X || x >= clip.Max.X || y < clip.Min.Y || y >= clip.Max.Y {
		return
	}
	output.SetRGBA(x, y, col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type sceneCanvasRenderer struct {
	canvas *SceneCanvas
}

func (r *sceneCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *sceneCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(2*axesMargin+100, 2*axesMargin+100)
}

func (r *sceneCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *sceneCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

// Destroy stops any in-flight pan. The pan ticker must never touch a
// destroyed view.
func (r *sceneCanvasRenderer) Destroy() {
	r.canvas.stopPan()
}

var _ fyne.WidgetRenderer = (*sceneCanvasRenderer)(nil)
