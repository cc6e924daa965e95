// Command scenegen generates a synthetic site image with a matching
// georeference and scene index, for trying out the annotator without
// survey data.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"site-annotator/internal/geo"
	"site-annotator/internal/scene"
)

func main() {
	outDir := flag.String("out", "scenes", "Output directory")
	name := flag.String("name", "demo-site", "Scene name")
	width := flag.Int("width", 1200, "Image width in pixels")
	height := flag.Int("height", 800, "Image height in pixels")
	worldW := flag.Float64("world-width", 60, "World extent along X, in meters")
	worldH := flag.Float64("world-height", 40, "World extent along Y, in meters")
	flag.Parse()

	if *width <= 0 || *height <= 0 || *worldW <= 0 || *worldH <= 0 {
		fmt.Fprintln(os.Stderr, "Dimensions must be positive")
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", *outDir, err)
		os.Exit(1)
	}

	// Render at half resolution and upscale, which gives the synthetic
	// scene a softer, photo-like texture.
	rough := renderSite(*width/2, *height/2)
	img := image.NewRGBA(image.Rect(0, 0, *width, *height))
	xdraw.BiLinear.Scale(img, img.Bounds(), rough, rough.Bounds(), xdraw.Over, nil)

	imageName := *name + ".png"
	if err := writePNG(filepath.Join(*outDir, imageName), img); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write image: %v\n", err)
		os.Exit(1)
	}

	ref := geo.ImageReference{
		PixelWidth:  *width,
		PixelHeight: *height,
		WorldXMin:   -*worldW / 2,
		WorldXMax:   *worldW / 2,
		WorldYMin:   -*worldH / 2,
		WorldYMax:   *worldH / 2,
	}
	if err := ref.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Generated reference is invalid: %v\n", err)
		os.Exit(1)
	}

	index := map[string]scene.Source{
		*name: {
			Name:      *name,
			ImagePath: imageName,
			Ref:       ref,
		},
	}
	indexPath := filepath.Join(*outDir, "index.json")
	if err := writeJSON(indexPath, index); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write index: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%dx%d px, %.0fx%.0f m)\n", indexPath, *width, *height, *worldW, *worldH)
	fmt.Printf("Run: site-annotator -scenes %s -scene %s\n", indexPath, *name)
}

// renderSite draws a plausible top-down site: ground, a couple of
// buildings, a road and a grid of survey ticks.
func renderSite(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	ground := color.RGBA{R: 120, G: 132, B: 96, A: 255}
	road := color.RGBA{R: 90, G: 90, B: 94, A: 255}
	roof := color.RGBA{R: 160, G: 120, B: 90, A: 255}
	tick := color.RGBA{R: 200, G: 200, B: 190, A: 255}

	fillRect(img, img.Bounds(), ground)

	// Horizontal road across the middle.
	roadH := h / 10
	fillRect(img, image.Rect(0, h/2-roadH/2, w, h/2+roadH/2), road)

	// Buildings in opposite quadrants.
	fillRect(img, image.Rect(w/8, h/8, w/8+w/4, h/8+h/5), roof)
	fillRect(img, image.Rect(w-w/3, h-h/3, w-w/8, h-h/10), roof)

	// Survey ticks every 1/12th of each axis.
	for gx := 0; gx <= 12; gx++ {
		for gy := 0; gy <= 12; gy++ {
			x := gx * (w - 1) / 12
			y := gy * (h - 1) / 12
			img.SetRGBA(x, y, tick)
			if x+1 < w {
				img.SetRGBA(x+1, y, tick)
			}
			if y+1 < h {
				img.SetRGBA(x, y+1, tick)
			}
		}
	}
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
