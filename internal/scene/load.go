package scene

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/tiff"

	"site-annotator/internal/geo"
)

// LoadImage decodes a site raster from disk. PNG, JPEG, and TIFF are
// supported; aerial site captures often arrive as TIFF.
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadReference reads a standalone image reference JSON file, for callers
// that supply image and reference directly instead of via a registry.
func LoadReference(path string) (geo.ImageReference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return geo.ImageReference{}, fmt.Errorf("failed to read reference: %w", err)
	}
	var ref geo.ImageReference
	if err := json.Unmarshal(data, &ref); err != nil {
		return geo.ImageReference{}, fmt.Errorf("failed to parse reference %s: %w", path, err)
	}
	return ref, ref.Validate()
}

// Open resolves a source into a ready document.
func Open(src Source) (*Document, error) {
	img, err := LoadImage(src.ImagePath)
	if err != nil {
		return nil, err
	}
	return NewDocument(img, src.Ref)
}
