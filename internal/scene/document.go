// Package scene owns the editor's document: a georeferenced site image and
// the paths drawn over it.
package scene

import (
	"image"

	"site-annotator/internal/geo"
	"site-annotator/internal/path"
)

// Document is the exclusive owner of the image reference and all drawn
// paths for one editing session. A new document is created when the editor
// opens an image and discarded when the session ends.
type Document struct {
	Ref   geo.ImageReference
	Image image.Image

	// InProgress is the path currently being drawn, if any. It belongs to
	// the drawing session and is not part of the committed collection.
	InProgress *path.Path

	paths []*path.Path
}

// NewDocument validates the reference against the image and creates a
// document. Validation failure is fatal for the session: no document is
// returned.
func NewDocument(img image.Image, ref geo.ImageReference) (*Document, error) {
	if err := ref.ValidateAgainst(img); err != nil {
		return nil, err
	}
	return &Document{Ref: ref, Image: img}, nil
}

// AppendPath adds a committed path at the end of the draw-order collection.
func (d *Document) AppendPath(p *path.Path) {
	d.paths = append(d.paths, p)
}

// Paths returns the committed paths in draw order.
func (d *Document) Paths() []*path.Path {
	return d.paths
}

// PathCount returns the number of committed paths.
func (d *Document) PathCount() int {
	return len(d.paths)
}

// RemovePath deletes the committed path at index i, preserving order.
func (d *Document) RemovePath(i int) {
	if i < 0 || i >= len(d.paths) {
		return
	}
	d.paths = append(d.paths[:i], d.paths[i+1:]...)
}

// Reset drops all committed paths and any in-progress path.
func (d *Document) Reset() {
	d.paths = nil
	d.InProgress = nil
}
