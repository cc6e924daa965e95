package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"site-annotator/internal/geo"
)

// ErrUnknownScene indicates a scene id with no registry entry.
var ErrUnknownScene = errors.New("unknown scene")

// Source describes where a scene's raster lives and how it is
// georeferenced. Image paths are relative to the registry file.
type Source struct {
	Name      string             `json:"name"`
	ImagePath string             `json:"image"`
	Ref       geo.ImageReference `json:"reference"`
}

// Registry resolves scene identifiers to sources. It is loaded from a JSON
// index file maintained outside this tool.
type Registry struct {
	dir     string
	sources map[string]Source
}

// LoadRegistry reads a scene index file.
func LoadRegistry(indexPath string) (*Registry, error) {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene index: %w", err)
	}

	var sources map[string]Source
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse scene index %s: %w", indexPath, err)
	}

	return &Registry{
		dir:     filepath.Dir(indexPath),
		sources: sources,
	}, nil
}

// Resolve returns the source for a scene id.
func (r *Registry) Resolve(id string) (Source, error) {
	src, ok := r.sources[id]
	if !ok {
		return Source{}, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	if src.ImagePath != "" && !filepath.IsAbs(src.ImagePath) {
		src.ImagePath = filepath.Join(r.dir, src.ImagePath)
	}
	return src, nil
}

// Names returns the registered scene ids, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
