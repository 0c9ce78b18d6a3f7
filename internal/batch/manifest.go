package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame int     `json:"frame"`
	Angle float32 `json:"angle"`
	Image string  `json:"image"`
}

// Manifest describes a turntable run.
type Manifest struct {
	Mesh      string          `json:"mesh"`
	Texture   string          `json:"texture,omitempty"`
	Triangles int             `json:"triangles"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Frames    []ManifestEntry `json:"frames"`
}

// WriteManifest writes the manifest for the successful frames in results,
// creating the parent directory if needed.
func WriteManifest(path string, m Manifest, results []Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("manifest: create dir: %w", err)
	}

	m.Frames = make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{
			Frame: r.Frame,
			Angle: r.Angle,
			Image: r.File,
		})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
