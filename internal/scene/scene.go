// Package scene is the viewer's load stage: one mesh and an optional texture.
package scene

import (
	"fmt"
	"image"

	"donut-viewer/internal/objmesh"
	"donut-viewer/internal/texture"
)

// Scene is everything the renderers draw.
type Scene struct {
	Mesh    *objmesh.Mesh
	Texture *image.NRGBA // nil when the texture could not be loaded

	// TextureErr explains a missing texture. Drawing continues untextured.
	TextureErr error
}

// Load reads the mesh at meshPath and resolves texName through textures.
//
// A mesh that fails to load, or loads with no triangles, is fatal: the
// viewer has nothing to draw. A texture failure only degrades the scene.
// An empty texName skips the texture.
func Load(meshPath, texName string, textures texture.Resolver) (*Scene, error) {
	m, err := objmesh.Load(meshPath)
	if err != nil {
		return nil, err
	}
	if err := m.Check(); err != nil {
		return nil, fmt.Errorf("scene: %s: %w", meshPath, err)
	}

	s := &Scene{Mesh: m}
	if texName == "" || textures == nil {
		return s, nil
	}
	s.Texture, s.TextureErr = textures.Resolve(texName)
	if s.TextureErr != nil {
		s.Texture = nil
	}
	return s, nil
}
