package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LightConfig is a single directional light in eye space.
type LightConfig struct {
	Dir     mgl32.Vec3 // points toward the light, normalized
	Ambient float64
	Diffuse float64
}

// DefaultLightConfig returns a key light above and to the right of the camera.
func DefaultLightConfig() LightConfig {
	return LightConfig{
		Dir:     mgl32.Vec3{0.4, 0.6, 1}.Normalize(),
		Ambient: 0.35,
		Diffuse: 0.75,
	}
}

// Shade returns the lighting scalar for a unit face normal.
// Faces are lit from both sides.
func (lc *LightConfig) Shade(normal mgl32.Vec3) float64 {
	ndl := math.Abs(float64(normal.Dot(lc.Dir)))
	return lc.Ambient + ndl*lc.Diffuse
}
