package objmesh

import (
	"errors"
	"fmt"

	"donut-viewer/internal/loaderr"
)

// ErrNoTriangles is reported by Mesh.Check for a mesh with nothing to draw.
var ErrNoTriangles = errors.New("mesh has no triangles")

// Mesh holds render-ready, de-indexed triangle data.
// Vertex k uses Positions[3k:3k+3] and TexCoords[2k:2k+2]; every triangle owns its
// three vertices, so shared corners are duplicated.
type Mesh struct {
	TriangleCount int
	Positions     []float32 // 9 floats per triangle
	TexCoords     []float32 // 6 floats per triangle
}

// FaceRef is one corner of a face: 0-based position and texcoord indices.
// VT is -1 when the corner declares no texcoord.
type FaceRef struct {
	V  int
	VT int
}

func newMesh(triangles int) *Mesh {
	return &Mesh{
		TriangleCount: triangles,
		Positions:     make([]float32, triangles*9),
		TexCoords:     make([]float32, triangles*6),
	}
}

func (m *Mesh) setVertex(k int, pos [3]float32, uv [2]float32) {
	copy(m.Positions[k*3:k*3+3], pos[:])
	copy(m.TexCoords[k*2:k*2+2], uv[:])
}

// VertexCount returns the number of triangle corners.
func (m *Mesh) VertexCount() int {
	return m.TriangleCount * 3
}

// Position returns the position of vertex k.
func (m *Mesh) Position(k int) [3]float32 {
	return [3]float32{m.Positions[k*3], m.Positions[k*3+1], m.Positions[k*3+2]}
}

// TexCoord returns the texture coordinate of vertex k.
func (m *Mesh) TexCoord(k int) [2]float32 {
	return [2]float32{m.TexCoords[k*2], m.TexCoords[k*2+1]}
}

// Bounds returns the axis-aligned extent of all vertices. An empty mesh yields zeros.
func (m *Mesh) Bounds() (min, max [3]float32) {
	if m.TriangleCount == 0 {
		return
	}
	min = m.Position(0)
	max = min
	for k := 1; k < m.VertexCount(); k++ {
		p := m.Position(k)
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return min, max
}

// Check reports a mesh without triangles as a format error.
// Parsing never fails for this reason on its own; callers that cannot draw an
// empty mesh decide to treat it as fatal.
func (m *Mesh) Check() error {
	if m.TriangleCount == 0 {
		return fmt.Errorf("objmesh: %w: %w", ErrNoTriangles, loaderr.ErrFormat)
	}
	return nil
}
