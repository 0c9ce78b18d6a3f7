// Package raster is a small software pipeline for drawing textured meshes
// and lines into an RGBA frame buffer.
package raster

import (
	"image"
	"image/color"
	"math"

	"donut-viewer/internal/objmesh"

	"github.com/go-gl/mathgl/mgl32"
)

// View describes the camera and model transform.
// The defaults reproduce the viewer: a 45° perspective camera at (0, 0, 8)
// looking at the origin, the model scaled by 0.2, tilted about X and spun about Y.
type View struct {
	Width, Height int
	FovY          float32 // degrees
	Near, Far     float32
	Eye           mgl32.Vec3
	Scale         float32
	Tilt          float32 // degrees about X
	Spin          float32 // degrees about Y
}

// DefaultView returns the viewer camera for a w×h target.
func DefaultView(w, h int) View {
	return View{
		Width:  w,
		Height: h,
		FovY:   45,
		Near:   0.1,
		Far:    100,
		Eye:    mgl32.Vec3{0, 0, 8},
		Scale:  0.2,
		Tilt:   20,
	}
}

// Projection returns the perspective matrix.
func (v View) Projection() mgl32.Mat4 {
	h := v.Height
	if h == 0 {
		h = 1
	}
	aspect := float32(v.Width) / float32(h)
	return mgl32.Perspective(mgl32.DegToRad(v.FovY), aspect, v.Near, v.Far)
}

// ModelView returns the camera matrix times the model transform.
func (v View) ModelView() mgl32.Mat4 {
	camera := mgl32.LookAtV(v.Eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	model := mgl32.Scale3D(v.Scale, v.Scale, v.Scale).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(v.Tilt))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(v.Spin)))
	return camera.Mul4(model)
}

// Project maps a clip-space position to screen space. ok is false when the
// point lies behind the camera.
func (v View) Project(clip mgl32.Vec4) (sv ScreenVertex, ok bool) {
	w := clip.W()
	if w <= 1e-6 {
		return ScreenVertex{}, false
	}
	invW := 1 / float64(w)
	ndcX := float64(clip.X()) * invW
	ndcY := float64(clip.Y()) * invW
	ndcZ := float64(clip.Z()) * invW
	return ScreenVertex{
		X:    (ndcX + 1) * 0.5 * float64(v.Width),
		Y:    (1 - ndcY) * 0.5 * float64(v.Height),
		Z:    -ndcZ,
		InvW: invW,
	}, true
}

// Options controls how RenderMesh shades the mesh.
type Options struct {
	Background color.NRGBA
	BaseColor  color.NRGBA // used when there is no texture
	Lighting   bool
	Light      LightConfig
	Wireframe  bool
	WireColor  color.NRGBA
}

// DefaultOptions returns unlit texturing on the viewer's pale blue background.
func DefaultOptions() Options {
	return Options{
		Background: color.NRGBA{242, 242, 255, 255},
		BaseColor:  color.NRGBA{205, 180, 150, 255},
		Light:      DefaultLightConfig(),
		WireColor:  color.NRGBA{0, 0, 0, 255},
	}
}

// RenderMesh draws m into a new image. tex may be nil.
func RenderMesh(m *objmesh.Mesh, tex *image.NRGBA, view View, opts Options) *image.NRGBA {
	fb := NewFrameBuffer(view.Width, view.Height)
	fb.Clear(opts.Background)
	DrawMesh(fb, m, tex, view, opts)
	return fb.Image()
}

// DrawMesh draws m into fb without clearing it.
func DrawMesh(fb *FrameBuffer, m *objmesh.Mesh, tex *image.NRGBA, view View, opts Options) {
	mv := view.ModelView()
	mvp := view.Projection().Mul4(mv)

	for t := 0; t < m.TriangleCount; t++ {
		var tri [3]ScreenVertex
		var eye [3]mgl32.Vec3
		visible := true
		for c := 0; c < 3; c++ {
			k := t*3 + c
			p := m.Position(k)
			pos := mgl32.Vec4{p[0], p[1], p[2], 1}

			sv, ok := view.Project(mvp.Mul4x1(pos))
			if !ok {
				visible = false
				break
			}
			uv := m.TexCoord(k)
			sv.U, sv.V = float64(uv[0]), float64(uv[1])
			tri[c] = sv
			eye[c] = mv.Mul4x1(pos).Vec3()
		}
		if !visible {
			continue
		}

		shade := 1.0
		if opts.Lighting {
			n := eye[1].Sub(eye[0]).Cross(eye[2].Sub(eye[0]))
			if n.Len() < 1e-12 {
				continue
			}
			shade = opts.Light.Shade(n.Normalize())
		}

		RasterizeTriangle(fb, tri, tex, opts.BaseColor, shade)

		if opts.Wireframe {
			for c := 0; c < 3; c++ {
				a, b := tri[c], tri[(c+1)%3]
				fb.DrawLine(pixel(a.X), pixel(a.Y), pixel(b.X), pixel(b.Y), opts.WireColor)
			}
		}
	}
}

// pixel returns the column or row containing screen coordinate v.
func pixel(v float64) int {
	return int(math.Floor(v))
}
