package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"donut-viewer/internal/objmesh"
	"donut-viewer/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var untextured = rl.NewColor(205, 180, 150, 255)

// donut is the scene uploaded to the GPU.
type donut struct {
	model    rl.Model
	texture  rl.Texture2D
	textured bool
}

func newDonut(sc *scene.Scene) *donut {
	d := &donut{}

	mesh := meshToRL(sc.Mesh)
	rl.UploadMesh(&mesh, false)
	d.model = rl.LoadModelFromMesh(mesh)

	if sc.Texture != nil {
		img := rl.NewImageFromImage(sc.Texture)
		d.texture = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		rl.SetTextureFilter(d.texture, rl.FilterBilinear)
		rl.SetTextureWrap(d.texture, rl.WrapRepeat)

		if d.model.MaterialCount > 0 {
			materials := unsafe.Slice(d.model.Materials, d.model.MaterialCount)
			rl.SetMaterialTexture(&materials[0], rl.MapDiffuse, d.texture)
			d.textured = true
		}
	}
	return d
}

// Draw renders the donut tilted 20° about X and spun angleY° about Y,
// scaled by 0.2.
func (d *donut) Draw(angleY float32, wireframe bool) {
	d.model.Transform = rl.MatrixMultiply(
		rl.MatrixMultiply(rl.MatrixRotateY(angleY*rl.Deg2rad), rl.MatrixRotateX(20*rl.Deg2rad)),
		rl.MatrixScale(0.2, 0.2, 0.2),
	)

	tint := rl.White
	if !d.textured {
		tint = untextured
	}
	rl.DrawModel(d.model, rl.Vector3{}, 1, tint)
	if wireframe {
		rl.DrawModelWires(d.model, rl.Vector3{}, 1, rl.Black)
	}
}

// Unload frees the model, its CPU-side buffers and the texture.
// UnloadModel leaves material textures alone.
func (d *donut) Unload() {
	rl.UnloadModel(d.model)
	if d.texture.ID != 0 {
		rl.UnloadTexture(d.texture)
	}
}

// meshToRL copies the flat buffers into C memory, which raylib frees when
// the model is unloaded.
func meshToRL(m *objmesh.Mesh) rl.Mesh {
	var mesh rl.Mesh
	mesh.VertexCount = int32(m.VertexCount())
	mesh.TriangleCount = int32(m.TriangleCount)

	if len(m.Positions) > 0 {
		mesh.Vertices = (*float32)(copyToC(unsafe.Pointer(&m.Positions[0]), len(m.Positions)*4))
	}
	if len(m.TexCoords) > 0 {
		mesh.Texcoords = (*float32)(copyToC(unsafe.Pointer(&m.TexCoords[0]), len(m.TexCoords)*4))
	}
	return mesh
}

func copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	copy(unsafe.Slice((*byte)(ptr), size), unsafe.Slice((*byte)(data), size))
	return ptr
}
