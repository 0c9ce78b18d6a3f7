package raster

import (
	"image"
	"image/color"
	"math"
)

// ScreenVertex is a projected triangle corner.
// X, Y are pixel coordinates, Z is depth (larger is closer) and InvW is
// 1/w from clip space, used for perspective-correct texture coordinates.
type ScreenVertex struct {
	X, Y, Z float64
	InvW    float64
	U, V    float64
}

// RasterizeTriangle fills a triangle with depth testing.
// With tex set, texels are sampled perspective-correctly; otherwise base is
// used. The resulting color is multiplied by shade.
//
// Hot path: no allocation per pixel.
func RasterizeTriangle(fb *FrameBuffer, tri [3]ScreenVertex, tex *image.NRGBA, base color.NRGBA, shade float64) {
	x0, y0 := tri[0].X, tri[0].Y
	x1, y1 := tri[1].X, tri[1].Y
	x2, y2 := tri[2].X, tri[2].Y

	// Bounding box, clamped to the buffer
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))
	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, fb.Width-1)
	maxY = min(maxY, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// Attributes pre-divided by w
	iw0, iw1, iw2 := tri[0].InvW, tri[1].InvW, tri[2].InvW
	u0, u1, u2 := tri[0].U*iw0, tri[1].U*iw1, tri[2].U*iw2
	v0, v1, v2 := tri[0].V*iw0, tri[1].V*iw1, tri[2].V*iw2

	baseR := clamp255(float64(base.R) * shade)
	baseG := clamp255(float64(base.G) * shade)
	baseB := clamp255(float64(base.B) * shade)

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -1e-9 || w1 < -1e-9 || w2 < -1e-9 {
				continue
			}

			z := w0*tri[0].Z + w1*tri[1].Z + w2*tri[2].Z
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			if tex == nil {
				fb.Color[pxIdx] = baseR
				fb.Color[pxIdx+1] = baseG
				fb.Color[pxIdx+2] = baseB
				fb.Color[pxIdx+3] = 255
				continue
			}

			iw := w0*iw0 + w1*iw1 + w2*iw2
			u := (w0*u0 + w1*u1 + w2*u2) / iw
			v := (w0*v0 + w1*v1 + w2*v2) / iw
			cr, cg, cb, _ := SampleTexture(tex, u, v)

			fb.Color[pxIdx] = clamp255(float64(cr) * shade)
			fb.Color[pxIdx+1] = clamp255(float64(cg) * shade)
			fb.Color[pxIdx+2] = clamp255(float64(cb) * shade)
			fb.Color[pxIdx+3] = 255
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
