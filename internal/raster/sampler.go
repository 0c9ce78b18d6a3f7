package raster

import (
	"image"
	"math"
)

// SampleTexture performs bilinear filtering with repeat wrapping, matching
// GL_LINEAR with GL_REPEAT. v = 0 addresses the first row of tex.
// Accesses tex.Pix directly for performance.
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}
	if math.IsNaN(u) || math.IsInf(u, 0) {
		u = 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}

	// Texel centers sit at half-integer coordinates.
	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5
	fx0 := math.Floor(fx)
	fy0 := math.Floor(fy)
	dx := fx - fx0
	dy := fy - fy0

	x0 := wrap(int(fx0), w)
	y0 := wrap(int(fy0), h)
	x1 := wrap(x0+1, w)
	y1 := wrap(y0+1, h)

	pix := tex.Pix
	i00 := tex.PixOffset(tex.Rect.Min.X+x0, tex.Rect.Min.Y+y0)
	i10 := tex.PixOffset(tex.Rect.Min.X+x1, tex.Rect.Min.Y+y0)
	i01 := tex.PixOffset(tex.Rect.Min.X+x0, tex.Rect.Min.Y+y1)
	i11 := tex.PixOffset(tex.Rect.Min.X+x1, tex.Rect.Min.Y+y1)

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	ch := func(k int) uint8 {
		f := float64(pix[i00+k])*w00 + float64(pix[i10+k])*w10 +
			float64(pix[i01+k])*w01 + float64(pix[i11+k])*w11
		return clamp255(f)
	}
	return ch(0), ch(1), ch(2), ch(3)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
