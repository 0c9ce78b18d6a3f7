package bitmap

import (
	"image"
	"image/color"
)

// Image is a decoded 24-bit bitmap.
// Pix holds Width*Height RGB triples, top row first.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// PixOffset returns the index of the first byte of pixel (x, y) in Pix.
func (m *Image) PixOffset(x, y int) int {
	return (y*m.Width + x) * 3
}

// RGBAt returns the color of pixel (x, y). Out-of-range coordinates return black.
func (m *Image) RGBAt(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return color.RGBA{A: 255}
	}
	i := m.PixOffset(x, y)
	return color.RGBA{m.Pix[i], m.Pix[i+1], m.Pix[i+2], 255}
}

// NRGBA copies the image into an opaque *image.NRGBA.
func (m *Image) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		src := m.Pix[y*m.Width*3 : (y+1)*m.Width*3]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+m.Width*4]
		for x := 0; x < m.Width; x++ {
			row[x*4] = src[x*3]
			row[x*4+1] = src[x*3+1]
			row[x*4+2] = src[x*3+2]
			row[x*4+3] = 255
		}
	}
	return dst
}

// header holds the fields read from the 54-byte file + info header.
type header struct {
	DataOffset   uint32 // offset 10
	Width        uint32 // offset 18
	Height       uint32 // offset 22
	BitsPerPixel uint16 // offset 28
	Compression  uint32 // offset 30
	DataSize     uint32 // offset 34, 0 when the writer omitted it
}
