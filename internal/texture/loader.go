package texture

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"donut-viewer/internal/bitmap"
	"donut-viewer/internal/loaderr"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"
)

// Extensions lists the texture file types LoadTexture understands, in
// priority order for the index.
var Extensions = []string{".bmp", ".tga", ".png", ".jpg", ".jpeg", ".webp"}

// decoders picks the decoder by extension. TGA has no magic number, so
// image.Decode cannot sniff it reliably next to the other formats.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".tga":  tga.Decode,
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".webp": webp.Decode,
}

// LoadTexture reads a texture file and returns an NRGBA image.
// BMP files go through the 24-bit bitmap decoder.
func LoadTexture(path string) (*image.NRGBA, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".bmp" {
		img, err := bitmap.Load(path)
		if err != nil {
			return nil, err
		}
		return img.NRGBA(), nil
	}

	decode, ok := decoders[ext]
	if !ok {
		return nil, loaderr.Format("texture", path, fmt.Sprintf("unknown extension %q", ext))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, loaderr.IO("texture", "open", path, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w: %w", path, loaderr.ErrFormat, err)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA with its origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
