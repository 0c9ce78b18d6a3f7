package bitmap

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"donut-viewer/internal/loaderr"

	xbmp "golang.org/x/image/bmp"
)

type fixture struct {
	width, height int
	bpp           uint16
	compression   uint32
	dataSize      uint32 // written as-is; 0 exercises the derived size
	pixels        []byte // bottom-up BGR rows as stored on disk
}

func (f fixture) bytes() []byte {
	bpp := f.bpp
	if bpp == 0 {
		bpp = 24
	}
	hdr := make([]byte, headerSize)
	hdr[0], hdr[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(hdr[2:], uint32(headerSize+len(f.pixels)))
	binary.LittleEndian.PutUint32(hdr[10:], headerSize)
	binary.LittleEndian.PutUint32(hdr[14:], 40)
	binary.LittleEndian.PutUint32(hdr[18:], uint32(f.width))
	binary.LittleEndian.PutUint32(hdr[22:], uint32(f.height))
	binary.LittleEndian.PutUint16(hdr[26:], 1)
	binary.LittleEndian.PutUint16(hdr[28:], bpp)
	binary.LittleEndian.PutUint32(hdr[30:], f.compression)
	binary.LittleEndian.PutUint32(hdr[34:], f.dataSize)
	return append(hdr, f.pixels...)
}

// twoByTwo stores bottom row (1,2,3)(4,5,6) then top row (7,8,9)(10,11,12) as BGR.
func twoByTwo() fixture {
	return fixture{
		width: 2, height: 2, dataSize: 12,
		pixels: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
	}
}

func TestDecodeFlipsRowsAndSwapsChannels(t *testing.T) {
	img, err := Decode(bytes.NewReader(twoByTwo().bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", img.Width, img.Height)
	}
	want := []byte{9, 8, 7, 12, 11, 10, 3, 2, 1, 6, 5, 4}
	if !bytes.Equal(img.Pix, want) {
		t.Errorf("Pix = %v, want %v", img.Pix, want)
	}
	if got := img.RGBAt(0, 0); got != (color.RGBA{9, 8, 7, 255}) {
		t.Errorf("RGBAt(0,0) = %v", got)
	}
}

func TestDecodeDerivesZeroDataSize(t *testing.T) {
	f := twoByTwo()
	f.dataSize = 0
	img, err := Decode(bytes.NewReader(f.bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(img.Pix) != 2*2*3 {
		t.Errorf("len(Pix) = %d, want 12", len(img.Pix))
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, size := range []image.Point{{4, 3}, {3, 2}, {1, 5}, {7, 7}} {
		src := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				src.SetRGBA(x, y, color.RGBA{uint8(x * 30), uint8(y * 40), uint8(x*7 + y*11), 255})
			}
		}
		var buf bytes.Buffer
		if err := xbmp.Encode(&buf, src); err != nil {
			t.Fatalf("encode %v: %v", size, err)
		}

		img, err := Decode(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("Decode %v: %v", size, err)
		}
		if len(img.Pix) != size.X*size.Y*3 {
			t.Fatalf("%v: len(Pix) = %d", size, len(img.Pix))
		}
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				if got, want := img.RGBAt(x, y), src.RGBAAt(x, y); got != want {
					t.Errorf("%v: pixel (%d,%d) = %v, want %v", size, x, y, got, want)
				}
			}
		}
	}
}

func TestDecodeRowStride(t *testing.T) {
	// 1x2 image: bottom row BGR (1,2,3), top row (4,5,6).
	want := []byte{6, 5, 4, 3, 2, 1}
	tests := []struct {
		name     string
		dataSize uint32
		pixels   []byte
	}{
		{"tight", 6, []byte{1, 2, 3, 4, 5, 6}},
		{"padded rows", 8, []byte{1, 2, 3, 0, 4, 5, 6, 0}},
		{"tight with trailing bytes", 10, []byte{1, 2, 3, 4, 5, 6, 9, 9, 9, 9}},
		{"tight with odd trailing bytes", 9, []byte{1, 2, 3, 4, 5, 6, 9, 9, 9}},
	}
	for _, tt := range tests {
		f := fixture{width: 1, height: 2, dataSize: tt.dataSize, pixels: tt.pixels}
		img, err := Decode(bytes.NewReader(f.bytes()))
		if err != nil {
			t.Errorf("%s: Decode: %v", tt.name, err)
			continue
		}
		if !bytes.Equal(img.Pix, want) {
			t.Errorf("%s: Pix = %v, want %v", tt.name, img.Pix, want)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	badSig := twoByTwo().bytes()
	badSig[0] = 'P'

	tests := []struct {
		name     string
		data     []byte
		isFormat bool
	}{
		{"empty", nil, true},
		{"short header", twoByTwo().bytes()[:53], true},
		{"bad signature", badSig, true},
		{"32 bpp", fixture{width: 1, height: 1, bpp: 32, pixels: make([]byte, 4)}.bytes(), true},
		{"compressed", fixture{width: 1, height: 1, compression: 1, pixels: make([]byte, 3)}.bytes(), true},
		{"zero width", fixture{width: 0, height: 2, pixels: nil}.bytes(), true},
		{"size smaller than image", fixture{width: 2, height: 2, dataSize: 6, pixels: make([]byte, 12)}.bytes(), true},
		{"truncated pixels", fixture{width: 2, height: 2, dataSize: 12, pixels: make([]byte, 7)}.bytes(), false},
		{"derived size truncated", fixture{width: 4, height: 4, pixels: make([]byte, 10)}.bytes(), false},
	}

	for _, tt := range tests {
		img, err := Decode(bytes.NewReader(tt.data))
		if err == nil {
			t.Errorf("%s: expected error, got %dx%d image", tt.name, img.Width, img.Height)
			continue
		}
		if img != nil {
			t.Errorf("%s: partial image returned with error", tt.name)
		}
		if tt.isFormat && !loaderr.IsFormat(err) {
			t.Errorf("%s: want format error, got %v", tt.name, err)
		}
		if !tt.isFormat && !loaderr.IsIO(err) {
			t.Errorf("%s: want i/o error, got %v", tt.name, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.bmp")
	if err := os.WriteFile(path, twoByTwo().bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("loading the same file twice gave different pixels")
	}

	if _, err := Load(filepath.Join(dir, "missing.bmp")); !loaderr.IsIO(err) {
		t.Errorf("missing file: want i/o error, got %v", err)
	}
}

func TestNRGBA(t *testing.T) {
	img, err := Decode(bytes.NewReader(twoByTwo().bytes()))
	if err != nil {
		t.Fatal(err)
	}
	n := img.NRGBA()
	if n.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v", n.Bounds())
	}
	if got := n.NRGBAAt(1, 1); got != (color.NRGBA{6, 5, 4, 255}) {
		t.Errorf("NRGBAAt(1,1) = %v", got)
	}
}
