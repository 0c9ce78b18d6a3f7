// Package bitmap decodes uncompressed 24-bit BMP files into top-down RGB buffers.
package bitmap

import (
	"encoding/binary"
	"errors"
	"io"
	"os"

	"donut-viewer/internal/loaderr"
)

const (
	headerSize = 54

	// MaxPixelBytes bounds width*height*3 of an accepted image.
	MaxPixelBytes = 1 << 28

	// maxDataBytes allows for up to 3 bytes of row padding per 3-byte pixel row.
	maxDataBytes = MaxPixelBytes + MaxPixelBytes/3
)

// Load reads a bitmap file and returns its pixels as top-down RGB.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loaderr.IO("bitmap", "open", path, err)
	}
	defer f.Close()

	return decode(f, path)
}

// Decode reads a bitmap from r. r must be positioned at the start of the file.
func Decode(r io.ReadSeeker) (*Image, error) {
	return decode(r, "<stream>")
}

func decode(r io.ReadSeeker, name string) (*Image, error) {
	var raw [headerSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, loaderr.Format("bitmap", name, "header shorter than 54 bytes")
		}
		return nil, loaderr.IO("bitmap", "read header", name, err)
	}

	h, err := parseHeader(raw[:], name)
	if err != nil {
		return nil, err
	}

	if h.Width == 0 || h.Height == 0 {
		return nil, loaderr.Format("bitmap", name, "zero image dimension")
	}
	w, ht := uint64(h.Width), uint64(h.Height)
	tight := w * ht * 3
	if tight > MaxPixelBytes {
		return nil, loaderr.Format("bitmap", name, "image too large")
	}

	size := uint64(h.DataSize)
	if size == 0 {
		size = tight
	}
	if size < tight {
		return nil, loaderr.Format("bitmap", name, "pixel data smaller than image")
	}
	if size > maxDataBytes {
		return nil, loaderr.Format("bitmap", name, "declared data size too large")
	}

	// Rows are 4-byte aligned on disk when the declared size is exactly the
	// padded grid. Any other size is read as tightly packed rows.
	stride := w * 3
	if padded := (stride + 3) &^ 3; padded != stride && size == padded*ht {
		stride = padded
	}

	if _, err := r.Seek(int64(h.DataOffset), io.SeekStart); err != nil {
		return nil, loaderr.IO("bitmap", "seek pixels", name, err)
	}
	bgr := make([]byte, size)
	if _, err := io.ReadFull(r, bgr); err != nil {
		return nil, loaderr.IO("bitmap", "read pixels", name, err)
	}

	return &Image{
		Width:  int(w),
		Height: int(ht),
		Pix:    flipBGR(bgr, int(w), int(ht), int(stride)),
	}, nil
}

// parseHeader extracts little-endian fields at fixed offsets.
func parseHeader(b []byte, name string) (header, error) {
	if b[0] != 'B' || b[1] != 'M' {
		return header{}, loaderr.Format("bitmap", name, "missing BM signature")
	}
	h := header{
		DataOffset:   binary.LittleEndian.Uint32(b[10:14]),
		Width:        binary.LittleEndian.Uint32(b[18:22]),
		Height:       binary.LittleEndian.Uint32(b[22:26]),
		BitsPerPixel: binary.LittleEndian.Uint16(b[28:30]),
		Compression:  binary.LittleEndian.Uint32(b[30:34]),
		DataSize:     binary.LittleEndian.Uint32(b[34:38]),
	}
	if h.BitsPerPixel != 24 || h.Compression != 0 {
		return header{}, loaderr.Format("bitmap", name, "unsupported format (only 24-bit uncompressed)")
	}
	return h, nil
}

// flipBGR turns bottom-up BGR rows into a tightly packed top-down RGB buffer.
func flipBGR(bgr []byte, w, h, stride int) []byte {
	rgb := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		src := bgr[y*stride : y*stride+w*3]
		dst := rgb[(h-1-y)*w*3 : (h-y)*w*3]
		for x := 0; x < w*3; x += 3 {
			dst[x] = src[x+2]
			dst[x+1] = src[x+1]
			dst[x+2] = src[x]
		}
	}
	return rgb
}
