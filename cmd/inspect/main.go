package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"donut-viewer/internal/bitmap"
	"donut-viewer/internal/objmesh"
)

func main() {
	faces := flag.Int("faces", 0, "Print the first N triangles of a mesh")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: inspect [-faces N] <file.bmp|file.obj>...")
		os.Exit(1)
	}

	failed := 0
	for _, path := range flag.Args() {
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".bmp":
			err = inspectBitmap(path)
		case ".obj":
			err = inspectMesh(path, *faces)
		default:
			err = fmt.Errorf("%s: unknown file type", path)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func inspectBitmap(path string) error {
	img, err := bitmap.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %dx%d, %d bytes RGB\n", path, img.Width, img.Height, len(img.Pix))

	var sum [3]uint64
	for i := 0; i < len(img.Pix); i += 3 {
		sum[0] += uint64(img.Pix[i])
		sum[1] += uint64(img.Pix[i+1])
		sum[2] += uint64(img.Pix[i+2])
	}
	n := uint64(img.Width * img.Height)
	fmt.Printf("  Mean: (%d, %d, %d)\n", sum[0]/n, sum[1]/n, sum[2]/n)
	fmt.Printf("  Top-left: %v, bottom-right: %v\n", img.RGBAt(0, 0), img.RGBAt(img.Width-1, img.Height-1))
	return nil
}

func inspectMesh(path string, faces int) error {
	m, err := objmesh.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d triangles, %d vertices\n", path, m.TriangleCount, m.VertexCount())
	if err := m.Check(); err != nil {
		return err
	}

	lo, hi := m.Bounds()
	fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
	fmt.Printf("  Size: %.3f x %.3f x %.3f\n", hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2])

	uvLo, uvHi := [2]float32{}, [2]float32{}
	for k := 0; k < m.VertexCount(); k++ {
		uv := m.TexCoord(k)
		for c := 0; c < 2; c++ {
			if k == 0 || uv[c] < uvLo[c] {
				uvLo[c] = uv[c]
			}
			if k == 0 || uv[c] > uvHi[c] {
				uvHi[c] = uv[c]
			}
		}
	}
	fmt.Printf("  UV:   U[%.3f, %.3f] V[%.3f, %.3f]\n", uvLo[0], uvHi[0], uvLo[1], uvHi[1])

	if faces > m.TriangleCount {
		faces = m.TriangleCount
	}
	for t := 0; t < faces; t++ {
		fmt.Printf("  tri[%d]", t)
		for c := 0; c < 3; c++ {
			p, uv := m.Position(t*3+c), m.TexCoord(t*3+c)
			fmt.Printf(" (%.2f,%.2f,%.2f)/(%.2f,%.2f)", p[0], p[1], p[2], uv[0], uv[1])
		}
		fmt.Println()
	}
	return nil
}
