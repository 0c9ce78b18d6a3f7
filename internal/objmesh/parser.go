// Package objmesh loads Wavefront-style OBJ meshes into flat, de-indexed
// position and texcoord buffers.
//
// Only "v", "vt" and "f" records are read. Faces with more than three corners
// are fan-triangulated from their first corner.
package objmesh

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"donut-viewer/internal/loaderr"
)

const maxLineBytes = 1 << 20

var errSourceChanged = errors.New("source changed between passes")

// Load reads an OBJ file and returns the triangulated mesh.
// A file with no faces yields an empty mesh, not an error; see Mesh.Check.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loaderr.IO("objmesh", "open", path, err)
	}
	defer f.Close()

	return parse(f, path)
}

// Parse reads an OBJ mesh from r. r is read twice: once to size the output
// buffers and once, after seeking back to the start, to fill them.
func Parse(r io.ReadSeeker) (*Mesh, error) {
	return parse(r, "<stream>")
}

// pools holds the raw attributes referenced by faces, in file order.
type pools struct {
	verts [][3]float32
	uvs   [][2]float32
}

func (p *pools) position(i int) [3]float32 {
	if i < 0 || i >= len(p.verts) {
		return [3]float32{}
	}
	return p.verts[i]
}

func (p *pools) texCoord(i int) [2]float32 {
	if i < 0 || i >= len(p.uvs) {
		return [2]float32{}
	}
	return p.uvs[i]
}

func parse(r io.ReadSeeker, name string) (*Mesh, error) {
	var p pools
	refs := make([]FaceRef, 0, maxFaceRefs)

	// Pass 1: collect attributes and count triangles.
	triangles := 0
	err := scanLines(r, name, func(line string) {
		switch {
		case strings.HasPrefix(line, "v "):
			p.verts = append(p.verts, parseVec3(line[2:]))
		case strings.HasPrefix(line, "vt"):
			p.uvs = append(p.uvs, parseVec2(line[2:]))
		case strings.HasPrefix(line, "f "):
			refs = parseFace(line[2:], refs[:0])
			if len(refs) >= 3 {
				triangles += len(refs) - 2
			}
		}
	})
	if err != nil {
		return nil, err
	}

	m := newMesh(triangles)
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, loaderr.IO("objmesh", "rewind", name, err)
	}

	// Pass 2: resolve corners and fill the buffers.
	cursor := 0
	overflow := false
	err = scanLines(r, name, func(line string) {
		if overflow || !strings.HasPrefix(line, "f ") {
			return
		}
		refs = parseFace(line[2:], refs[:0])
		for i := 1; i+1 < len(refs); i++ {
			if cursor+3 > m.VertexCount() {
				overflow = true
				return
			}
			for _, ref := range [3]FaceRef{refs[0], refs[i], refs[i+1]} {
				m.setVertex(cursor, p.position(ref.V), p.texCoord(ref.VT))
				cursor++
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if overflow || cursor != m.VertexCount() {
		return nil, loaderr.IO("objmesh", "read", name, errSourceChanged)
	}

	return m, nil
}

func scanLines(r io.Reader, name string, fn func(line string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		fn(sc.Text())
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return loaderr.Format("objmesh", name, "line longer than 1 MiB")
		}
		return loaderr.IO("objmesh", "read", name, err)
	}
	return nil
}

// parseVec3 reads up to three floats; missing or malformed components are 0.
func parseVec3(body string) [3]float32 {
	var v [3]float32
	for i, f := range strings.Fields(body) {
		if i == 3 {
			break
		}
		v[i] = parseFloat(f)
	}
	return v
}

func parseVec2(body string) [2]float32 {
	var v [2]float32
	for i, f := range strings.Fields(body) {
		if i == 2 {
			break
		}
		v[i] = parseFloat(f)
	}
	return v
}

func parseFloat(s string) float32 {
	f, _ := strconv.ParseFloat(s, 32)
	return float32(f)
}
