package raster

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"donut-viewer/internal/objmesh"

	"github.com/go-gl/mathgl/mgl32"
)

type point struct{ x, y int }

func collectLine(x0, y0, x1, y1 int) []point {
	var pts []point
	Bresenham(x0, y0, x1, y1, func(x, y int) {
		pts = append(pts, point{x, y})
	})
	return pts
}

func TestBresenham(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
	}{
		{"single point", 5, 5, 5, 5},
		{"horizontal", 0, 0, 3, 0},
		{"vertical down", 2, 9, 2, 1},
		{"steep positive slope", 50, 50, 70, 120},
		{"negative slope", 50, 50, 120, 20},
		{"reverse direction", 120, 20, 50, 50},
		{"diagonal", -3, -3, 4, 4},
	}

	for _, tt := range tests {
		pts := collectLine(tt.x0, tt.y0, tt.x1, tt.y1)
		dx, dy := abs(tt.x1-tt.x0), abs(tt.y1-tt.y0)
		if want := max(dx, dy) + 1; len(pts) != want {
			t.Errorf("%s: %d pixels, want %d", tt.name, len(pts), want)
			continue
		}
		if pts[0] != (point{tt.x0, tt.y0}) || pts[len(pts)-1] != (point{tt.x1, tt.y1}) {
			t.Errorf("%s: endpoints %v..%v", tt.name, pts[0], pts[len(pts)-1])
		}
		for i := 1; i < len(pts); i++ {
			sx, sy := abs(pts[i].x-pts[i-1].x), abs(pts[i].y-pts[i-1].y)
			if sx > 1 || sy > 1 || sx+sy == 0 {
				t.Errorf("%s: step %v -> %v is not 8-connected", tt.name, pts[i-1], pts[i])
				break
			}
		}
	}
}

func TestBresenhamShallowLine(t *testing.T) {
	want := []point{{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}}
	got := collectLine(0, 0, 4, 2)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDrawLineClips(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	black := color.NRGBA{0, 0, 0, 255}
	fb.DrawLine(-2, 1, 10, 1, black)
	for x := 0; x < 4; x++ {
		if fb.At(x, 1) != black {
			t.Errorf("pixel (%d,1) not drawn", x)
		}
	}
	if fb.At(0, 0) == black {
		t.Error("line leaked into row 0")
	}
}

func solidTexture(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestSampleTexture(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	tex.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	tex.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	tex.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})
	tex.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})

	tests := []struct {
		u, v float64
		want color.NRGBA
	}{
		{0.25, 0.25, color.NRGBA{255, 0, 0, 255}},
		{0.75, 0.25, color.NRGBA{0, 255, 0, 255}},
		{0.25, 0.75, color.NRGBA{0, 0, 255, 255}},
		{1.25, 0.25, color.NRGBA{255, 0, 0, 255}},  // repeat
		{-0.75, 2.25, color.NRGBA{255, 0, 0, 255}}, // repeat, negative
		{0.5, 0.25, color.NRGBA{128, 128, 0, 255}}, // halfway between two texels
	}
	for _, tt := range tests {
		r, g, b, a := SampleTexture(tex, tt.u, tt.v)
		if got := (color.NRGBA{r, g, b, a}); got != tt.want {
			t.Errorf("SampleTexture(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}
}

func TestRasterizeTriangleDepth(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	tri := func(z float64) [3]ScreenVertex {
		return [3]ScreenVertex{
			{X: 0, Y: 0, Z: z, InvW: 1},
			{X: 16, Y: 0, Z: z, InvW: 1},
			{X: 0, Y: 16, Z: z, InvW: 1},
		}
	}

	for _, nearFirst := range []bool{true, false} {
		fb := NewFrameBuffer(16, 16)
		if nearFirst {
			RasterizeTriangle(fb, tri(0.5), nil, red, 1)
			RasterizeTriangle(fb, tri(0.2), nil, blue, 1)
		} else {
			RasterizeTriangle(fb, tri(0.2), nil, blue, 1)
			RasterizeTriangle(fb, tri(0.5), nil, red, 1)
		}
		if got := fb.At(2, 2); got != red {
			t.Errorf("nearFirst=%v: pixel = %v, want the closer red", nearFirst, got)
		}
		if got := fb.At(15, 15); got != (color.NRGBA{}) {
			t.Errorf("nearFirst=%v: pixel outside triangle = %v", nearFirst, got)
		}
	}
}

func TestProjectCenter(t *testing.T) {
	v := DefaultView(90, 70)
	mvp := v.Projection().Mul4(v.ModelView())
	sv, ok := v.Project(mvp.Mul4x1(mgl32.Vec4{0, 0, 0, 1}))
	if !ok {
		t.Fatal("origin projected behind the camera")
	}
	if math.Abs(sv.X-45) > 1e-3 || math.Abs(sv.Y-35) > 1e-3 {
		t.Errorf("origin at (%v, %v), want (45, 35)", sv.X, sv.Y)
	}

	if _, ok := v.Project(mgl32.Vec4{0, 0, 0, -1}); ok {
		t.Error("negative w should not project")
	}
}

const quadOBJ = `v -10 -10 0
v 10 -10 0
v 10 10 0
v -10 10 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`

func facingView() View {
	v := DefaultView(100, 100)
	v.Tilt = 0
	return v
}

func mustQuad(t *testing.T) *objmesh.Mesh {
	t.Helper()
	m, err := objmesh.Parse(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRenderMesh(t *testing.T) {
	quad := mustQuad(t)
	opts := DefaultOptions()
	green := color.NRGBA{0, 200, 0, 255}

	img := RenderMesh(quad, solidTexture(green), facingView(), opts)
	if got := img.NRGBAAt(50, 50); got != green {
		t.Errorf("textured center = %v, want %v", got, green)
	}
	if got := img.NRGBAAt(2, 2); got != opts.Background {
		t.Errorf("corner = %v, want background", got)
	}

	img = RenderMesh(quad, nil, facingView(), opts)
	if got := img.NRGBAAt(50, 50); got != opts.BaseColor {
		t.Errorf("untextured center = %v, want %v", got, opts.BaseColor)
	}

	opts.Lighting = true
	img = RenderMesh(quad, nil, facingView(), opts)
	lit := img.NRGBAAt(50, 50)
	if lit.G == 0 || lit.G >= opts.BaseColor.G {
		t.Errorf("lit center = %v, want darker than %v", lit, opts.BaseColor)
	}
}

func TestRenderMeshWireframe(t *testing.T) {
	opts := DefaultOptions()
	opts.Wireframe = true
	opts.WireColor = color.NRGBA{255, 0, 255, 255}

	img := RenderMesh(mustQuad(t), nil, facingView(), opts)
	count := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if img.NRGBAAt(x, y) == opts.WireColor {
				count++
			}
		}
	}
	if count < 100 {
		t.Errorf("only %d wireframe pixels drawn", count)
	}
}

func TestRenderEmptyMesh(t *testing.T) {
	m, err := objmesh.Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	img := RenderMesh(m, nil, facingView(), opts)
	for _, p := range []image.Point{{0, 0}, {50, 50}, {99, 99}} {
		if got := img.NRGBAAt(p.X, p.Y); got != opts.Background {
			t.Errorf("%v = %v, want background", p, got)
		}
	}
}
