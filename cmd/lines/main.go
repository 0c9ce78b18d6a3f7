package main

import (
	"flag"
	"image/color"
	"log"

	"donut-viewer/internal/raster"

	"github.com/hajimehoshi/ebiten/v2"
)

// The canvas is a 200×200 grid with the origin at the bottom left, shown
// in a 400×400 window.
const (
	gridSize   = 200
	windowSize = 400
)

type segment struct{ x0, y0, x1, y1 int }

// demoLines covers a steep slope and a negative slope from one start point.
var demoLines = []segment{
	{50, 50, 70, 120},
	{50, 50, 120, 20},
}

// drawScene renders lines on a white canvas. Line coordinates are y-up.
func drawScene(lines []segment) *raster.FrameBuffer {
	fb := raster.NewFrameBuffer(gridSize, gridSize)
	fb.Clear(color.NRGBA{255, 255, 255, 255})
	black := color.NRGBA{0, 0, 0, 255}
	for _, l := range lines {
		raster.Bresenham(l.x0, l.y0, l.x1, l.y1, func(x, y int) {
			fb.Set(x, gridSize-1-y, black)
		})
	}
	return fb
}

type game struct {
	fb  *raster.FrameBuffer
	img *ebiten.Image
}

func (g *game) Update() error {
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(g.fb.Width, g.fb.Height)
		g.img.WritePixels(g.fb.Color)
	}
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lshortfile)

	ebiten.SetWindowTitle("Bresenham Line Drawing")
	ebiten.SetWindowSize(windowSize, windowSize)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(&game{fb: drawScene(demoLines)}); err != nil {
		log.Fatal(err)
	}
}
