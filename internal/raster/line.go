package raster

import "image/color"

// Bresenham walks the integer line from (x0, y0) to (x1, y1), both ends
// included, calling plot once per pixel. Works for every octant.
func Bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawLine plots a Bresenham line into the frame buffer. No depth test.
func (fb *FrameBuffer) DrawLine(x0, y0, x1, y1 int, c color.NRGBA) {
	Bresenham(x0, y0, x1, y1, func(x, y int) {
		fb.Set(x, y, c)
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
