// Package orbit tracks the viewer's spin angle: a steady idle rotation plus
// left-button drag.
package orbit

const (
	// IdleStep is the spin added per frame, in degrees.
	IdleStep = 0.2
	// DragGain converts horizontal drag in pixels to degrees.
	DragGain = 0.5
)

// Orbit is the spin state about the Y axis. The zero value is ready to use.
type Orbit struct {
	AngleY   float32
	dragging bool
	lastX    int
}

// Tick advances the idle spin by one frame, wrapping past 360°.
func (o *Orbit) Tick() {
	o.AngleY += IdleStep
	if o.AngleY > 360 {
		o.AngleY -= 360
	}
}

// Button records a left-button press or release at x.
func (o *Orbit) Button(down bool, x int) {
	o.dragging = down
	o.lastX = x
}

// Move applies a drag to x. It reports whether the angle changed.
func (o *Orbit) Move(x int) bool {
	if !o.dragging {
		return false
	}
	dx := x - o.lastX
	o.AngleY += float32(dx) * DragGain
	o.lastX = x
	return dx != 0
}

// Dragging reports whether the left button is held.
func (o *Orbit) Dragging() bool {
	return o.dragging
}
