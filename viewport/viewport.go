// Package viewport tracks the window size and derives the panel rectangle and
// the drag/resize bounds from it.
package viewport

import (
	"image"
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultFraction is the share of the window the panel and bounds cover.
const DefaultFraction = 0.8

// Viewport is the explicit window-size input to the update and draw cycle.
// It is refreshed from the game's Layout callback whenever the window changes.
type Viewport struct {
	width    int
	height   int
	offsetY  int
	fraction float64
}

// New returns a viewport whose panel starts offsetY pixels below the top of
// the window (under the toolbar).
func New(offsetY int, fraction float64) *Viewport {
	v := &Viewport{offsetY: offsetY}
	v.SetFraction(fraction)
	return v
}

// Resize records a new window size and reports whether it changed.
func (v *Viewport) Resize(w, h int) bool {
	if w == v.width && h == v.height {
		return false
	}
	v.width, v.height = w, h
	return true
}

// SetFraction changes the panel share; values outside (0,1] fall back to the default.
func (v *Viewport) SetFraction(f float64) {
	if f <= 0 || f > 1 || math.IsNaN(f) {
		f = DefaultFraction
	}
	v.fraction = f
}

func (v *Viewport) Fraction() float64 { return v.fraction }

// Size is the window size in logical pixels.
func (v *Viewport) Size() (int, int) { return v.width, v.height }

// Panel is the panel rectangle in screen coordinates.
func (v *Viewport) Panel() image.Rectangle {
	w := int(math.Floor(float64(v.width) * v.fraction))
	h := int(math.Floor(float64(v.height) * v.fraction))
	return image.Rect(0, v.offsetY, w, v.offsetY+h)
}

// Bounds is the rectangle tiles are kept inside, in panel coordinates. It is
// anchored at the panel origin and spans the bounds fraction of the window.
func (v *Viewport) Bounds() cp.BB {
	return cp.BB{
		L: 0,
		B: 0,
		R: float64(v.width) * v.fraction,
		T: float64(v.height) * v.fraction,
	}
}

// ToPanel converts a screen position to panel coordinates.
func (v *Viewport) ToPanel(sx, sy int) cp.Vector {
	p := v.Panel()
	return cp.Vector{X: float64(sx - p.Min.X), Y: float64(sy - p.Min.Y)}
}

// InPanel reports whether the screen position lies on the panel.
func (v *Viewport) InPanel(sx, sy int) bool {
	return image.Pt(sx, sy).In(v.Panel())
}
