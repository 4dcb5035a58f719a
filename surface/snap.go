package surface

import (
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultGuides are the panel fractions alignment guides sit at.
var DefaultGuides = []float64{0.25, 0.5, 0.75}

// DefaultSnapThreshold is how close, in pixels, an edge must be to a guide to snap.
const DefaultSnapThreshold = 5

// Guide is an alignment line. Vertical guides sit at an x position,
// horizontal guides at a y position.
type Guide struct {
	Vertical bool
	Pos      float64
}

// Guides returns the vertical and horizontal guide positions for a panel
// spanning bounds. Positions are whole pixels, like tile sizes.
func Guides(bounds cp.BB, fractions []float64) (vertical, horizontal []float64) {
	w := bounds.R - bounds.L
	h := bounds.T - bounds.B
	for _, f := range fractions {
		vertical = append(vertical, math.Round(bounds.L+w*f))
		horizontal = append(horizontal, math.Round(bounds.B+h*f))
	}
	return vertical, horizontal
}

// snap finds the guide nearest to any of edges within threshold. It returns
// the shift that moves that edge onto the guide.
func snap(edges, guides []float64, threshold float64) (shift, guide float64, ok bool) {
	best := math.Inf(1)
	for _, e := range edges {
		for _, g := range guides {
			d := g - e
			if math.Abs(d) <= threshold && math.Abs(d) < math.Abs(best) {
				best = d
				guide = g
				ok = true
			}
		}
	}
	if !ok {
		return 0, 0, false
	}
	return best, guide, true
}

// onEdges keeps the guides that an edge of r lies on.
func onEdges(guides []Guide, r cp.BB) []Guide {
	kept := guides[:0]
	for _, g := range guides {
		a, b := r.L, r.R
		if !g.Vertical {
			a, b = r.B, r.T
		}
		if math.Abs(a-g.Pos) < 1e-6 || math.Abs(b-g.Pos) < 1e-6 {
			kept = append(kept, g)
		}
	}
	return kept
}
