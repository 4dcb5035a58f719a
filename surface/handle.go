package surface

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tileboard/tiles"
)

// Handle identifies a resize grip on the selected tile's outline.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleN
	HandleNE
	HandleW
	HandleE
	HandleSW
	HandleS
	HandleSE
)

// Handles lists every grip in drawing order.
var Handles = []Handle{HandleNW, HandleN, HandleNE, HandleW, HandleE, HandleSW, HandleS, HandleSE}

func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleN:
		return "n"
	case HandleNE:
		return "ne"
	case HandleW:
		return "w"
	case HandleE:
		return "e"
	case HandleSW:
		return "sw"
	case HandleS:
		return "s"
	case HandleSE:
		return "se"
	default:
		return "none"
	}
}

func (h Handle) movesLeft() bool   { return h == HandleNW || h == HandleW || h == HandleSW }
func (h Handle) movesRight() bool  { return h == HandleNE || h == HandleE || h == HandleSE }
func (h Handle) movesTop() bool    { return h == HandleNW || h == HandleN || h == HandleNE }
func (h Handle) movesBottom() bool { return h == HandleSW || h == HandleS || h == HandleSE }

// anchor returns the handle's center on r.
func (h Handle) anchor(r cp.BB) cp.Vector {
	x := (r.L + r.R) / 2
	y := (r.B + r.T) / 2
	if h.movesLeft() {
		x = r.L
	} else if h.movesRight() {
		x = r.R
	}
	if h.movesTop() {
		y = r.B
	} else if h.movesBottom() {
		y = r.T
	}
	return cp.Vector{X: x, Y: y}
}

// HandleRect is the grip's square on a tile drawn at r.
func HandleRect(h Handle, r cp.BB, size float64) cp.BB {
	c := h.anchor(r)
	half := size / 2
	return cp.BB{L: c.X - half, B: c.Y - half, R: c.X + half, T: c.Y + half}
}

// rect converts a tile plus its transient offset to a box. Panel y grows
// downward, so B holds the top edge and T the bottom edge.
func rect(t tiles.Tile, off cp.Vector) cp.BB {
	l := t.Left + off.X
	top := t.Top + off.Y
	return cp.BB{L: l, B: top, R: l + t.Width, T: top + t.Height}
}
