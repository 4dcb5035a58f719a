package tiles

import (
	"fmt"
	"sync/atomic"
)

// Fit selects how a tile's image is scaled into the tile rectangle.
type Fit int

const (
	FitFill Fit = iota + 1
	FitContain
	FitCover
	FitNone
	FitScaleDown
)

// FitCount is the number of fit styles; valid values are 1..FitCount.
const FitCount = 5

func (f Fit) Valid() bool {
	return f >= FitFill && f <= FitScaleDown
}

func (f Fit) String() string {
	switch f {
	case FitFill:
		return "fill"
	case FitContain:
		return "contain"
	case FitCover:
		return "cover"
	case FitNone:
		return "none"
	case FitScaleDown:
		return "scale-down"
	default:
		return fmt.Sprintf("Fit(%d)", int(f))
	}
}

// Geometry is the mutable part of a tile, in panel pixels.
type Geometry struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Tile is a positioned, sized, image-bearing rectangle on the panel.
// Image and Fit never change after creation.
type Tile struct {
	ID int
	Geometry
	Image string
	Fit   Fit
}

// Right returns the x coordinate of the tile's right edge.
func (t Tile) Right() float64 { return t.Left + t.Width }

// Bottom returns the y coordinate of the tile's bottom edge.
func (t Tile) Bottom() float64 { return t.Top + t.Height }

// Sequence hands out tile ids. Ids start at 1 and are never reused.
// It is safe to call Next from several goroutines.
type Sequence struct {
	last atomic.Int64
}

func (s *Sequence) Next() int {
	return int(s.last.Add(1))
}
