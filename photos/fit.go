package photos

import (
	"image"
	"math"

	"github.com/milk9111/tileboard/tiles"
	xdraw "golang.org/x/image/draw"
)

// FitRect returns where a srcW x srcH image lands inside a w x h box for the
// given fit. The rectangle may extend past the box for cover and none.
func FitRect(srcW, srcH, w, h int, fit tiles.Fit) image.Rectangle {
	box := image.Rect(0, 0, w, h)
	if srcW <= 0 || srcH <= 0 || w <= 0 || h <= 0 {
		return image.Rectangle{}
	}

	sx := float64(w) / float64(srcW)
	sy := float64(h) / float64(srcH)

	var scale float64
	switch fit {
	case tiles.FitContain:
		scale = math.Min(sx, sy)
	case tiles.FitCover:
		scale = math.Max(sx, sy)
	case tiles.FitNone:
		scale = 1
	case tiles.FitScaleDown:
		scale = math.Min(1, math.Min(sx, sy))
	default:
		return box
	}

	dw := int(math.Round(float64(srcW) * scale))
	dh := int(math.Round(float64(srcH) * scale))
	x := (w - dw) / 2
	y := (h - dh) / 2
	return image.Rect(x, y, x+dw, y+dh)
}

// RenderFit draws src into a new w x h image using fit. Areas not covered by
// the image stay transparent.
func RenderFit(src image.Image, fit tiles.Fit, w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src == nil {
		return dst
	}
	sb := src.Bounds()
	r := FitRect(sb.Dx(), sb.Dy(), w, h, fit)
	if r.Empty() {
		return dst
	}
	if r.Dx() == sb.Dx() && r.Dy() == sb.Dy() {
		xdraw.Copy(dst, r.Min, src, sb, xdraw.Over, nil)
		return dst
	}
	xdraw.ApproxBiLinear.Scale(dst, r, src, sb, xdraw.Over, nil)
	return dst
}
