// Package render draws the panel, its tiles and the selection decorations.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tileboard/photos"
	"github.com/milk9111/tileboard/surface"
	"github.com/milk9111/tileboard/tiles"
)

var (
	panelColor       = color.Black
	placeholderColor = color.RGBA{0x55, 0x55, 0x55, 0xff}
	failedColor      = color.RGBA{0xc0, 0x30, 0x30, 0xff}
	outlineColor     = color.RGBA{0x44, 0xaa, 0xff, 0xff}
	handleColor      = color.White
	guideColor       = color.RGBA{0x80, 0x80, 0x80, 0x60}
	snappedColor     = color.RGBA{0xff, 0x40, 0x80, 0xff}
)

// thumb caches a tile's thumbnail rendered at the tile's current size.
type thumb struct {
	src  image.Image
	img  *ebiten.Image
	w, h int
}

// Renderer owns the decoded thumbnails. Draw must run on the game goroutine.
type Renderer struct {
	thumbs map[int]*thumb
	failed map[int]bool
}

func New() *Renderer {
	return &Renderer{
		thumbs: make(map[int]*thumb),
		failed: make(map[int]bool),
	}
}

// SetImage stores the decoded thumbnail for tile id.
func (r *Renderer) SetImage(id int, img image.Image) {
	if old, ok := r.thumbs[id]; ok && old.img != nil {
		old.img.Deallocate()
	}
	r.thumbs[id] = &thumb{src: img}
	delete(r.failed, id)
}

// SetFailed marks tile id as having no thumbnail.
func (r *Renderer) SetFailed(id int) {
	r.failed[id] = true
}

// Prune releases thumbnails of tiles that are gone from the store.
func (r *Renderer) Prune(store *tiles.Store) {
	for id, th := range r.thumbs {
		if _, ok := store.Get(id); ok {
			continue
		}
		if th.img != nil {
			th.img.Deallocate()
		}
		delete(r.thumbs, id)
	}
	for id := range r.failed {
		if _, ok := store.Get(id); !ok {
			delete(r.failed, id)
		}
	}
}

// Draw renders the panel at panel (screen coordinates). bounds is the
// panel-space rectangle guides are laid out across.
func (r *Renderer) Draw(dst *ebiten.Image, panel image.Rectangle, bounds cp.BB, store *tiles.Store, surf *surface.Surface) {
	if panel.Empty() {
		return
	}
	canvas, ok := dst.SubImage(panel).(*ebiten.Image)
	if !ok {
		return
	}
	ox, oy := float32(panel.Min.X), float32(panel.Min.Y)

	vector.DrawFilledRect(canvas, ox, oy, float32(panel.Dx()), float32(panel.Dy()), panelColor, false)

	for _, t := range store.Tiles() {
		r.drawTile(canvas, t, surf.Rect(t), ox, oy)
	}

	sel, ok := store.Selected()
	if !ok {
		return
	}
	t, ok := store.Get(sel)
	if !ok {
		return
	}

	r.drawGuides(canvas, bounds, surf, ox, oy)

	box := surf.Rect(t)
	x, y := ox+float32(box.L), oy+float32(box.B)
	w, h := float32(box.R-box.L), float32(box.T-box.B)
	vector.StrokeRect(canvas, x, y, w, h, 2, outlineColor, false)

	hs := surf.Options().HandleSize
	for _, hd := range surface.Handles {
		hr := surface.HandleRect(hd, box, hs)
		vector.DrawFilledRect(canvas, ox+float32(hr.L), oy+float32(hr.B), float32(hs), float32(hs), handleColor, false)
		vector.StrokeRect(canvas, ox+float32(hr.L), oy+float32(hr.B), float32(hs), float32(hs), 1, outlineColor, false)
	}

	if surf.State(t.ID, store) == surface.StateResizing {
		label := fmt.Sprintf("%d x %d", int(t.Width), int(t.Height))
		ebitenutil.DebugPrintAt(canvas, label, int(x), int(y+h)+6)
	}
}

func (r *Renderer) drawTile(dst *ebiten.Image, t tiles.Tile, box cp.BB, ox, oy float32) {
	x, y := ox+float32(box.L), oy+float32(box.B)
	w := int(math.Round(box.R - box.L))
	h := int(math.Round(box.T - box.B))
	if w <= 0 || h <= 0 {
		return
	}

	th, ok := r.thumbs[t.ID]
	if !ok || th.src == nil {
		c := placeholderColor
		if r.failed[t.ID] {
			c = failedColor
		}
		vector.DrawFilledRect(dst, x, y, float32(w), float32(h), c, false)
		if r.failed[t.ID] {
			vector.StrokeLine(dst, x, y, x+float32(w), y+float32(h), 2, color.White, true)
			vector.StrokeLine(dst, x+float32(w), y, x, y+float32(h), 2, color.White, true)
		}
		return
	}

	if th.img == nil || th.w != w || th.h != h {
		if th.img != nil {
			th.img.Deallocate()
		}
		th.img = ebiten.NewImageFromImage(photos.RenderFit(th.src, t.Fit, w, h))
		th.w, th.h = w, h
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(th.img, op)
}

func (r *Renderer) drawGuides(dst *ebiten.Image, bounds cp.BB, surf *surface.Surface, ox, oy float32) {
	vg, hg := surface.Guides(bounds, surf.Options().Guides)
	top, bottom := oy+float32(bounds.B), oy+float32(bounds.T)
	left, right := ox+float32(bounds.L), ox+float32(bounds.R)

	for _, gx := range vg {
		vector.StrokeLine(dst, ox+float32(gx), top, ox+float32(gx), bottom, 1, guideColor, false)
	}
	for _, gy := range hg {
		vector.StrokeLine(dst, left, oy+float32(gy), right, oy+float32(gy), 1, guideColor, false)
	}
	for _, g := range surf.Snapped() {
		if g.Vertical {
			vector.StrokeLine(dst, ox+float32(g.Pos), top, ox+float32(g.Pos), bottom, 1, snappedColor, false)
		} else {
			vector.StrokeLine(dst, left, oy+float32(g.Pos), right, oy+float32(g.Pos), 1, snappedColor, false)
		}
	}
}
