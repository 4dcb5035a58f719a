// Package surface turns pointer input over the panel into tile store
// commands: selection, dragging and resizing with guide snapping.
package surface

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tileboard/tiles"
)

// State is a tile's interaction state.
type State int

const (
	StateIdle State = iota
	StateSelected
	StateDragging
	StateResizing
)

func (s State) String() string {
	switch s {
	case StateSelected:
		return "selected"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Pointer is one frame of pointer input in panel coordinates.
type Pointer struct {
	X, Y     float64
	Down     bool // button held
	Pressed  bool // went down this frame
	Released bool // went up this frame
}

func (p Pointer) vec() cp.Vector { return cp.Vector{X: p.X, Y: p.Y} }

// Options tune snapping and resizing.
type Options struct {
	Guides        []float64
	SnapThreshold float64
	MinSize       float64
	HandleSize    float64
}

func DefaultOptions() Options {
	return Options{
		Guides:        DefaultGuides,
		SnapThreshold: DefaultSnapThreshold,
		MinSize:       10,
		HandleSize:    10,
	}
}

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureDrag
	gestureResize
)

type gesture struct {
	kind   gestureKind
	id     int
	handle Handle
	start  cp.Vector
	tile   tiles.Tile
	offset cp.Vector
}

// Surface holds the gesture in progress plus per-tile visual offsets. The
// offsets keep a tile's opposite edge still while a west or north edge is
// resized; they are display state and never reach the store.
type Surface struct {
	opts    Options
	active  gesture
	offsets map[int]cp.Vector
	snapped []Guide
}

func New(opts Options) *Surface {
	s := &Surface{offsets: make(map[int]cp.Vector)}
	s.SetOptions(opts)
	return s
}

// SetOptions replaces the options, filling zero values with defaults.
func (s *Surface) SetOptions(opts Options) {
	def := DefaultOptions()
	if opts.Guides == nil {
		opts.Guides = def.Guides
	}
	if opts.SnapThreshold < 0 {
		opts.SnapThreshold = 0
	}
	if opts.MinSize <= 0 {
		opts.MinSize = def.MinSize
	}
	if opts.HandleSize <= 0 {
		opts.HandleSize = def.HandleSize
	}
	s.opts = opts
}

func (s *Surface) Options() Options { return s.opts }

// Update consumes one pointer sample and returns the commands it produces.
// bounds is the drag/resize rectangle in panel coordinates; guides are laid
// out across it.
func (s *Surface) Update(p Pointer, store *tiles.Store, bounds cp.BB) []tiles.Command {
	s.prune(store)

	if s.active.kind != gestureNone {
		if p.Released || !p.Down {
			s.end()
			return nil
		}
		t, ok := store.Get(s.active.id)
		if !ok || !store.IsSelected(s.active.id) {
			s.end()
			return nil
		}
		switch s.active.kind {
		case gestureDrag:
			return []tiles.Command{s.drag(p, t, bounds)}
		case gestureResize:
			return []tiles.Command{s.resize(p, t, bounds)}
		}
		return nil
	}

	if !p.Pressed {
		return nil
	}

	if sel, ok := store.Selected(); ok {
		if t, found := store.Get(sel); found {
			if h := s.handleAt(p, t); h != HandleNone {
				s.begin(gestureResize, p, t, h)
				return nil
			}
		}
	}

	id, ok := s.TileAt(p, store)
	if !ok {
		return nil
	}
	if store.IsSelected(id) {
		t, _ := store.Get(id)
		s.begin(gestureDrag, p, t, HandleNone)
		return nil
	}
	return []tiles.Command{tiles.SelectTile{ID: id}}
}

// TileAt returns the topmost tile under the pointer.
func (s *Surface) TileAt(p Pointer, store *tiles.Store) (int, bool) {
	all := store.Tiles()
	v := p.vec()
	for i := len(all) - 1; i >= 0; i-- {
		if rect(all[i], s.offsets[all[i].ID]).ContainsVect(v) {
			return all[i].ID, true
		}
	}
	return 0, false
}

// HandleAt returns the selected tile's resize grip under the pointer, if any.
func (s *Surface) HandleAt(p Pointer, store *tiles.Store) Handle {
	if s.active.kind == gestureResize {
		return s.active.handle
	}
	sel, ok := store.Selected()
	if !ok {
		return HandleNone
	}
	t, ok := store.Get(sel)
	if !ok {
		return HandleNone
	}
	return s.handleAt(p, t)
}

func (s *Surface) handleAt(p Pointer, t tiles.Tile) Handle {
	r := rect(t, s.offsets[t.ID])
	v := p.vec()
	for _, h := range Handles {
		if HandleRect(h, r, s.opts.HandleSize).ContainsVect(v) {
			return h
		}
	}
	return HandleNone
}

// State reports where tile id is in its interaction cycle.
func (s *Surface) State(id int, store *tiles.Store) State {
	if s.active.kind != gestureNone && s.active.id == id {
		if s.active.kind == gestureDrag {
			return StateDragging
		}
		return StateResizing
	}
	if store.IsSelected(id) {
		return StateSelected
	}
	return StateIdle
}

// Rect is where tile t is drawn, in panel coordinates.
func (s *Surface) Rect(t tiles.Tile) cp.BB {
	return rect(t, s.offsets[t.ID])
}

// Offset is the transient translation applied to tile id when drawn.
func (s *Surface) Offset(id int) cp.Vector {
	return s.offsets[id]
}

// Snapped lists the guides the active gesture is currently snapped to.
func (s *Surface) Snapped() []Guide {
	return s.snapped
}

// Active reports the tile being dragged or resized.
func (s *Surface) Active() (int, bool) {
	if s.active.kind == gestureNone {
		return 0, false
	}
	return s.active.id, true
}

func (s *Surface) begin(kind gestureKind, p Pointer, t tiles.Tile, h Handle) {
	s.active = gesture{
		kind:   kind,
		id:     t.ID,
		handle: h,
		start:  p.vec(),
		tile:   t,
		offset: s.offsets[t.ID],
	}
	s.snapped = nil
}

func (s *Surface) end() {
	s.active = gesture{}
	s.snapped = nil
}

func (s *Surface) drag(p Pointer, t tiles.Tile, bounds cp.BB) tiles.Command {
	g := s.active
	d := p.vec().Sub(g.start)
	start := rect(g.tile, g.offset)
	w, h := t.Width, t.Height

	left := start.L + d.X
	top := start.B + d.Y

	s.snapped = s.snapped[:0]
	vg, hg := Guides(bounds, s.opts.Guides)
	if shift, guide, ok := snap([]float64{left, left + w}, vg, s.opts.SnapThreshold); ok {
		left += shift
		s.snapped = append(s.snapped, Guide{Vertical: true, Pos: guide})
	}
	if shift, guide, ok := snap([]float64{top, top + h}, hg, s.opts.SnapThreshold); ok {
		top += shift
		s.snapped = append(s.snapped, Guide{Vertical: false, Pos: guide})
	}

	left = clampSpan(left, w, bounds.L, bounds.R)
	top = clampSpan(top, h, bounds.B, bounds.T)
	s.snapped = onEdges(s.snapped, cp.BB{L: left, B: top, R: left + w, T: top + h})

	return tiles.UpdateTile{
		ID: t.ID,
		Geometry: tiles.Geometry{
			Top:    top - g.offset.Y,
			Left:   left - g.offset.X,
			Width:  w,
			Height: h,
		},
	}
}

func (s *Surface) resize(p Pointer, t tiles.Tile, bounds cp.BB) tiles.Command {
	g := s.active
	d := p.vec().Sub(g.start)
	start := rect(g.tile, g.offset)
	l, top, r, bottom := start.L, start.B, start.R, start.T
	vg, hg := Guides(bounds, s.opts.Guides)
	minSize := s.opts.MinSize

	s.snapped = s.snapped[:0]
	edge := func(pos float64, guides []float64, vertical bool) float64 {
		if shift, guide, ok := snap([]float64{pos}, guides, s.opts.SnapThreshold); ok {
			s.snapped = append(s.snapped, Guide{Vertical: vertical, Pos: guide})
			return pos + shift
		}
		return pos
	}

	if g.handle.movesLeft() {
		l = edge(l+d.X, vg, true)
		l = cp.Clamp(l, bounds.L, r-minSize)
	}
	if g.handle.movesRight() {
		r = edge(r+d.X, vg, true)
		r = cp.Clamp(r, l+minSize, bounds.R)
	}
	if g.handle.movesTop() {
		top = edge(top+d.Y, hg, false)
		top = cp.Clamp(top, bounds.B, bottom-minSize)
	}
	if g.handle.movesBottom() {
		bottom = edge(bottom+d.Y, hg, false)
		bottom = cp.Clamp(bottom, top+minSize, bounds.T)
	}

	w := math.Max(math.Round(r-l), minSize)
	h := math.Max(math.Round(bottom-top), minSize)
	if g.handle.movesLeft() {
		l = r - w
	} else {
		r = l + w
	}
	if g.handle.movesTop() {
		top = bottom - h
	} else {
		bottom = top + h
	}
	s.snapped = onEdges(s.snapped, cp.BB{L: l, B: top, R: r, T: bottom})

	s.offsets[t.ID] = cp.Vector{
		X: g.offset.X + (l - start.L),
		Y: g.offset.Y + (top - start.B),
	}

	return tiles.UpdateTile{
		ID: t.ID,
		Geometry: tiles.Geometry{
			Top:    t.Top,
			Left:   t.Left,
			Width:  w,
			Height: h,
		},
	}
}

// prune drops display state for tiles no longer in the store.
func (s *Surface) prune(store *tiles.Store) {
	for id := range s.offsets {
		if _, ok := store.Get(id); !ok {
			delete(s.offsets, id)
		}
	}
}

// clampSpan keeps [pos, pos+size] inside [lo, hi]. A span wider than the
// range is pinned to lo.
func clampSpan(pos, size, lo, hi float64) float64 {
	if pos+size > hi {
		pos = hi - size
	}
	if pos < lo {
		pos = lo
	}
	return pos
}
