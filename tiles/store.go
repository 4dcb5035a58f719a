package tiles

// Store holds the ordered tile collection and the selection pointer.
// It is not safe for concurrent use; callers mutate it from the update loop only.
type Store struct {
	tiles    []Tile
	selected int
	hasSel   bool
}

func NewStore() *Store {
	return &Store{}
}

// Add appends t to the collection.
func (s *Store) Add(t Tile) {
	if s == nil {
		return
	}
	s.tiles = append(s.tiles, t)
}

// Remove deletes the tile with the given id. Unknown ids are ignored.
// Removing the selected tile clears the selection.
func (s *Store) Remove(id int) bool {
	if s == nil {
		return false
	}
	idx := s.index(id)
	if idx < 0 {
		return false
	}
	s.tiles = append(s.tiles[:idx], s.tiles[idx+1:]...)
	if s.hasSel && s.selected == id {
		s.ClearSelection()
	}
	return true
}

// RemoveSelected deletes the selected tile. With no selection the
// collection is left unchanged.
func (s *Store) RemoveSelected() bool {
	if s == nil || !s.hasSel {
		return false
	}
	return s.Remove(s.selected)
}

// Update replaces the geometry of the tile with the given id. Image and Fit
// are kept as they were.
func (s *Store) Update(id int, g Geometry) bool {
	if s == nil {
		return false
	}
	idx := s.index(id)
	if idx < 0 {
		return false
	}
	s.tiles[idx].Geometry = g
	return true
}

// Select makes id the single selected tile. Selecting an id that is not in
// the store clears the selection.
func (s *Store) Select(id int) {
	if s == nil {
		return
	}
	if s.index(id) < 0 {
		s.ClearSelection()
		return
	}
	s.selected = id
	s.hasSel = true
}

func (s *Store) ClearSelection() {
	if s == nil {
		return
	}
	s.selected = 0
	s.hasSel = false
}

// Selected returns the selected tile id, if any.
func (s *Store) Selected() (int, bool) {
	if s == nil {
		return 0, false
	}
	return s.selected, s.hasSel
}

func (s *Store) IsSelected(id int) bool {
	sel, ok := s.Selected()
	return ok && sel == id
}

// Get returns the tile with the given id.
func (s *Store) Get(id int) (Tile, bool) {
	if s == nil {
		return Tile{}, false
	}
	idx := s.index(id)
	if idx < 0 {
		return Tile{}, false
	}
	return s.tiles[idx], true
}

// Tiles returns a copy of the collection in insertion order.
func (s *Store) Tiles() []Tile {
	if s == nil {
		return nil
	}
	out := make([]Tile, len(s.tiles))
	copy(out, s.tiles)
	return out
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tiles)
}

func (s *Store) index(id int) int {
	for i := range s.tiles {
		if s.tiles[i].ID == id {
			return i
		}
	}
	return -1
}
