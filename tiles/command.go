package tiles

// Command is a single store mutation produced by input handling or by the
// tile factory. Commands are applied in the order they were pushed.
type Command interface {
	Apply(s *Store)
}

// AddTile appends a new tile.
type AddTile struct {
	Tile Tile
}

func (c AddTile) Apply(s *Store) { s.Add(c.Tile) }

// RemoveTile deletes a tile by id.
type RemoveTile struct {
	ID int
}

func (c RemoveTile) Apply(s *Store) { s.Remove(c.ID) }

// RemoveSelected deletes whichever tile is selected when it is applied.
type RemoveSelected struct{}

func (RemoveSelected) Apply(s *Store) { s.RemoveSelected() }

// UpdateTile replaces a tile's geometry.
type UpdateTile struct {
	ID       int
	Geometry Geometry
}

func (c UpdateTile) Apply(s *Store) { s.Update(c.ID, c.Geometry) }

// SelectTile makes a tile the sole selection.
type SelectTile struct {
	ID int
}

func (c SelectTile) Apply(s *Store) { s.Select(c.ID) }

// ClearSelection deselects everything.
type ClearSelection struct{}

func (ClearSelection) Apply(s *Store) { s.ClearSelection() }

// Queue is a FIFO of pending commands.
type Queue struct {
	items []Command
}

// Push adds a command.
func (q *Queue) Push(cmds ...Command) {
	if q == nil {
		return
	}
	for _, c := range cmds {
		if c != nil {
			q.items = append(q.items, c)
		}
	}
}

// Drain returns all commands and clears the queue.
func (q *Queue) Drain() []Command {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Apply drains q into the store and returns how many commands ran.
func (s *Store) Apply(q *Queue) int {
	cmds := q.Drain()
	for _, c := range cmds {
		c.Apply(s)
	}
	return len(cmds)
}
