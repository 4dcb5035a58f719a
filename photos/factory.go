package photos

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/milk9111/tileboard/tiles"
)

// DefaultPhotoCount is how many photos the default endpoint serves.
const DefaultPhotoCount = 5000

// Result is the outcome of an asynchronous tile request.
type Result struct {
	Tile tiles.Tile
	Err  error
}

// Factory builds new tiles around a random photo.
type Factory struct {
	client *Client
	ids    *tiles.Sequence
	logger *log.Logger

	count  int
	width  float64
	height float64

	mu  sync.Mutex
	rng *rand.Rand

	results chan Result
	pending atomic.Int32
}

type FactoryOption func(*Factory)

// WithPhotoCount sets the index range [1, n] requests are drawn from.
func WithPhotoCount(n int) FactoryOption {
	return func(f *Factory) {
		if n > 0 {
			f.count = n
		}
	}
}

// WithTileSize sets the size of newly created tiles.
func WithTileSize(w, h float64) FactoryOption {
	return func(f *Factory) {
		if w > 0 && h > 0 {
			f.width, f.height = w, h
		}
	}
}

// WithRand replaces the random source, mainly for tests.
func WithRand(r *rand.Rand) FactoryOption {
	return func(f *Factory) {
		if r != nil {
			f.rng = r
		}
	}
}

func WithFactoryLogger(l *log.Logger) FactoryOption {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

func NewFactory(client *Client, ids *tiles.Sequence, opts ...FactoryOption) *Factory {
	if ids == nil {
		ids = &tiles.Sequence{}
	}
	f := &Factory{
		client:  client,
		ids:     ids,
		logger:  log.New(io.Discard),
		count:   DefaultPhotoCount,
		width:   100,
		height:  100,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		results: make(chan Result, 16),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Configure swaps the client and reapplies options. Requests already in
// flight finish with the settings they started with.
func (f *Factory) Configure(client *Client, opts ...FactoryOption) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if client != nil {
		f.client = client
	}
	for _, opt := range opts {
		opt(f)
	}
}

// CreateRandomTile fetches a random photo and returns a tile at the panel
// origin with the default size and a random fit.
func (f *Factory) CreateRandomTile(ctx context.Context) (tiles.Tile, error) {
	r := f.roll()
	photo, err := r.client.Photo(ctx, r.index)
	if err != nil {
		return tiles.Tile{}, fmt.Errorf("photos: create tile from photo %d: %w", r.index, err)
	}
	t := tiles.Tile{
		ID: f.ids.Next(),
		Geometry: tiles.Geometry{
			Top:    0,
			Left:   0,
			Width:  r.width,
			Height: r.height,
		},
		Image: photo.ThumbnailURL,
		Fit:   r.fit,
	}
	f.logger.Debug("tile created", "id", t.ID, "photo", r.index, "fit", t.Fit)
	return t, nil
}

// Request creates a tile on a new goroutine; the outcome arrives on Results.
func (f *Factory) Request(ctx context.Context) {
	f.pending.Add(1)
	go func() {
		t, err := f.CreateRandomTile(ctx)
		f.pending.Add(-1)
		f.results <- Result{Tile: t, Err: err}
	}()
}

// Results delivers the outcome of every Request call.
func (f *Factory) Results() <-chan Result {
	return f.results
}

// Pending reports how many requests have not completed yet.
func (f *Factory) Pending() int {
	return int(f.pending.Load())
}

// draw is one request's random picks plus the settings it runs with.
type draw struct {
	client *Client
	index  int
	fit    tiles.Fit
	width  float64
	height float64
}

func (f *Factory) roll() draw {
	f.mu.Lock()
	defer f.mu.Unlock()
	return draw{
		client: f.client,
		index:  1 + f.rng.IntN(f.count),
		fit:    tiles.Fit(1 + f.rng.IntN(tiles.FitCount)),
		width:  f.width,
		height: f.height,
	}
}
