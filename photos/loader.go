package photos

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	_ "golang.org/x/image/webp"
)

// Image is a decoded thumbnail for a tile.
type Image struct {
	ID  int
	Img image.Image
	Err error
}

// Loader downloads and decodes thumbnails off the update loop.
type Loader struct {
	mu      sync.Mutex
	client  *Client
	results chan Image
}

func NewLoader(client *Client) *Loader {
	return &Loader{client: client, results: make(chan Image, 16)}
}

// SetClient replaces the client used by later requests.
func (l *Loader) SetClient(c *Client) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c != nil {
		l.client = c
	}
}

// Load downloads and decodes the image at url.
func (l *Loader) Load(ctx context.Context, url string) (image.Image, error) {
	l.mu.Lock()
	client := l.client
	l.mu.Unlock()

	body, err := client.Bytes(ctx, url)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("photos: decode %s: %w", url, err)
	}
	return img, nil
}

// Request loads the thumbnail for tile id on a new goroutine.
func (l *Loader) Request(ctx context.Context, id int, url string) {
	go func() {
		img, err := l.Load(ctx, url)
		l.results <- Image{ID: id, Img: img, Err: err}
	}()
}

func (l *Loader) Results() <-chan Image {
	return l.results
}
