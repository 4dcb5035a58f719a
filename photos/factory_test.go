package photos

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/milk9111/tileboard/tiles"
)

func TestFactoryCreateRandomTile(t *testing.T) {
	var (
		mu      sync.Mutex
		indexes []int
	)
	srv := photoServer(t, func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/"))
		if err != nil {
			t.Errorf("bad path %s", r.URL.Path)
		}
		mu.Lock()
		indexes = append(indexes, n)
		mu.Unlock()
		fmt.Fprintf(w, `{"id":%d,"thumbnailUrl":"http://img/%d"}`, n, n)
	})

	var seq tiles.Sequence
	f := NewFactory(
		NewClient(srv.URL, time.Second),
		&seq,
		WithPhotoCount(10),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	)

	fits := map[tiles.Fit]bool{}
	for i := 1; i <= 50; i++ {
		tl, err := f.CreateRandomTile(context.Background())
		if err != nil {
			t.Fatalf("CreateRandomTile: %v", err)
		}
		if tl.ID != i {
			t.Fatalf("expected id %d, got %d", i, tl.ID)
		}
		if tl.Geometry != (tiles.Geometry{Width: 100, Height: 100}) {
			t.Fatalf("unexpected default geometry %+v", tl.Geometry)
		}
		if !tl.Fit.Valid() {
			t.Fatalf("fit %d out of range", tl.Fit)
		}
		fits[tl.Fit] = true
		mu.Lock()
		want := "http://img/" + strconv.Itoa(indexes[len(indexes)-1])
		mu.Unlock()
		if tl.Image != want {
			t.Fatalf("expected image %s, got %s", want, tl.Image)
		}
	}
	for _, n := range indexes {
		if n < 1 || n > 10 {
			t.Fatalf("index %d outside [1,10]", n)
		}
	}
	if len(fits) < 2 {
		t.Fatalf("expected varied fits over 50 tiles, got %v", fits)
	}
}

func TestFactoryRequestReportsFailure(t *testing.T) {
	srv := photoServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	f := NewFactory(NewClient(srv.URL, time.Second), nil)
	f.Request(context.Background())

	select {
	case res := <-f.Results():
		if !errors.Is(res.Err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed, got %v", res.Err)
		}
		if res.Tile.ID != 0 {
			t.Fatalf("failed request should not allocate a tile id")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for result")
	}
	if f.Pending() != 0 {
		t.Fatalf("expected no pending requests, got %d", f.Pending())
	}
}

func TestFactoryRequestSuccess(t *testing.T) {
	srv := photoServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":1,"thumbnailUrl":"http://img/1"}`)
	})

	f := NewFactory(NewClient(srv.URL, time.Second), nil, WithTileSize(64, 48))
	f.Request(context.Background())

	select {
	case res := <-f.Results():
		if res.Err != nil {
			t.Fatalf("unexpected error %v", res.Err)
		}
		if res.Tile.Width != 64 || res.Tile.Height != 48 || res.Tile.Image != "http://img/1" {
			t.Fatalf("unexpected tile %+v", res.Tile)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for result")
	}
}

func TestFactoryConfigure(t *testing.T) {
	srv := photoServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":1,"thumbnailUrl":"http://img/1"}`)
	})

	f := NewFactory(NewClient("http://127.0.0.1:1", time.Second), nil)
	if _, err := f.CreateRandomTile(context.Background()); err == nil {
		t.Fatalf("expected failure against a closed port")
	}

	f.Configure(NewClient(srv.URL, time.Second), WithTileSize(30, 20), WithPhotoCount(1))
	tl, err := f.CreateRandomTile(context.Background())
	if err != nil {
		t.Fatalf("CreateRandomTile: %v", err)
	}
	if tl.Width != 30 || tl.Height != 20 {
		t.Fatalf("new size not applied: %+v", tl.Geometry)
	}
}
