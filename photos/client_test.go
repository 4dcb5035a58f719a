package photos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func photoServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientPhoto(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		body      string
		wantThumb string
		wantErr   func(error) bool
	}{
		{
			name:      "ok",
			status:    http.StatusOK,
			body:      `{"albumId":1,"id":42,"title":"t","url":"http://x/600","thumbnailUrl":"http://x/150"}`,
			wantThumb: "http://x/150",
		},
		{
			name:    "not_found",
			status:  http.StatusNotFound,
			body:    `{}`,
			wantErr: func(err error) bool { var se *StatusError; return errors.As(err, &se) && se.Code == 404 },
		},
		{
			name:    "bad_json",
			status:  http.StatusOK,
			body:    `{"thumbnailUrl":`,
			wantErr: func(err error) bool { return errors.Is(err, ErrMalformed) },
		},
		{
			name:    "missing_thumbnail",
			status:  http.StatusOK,
			body:    `{"id":3,"url":"http://x/600"}`,
			wantErr: func(err error) bool { return errors.Is(err, ErrMalformed) },
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := photoServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/photos/42" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.Header.Get("X-Request-Id") == "" {
					t.Errorf("missing request id header")
				}
				w.WriteHeader(c.status)
				fmt.Fprint(w, c.body)
			})

			client := NewClient(srv.URL+"/photos/", time.Second)
			p, err := client.Photo(context.Background(), 42)
			if c.wantErr != nil {
				if err == nil || !c.wantErr(err) {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Photo: %v", err)
			}
			if p.ThumbnailURL != c.wantThumb || p.ID != 42 {
				t.Fatalf("unexpected photo %+v", p)
			}
		})
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := photoServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"id":7,"thumbnailUrl":"http://x/150"}`)
	})

	client := NewClient(srv.URL, time.Second, WithRetry(3, time.Millisecond))
	if _, err := client.Photo(context.Background(), 7); err != nil {
		t.Fatalf("Photo: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", calls.Load())
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := photoServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	client := NewClient(srv.URL, time.Second, WithRetry(4, time.Millisecond))
	_, err := client.Photo(context.Background(), 1)
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadRequest {
		t.Fatalf("expected status error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single call, got %d", calls.Load())
	}
}

func TestClientDefaultEndpoint(t *testing.T) {
	c := NewClient("", 0)
	if c.endpoint != DefaultEndpoint {
		t.Fatalf("expected %s, got %s", DefaultEndpoint, c.endpoint)
	}
	if !strings.HasPrefix(c.endpoint, "https://") {
		t.Fatalf("default endpoint should be https")
	}
}
