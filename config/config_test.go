package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.PhotoCount != 5000 || cfg.Snap.Threshold != 5 || cfg.BoundsFraction != 0.8 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFormats(t *testing.T) {
	cases := []struct {
		name string
		file string
		body string
	}{
		{
			name: "yaml",
			file: "tileboard.yaml",
			body: "photo_count: 50\nsnap:\n  threshold: 8\n  guides: [0.5]\nrequest:\n  timeout: 3s\n  attempts: 2\n",
		},
		{
			name: "toml",
			file: "tileboard.toml",
			body: "photo_count = 50\n[snap]\nthreshold = 8.0\nguides = [0.5]\n[request]\ntimeout = \"3s\"\nattempts = 2\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, c.file, c.body))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.PhotoCount != 50 || cfg.Snap.Threshold != 8 {
				t.Fatalf("file values not applied: %+v", cfg)
			}
			if len(cfg.Snap.Guides) != 1 || cfg.Snap.Guides[0] != 0.5 {
				t.Fatalf("unexpected guides %v", cfg.Snap.Guides)
			}
			if cfg.Request.Timeout != 3*time.Second || cfg.Request.Attempts != 2 {
				t.Fatalf("unexpected request config %+v", cfg.Request)
			}
			if cfg.Tile.Width != 100 || cfg.Window.Title != "tileboard" {
				t.Fatalf("defaults lost for unset fields: %+v", cfg)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		path    func(t *testing.T) string
		invalid bool
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }, false},
		{"bad_yaml", func(t *testing.T) string { return writeFile(t, "c.yaml", "photo_count: [") }, false},
		{"unknown_ext", func(t *testing.T) string { return writeFile(t, "c.ini", "x=1") }, false},
		{"zero_photos", func(t *testing.T) string { return writeFile(t, "c.yaml", "photo_count: 0") }, true},
		{"bad_fraction", func(t *testing.T) string { return writeFile(t, "c.yaml", "bounds_fraction: 1.5") }, true},
		{"bad_guide", func(t *testing.T) string { return writeFile(t, "c.yaml", "snap:\n  guides: [2]") }, true},
		{"no_attempts", func(t *testing.T) string { return writeFile(t, "c.yaml", "request:\n  attempts: 0") }, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(c.path(t))
			if err == nil {
				t.Fatalf("expected error")
			}
			if errors.Is(err, ErrInvalid) != c.invalid {
				t.Fatalf("errors.Is(ErrInvalid) = %v for %v", !c.invalid, err)
			}
		})
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	path := writeFile(t, "tileboard.yaml", "photo_count: 10\n")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x: 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("photo_count: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		abs, _ := filepath.Abs(path)
		if got != abs {
			t.Fatalf("expected event for %s, got %s", abs, got)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for change event")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close should be a no-op: %v", err)
	}
}

func TestWatcherWaitsForQuiet(t *testing.T) {
	path := writeFile(t, "tileboard.yaml", "photo_count: 10\n")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	var last time.Time
	for _, body := range []string{"", "photo_count: 20\n", "photo_count: 30\n"} {
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		last = time.Now()
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-w.Events:
		if since := time.Since(last); since < debounce/2 {
			t.Fatalf("event reported %v after the last write, before the file went quiet", since)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if cfg.PhotoCount != 30 {
			t.Fatalf("expected final photo_count 30, got %d", cfg.PhotoCount)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for change event")
	}
}

func TestExampleFileLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "tileboard.example.yaml"))
	if err != nil {
		t.Fatalf("example config: %v", err)
	}
	def := Default()
	if cfg.Endpoint != def.Endpoint || cfg.Request.Delay != def.Request.Delay || cfg.Window != def.Window {
		t.Fatalf("example config drifted from defaults: %+v", cfg)
	}
}
