package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Endpoint       string        `yaml:"endpoint" toml:"endpoint"`
	PhotoCount     int           `yaml:"photo_count" toml:"photo_count"`
	BoundsFraction float64       `yaml:"bounds_fraction" toml:"bounds_fraction"`
	LogLevel       string        `yaml:"log_level" toml:"log_level"`
	Tile           TileConfig    `yaml:"tile" toml:"tile"`
	Snap           SnapConfig    `yaml:"snap" toml:"snap"`
	Request        RequestConfig `yaml:"request" toml:"request"`
	Window         WindowConfig  `yaml:"window" toml:"window"`
}

type TileConfig struct {
	Width   float64 `yaml:"width" toml:"width"`
	Height  float64 `yaml:"height" toml:"height"`
	MinSize float64 `yaml:"min_size" toml:"min_size"`
}

type SnapConfig struct {
	Guides    []float64 `yaml:"guides" toml:"guides"`
	Threshold float64   `yaml:"threshold" toml:"threshold"`
}

type RequestConfig struct {
	Timeout  time.Duration `yaml:"timeout" toml:"timeout"`
	Attempts int           `yaml:"attempts" toml:"attempts"`
	Delay    time.Duration `yaml:"delay" toml:"delay"`
}

type WindowConfig struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Endpoint:       "https://jsonplaceholder.typicode.com/photos",
		PhotoCount:     5000,
		BoundsFraction: 0.8,
		LogLevel:       "info",
		Tile: TileConfig{
			Width:   100,
			Height:  100,
			MinSize: 10,
		},
		Snap: SnapConfig{
			Guides:    []float64{0.25, 0.5, 0.75},
			Threshold: 5,
		},
		Request: RequestConfig{
			Timeout:  10 * time.Second,
			Attempts: 1,
			Delay:    500 * time.Millisecond,
		},
		Window: WindowConfig{
			Title:  "tileboard",
			Width:  1280,
			Height: 720,
		},
	}
}

// Load reads path over the defaults. The format follows the extension:
// .yaml/.yml or .toml. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}

	if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode unmarshals data into cfg using the format named by ext.
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.PhotoCount < 1 {
		errs = append(errs, fmt.Errorf("photo_count must be at least 1, got %d", c.PhotoCount))
	}
	if c.BoundsFraction <= 0 || c.BoundsFraction > 1 {
		errs = append(errs, fmt.Errorf("bounds_fraction must be in (0,1], got %v", c.BoundsFraction))
	}
	if c.Tile.Width <= 0 || c.Tile.Height <= 0 {
		errs = append(errs, fmt.Errorf("tile size must be positive, got %vx%v", c.Tile.Width, c.Tile.Height))
	}
	if c.Tile.MinSize <= 0 {
		errs = append(errs, fmt.Errorf("tile.min_size must be positive, got %v", c.Tile.MinSize))
	}
	for _, g := range c.Snap.Guides {
		if g < 0 || g > 1 {
			errs = append(errs, fmt.Errorf("snap guide %v outside [0,1]", g))
		}
	}
	if c.Snap.Threshold < 0 {
		errs = append(errs, fmt.Errorf("snap.threshold must not be negative, got %v", c.Snap.Threshold))
	}
	if c.Request.Timeout < 0 || c.Request.Delay < 0 {
		errs = append(errs, errors.New("request durations must not be negative"))
	}
	if c.Request.Attempts < 1 {
		errs = append(errs, fmt.Errorf("request.attempts must be at least 1, got %d", c.Request.Attempts))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
