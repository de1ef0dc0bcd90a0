package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/depeter/photostrip/internal/anim"
	"github.com/depeter/photostrip/internal/geometry"
	"github.com/depeter/photostrip/internal/interaction"
	"github.com/depeter/photostrip/internal/photos"
	"github.com/depeter/photostrip/internal/picker"
)

const appName = "photostrip"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Library LibraryConfig `toml:"library"`
	Picker  PickerConfig  `toml:"picker"`
	UI      UIConfig      `toml:"ui"`
}

type ServerConfig struct {
	URL      string `toml:"url"`
	Username string `toml:"username"`
	Token    string `toml:"token"`
	UserID   string `toml:"user_id"`
}

// LibraryConfig selects where images come from.
type LibraryConfig struct {
	Source    string `toml:"source"` // "jellyfin" or "dir"
	Dir       string `toml:"dir"`
	AssetKind string `toml:"asset_kind"`
	PageSize  int    `toml:"page_size"`
}

type PickerConfig struct {
	CellMargin           float64 `toml:"cell_margin"`
	CellSideSize         float64 `toml:"cell_side_size"`
	ExpandedCellSideSize float64 `toml:"expanded_cell_side_size"`
	ContainerPadding     float64 `toml:"container_padding"`
	SelectionMode        string  `toml:"selection_mode"`
	Physics              string  `toml:"physics"` // "ios" or "android"
	TransitionMs         int     `toml:"transition_ms"`
}

type UIConfig struct {
	Fullscreen bool `toml:"fullscreen"`
	Width      int  `toml:"width"`
	Height     int  `toml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Library: LibraryConfig{
			Source:    "jellyfin",
			AssetKind: string(photos.KindPhotos),
			PageSize:  photos.DefaultPageSize,
		},
		Picker: PickerConfig{
			CellMargin:           6,
			CellSideSize:         80,
			ExpandedCellSideSize: 300,
			ContainerPadding:     8,
			SelectionMode:        "single",
			Physics:              "ios",
			TransitionMs:         300,
		},
		UI: UIConfig{
			Fullscreen: false,
			Width:      1280,
			Height:     480,
		},
	}
}

// ConfigPath is $XDG_CONFIG_HOME/photostrip/config.toml. The parent
// directory is created if needed.
func ConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(appName, "config.toml"))
}

// CacheDir is the thumbnail cache directory under $XDG_CACHE_HOME.
func CacheDir() (string, error) {
	return xdg.CacheFile(filepath.Join(appName, "images"))
}

// Load reads the config from ConfigPath.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates the config at path. A missing file yields
// the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	// The file holds the server token
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if err := f.Chmod(0o600); err != nil {
		f.Close()
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate rejects values the picker cannot work with.
func (c *Config) Validate() error {
	switch c.Library.Source {
	case "jellyfin":
	case "dir":
		if c.Library.Dir == "" {
			return invalid("library.dir is required when library.source is dir")
		}
	default:
		return invalid("unknown library.source %q", c.Library.Source)
	}
	if _, err := photos.ParseAssetKind(c.Library.AssetKind); err != nil {
		return invalid("library.asset_kind: %v", err)
	}
	if c.Library.PageSize < 0 {
		return invalid("library.page_size must not be negative")
	}

	p := c.Picker
	if p.CellMargin < 0 || p.ContainerPadding < 0 {
		return invalid("picker margins must not be negative")
	}
	if p.CellSideSize <= 0 || p.ExpandedCellSideSize <= 0 {
		return invalid("picker cell sizes must be positive")
	}
	if _, err := picker.ParseMode(p.SelectionMode); err != nil {
		return invalid("picker.selection_mode: %v", err)
	}
	if _, err := deceleration(p.Physics); err != nil {
		return invalid("picker.physics: %v", err)
	}
	if p.TransitionMs < 0 {
		return invalid("picker.transition_ms must not be negative")
	}

	if c.UI.Width <= 0 || c.UI.Height <= 0 {
		return invalid("ui.width and ui.height must be positive")
	}
	return nil
}

func deceleration(physics string) (float64, error) {
	switch physics {
	case "ios", "":
		return anim.DecelerationIOS, nil
	case "android":
		return anim.DecelerationAndroid, nil
	}
	return 0, fmt.Errorf("unknown physics %q", physics)
}

// Layout maps the picker settings to strip measurements for a window of the
// given width.
func (p PickerConfig) Layout(windowWidth float64) geometry.Layout {
	return geometry.Layout{
		Margin:         p.CellMargin,
		CellSize:       p.CellSideSize,
		ExpandedHeight: p.ExpandedCellSideSize,
		ContainerWidth: geometry.ContainerWidth(windowWidth, p.ContainerPadding),
	}
}

// EngineConfig maps the picker settings to engine parameters. Invalid
// physics fall back to the iOS curve; Validate reports them.
func (p PickerConfig) EngineConfig(containerWidth float64) interaction.Config {
	cfg := interaction.DefaultConfig(containerWidth)
	if d, err := deceleration(p.Physics); err == nil {
		cfg.Deceleration = d
	}
	if p.TransitionMs > 0 {
		cfg.TransitionDuration = time.Duration(p.TransitionMs) * time.Millisecond
	}
	return cfg
}

// Mode is the parsed selection mode, single when invalid.
func (p PickerConfig) Mode() picker.Mode {
	m, _ := picker.ParseMode(p.SelectionMode)
	return m
}

// Kind is the parsed asset kind, photos when invalid.
func (l LibraryConfig) Kind() photos.AssetKind {
	k, err := photos.ParseAssetKind(l.AssetKind)
	if err != nil {
		return photos.KindPhotos
	}
	return k
}
