package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/vitreous/internal/spatial"
)

// EnvPath overrides the config file location.
const EnvPath = "VITREOUS_CONFIG"

// DefaultPath is used when EnvPath is unset.
const DefaultPath = "config/vitreous.yaml"

// Store drivers.
const (
	DriverFS       = "fs"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

var ErrInvalid = errors.New("invalid config")

// Config holds everything the editor and the content tools read at startup.
type Config struct {
	LogLevel string `yaml:"log_level"`

	Content ContentConfig `yaml:"content"`
	Spatial SpatialConfig `yaml:"spatial"`
	Editor  EditorConfig  `yaml:"editor"`
	Window  WindowConfig  `yaml:"window"`
	Metrics MetricsConfig `yaml:"metrics"`

	DebugOverlay bool `yaml:"debug_overlay"`
}

// ContentConfig lists content modules in load order.
type ContentConfig struct {
	Modules []ModuleConfig `yaml:"modules"`
}

type ModuleConfig struct {
	Name string `yaml:"name"`
	Root string `yaml:"root"`
}

// SpatialConfig holds grid dimensions, in tiles and pixels.
type SpatialConfig struct {
	GridWidth        int `yaml:"grid_width"`
	GridHeight       int `yaml:"grid_height"`
	TileWidth        int `yaml:"tile_width"`
	TileHeight       int `yaml:"tile_height"`
	SectorGridWidth  int `yaml:"sector_grid_width"`
	SectorGridHeight int `yaml:"sector_grid_height"`
}

// Options converts the section to grid options.
func (s SpatialConfig) Options() spatial.Options {
	return spatial.Options{
		GridWidth:        s.GridWidth,
		GridHeight:       s.GridHeight,
		TileWidth:        s.TileWidth,
		TileHeight:       s.TileHeight,
		SectorGridWidth:  s.SectorGridWidth,
		SectorGridHeight: s.SectorGridHeight,
	}
}

type EditorConfig struct {
	Store StoreConfig `yaml:"store"`
}

// StoreConfig selects where editor documents are kept.
type StoreConfig struct {
	Driver     string         `yaml:"driver"`
	Dir        string         `yaml:"dir"`
	SQLitePath string         `yaml:"sqlite_path"`
	Database   DatabaseConfig `yaml:"database"`
	S3         S3Config       `yaml:"s3"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// S3Config locates editor documents in a bucket. Endpoint and PathStyle
// target S3-compatible servers.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
	Prefix    string `yaml:"prefix"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// MetricsConfig exposes prometheus metrics over HTTP when Address is set.
type MetricsConfig struct {
	Address string `yaml:"address"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	opts := spatial.DefaultOptions()
	return Config{
		LogLevel: "info",
		Content: ContentConfig{
			Modules: []ModuleConfig{{Name: "vitreous", Root: "content/vitreous"}},
		},
		Spatial: SpatialConfig{
			GridWidth:        opts.GridWidth,
			GridHeight:       opts.GridHeight,
			TileWidth:        opts.TileWidth,
			TileHeight:       opts.TileHeight,
			SectorGridWidth:  opts.SectorGridWidth,
			SectorGridHeight: opts.SectorGridHeight,
		},
		Editor: EditorConfig{
			Store: StoreConfig{
				Driver:     DriverFS,
				Dir:        "editor",
				SQLitePath: "editor/vitreous.db",
				Database: DatabaseConfig{
					Host:     "127.0.0.1",
					Port:     5432,
					User:     "vitreous",
					Password: "vitreous",
					DBName:   "vitreous",
					SSLMode:  "disable",
				},
				S3: S3Config{
					Region: "us-east-1",
					Prefix: "editor/",
				},
			},
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "Vitreous Editor",
		},
	}
}

// Path returns the config path from the environment, or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads config from a YAML file on top of the defaults.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values the rest of the program relies on.
func (c Config) Validate() error {
	s := c.Spatial
	if s.GridWidth <= 0 || s.GridHeight <= 0 || s.TileWidth <= 0 || s.TileHeight <= 0 ||
		s.SectorGridWidth <= 0 || s.SectorGridHeight <= 0 {
		return fmt.Errorf("spatial dimensions must be positive: %w", ErrInvalid)
	}
	if len(c.Content.Modules) == 0 {
		return fmt.Errorf("no content modules: %w", ErrInvalid)
	}
	for i, m := range c.Content.Modules {
		if m.Name == "" || m.Root == "" {
			return fmt.Errorf("content module %d needs name and root: %w", i, ErrInvalid)
		}
	}
	switch c.Editor.Store.Driver {
	case DriverFS, DriverSQLite, DriverPostgres:
	case DriverS3:
		if c.Editor.Store.S3.Bucket == "" {
			return fmt.Errorf("s3 store needs a bucket: %w", ErrInvalid)
		}
	default:
		return fmt.Errorf("unknown store driver %q: %w", c.Editor.Store.Driver, ErrInvalid)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
