package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/worldcore/internal/grid"
)

// MapEntry is one map instance the server keeps loaded.
type MapEntry struct {
	ID         uint32 `yaml:"id"`
	Name       string `yaml:"name"`
	Difficulty uint8  `yaml:"difficulty"`
}

// Maps holds map update and grid lifecycle settings.
type Maps struct {
	Instances []MapEntry `yaml:"instances"`

	UpdateInterval time.Duration `yaml:"update_interval"`    // per-map tick (default: 100ms)
	UpdateThreads  int           `yaml:"map_update_threads"` // maps updated in parallel (default: 4)

	// Idle grids are unloaded after UnloadDelay when UnloadGrids is set.
	UnloadGrids bool          `yaml:"grid_unload"`
	UnloadDelay time.Duration `yaml:"grid_unload_delay"` // default: 5m
}

// WorldServer holds all configuration for the world server.
type WorldServer struct {
	LogLevel string `yaml:"log_level"`

	// Database
	UseDatabase bool           `yaml:"use_database"` // false runs on an empty in-memory spawn store
	Database    DatabaseConfig `yaml:"database"`

	Grid grid.Layout `yaml:"grid"`
	Maps Maps        `yaml:"maps"`

	// Encounter boundary scripts (*.lua)
	ScriptsDir string `yaml:"scripts_dir"`
}

// DefaultWorldServer returns WorldServer config with sensible defaults.
func DefaultWorldServer() WorldServer {
	return WorldServer{
		LogLevel:    "info",
		UseDatabase: true,
		Database:    DefaultDatabase(),
		Grid:        *grid.DefaultLayout(),
		Maps: Maps{
			Instances: []MapEntry{
				{ID: 0, Name: "Eastern Kingdoms"},
				{ID: 1, Name: "Kalimdor"},
			},
			UpdateInterval: 100 * time.Millisecond,
			UpdateThreads:  4,
			UnloadGrids:    true,
			UnloadDelay:    5 * time.Minute,
		},
		ScriptsDir: "scripts",
	}
}

// LoadWorldServer loads world server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadWorldServer(path string) (WorldServer, error) {
	cfg := DefaultWorldServer()
	if err := loadYAML(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every inconsistent setting.
func (c *WorldServer) Validate() error {
	var errs []error

	if err := c.Grid.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("grid: %w", err))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Maps.UpdateInterval <= 0 {
		errs = append(errs, errors.New("maps.update_interval must be positive"))
	}
	if c.Maps.UpdateThreads < 1 {
		errs = append(errs, errors.New("maps.map_update_threads must be at least 1"))
	}
	if c.Maps.UnloadDelay < 0 {
		errs = append(errs, errors.New("maps.grid_unload_delay must not be negative"))
	}

	seen := make(map[uint32]struct{}, len(c.Maps.Instances))
	for _, m := range c.Maps.Instances {
		if _, dup := seen[m.ID]; dup {
			errs = append(errs, fmt.Errorf("maps.instances: duplicate map id %d", m.ID))
		}
		seen[m.ID] = struct{}{}
	}

	return errors.Join(errs...)
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *WorldServer) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
