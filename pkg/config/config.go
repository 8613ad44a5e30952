// Package config loads panedock configuration and locates the layout root.
// A project opts in by carrying a .panedock/ directory; config, the layout
// file and the snapshot database all live inside it by default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/panedock/pkg/model"
)

// MarkerDir is the directory that marks a layout root.
const MarkerDir = ".panedock"

const (
	configFileName = "config.yaml"
	layoutFileName = "layout.json"
	dbFileName     = "snapshots.db"
)

// Limits configures the validator's advisory thresholds.
type Limits struct {
	MaxDepth int `yaml:"max_depth,omitempty"`
	MaxNodes int `yaml:"max_nodes,omitempty"`
}

// Config is the on-disk configuration (.panedock/config.yaml).
type Config struct {
	// LayoutPath overrides where the layout file is read and written.
	// Relative paths resolve against the layout root.
	LayoutPath string `yaml:"layout_path,omitempty"`

	// MinPanelSize is the default minimum size for new nodes.
	MinPanelSize float64 `yaml:"min_panel_size,omitempty"`

	// SnapshotDB overrides where named layout snapshots are stored.
	SnapshotDB string `yaml:"snapshot_db,omitempty"`

	Validator Limits `yaml:"validator,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LayoutPath:   filepath.Join(MarkerDir, layoutFileName),
		MinPanelSize: model.DefaultMinSize,
		SnapshotDB:   filepath.Join(MarkerDir, dbFileName),
		Validator:    Limits{MaxDepth: 10, MaxNodes: 50},
	}
}

// Load reads a config file and fills unset fields with defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.LayoutPath == "" {
		cfg.LayoutPath = filepath.Join(MarkerDir, layoutFileName)
	}
	if cfg.SnapshotDB == "" {
		cfg.SnapshotDB = filepath.Join(MarkerDir, dbFileName)
	}
	cfg.MinPanelSize = model.ClampMinSize(cfg.MinPanelSize)
	if cfg.Validator.MaxDepth <= 0 {
		cfg.Validator.MaxDepth = 10
	}
	if cfg.Validator.MaxNodes <= 0 {
		cfg.Validator.MaxNodes = 50
	}
	return cfg, nil
}

// FindLayoutRoot walks up from dir looking for a .panedock/ directory. The
// search stops at the filesystem root and does not climb past the user's
// home directory.
func FindLayoutRoot(dir string) (string, bool) {
	home, _ := os.UserHomeDir()

	for {
		marker := filepath.Join(dir, MarkerDir)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}

// LoadOrDefault locates the layout root from the working directory and
// loads its config. Without a root (or a readable config file) it falls
// back to defaults rooted in the working directory.
func LoadOrDefault() (Config, string) {
	cwd, err := os.Getwd()
	if err != nil {
		return Default(), "."
	}

	root, ok := FindLayoutRoot(cwd)
	if !ok {
		return Default(), cwd
	}

	cfg, err := Load(filepath.Join(root, MarkerDir, configFileName))
	if err != nil {
		return Default(), root
	}
	return cfg, root
}

// LayoutFilePath resolves the configured layout file path against root,
// creating its directory when needed.
func (c Config) LayoutFilePath(root string) string { return c.resolve(root, c.LayoutPath) }

// SnapshotDBPath resolves the configured snapshot database path against root.
func (c Config) SnapshotDBPath(root string) string { return c.resolve(root, c.SnapshotDB) }

func (c Config) resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	resolved := filepath.Join(root, path)
	_ = os.MkdirAll(filepath.Dir(resolved), 0o755)
	return resolved
}
