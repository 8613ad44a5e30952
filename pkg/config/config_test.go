package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vanderheijden86/panedock/pkg/model"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LayoutPath != filepath.Join(MarkerDir, "layout.json") {
		t.Errorf("LayoutPath = %q", cfg.LayoutPath)
	}
	if cfg.MinPanelSize != model.DefaultMinSize {
		t.Errorf("MinPanelSize = %v, want %v", cfg.MinPanelSize, model.DefaultMinSize)
	}
	if cfg.Validator.MaxDepth != 10 || cfg.Validator.MaxNodes != 50 {
		t.Errorf("Validator = %+v, want 10/50", cfg.Validator)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
layout_path: custom/layout.json
min_panel_size: 200
validator:
  max_depth: 6
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LayoutPath != "custom/layout.json" {
		t.Errorf("LayoutPath = %q", cfg.LayoutPath)
	}
	if cfg.MinPanelSize != 200 {
		t.Errorf("MinPanelSize = %v, want 200", cfg.MinPanelSize)
	}
	if cfg.Validator.MaxDepth != 6 {
		t.Errorf("Validator.MaxDepth = %d, want 6", cfg.Validator.MaxDepth)
	}
	// Unset fields keep their defaults.
	if cfg.SnapshotDB != filepath.Join(MarkerDir, "snapshots.db") {
		t.Errorf("SnapshotDB = %q, want default", cfg.SnapshotDB)
	}
	if cfg.Validator.MaxNodes != 50 {
		t.Errorf("Validator.MaxNodes = %d, want default 50", cfg.Validator.MaxNodes)
	}
}

func TestLoad_ClampsMinPanelSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("min_panel_size: 9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MinPanelSize != model.MaxPanelSize {
		t.Errorf("MinPanelSize = %v, want clamped %v", cfg.MinPanelSize, model.MaxPanelSize)
	}
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("missing file must error")
	}
	// The returned config is still usable.
	if cfg.LayoutPath == "" {
		t.Error("fallback config should carry defaults")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\t not yaml ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml must error")
	}
}

func TestFindLayoutRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, MarkerDir), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok := FindLayoutRoot(nested)
	if !ok {
		t.Fatal("FindLayoutRoot() should locate the marker")
	}
	if got != root {
		t.Errorf("FindLayoutRoot() = %q, want %q", got, root)
	}
}

func TestFindLayoutRoot_NotFound(t *testing.T) {
	if _, ok := FindLayoutRoot(t.TempDir()); ok {
		t.Error("unmarked directory should not resolve to a root")
	}
}

func TestPathResolution(t *testing.T) {
	root := t.TempDir()
	cfg := Default()

	got := cfg.LayoutFilePath(root)
	if got != filepath.Join(root, MarkerDir, "layout.json") {
		t.Errorf("LayoutFilePath() = %q", got)
	}
	// The containing directory is created on resolution.
	if _, err := os.Stat(filepath.Join(root, MarkerDir)); err != nil {
		t.Errorf("marker dir not created: %v", err)
	}

	abs := filepath.Join(root, "elsewhere.json")
	cfg.LayoutPath = abs
	if got := cfg.LayoutFilePath("/ignored"); got != abs {
		t.Errorf("absolute LayoutFilePath() = %q, want %q", got, abs)
	}
}
