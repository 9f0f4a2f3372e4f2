package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsWellFormed(t *testing.T) {
	cfg := Default()
	if cfg.WordSize != 4 && cfg.WordSize != 8 {
		t.Fatalf("default word size must be 4 or 8, got %d", cfg.WordSize)
	}
	if cfg.EntryPointFunction == "" {
		t.Fatal("default entry point function name must not be empty")
	}
}

func TestLoadFromDirFallsBackToDefaultWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

func TestLoadParsesManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumen.toml")
	body := `
word_size = 4
entry_point_function = "start"

[target]
os = "darwin"
arch = "arm64"

[diagnostics]
mode = "normal"
color = "always"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WordSize != 4 || cfg.EntryPointFunction != "start" || cfg.Target.OS != "darwin" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsBadWordSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumen.toml")
	if err := os.WriteFile(path, []byte("word_size = 16\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an invalid word_size")
	}
}
