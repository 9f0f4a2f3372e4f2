// Package config loads the build-environment configuration the semantic
// core consumes (§6 EXTERNAL INTERFACES): word size, target metrics, the
// entry-point function name, and diagnostic emission settings. It mirrors
// the model project's own TOML-manifest discovery and decoding style.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EmitMode controls whether diagnostics are printed at all.
type EmitMode uint8

const (
	EmitNormal EmitMode = iota
	EmitNone
)

// TargetMetrics names the OS/architecture the build is checking against,
// which only affects width-sensitive constant folding (§4.1 word_size) —
// this module never generates code for the target.
type TargetMetrics struct {
	OS   string `toml:"os"`
	Arch string `toml:"arch"`
}

// Config is everything §6 says the core consumes "from the build
// environment". The spec makes no commitment to how these are parsed; this
// repository commits to a TOML manifest (`lumen.toml`) with CLI flag
// overrides, matching the model project's `surge.toml` project-manifest
// idiom.
type Config struct {
	WordSize           int               `toml:"word_size"`
	Target             TargetMetrics     `toml:"target"`
	EntryPointFunction string            `toml:"entry_point_function"`
	Diagnostics        DiagnosticsConfig `toml:"diagnostics"`
	EmitHIR            bool              `toml:"-"`
}

// DiagnosticsConfig groups the diagnostic-emission knobs named in §6.
type DiagnosticsConfig struct {
	Mode  string `toml:"mode"`  // "normal" | "none"
	Color string `toml:"color"` // "auto" | "always" | "never"
}

// Default returns the configuration used when no lumen.toml is present:
// an 8-byte word size, a linux/amd64 target, and "main" as the entry
// point function name.
func Default() Config {
	return Config{
		WordSize:           8,
		Target:             TargetMetrics{OS: "linux", Arch: "amd64"},
		EntryPointFunction: "main",
		Diagnostics:        DiagnosticsConfig{Mode: "normal", Color: "auto"},
	}
}

// Mode resolves the configured diagnostic mode into an EmitMode.
func (c Config) Mode() EmitMode {
	if strings.EqualFold(c.Diagnostics.Mode, "none") {
		return EmitNone
	}
	return EmitNormal
}

// ErrManifestMissing is returned by FindManifest when no lumen.toml is
// found walking up from the start directory.
var ErrManifestMissing = errors.New("config: no lumen.toml found")

// FindManifest walks up from startDir looking for a lumen.toml, the way
// the model project's FindSurgeToml locates its own project manifest.
func FindManifest(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("config: resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "lumen.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrManifestMissing
}

// Load reads and decodes the lumen.toml at path onto the Default
// configuration, so an omitted section keeps its default value rather
// than zeroing out.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.WordSize != 4 && cfg.WordSize != 8 {
		return Config{}, fmt.Errorf("%s: word_size must be 4 or 8, got %d", path, cfg.WordSize)
	}
	if strings.TrimSpace(cfg.EntryPointFunction) == "" {
		cfg.EntryPointFunction = "main"
	}
	return cfg, nil
}

// LoadFromDir discovers and loads lumen.toml starting at dir, falling back
// to Default() if none exists (a project with no manifest is valid — §6
// makes no commitment that configuration must come from a file).
func LoadFromDir(dir string) (Config, error) {
	path, err := FindManifest(dir)
	if err != nil {
		if errors.Is(err, ErrManifestMissing) {
			return Default(), nil
		}
		return Config{}, err
	}
	return Load(path)
}
