// Package config loads user settings and the style block shared by config
// and palette files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/colorfamily/internal/color"
	"github.com/jsvensson/colorfamily/internal/style"
)

// Config holds user settings.
type Config struct {
	Format color.Format
	Seed   *uint64 // nil means a fresh random seed per run
	Styles *style.Table
}

// StyleBlock is a `style "<kind>" { ... }` block.
type StyleBlock struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}

// styleAttrs are the attributes of a style block. Attributes left out keep
// the value of the table being overridden.
type styleAttrs struct {
	Saturation       *int `hcl:"saturation,optional"`
	SaturationJitter *int `hcl:"saturation_jitter,optional"`
	Lightness        *int `hcl:"lightness,optional"`
	LightnessJitter  *int `hcl:"lightness_jitter,optional"`
}

type fileConfig struct {
	Format *string      `hcl:"format,optional"`
	Seed   *int64       `hcl:"seed,optional"`
	Styles []StyleBlock `hcl:"style,block"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Format: color.HexCode6,
		Styles: style.Default(),
	}
}

// DefaultPath returns the per-user config file location,
// e.g. ~/.config/colorfamily/config.hcl.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "colorfamily", "config.hcl"), nil
}

// LoadDefault loads the file at DefaultPath, falling back to Default when
// it does not exist.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Load reads and parses a config file.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(src, path)
}

// Parse parses config file contents. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %s", diags.Error())
	}

	cfg := Default()

	if fc.Format != nil {
		f, err := color.ParseFormat(*fc.Format)
		if err != nil {
			return nil, fmt.Errorf("format: %w", err)
		}
		cfg.Format = f
	}

	if fc.Seed != nil {
		seed, err := ParseSeed(*fc.Seed)
		if err != nil {
			return nil, err
		}
		cfg.Seed = &seed
	}

	styles, err := ApplyStyles(cfg.Styles, fc.Styles)
	if err != nil {
		return nil, err
	}
	cfg.Styles = styles

	return cfg, nil
}

// ParseSeed validates a seed read from HCL, where numbers are signed.
func ParseSeed(v int64) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: seed %d must not be negative", color.ErrOutOfRange, v)
	}
	return uint64(v), nil
}

// ApplyStyles returns base with the bands of the given style blocks applied
// on top.
func ApplyStyles(base *style.Table, blocks []StyleBlock) (*style.Table, error) {
	if len(blocks) == 0 {
		if base == nil {
			return style.Default(), nil
		}
		return base, nil
	}

	overrides := make(map[style.Kind]style.Band, len(blocks))
	for _, b := range blocks {
		kind, err := style.ParseKind(b.Kind)
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", b.Kind, err)
		}
		if _, dup := overrides[kind]; dup {
			return nil, fmt.Errorf("style %q is defined more than once", b.Kind)
		}
		band, ok := base.Band(kind)
		if !ok {
			return nil, fmt.Errorf("style %q: %w", b.Kind, style.ErrUnsupported)
		}

		var attrs styleAttrs
		if diags := gohcl.DecodeBody(b.Body, nil, &attrs); diags.HasErrors() {
			return nil, fmt.Errorf("style %q: %s", b.Kind, diags.Error())
		}
		overlay(&band.Saturation, attrs.Saturation)
		overlay(&band.SaturationJitter, attrs.SaturationJitter)
		overlay(&band.Lightness, attrs.Lightness)
		overlay(&band.LightnessJitter, attrs.LightnessJitter)
		overrides[kind] = band
	}

	return base.With(overrides)
}

func overlay(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
