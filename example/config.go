package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/imbridge"
)

// Config holds the example's window and rendering settings.
type Config struct {
	Title       string     `toml:"title" yaml:"title"`
	Width       int        `toml:"width" yaml:"width"`
	Height      int        `toml:"height" yaml:"height"`
	FPS         uint       `toml:"fps" yaml:"fps"`
	VSync       bool       `toml:"vsync" yaml:"vsync"`
	Flags       []string   `toml:"flags" yaml:"flags"`
	ClearColor  [4]float32 `toml:"clear_color" yaml:"clear_color"`
	GlyphRanges [][2]int32 `toml:"glyph_ranges" yaml:"glyph_ranges"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:       "imbridge example",
		Width:       800,
		Height:      600,
		FPS:         60,
		ClearColor:  [4]float32{0.12, 0.12, 0.14, 1.0},
		GlyphRanges: [][2]int32{{0x20, 0x7E}, {0xA0, 0xFF}},
	}
}

// LoadConfig reads a TOML or YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if _, err := c.WindowFlags(); err != nil {
		errs = append(errs, err)
	}
	if g, err := c.GlyphRange(); err != nil {
		errs = append(errs, err)
	} else {
		g.Destroy()
	}
	return errors.Join(errs...)
}

// WindowFlags parses Flags.
func (c Config) WindowFlags() (imbridge.WindowFlags, error) {
	return imbridge.ParseWindowFlags(c.Flags)
}

// GlyphRange builds a glyph range buffer from GlyphRanges.
// The caller owns the result and must Destroy it.
func (c Config) GlyphRange() (*imbridge.GlyphRange, error) {
	g := imbridge.NewGlyphRange()
	for _, r := range c.GlyphRanges {
		if err := g.AddRange(r[0], r[1]); err != nil {
			g.Destroy()
			return nil, err
		}
	}
	return g, nil
}
