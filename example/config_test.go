package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/imbridge"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeConfig(t, "cfg.toml", `
title = "toml window"
width = 1024
fps = 30
flags = ["floating", "frameless"]
glyph_ranges = [[0x20, 0x7E], [0x370, 0x3FF]]
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "toml window", cfg.Title)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 600, cfg.Height, "unset keys keep defaults")
	assert.Equal(t, uint(30), cfg.FPS)

	flags, err := cfg.WindowFlags()
	require.NoError(t, err)
	assert.Equal(t, imbridge.WindowFlagsFloating|imbridge.WindowFlagsFrameless, flags)

	g, err := cfg.GlyphRange()
	require.NoError(t, err)
	defer g.Destroy()
	assert.Equal(t, 4, g.Len())
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "cfg.yaml", `
title: yaml window
height: 480
vsync: true
clear_color: [0, 0, 0, 1]
glyph_ranges:
  - [0x30, 0x39]
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "yaml window", cfg.Title)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.True(t, cfg.VSync)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, cfg.ClearColor)
	assert.Equal(t, [][2]int32{{0x30, 0x39}}, cfg.GlyphRanges)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "cfg.json", `{}`))
	assert.ErrorContains(t, err, "unsupported extension")

	_, err = LoadConfig(writeConfig(t, "bad.toml", `width = "wide"`))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Width = 0
	cfg.Flags = []string{"fullscreen"}
	cfg.GlyphRanges = [][2]int32{{0x7E, 0x20}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "window size")
	assert.ErrorContains(t, err, "fullscreen")
	assert.ErrorIs(t, err, imbridge.ErrInvalidGlyphRange)
}

func TestResolveConfigFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--fps", "0", "--title", "flagged"}))

	cfg, err := resolveConfig(cmd, options{title: "flagged", fps: 0})
	require.NoError(t, err)
	assert.Equal(t, "flagged", cfg.Title)
	assert.Equal(t, uint(0), cfg.FPS)
	assert.Equal(t, 800, cfg.Width)
}
