// Example opens a window and drives the imbridge frame loop with a small
// demo UI drawn straight into draw lists.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//	go run ./example/ --config example/example.toml --screenshot demo.png
package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/image/font/basicfont"

	"github.com/go-theft-auto/imbridge"
	"github.com/go-theft-auto/imbridge/backend/opengl"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	title      string
	fps        uint
	flags      []string
	screenshot string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "example",
		Short:        "Run the imbridge demo window",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return run(cfg, opts.screenshot, logger)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML or YAML config file")
	f.StringVar(&opts.title, "title", "", "window title")
	f.UintVar(&opts.fps, "fps", 0, "target frames per second, 0 for unthrottled")
	f.StringSliceVar(&opts.flags, "flags", nil, "window flags: not-resizable, maximized, floating, frameless, transparent")
	f.StringVar(&opts.screenshot, "screenshot", "", "save a PNG of the third frame and exit")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// resolveConfig loads the config file and applies flags that were set.
func resolveConfig(cmd *cobra.Command, opts options) (Config, error) {
	cfg := DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = LoadConfig(opts.configPath); err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("title") {
		cfg.Title = opts.title
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = opts.fps
	}
	if cmd.Flags().Changed("flags") {
		cfg.Flags = opts.flags
	}
	return cfg, cfg.Validate()
}

func run(cfg Config, screenshot string, logger *slog.Logger) error {
	platform, err := opengl.NewPlatform(opengl.WithVSync(cfg.VSync), opengl.WithPlatformLogger(logger))
	if err != nil {
		return err
	}
	defer platform.Terminate()

	ctx := imbridge.NewContext()
	driver := imbridge.NewDriver(platform, imbridge.WithContext(ctx), imbridge.WithLogger(logger))
	driver.SetTargetFPS(cfg.FPS)

	flags, err := cfg.WindowFlags()
	if err != nil {
		return err
	}
	window, err := driver.CreateWindow(cfg.Title, cfg.Width, cfg.Height, flags)
	if err != nil {
		return err
	}
	// Run destroys the window; this covers the early returns below.
	defer func() {
		if window.Valid() {
			window.Destroy()
		}
	}()

	// The renderer needs the window's GL context.
	c := cfg.ClearColor
	renderer, err := opengl.NewRenderer(opengl.WithClearColor(c[0], c[1], c[2], c[3]))
	if err != nil {
		return fmt.Errorf("gui renderer: %w", err)
	}
	defer renderer.Destroy()
	driver.SetRenderer(renderer)

	registry := imbridge.NewTextureRegistry(renderer, imbridge.WithRegistryLogger(logger))
	defer registry.Close()

	font, err := loadFont(ctx.IO().Fonts, registry, cfg)
	if err != nil {
		return err
	}

	checker, err := registry.CreateTexture(checkerPixels(), 2, 2)
	if err != nil {
		logger.Warn("checker texture unavailable", "err", err)
	}

	d := newDemo(ctx, driver, window, font, checker)
	if screenshot != "" {
		d.capture = func() error { return saveScreenshot(window, screenshot) }
	}
	if err := driver.Run(window, d); err != nil {
		return err
	}
	return d.err
}

// loadFont builds the font atlas and uploads it.
func loadFont(atlas *imbridge.FontAtlas, registry *imbridge.TextureRegistry, cfg Config) (*imbridge.Font, error) {
	ranges, err := cfg.GlyphRange()
	if err != nil {
		return nil, err
	}
	// The atlas reads the ranges during Build only.
	defer ranges.Destroy()

	var src *imbridge.GlyphRange
	if ranges.Len() > 0 {
		src = ranges
	}
	font, err := atlas.AddFont(basicfont.Face7x13, src)
	if err != nil {
		return nil, err
	}
	pixels, w, h, err := atlas.Build()
	if err != nil {
		return nil, fmt.Errorf("build font atlas: %w", err)
	}
	tex, err := registry.CreateTexture(pixels, w, h)
	if err != nil {
		return nil, fmt.Errorf("upload font atlas: %w", err)
	}
	atlas.SetTexID(tex)
	return font, nil
}

// checkerPixels returns a 2x2 white and gray checker.
func checkerPixels() []byte {
	return []byte{
		0xFF, 0xFF, 0xFF, 0xFF, 0x80, 0x80, 0x80, 0xFF,
		0x80, 0x80, 0x80, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	}
}

func saveScreenshot(window *imbridge.Window, path string) error {
	w, h := window.DisplaySize()
	img := opengl.Capture(w, h)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
