package imbridge

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// FrameHooks are the three per-frame injection points of Driver.Run.
type FrameHooks interface {
	// BeforeRender runs after events are polled, before the frame starts.
	BeforeRender()
	// Loop builds the frame's UI.
	Loop()
	// AfterRender runs after the frame was rendered, before the swap.
	AfterRender()
}

type funcHooks struct {
	loop, before, after func()
}

func (h funcHooks) BeforeRender() {
	if h.before != nil {
		h.before()
	}
}

func (h funcHooks) Loop() {
	if h.loop != nil {
		h.loop()
	}
}

func (h funcHooks) AfterRender() {
	if h.after != nil {
		h.after()
	}
}

// Hooks adapts plain functions to FrameHooks. Nil functions are skipped.
func Hooks(loop, beforeRender, afterRender func()) FrameHooks {
	return funcHooks{loop: loop, before: beforeRender, after: afterRender}
}

// FrameRenderer draws a frame's draw data.
type FrameRenderer interface {
	Render(dd *DrawData) error
}

// Driver owns windows and runs the frame loop.
// It is not safe for concurrent use, except for Refresh.
type Driver struct {
	platform Platform
	ctx      *Context
	renderer FrameRenderer
	logger   *slog.Logger
	now      func() time.Time

	targetFPS uint
	budget    time.Duration
	refresh   atomic.Bool

	frameCount uint64
	lastFrame  time.Time
	deltaTime  time.Duration
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithLogger sets the logger used by the driver.
func WithLogger(l *slog.Logger) DriverOption {
	return func(d *Driver) { d.logger = l }
}

// WithContext makes the driver start and render a frame of ctx on every
// iteration, around the Loop hook.
func WithContext(ctx *Context) DriverOption {
	return func(d *Driver) { d.ctx = ctx }
}

// WithRenderer sets the renderer receiving each frame's draw data.
// It has no effect without WithContext.
func WithRenderer(r FrameRenderer) DriverOption {
	return func(d *Driver) { d.renderer = r }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) DriverOption {
	return func(d *Driver) { d.now = now }
}

// NewDriver creates a driver on top of p.
func NewDriver(p Platform, opts ...DriverOption) *Driver {
	d := &Driver{
		platform: p,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetTargetFPS sets the pacing target. 0 runs unthrottled.
// The target is a hint: slow frames are tolerated, not reported.
func (d *Driver) SetTargetFPS(fps uint) {
	d.targetFPS = fps
	if fps == 0 {
		d.budget = 0
		return
	}
	d.budget = time.Second / time.Duration(fps)
}

// SetRenderer replaces the frame renderer. Renderers usually need the GL
// context of the first window, so they are attached after CreateWindow.
func (d *Driver) SetRenderer(r FrameRenderer) {
	d.renderer = r
}

// TargetFPS returns the pacing target.
func (d *Driver) TargetFPS() uint {
	return d.targetFPS
}

// CreateWindow opens a window. Failures are returned, never fatal, so the
// caller may retry with other parameters.
func (d *Driver) CreateWindow(title string, width, height int, flags WindowFlags) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidWindowSize, width, height)
	}
	pw, err := d.platform.CreateWindow(title, width, height, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindowCreate, err)
	}
	if d.ctx != nil {
		if b, ok := pw.(IOBinder); ok {
			b.BindIO(d.ctx.IO())
		}
	}
	d.logger.Info("window created", "title", title, "width", width, "height", height, "flags", flags.String())
	return &Window{pw: pw, title: title, flags: flags}, nil
}

// Run drives frames until w is closed, then destroys w.
//
// Each iteration polls events, calls BeforeRender, starts a frame, calls
// Loop, renders, calls AfterRender, swaps buffers and waits out the frame
// budget. Closing is only observed between frames. A render error stops
// the loop and is returned.
func (d *Driver) Run(w *Window, hooks FrameHooks) error {
	w.mustBeValid("Run")
	if hooks == nil {
		hooks = funcHooks{}
	}

	d.logger.Debug("loop started", "title", w.title, "fps", d.targetFPS)
	defer func() {
		if w.Valid() {
			w.Destroy()
		}
		d.logger.Info("window destroyed", "title", w.title, "frames", d.frameCount)
	}()

	for !w.pw.ShouldClose() {
		if err := d.Step(w, hooks); err != nil {
			return err
		}
	}
	return nil
}

// Step runs a single frame on w without checking the close request.
// It is the cooperative alternative to Run.
func (d *Driver) Step(w *Window, hooks FrameHooks) error {
	w.mustBeValid("Step")
	start := d.now()
	if !d.lastFrame.IsZero() {
		d.deltaTime = start.Sub(d.lastFrame)
	} else {
		d.deltaTime = time.Second / 60
	}
	d.lastFrame = start

	d.platform.PollEvents()

	hooks.BeforeRender()
	w.mustBeValid("Step")
	if d.ctx != nil {
		width, height := w.pw.DisplaySize()
		d.ctx.NewFrame(Vec2{X: float32(width), Y: float32(height)}, float32(d.deltaTime.Seconds()))
	}
	hooks.Loop()
	if d.ctx != nil {
		dd := d.ctx.Render()
		if d.renderer != nil {
			if err := d.renderer.Render(dd); err != nil {
				return fmt.Errorf("render frame %d: %w", d.frameCount, err)
			}
		}
	}
	hooks.AfterRender()
	// Hooks may have destroyed the window.
	w.mustBeValid("Step")
	w.pw.SwapBuffers()
	d.frameCount++

	d.pace(w, start)
	return nil
}

// pace waits out the rest of the frame budget. Waits end early on any
// event, so it keeps waiting until the budget is spent, a refresh is
// requested or the window is closing.
func (d *Driver) pace(w *Window, start time.Time) {
	if d.refresh.Swap(false) || d.budget == 0 {
		return
	}
	remaining := d.budget - d.now().Sub(start)
	if remaining <= 0 {
		d.logger.Debug("frame over budget", "frame", d.frameCount, "over", -remaining)
		return
	}
	for remaining > 0 && !w.pw.ShouldClose() {
		d.platform.WaitEventsTimeout(remaining)
		if d.refresh.Swap(false) {
			return
		}
		remaining = d.budget - d.now().Sub(start)
	}
}

// Refresh requests an immediate frame: a pending pacing wait is woken and
// the next one is skipped. It may be called from any goroutine.
func (d *Driver) Refresh() {
	d.refresh.Store(true)
	d.platform.PostEmptyEvent()
}

// FrameCount returns the number of frames completed.
func (d *Driver) FrameCount() uint64 {
	return d.frameCount
}

// DeltaTime returns the time between the starts of the last two frames.
func (d *Driver) DeltaTime() time.Duration {
	return d.deltaTime
}

// Context returns the toolkit context, or nil.
func (d *Driver) Context() *Context {
	return d.ctx
}
