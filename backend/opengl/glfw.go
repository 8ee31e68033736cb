package opengl

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/imbridge"
)

// Platform implements imbridge.Platform with GLFW and an OpenGL 4.1 core
// context per window. All methods must be called from the main thread,
// except PostEmptyEvent.
type Platform struct {
	logger *slog.Logger
	vsync  bool
	glInit bool
}

// PlatformOption configures a Platform.
type PlatformOption func(*Platform)

// WithVSync enables swap interval 1. The driver's frame pacing still applies.
func WithVSync(on bool) PlatformOption {
	return func(p *Platform) { p.vsync = on }
}

// WithPlatformLogger sets the logger used by the platform.
func WithPlatformLogger(l *slog.Logger) PlatformOption {
	return func(p *Platform) { p.logger = l }
}

// NewPlatform initializes GLFW. Call Terminate when done.
func NewPlatform(opts ...PlatformOption) (*Platform, error) {
	p := &Platform{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	return p, nil
}

// Terminate shuts GLFW down, destroying any remaining windows.
func (p *Platform) Terminate() {
	glfw.Terminate()
}

var _ imbridge.Platform = (*Platform)(nil)

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

// CreateWindow opens a GLFW window and makes its context current.
func (p *Platform) CreateWindow(title string, width, height int, flags imbridge.WindowFlags) (imbridge.PlatformWindow, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	glfw.WindowHint(glfw.Resizable, boolHint(!flags.Has(imbridge.WindowFlagsNotResizable)))
	glfw.WindowHint(glfw.Maximized, boolHint(flags.Has(imbridge.WindowFlagsMaximized)))
	glfw.WindowHint(glfw.Floating, boolHint(flags.Has(imbridge.WindowFlagsFloating)))
	glfw.WindowHint(glfw.Decorated, boolHint(!flags.Has(imbridge.WindowFlagsFrameless)))
	glfw.WindowHint(glfw.TransparentFramebuffer, boolHint(flags.Has(imbridge.WindowFlagsTransparent)))

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	win.MakeContextCurrent()
	if p.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if !p.glInit {
		if err := gl.Init(); err != nil {
			win.Destroy()
			return nil, fmt.Errorf("gl init: %w", err)
		}
		p.glInit = true
		p.logger.Info("opengl initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	}

	return &Window{win: win}, nil
}

// PollEvents processes pending GLFW events.
func (p *Platform) PollEvents() {
	glfw.PollEvents()
}

// WaitEventsTimeout sleeps until an event arrives or d elapses.
func (p *Platform) WaitEventsTimeout(d time.Duration) {
	glfw.WaitEventsTimeout(d.Seconds())
}

// PostEmptyEvent wakes WaitEventsTimeout. Safe from any goroutine.
func (p *Platform) PostEmptyEvent() {
	glfw.PostEmptyEvent()
}

// Window wraps a GLFW window and forwards its input to an imbridge.IO.
type Window struct {
	win *glfw.Window
	io  *imbridge.IO
}

var (
	_ imbridge.PlatformWindow = (*Window)(nil)
	_ imbridge.IOBinder       = (*Window)(nil)
)

// GLFW returns the underlying window.
func (w *Window) GLFW() *glfw.Window {
	return w.win
}

// ShouldClose reports whether the user or the program asked to close.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// SetShouldClose sets the close flag.
func (w *Window) SetShouldClose(v bool) {
	w.win.SetShouldClose(v)
}

// DisplaySize returns the framebuffer size in pixels.
func (w *Window) DisplaySize() (int, int) {
	return w.win.GetFramebufferSize()
}

// SwapBuffers presents the frame.
func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

// Destroy closes the window.
func (w *Window) Destroy() {
	w.win.Destroy()
}

// BindIO installs callbacks feeding mouse and text input into io.
func (w *Window) BindIO(io *imbridge.IO) {
	w.io = io
	w.win.SetMouseButtonCallback(w.mouseButtonCallback)
	w.win.SetCursorPosCallback(w.cursorPosCallback)
	w.win.SetScrollCallback(w.scrollCallback)
	w.win.SetCharCallback(w.charCallback)
}

func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	idx := glfwMouseButtonToIndex(button)
	if idx < 0 {
		return
	}

	switch action {
	case glfw.Press:
		w.io.SetMouseButtonDown(idx, true)
	case glfw.Release:
		w.io.SetMouseButtonDown(idx, false)
	}
}

// cursorPosCallback converts window coordinates to framebuffer pixels so
// the cursor matches DisplaySize on scaled displays.
func (w *Window) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	ww, wh := w.win.GetSize()
	fw, fh := w.win.GetFramebufferSize()
	sx, sy := 1.0, 1.0
	if ww > 0 && wh > 0 {
		sx, sy = float64(fw)/float64(ww), float64(fh)/float64(wh)
	}
	w.io.SetMousePos(float32(xpos*sx), float32(ypos*sy))
}

func (w *Window) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	w.io.AddMouseWheel(float32(xoff), float32(yoff))
}

func (w *Window) charCallback(_ *glfw.Window, char rune) {
	w.io.AddInputChar(char)
}

// glfwMouseButtonToIndex maps GLFW mouse buttons to IO button indices,
// or -1 for buttons the IO does not track.
func glfwMouseButtonToIndex(button glfw.MouseButton) int {
	switch button {
	case glfw.MouseButtonLeft:
		return int(imbridge.MouseButtonLeft)
	case glfw.MouseButtonRight:
		return int(imbridge.MouseButtonRight)
	case glfw.MouseButtonMiddle:
		return int(imbridge.MouseButtonMiddle)
	case glfw.MouseButton4:
		return int(imbridge.MouseButtonExtra1)
	case glfw.MouseButton5:
		return int(imbridge.MouseButtonExtra2)
	default:
		return -1
	}
}
