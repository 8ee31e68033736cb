// Package headless provides a GPU-less platform and texture uploader for
// tests and offscreen runs. Windows only record what happens to them.
package headless

import (
	"errors"
	"slices"
	"time"

	"github.com/go-theft-auto/imbridge"
)

// ErrNoDisplay is returned by CreateWindow when the platform has no display.
var ErrNoDisplay = errors.New("headless: no display available")

// Platform implements imbridge.Platform without a windowing system.
type Platform struct {
	noDisplay bool
	wait      func(time.Duration)

	Windows    []*Window
	Polls      int
	Waits      []time.Duration
	EmptyPosts int
}

// Option configures a Platform.
type Option func(*Platform)

// WithoutDisplay makes every CreateWindow call fail with ErrNoDisplay.
func WithoutDisplay() Option {
	return func(p *Platform) { p.noDisplay = true }
}

// WithWait replaces the sleep in WaitEventsTimeout. fn may return early to
// simulate an arriving event, or advance a fake clock.
func WithWait(fn func(d time.Duration)) Option {
	return func(p *Platform) { p.wait = fn }
}

// NewPlatform creates a headless platform.
func NewPlatform(opts ...Option) *Platform {
	p := &Platform{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ imbridge.Platform = (*Platform)(nil)

// CreateWindow records a new window.
func (p *Platform) CreateWindow(title string, width, height int, flags imbridge.WindowFlags) (imbridge.PlatformWindow, error) {
	if p.noDisplay {
		return nil, ErrNoDisplay
	}
	w := &Window{Title: title, Width: width, Height: height, Flags: flags}
	p.Windows = append(p.Windows, w)
	return w, nil
}

// PollEvents counts the call.
func (p *Platform) PollEvents() {
	p.Polls++
}

// WaitEventsTimeout records d and sleeps for it, as an idle event queue
// would, unless WithWait was given.
func (p *Platform) WaitEventsTimeout(d time.Duration) {
	p.Waits = append(p.Waits, d)
	if p.wait != nil {
		p.wait(d)
		return
	}
	time.Sleep(d)
}

// PostEmptyEvent counts the call.
func (p *Platform) PostEmptyEvent() {
	p.EmptyPosts++
}

// Window is a recorded window. Width and Height may be changed to
// simulate a resize.
type Window struct {
	Title         string
	Width, Height int
	Flags         imbridge.WindowFlags

	Swaps     int
	Destroyed bool
	IO        *imbridge.IO

	shouldClose bool
}

var (
	_ imbridge.PlatformWindow = (*Window)(nil)
	_ imbridge.IOBinder       = (*Window)(nil)
)

// ShouldClose reports whether a close was requested.
func (w *Window) ShouldClose() bool {
	return w.shouldClose
}

// SetShouldClose sets the close request.
func (w *Window) SetShouldClose(v bool) {
	w.shouldClose = v
}

// DisplaySize returns the current Width and Height.
func (w *Window) DisplaySize() (int, int) {
	return w.Width, w.Height
}

// SwapBuffers counts the call.
func (w *Window) SwapBuffers() {
	w.Swaps++
}

// Destroy marks the window destroyed.
func (w *Window) Destroy() {
	w.Destroyed = true
}

// BindIO keeps io so tests can inject input through it.
func (w *Window) BindIO(io *imbridge.IO) {
	w.IO = io
}

// ErrOutOfMemory is returned by Uploader when its budget is exhausted.
var ErrOutOfMemory = errors.New("headless: out of texture memory")

// Uploader implements imbridge.TextureUploader in memory.
type Uploader struct {
	budget int
	used   int
	next   imbridge.TextureID
	pixels map[imbridge.TextureID][]byte
}

var _ imbridge.TextureUploader = (*Uploader)(nil)

// NewUploader creates an uploader. A positive budget limits the total
// number of bytes held at once.
func NewUploader(budget int) *Uploader {
	return &Uploader{
		budget: budget,
		pixels: make(map[imbridge.TextureID][]byte),
	}
}

// Upload copies pixels and returns a fresh handle.
func (u *Uploader) Upload(pixels []byte, width, height int) (imbridge.TextureID, error) {
	if u.budget > 0 && u.used+len(pixels) > u.budget {
		return imbridge.NilTexture, ErrOutOfMemory
	}
	u.next++
	u.pixels[u.next] = slices.Clone(pixels)
	u.used += len(pixels)
	return u.next, nil
}

// Delete drops a texture.
func (u *Uploader) Delete(id imbridge.TextureID) {
	u.used -= len(u.pixels[id])
	delete(u.pixels, id)
}

// Pixels returns the stored copy of a texture.
func (u *Uploader) Pixels(id imbridge.TextureID) ([]byte, bool) {
	p, ok := u.pixels[id]
	return p, ok
}

// Renderer implements imbridge.FrameRenderer by walking the draw data the
// way a GPU renderer would, without drawing.
type Renderer struct {
	Frames    int
	Lists     int
	Draws     int
	Elements  int
	Callbacks int
	Textures  []imbridge.TextureID
}

var _ imbridge.FrameRenderer = (*Renderer)(nil)

// Render walks dd and counts what would be drawn.
func (r *Renderer) Render(dd *imbridge.DrawData) error {
	r.Frames++
	for i := 0; i < dd.ListCount(); i++ {
		dl, err := dd.DrawListAt(i)
		if err != nil {
			return err
		}
		r.Lists++
		for j := 0; j < dl.CmdCount(); j++ {
			cmd, err := dl.CmdAt(j)
			if err != nil {
				return err
			}
			if cmd.HasCallback() {
				imbridge.CallUserCallback(dl, cmd)
				r.Callbacks++
				continue
			}
			r.Draws++
			r.Elements += int(cmd.ElemCount)
			r.Textures = append(r.Textures, cmd.TextureID)
		}
	}
	return nil
}
