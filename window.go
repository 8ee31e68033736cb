package imbridge

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// WindowFlags are independent window creation options.
type WindowFlags int

const (
	WindowFlagsNotResizable WindowFlags = 1 << iota
	WindowFlagsMaximized
	WindowFlagsFloating
	WindowFlagsFrameless
	WindowFlagsTransparent

	WindowFlagsNone WindowFlags = 0
)

var windowFlagNames = []struct {
	flag WindowFlags
	name string
}{
	{WindowFlagsNotResizable, "not-resizable"},
	{WindowFlagsMaximized, "maximized"},
	{WindowFlagsFloating, "floating"},
	{WindowFlagsFrameless, "frameless"},
	{WindowFlagsTransparent, "transparent"},
}

// Has reports whether every bit of flag is set.
func (f WindowFlags) Has(flag WindowFlags) bool {
	return f&flag == flag
}

// String returns the flag names joined by "|", or "none".
func (f WindowFlags) String() string {
	if f == WindowFlagsNone {
		return "none"
	}
	var names []string
	for _, n := range windowFlagNames {
		if f.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseWindowFlags combines flag names as produced by String.
func ParseWindowFlags(names []string) (WindowFlags, error) {
	flags := WindowFlagsNone
outer:
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || name == "none" {
			continue
		}
		for _, n := range windowFlagNames {
			if n.name == name {
				flags |= n.flag
				continue outer
			}
		}
		return WindowFlagsNone, fmt.Errorf("imbridge: unknown window flag %q", name)
	}
	return flags, nil
}

var (
	// ErrInvalidWindowSize is returned for non-positive window dimensions.
	ErrInvalidWindowSize = errors.New("imbridge: invalid window size")
	// ErrWindowCreate wraps failures reported by the Platform.
	ErrWindowCreate = errors.New("imbridge: window creation failed")
)

// Platform is the host windowing system.
type Platform interface {
	CreateWindow(title string, width, height int, flags WindowFlags) (PlatformWindow, error)

	// PollEvents processes pending events and returns immediately.
	PollEvents()

	// WaitEventsTimeout blocks until an event arrives or d elapses.
	WaitEventsTimeout(d time.Duration)

	// PostEmptyEvent wakes a pending WaitEventsTimeout.
	PostEmptyEvent()
}

// PlatformWindow is a native window with a current rendering context.
type PlatformWindow interface {
	ShouldClose() bool
	SetShouldClose(bool)

	// DisplaySize returns the drawable area in pixels.
	DisplaySize() (width, height int)

	SwapBuffers()
	Destroy()
}

// IOBinder is implemented by platform windows that forward input into an IO.
type IOBinder interface {
	BindIO(io *IO)
}

// Window is a window owned by a Driver.
// Using a destroyed window is a programming error and panics.
type Window struct {
	pw    PlatformWindow
	title string
	flags WindowFlags
}

// Title returns the title the window was created with.
func (w *Window) Title() string {
	return w.title
}

// Flags returns the creation flags.
func (w *Window) Flags() WindowFlags {
	return w.flags
}

// Valid reports whether the window has not been destroyed.
func (w *Window) Valid() bool {
	return w != nil && w.pw != nil
}

// DisplaySize returns the current drawable size. It is queried on every
// call, so it reflects resizes.
func (w *Window) DisplaySize() (width, height int) {
	w.mustBeValid("DisplaySize")
	return w.pw.DisplaySize()
}

// ShouldClose reports whether a close was requested.
func (w *Window) ShouldClose() bool {
	w.mustBeValid("ShouldClose")
	return w.pw.ShouldClose()
}

// Close asks the loop to stop after the current frame.
func (w *Window) Close() {
	w.mustBeValid("Close")
	w.pw.SetShouldClose(true)
}

// Destroy releases the native window. Run does this on exit.
func (w *Window) Destroy() {
	w.mustBeValid("Destroy")
	w.pw.Destroy()
	w.pw = nil
}

// Platform returns the native window.
func (w *Window) Platform() PlatformWindow {
	w.mustBeValid("Platform")
	return w.pw
}

func (w *Window) mustBeValid(op string) {
	if !w.Valid() {
		panic("imbridge: " + op + " on destroyed or nil window")
	}
}
