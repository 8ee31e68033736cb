package imbridge

import "fmt"

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonExtra1
	MouseButtonExtra2
	MouseButtonCount
)

// IO is the input/output state shared between the host and the toolkit.
// Backends write input into it; the frame reads it.
type IO struct {
	DisplaySize      Vec2    // Set by Context.NewFrame
	FramebufferScale Vec2    // Framebuffer pixels per logical pixel
	DeltaTime        float32 // Seconds since the previous frame

	MousePos   Vec2 // Cursor position in logical pixels
	MouseWheel Vec2 // Scroll accumulated this frame

	// Text input (Unicode characters typed this frame)
	InputChars []rune

	Fonts *FontAtlas

	mouseDown     [MouseButtonCount]bool
	mouseDownPrev [MouseButtonCount]bool
}

// NewIO creates an IO with an empty font atlas.
func NewIO() *IO {
	return &IO{
		FramebufferScale: Vec2{1, 1},
		InputChars:       make([]rune, 0, 16),
		Fonts:            NewFontAtlas(),
	}
}

// SetMouseButtonDown records the pressed state of a mouse button.
// button must be in [0, MouseButtonCount).
func (io *IO) SetMouseButtonDown(button int, down bool) {
	mustBeButton(MouseButton(button))
	io.mouseDown[button] = down
}

func mustBeButton(b MouseButton) {
	if b < 0 || b >= MouseButtonCount {
		panic(fmt.Sprintf("imbridge: mouse button %d out of range [0, %d)", b, MouseButtonCount))
	}
}

// SetMousePos sets the cursor position.
func (io *IO) SetMousePos(x, y float32) {
	io.MousePos = Vec2{X: x, Y: y}
}

// AddMouseWheel accumulates scroll for the current frame.
func (io *IO) AddMouseWheel(dx, dy float32) {
	io.MouseWheel.X += dx
	io.MouseWheel.Y += dy
}

// AddInputChar queues a typed character for the current frame.
func (io *IO) AddInputChar(r rune) {
	io.InputChars = append(io.InputChars, r)
}

// IsMouseDown returns true while the button is held.
func (io *IO) IsMouseDown(b MouseButton) bool {
	mustBeButton(b)
	return io.mouseDown[b]
}

// IsMouseClicked returns true on the frame the button went down.
func (io *IO) IsMouseClicked(b MouseButton) bool {
	mustBeButton(b)
	return io.mouseDown[b] && !io.mouseDownPrev[b]
}

// IsMouseReleased returns true on the frame the button went up.
func (io *IO) IsMouseReleased(b MouseButton) bool {
	mustBeButton(b)
	return !io.mouseDown[b] && io.mouseDownPrev[b]
}

// endFrame clears per-frame input and latches button state.
func (io *IO) endFrame() {
	io.mouseDownPrev = io.mouseDown
	io.MouseWheel = Vec2{}
	io.InputChars = io.InputChars[:0]
}
