package imbridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/imbridge"
)

func TestIOMouseButtons(t *testing.T) {
	io := imbridge.NewIO()
	assert.Equal(t, imbridge.Vec2{X: 1, Y: 1}, io.FramebufferScale)
	assert.NotNil(t, io.Fonts)

	for b := range int(imbridge.MouseButtonCount) {
		io.SetMouseButtonDown(b, true)
		assert.True(t, io.IsMouseDown(imbridge.MouseButton(b)), "button %d", b)
	}
}

func TestIOMouseButtonOutOfRange(t *testing.T) {
	io := imbridge.NewIO()
	const msg = "imbridge: mouse button 5 out of range [0, 5)"

	assert.PanicsWithValue(t, "imbridge: mouse button -1 out of range [0, 5)", func() { io.SetMouseButtonDown(-1, true) })
	assert.PanicsWithValue(t, msg, func() { io.SetMouseButtonDown(int(imbridge.MouseButtonCount), true) })
	assert.PanicsWithValue(t, msg, func() { io.IsMouseDown(imbridge.MouseButtonCount) })
	assert.PanicsWithValue(t, msg, func() { io.IsMouseClicked(imbridge.MouseButtonCount) })
	assert.PanicsWithValue(t, msg, func() { io.IsMouseReleased(imbridge.MouseButtonCount) })
	assert.PanicsWithValue(t, "imbridge: mouse button -1 out of range [0, 5)", func() { io.IsMouseDown(-1) })
}

func TestIOClickAndRelease(t *testing.T) {
	ctx := imbridge.NewContext()
	defer ctx.Shutdown()
	io := ctx.IO()
	frame := func(fn func()) {
		ctx.NewFrame(imbridge.Vec2{X: 10, Y: 10}, 0.016)
		fn()
		ctx.Render()
	}

	frame(func() {
		io.SetMouseButtonDown(int(imbridge.MouseButtonRight), true)
		assert.True(t, io.IsMouseClicked(imbridge.MouseButtonRight))
		assert.False(t, io.IsMouseReleased(imbridge.MouseButtonRight))
	})
	frame(func() {
		io.SetMouseButtonDown(int(imbridge.MouseButtonRight), false)
		assert.False(t, io.IsMouseClicked(imbridge.MouseButtonRight))
		assert.True(t, io.IsMouseReleased(imbridge.MouseButtonRight))
	})
	frame(func() {
		assert.False(t, io.IsMouseReleased(imbridge.MouseButtonRight))
	})
}

func TestIOAccumulates(t *testing.T) {
	io := imbridge.NewIO()
	io.SetMousePos(3, 4)
	io.AddMouseWheel(1, 0)
	io.AddMouseWheel(0.5, -1)
	io.AddInputChar('a')
	io.AddInputChar('é')

	assert.Equal(t, imbridge.Vec2{X: 3, Y: 4}, io.MousePos)
	assert.Equal(t, imbridge.Vec2{X: 1.5, Y: -1}, io.MouseWheel)
	assert.Equal(t, []rune{'a', 'é'}, io.InputChars)
}
