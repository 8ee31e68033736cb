package imbridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/imbridge"
)

func TestContextFrameLifecycle(t *testing.T) {
	ctx := imbridge.NewContext()
	defer ctx.Shutdown()

	assert.False(t, ctx.InFrame())
	assert.Panics(t, func() { ctx.BackgroundDrawList() })
	assert.Panics(t, func() { ctx.Render() })

	ctx.NewFrame(imbridge.Vec2{X: 640, Y: 480}, 0.02)
	assert.True(t, ctx.InFrame())
	assert.Equal(t, 1, ctx.FrameCount())
	assert.Equal(t, imbridge.Vec2{X: 640, Y: 480}, ctx.IO().DisplaySize)
	assert.InDelta(t, 0.02, ctx.IO().DeltaTime, 1e-6)
	assert.Panics(t, func() { ctx.NewFrame(imbridge.Vec2{}, 0) }, "nested frame")

	bg := ctx.BackgroundDrawList()
	fg := ctx.ForegroundDrawList()
	assert.NotSame(t, bg, fg)

	dd := ctx.Render()
	assert.False(t, ctx.InFrame())
	assert.Same(t, dd, ctx.DrawData())
	assert.Panics(t, func() { ctx.ForegroundDrawList() })
}

func TestContextListOrder(t *testing.T) {
	ctx := imbridge.NewContext()
	defer ctx.Shutdown()

	ctx.NewFrame(imbridge.Vec2{X: 100, Y: 100}, 0.016)
	// Draw the foreground first; it still renders last.
	ctx.ForegroundDrawList().AddRect(0, 0, 1, 1, imbridge.ColorGreen)
	ctx.BackgroundDrawList().AddRect(0, 0, 1, 1, imbridge.ColorRed)
	dd := ctx.Render()

	require.Equal(t, 2, dd.ListCount())
	first, err := dd.DrawListAt(0)
	require.NoError(t, err)
	last, err := dd.DrawListAt(1)
	require.NoError(t, err)
	assert.Equal(t, imbridge.ColorRed, first.VtxBuffer[0].Col)
	assert.Equal(t, imbridge.ColorGreen, last.VtxBuffer[0].Col)
}

func TestContextEndFrameClearsInput(t *testing.T) {
	ctx := imbridge.NewContext()
	defer ctx.Shutdown()
	io := ctx.IO()

	ctx.NewFrame(imbridge.Vec2{X: 100, Y: 100}, 0.016)
	io.AddMouseWheel(0, 2)
	io.AddInputChar('x')
	io.SetMouseButtonDown(int(imbridge.MouseButtonLeft), true)
	assert.True(t, io.IsMouseClicked(imbridge.MouseButtonLeft))
	ctx.Render()

	assert.Equal(t, imbridge.Vec2{}, io.MouseWheel)
	assert.Empty(t, io.InputChars)

	ctx.NewFrame(imbridge.Vec2{X: 100, Y: 100}, 0.016)
	assert.True(t, io.IsMouseDown(imbridge.MouseButtonLeft))
	assert.False(t, io.IsMouseClicked(imbridge.MouseButtonLeft), "click lasts one frame")
	ctx.Render()
}

func TestContextSharedFontAtlas(t *testing.T) {
	atlas := imbridge.NewFontAtlas()
	ctx := imbridge.NewContext(imbridge.WithFontAtlas(atlas))
	assert.Same(t, atlas, ctx.IO().Fonts)
}
