package imbridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/imbridge"
)

func newList(t *testing.T) *imbridge.DrawList {
	t.Helper()
	dl := imbridge.AcquireDrawList()
	t.Cleanup(func() { imbridge.ReleaseDrawList(dl) })
	return dl
}

func TestDrawListBatchesSameState(t *testing.T) {
	dl := newList(t)
	dl.AddRect(0, 0, 10, 10, imbridge.ColorRed)
	dl.AddRect(20, 0, 10, 10, imbridge.ColorGreen)
	dl.AddTriangle(0, 0, 1, 0, 0, 1, imbridge.ColorBlue)
	dl.Finalize()

	require.Len(t, dl.CmdBuffer, 1)
	assert.Equal(t, uint32(15), dl.CmdBuffer[0].ElemCount)
	assert.Len(t, dl.VtxBuffer, 11)
	assert.Len(t, dl.IdxBuffer, 15)
}

func TestDrawListSkipsTransparent(t *testing.T) {
	dl := newList(t)
	dl.AddRect(0, 0, 10, 10, imbridge.ColorTransparent)
	dl.AddLine(0, 0, 10, 10, imbridge.ColorTransparent, 1)
	dl.Finalize()

	assert.Empty(t, dl.CmdBuffer)
	assert.Empty(t, dl.VtxBuffer)
}

func TestDrawListClipSplitsCommands(t *testing.T) {
	dl := newList(t)
	dl.AddRect(0, 0, 10, 10, imbridge.ColorRed)

	dl.PushClipRect(5, 5, 50, 50)
	assert.Equal(t, [4]float32{5, 5, 50, 50}, dl.ClipRect())
	dl.AddRect(0, 0, 10, 10, imbridge.ColorRed)
	dl.PopClipRect()

	dl.AddRect(0, 0, 10, 10, imbridge.ColorRed)
	dl.Finalize()

	require.Len(t, dl.CmdBuffer, 3)
	assert.Equal(t, [4]float32{5, 5, 50, 50}, dl.CmdBuffer[1].ClipRect)
	assert.Equal(t, dl.CmdBuffer[0].ClipRect, dl.CmdBuffer[2].ClipRect)
	for i, cmd := range dl.CmdBuffer {
		assert.Equal(t, uint32(6), cmd.ElemCount, "command %d", i)
		assert.Equal(t, uint32(i*6), cmd.IdxOffset, "command %d", i)
		assert.Equal(t, uint32(i*4), cmd.VtxOffset, "command %d", i)
	}
}

func TestDrawListIndicesAreRelativeToCommand(t *testing.T) {
	dl := newList(t)
	dl.AddRect(0, 0, 10, 10, imbridge.ColorRed)
	dl.SetTexture(7)
	dl.AddRect(0, 0, 10, 10, imbridge.ColorRed)
	dl.Finalize()

	require.Len(t, dl.CmdBuffer, 2)
	second := dl.CmdBuffer[1]
	assert.Equal(t, imbridge.TextureID(7), second.TextureID)
	assert.Equal(t, []imbridge.DrawIdx{0, 1, 2, 0, 2, 3},
		dl.IdxBuffer[second.IdxOffset:second.IdxOffset+second.ElemCount])
}

func TestDrawListAddImageRestoresTexture(t *testing.T) {
	dl := newList(t)
	dl.SetTexture(3)
	dl.AddImage(9, imbridge.Rect{W: 4, H: 4}, imbridge.ColorWhite)
	assert.Equal(t, imbridge.TextureID(3), dl.Texture())

	dl.AddImage(imbridge.NilTexture, imbridge.Rect{W: 4, H: 4}, imbridge.ColorWhite)
	dl.Finalize()

	require.Len(t, dl.CmdBuffer, 1)
	assert.Equal(t, imbridge.TextureID(9), dl.CmdBuffer[0].TextureID)
	assert.Equal(t, imbridge.Vec2{X: 1, Y: 1}, dl.VtxBuffer[2].UV)
}

func TestDrawListCallbackCommand(t *testing.T) {
	dl := newList(t)
	fn := func(*imbridge.DrawList, *imbridge.DrawCmd) {}

	dl.AddRect(0, 0, 10, 10, imbridge.ColorRed)
	dl.AddCallback(fn, "payload")
	dl.AddRect(0, 0, 10, 10, imbridge.ColorRed)
	dl.AddCallback(nil, nil)
	dl.Finalize()

	require.Len(t, dl.CmdBuffer, 3)
	assert.False(t, dl.CmdBuffer[0].HasCallback())
	assert.Equal(t, uint32(6), dl.CmdBuffer[0].ElemCount)

	cb := dl.CmdBuffer[1]
	assert.True(t, cb.HasCallback())
	assert.Equal(t, uint32(0), cb.ElemCount)
	assert.Equal(t, "payload", cb.UserCallbackData)

	assert.Equal(t, uint32(6), dl.CmdBuffer[2].ElemCount)
	assert.Equal(t, uint32(6), dl.CmdBuffer[2].IdxOffset)
}

func TestDrawListSplitsAtIndexLimit(t *testing.T) {
	dl := newList(t)
	// 16385 quads need 65540 vertices, more than a 16-bit index reaches.
	for range 16385 {
		dl.AddRect(0, 0, 1, 1, imbridge.ColorWhite)
	}
	dl.Finalize()

	require.Len(t, dl.CmdBuffer, 2)
	assert.Equal(t, uint32(16384*6), dl.CmdBuffer[0].ElemCount)
	assert.Equal(t, uint32(65536), dl.CmdBuffer[1].VtxOffset)
	assert.Equal(t, uint32(6), dl.CmdBuffer[1].ElemCount)
}

func TestDrawListClearKeepsNothing(t *testing.T) {
	dl := newList(t)
	dl.PushClipRect(0, 0, 1, 1)
	dl.SetTexture(2)
	dl.AddRect(0, 0, 10, 10, imbridge.ColorRed)
	dl.Clear()

	assert.Empty(t, dl.CmdBuffer)
	assert.Empty(t, dl.VtxBuffer)
	assert.Empty(t, dl.IdxBuffer)
	assert.Equal(t, imbridge.NilTexture, dl.Texture())

	// Popping an empty stack is harmless.
	clip := dl.ClipRect()
	dl.PopClipRect()
	assert.Equal(t, clip, dl.ClipRect())
}

func TestDrawListAddLineThickness(t *testing.T) {
	dl := newList(t)
	dl.AddLine(0, 0, 10, 0, imbridge.ColorWhite, 2)

	require.Len(t, dl.VtxBuffer, 4)
	assert.InDelta(t, 1, dl.VtxBuffer[0].Pos.Y, 1e-6)
	assert.InDelta(t, -1, dl.VtxBuffer[3].Pos.Y, 1e-6)
}

func TestColorPacking(t *testing.T) {
	c := imbridge.RGBA(0x11, 0x22, 0x33, 0x44)
	assert.Equal(t, uint32(0x44332211), c)

	r, g, b, a := imbridge.UnpackRGBA(c)
	assert.Equal(t, [4]uint8{0x11, 0x22, 0x33, 0x44}, [4]uint8{r, g, b, a})
	assert.Equal(t, imbridge.ColorRed, imbridge.RGBA(255, 0, 0, 255))
}
