package opengl

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/imbridge"
)

func TestOrthoMatrixMapsCorners(t *testing.T) {
	m := orthoMatrix(0, 800, 600, 0, -1, 1)
	apply := func(x, y float32) (float32, float32) {
		return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
	}

	x, y := apply(0, 0)
	assert.InDelta(t, -1, x, 1e-6)
	assert.InDelta(t, 1, y, 1e-6, "top-left maps to the top of clip space")

	x, y = apply(800, 600)
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, -1, y, 1e-6)
}

func TestIndexType(t *testing.T) {
	typ, err := indexType(imbridge.IndexLayout())
	require.NoError(t, err)
	assert.Equal(t, uint32(gl.UNSIGNED_SHORT), typ)

	typ, err = indexType(imbridge.IndexBufferLayout{EntrySize: 4})
	require.NoError(t, err)
	assert.Equal(t, uint32(gl.UNSIGNED_INT), typ)

	_, err = indexType(imbridge.IndexBufferLayout{EntrySize: 1})
	assert.Error(t, err)
}

func TestFlipRows(t *testing.T) {
	pix := []byte{
		1, 1,
		2, 2,
		3, 3,
	}
	flipRows(pix, 2, 3)
	assert.Equal(t, []byte{3, 3, 2, 2, 1, 1}, pix)
}

func TestGLFWMouseButtonToIndex(t *testing.T) {
	tests := []struct {
		button glfw.MouseButton
		want   int
	}{
		{glfw.MouseButtonLeft, int(imbridge.MouseButtonLeft)},
		{glfw.MouseButtonRight, int(imbridge.MouseButtonRight)},
		{glfw.MouseButtonMiddle, int(imbridge.MouseButtonMiddle)},
		{glfw.MouseButton4, int(imbridge.MouseButtonExtra1)},
		{glfw.MouseButton5, int(imbridge.MouseButtonExtra2)},
		{glfw.MouseButton8, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, glfwMouseButtonToIndex(tt.button), "button %d", tt.button)
	}
}
