package opengl

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Capture reads the current framebuffer into an image. Call it after the
// frame was rendered and before the buffers are swapped.
func Capture(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	flipRows(img.Pix, width*4, height)
	return img
}

// flipRows mirrors rows vertically (OpenGL origin is bottom-left).
func flipRows(pix []byte, rowLen, height int) {
	tmp := make([]byte, rowLen)
	for y := 0; y < height/2; y++ {
		top := y * rowLen
		bot := (height - 1 - y) * rowLen
		copy(tmp, pix[top:top+rowLen])
		copy(pix[top:top+rowLen], pix[bot:bot+rowLen])
		copy(pix[bot:bot+rowLen], tmp)
	}
}
