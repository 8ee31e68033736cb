// Package opengl provides a GLFW platform and an OpenGL 4.1 renderer for imbridge.
package opengl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/imbridge"
)

// Renderer draws imbridge draw data with OpenGL and uploads textures.
// It needs a current GL context, so create it after the first window.
type Renderer struct {
	shader    uint32
	vao, vbo  uint32
	ebo       uint32
	projLoc   int32
	texLoc    int32
	useTexLoc int32

	clearColor [4]float32
	clear      bool
	idxType    uint32
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithClearColor clears the framebuffer with c before each frame.
func WithClearColor(r, g, b, a float32) RendererOption {
	return func(rd *Renderer) {
		rd.clearColor = [4]float32{r, g, b, a}
		rd.clear = true
	}
}

// Vertex shader source
const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

out vec2 TexCoord;
out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

// Fragment shader source
const fragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D tex;
uniform bool useTexture;

void main() {
    if (useTexture) {
        FragColor = texture(tex, TexCoord) * Color;
    } else {
        FragColor = Color;
    }
}
` + "\x00"

// NewRenderer creates the shader program and buffers.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}

	var err error
	r.idxType, err = indexType(imbridge.IndexLayout())
	if err != nil {
		return nil, err
	}

	r.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}

	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("projection\x00"))
	r.texLoc = gl.GetUniformLocation(r.shader, gl.Str("tex\x00"))
	r.useTexLoc = gl.GetUniformLocation(r.shader, gl.Str("useTexture\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	layout := imbridge.VertexLayout()
	stride := int32(layout.EntrySize)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, layout.PosOffset)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, layout.UVOffset)
	gl.EnableVertexAttribArray(1)

	// Color attribute (normalized uint8x4)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, layout.ColOffset)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	return r, nil
}

// indexType maps the index entry size to a GL element type.
func indexType(l imbridge.IndexBufferLayout) (uint32, error) {
	switch l.EntrySize {
	case 2:
		return gl.UNSIGNED_SHORT, nil
	case 4:
		return gl.UNSIGNED_INT, nil
	default:
		return 0, fmt.Errorf("unsupported index size %d", l.EntrySize)
	}
}

var _ imbridge.FrameRenderer = (*Renderer)(nil)

// Render draws every list of dd. Callback commands are dispatched through
// imbridge.CallUserCallback, after which render state is set up again.
func (r *Renderer) Render(dd *imbridge.DrawData) error {
	fbW := int32(dd.DisplaySize.X * dd.FramebufferScale.X)
	fbH := int32(dd.DisplaySize.Y * dd.FramebufferScale.Y)
	if fbW <= 0 || fbH <= 0 {
		return nil
	}

	gl.Viewport(0, 0, fbW, fbH)
	if r.clear {
		gl.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}
	if dd.ListCount() == 0 {
		return nil
	}

	// Save GL state
	var lastProgram int32
	var lastBlendSrc, lastBlendDst int32
	var lastScissorBox [4]int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &lastBlendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &lastBlendDst)
	gl.GetIntegerv(gl.SCISSOR_BOX, &lastScissorBox[0])
	blendEnabled := gl.IsEnabled(gl.BLEND)
	depthEnabled := gl.IsEnabled(gl.DEPTH_TEST)
	cullEnabled := gl.IsEnabled(gl.CULL_FACE)
	scissorEnabled := gl.IsEnabled(gl.SCISSOR_TEST)

	r.setupRenderState(dd)

	idxSize := int(imbridge.IndexLayout().EntrySize)

	var err error
	for i := 0; i < dd.ListCount() && err == nil; i++ {
		var dl *imbridge.DrawList
		dl, err = dd.DrawListAt(i)
		if err != nil {
			break
		}

		vtx := imbridge.VertexBytes(dl)
		idx := imbridge.IndexBytes(dl)
		if len(vtx) > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, len(vtx), gl.Ptr(vtx), gl.STREAM_DRAW)
		}
		if len(idx) > 0 {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx), gl.Ptr(idx), gl.STREAM_DRAW)
		}

		for j := 0; j < dl.CmdCount(); j++ {
			var cmd *imbridge.DrawCmd
			cmd, err = dl.CmdAt(j)
			if err != nil {
				break
			}
			if cmd.HasCallback() {
				imbridge.CallUserCallback(dl, cmd)
				r.setupRenderState(dd)
				continue
			}
			if cmd.ElemCount == 0 {
				continue
			}
			r.drawCmd(dd, cmd, fbH, idxSize)
		}
	}

	// Restore GL state
	gl.UseProgram(uint32(lastProgram))
	gl.BlendFunc(uint32(lastBlendSrc), uint32(lastBlendDst))
	setEnabled(gl.BLEND, blendEnabled)
	setEnabled(gl.DEPTH_TEST, depthEnabled)
	setEnabled(gl.CULL_FACE, cullEnabled)
	setEnabled(gl.SCISSOR_TEST, scissorEnabled)
	gl.Scissor(lastScissorBox[0], lastScissorBox[1], lastScissorBox[2], lastScissorBox[3])
	gl.BindVertexArray(0)

	return err
}

func (r *Renderer) setupRenderState(dd *imbridge.DrawData) {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(r.shader)

	l, t := dd.DisplayPos.X, dd.DisplayPos.Y
	proj := orthoMatrix(l, l+dd.DisplaySize.X, t+dd.DisplaySize.Y, t, -1, 1)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.texLoc, 0)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
}

func (r *Renderer) drawCmd(dd *imbridge.DrawData, cmd *imbridge.DrawCmd, fbH int32, idxSize int) {
	sx, sy := dd.FramebufferScale.X, dd.FramebufferScale.Y
	x1 := (cmd.ClipRect[0] - dd.DisplayPos.X) * sx
	y1 := (cmd.ClipRect[1] - dd.DisplayPos.Y) * sy
	x2 := (cmd.ClipRect[2] - dd.DisplayPos.X) * sx
	y2 := (cmd.ClipRect[3] - dd.DisplayPos.Y) * sy

	// Clamp to the framebuffer, then flip Y for OpenGL
	x1, y1 = max(x1, 0), max(y1, 0)
	x2, y2 = min(x2, dd.DisplaySize.X*sx), min(y2, float32(fbH))
	if x2 <= x1 || y2 <= y1 {
		return
	}
	gl.Scissor(int32(x1), fbH-int32(y2), int32(x2-x1), int32(y2-y1))

	if cmd.TextureID != imbridge.NilTexture {
		gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID))
		gl.Uniform1i(r.useTexLoc, 1)
	} else {
		gl.Uniform1i(r.useTexLoc, 0)
	}

	gl.DrawElementsBaseVertexWithOffset(
		gl.TRIANGLES,
		int32(cmd.ElemCount),
		r.idxType,
		uintptr(cmd.IdxOffset)*uintptr(idxSize),
		int32(cmd.VtxOffset),
	)
}

func setEnabled(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

var _ imbridge.TextureUploader = (*Renderer)(nil)

// ErrGL reports an OpenGL error raised during an upload.
var ErrGL = errors.New("opengl error")

// Upload creates an RGBA8 texture with linear filtering.
func (r *Renderer) Upload(pixels []byte, width, height int) (imbridge.TextureID, error) {
	// Drain stale errors so the check below only sees this upload.
	for i := 0; i < 8 && gl.GetError() != gl.NO_ERROR; i++ {
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return imbridge.NilTexture, fmt.Errorf("%w 0x%04x uploading %dx%d texture", ErrGL, code, width, height)
	}
	return imbridge.TextureID(tex), nil
}

// Delete releases a texture created by Upload.
func (r *Renderer) Delete(id imbridge.TextureID) {
	tex := uint32(id)
	gl.DeleteTextures(1, &tex)
}

// Destroy releases OpenGL resources. Textures are owned by the registry.
func (r *Renderer) Destroy() {
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
	}
}
