package imbridge

import (
	"math"
	"sync"

	"github.com/chewxy/math32"
)

// drawListPool provides efficient reuse of DrawList buffers.
// This avoids allocations on every frame, which is critical for
// immediate-mode UI where we rebuild the entire draw list each frame.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 1024),
			IdxBuffer: make([]DrawIdx, 0, 2048),
			CmdBuffer: make([]DrawCmd, 0, 16),
			clipStack: make([][4]float32, 0, 8),
		}
	},
}

// AcquireDrawList gets a DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		dl.Clear()
		drawListPool.Put(dl)
	}
}

// maxVerticesPerCmd is the largest vertex range addressable by a DrawIdx.
const maxVerticesPerCmd = math.MaxUint16 + 1

// noClip is the clip rectangle used when nothing has been pushed.
var noClip = [4]float32{-1e9, -1e9, 1e9, 1e9}

// DrawList is an ordered sequence of draw commands sharing one vertex and
// one index buffer. One list maps to one set of GPU buffer bindings.
//
// Indices are relative to the owning command's VtxOffset, so renderers must
// draw with a base vertex.
type DrawList struct {
	CmdBuffer []DrawCmd // Draw commands
	VtxBuffer []Vertex  // Vertex data
	IdxBuffer []DrawIdx // Index data

	clipStack   [][4]float32 // Clip rectangle stack
	currentClip [4]float32   // Current clip rectangle
	textureID   TextureID    // Current texture for batching
}

// Clear resets the DrawList for a new frame.
// Retains allocated capacity to avoid reallocations.
func (dl *DrawList) Clear() {
	clear(dl.CmdBuffer) // drop callback references
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = noClip
	dl.textureID = NilTexture
}

// PushClipRect pushes a new clip rectangle onto the stack.
// All subsequent primitives will be clipped to this rectangle.
func (dl *DrawList) PushClipRect(x1, y1, x2, y2 float32) {
	dl.clipStack = append(dl.clipStack, dl.currentClip)
	dl.currentClip = [4]float32{x1, y1, x2, y2}
	dl.beginCommand()
}

// PopClipRect pops the clip rectangle stack.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n > 0 {
		dl.currentClip = dl.clipStack[n-1]
		dl.clipStack = dl.clipStack[:n-1]
		dl.beginCommand()
	}
}

// ClipRect returns the current clip rectangle.
func (dl *DrawList) ClipRect() [4]float32 {
	return dl.currentClip
}

// SetTexture sets the current texture for subsequent primitives.
func (dl *DrawList) SetTexture(id TextureID) {
	if dl.textureID == id {
		return
	}
	dl.textureID = id
	dl.beginCommand()
}

// Texture returns the current texture.
func (dl *DrawList) Texture() TextureID {
	return dl.textureID
}

// AddCallback appends a command that invokes fn instead of rendering.
// Primitives added afterwards go into a new command.
func (dl *DrawList) AddCallback(fn DrawCallback, data any) {
	if fn == nil {
		return
	}
	dl.closeCommand()
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:         dl.currentClip,
		TextureID:        dl.textureID,
		VtxOffset:        uint32(len(dl.VtxBuffer)),
		IdxOffset:        uint32(len(dl.IdxBuffer)),
		UserCallback:     fn,
		UserCallbackData: data,
	})
}

// beginCommand starts a command with the current clip and texture, reusing
// the last one when nothing has been drawn into it yet.
func (dl *DrawList) beginCommand() {
	if n := len(dl.CmdBuffer); n > 0 {
		last := &dl.CmdBuffer[n-1]
		if !last.HasCallback() && last.IdxOffset == uint32(len(dl.IdxBuffer)) {
			last.ClipRect = dl.currentClip
			last.TextureID = dl.textureID
			last.VtxOffset = uint32(len(dl.VtxBuffer))
			return
		}
	}
	dl.splitDraw()
}

// splitDraw finalizes the current command and starts a new one.
func (dl *DrawList) splitDraw() {
	dl.closeCommand()
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:  dl.currentClip,
		TextureID: dl.textureID,
		VtxOffset: uint32(len(dl.VtxBuffer)),
		IdxOffset: uint32(len(dl.IdxBuffer)),
	})
}

// closeCommand sets the element count of the last command.
func (dl *DrawList) closeCommand() {
	if n := len(dl.CmdBuffer); n > 0 {
		last := &dl.CmdBuffer[n-1]
		if !last.HasCallback() {
			last.ElemCount = uint32(len(dl.IdxBuffer)) - last.IdxOffset
		}
	}
}

// addVertices adds vertices and returns the starting index relative to the
// current command.
func (dl *DrawList) addVertices(verts ...Vertex) DrawIdx {
	n := len(dl.CmdBuffer)
	if n == 0 || dl.CmdBuffer[n-1].HasCallback() {
		dl.splitDraw()
	} else if len(dl.VtxBuffer)-int(dl.CmdBuffer[n-1].VtxOffset)+len(verts) > maxVerticesPerCmd {
		dl.splitDraw()
	}
	last := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
	startIdx := DrawIdx(len(dl.VtxBuffer) - int(last.VtxOffset))
	dl.VtxBuffer = append(dl.VtxBuffer, verts...)
	return startIdx
}

// addIndices adds indices (relative to current command's vertex offset).
func (dl *DrawList) addIndices(indices ...DrawIdx) {
	dl.IdxBuffer = append(dl.IdxBuffer, indices...)
}

// addQuad adds a textured quad from (x0, y0) to (x1, y1).
func (dl *DrawList) addQuad(x0, y0, x1, y1, u0, v0, u1, v1 float32, color uint32) {
	idx := dl.addVertices(
		Vertex{Pos: Vec2{x0, y0}, UV: Vec2{u0, v0}, Col: color},
		Vertex{Pos: Vec2{x1, y0}, UV: Vec2{u1, v0}, Col: color},
		Vertex{Pos: Vec2{x1, y1}, UV: Vec2{u1, v1}, Col: color},
		Vertex{Pos: Vec2{x0, y1}, UV: Vec2{u0, v1}, Col: color},
	)
	dl.addIndices(idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddRect draws a filled rectangle.
func (dl *DrawList) AddRect(x, y, w, h float32, color uint32) {
	if color&0xFF000000 == 0 { // Skip fully transparent
		return
	}
	dl.addQuad(x, y, x+w, y+h, 0, 0, 0, 0, color)
}

// AddRectOutline draws a rectangle outline.
func (dl *DrawList) AddRectOutline(x, y, w, h float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}

	dl.AddRect(x, y, w, thickness, color)
	dl.AddRect(x, y+h-thickness, w, thickness, color)
	dl.AddRect(x, y+thickness, thickness, h-2*thickness, color)
	dl.AddRect(x+w-thickness, y+thickness, thickness, h-2*thickness, color)
}

// AddLine draws a line between two points.
// Uses a quad to create thickness.
func (dl *DrawList) AddLine(x1, y1, x2, y2 float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}

	dx := x2 - x1
	dy := y2 - y1
	inv := float32(1.0)
	if l := math32.Hypot(dx, dy); l > 0 {
		inv = 1 / l
	}

	// Normal perpendicular to line
	nx := -dy * inv * thickness * 0.5
	ny := dx * inv * thickness * 0.5

	idx := dl.addVertices(
		Vertex{Pos: Vec2{x1 + nx, y1 + ny}, Col: color},
		Vertex{Pos: Vec2{x2 + nx, y2 + ny}, Col: color},
		Vertex{Pos: Vec2{x2 - nx, y2 - ny}, Col: color},
		Vertex{Pos: Vec2{x1 - nx, y1 - ny}, Col: color},
	)
	dl.addIndices(idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddTriangle draws a filled triangle.
func (dl *DrawList) AddTriangle(x1, y1, x2, y2, x3, y3 float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}

	idx := dl.addVertices(
		Vertex{Pos: Vec2{x1, y1}, Col: color},
		Vertex{Pos: Vec2{x2, y2}, Col: color},
		Vertex{Pos: Vec2{x3, y3}, Col: color},
	)
	dl.addIndices(idx, idx+1, idx+2)
}

// AddImage draws the whole of texture tex into the rectangle r, tinted by color.
func (dl *DrawList) AddImage(tex TextureID, r Rect, color uint32) {
	if color&0xFF000000 == 0 || tex == NilTexture {
		return
	}
	prev := dl.textureID
	dl.SetTexture(tex)
	dl.addQuad(r.X, r.Y, r.X+r.W, r.Y+r.H, 0, 0, 1, 1, color)
	dl.SetTexture(prev)
}

// AddText draws text with font, y being the top of the line.
// Runes missing from the font are drawn with its fallback glyph.
func (dl *DrawList) AddText(font *Font, x, y float32, color uint32, text string) {
	if font == nil || color&0xFF000000 == 0 || len(text) == 0 {
		return
	}

	prev := dl.textureID
	dl.SetTexture(font.atlas.TexID())

	penX := x
	for _, r := range text {
		g := font.Glyph(r)
		if g == nil {
			continue
		}
		if g.Visible {
			gx := math32.Floor(penX + g.X0 + 0.5) // snap to pixels
			dl.addQuad(gx, y+g.Y0, gx+(g.X1-g.X0), y+g.Y1, g.U0, g.V0, g.U1, g.V1, color)
		}
		penX += g.Advance
	}

	dl.SetTexture(prev)
}

// Finalize prepares the DrawList for rendering.
// Must be called after all primitives are added.
func (dl *DrawList) Finalize() {
	dl.closeCommand()

	// Remove empty commands, keeping callbacks
	filtered := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount > 0 || cmd.HasCallback() {
			filtered = append(filtered, cmd)
		}
	}
	clear(dl.CmdBuffer[len(filtered):])
	dl.CmdBuffer = filtered
}
