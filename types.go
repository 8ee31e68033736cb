package imbridge

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Rect represents a rectangle with position and size.
type Rect struct {
	X, Y float32 // Top-left position
	W, H float32 // Width and height
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Vertex is one entry of a draw list's vertex buffer.
// Renderers must not hardcode this struct; use VertexLayout instead.
type Vertex struct {
	Pos Vec2   // Position (x, y)
	UV  Vec2   // Texture coordinates (u, v)
	Col uint32 // RGBA packed color
}

// DrawIdx is one entry of a draw list's index buffer.
type DrawIdx = uint16

// DrawCallback is invoked by CallUserCallback in place of rendering a command.
type DrawCallback func(list *DrawList, cmd *DrawCmd)

// DrawCmd is either a renderable sub-range of its draw list or a user callback.
// A command with a UserCallback has ElemCount 0 and must not be rendered.
type DrawCmd struct {
	ClipRect  [4]float32 // Clip rectangle (x1, y1, x2, y2)
	TextureID TextureID  // NilTexture = untextured
	VtxOffset uint32     // Offset into vertex buffer
	IdxOffset uint32     // Offset into index buffer
	ElemCount uint32     // Number of indices to draw

	UserCallback     DrawCallback
	UserCallbackData any
}

// HasCallback reports whether the command carries a user callback.
func (c *DrawCmd) HasCallback() bool {
	return c.UserCallback != nil
}

// Color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility)
const (
	ColorWhite       uint32 = 0xFFFFFFFF
	ColorBlack       uint32 = 0xFF000000
	ColorRed         uint32 = 0xFF0000FF
	ColorGreen       uint32 = 0xFF00FF00
	ColorBlue        uint32 = 0xFFFF0000
	ColorYellow      uint32 = 0xFF00FFFF
	ColorGray        uint32 = 0xFF808080
	ColorDarkGray    uint32 = 0xFF404040
	ColorTransparent uint32 = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// UnpackRGBA extracts RGBA components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}
