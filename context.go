package imbridge

// Context is the toolkit state for one window. It is passed explicitly
// to everything that needs it; there is no global current context.
type Context struct {
	io *IO

	background *DrawList
	foreground *DrawList
	lists      []*DrawList
	drawData   DrawData

	frameCount int
	inFrame    bool
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithFontAtlas shares an existing font atlas with the context.
func WithFontAtlas(a *FontAtlas) ContextOption {
	return func(c *Context) { c.io.Fonts = a }
}

// NewContext creates a new toolkit context.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		io:    NewIO(),
		lists: make([]*DrawList, 0, 2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IO returns the context's input/output state.
func (c *Context) IO() *IO {
	return c.io
}

// NewFrame starts a frame. Draw data from the previous frame expires here.
func (c *Context) NewFrame(displaySize Vec2, deltaTime float32) {
	if c.inFrame {
		panic("imbridge: NewFrame called twice without Render")
	}
	c.releaseLists()

	c.background = AcquireDrawList()
	c.foreground = AcquireDrawList()

	c.io.DisplaySize = displaySize
	c.io.DeltaTime = deltaTime
	c.frameCount++
	c.inFrame = true
}

// InFrame reports whether the context is between NewFrame and Render.
func (c *Context) InFrame() bool {
	return c.inFrame
}

// BackgroundDrawList returns the list drawn first.
// Only valid between NewFrame and Render.
func (c *Context) BackgroundDrawList() *DrawList {
	c.mustBeInFrame("BackgroundDrawList")
	return c.background
}

// ForegroundDrawList returns the list drawn on top of everything else.
func (c *Context) ForegroundDrawList() *DrawList {
	c.mustBeInFrame("ForegroundDrawList")
	return c.foreground
}

// Render ends the frame and returns its draw data, valid until the next
// NewFrame. Empty lists are left out.
func (c *Context) Render() *DrawData {
	c.mustBeInFrame("Render")

	c.lists = c.lists[:0]
	for _, dl := range []*DrawList{c.background, c.foreground} {
		dl.Finalize()
		if len(dl.CmdBuffer) > 0 {
			c.lists = append(c.lists, dl)
		}
	}
	c.drawData.set(c.lists, c.io.DisplaySize, c.io.FramebufferScale)

	c.io.endFrame()
	c.inFrame = false
	return &c.drawData
}

// DrawData returns the draw data of the last Render.
// It reports ErrDrawDataExpired once the next frame has started.
func (c *Context) DrawData() *DrawData {
	return &c.drawData
}

// FrameCount returns the number of frames started.
func (c *Context) FrameCount() int {
	return c.frameCount
}

// Shutdown releases the frame's draw lists.
func (c *Context) Shutdown() {
	c.releaseLists()
	c.inFrame = false
}

func (c *Context) releaseLists() {
	c.drawData.expire()
	clear(c.lists)
	c.lists = c.lists[:0]
	ReleaseDrawList(c.background)
	ReleaseDrawList(c.foreground)
	c.background, c.foreground = nil, nil
}

func (c *Context) mustBeInFrame(op string) {
	if !c.inFrame {
		panic("imbridge: " + op + " called outside NewFrame/Render")
	}
}
