package imbridge

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned by indexed draw data accessors.
	ErrIndexOutOfRange = errors.New("imbridge: index out of range")
	// ErrDrawDataExpired is returned when draw data is used after its frame ended.
	ErrDrawDataExpired = errors.New("imbridge: draw data used outside its frame")
)

// DrawData is a read-only view of one frame's draw lists.
//
// It is produced by Context.Render and stays valid until the next
// Context.NewFrame. Renderers walk it with ListCount/DrawListAt and
// CmdCount/CmdAt and must not retain any of it past the frame.
type DrawData struct {
	DisplayPos       Vec2 // Top-left of the viewport
	DisplaySize      Vec2 // Size of the viewport in logical pixels
	FramebufferScale Vec2 // Framebuffer pixels per logical pixel
	TotalVtxCount    int
	TotalIdxCount    int

	lists []*DrawList
	valid bool
}

// Valid reports whether the draw data still belongs to the current frame.
func (d *DrawData) Valid() bool {
	return d != nil && d.valid
}

// ListCount returns the number of draw lists, or 0 once expired.
func (d *DrawData) ListCount() int {
	if !d.Valid() {
		return 0
	}
	return len(d.lists)
}

// DrawListAt returns the draw list at index i.
func (d *DrawData) DrawListAt(i int) (*DrawList, error) {
	if !d.Valid() {
		return nil, ErrDrawDataExpired
	}
	if i < 0 || i >= len(d.lists) {
		return nil, fmt.Errorf("%w: draw list %d of %d", ErrIndexOutOfRange, i, len(d.lists))
	}
	return d.lists[i], nil
}

// set points the view at lists for a new frame.
func (d *DrawData) set(lists []*DrawList, displaySize, fbScale Vec2) {
	d.lists = lists
	d.DisplayPos = Vec2{}
	d.DisplaySize = displaySize
	d.FramebufferScale = fbScale
	d.TotalVtxCount, d.TotalIdxCount = 0, 0
	for _, dl := range lists {
		d.TotalVtxCount += len(dl.VtxBuffer)
		d.TotalIdxCount += len(dl.IdxBuffer)
	}
	d.valid = true
}

// expire invalidates the view.
func (d *DrawData) expire() {
	d.lists = nil
	d.valid = false
}

// CmdCount returns the number of commands in the list.
func (dl *DrawList) CmdCount() int {
	return len(dl.CmdBuffer)
}

// CmdAt returns the command at index i.
func (dl *DrawList) CmdAt(i int) (*DrawCmd, error) {
	if i < 0 || i >= len(dl.CmdBuffer) {
		return nil, fmt.Errorf("%w: draw command %d of %d", ErrIndexOutOfRange, i, len(dl.CmdBuffer))
	}
	return &dl.CmdBuffer[i], nil
}

// CallUserCallback invokes cmd's user callback with list as context,
// synchronously on the calling goroutine. It is a no-op when cmd has none.
func CallUserCallback(list *DrawList, cmd *DrawCmd) {
	if cmd == nil || cmd.UserCallback == nil {
		return
	}
	cmd.UserCallback(list, cmd)
}
