package main

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/imbridge"
)

const (
	// screenshotFrame is the frame captured with --screenshot.
	screenshotFrame = 3

	logHeight  = 100
	logPadding = 4
)

// demo draws a small panel with two buttons and an image.
type demo struct {
	ctx     *imbridge.Context
	driver  *imbridge.Driver
	window  *imbridge.Window
	font    *imbridge.Font
	checker imbridge.TextureID

	clicks    int
	wireframe bool
	log       []string
	scroll    float32

	capture func() error
	err     error
}

var _ imbridge.FrameHooks = (*demo)(nil)

func newDemo(ctx *imbridge.Context, driver *imbridge.Driver, window *imbridge.Window, font *imbridge.Font, checker imbridge.TextureID) *demo {
	return &demo{ctx: ctx, driver: driver, window: window, font: font, checker: checker}
}

func (d *demo) BeforeRender() {}

func (d *demo) Loop() {
	io := d.ctx.IO()
	bg := d.ctx.BackgroundDrawList()
	fg := d.ctx.ForegroundDrawList()

	panel := imbridge.Rect{X: 20, Y: 20, W: 280, H: 190}
	bg.AddRect(panel.X, panel.Y, panel.W, panel.H, imbridge.RGBA(40, 40, 48, 230))
	bg.AddRectOutline(panel.X, panel.Y, panel.W, panel.H, imbridge.ColorGray, 1)

	lh := d.font.LineHeight()
	fg.PushClipRect(panel.X, panel.Y, panel.X+panel.W, panel.Y+panel.H)
	fg.AddText(d.font, panel.X+10, panel.Y+8, imbridge.ColorWhite, "imbridge demo")
	fg.AddText(d.font, panel.X+10, panel.Y+8+lh, imbridge.ColorGray,
		fmt.Sprintf("frame %d  %.1f ms", d.driver.FrameCount(), io.DeltaTime*1000))

	if d.button(fg, imbridge.Rect{X: panel.X + 10, Y: panel.Y + 50, W: 120, H: 24}, fmt.Sprintf("Clicked %d", d.clicks)) {
		d.clicks++
		d.logf("click %d", d.clicks)
		d.driver.Refresh()
	}
	if d.button(fg, imbridge.Rect{X: panel.X + 150, Y: panel.Y + 50, W: 120, H: 24}, "Quit") {
		d.window.Close()
	}
	if d.button(fg, imbridge.Rect{X: panel.X + 10, Y: panel.Y + 84, W: 120, H: 24}, "Wireframe") {
		d.wireframe = !d.wireframe
		d.logf("wireframe %t", d.wireframe)
	}

	fg.AddImage(d.checker, imbridge.Rect{X: panel.X + 150, Y: panel.Y + 84, W: 48, H: 48}, imbridge.ColorWhite)

	if d.wireframe {
		fg.AddCallback(setPolygonMode, uint32(gl.LINE))
	}
	fg.AddTriangle(panel.X+220, panel.Y+132, panel.X+270, panel.Y+132, panel.X+245, panel.Y+90, imbridge.ColorYellow)
	if d.wireframe {
		fg.AddCallback(setPolygonMode, uint32(gl.FILL))
	}

	fg.AddLine(panel.X+10, panel.Y+170, panel.X+panel.W-10, panel.Y+170, imbridge.ColorDarkGray, 2)
	fg.PopClipRect()

	d.logView(bg, fg, imbridge.Rect{X: panel.X, Y: panel.Y + panel.H + 10, W: panel.W, H: logHeight})
}

// logView draws the event log, scrolled by the mouse wheel while hovered.
func (d *demo) logView(bg, fg *imbridge.DrawList, r imbridge.Rect) {
	io := d.ctx.IO()
	lh := d.font.LineHeight()
	if r.Contains(io.MousePos) {
		d.scroll -= io.MouseWheel.Y * lh
	}

	bg.AddRect(r.X, r.Y, r.W, r.H, imbridge.RGBA(30, 30, 36, 230))
	clip := imbridge.NewListClipper(len(d.log), lh, r.H-2*logPadding, d.scroll)
	d.scroll = clip.Scroll

	fg.PushClipRect(r.X+logPadding, r.Y+logPadding, r.X+r.W-logPadding, r.Y+r.H-logPadding)
	for i := range clip.Rows() {
		fg.AddText(d.font, r.X+8, clip.RowY(i, r.Y+logPadding), imbridge.ColorGray, d.log[i])
	}
	fg.PopClipRect()
}

func (d *demo) logf(format string, args ...any) {
	d.log = append(d.log, fmt.Sprintf(format, args...))
	// Follow the tail.
	view := float32(logHeight - 2*logPadding)
	clip := imbridge.NewListClipper(len(d.log), d.font.LineHeight(), view, d.scroll)
	d.scroll = clip.ScrollTo(len(d.log)-1, view)
}

func (d *demo) AfterRender() {
	if d.capture == nil || d.driver.FrameCount()+1 != screenshotFrame {
		return
	}
	d.err = d.capture()
	d.window.Close()
}

// button draws a labelled rectangle and reports a click on it this frame.
func (d *demo) button(dl *imbridge.DrawList, r imbridge.Rect, label string) bool {
	io := d.ctx.IO()
	hovered := r.Contains(io.MousePos)

	col := imbridge.RGBA(70, 70, 90, 255)
	switch {
	case hovered && io.IsMouseDown(imbridge.MouseButtonLeft):
		col = imbridge.RGBA(50, 90, 160, 255)
	case hovered:
		col = imbridge.RGBA(90, 90, 120, 255)
	}
	dl.AddRect(r.X, r.Y, r.W, r.H, col)

	size := d.font.MeasureText(label)
	dl.AddText(d.font, r.X+(r.W-size.X)/2, r.Y+(r.H-size.Y)/2, imbridge.ColorWhite, label)

	return hovered && io.IsMouseClicked(imbridge.MouseButtonLeft)
}

// setPolygonMode switches the fill mode for the commands that follow.
func setPolygonMode(_ *imbridge.DrawList, cmd *imbridge.DrawCmd) {
	gl.PolygonMode(gl.FRONT_AND_BACK, cmd.UserCallbackData.(uint32))
}
