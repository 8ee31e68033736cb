package headless_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/imbridge"
	"github.com/go-theft-auto/imbridge/backend/headless"
)

func TestPlatformRecords(t *testing.T) {
	p := headless.NewPlatform()
	pw, err := p.CreateWindow("a", 10, 20, imbridge.WindowFlagsMaximized)
	require.NoError(t, err)

	p.PollEvents()
	p.WaitEventsTimeout(time.Millisecond)
	p.PostEmptyEvent()
	assert.Equal(t, 1, p.Polls)
	assert.Equal(t, []time.Duration{time.Millisecond}, p.Waits)
	assert.Equal(t, 1, p.EmptyPosts)

	w, h := pw.DisplaySize()
	assert.Equal(t, [2]int{10, 20}, [2]int{w, h})
	assert.False(t, pw.ShouldClose())
	pw.SetShouldClose(true)
	assert.True(t, pw.ShouldClose())

	pw.SwapBuffers()
	pw.Destroy()
	assert.Equal(t, 1, p.Windows[0].Swaps)
	assert.True(t, p.Windows[0].Destroyed)
}

func TestPlatformWithWait(t *testing.T) {
	var got []time.Duration
	p := headless.NewPlatform(headless.WithWait(func(d time.Duration) { got = append(got, d) }))

	p.WaitEventsTimeout(time.Hour)
	assert.Equal(t, []time.Duration{time.Hour}, got)
	assert.Equal(t, []time.Duration{time.Hour}, p.Waits)
}

func TestUploaderBudget(t *testing.T) {
	u := headless.NewUploader(8)

	a, err := u.Upload(make([]byte, 4), 1, 1)
	require.NoError(t, err)
	b, err := u.Upload(make([]byte, 4), 1, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = u.Upload(make([]byte, 4), 1, 1)
	assert.ErrorIs(t, err, headless.ErrOutOfMemory)

	u.Delete(a)
	_, err = u.Upload(make([]byte, 4), 1, 1)
	assert.NoError(t, err)
}

func TestRendererWalksDrawData(t *testing.T) {
	ctx := imbridge.NewContext()
	defer ctx.Shutdown()

	var called int
	ctx.NewFrame(imbridge.Vec2{X: 100, Y: 100}, 0.016)
	dl := ctx.ForegroundDrawList()
	dl.AddRect(0, 0, 1, 1, imbridge.ColorWhite)
	dl.AddCallback(func(*imbridge.DrawList, *imbridge.DrawCmd) { called++ }, nil)
	dl.AddImage(5, imbridge.Rect{W: 1, H: 1}, imbridge.ColorWhite)
	dd := ctx.Render()

	r := &headless.Renderer{}
	require.NoError(t, r.Render(dd))
	assert.Equal(t, 1, r.Frames)
	assert.Equal(t, 1, r.Lists)
	assert.Equal(t, 2, r.Draws)
	assert.Equal(t, 1, r.Callbacks)
	assert.Equal(t, 1, called)
	assert.Equal(t, 12, r.Elements)
	assert.Equal(t, []imbridge.TextureID{imbridge.NilTexture, 5}, r.Textures)
}
