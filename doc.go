/*
Package imbridge bridges a host windowing system and an immediate-mode GUI
renderer. It owns the window and frame loop, uploads textures, and exposes
each frame's draw lists to a renderer one command at a time.

# Overview

The pieces, leaves first:

  - VertexLayout and IndexLayout describe the byte layout of draw list
    buffers so renderers can bind them without knowing Vertex.
  - GlyphRange holds code point pairs restricting which glyphs a
    FontAtlas rasterises.
  - TextureRegistry uploads RGBA8 pixels through a backend and hands out
    TextureID handles.
  - DrawData, DrawList and DrawCmd give bounds-checked indexed access to
    a frame, and CallUserCallback dispatches callback commands.
  - Driver creates windows, paces frames and runs the loop.

Context, DrawList, FontAtlas and ListClipper form a minimal toolkit side
that fills draw lists, enough to drive the bridge without a full GUI.

# Quick Start

	platform, _ := opengl.NewPlatform()
	defer platform.Terminate()

	ctx := imbridge.NewContext()
	driver := imbridge.NewDriver(platform, imbridge.WithContext(ctx))
	driver.SetTargetFPS(60)

	window, err := driver.CreateWindow("demo", 800, 600, imbridge.WindowFlagsNone)
	if err != nil {
	    return err
	}

	renderer, _ := opengl.NewRenderer()
	defer renderer.Destroy()
	registry := imbridge.NewTextureRegistry(renderer)

	ctx.IO().Fonts.AddFont(basicfont.Face7x13, nil)
	pixels, w, h, _ := ctx.IO().Fonts.Build()
	tex, _ := registry.CreateTexture(pixels, w, h)
	ctx.IO().Fonts.SetTexID(tex)

	driver.SetRenderer(renderer)
	err = driver.Run(window, imbridge.Hooks(func() {
	    dl := ctx.BackgroundDrawList()
	    dl.AddRect(10, 10, 100, 40, imbridge.ColorRed)
	}, nil, nil))

# Frame lifetime

Draw data returned by Context.Render is valid until the next
Context.NewFrame. Accessors on expired draw data return ErrDrawDataExpired.

# Threading

Everything runs on the goroutine that created the window, which must be
locked to its OS thread for GLFW. Driver.Refresh is the only call that may
come from elsewhere.
*/
package imbridge
