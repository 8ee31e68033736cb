package imbridge

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"
	"unicode"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrNoFonts is returned by FontAtlas.Build when no font was added.
var ErrNoFonts = errors.New("imbridge: font atlas has no fonts")

const (
	atlasMinWidth = 256
	atlasMaxWidth = 4096
	glyphPadding  = 1
)

// Glyph is a rasterised glyph inside a FontAtlas.
// X/Y are pixel offsets from the pen position at the top of the line.
type Glyph struct {
	X0, Y0, X1, Y1 float32
	U0, V0, U1, V1 float32
	Advance        float32
	Visible        bool // false for blank glyphs such as space
}

// Font is one face loaded into a FontAtlas.
type Font struct {
	atlas *FontAtlas
	face  font.Face

	src    *GlyphRange // consumed by the first Build
	ranges []rune

	ascent     float32
	lineHeight float32
	glyphs     map[rune]*Glyph
	fallback   *Glyph
}

// Glyph returns the glyph for r, or the font's fallback glyph.
// Returns nil before the atlas is built.
func (f *Font) Glyph(r rune) *Glyph {
	if g, ok := f.glyphs[r]; ok {
		return g
	}
	return f.fallback
}

// HasGlyph reports whether r was rasterised.
func (f *Font) HasGlyph(r rune) bool {
	_, ok := f.glyphs[r]
	return ok
}

// LineHeight returns the distance between baselines in pixels.
func (f *Font) LineHeight() float32 {
	return f.lineHeight
}

// MeasureText returns the pixel size of a single line of text.
func (f *Font) MeasureText(text string) Vec2 {
	var w float32
	for _, r := range text {
		if g := f.Glyph(r); g != nil {
			w += g.Advance
		}
	}
	return Vec2{X: w, Y: f.lineHeight}
}

// FontAtlas rasterises fonts into a single RGBA8 texture.
//
// Typical use: AddFont for each face, Build, upload the pixels with
// TextureRegistry.CreateTexture and hand the handle back with SetTexID.
type FontAtlas struct {
	fonts  []*Font
	texID  TextureID
	width  int
	height int
	built  bool
}

// NewFontAtlas creates an empty atlas.
func NewFontAtlas() *FontAtlas {
	return &FontAtlas{}
}

// AddFont registers face with the glyphs listed in ranges.
// ranges may be nil for GlyphRangesDefault; otherwise it must stay alive
// until Build returns.
func (a *FontAtlas) AddFont(face font.Face, ranges *GlyphRange) (*Font, error) {
	if face == nil {
		return nil, errors.New("imbridge: nil font face")
	}
	if ranges == nil {
		ranges = GlyphRangesDefault()
	} else if ranges.Len() == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidGlyphRange)
	}

	m := face.Metrics()
	f := &Font{
		atlas:      a,
		face:       face,
		src:        ranges,
		ascent:     float32(m.Ascent.Ceil()),
		lineHeight: float32(m.Height.Ceil()),
	}
	a.fonts = append(a.fonts, f)
	a.built = false
	return f, nil
}

// FontCount returns the number of fonts added to the atlas.
func (a *FontAtlas) FontCount() int {
	return len(a.fonts)
}

// Font returns the font at index i, or nil.
func (a *FontAtlas) Font(i int) *Font {
	if i < 0 || i >= len(a.fonts) {
		return nil
	}
	return a.fonts[i]
}

// IsBuilt reports whether Build has run since the last AddFont.
func (a *FontAtlas) IsBuilt() bool {
	return a.built
}

// SetTexID records the GPU texture holding the atlas pixels.
func (a *FontAtlas) SetTexID(id TextureID) {
	a.texID = id
}

// TexID returns the atlas texture, NilTexture until SetTexID is called.
func (a *FontAtlas) TexID() TextureID {
	return a.texID
}

// Size returns the atlas dimensions of the last Build.
func (a *FontAtlas) Size() (width, height int) {
	return a.width, a.height
}

type packedGlyph struct {
	font   *Font
	r      rune
	bounds image.Rectangle // relative to the dot on the baseline
	x, y   int             // position in the atlas
}

// Build rasterises every font and returns tightly packed RGBA8 pixels.
// Glyphs are white with coverage in the alpha channel.
func (a *FontAtlas) Build() (pixels []byte, width, height int, err error) {
	if len(a.fonts) == 0 {
		return nil, 0, 0, ErrNoFonts
	}

	var glyphs []packedGlyph
	for _, f := range a.fonts {
		if f.src != nil {
			f.ranges = slices.Clone(f.src.Data())
			f.src = nil
		}
		f.glyphs = make(map[rune]*Glyph)
		f.fallback = nil
		for i := 0; i+1 < len(f.ranges); i += 2 {
			for r := f.ranges[i]; r <= f.ranges[i+1]; r++ {
				if _, ok := f.glyphs[r]; ok {
					continue
				}
				dr, _, _, adv, ok := f.face.Glyph(fixed.Point26_6{}, r)
				if !ok {
					continue
				}
				if unicode.IsSpace(r) {
					dr = image.Rectangle{}
				}
				f.glyphs[r] = &Glyph{Advance: fixed26ToFloat(adv)}
				glyphs = append(glyphs, packedGlyph{font: f, r: r, bounds: dr})
			}
		}
	}

	width, height = packGlyphs(glyphs)
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	white := image.NewUniform(color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})

	for _, pg := range glyphs {
		g := pg.font.glyphs[pg.r]
		if pg.bounds.Empty() {
			continue
		}
		// Faces may reuse the mask buffer, so draw before the next lookup.
		_, mask, maskp, _, _ := pg.font.face.Glyph(fixed.Point26_6{}, pg.r)
		dst := image.Rect(pg.x, pg.y, pg.x+pg.bounds.Dx(), pg.y+pg.bounds.Dy())
		draw.DrawMask(img, dst, white, image.Point{}, mask, maskp, draw.Src)

		g.Visible = true
		g.X0 = float32(pg.bounds.Min.X)
		g.Y0 = pg.font.ascent + float32(pg.bounds.Min.Y)
		g.X1 = float32(pg.bounds.Max.X)
		g.Y1 = pg.font.ascent + float32(pg.bounds.Max.Y)
		g.U0 = float32(dst.Min.X) / float32(width)
		g.V0 = float32(dst.Min.Y) / float32(height)
		g.U1 = float32(dst.Max.X) / float32(width)
		g.V1 = float32(dst.Max.Y) / float32(height)
	}

	for _, f := range a.fonts {
		if g, ok := f.glyphs['?']; ok {
			f.fallback = g
		}
	}

	a.width, a.height = width, height
	a.built = true
	return img.Pix, width, height, nil
}

// packGlyphs assigns atlas positions on shelves and returns the atlas size.
// The height is rounded up to a power of two.
func packGlyphs(glyphs []packedGlyph) (width, height int) {
	width = atlasMinWidth
	area := 0
	for _, g := range glyphs {
		w := g.bounds.Dx() + glyphPadding
		area += w * (g.bounds.Dy() + glyphPadding)
		for width < w && width < atlasMaxWidth {
			width *= 2
		}
	}
	for width < atlasMaxWidth && width*width < area {
		width *= 2
	}

	x, y, shelf := glyphPadding, glyphPadding, 0
	for i := range glyphs {
		g := &glyphs[i]
		if g.bounds.Empty() {
			continue
		}
		w, h := g.bounds.Dx(), g.bounds.Dy()
		if x+w+glyphPadding > width {
			x = glyphPadding
			y += shelf + glyphPadding
			shelf = 0
		}
		g.x, g.y = x, y
		x += w + glyphPadding
		shelf = max(shelf, h)
	}

	used := y + shelf + glyphPadding
	height = 1
	for height < used {
		height *= 2
	}
	return width, height
}

func fixed26ToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
