package imbridge

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"
)

// ErrInvalidGlyphRange is returned for ranges with lo > hi or a zero bound.
var ErrInvalidGlyphRange = errors.New("imbridge: invalid glyph range")

// GlyphRange is an owned buffer of inclusive code point pairs used to limit
// which glyphs a FontAtlas rasterises.
//
// It must stay alive until FontAtlas.Build has consumed it and may be
// destroyed right after. Any use after Destroy panics.
type GlyphRange struct {
	data      []rune
	destroyed bool
}

// NewGlyphRange returns an empty glyph range buffer.
func NewGlyphRange() *GlyphRange {
	return &GlyphRange{data: make([]rune, 0, 8)}
}

// GlyphRangesDefault returns Basic Latin and Latin-1 Supplement.
func GlyphRangesDefault() *GlyphRange {
	g := NewGlyphRange()
	_ = g.AddRange(0x0020, 0x00FF)
	return g
}

// GlyphRangesGreek returns the default ranges plus Greek and Coptic.
func GlyphRangesGreek() *GlyphRange {
	g := GlyphRangesDefault()
	_ = g.AddRange(0x0370, 0x03FF)
	return g
}

func (g *GlyphRange) mustBeAlive() {
	if g == nil {
		panic("imbridge: nil GlyphRange")
	}
	if g.destroyed {
		panic("imbridge: GlyphRange used after Destroy")
	}
}

// AddRange appends the inclusive pair [lo, hi].
func (g *GlyphRange) AddRange(lo, hi rune) error {
	g.mustBeAlive()
	if lo == 0 || lo > hi || hi > utf8.MaxRune {
		return fmt.Errorf("%w: [%#x, %#x]", ErrInvalidGlyphRange, lo, hi)
	}
	g.data = append(g.data, lo, hi)
	return nil
}

// AddRanges appends pairs given as a flat lo, hi, lo, hi... list.
// A trailing zero terminator is accepted and ignored.
func (g *GlyphRange) AddRanges(pairs ...rune) error {
	g.mustBeAlive()
	if n := len(pairs); n > 0 && n%2 == 1 && pairs[n-1] == 0 {
		pairs = pairs[:n-1]
	}
	if len(pairs)%2 != 0 {
		return fmt.Errorf("%w: odd number of bounds", ErrInvalidGlyphRange)
	}
	for i := 0; i < len(pairs); i += 2 {
		if err := g.AddRange(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// AddChar appends a single code point.
func (g *GlyphRange) AddChar(r rune) error {
	return g.AddRange(r, r)
}

// AddText appends every distinct code point of s.
func (g *GlyphRange) AddText(s string) error {
	g.mustBeAlive()
	for _, r := range s {
		if g.Contains(r) {
			continue
		}
		if err := g.AddChar(r); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether r falls inside any pair.
func (g *GlyphRange) Contains(r rune) bool {
	g.mustBeAlive()
	for i := 0; i+1 < len(g.data); i += 2 {
		if r >= g.data[i] && r <= g.data[i+1] {
			return true
		}
	}
	return false
}

// Len returns the number of boundary values (twice the number of pairs).
func (g *GlyphRange) Len() int {
	g.mustBeAlive()
	return len(g.data)
}

// Data returns a view of the boundary values in insertion order.
// The view aliases the buffer and must not be kept past Destroy.
func (g *GlyphRange) Data() []rune {
	g.mustBeAlive()
	return g.data[:len(g.data):len(g.data)]
}

// Clone returns an independent copy of the buffer.
func (g *GlyphRange) Clone() *GlyphRange {
	g.mustBeAlive()
	return &GlyphRange{data: slices.Clone(g.data)}
}

// Destroy releases the buffer. Destroying twice panics.
func (g *GlyphRange) Destroy() {
	g.mustBeAlive()
	g.data = nil
	g.destroyed = true
}
