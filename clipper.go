package imbridge

import (
	"iter"

	"github.com/chewxy/math32"
)

// ListClipper limits a fixed-height list to the rows inside a viewport,
// so only those rows produce vertices.
//
//	c := NewListClipper(len(rows), rowHeight, viewHeight, scroll)
//	for i := range c.Rows() {
//		dl.AddText(font, x, c.RowY(i, top), col, rows[i])
//	}
type ListClipper struct {
	Start, End int // visible rows [Start, End)
	RowHeight  float32
	Count      int
	Scroll     float32 // clamped scroll offset
}

// NewListClipper computes the rows of a list of count rows that intersect
// a viewport of viewHeight pixels scrolled down by scroll pixels.
// scroll is clamped to [0, MaxScroll].
func NewListClipper(count int, rowHeight, viewHeight, scroll float32) ListClipper {
	c := ListClipper{RowHeight: rowHeight, Count: max(count, 0)}
	if c.Count == 0 || rowHeight <= 0 || viewHeight <= 0 {
		return c
	}
	c.Scroll = math32.Max(0, math32.Min(scroll, c.MaxScroll(viewHeight)))

	c.Start = int(c.Scroll / rowHeight)
	c.End = min(int(math32.Ceil((c.Scroll+viewHeight)/rowHeight)), c.Count)
	return c
}

// Rows iterates the visible row indices.
func (c ListClipper) Rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := c.Start; i < c.End; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Visible reports whether row i intersects the viewport.
func (c ListClipper) Visible(i int) bool {
	return i >= c.Start && i < c.End
}

// RowY returns the screen y of row i for a list whose viewport starts at top.
func (c ListClipper) RowY(i int, top float32) float32 {
	return top + float32(i)*c.RowHeight - c.Scroll
}

// ContentHeight returns the height of all rows.
func (c ListClipper) ContentHeight() float32 {
	return float32(c.Count) * c.RowHeight
}

// MaxScroll returns the largest useful scroll offset.
func (c ListClipper) MaxScroll(viewHeight float32) float32 {
	return math32.Max(0, c.ContentHeight()-viewHeight)
}

// ScrollTo returns the smallest scroll change that brings row i into view.
func (c ListClipper) ScrollTo(i int, viewHeight float32) float32 {
	if i < 0 || i >= c.Count {
		return c.Scroll
	}
	top := float32(i) * c.RowHeight
	switch {
	case top < c.Scroll:
		return top
	case top+c.RowHeight > c.Scroll+viewHeight:
		return top + c.RowHeight - viewHeight
	}
	return c.Scroll
}
