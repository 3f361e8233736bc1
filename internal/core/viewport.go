package core

import "math"

// Viewport projects rig-space pixels onto screen cells.
// Terminal cells are roughly twice as tall as they are wide, so the
// vertical scale is usually double the horizontal one.
type Viewport struct {
	OriginX  float64 // Rig-space x shown at column 0
	OriginY  float64 // Rig-space y shown at row 0
	PxPerCol float64 // Horizontal pixels per cell
	PxPerRow float64 // Vertical pixels per cell
}

// NewViewport creates a viewport with the default 5x10 px cell.
func NewViewport(originX, originY float64) Viewport {
	return Viewport{OriginX: originX, OriginY: originY, PxPerCol: 5, PxPerRow: 10}
}

// Cell converts a rig-space point to a screen cell.
func (v Viewport) Cell(p Vec2) (int, int) {
	col := int(math.Floor((p.X - v.OriginX) / v.PxPerCol))
	row := int(math.Floor((p.Y - v.OriginY) / v.PxPerRow))
	return col, row
}

// Line draws a rig-space segment onto the screen.
func (v Viewport) Line(dst *Screen, a, b Vec2, r rune, c Color) {
	x0, y0 := v.Cell(a)
	x1, y1 := v.Cell(b)
	dst.DrawLine(x0, y0, x1, y1, r, c)
}

// Point draws a single rig-space point.
func (v Viewport) Point(dst *Screen, p Vec2, r rune, c Color) {
	x, y := v.Cell(p)
	dst.SetColored(x, y, r, c)
}
