package rig

import (
	"github.com/vovakirdan/tightrope/internal/core"
)

// Palette colors the character.
type Palette struct {
	Body core.Color
	Legs core.Color
	Arms core.Color
	Head core.Color
	Tail core.Color
}

// DefaultPalette is the office-worker look.
var DefaultPalette = Palette{
	Body: core.ColorWhite,
	Legs: core.ColorBlue,
	Arms: core.ColorWhite,
	Head: core.ColorYellow,
	Tail: core.ColorRed,
}

// Render draws the character back to front.
func (r *Rig) Render(dst *core.Screen, view core.Viewport) {
	r.RenderWithPalette(dst, view, DefaultPalette)
}

// RenderWithPalette draws the character using p.
func (r *Rig) RenderWithPalette(dst *core.Screen, view core.Viewport, p Palette) {
	if r.feet[0].uninitialized() && r.feet[1].uninitialized() {
		return
	}

	r.tail.Render(dst, view, '~', '\'', p.Tail)
	r.arms[1].Render(dst, view, '|', '.', p.Arms)
	r.legs[1].Render(dst, view, '|', '|', p.Legs)
	r.legs[0].Render(dst, view, '#', '|', p.Legs)

	for i := range r.feet {
		view.Point(dst, r.feet[i].Pos(), '_', p.Legs)
	}

	view.Line(dst, r.hip, r.shoulder, torsoRune(r.rotation), p.Body)
	r.arms[0].Render(dst, view, '|', '.', p.Arms)
	view.Point(dst, r.head, 'O', p.Head)
}

// torsoRune picks a line character that follows the lean.
func torsoRune(rotation float64) rune {
	switch {
	case rotation > 1.1:
		return '-'
	case rotation > 0.3:
		return '/'
	case rotation < -1.1:
		return '-'
	case rotation < -0.3:
		return '\\'
	default:
		return '|'
	}
}
