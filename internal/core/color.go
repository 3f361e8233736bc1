package core

import "math"

// Color is the foreground of a screen cell. The platform maps each value
// to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Tilt bands of the balance gauge, as a fraction of the fall angle.
const (
	TiltWarn   = 0.4
	TiltDanger = 0.65
)

// TiltColor colors the balance needle: green while steady, yellow when
// leaning, bright red once a fall is close.
func TiltColor(anglePercent float64) Color {
	a := math.Abs(anglePercent)
	switch {
	case a >= TiltDanger:
		return ColorBrightRed
	case a >= TiltWarn:
		return ColorYellow
	default:
		return ColorGreen
	}
}
