package theme

import (
	"github.com/vovakirdan/tightrope/internal/core"
)

// Office is the indoor world: a ceiling with strip lights and a wall.
// It has no optional hooks.
type Office struct{}

func (o *Office) Name() string { return "office" }

func (o *Office) RenderSky(dst *core.Screen, scroll float64) {
	w := dst.Width()
	dst.DrawHLine(0, 0, w, '=', core.ColorGray)
	off := scrollOffset(scroll, 0.5, 16)
	for x := -off; x < w; x += 16 {
		for i := 0; i < 6; i++ {
			dst.SetColored(x+i, 1, '-', core.ColorBrightWhite)
		}
	}
	wallRow := dst.Height() / 3
	dst.DrawHLine(0, wallRow, w, '.', core.ColorGray)
}

// Downtown has a parallax skyline and brick buildings.
type Downtown struct{}

func (d *Downtown) Name() string { return "downtown" }

func (d *Downtown) RenderSky(dst *core.Screen, scroll float64) {
	off := scrollOffset(scroll, 0.1, 23)
	for x := -off; x < dst.Width(); x += 23 {
		dst.SetColored(x, 1, '*', core.ColorYellow)
		dst.SetColored(x+11, 3, '.', core.ColorWhite)
	}
}

// DrawExtraLayers draws two rows of silhouettes at different speeds.
func (d *Downtown) DrawExtraLayers(dst *core.Screen, scroll float64) {
	h := dst.Height()
	heights := []int{4, 7, 5, 9, 3, 6}
	far := scrollOffset(scroll, 0.2, 8*len(heights))
	for i := 0; ; i++ {
		x := i*8 - far
		if x >= dst.Width() {
			break
		}
		bh := heights[i%len(heights)]
		for row := h/2 - bh; row < h/2; row++ {
			dst.DrawHLine(x, row, 6, ':', core.ColorBlue)
		}
	}
}

// DrawBuilding draws a brick facade.
func (d *Downtown) DrawBuilding(dst *core.Screen, x, groundRow int) {
	defaultBuilding(dst, x, groundRow, 12, 9, core.ColorRed)
}

// Skyline is the rooftop world. Cloud positions come from a seed table
// generated once per session.
type Skyline struct {
	clouds []cloud
}

type cloud struct {
	x, row, width int
}

// NewSkyline builds the cloud table from seed.
func NewSkyline(seed int64) *Skyline {
	rng := core.NewRNG(seed)
	s := &Skyline{}
	for i := 0; i < 6; i++ {
		s.clouds = append(s.clouds, cloud{
			x:     rng.Intn(120),
			row:   1 + rng.Intn(4),
			width: 4 + rng.Intn(6),
		})
	}
	return s
}

func (s *Skyline) Name() string { return "skyline" }

func (s *Skyline) RenderSky(dst *core.Screen, scroll float64) {
	dst.DrawTextColored(dst.Width()-6, 1, "(   )", core.ColorBrightYellow)
}

// DrawExtraLayers drifts the clouds.
func (s *Skyline) DrawExtraLayers(dst *core.Screen, scroll float64) {
	const span = 120
	off := scrollOffset(scroll, 0.3, span)
	for _, c := range s.clouds {
		x := c.x - off
		if x < -c.width {
			x += span
		}
		for i := 0; i < c.width; i++ {
			dst.SetColored(x+i, c.row, '~', core.ColorBrightWhite)
		}
	}
}

// DrawGoalBuilding draws a glass tower whose lobby lights up on entry.
func (s *Skyline) DrawGoalBuilding(dst *core.Screen, x, groundRow int, progress float64) {
	defaultBuilding(dst, x, groundRow, 14, 14, core.ColorCyan)
	c := core.ColorGray
	if progress > 0 {
		c = core.ColorBrightYellow
	}
	dst.DrawHLine(x+4, groundRow-1, 6, '=', c)
	dst.DrawTextColored(x+3, groundRow-15, "TOWER", core.ColorCyan)
}
