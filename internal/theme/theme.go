// Package theme draws the scenery behind the runner.
//
// A Theme must render the sky. Buildings and extra parallax layers are
// optional capabilities; the Draw* helpers fall back to the default
// renderer when a theme does not provide them.
package theme

import (
	"math"
	"sort"

	"github.com/vovakirdan/tightrope/internal/core"
)

// Theme is the minimum a scenery theme provides.
type Theme interface {
	Name() string
	RenderSky(dst *core.Screen, scroll float64)
}

// BuildingDrawer draws the stage-start building.
type BuildingDrawer interface {
	DrawBuilding(dst *core.Screen, x, groundRow int)
}

// GoalBuildingDrawer draws the building the runner enters at stage end.
// progress is the entry sequence progress in [0, 1].
type GoalBuildingDrawer interface {
	DrawGoalBuilding(dst *core.Screen, x, groundRow int, progress float64)
}

// LayerDrawer draws parallax layers between the sky and the rope.
type LayerDrawer interface {
	DrawExtraLayers(dst *core.Screen, scroll float64)
}

// DrawBuilding uses the theme's hook or the default block building.
func DrawBuilding(t Theme, dst *core.Screen, x, groundRow int) {
	if d, ok := t.(BuildingDrawer); ok {
		d.DrawBuilding(dst, x, groundRow)
		return
	}
	defaultBuilding(dst, x, groundRow, 10, 8, core.ColorGray)
}

// DrawGoalBuilding uses the theme's hook or the default goal building.
func DrawGoalBuilding(t Theme, dst *core.Screen, x, groundRow int, progress float64) {
	if d, ok := t.(GoalBuildingDrawer); ok {
		d.DrawGoalBuilding(dst, x, groundRow, progress)
		return
	}
	defaultGoal(dst, x, groundRow, progress)
}

// DrawLayers draws extra layers when the theme has any.
func DrawLayers(t Theme, dst *core.Screen, scroll float64) {
	if d, ok := t.(LayerDrawer); ok {
		d.DrawExtraLayers(dst, scroll)
	}
}

// defaultBuilding is a plain box with a window grid.
func defaultBuilding(dst *core.Screen, x, groundRow, w, h int, c core.Color) {
	top := groundRow - h
	for row := top; row < groundRow; row++ {
		for col := x; col < x+w; col++ {
			r := ' '
			switch {
			case row == top:
				r = '_'
			case col == x || col == x+w-1:
				r = '|'
			case (row-top)%2 == 0 && (col-x)%3 == 1:
				r = '#'
			}
			if r != ' ' {
				dst.SetColored(col, row, r, c)
			}
		}
	}
}

// defaultGoal is a building with a door that opens as progress grows.
func defaultGoal(dst *core.Screen, x, groundRow int, progress float64) {
	defaultBuilding(dst, x, groundRow, 12, 10, core.ColorWhite)
	door := x + 5
	open := progress > 0
	for row := groundRow - 3; row < groundRow; row++ {
		r := '['
		if open {
			r = ' '
		}
		dst.SetColored(door, row, r, core.ColorYellow)
		dst.SetColored(door+1, row, ']', core.ColorYellow)
	}
	dst.DrawTextColored(x+2, groundRow-11, "EXIT", core.ColorGreen)
}

// scrollOffset maps a scroll distance to a wrapped column offset for a
// layer moving at factor of the ground speed.
func scrollOffset(scroll, factor float64, width int) int {
	if width <= 0 {
		return 0
	}
	off := int(math.Floor(scroll*factor)) % width
	if off < 0 {
		off += width
	}
	return off
}

// Set holds every theme for a session, keyed by world name.
type Set struct {
	themes   map[string]Theme
	fallback Theme
}

// NewSet builds the session's themes once.
func NewSet() *Set {
	office := &Office{}
	s := &Set{
		themes:   make(map[string]Theme),
		fallback: office,
	}
	s.Add(office)
	s.Add(&Downtown{})
	s.Add(NewSkyline(7))
	return s
}

// Add registers t under its name, replacing any previous theme.
func (s *Set) Add(t Theme) {
	s.themes[t.Name()] = t
}

// Get returns the theme for world, or the office theme.
func (s *Set) Get(world string) Theme {
	if t, ok := s.themes[world]; ok {
		return t
	}
	return s.fallback
}

// Names returns registered world names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.themes))
	for n := range s.themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
