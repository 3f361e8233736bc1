package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tightrope/internal/core"
	"github.com/vovakirdan/tightrope/internal/theme"
)

const (
	ropeRune    = '='
	postRune    = 'T'
	postSpacing = 10.0 // Meters between rope posts
	gaugeHalf   = 10   // Cells either side of the gauge center
)

// Render draws the scene, the character and the HUD.
func (r *Run) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w <= 0 || h <= 0 {
		return
	}

	groundRow := h - 3
	charCol := w / 4
	scroll := r.scrollDistance()

	view := core.NewViewport(0, 0)
	view.OriginX = rigOriginX - float64(charCol)*view.PxPerCol - r.camera.OffsetX()
	view.OriginY = rigGroundY - float64(groundRow)*view.PxPerRow
	col := func(distance float64) int {
		c, _ := view.Cell(core.V(rigOriginX+(distance-scroll)*pxPerMeter, rigGroundY))
		return c
	}

	th := r.themes.Get(r.tracker.Rank().World)
	cols := scroll * pxPerMeter / view.PxPerCol
	th.RenderSky(dst, cols)
	theme.DrawLayers(th, dst, cols)

	r.drawRope(dst, groundRow, scroll, col)

	if r.mode == ModeStages {
		base := r.tracker.StageBase()
		theme.DrawBuilding(th, dst, col(base)-12, groundRow)
		next := r.tracker.NextStageDistance()
		theme.DrawGoalBuilding(th, dst, col(next+doorLead)-5, groundRow, r.entry.Progress())
	}

	if r.entry.Fade() < 0.5 {
		r.rig.Render(dst, view)
	}
	r.drawFade(dst)
	r.drawHUD(dst)

	switch {
	case r.engine.State().IsGameOver:
		sub := fmt.Sprintf("%d m | R restart | Q quit", r.State().Score)
		if r.CanContinue() {
			sub = fmt.Sprintf("%d m | C continue | R restart", r.State().Score)
		}
		drawCenteredMessage(dst, "YOU FELL", sub)
	case r.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// scrollDistance is the distance shown under the character. It is held
// still while the character walks into the building.
func (r *Run) scrollDistance() float64 {
	if r.entry.Active() {
		return r.entryFrom
	}
	return r.engine.State().Distance
}

func (r *Run) drawRope(dst *core.Screen, groundRow int, scroll float64, col func(float64) int) {
	dst.DrawHLine(0, groundRow, dst.Width(), ropeRune, core.ColorOrange)

	first := math.Floor((scroll-20)/postSpacing) * postSpacing
	for d := first; d < scroll+40; d += postSpacing {
		if d < 0 {
			continue
		}
		x := col(d)
		dst.SetColored(x, groundRow, postRune, core.ColorGray)
		dst.DrawVLine(x, groundRow+1, 2, '|', core.ColorGray)
	}
}

// drawFade dissolves the screen during the fade-out.
func (r *Run) drawFade(dst *core.Screen) {
	fade := r.entry.Fade()
	if fade <= 0 {
		return
	}
	cut := int(fade * 10)
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if (x*7+y*13)%10 < cut {
				dst.SetColored(x, y, ' ', core.ColorDefault)
			}
		}
	}
}

func (r *Run) drawHUD(dst *core.Screen) {
	state := r.engine.State()
	w := dst.Width()

	status := fmt.Sprintf(" %d m", r.State().Score)
	if r.mode == ModeStages {
		status += fmt.Sprintf("  Stage %d  %s", r.tracker.Stage(), r.tracker.Rank().Title)
		if loop := r.tracker.LoopCount(); loop > 0 {
			status += fmt.Sprintf(" x%d", loop+1)
		}
	}
	status += fmt.Sprintf("  Coffee %d", r.inventory.CoffeeCount())
	dst.DrawTextColored(0, 0, status, core.ColorBrightWhite)

	label := r.engine.Difficulty().BackgroundLabel
	if label == "" {
		label = r.mode.Title()
	}
	dst.DrawTextColored(w-len(label)-1, 0, label, core.ColorGray)

	r.drawGauge(dst, 1)

	var tags []string
	switch r.events.WindDirection() {
	case 1:
		tags = append(tags, "WIND >>")
	case -1:
		tags = append(tags, "<< WIND")
	}
	switch r.events.SlopeDirection() {
	case 1:
		tags = append(tags, "SLOPE \\")
	case -1:
		tags = append(tags, "SLOPE /")
	}
	if r.events.SinceLastBump() < flashSeconds*2 {
		tags = append(tags, "BUMP!")
	}
	if r.engine.IsCoffeeShieldActive() {
		tags = append(tags, fmt.Sprintf("SHIELD %.0fm", r.engine.CoffeeShieldRemaining()))
	}
	if r.flashLeft > 0 {
		tags = append(tags, "SAVED")
	}
	if r.engine.Invincible() && r.mode == ModePractice {
		tags = append(tags, "PRACTICE")
	}
	if len(tags) > 0 {
		dst.DrawTextColored(gaugeHalf*2+5, 1, strings.Join(tags, "  "), core.ColorBrightYellow)
	}

	if r.bannerLeft > 0 && r.banner != "" {
		dst.DrawTextCentered(3, r.banner)
	}

	if state.Speed > 0 {
		speed := fmt.Sprintf("%.0f px/s ", state.Speed)
		dst.DrawTextColored(w-len(speed), dst.Height()-1, speed, core.ColorGray)
	}
}

// drawGauge draws the tilt needle between two brackets.
func (r *Run) drawGauge(dst *core.Screen, y int) {
	color := core.TiltColor(r.engine.AnglePercent())
	if r.engine.IsDangerous() {
		color = core.ColorBrightRed
	}
	dst.SetColored(1, y, '[', core.ColorGray)
	dst.DrawHLine(2, y, gaugeHalf*2+1, '-', core.ColorGray)
	dst.SetColored(2+gaugeHalf, y, '|', core.ColorGray)
	dst.SetColored(3+gaugeHalf*2, y, ']', core.ColorGray)

	offset := int(math.Round(core.ClampF(r.camera.Needle(), -1, 1) * gaugeHalf))
	dst.SetColored(2+gaugeHalf+offset, y, '^', color)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
