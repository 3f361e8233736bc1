package theme

import (
	"testing"

	"github.com/vovakirdan/tightrope/internal/core"
)

func TestSetLookup(t *testing.T) {
	s := NewSet()

	names := s.Names()
	want := []string{"downtown", "office", "skyline"}
	if len(names) != len(want) {
		t.Fatalf("Names = %v, expected %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names = %v, expected %v", names, want)
		}
	}

	if s.Get("skyline").Name() != "skyline" {
		t.Error("Get(skyline) returned the wrong theme")
	}
	if s.Get("moonbase").Name() != "office" {
		t.Error("unknown worlds should fall back to office")
	}
}

func TestBuildingFallsBackToDefault(t *testing.T) {
	office := &Office{}
	if _, ok := Theme(office).(BuildingDrawer); ok {
		t.Fatal("office should not provide its own building")
	}

	dst := core.NewScreen(40, 20)
	DrawBuilding(office, dst, 5, 15)
	if c := dst.GetCell(5, 10); c.Rune != '|' || c.Color != core.ColorGray {
		t.Errorf("default building wall = %+v, expected gray '|'", c)
	}

	dst.Clear()
	DrawBuilding(&Downtown{}, dst, 5, 15)
	if c := dst.GetCell(5, 10); c.Color != core.ColorRed {
		t.Errorf("downtown wall color = %v, expected red", c.Color)
	}
}

func TestGoalBuildingHook(t *testing.T) {
	dst := core.NewScreen(60, 30)
	DrawGoalBuilding(&Office{}, dst, 10, 25, 0)
	if dst.Get(15, 24) != '[' {
		t.Errorf("closed default door = %q, expected '['", dst.Get(15, 24))
	}

	dst.Clear()
	DrawGoalBuilding(&Office{}, dst, 10, 25, 0.5)
	if dst.Get(15, 24) != ' ' {
		t.Errorf("open default door = %q, expected blank", dst.Get(15, 24))
	}

	dst.Clear()
	DrawGoalBuilding(NewSkyline(1), dst, 10, 25, 1)
	if c := dst.GetCell(14, 24); c.Rune != '=' || c.Color != core.ColorBrightYellow {
		t.Errorf("lit tower lobby = %+v", c)
	}
}

func TestLayersOptional(t *testing.T) {
	dst := core.NewScreen(40, 20)
	DrawLayers(&Office{}, dst, 123)
	if dst.String() != core.NewScreen(40, 20).String() {
		t.Error("office has no layers; screen should be untouched")
	}

	DrawLayers(&Downtown{}, dst, 123)
	if dst.String() == core.NewScreen(40, 20).String() {
		t.Error("downtown layers drew nothing")
	}
}

func TestScrollOffsetWraps(t *testing.T) {
	tests := []struct {
		scroll, factor float64
		width, want    int
	}{
		{0, 1, 10, 0},
		{25, 1, 10, 5},
		{25, 0.5, 10, 2},
		{-3, 1, 10, 7},
		{5, 1, 0, 0},
	}
	for _, tt := range tests {
		if got := scrollOffset(tt.scroll, tt.factor, tt.width); got != tt.want {
			t.Errorf("scrollOffset(%v, %v, %d) = %d, expected %d", tt.scroll, tt.factor, tt.width, got, tt.want)
		}
	}
}

func TestSkylineDeterministic(t *testing.T) {
	a, b := core.NewScreen(60, 10), core.NewScreen(60, 10)
	DrawLayers(NewSkyline(3), a, 40)
	DrawLayers(NewSkyline(3), b, 40)
	if a.String() != b.String() {
		t.Error("same seed should draw the same clouds")
	}
}
