package verlet

import (
	"math"
	"testing"

	"github.com/vovakirdan/tightrope/internal/core"
)

func maxStretchError(c *Chain) float64 {
	nodes := c.Nodes()
	worst := 0.0
	for i := 0; i < len(nodes)-1; i++ {
		d := math.Hypot(nodes[i+1].X-nodes[i].X, nodes[i+1].Y-nodes[i].Y)
		worst = math.Max(worst, math.Abs(d-c.SegmentLength())/c.SegmentLength())
	}
	return worst
}

func TestChainConverges(t *testing.T) {
	tests := []struct {
		name    string
		gravity float64
		stretch float64
	}{
		{"stretched weightless", 0, 1.5},
		{"compressed weightless", 0, 0.6},
		{"hanging leg", 0.35, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChain(4, 24.7, tt.gravity, 0.93, 1, 3)
			span := 3 * 24.7 * tt.stretch
			c.Place(50, 50, 50+span, 50, 0)
			initial := maxStretchError(c)

			c.Update(50, 50)
			if tt.stretch != 1 && maxStretchError(c) >= initial {
				t.Errorf("first update did not reduce error: %v -> %v", initial, maxStretchError(c))
			}

			for i := 0; i < 300; i++ {
				c.Update(50, 50)
			}
			if e := maxStretchError(c); e >= 0.01 {
				t.Errorf("segment error after settling = %.4f, expected < 1%%", e)
			}
		})
	}
}

func TestChainSettlesBounded(t *testing.T) {
	const ax, ay = 100.0, 40.0
	c := NewChain(4, 24.7, 0.35, 0.93, 1, 3)
	c.Place(ax, ay, ax+3*24.7, ay, 0)

	reach := 3 * 24.7 * 1.05
	for i := 0; i < 200; i++ {
		c.Update(ax, ay)
		for j, n := range c.Nodes() {
			if !core.Finite(n.X) || !core.Finite(n.Y) {
				t.Fatalf("update %d: node %d is not finite (%v, %v)", i, j, n.X, n.Y)
			}
			if math.Hypot(n.X-ax, n.Y-ay) > reach {
				t.Fatalf("update %d: node %d escaped to (%v, %v)", i, j, n.X, n.Y)
			}
		}
	}

	tip := c.Nodes()[3]
	if v := math.Hypot(tip.X-tip.PrevX, tip.Y-tip.PrevY); v > 0.5 {
		t.Errorf("tip still moving %v px/step after 200 updates", v)
	}
	if tip.Y <= ay {
		t.Errorf("chain should hang below its anchor, tip y = %v", tip.Y)
	}
}

func TestNegativeGravityFloats(t *testing.T) {
	c := NewChain(6, 9, 0.12, 0.88, -1, 2)
	c.Place(0, 100, 45, 100, 0)
	for i := 0; i < 300; i++ {
		c.Update(0, 100)
	}
	if tip := c.Tip(); tip.Y >= 100 {
		t.Errorf("tail should float above its anchor, tip y = %v", tip.Y)
	}
}

func TestAnchorIsPinnedAfterUpdate(t *testing.T) {
	c := NewChain(4, 10, 0.3, 0.9, 1, 3)
	c.Place(0, 0, 30, 0, 0)
	c.Update(12, 7)

	n := c.Nodes()[0]
	if n.X != 12 || n.Y != 7 || n.PrevX != 12 || n.PrevY != 7 {
		t.Errorf("anchor = %+v, expected pinned at (12, 7) with no velocity", n)
	}
	if !n.Pinned {
		t.Error("node 0 should be pinned")
	}
}

func TestCoincidentNodesStayFinite(t *testing.T) {
	c := NewChain(4, 10, 0, 0.9, 1, 3)
	for i := 0; i < 50; i++ {
		c.Update(0, 0)
	}
	for j, n := range c.Nodes() {
		if !core.Finite(n.X) || !core.Finite(n.Y) {
			t.Fatalf("node %d not finite after collapsed start: %+v", j, n)
		}
	}
}

func TestPlaceAndTipHelpers(t *testing.T) {
	c := NewChain(5, 10, 0, 1, 1, 1)
	c.Place(0, 0, 0, 40, 6)

	nodes := c.Nodes()
	if nodes[0].X != 0 || nodes[0].Y != 0 {
		t.Errorf("first node = (%v, %v), expected origin", nodes[0].X, nodes[0].Y)
	}
	if math.Abs(nodes[4].X) > 1e-9 || math.Abs(nodes[4].Y-40) > 1e-9 {
		t.Errorf("last node = (%v, %v), expected (0, 40)", nodes[4].X, nodes[4].Y)
	}
	// Downward segment bends toward -x with a positive bend
	if mid := nodes[2]; math.Abs(mid.X+6) > 1e-9 {
		t.Errorf("middle node x = %v, expected -6", mid.X)
	}
	for _, n := range nodes {
		if n.X != n.PrevX || n.Y != n.PrevY {
			t.Fatal("Place should leave the chain at rest")
		}
	}

	c.PullTip(10, 40, 0.5)
	if tip := c.Tip(); math.Abs(tip.X-5) > 1e-9 {
		t.Errorf("PullTip x = %v, expected 5", tip.X)
	}
	c.SetTip(3, 3)
	if tip := c.Nodes()[4]; tip.X != 3 || tip.PrevX != 3 {
		t.Errorf("SetTip = %+v", tip)
	}
}

func TestRenderTapers(t *testing.T) {
	c := NewChain(4, 24.7, 0, 1, 1, 1)
	c.Place(10, 0, 10, 3*24.7, 0)

	dst := core.NewScreen(20, 10)
	c.Render(dst, core.NewViewport(0, 0), '#', '|', core.ColorWhite)

	if got := dst.Get(2, 0); got != '#' {
		t.Errorf("cell near anchor = %q, expected thick", got)
	}
	if got := dst.Get(2, 7); got != '|' {
		t.Errorf("cell near tip = %q, expected thin", got)
	}
}
