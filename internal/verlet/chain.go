// Package verlet implements position-based spring chains used for limbs,
// tails and other appendages of the runner.
package verlet

import (
	"math"

	"github.com/vovakirdan/tightrope/internal/core"
)

// minDistance floors the inter-node distance in the constraint solver.
const minDistance = 0.001

// Node is a position-Verlet particle. Velocity is implicit in Pos - Prev.
type Node struct {
	X, Y         float64
	PrevX, PrevY float64
	Pinned       bool
}

// Chain is an ordered sequence of nodes; node 0 is the pinned anchor.
//
// Gravity is a per-step displacement, not integrated over dt: the chain
// advances one step per Update regardless of frame duration.
type Chain struct {
	nodes         []Node
	segmentLength float64
	gravity       float64
	damping       float64
	gravityDir    float64
	iterations    int
}

// NewChain creates a chain of nodeCount nodes, all at the origin.
// gravityDir is +1 for hanging chains and -1 for chains that float upward.
func NewChain(nodeCount int, segmentLength, gravity, damping, gravityDir float64, iterations int) *Chain {
	if nodeCount < 1 {
		nodeCount = 1
	}
	if iterations < 1 {
		iterations = 1
	}
	if gravityDir == 0 {
		gravityDir = 1
	}
	c := &Chain{
		nodes:         make([]Node, nodeCount),
		segmentLength: segmentLength,
		gravity:       gravity,
		damping:       damping,
		gravityDir:    gravityDir,
		iterations:    iterations,
	}
	c.nodes[0].Pinned = true
	return c
}

// Update advances the chain one step with node 0 pinned at the anchor.
func (c *Chain) Update(anchorX, anchorY float64) {
	c.pin(anchorX, anchorY)

	for i := 1; i < len(c.nodes); i++ {
		n := &c.nodes[i]
		if n.Pinned {
			continue
		}
		vx := (n.X - n.PrevX) * c.damping
		vy := (n.Y - n.PrevY) * c.damping
		n.PrevX, n.PrevY = n.X, n.Y
		n.X += vx
		n.Y += vy
		n.Y += c.gravity * c.gravityDir
	}

	for it := 0; it < c.iterations; it++ {
		for i := 0; i < len(c.nodes)-1; i++ {
			c.relax(&c.nodes[i], &c.nodes[i+1])
		}
		c.pin(anchorX, anchorY)
	}
}

// relax moves a pair of nodes toward segmentLength apart.
func (c *Chain) relax(a, b *Node) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Max(math.Hypot(dx, dy), minDistance)
	diff := (dist - c.segmentLength) / dist

	switch {
	case a.Pinned && b.Pinned:
		return
	case a.Pinned:
		b.X -= dx * diff
		b.Y -= dy * diff
	case b.Pinned:
		a.X += dx * diff
		a.Y += dy * diff
	default:
		a.X += dx * diff * 0.5
		a.Y += dy * diff * 0.5
		b.X -= dx * diff * 0.5
		b.Y -= dy * diff * 0.5
	}
}

func (c *Chain) pin(x, y float64) {
	n := &c.nodes[0]
	n.X, n.Y = x, y
	n.PrevX, n.PrevY = x, y
}

// Place lays the chain on a straight line from (fromX, fromY) to
// (toX, toY), pushing interior nodes sideways by bend px at the middle.
// Previous positions are set equal so the chain starts at rest.
func (c *Chain) Place(fromX, fromY, toX, toY, bend float64) {
	last := len(c.nodes) - 1
	dx, dy := toX-fromX, toY-fromY
	length := math.Max(math.Hypot(dx, dy), minDistance)
	// Unit normal (-dy, dx); points toward -x for a downward segment.
	nx, ny := -dy/length, dx/length
	for i := range c.nodes {
		t := 0.0
		if last > 0 {
			t = float64(i) / float64(last)
		}
		off := math.Sin(t*math.Pi) * bend
		x := fromX + dx*t + nx*off
		y := fromY + dy*t + ny*off
		c.nodes[i].X, c.nodes[i].Y = x, y
		c.nodes[i].PrevX, c.nodes[i].PrevY = x, y
	}
}

// PullTip lerps the terminal node toward (x, y) by factor.
func (c *Chain) PullTip(x, y, factor float64) {
	tip := &c.nodes[len(c.nodes)-1]
	if tip.Pinned {
		return
	}
	tip.X += (x - tip.X) * factor
	tip.Y += (y - tip.Y) * factor
}

// SetTip moves the terminal node to (x, y) without implied velocity.
func (c *Chain) SetTip(x, y float64) {
	tip := &c.nodes[len(c.nodes)-1]
	tip.X, tip.Y = x, y
	tip.PrevX, tip.PrevY = x, y
}

// Nodes returns a copy of the chain's nodes.
func (c *Chain) Nodes() []Node {
	out := make([]Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Points returns node positions as vectors.
func (c *Chain) Points() []core.Vec2 {
	out := make([]core.Vec2, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = core.V(n.X, n.Y)
	}
	return out
}

// Len returns the number of nodes.
func (c *Chain) Len() int {
	return len(c.nodes)
}

// Tip returns the terminal node position.
func (c *Chain) Tip() core.Vec2 {
	n := c.nodes[len(c.nodes)-1]
	return core.V(n.X, n.Y)
}

// SegmentLength returns the rest length between neighbors.
func (c *Chain) SegmentLength() float64 {
	return c.segmentLength
}

// Render draws the chain as a tapered polyline: the first half of the
// segments uses thick, the rest thin.
func (c *Chain) Render(dst *core.Screen, view core.Viewport, thick, thin rune, color core.Color) {
	segments := len(c.nodes) - 1
	for i := 0; i < segments; i++ {
		r := thick
		if i*2 >= segments {
			r = thin
		}
		a := core.V(c.nodes[i].X, c.nodes[i].Y)
		b := core.V(c.nodes[i+1].X, c.nodes[i+1].Y)
		view.Line(dst, a, b, r, color)
	}
}
