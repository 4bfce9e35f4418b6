package arbor

import "github.com/go-gl/mathgl/mgl64"

// Drawable adds a drawing function to a node. Drawables are collected in a
// [DrawableGroup] and the whole group is drawn with a particular [Camera]
// via [Camera.Draw], which hands each drawable its node's transformation
// relative to the camera.
//
// Grouping drawables lets a renderer minimize state changes: put everything
// sharing a shader or blend setup in one group and draw group by group.
type Drawable struct {
	feature *Feature
	group   *DrawableGroup

	// OnDraw receives the node's transformation relative to the camera
	// and the drawing camera. Nil drawables are skipped.
	OnDraw func(transformation mgl64.Mat4, camera *Camera)
}

// NewDrawable attaches a drawable to the given node and adds it to group.
// A nil group leaves the drawable ungrouped; add it later with
// [DrawableGroup.Add].
func NewDrawable(node *Node, group *DrawableGroup) *Drawable {
	d := &Drawable{feature: NewFeature(node)}
	if group != nil {
		group.Add(d)
	}
	return d
}

// Node returns the node this drawable is attached to.
func (d *Drawable) Node() *Node {
	return d.feature.Node()
}

// Group returns the group containing this drawable, or nil.
func (d *Drawable) Group() *DrawableGroup {
	return d.group
}

// Detach removes the drawable from its group and its node.
func (d *Drawable) Detach() {
	if d.group != nil {
		d.group.Remove(d)
	}
	d.feature.Detach()
}

// DrawableGroup is an ordered collection of drawables drawn together.
type DrawableGroup struct {
	drawables []*Drawable
}

// Add appends a drawable to the group. Moves it if it is already in another
// group.
func (g *DrawableGroup) Add(d *Drawable) {
	if d.group == g {
		return
	}
	if d.group != nil {
		d.group.Remove(d)
	}
	d.group = g
	g.drawables = append(g.drawables, d)
}

// Remove detaches a drawable from the group. No-op if the drawable is not
// in this group.
func (g *DrawableGroup) Remove(d *Drawable) {
	if d.group != g {
		return
	}
	d.group = nil
	for i, other := range g.drawables {
		if other == d {
			copy(g.drawables[i:], g.drawables[i+1:])
			g.drawables[len(g.drawables)-1] = nil
			g.drawables = g.drawables[:len(g.drawables)-1]
			return
		}
	}
}

// Len returns the number of drawables in the group.
func (g *DrawableGroup) Len() int {
	return len(g.drawables)
}

// At returns the drawable at the given index, in insertion order.
func (g *DrawableGroup) At(index int) *Drawable {
	return g.drawables[index]
}
