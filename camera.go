package arbor

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/arborgfx/arbor/xform"
)

// AspectRatioPolicy controls how a camera's projection reacts when the
// viewport aspect ratio differs from the projection's.
type AspectRatioPolicy uint8

const (
	// AspectRatioNotPreserved stretches the projection to the viewport.
	AspectRatioNotPreserved AspectRatioPolicy = iota
	// AspectRatioExtend keeps the projected size in the smaller viewport
	// dimension and shows more of the scene in the larger one.
	AspectRatioExtend
	// AspectRatioClip keeps the projected size in the larger viewport
	// dimension and cuts the scene off in the smaller one.
	AspectRatioClip
)

// String returns the policy name.
func (p AspectRatioPolicy) String() string {
	switch p {
	case AspectRatioNotPreserved:
		return "NotPreserved"
	case AspectRatioExtend:
		return "Extend"
	case AspectRatioClip:
		return "Clip"
	}
	return "Unknown"
}

// Camera is a feature that turns its node into a viewpoint. The camera
// matrix, the inverse of the node's absolute transformation, is cached
// through the clean protocol and maintained automatically as the node or
// its ancestors move.
//
// A fresh camera has an identity projection. Configure one with
// [Camera.SetOrthographic] or [Camera.SetPerspective] and tell the camera
// about the output size with [Camera.SetViewport] so the aspect ratio
// policy can do its work.
type Camera struct {
	feature *Feature

	policy        AspectRatioPolicy
	rawProjection mgl64.Mat4
	projection    mgl64.Mat4
	cameraMatrix  mgl64.Mat4
	viewport      [2]int
}

// NewCamera attaches a camera to the given node.
func NewCamera(node *Node) *Camera {
	c := &Camera{
		feature:       NewFeature(node),
		rawProjection: mgl64.Ident4(),
		projection:    mgl64.Ident4(),
	}
	c.feature.SetCachedTransformations(CacheInvertedAbsolute)
	c.feature.OnCleanInverted = func(inv xform.Value) {
		c.cameraMatrix = inv.Mat4()
	}
	c.cameraMatrix = node.InvertedAbsoluteTransformation().Mat4()
	return c
}

// Node returns the node the camera is attached to.
func (c *Camera) Node() *Node {
	return c.feature.Node()
}

// Detach removes the camera from its node.
func (c *Camera) Detach() {
	c.feature.Detach()
}

// CameraMatrix returns the inverse of the node's absolute transformation,
// cleaning the node first if needed. Multiplying by it moves the scene into
// camera-local space.
func (c *Camera) CameraMatrix() mgl64.Mat4 {
	c.feature.Node().ensureClean()
	return c.cameraMatrix
}

// AspectRatioPolicy returns the current policy.
func (c *Camera) AspectRatioPolicy() AspectRatioPolicy {
	return c.policy
}

// SetAspectRatioPolicy changes how the projection adapts to the viewport.
func (c *Camera) SetAspectRatioPolicy(policy AspectRatioPolicy) {
	c.policy = policy
	c.fixAspectRatio()
}

// Viewport returns the viewport size in pixels.
func (c *Camera) Viewport() (width, height int) {
	return c.viewport[0], c.viewport[1]
}

// SetViewport tells the camera the output size so the aspect ratio policy
// can correct the projection. Call it whenever the window is resized.
func (c *Camera) SetViewport(width, height int) {
	c.viewport = [2]int{width, height}
	c.fixAspectRatio()
}

// ProjectionMatrix returns the projection with the aspect ratio fix
// applied.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return c.projection
}

// SetOrthographic configures an orthographic projection with the given
// visible size at the projection plane and near and far clipping distances.
func (c *Camera) SetOrthographic(size mgl64.Vec2, near, far float64) {
	c.rawProjection = mgl64.Ortho(-size.X()/2, size.X()/2, -size.Y()/2, size.Y()/2, near, far)
	c.fixAspectRatio()
}

// SetPerspective configures a perspective projection with the given
// vertical field of view in radians, aspect ratio 1 before the viewport
// fix, and near and far clipping distances.
func (c *Camera) SetPerspective(fovy, near, far float64) {
	c.rawProjection = mgl64.Perspective(fovy, 1, near, far)
	c.fixAspectRatio()
}

// SetProjectionMatrix installs a custom projection.
func (c *Camera) SetProjectionMatrix(projection mgl64.Mat4) {
	c.rawProjection = projection
	c.fixAspectRatio()
}

// fixAspectRatio recomputes the effective projection from the raw one, the
// viewport and the policy. With no viewport set or no policy the raw
// projection is used as is.
func (c *Camera) fixAspectRatio() {
	if c.policy == AspectRatioNotPreserved || c.viewport[0] == 0 || c.viewport[1] == 0 {
		c.projection = c.rawProjection
		return
	}
	relX := float64(c.viewport[0]) * c.rawProjection.At(0, 0)
	relY := float64(c.viewport[1]) * c.rawProjection.At(1, 1)
	var sx, sy float64
	if (relX > relY) == (c.policy == AspectRatioExtend) {
		sx, sy = relY/relX, 1
	} else {
		sx, sy = 1, relX/relY
	}
	c.projection = mgl64.Scale3D(sx, sy, 1).Mul4(c.rawProjection)
}

// Draw draws every drawable in the group, passing each its node's
// transformation relative to the camera. The camera node must be part of a
// scene; the drawables' nodes must be in the same scene.
func (c *Camera) Draw(group *DrawableGroup) {
	node := c.feature.Node()
	if node == nil || node.Scene() == nil {
		panic("arbor: cannot draw with a camera that is not part of a scene")
	}
	node.ensureClean()

	for i := 0; i < group.Len(); i++ {
		d := group.At(i)
		dn := d.feature.Node()
		if d.OnDraw == nil || dn == nil {
			continue
		}
		node.assertSameScene(dn)
		d.OnDraw(c.cameraMatrix.Mul4(dn.AbsoluteTransformationMatrix()), c)
	}
}
