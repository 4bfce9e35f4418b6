// Package arbor is a scene graph with cached hierarchical transformations.
//
// Arbor keeps objects in a tree, composes their transformations lazily and
// caches the results, so deep hierarchies stay cheap even when only a few
// objects move per frame. It backs both 2D and 3D scenes with a choice of
// transformation representations, from general 4x4 matrices down to plain
// translation vectors.
//
// # Scene graph
//
// Every object is a [Node]. Nodes form a tree rooted at a scene, created
// with [NewScene]; the root's transformation is fixed at identity. Child
// nodes are created with [NewNode] and inherit their parent's
// transformation representation.
//
//	scene := arbor.NewScene(xform.RigidMatrix)
//	body := arbor.NewNode(scene, "body")
//	body.Translate(mgl64.Vec3{0, 3, 0}, xform.Global)
//	arm := arbor.NewNode(body, "arm")
//	arm.Rotate(math.Pi/4, mgl64.Vec3{0, 0, 1}, xform.Local)
//
// Moving a node marks its subtree dirty; absolute transformations are
// recomputed on demand by [Node.AbsoluteTransformation], [Node.SetClean]
// or [CleanAll], and only for the nodes that actually changed.
//
// # Transformation representations
//
// The [github.com/arborgfx/arbor/xform] package provides the
// representations a scene can use: general and rigid 4x4 matrices, dual
// quaternions for 3D rigid motion, anti-commutative dual complex numbers
// for 2D rigid motion, and bare translation vectors. All nodes of one
// scene share a representation, chosen at scene construction.
//
// # Features
//
// Behavior attaches to nodes as features: a [Camera] turns a node into a
// viewpoint, a [Drawable] gives it an appearance, an [Animable] animates
// it over time. Features can subscribe to a node's cached absolute or
// inverted absolute transformation through [Feature.SetCachedTransformations]
// and are notified as the caches are invalidated and refreshed.
//
// Drawables are collected in a [DrawableGroup] and rendered together by
// [Camera.Draw]; animables are collected in an [AnimableGroup] and
// advanced together by [AnimableGroup.Step]. The examples directory shows
// the pieces combined into an [Ebitengine] game loop.
//
// [Ebitengine]: https://ebitengine.org
package arbor
