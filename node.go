package arbor

import (
	"fmt"

	"github.com/arborgfx/arbor/xform"
	"github.com/go-gl/mathgl/mgl64"
)

// nodeIDCounter is a plain counter (no atomic — arbor is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a scene tree element: it owns an ordered list of child nodes, one
// local transformation relative to its parent, and a list of attached
// Features. All nodes of one tree share the representation chosen when the
// scene root was created.
//
// A node's absolute transformation (its local transformation composed
// through every ancestor) is cached and kept consistent lazily: mutations
// mark the subtree dirty, [Node.SetClean] or [Node.AbsoluteTransformation]
// recompute caches on demand.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	parent   *Node
	children []*Node

	// Transformation state
	local xform.Value
	dirty bool

	// Caches, valid while !dirty. invAbs is computed at most once per
	// clean, and only when requested.
	abs         xform.Value
	invAbs      xform.Value
	invAbsValid bool

	features []*Feature

	isScene  bool
	disposed bool
}

// NewScene creates the root node of a new scene tree using the given
// transformation representation. The scene root is special: its local
// transformation is fixed at identity, it is never dirty, and transformation
// mutators on it are silent no-ops.
func NewScene(kind xform.Kind) *Node {
	n := &Node{
		ID:      nextNodeID(),
		Name:    "scene",
		local:   xform.Identity(kind),
		abs:     xform.Identity(kind),
		invAbs:  xform.Identity(kind),
		isScene: true,
	}
	n.invAbsValid = true
	return n
}

// NewNode creates a node under the given parent, inheriting the tree's
// transformation representation. The new node starts dirty with an identity
// local transformation. Panics if parent is nil.
func NewNode(parent *Node, name string) *Node {
	if parent == nil {
		panic("arbor: NewNode requires a parent; create roots with NewScene")
	}
	if globalDebug {
		debugCheckDisposed(parent, "NewNode (parent)")
	}
	n := &Node{
		ID:    nextNodeID(),
		Name:  name,
		local: xform.Identity(parent.local.Kind()),
		dirty: true,
	}
	n.parent = parent
	parent.children = append(parent.children, n)
	if globalDebug {
		debugCheckTreeDepth(n)
	}
	return n
}

// Kind returns the tree's transformation representation.
func (n *Node) Kind() xform.Kind { return n.local.Kind() }

// IsScene reports whether this node is a scene root.
func (n *Node) IsScene() bool { return n.isScene }

// Parent returns the parent node, or nil for a scene root or a detached
// node.
func (n *Node) Parent() *Node { return n.parent }

// Scene returns the scene root this node belongs to, or nil if the node is
// part of a detached subtree.
func (n *Node) Scene() *Node {
	for p := n; p != nil; p = p.parent {
		if p.isScene {
			return p
		}
	}
	return nil
}

// --- Tree manipulation ---

// AddChild appends child to this node's children. If child already has a
// parent, it is removed from that parent first; the child keeps its local
// transformation, so its absolute transformation generally changes (see
// [Node.SetParentKeepTransformation]). The child subtree is marked dirty.
//
// Panics if child is nil, a scene root, of a different representation, or
// an ancestor of this node.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("arbor: cannot add nil child")
	}
	if child.isScene {
		panic("arbor: cannot reparent a scene root")
	}
	if child.local.Kind() != n.local.Kind() {
		panic(fmt.Sprintf("arbor: cannot mix representations in one tree (%s under %s)",
			child.local.Kind(), n.local.Kind()))
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("arbor: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	child.SetDirty()
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// SetParent moves this node under a new parent, keeping its local
// transformation. Equivalent to parent.AddChild(n).
func (n *Node) SetParent(parent *Node) {
	parent.AddChild(n)
}

// SetParentKeepTransformation moves this node under a new parent and
// adjusts its local transformation so that its absolute transformation is
// preserved.
func (n *Node) SetParentKeepTransformation(parent *Node) {
	abs := n.AbsoluteTransformation()
	parentAbs := parent.AbsoluteTransformation()
	parent.AddChild(n)
	n.local = xform.Compose(parentAbs.Inverse(), abs)
	n.SetDirty()
}

// RemoveChild detaches child from this node, leaving it as the root of a
// detached subtree. Panics if child's parent is not this node.
func (n *Node) RemoveChild(child *Node) {
	if child.parent != n {
		panic("arbor: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.parent = nil
	child.SetDirty()
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated
// by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Features returns the attached feature list. The returned slice MUST NOT
// be mutated by the caller.
func (n *Node) Features() []*Feature {
	return n.features
}

// --- Disposal ---

// Dispose removes this node from its parent, detaches its features, and
// recursively disposes all descendants. Features survive disposal but are
// no longer attached to anything.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, f := range n.features {
		f.node = nil
	}
	n.features = nil
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.children = nil
	n.parent = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Transformation ---

// Transformation returns the node's local transformation relative to its
// parent.
func (n *Node) Transformation() xform.Value {
	return n.local
}

// TransformationMatrix returns the local transformation as a generic
// matrix.
func (n *Node) TransformationMatrix() mgl64.Mat4 {
	return n.local.Mat4()
}

// SetTransformation replaces the node's local transformation and marks the
// subtree dirty. On a scene root this is a silent no-op. Panics when the
// value's representation does not match the tree's, or when a rigid value
// is not normalized.
func (n *Node) SetTransformation(v xform.Value) {
	if n.ignoreMutation("SetTransformation") {
		return
	}
	if v.Kind() != n.local.Kind() {
		panic(fmt.Sprintf("arbor: SetTransformation: representation %s does not match tree's %s",
			v.Kind(), n.local.Kind()))
	}
	if !v.IsNormalized() {
		panic(fmt.Sprintf("arbor: SetTransformation: %s value is not normalized", v.Kind()))
	}
	n.local = v
	n.SetDirty()
}

// ResetTransformation resets the local transformation to identity.
// Silent no-op on a scene root.
func (n *Node) ResetTransformation() {
	if n.ignoreMutation("ResetTransformation") {
		return
	}
	n.local = xform.Identity(n.local.Kind())
	n.SetDirty()
}

// Translate translates the node by t in the given space. Silent no-op on a
// scene root; panics for 2D trees (use [Node.Translate2]).
func (n *Node) Translate(t mgl64.Vec3, space xform.Space) {
	if n.ignoreMutation("Translate") {
		return
	}
	n.local = n.local.Translated(t, space)
	n.SetDirty()
}

// Translate2 translates a 2D node by t in the given space. Silent no-op on
// a scene root; panics for 3D trees.
func (n *Node) Translate2(t mgl64.Vec2, space xform.Space) {
	if n.ignoreMutation("Translate2") {
		return
	}
	n.local = n.local.Translated2(t, space)
	n.SetDirty()
}

// Rotate rotates the node by angle (radians) about axis in the given space.
// Silent no-op on a scene root; panics when the tree's representation does
// not support rotation, and for 2D trees (use [Node.Rotate2]).
func (n *Node) Rotate(angle float64, axis mgl64.Vec3, space xform.Space) {
	if n.ignoreMutation("Rotate") {
		return
	}
	n.local = n.local.Rotated(angle, axis, space)
	n.SetDirty()
}

// Rotate2 rotates a 2D node by angle (radians, counterclockwise) in the
// given space. Silent no-op on a scene root; panics for 3D trees.
func (n *Node) Rotate2(angle float64, space xform.Space) {
	if n.ignoreMutation("Rotate2") {
		return
	}
	n.local = n.local.Rotated2(angle, space)
	n.SetDirty()
}

// Scale scales the node by f in the given space. Silent no-op on a scene
// root; panics when the tree's representation does not support scaling.
func (n *Node) Scale(f mgl64.Vec3, space xform.Space) {
	if n.ignoreMutation("Scale") {
		return
	}
	n.local = n.local.Scaled(f, space)
	n.SetDirty()
}

// ignoreMutation reports whether a transformation mutation must be ignored
// because the node is a scene root. Diagnosed on stderr in debug mode.
func (n *Node) ignoreMutation(op string) bool {
	if !n.isScene {
		if globalDebug {
			debugCheckDisposed(n, op)
		}
		return false
	}
	debugWarnSceneMutation(op)
	return true
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing
// child.parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
