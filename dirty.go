package arbor

import (
	"fmt"

	"github.com/arborgfx/arbor/xform"
	"github.com/go-gl/mathgl/mgl64"
)

// The dirty protocol keeps cached absolute transformations consistent with
// lazy recomputation. Dirtiness is monotonic downward: a dirty node implies
// a dirty subtree, which lets SetDirty stop recursing the moment it meets a
// node that is already dirty.

// IsDirty reports whether the node's cached absolute transformation is
// stale. A scene root is never dirty.
func (n *Node) IsDirty() bool {
	return n.dirty
}

// SetDirty marks this node and every descendant as dirty and notifies their
// features. Already-dirty subtrees are skipped (their descendants are dirty
// by the monotonicity invariant). No-op on a scene root.
func (n *Node) SetDirty() {
	if n.isScene || n.dirty {
		return
	}
	n.dirty = true
	n.invAbsValid = false
	for _, f := range n.features {
		if f.OnMarkDirty != nil {
			f.OnMarkDirty()
		}
	}
	for _, child := range n.children {
		child.SetDirty()
	}
}

// SetClean recomputes the cached absolute transformations of this node and
// its whole subtree, firing the clean callbacks of every feature that
// requested caching. Ancestors on the path to the nearest clean one are
// cleaned first. Idempotent: a second call with no intervening mutation
// recomputes nothing and fires no callbacks.
func (n *Node) SetClean() {
	n.ensureClean()
	for _, child := range n.children {
		child.setCleanTree(n.abs)
	}
}

// CleanAll cleans the given nodes path-locally, like
// [Node.AbsoluteTransformation] does for a single node, without descending
// into their subtrees. Clean nodes are skipped.
func CleanAll(nodes ...*Node) {
	for _, n := range nodes {
		n.ensureClean()
	}
}

// AbsoluteTransformation returns the node's transformation relative to the
// scene root. On a dirty node this cleans the path from the nearest clean
// ancestor down to this node only, not the whole tree.
func (n *Node) AbsoluteTransformation() xform.Value {
	n.ensureClean()
	return n.abs
}

// AbsoluteTransformationMatrix returns the absolute transformation as a
// generic matrix.
func (n *Node) AbsoluteTransformationMatrix() mgl64.Mat4 {
	return n.AbsoluteTransformation().Mat4()
}

// InvertedAbsoluteTransformation returns the inverse of the absolute
// transformation, cached per clean.
func (n *Node) InvertedAbsoluteTransformation() xform.Value {
	n.ensureClean()
	if !n.invAbsValid {
		n.invAbs = n.abs.Inverse()
		n.invAbsValid = true
	}
	return n.invAbs
}

// RelativeTransformations returns the transformations of the given nodes
// relative to this node, each premultiplied by initial. All nodes must
// belong to the same scene as this node.
func (n *Node) RelativeTransformations(initial xform.Value, objects ...*Node) []xform.Value {
	base := xform.Compose(initial, n.InvertedAbsoluteTransformation())
	out := make([]xform.Value, len(objects))
	for i, o := range objects {
		n.assertSameScene(o)
		out[i] = xform.Compose(base, o.AbsoluteTransformation())
	}
	return out
}

// RelativeTransformationMatrices is the matrix form of
// [Node.RelativeTransformations].
func (n *Node) RelativeTransformationMatrices(initial mgl64.Mat4, objects ...*Node) []mgl64.Mat4 {
	base := initial.Mul4(n.InvertedAbsoluteTransformation().Mat4())
	out := make([]mgl64.Mat4, len(objects))
	for i, o := range objects {
		n.assertSameScene(o)
		out[i] = base.Mul4(o.AbsoluteTransformationMatrix())
	}
	return out
}

func (n *Node) assertSameScene(o *Node) {
	if o.Scene() != n.Scene() || n.Scene() == nil {
		panic(fmt.Sprintf("arbor: node %q is not part of the same scene as %q", o.Name, n.Name))
	}
}

// ensureClean cleans the path from the nearest clean ancestor down to this
// node. The scene root is always clean, so the recursion terminates there.
func (n *Node) ensureClean() {
	if !n.dirty {
		return
	}
	if n.parent == nil {
		// Root of a detached subtree: relative to itself.
		n.cleanNode(xform.Identity(n.local.Kind()))
		return
	}
	n.parent.ensureClean()
	n.cleanNode(n.parent.abs)
}

// setCleanTree cleans this node against the given parent absolute
// transformation and recurses into its children. A clean node still
// recurses: its descendants may have been dirtied independently.
func (n *Node) setCleanTree(parentAbs xform.Value) {
	if n.dirty {
		n.cleanNode(parentAbs)
	}
	for _, child := range n.children {
		child.setCleanTree(n.abs)
	}
}

// cleanNode recomputes the caches of a dirty node and fires the feature
// clean callbacks. The inverted absolute transformation is computed at most
// once, and only if some feature asked for it.
func (n *Node) cleanNode(parentAbs xform.Value) {
	n.abs = xform.Compose(parentAbs, n.local)
	n.dirty = false
	n.invAbsValid = false

	needInverted := false
	for _, f := range n.features {
		if f.caching&CacheAbsolute != 0 && f.OnClean != nil {
			f.OnClean(n.abs)
		}
		if f.caching&CacheInvertedAbsolute != 0 {
			needInverted = true
		}
	}
	if !needInverted {
		return
	}
	n.invAbs = n.abs.Inverse()
	n.invAbsValid = true
	for _, f := range n.features {
		if f.caching&CacheInvertedAbsolute != 0 && f.OnCleanInverted != nil {
			f.OnCleanInverted(n.invAbs)
		}
	}
}
