package arbor

import "github.com/arborgfx/arbor/xform"

// Caching selects which transformations a feature wants delivered when its
// node is cleaned. Values can be combined with bitwise OR.
type Caching uint8

const (
	// CacheAbsolute delivers the absolute transformation via OnClean.
	CacheAbsolute Caching = 1 << iota
	// CacheInvertedAbsolute delivers the inverted absolute transformation
	// via OnCleanInverted.
	CacheInvertedAbsolute
)

// CacheNone requests no clean callbacks; the default.
const CacheNone Caching = 0

// Feature is a capability attached to a scene node. A feature may passively
// ride along with its node, or opt into transformation caching with
// [Feature.SetCachedTransformations] and cache derived data (a world
// position, a view matrix, a render command buffer) in its callbacks.
//
// All callbacks are nil by default and cost nothing when unused.
type Feature struct {
	node    *Node
	caching Caching

	// OnMarkDirty fires when the feature's node transitions to dirty.
	// Use it to invalidate derived data; expensive recomputation belongs
	// in OnClean and OnCleanInverted.
	OnMarkDirty func()

	// OnClean fires with the node's absolute transformation when the node
	// is cleaned, if CacheAbsolute is set.
	OnClean func(abs xform.Value)

	// OnCleanInverted fires with the node's inverted absolute
	// transformation when the node is cleaned, if CacheInvertedAbsolute
	// is set.
	OnCleanInverted func(inv xform.Value)
}

// NewFeature attaches a new feature to the given node. The feature receives
// clean callbacks only after it requests caching; a feature attached to an
// already-dirty node receives its first callbacks on the next clean pass.
func NewFeature(node *Node) *Feature {
	if node == nil {
		panic("arbor: NewFeature requires a node")
	}
	if globalDebug {
		debugCheckDisposed(node, "NewFeature")
	}
	f := &Feature{node: node}
	node.features = append(node.features, f)
	return f
}

// Node returns the node this feature is attached to, or nil after the
// feature was detached or its node disposed.
func (f *Feature) Node() *Node {
	return f.node
}

// CachedTransformations returns which transformations are delivered to this
// feature on clean.
func (f *Feature) CachedTransformations() Caching {
	return f.caching
}

// SetCachedTransformations configures which clean callbacks the feature
// receives. Nothing is enabled by default. Changing the flags does not fire
// callbacks retroactively; the next clean of a dirty node does.
func (f *Feature) SetCachedTransformations(c Caching) {
	f.caching = c
}

// Detach removes the feature from its node's feature list. Idempotent, and
// safe to call after the node was disposed.
func (f *Feature) Detach() {
	n := f.node
	if n == nil {
		return
	}
	f.node = nil
	for i, other := range n.features {
		if other == f {
			copy(n.features[i:], n.features[i+1:])
			n.features[len(n.features)-1] = nil
			n.features = n.features[:len(n.features)-1]
			return
		}
	}
}
