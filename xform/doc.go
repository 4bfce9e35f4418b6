// Package xform implements the transformation representations used by arbor
// scene trees.
//
// A [Value] holds one transformation relative to a parent frame, in one of a
// closed set of representations identified by [Kind]:
//
//   - [Matrix]: a general 3D affine transformation (translation, rotation,
//     scaling, shearing) stored as a 4x4 matrix.
//   - [RigidMatrix]: rotation and translation only, stored as a 4x4 matrix
//     with an orthogonal linear part.
//   - [DualQuaternion]: 3D rigid motion stored as a unit dual quaternion.
//   - [DualComplex]: 2D rigid motion stored as a unit anti-commutative dual
//     complex number.
//   - [Translation]: translation only, stored as a vector.
//
// All representations support [Compose], [Value.Inverse], [Identity] and
// conversion to a generic matrix via [Value.Mat4]. The rigid representations
// additionally provide [Value.InverseNormalized], a cheaper conjugate or
// transpose based inverse that requires the value to be normalized. Which
// mutating operations a representation supports is a property of its Kind:
// see [Kind.CanRotate], [Kind.CanScale] and [Kind.Is2D].
//
// Transformations can be applied in two spaces, selected by [Space]: a
// [Global] transformation composes on the left (it is applied in the parent
// frame), a [Local] one composes on the right (applied in the value's own
// frame).
//
// Misuse — composing values of different kinds, scaling a rigid
// representation, converting a non-rigid matrix into a rigid representation,
// or taking the normalized inverse of a non-normalized value — is a
// programming error and panics. There are no recoverable error paths.
package xform
