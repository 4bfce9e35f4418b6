package xform

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/dualcmplx"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// normEps is the tolerance used by normalization and rigidity checks.
// Composed rigid values drift slightly, so this is looser than the float64
// machine epsilon.
const normEps = 1e-8

// Kind identifies a transformation representation.
type Kind uint8

const (
	Matrix         Kind = iota // general 3D affine matrix
	RigidMatrix                // 3D rotation+translation matrix, orthogonal linear part
	DualQuaternion             // 3D rigid motion as a unit dual quaternion
	DualComplex                // 2D rigid motion as a unit dual complex number
	Translation                // translation-only vector
)

// String returns the representation name.
func (k Kind) String() string {
	switch k {
	case Matrix:
		return "Matrix"
	case RigidMatrix:
		return "RigidMatrix"
	case DualQuaternion:
		return "DualQuaternion"
	case DualComplex:
		return "DualComplex"
	case Translation:
		return "Translation"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// CanRotate reports whether the representation supports rotation.
func (k Kind) CanRotate() bool { return k != Translation }

// CanScale reports whether the representation supports scaling.
// Only the general matrix does; the rigid representations disallow scaling
// by construction.
func (k Kind) CanScale() bool { return k == Matrix }

// Is2D reports whether the representation describes planar motion.
// 2D kinds use the Translated2/Rotated2 operations and convert to a 3x3
// matrix via [Value.Mat3].
func (k Kind) Is2D() bool { return k == DualComplex }

// IsRigid reports whether the representation permits only rotation and
// translation. Rigid values must stay normalized.
func (k Kind) IsRigid() bool {
	return k == RigidMatrix || k == DualQuaternion || k == DualComplex
}

// Space selects the frame a transformation is applied in.
type Space uint8

const (
	// Global applies the transformation in the parent frame: the new step
	// composes on the left of the current value.
	Global Space = iota
	// Local applies the transformation in the value's own frame: the new
	// step composes on the right.
	Local
)

// String returns "Global" or "Local".
func (s Space) String() string {
	if s == Local {
		return "Local"
	}
	return "Global"
}

// Value is a transformation in one of the representations listed under
// [Kind]. The zero Value is not meaningful; obtain values from [Identity],
// [FromMat4], [FromMat3] or the derived operations.
type Value struct {
	kind Kind

	// One arm per kind; only the arm matching kind is meaningful.
	mat mgl64.Mat4       // Matrix, RigidMatrix
	dq  dualquat.Number  // DualQuaternion
	dc  dualcmplx.Number // DualComplex
	vec mgl64.Vec3       // Translation
}

// Identity returns the neutral element of the given representation.
func Identity(k Kind) Value {
	v := Value{kind: k}
	switch k {
	case Matrix, RigidMatrix:
		v.mat = mgl64.Ident4()
	case DualQuaternion:
		v.dq = dualquat.Number{Real: quat.Number{Real: 1}}
	case DualComplex:
		v.dc = dualcmplx.Number{Real: 1}
	case Translation:
		// zero vector
	default:
		panic(fmt.Sprintf("arbor/xform: unknown representation %s", k))
	}
	return v
}

// Kind returns the value's representation.
func (v Value) Kind() Kind { return v.kind }

// assertSameKind panics when two values do not share a representation.
func assertSameKind(op string, a, b Value) {
	if a.kind != b.kind {
		panic(fmt.Sprintf("arbor/xform: %s: mismatched representations %s and %s", op, a.kind, b.kind))
	}
}

// assertKind panics when the value is not of the required representation.
func assertKind(op string, v Value, k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("arbor/xform: %s: requires %s, got %s", op, k, v.kind))
	}
}

// Compose combines two transformations so that child is applied first and
// parent second: the result maps child-local coordinates through child, then
// through parent. Composition is associative and Identity is its neutral
// element. Panics if the representations differ.
func Compose(parent, child Value) Value {
	assertSameKind("Compose", parent, child)
	out := Value{kind: parent.kind}
	switch parent.kind {
	case Matrix, RigidMatrix:
		out.mat = parent.mat.Mul4(child.mat)
	case DualQuaternion:
		out.dq = dualquat.Mul(parent.dq, child.dq)
	case DualComplex:
		out.dc = dualcmplx.Mul(parent.dc, child.dc)
	case Translation:
		out.vec = parent.vec.Add(child.vec)
	}
	return out
}

// Inverse returns the full inverse of the transformation. For the general
// matrix this goes through the determinant/adjugate; the rigid and
// translation representations invert algebraically.
func (v Value) Inverse() Value {
	out := Value{kind: v.kind}
	switch v.kind {
	case Matrix, RigidMatrix:
		out.mat = v.mat.Inv()
	case DualQuaternion:
		out.dq = dualquat.Inv(v.dq)
	case DualComplex:
		out.dc = dcInverse(v.dc)
	case Translation:
		out.vec = v.vec.Mul(-1)
	}
	return out
}

// InverseNormalized returns the inverse of a normalized rigid transformation
// using conjugation (dual representations) or transposition (rigid matrix)
// instead of a full inversion. Panics if the value is a rigid representation
// and not normalized. For Matrix and Translation it is equivalent to
// [Value.Inverse].
func (v Value) InverseNormalized() Value {
	out := Value{kind: v.kind}
	switch v.kind {
	case Matrix:
		out.mat = v.mat.Inv()
	case RigidMatrix:
		assertNormalized("InverseNormalized", v)
		out.mat = rigidInverse(v.mat)
	case DualQuaternion:
		assertNormalized("InverseNormalized", v)
		out.dq = dualquat.Conj(v.dq)
	case DualComplex:
		assertNormalized("InverseNormalized", v)
		out.dc = dcConjInverse(v.dc)
	case Translation:
		out.vec = v.vec.Mul(-1)
	}
	return out
}

// IsNormalized reports whether the value satisfies its representation's
// validity constraint: an orthogonal linear part for RigidMatrix, a unit
// non-dual part for the dual representations. Matrix and Translation values
// are always normalized.
func (v Value) IsNormalized() bool {
	switch v.kind {
	case RigidMatrix:
		return IsRigid(v.mat)
	case DualQuaternion:
		return mgl64.FloatEqualThreshold(quat.Abs(v.dq.Real), 1, normEps)
	case DualComplex:
		return mgl64.FloatEqualThreshold(dualcmplx.Abs(v.dc), 1, normEps)
	}
	return true
}

// Normalized returns the value renormalized to satisfy its representation's
// validity constraint, compensating accumulated floating point drift. Matrix
// and Translation values are returned unchanged.
func (v Value) Normalized() Value {
	out := Value{kind: v.kind, vec: v.vec, mat: v.mat}
	switch v.kind {
	case RigidMatrix:
		out.mat = orthonormalize(v.mat)
	case DualQuaternion:
		out.dq = dualquat.Scale(1/quat.Abs(v.dq.Real), v.dq)
	case DualComplex:
		a := complex(dualcmplx.Abs(v.dc), 0)
		out.dc = dualcmplx.Number{Real: v.dc.Real / a, Dual: v.dc.Dual / a}
	default:
		out.dq = v.dq
		out.dc = v.dc
	}
	return out
}

func assertNormalized(op string, v Value) {
	if !v.IsNormalized() {
		panic(fmt.Sprintf("arbor/xform: %s: %s value is not normalized", op, v.kind))
	}
}

// Mat4 converts the transformation to a generic 4x4 matrix. 2D values are
// embedded in the z=0 plane.
func (v Value) Mat4() mgl64.Mat4 {
	switch v.kind {
	case Matrix, RigidMatrix:
		return v.mat
	case DualQuaternion:
		return dqToMat4(v.dq)
	case DualComplex:
		// Not Mat3.Mat4(): the homogeneous translation column must move
		// from column 2 of the 3x3 to column 3 of the 4x4.
		m3 := v.Mat3()
		return mgl64.Mat4{
			m3.At(0, 0), m3.At(1, 0), 0, 0,
			m3.At(0, 1), m3.At(1, 1), 0, 0,
			0, 0, 1, 0,
			m3.At(0, 2), m3.At(1, 2), 0, 1,
		}
	case Translation:
		return mgl64.Translate3D(v.vec[0], v.vec[1], v.vec[2])
	}
	panic(fmt.Sprintf("arbor/xform: Mat4: unknown representation %s", v.kind))
}

// Mat3 converts a 2D transformation to a 3x3 homogeneous matrix.
// Panics for 3D representations.
func (v Value) Mat3() mgl64.Mat3 {
	if !v.kind.Is2D() {
		panic(fmt.Sprintf("arbor/xform: Mat3 on 3D representation %s", v.kind))
	}
	return dcToMat3(v.dc)
}

// FromMat4 converts a generic matrix into the given representation. Panics
// when the matrix is not expressible in the target algebra: a non-rigid
// matrix for the rigid kinds, a rotating or scaling matrix for Translation,
// a matrix leaving the z=0 plane for DualComplex.
func FromMat4(k Kind, m mgl64.Mat4) Value {
	v := Value{kind: k}
	switch k {
	case Matrix:
		v.mat = m
	case RigidMatrix:
		if !IsRigid(m) {
			panic("arbor/xform: FromMat4: matrix is not a rigid transformation")
		}
		v.mat = m
	case DualQuaternion:
		v.dq = dqFromMat4(m)
	case DualComplex:
		if !isPlanar(m) {
			panic("arbor/xform: FromMat4: matrix does not preserve the z=0 plane")
		}
		v.dc = dcFromMat3(planarMat3(m))
	case Translation:
		if !IsRigid(m) || !m.Mat3().ApproxEqualThreshold(mgl64.Ident3(), normEps) {
			panic("arbor/xform: FromMat4: matrix is not a pure translation")
		}
		v.vec = mgl64.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}
	default:
		panic(fmt.Sprintf("arbor/xform: FromMat4: unknown representation %s", k))
	}
	return v
}

// FromMat3 converts a 2D homogeneous matrix into a DualComplex value.
// Panics when the matrix is not a 2D rigid transformation.
func FromMat3(m mgl64.Mat3) Value {
	return Value{kind: DualComplex, dc: dcFromMat3(m)}
}

// Translation returns the translation component of the transformation.
func (v Value) Translation() mgl64.Vec3 {
	switch v.kind {
	case Matrix, RigidMatrix:
		return mgl64.Vec3{v.mat.At(0, 3), v.mat.At(1, 3), v.mat.At(2, 3)}
	case DualQuaternion:
		return dqTranslation(v.dq)
	case DualComplex:
		t := v.Translation2()
		return mgl64.Vec3{t[0], t[1], 0}
	case Translation:
		return v.vec
	}
	panic(fmt.Sprintf("arbor/xform: Translation: unknown representation %s", v.kind))
}

// Translation2 returns the planar translation component of a 2D
// transformation. Panics for 3D representations.
func (v Value) Translation2() mgl64.Vec2 {
	if !v.kind.Is2D() {
		panic(fmt.Sprintf("arbor/xform: Translation2 on 3D representation %s", v.kind))
	}
	t := dcTranslation(v.dc)
	return mgl64.Vec2{real(t), imag(t)}
}

// Translated returns the value translated by t, applied in the given space.
// Panics for 2D representations (use [Value.Translated2]).
func (v Value) Translated(t mgl64.Vec3, space Space) Value {
	if v.kind.Is2D() {
		panic(fmt.Sprintf("arbor/xform: Translated on 2D representation %s (use Translated2)", v.kind))
	}
	step := Value{kind: v.kind}
	switch v.kind {
	case Matrix, RigidMatrix:
		step.mat = mgl64.Translate3D(t[0], t[1], t[2])
	case DualQuaternion:
		step.dq = dqFromTranslation(t)
	case Translation:
		step.vec = t
	}
	return v.apply(step, space)
}

// Translated2 returns the 2D value translated by t, applied in the given
// space. Panics for 3D representations.
func (v Value) Translated2(t mgl64.Vec2, space Space) Value {
	if !v.kind.Is2D() {
		panic(fmt.Sprintf("arbor/xform: Translated2 on 3D representation %s", v.kind))
	}
	step := Value{kind: v.kind, dc: dcFromTranslation(complex(t[0], t[1]))}
	return v.apply(step, space)
}

// Rotated returns the value rotated by angle (radians) about axis, applied
// in the given space. Panics for representations without rotation and for 2D
// representations (use [Value.Rotated2]).
func (v Value) Rotated(angle float64, axis mgl64.Vec3, space Space) Value {
	if !v.kind.CanRotate() {
		panic(fmt.Sprintf("arbor/xform: Rotated on %s representation (no rotation support)", v.kind))
	}
	if v.kind.Is2D() {
		panic(fmt.Sprintf("arbor/xform: Rotated on 2D representation %s (use Rotated2)", v.kind))
	}
	step := Value{kind: v.kind}
	switch v.kind {
	case Matrix, RigidMatrix:
		step.mat = mgl64.HomogRotate3D(angle, axis.Normalize())
	case DualQuaternion:
		step.dq = dqFromRotation(angle, axis)
	}
	return v.apply(step, space)
}

// Rotated2 returns the 2D value rotated by angle (radians, counterclockwise),
// applied in the given space. Panics for 3D representations.
func (v Value) Rotated2(angle float64, space Space) Value {
	if !v.kind.Is2D() {
		panic(fmt.Sprintf("arbor/xform: Rotated2 on 3D representation %s", v.kind))
	}
	step := Value{kind: v.kind, dc: dcFromRotation(angle)}
	return v.apply(step, space)
}

// Scaled returns the value scaled by f, applied in the given space. Panics
// for representations without scaling support.
func (v Value) Scaled(f mgl64.Vec3, space Space) Value {
	if !v.kind.CanScale() {
		panic(fmt.Sprintf("arbor/xform: Scaled on %s representation (only Matrix supports scaling)", v.kind))
	}
	step := Value{kind: v.kind, mat: mgl64.Scale3D(f[0], f[1], f[2])}
	return v.apply(step, space)
}

// apply composes a transformation step in the requested space.
func (v Value) apply(step Value, space Space) Value {
	if space == Local {
		return Compose(v, step)
	}
	return Compose(step, v)
}
