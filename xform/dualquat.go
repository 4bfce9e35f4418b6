package xform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// A unit dual quaternion (r, d) encodes the rigid motion with rotation r and
// translation t via d = ½·t·r, t = 2·d·conj(r) (t as a pure quaternion).
// Composition is the plain dual product (r0·r1, r0·d1 + d0·r1).

// dqFromRotation builds a rotation-only dual quaternion from an axis and an
// angle in radians.
func dqFromRotation(angle float64, axis mgl64.Vec3) dualquat.Number {
	a := axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return dualquat.Number{Real: quat.Number{
		Real: c,
		Imag: a[0] * s,
		Jmag: a[1] * s,
		Kmag: a[2] * s,
	}}
}

// dqFromTranslation builds a translation-only dual quaternion: (1, ½t).
func dqFromTranslation(t mgl64.Vec3) dualquat.Number {
	return dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{Imag: t[0] / 2, Jmag: t[1] / 2, Kmag: t[2] / 2},
	}
}

// dqTranslation extracts the translation t = 2·d·conj(r).
func dqTranslation(d dualquat.Number) mgl64.Vec3 {
	t := quat.Mul(quat.Scale(2, d.Dual), quat.Conj(d.Real))
	return mgl64.Vec3{t.Imag, t.Jmag, t.Kmag}
}

// dqToMat4 converts a unit dual quaternion to a homogeneous matrix: the
// rotation block from the non-dual part, the translation column extracted
// from the dual part.
func dqToMat4(d dualquat.Number) mgl64.Mat4 {
	r := mgl64.Quat{W: d.Real.Real, V: mgl64.Vec3{d.Real.Imag, d.Real.Jmag, d.Real.Kmag}}
	out := r.Mat4()
	t := dqTranslation(d)
	out.SetCol(3, mgl64.Vec4{t[0], t[1], t[2], 1})
	return out
}

// dqFromMat4 converts a rigid matrix to a unit dual quaternion. Panics when
// the matrix is not a proper rigid transformation (reflections are not
// representable).
func dqFromMat4(m mgl64.Mat4) dualquat.Number {
	if !IsRigid(m) || m.Mat3().Det() < 0 {
		panic("arbor/xform: FromMat4: matrix is not a proper rigid transformation")
	}
	q := mgl64.Mat4ToQuat(m).Normalize()
	r := quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
	tq := quat.Number{Imag: m.At(0, 3), Jmag: m.At(1, 3), Kmag: m.At(2, 3)}
	return dualquat.Number{Real: r, Dual: quat.Scale(0.5, quat.Mul(tq, r))}
}
