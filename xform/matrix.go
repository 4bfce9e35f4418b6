package xform

import "github.com/go-gl/mathgl/mgl64"

// IsRigid reports whether m represents a rigid transformation: an orthogonal
// upper-left 3x3 block and a [0 0 0 1] bottom row.
func IsRigid(m mgl64.Mat4) bool {
	if !mgl64.FloatEqualThreshold(m.At(3, 0), 0, normEps) ||
		!mgl64.FloatEqualThreshold(m.At(3, 1), 0, normEps) ||
		!mgl64.FloatEqualThreshold(m.At(3, 2), 0, normEps) ||
		!mgl64.FloatEqualThreshold(m.At(3, 3), 1, normEps) {
		return false
	}
	r := m.Mat3()
	return r.Mul3(r.Transpose()).ApproxEqualThreshold(mgl64.Ident3(), normEps)
}

// rigidInverse inverts a rigid matrix by transposing the rotation block:
// inv = [Rᵀ | -Rᵀt].
func rigidInverse(m mgl64.Mat4) mgl64.Mat4 {
	rt := m.Mat3().Transpose()
	t := mgl64.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}
	ti := rt.Mul3x1(t).Mul(-1)
	out := rt.Mat4()
	out.SetCol(3, mgl64.Vec4{ti[0], ti[1], ti[2], 1})
	return out
}

// orthonormalize re-orthonormalizes the rotation block of a rigid matrix
// with Gram-Schmidt, keeping the translation column.
func orthonormalize(m mgl64.Mat4) mgl64.Mat4 {
	c0 := m.Col(0).Vec3().Normalize()
	c1 := m.Col(1).Vec3()
	c1 = c1.Sub(c0.Mul(c0.Dot(c1))).Normalize()
	c2 := m.Col(2).Vec3()
	c2 = c2.Sub(c0.Mul(c0.Dot(c2))).Sub(c1.Mul(c1.Dot(c2))).Normalize()

	out := m
	out.SetCol(0, mgl64.Vec4{c0[0], c0[1], c0[2], 0})
	out.SetCol(1, mgl64.Vec4{c1[0], c1[1], c1[2], 0})
	out.SetCol(2, mgl64.Vec4{c2[0], c2[1], c2[2], 0})
	return out
}

// isPlanar reports whether m maps the z=0 plane to itself without touching
// the z axis: the 2x2 xy block and translation are free, z passes through
// unchanged.
func isPlanar(m mgl64.Mat4) bool {
	for i := 0; i < 4; i++ {
		want := 0.0
		if i == 2 {
			want = 1
		}
		if !mgl64.FloatEqualThreshold(m.At(2, i), want, normEps) ||
			!mgl64.FloatEqualThreshold(m.At(i, 2), want, normEps) {
			return false
		}
	}
	return mgl64.FloatEqualThreshold(m.At(3, 0), 0, normEps) &&
		mgl64.FloatEqualThreshold(m.At(3, 1), 0, normEps) &&
		mgl64.FloatEqualThreshold(m.At(3, 3), 1, normEps)
}

// planarMat3 extracts the 2D homogeneous matrix acting on the z=0 plane.
func planarMat3(m mgl64.Mat4) mgl64.Mat3 {
	return mgl64.Mat3{
		m.At(0, 0), m.At(1, 0), 0,
		m.At(0, 1), m.At(1, 1), 0,
		m.At(0, 3), m.At(1, 3), 1,
	}
}
