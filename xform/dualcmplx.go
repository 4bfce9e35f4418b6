package xform

import (
	"math"
	"math/cmplx"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/dualcmplx"
)

// A unit anti-commutative dual complex number (r, d) encodes the planar
// rigid motion with rotation angle θ and translation t as r = e^{iθ/2}
// (half angle, like quaternions) and d = ½·t·conj(r), so t = 2·d·r.
// The anti-commutative product (r0·r1, r0·d1 + d0·conj(r1)) then composes
// motions correctly: the outer rotation acts on the inner translation.

// dcFromRotation builds a rotation-only dual complex number from an angle in
// radians (counterclockwise).
func dcFromRotation(angle float64) dualcmplx.Number {
	s, c := math.Sincos(angle / 2)
	return dualcmplx.Number{Real: complex(c, s)}
}

// dcFromTranslation builds a translation-only dual complex number: (1, ½t).
func dcFromTranslation(t complex128) dualcmplx.Number {
	return dualcmplx.Number{Real: 1, Dual: t / 2}
}

// dcTranslation extracts the translation t = 2·d·r.
func dcTranslation(d dualcmplx.Number) complex128 {
	return 2 * d.Dual * d.Real
}

// dcConjInverse inverts a unit dual complex number: (conj(r), -d).
func dcConjInverse(d dualcmplx.Number) dualcmplx.Number {
	return dualcmplx.Number{Real: cmplx.Conj(d.Real), Dual: -d.Dual}
}

// dcInverse inverts a general dual complex number: (1/r, -d/|r|²).
func dcInverse(d dualcmplx.Number) dualcmplx.Number {
	n := real(d.Real)*real(d.Real) + imag(d.Real)*imag(d.Real)
	return dualcmplx.Number{
		Real: cmplx.Conj(d.Real) / complex(n, 0),
		Dual: -d.Dual / complex(n, 0),
	}
}

// dcToMat3 converts a unit dual complex number to a 2D homogeneous matrix.
// The full rotation is r², the translation t = 2·d·r.
func dcToMat3(d dualcmplx.Number) mgl64.Mat3 {
	rr := d.Real * d.Real
	t := dcTranslation(d)
	return mgl64.Mat3{
		real(rr), imag(rr), 0,
		-imag(rr), real(rr), 0,
		real(t), imag(t), 1,
	}
}

// dcFromMat3 converts a 2D rigid matrix to a unit dual complex number.
// Panics when the matrix rotates out of rigidity or reflects.
func dcFromMat3(m mgl64.Mat3) dualcmplx.Number {
	if !isRigid2D(m) {
		panic("arbor/xform: FromMat3: matrix is not a 2D rigid transformation")
	}
	angle := math.Atan2(m.At(1, 0), m.At(0, 0))
	r := dcFromRotation(angle).Real
	t := complex(m.At(0, 2), m.At(1, 2))
	return dualcmplx.Number{Real: r, Dual: t * cmplx.Conj(r) / 2}
}

// isRigid2D reports whether m is a proper 2D rigid transformation: an
// orthogonal 2x2 block with positive determinant and a [0 0 1] bottom row.
func isRigid2D(m mgl64.Mat3) bool {
	a, b := m.At(0, 0), m.At(0, 1)
	c, d := m.At(1, 0), m.At(1, 1)
	det := a*d - b*c
	return mgl64.FloatEqualThreshold(a*a+c*c, 1, normEps) &&
		mgl64.FloatEqualThreshold(b*b+d*d, 1, normEps) &&
		mgl64.FloatEqualThreshold(a*b+c*d, 0, normEps) &&
		det > 0 &&
		mgl64.FloatEqualThreshold(m.At(2, 0), 0, normEps) &&
		mgl64.FloatEqualThreshold(m.At(2, 1), 0, normEps) &&
		mgl64.FloatEqualThreshold(m.At(2, 2), 1, normEps)
}
