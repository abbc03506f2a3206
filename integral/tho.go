package integral

import (
	"math"

	"gonum.org/v1/gonum/num/dual"
)

// The primitive kernels below are the closed-form expressions of
// Taketa, Huzinaga & O-ohata (J. Phys. Soc. Jpn. 21 (1966) 2313) for
// integrals over unnormalized Cartesian Gaussian primitives. They are
// written in forward-mode dual-number arithmetic so that exact first
// derivatives with respect to any seeded input (a nuclear coordinate)
// fall out of the same code path that produces the values.

// prim is an unnormalized Cartesian Gaussian primitive. Normalization
// lives in the contraction coefficients (see basis.Build).
type prim struct {
	alpha  dual.Number
	center [3]dual.Number
	lmn    [3]int
}

func cnst(x float64) dual.Number { return dual.Number{Real: x} }

// powi raises a dual number to a non-negative integer power by
// repeated multiplication, which keeps the derivative exact at zero
// base (the symmetric-molecule case).
func powi(d dual.Number, n int) dual.Number {
	out := cnst(1)
	for ; n > 0; n-- {
		out = dual.Mul(out, d)
	}
	return out
}

func fact(n int) float64 {
	out := 1.0
	for ; n > 1; n-- {
		out *= float64(n)
	}
	return out
}

func dfact(n int) float64 {
	out := 1.0
	for ; n > 1; n -= 2 {
		out *= float64(n)
	}
	return out
}

func binom(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	return fact(n) / (fact(k) * fact(n-k))
}

// gaussianProduct returns the exponent, center and pre-exponential
// factor of the product Gaussian of two primitives.
func gaussianProduct(a, b prim) (gamma dual.Number, p [3]dual.Number, pre dual.Number) {
	gamma = dual.Add(a.alpha, b.alpha)
	ab2 := cnst(0)
	for ax := 0; ax < 3; ax++ {
		d := dual.Sub(a.center[ax], b.center[ax])
		ab2 = dual.Add(ab2, dual.Mul(d, d))
		p[ax] = dual.Mul(
			dual.Add(dual.Mul(a.alpha, a.center[ax]), dual.Mul(b.alpha, b.center[ax])),
			dual.Inv(gamma))
	}
	pre = dual.Exp(dual.Mul(dual.Scale(-1, dual.Mul(dual.Mul(a.alpha, b.alpha), dual.Inv(gamma))), ab2))
	return gamma, p, pre
}

// binomFactor is the coefficient f_j of x^j in (x+a)^l1 (x+b)^l2
// (THO Eq. 2.4).
func binomFactor(j, l1, l2 int, a, b dual.Number) dual.Number {
	out := cnst(0)
	for i := max(0, j-l2); i <= min(j, l1); i++ {
		c := binom(l1, i) * binom(l2, j-i)
		out = dual.Add(out, dual.Scale(c,
			dual.Mul(powi(a, l1-i), powi(b, l2-(j-i)))))
	}
	return out
}

// overlap1d is the one-dimensional overlap sum (THO Eq. 2.12).
func overlap1d(l1, l2 int, pa, pb, gamma dual.Number) dual.Number {
	out := cnst(0)
	inv2g := dual.Inv(dual.Scale(2, gamma))
	for s := 0; s <= (l1+l2)/2; s++ {
		out = dual.Add(out, dual.Scale(dfact(2*s-1),
			dual.Mul(binomFactor(2*s, l1, l2, pa, pb), powi(inv2g, s))))
	}
	return out
}

// overlapPrim is the overlap integral of two primitives.
func overlapPrim(a, b prim) dual.Number {
	gamma, p, pre := gaussianProduct(a, b)
	out := dual.Mul(dual.PowReal(dual.Scale(math.Pi, dual.Inv(gamma)), 1.5), pre)
	for ax := 0; ax < 3; ax++ {
		pa := dual.Sub(p[ax], a.center[ax])
		pb := dual.Sub(p[ax], b.center[ax])
		out = dual.Mul(out, overlap1d(a.lmn[ax], b.lmn[ax], pa, pb, gamma))
	}
	return out
}

// kineticPrim is the kinetic-energy integral, expressed through
// overlaps with angular momenta shifted by +-2 on the ket.
func kineticPrim(a, b prim) dual.Number {
	t0 := dual.Scale(float64(2*(b.lmn[0]+b.lmn[1]+b.lmn[2])+3),
		dual.Mul(b.alpha, overlapPrim(a, b)))

	t1 := cnst(0)
	t2 := cnst(0)
	for ax := 0; ax < 3; ax++ {
		up := b
		up.lmn[ax] += 2
		t1 = dual.Add(t1, overlapPrim(a, up))

		l := b.lmn[ax]
		if l >= 2 {
			down := b
			down.lmn[ax] -= 2
			t2 = dual.Add(t2, dual.Scale(float64(l*(l-1)), overlapPrim(a, down)))
		}
	}
	alpha2 := dual.Mul(b.alpha, b.alpha)
	return dual.Sub(dual.Sub(t0, dual.Scale(2, dual.Mul(alpha2, t1))), dual.Scale(0.5, t2))
}

// nuclearA builds the one-dimensional A array of the nuclear
// attraction expansion (THO Eq. 2.18).
func nuclearA(l1, l2 int, pa, pb, pc, eps dual.Number) []dual.Number {
	out := make([]dual.Number, l1+l2+1)
	for i := 0; i <= l1+l2; i++ {
		fi := binomFactor(i, l1, l2, pa, pb)
		for r := 0; r <= i/2; r++ {
			for u := 0; u <= (i-2*r)/2; u++ {
				idx := i - 2*r - u
				sign := 1.0
				if (i+u)%2 == 1 {
					sign = -1
				}
				c := sign * fact(i) / (fact(r) * fact(u) * fact(i-2*r-2*u))
				term := dual.Scale(c, dual.Mul(fi,
					dual.Mul(powi(pc, i-2*r-2*u), powi(eps, r+u))))
				out[idx] = dual.Add(out[idx], term)
			}
		}
	}
	return out
}

// nuclearPrim is the nuclear-attraction integral of two primitives
// with a nucleus of charge z at c. The returned value is negative.
func nuclearPrim(a, b prim, c [3]dual.Number, z float64) dual.Number {
	gamma, p, pre := gaussianProduct(a, b)
	eps := dual.Inv(dual.Scale(4, gamma))

	pc2 := cnst(0)
	var as [3][]dual.Number
	for ax := 0; ax < 3; ax++ {
		pa := dual.Sub(p[ax], a.center[ax])
		pb := dual.Sub(p[ax], b.center[ax])
		pc := dual.Sub(p[ax], c[ax])
		pc2 = dual.Add(pc2, dual.Mul(pc, pc))
		as[ax] = nuclearA(a.lmn[ax], b.lmn[ax], pa, pb, pc, eps)
	}

	x := dual.Mul(gamma, pc2)
	sum := cnst(0)
	for i := range as[0] {
		for j := range as[1] {
			for k := range as[2] {
				f := boysDual(i+j+k, x)
				sum = dual.Add(sum, dual.Mul(dual.Mul(as[0][i], as[1][j]), dual.Mul(as[2][k], f)))
			}
		}
	}
	head := dual.Scale(-2*math.Pi*z, dual.Inv(gamma))
	return dual.Mul(dual.Mul(head, pre), sum)
}

// eriH is the H auxiliary of the ERI expansion. THO Eq. 3.5 misprints
// the gamma power; (4 gamma)^(r-i) is the form consistent with
// Eq. 2.22.
func eriH(l1, l2, i, r int, pa, pb, gamma dual.Number) dual.Number {
	c := fact(i) / (fact(r) * fact(i-2*r))
	inv4g := dual.Inv(dual.Scale(4, gamma))
	return dual.Scale(c, dual.Mul(binomFactor(i, l1, l2, pa, pb), powi(inv4g, i-r)))
}

// eriB builds the one-dimensional B array of the ERI expansion
// (THO Eqs. 2.22, 3.4).
func eriB(l1, l2, l3, l4 int, pa, pb, qc, qd, qp, gp, gq, delta dual.Number) []dual.Number {
	out := make([]dual.Number, l1+l2+l3+l4+1)
	invDelta := dual.Inv(delta)
	for i1 := 0; i1 <= l1+l2; i1++ {
		for r1 := 0; r1 <= i1/2; r1++ {
			h1 := eriH(l1, l2, i1, r1, pa, pb, gp)
			for i2 := 0; i2 <= l3+l4; i2++ {
				for r2 := 0; r2 <= i2/2; r2++ {
					h2 := eriH(l3, l4, i2, r2, qc, qd, gq)
					h12 := dual.Mul(h1, h2)
					for u := 0; u <= (i1+i2)/2-r1-r2; u++ {
						idx := i1 + i2 - 2*(r1+r2) - u
						sign := 1.0
						if (i2+u)%2 == 1 {
							sign = -1
						}
						c := sign * fact(idx+u) / (fact(u) * fact(idx-u))
						term := dual.Scale(c, dual.Mul(h12,
							dual.Mul(powi(qp, idx-u), powi(invDelta, idx))))
						out[idx] = dual.Add(out[idx], term)
					}
				}
			}
		}
	}
	return out
}

// eriPrim is the electron-repulsion integral (ab|cd) over primitives
// in chemists' notation.
func eriPrim(a, b, c, d prim) dual.Number {
	gp, p, preP := gaussianProduct(a, b)
	gq, q, preQ := gaussianProduct(c, d)
	delta := dual.Add(dual.Inv(dual.Scale(4, gp)), dual.Inv(dual.Scale(4, gq)))

	qp2 := cnst(0)
	var bs [3][]dual.Number
	for ax := 0; ax < 3; ax++ {
		pa := dual.Sub(p[ax], a.center[ax])
		pb := dual.Sub(p[ax], b.center[ax])
		qc := dual.Sub(q[ax], c.center[ax])
		qd := dual.Sub(q[ax], d.center[ax])
		qp := dual.Sub(q[ax], p[ax])
		qp2 = dual.Add(qp2, dual.Mul(qp, qp))
		bs[ax] = eriB(a.lmn[ax], b.lmn[ax], c.lmn[ax], d.lmn[ax],
			pa, pb, qc, qd, qp, gp, gq, delta)
	}

	x := dual.Mul(qp2, dual.Inv(dual.Scale(4, delta)))
	sum := cnst(0)
	for i := range bs[0] {
		for j := range bs[1] {
			for k := range bs[2] {
				f := boysDual(i+j+k, x)
				sum = dual.Add(sum, dual.Mul(dual.Mul(bs[0][i], bs[1][j]), dual.Mul(bs[2][k], f)))
			}
		}
	}

	head := dual.Scale(2*math.Pi*math.Pi, dual.Inv(dual.Mul(gp, gq)))
	head = dual.Mul(head, dual.Sqrt(dual.Scale(math.Pi, dual.Inv(dual.Add(gp, gq)))))
	return dual.Mul(dual.Mul(head, dual.Mul(preP, preQ)), sum)
}
