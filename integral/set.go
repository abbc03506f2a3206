// Package integral evaluates one- and two-electron integrals over
// contracted Cartesian Gaussian basis functions using the closed-form
// Taketa-Huzinaga-O-ohata expressions, together with their exact
// derivatives with respect to nuclear coordinates.
package integral

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dual"

	"github.com/goscf/goscf/basis"
)

// Set is the immutable integral bundle for one molecule and basis:
// overlap, kinetic, nuclear attraction, core Hamiltonian, the dense
// electron-repulsion tensor and the nuclear-repulsion energy. It is
// recomputed, never mutated, when the geometry or basis changes.
type Set struct {
	N     int
	S     *mat.SymDense
	T     *mat.SymDense
	V     *mat.SymDense
	Hcore *mat.SymDense
	ERI   []float64
	Vnn   float64
}

// ERIAt returns the electron-repulsion integral (ij|kl) in chemists'
// notation.
func (s *Set) ERIAt(i, j, k, l int) float64 {
	return s.ERI[((i*s.N+j)*s.N+k)*s.N+l]
}

// Derivative holds the derivatives of an integral Set with respect to
// one nuclear coordinate.
type Derivative struct {
	N     int
	S     *mat.SymDense
	Hcore *mat.SymDense
	ERI   []float64
}

// ERIAt returns the derivative of (ij|kl).
func (d *Derivative) ERIAt(i, j, k, l int) float64 {
	return d.ERI[((i*d.N+j)*d.N+k)*d.N+l]
}

// Compute evaluates all integrals for a basis set expansion.
func Compute(b *basis.Set) *Set {
	set, _ := compute(b, -1, 0)
	return set
}

// CoordinateDerivative evaluates the derivatives of the overlap, core
// Hamiltonian and ERI tensor with respect to one nuclear coordinate by
// seeding the dual-number perturbation on that coordinate.
func CoordinateDerivative(b *basis.Set, atom, axis int) *Derivative {
	_, d := compute(b, atom, axis)
	return d
}

// funcPrims is one contracted basis function prepared for the kernels:
// primitives with (possibly seeded) dual centers plus contraction
// coefficients.
type funcPrims struct {
	prims []prim
	coefs []float64
}

// seedPrims prepares every basis function, marking the perturbed
// coordinate with a unit dual seed. atom < 0 seeds nothing.
func seedPrims(b *basis.Set, atom, axis int) []funcPrims {
	out := make([]funcPrims, b.Size())
	for i, f := range b.Funcs {
		var center [3]dual.Number
		for ax := 0; ax < 3; ax++ {
			center[ax] = cnst(f.Center[ax])
		}
		if f.Atom == atom {
			center[axis].Emag = 1
		}
		fp := funcPrims{
			prims: make([]prim, len(f.Prims)),
			coefs: make([]float64, len(f.Prims)),
		}
		for k, g := range f.Prims {
			fp.prims[k] = prim{alpha: cnst(g.Alpha), center: center, lmn: f.L}
			fp.coefs[k] = g.Coef
		}
		out[i] = fp
	}
	return out
}

func contract2(a, b funcPrims, kernel func(x, y prim) dual.Number) dual.Number {
	out := cnst(0)
	for i, pa := range a.prims {
		for j, pb := range b.prims {
			out = dual.Add(out, dual.Scale(a.coefs[i]*b.coefs[j], kernel(pa, pb)))
		}
	}
	return out
}

func contract4(a, b, c, d funcPrims) dual.Number {
	out := cnst(0)
	for i, pa := range a.prims {
		for j, pb := range b.prims {
			for k, pc := range c.prims {
				for l, pd := range d.prims {
					w := a.coefs[i] * b.coefs[j] * c.coefs[k] * d.coefs[l]
					out = dual.Add(out, dual.Scale(w, eriPrim(pa, pb, pc, pd)))
				}
			}
		}
	}
	return out
}

func compute(b *basis.Set, atom, axis int) (*Set, *Derivative) {
	n := b.Size()
	fps := seedPrims(b, atom, axis)

	nuclei := make([][3]dual.Number, len(b.Mol.Atoms))
	for i, at := range b.Mol.Atoms {
		for ax := 0; ax < 3; ax++ {
			nuclei[i][ax] = cnst(at.Position[ax])
		}
		if i == atom {
			nuclei[i][axis].Emag = 1
		}
	}

	set := &Set{
		N:     n,
		S:     mat.NewSymDense(n, nil),
		T:     mat.NewSymDense(n, nil),
		V:     mat.NewSymDense(n, nil),
		Hcore: mat.NewSymDense(n, nil),
		ERI:   make([]float64, n*n*n*n),
		Vnn:   b.Mol.NuclearRepulsion(),
	}
	der := &Derivative{
		N:     n,
		S:     mat.NewSymDense(n, nil),
		Hcore: mat.NewSymDense(n, nil),
		ERI:   make([]float64, n*n*n*n),
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := contract2(fps[i], fps[j], overlapPrim)
			t := contract2(fps[i], fps[j], kineticPrim)
			v := cnst(0)
			for ni, at := range b.Mol.Atoms {
				c := nuclei[ni]
				z := float64(at.Z)
				v = dual.Add(v, contract2(fps[i], fps[j], func(x, y prim) dual.Number {
					return nuclearPrim(x, y, c, z)
				}))
			}
			set.S.SetSym(i, j, s.Real)
			set.T.SetSym(i, j, t.Real)
			set.V.SetSym(i, j, v.Real)
			set.Hcore.SetSym(i, j, t.Real+v.Real)
			der.S.SetSym(i, j, s.Emag)
			der.Hcore.SetSym(i, j, t.Emag+v.Emag)
		}
	}

	forUniqueERI(n, func(i, j, k, l int) {
		e := contract4(fps[i], fps[j], fps[k], fps[l])
		fillERI(set.ERI, n, i, j, k, l, e.Real)
		fillERI(der.ERI, n, i, j, k, l, e.Emag)
	})

	return set, der
}

// forUniqueERI visits the unique (ij|kl) index quadruples under the
// standard 8-fold permutation symmetry, in the four-index ordering of
// S. Wilson.
func forUniqueERI(n int, visit func(i, j, k, l int)) {
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			for k := 0; k <= i; k++ {
				lmax := k
				if i == k {
					lmax = j
				}
				for l := 0; l <= lmax; l++ {
					visit(i, j, k, l)
				}
			}
		}
	}
}

// fillERI writes one unique integral into all eight symmetry-related
// slots of the dense tensor.
func fillERI(eri []float64, n, i, j, k, l int, v float64) {
	idx := func(a, b, c, d int) int { return ((a*n+b)*n+c)*n + d }
	eri[idx(i, j, k, l)] = v
	eri[idx(i, j, l, k)] = v
	eri[idx(j, i, k, l)] = v
	eri[idx(j, i, l, k)] = v
	eri[idx(k, l, i, j)] = v
	eri[idx(k, l, j, i)] = v
	eri[idx(l, k, i, j)] = v
	eri[idx(l, k, j, i)] = v
}
