package scf

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// orthogonalizer solves the generalized eigenvalue problem
// F C = S C e by canonical orthogonalization: a transformation
// X = U s^(-1/2) built once per solve from the overlap matrix, with
// eigendirections of S below the threshold dropped. Near-singular
// overlaps are a known occurrence in extended basis sets and are
// reported, not fatal.
type orthogonalizer struct {
	x *mat.Dense
	n int // basis dimension
	m int // retained dimension
}

func newOrthogonalizer(s *mat.SymDense, threshold float64) (*orthogonalizer, error) {
	n := s.SymmetricDim()
	var eig mat.EigenSym
	if ok := eig.Factorize(s, true); !ok {
		return nil, errors.New("overlap matrix eigendecomposition failed")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	kept := make([]int, 0, n)
	for i, v := range vals {
		if v > threshold {
			kept = append(kept, i)
		}
	}
	if len(kept) == 0 {
		return nil, errors.New("overlap matrix is singular: no eigenvalue above threshold")
	}
	if len(kept) < n {
		log.Warningf("near-linear dependence in basis: dropping %d of %d overlap eigendirections (threshold %g)",
			n-len(kept), n, threshold)
	}

	x := mat.NewDense(n, len(kept), nil)
	for j, idx := range kept {
		w := 1 / math.Sqrt(vals[idx])
		for i := 0; i < n; i++ {
			x.Set(i, j, vecs.At(i, idx)*w)
		}
	}
	return &orthogonalizer{x: x, n: n, m: len(kept)}, nil
}

func (o *orthogonalizer) dropped() int { return o.n - o.m }

// solve diagonalizes a Fock matrix in the orthogonal subspace and
// back-transforms the eigenvectors. The returned orbital energies are
// ascending; gonum's ordering is deterministic, which fixes the
// occupation tie-break for degenerate levels.
func (o *orthogonalizer) solve(f *mat.SymDense) (*Orbitals, error) {
	var tmp, ft mat.Dense
	tmp.Mul(o.x.T(), f)
	ft.Mul(&tmp, o.x)

	fsym := mat.NewSymDense(o.m, nil)
	for i := 0; i < o.m; i++ {
		for j := i; j < o.m; j++ {
			fsym.SetSym(i, j, 0.5*(ft.At(i, j)+ft.At(j, i)))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(fsym, true); !ok {
		return nil, errors.New("Fock matrix eigendecomposition failed")
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	var c mat.Dense
	c.Mul(o.x, &vecs)
	return &Orbitals{Energies: eig.Values(nil), C: &c}, nil
}
