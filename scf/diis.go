package scf

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// diis accelerates the SCF fixed-point iteration by direct inversion
// in the iterative subspace: it keeps a bounded history of Fock
// matrices with their commutator error vectors and extrapolates the
// linear combination whose error has least norm under the constraint
// that the coefficients sum to one. The history is owned by one solve
// and evicted FIFO. Spin channels share one coefficient set.
type diis struct {
	capacity int
	start    int
	fs       [][]*mat.SymDense
	errs     [][]float64
}

func newDIIS(capacity, start int) *diis {
	if capacity < 2 {
		capacity = 2
	}
	return &diis{capacity: capacity, start: start}
}

// errorVector forms e = X^T (F D S - S D F) X, the orbital-gradient
// measure of how far (F, D) is from self-consistency, expressed in the
// orthogonal subspace.
func errorVector(f, d, s *mat.SymDense, orth *orthogonalizer) []float64 {
	var fds, sdf, tmp mat.Dense
	tmp.Mul(f, d)
	fds.Mul(&tmp, s)
	tmp.Mul(s, d)
	sdf.Mul(&tmp, f)
	fds.Sub(&fds, &sdf)

	var half, e mat.Dense
	half.Mul(orth.x.T(), &fds)
	e.Mul(&half, orth.x)

	out := make([]float64, orth.m*orth.m)
	copy(out, e.RawMatrix().Data)
	return out
}

// rms is the root-mean-square of an error vector, the density-error
// norm tested for convergence.
func rms(e []float64) float64 {
	sq := make([]float64, len(e))
	for i, v := range e {
		sq[i] = v * v
	}
	return math.Sqrt(stat.Mean(sq, nil))
}

// add appends one iteration's Fock matrices (one per spin channel)
// and concatenated error vector to the history.
func (x *diis) add(fs []*mat.SymDense, err []float64) {
	kept := make([]*mat.SymDense, len(fs))
	for i, f := range fs {
		c := mat.NewSymDense(f.SymmetricDim(), nil)
		c.CopySym(f)
		kept[i] = c
	}
	x.fs = append(x.fs, kept)
	x.errs = append(x.errs, err)
	if len(x.fs) > x.capacity {
		x.fs = x.fs[1:]
		x.errs = x.errs[1:]
	}
}

// extrapolate solves the Pulay least-squares system and returns the
// combined Fock matrices. ok is false when the history is too short
// or the system is singular; the caller then proceeds with the
// unextrapolated Fock matrix.
func (x *diis) extrapolate(iteration int) ([]*mat.SymDense, bool) {
	k := len(x.fs)
	if k < 2 || iteration < x.start {
		return nil, false
	}

	// B-matrix of error overlaps with the -1 border enforcing
	// sum(c) = 1.
	b := mat.NewDense(k+1, k+1, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			var dot float64
			for t := range x.errs[i] {
				dot += x.errs[i][t] * x.errs[j][t]
			}
			b.Set(i, j, dot)
		}
		b.Set(i, k, -1)
		b.Set(k, i, -1)
	}
	rhs := mat.NewVecDense(k+1, nil)
	rhs.SetVec(k, -1)

	var lu mat.LU
	lu.Factorize(b)
	var coefs mat.VecDense
	if err := lu.SolveVecTo(&coefs, false, rhs); err != nil {
		log.Debugf("DIIS system singular, skipping extrapolation: %v", err)
		return nil, false
	}

	nchan := len(x.fs[0])
	out := make([]*mat.SymDense, nchan)
	for c := 0; c < nchan; c++ {
		dim := x.fs[0][c].SymmetricDim()
		f := mat.NewSymDense(dim, nil)
		for i := 0; i < k; i++ {
			addScaled(f, coefs.AtVec(i), x.fs[i][c])
		}
		out[c] = f
	}
	return out, true
}
