package scf

import "gonum.org/v1/gonum/mat"

// densityMatrix builds D = occ * C_occ C_occ^T from the nocc
// lowest-energy orbitals. Orbital energies arrive ascending from the
// eigensolver, so occupation is strictly by energy with deterministic
// column-order tie-break.
func densityMatrix(orb *Orbitals, nocc int, occ float64) *mat.SymDense {
	n, _ := orb.C.Dims()
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var v float64
			for k := 0; k < nocc; k++ {
				v += orb.C.At(i, k) * orb.C.At(j, k)
			}
			d.SetSym(i, j, occ*v)
		}
	}
	return d
}

// TraceProduct returns Tr(A B) for symmetric matrices; with the
// overlap matrix as B it recovers the electron count of a density.
func TraceProduct(a, b *mat.SymDense) float64 {
	n := a.SymmetricDim()
	var tr float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			tr += a.At(i, j) * b.At(i, j)
		}
	}
	return tr
}
