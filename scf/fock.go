package scf

import (
	"gonum.org/v1/gonum/mat"

	"github.com/goscf/goscf/integral"
)

// Functional is a pluggable exchange-correlation functional: given a
// density it returns the XC energy and the potential matrix added to
// the effective Hamiltonian. Implementations live outside this
// package; a nil Functional together with ExactExchange = 1 is
// Hartree-Fock.
type Functional interface {
	EnergyAndPotential(d *mat.SymDense) (float64, *mat.SymDense, error)
}

// coulomb contracts the ERI tensor with a density:
// J_mn = sum_ls D_ls (mn|ls).
func coulomb(set *integral.Set, d *mat.SymDense) *mat.SymDense {
	n := set.N
	j := mat.NewSymDense(n, nil)
	for mu := 0; mu < n; mu++ {
		for nu := mu; nu < n; nu++ {
			var v float64
			for la := 0; la < n; la++ {
				for si := 0; si < n; si++ {
					v += d.At(la, si) * set.ERIAt(mu, nu, la, si)
				}
			}
			j.SetSym(mu, nu, v)
		}
	}
	return j
}

// exchange contracts the ERI tensor in the exchange pattern:
// K_mn = sum_ls D_ls (ml|ns).
func exchange(set *integral.Set, d *mat.SymDense) *mat.SymDense {
	n := set.N
	k := mat.NewSymDense(n, nil)
	for mu := 0; mu < n; mu++ {
		for nu := mu; nu < n; nu++ {
			var v float64
			for la := 0; la < n; la++ {
				for si := 0; si < n; si++ {
					v += d.At(la, si) * set.ERIAt(mu, la, nu, si)
				}
			}
			k.SetSym(mu, nu, v)
		}
	}
	return k
}

// addScaled returns dst += w * m on symmetric matrices.
func addScaled(dst *mat.SymDense, w float64, m *mat.SymDense) {
	n := dst.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			dst.SetSym(i, j, dst.At(i, j)+w*m.At(i, j))
		}
	}
}
