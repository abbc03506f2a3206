// Package deriv differentiates converged SCF energies with respect to
// nuclear coordinates. The gradient is analytic: integral derivatives
// come from dual-number evaluation of the integral kernels, and the
// orbital response at a converged fixed point reduces to the
// energy-weighted density contracted with the overlap derivative.
package deriv

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/goscf/goscf/basis"
	"github.com/goscf/goscf/chem"
	"github.com/goscf/goscf/integral"
	"github.com/goscf/goscf/scf"
)

// Gradient returns the derivative of the converged restricted SCF
// energy with respect to every nuclear coordinate, as a flat 3N slice
// ordered like Molecule.Coordinates. The result must come from a
// converged closed-shell solve.
func Gradient(mol *chem.Molecule, b *basis.Set, res *scf.Result) ([]float64, error) {
	if !res.Converged {
		return nil, fmt.Errorf("gradient requires a converged result, got status %v", res.Status)
	}
	if res.OrbitalsBeta != nil {
		return nil, fmt.Errorf("gradient supports restricted results only")
	}
	nele, err := mol.NElectrons()
	if err != nil {
		return nil, err
	}
	nocc := nele / 2

	d := res.Density
	w := energyWeightedDensity(res.Orbitals, nocc)
	n := d.SymmetricDim()

	grad := mol.NuclearRepulsionGradient()
	for atom := range mol.Atoms {
		for axis := 0; axis < 3; axis++ {
			dset := integral.CoordinateDerivative(b, atom, axis)
			if dset.N != n {
				return nil, fmt.Errorf("derivative dimension %d does not match density dimension %d", dset.N, n)
			}
			grad[3*atom+axis] += electronicGradient(d, w, dset)
		}
	}
	return grad, nil
}

// electronicGradient contracts the density and energy-weighted density
// with the integral derivatives:
// dE = Tr(D dH) + 1/2 sum D D d(mn|ls) - 1/4 sum D D d(ml|ns) - Tr(W dS).
func electronicGradient(d, w *mat.SymDense, dset *integral.Derivative) float64 {
	n := dset.N
	var g float64
	for mu := 0; mu < n; mu++ {
		for nu := 0; nu < n; nu++ {
			g += d.At(mu, nu) * dset.Hcore.At(mu, nu)
			g -= w.At(mu, nu) * dset.S.At(mu, nu)
		}
	}
	for mu := 0; mu < n; mu++ {
		for nu := 0; nu < n; nu++ {
			dmn := d.At(mu, nu)
			if dmn == 0 {
				continue
			}
			for la := 0; la < n; la++ {
				for si := 0; si < n; si++ {
					dls := d.At(la, si)
					g += dmn * dls * (0.5*dset.ERIAt(mu, nu, la, si) - 0.25*dset.ERIAt(mu, la, nu, si))
				}
			}
		}
	}
	return g
}

// energyWeightedDensity builds W = 2 sum_i e_i c_i c_i^T over the
// occupied orbitals. At a converged fixed point it carries the whole
// orbital response, so no coupled-perturbed equations are needed.
func energyWeightedDensity(orb *scf.Orbitals, nocc int) *mat.SymDense {
	n, _ := orb.C.Dims()
	w := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var v float64
			for k := 0; k < nocc; k++ {
				v += orb.Energies[k] * orb.C.At(i, k) * orb.C.At(j, k)
			}
			w.SetSym(i, j, 2*v)
		}
	}
	return w
}
