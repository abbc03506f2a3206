// Package scf solves the self-consistent-field problem (Hartree-Fock
// or, with a pluggable functional, Kohn-Sham) over a Gaussian basis:
// the fixed-point iteration density -> Fock -> orbitals -> density,
// accelerated by DIIS extrapolation, with convergence and failure as
// first-class result states.
package scf

import (
	"fmt"
	"math"

	"github.com/op/go-logging"
	"gonum.org/v1/gonum/mat"

	"github.com/goscf/goscf/checkpoint"
	"github.com/goscf/goscf/chem"
	"github.com/goscf/goscf/integral"
)

var log = logging.MustGetLogger("scf")

// Solve runs a restricted (closed-shell) SCF solve. A solve that does
// not converge within the iteration cap returns a Result with
// StatusMaxIterations and no error; errors are reserved for invalid
// inputs and failed linear algebra.
func Solve(mol *chem.Molecule, set *integral.Set, cfg Config) (*Result, error) {
	nele, err := mol.NElectrons()
	if err != nil {
		return nil, err
	}
	if nele%2 != 0 || mol.Multiplicity > 1 {
		return nil, fmt.Errorf("restricted solve requires a closed shell: %d electrons, multiplicity %d",
			nele, mol.Multiplicity)
	}
	nocc := nele / 2

	orth, err := newOrthogonalizer(set.S, cfg.LinDepThreshold)
	if err != nil {
		return nil, err
	}
	if orth.m < nocc {
		return nil, fmt.Errorf("only %d orthogonal basis directions left for %d occupied orbitals", orth.m, nocc)
	}

	d, err := initialDensity(set, cfg, orth, nocc, 2)
	if err != nil {
		return nil, err
	}

	acc := newDIIS(cfg.DIISCapacity, cfg.DIISStart)
	res := &Result{DroppedFunctions: orth.dropped()}
	var orbs *Orbitals
	ePrev := 0.0

	for it := 1; it <= cfg.MaxIterations; it++ {
		j := coulomb(set, d)
		var k *mat.SymDense
		if cfg.ExactExchange != 0 {
			k = exchange(set, d)
		}
		exc := 0.0
		var vxc *mat.SymDense
		if cfg.XC != nil {
			exc, vxc, err = cfg.XC.EnergyAndPotential(d)
			if err != nil {
				return nil, err
			}
			if err := checkShape("XC potential", vxc.SymmetricDim(), set.N); err != nil {
				return nil, err
			}
		}

		f := mat.NewSymDense(set.N, nil)
		f.CopySym(set.Hcore)
		addScaled(f, 1, j)
		if k != nil {
			addScaled(f, -0.5*cfg.ExactExchange, k)
		}
		if vxc != nil {
			addScaled(f, 1, vxc)
		}

		e := electronicEnergy(set, d, j, k, cfg.ExactExchange, exc) + set.Vnn
		ev := errorVector(f, d, set.S, orth)
		errNorm := rms(ev)
		dE := e - ePrev
		ePrev = e

		res.Trajectory = append(res.Trajectory, IterationStat{
			Iteration: it, Energy: e, DeltaE: dE, ErrorNorm: errNorm,
		})
		log.Infof("iteration %3d  E = %.10f  dE = %+.3e  rms = %.3e", it, e, dE, errNorm)
		saveSnapshot(cfg.Checkpoint, e, d, it, false)

		if it > 1 && math.Abs(dE) < cfg.EnergyTolerance && errNorm < cfg.DensityTolerance {
			orbs, err = orth.solve(f)
			if err != nil {
				return nil, err
			}
			res.Energy = e
			res.Electronic = e - set.Vnn
			res.Density = d
			res.Orbitals = orbs
			res.Status = StatusConverged
			res.Converged = true
			res.Iterations = it
			log.Noticef("SCF converged after %d iterations, E = %.10f", it, e)
			saveSnapshot(cfg.Checkpoint, e, d, it, true)
			return res, nil
		}

		acc.add([]*mat.SymDense{f}, ev)
		if fx, ok := acc.extrapolate(it); ok {
			f = fx[0]
		}

		orbs, err = orth.solve(f)
		if err != nil {
			return nil, err
		}
		d = densityMatrix(orbs, nocc, 2)

		res.Energy = e
		res.Electronic = e - set.Vnn
		res.Iterations = it
	}

	log.Warningf("SCF did not converge within %d iterations", cfg.MaxIterations)
	res.Density = d
	res.Orbitals = orbs
	res.Status = StatusMaxIterations
	res.Converged = false
	return res, nil
}

// electronicEnergy evaluates the electronic energy from the density
// and the pre-extrapolation Fock ingredients:
// E = Tr(D H) + 1/2 Tr(D J) - a/4 Tr(D K) + Exc. For pure
// Hartree-Fock this reduces to the familiar 1/2 Tr(D (H + F)).
func electronicEnergy(set *integral.Set, d, j, k *mat.SymDense, a, exc float64) float64 {
	e := TraceProduct(d, set.Hcore) + 0.5*TraceProduct(d, j)
	if k != nil {
		e -= 0.25 * a * TraceProduct(d, k)
	}
	return e + exc
}

// initialDensity builds the starting density for one spin-summed
// channel: core-Hamiltonian diagonalization or a caller-provided
// matrix.
func initialDensity(set *integral.Set, cfg Config, orth *orthogonalizer, nocc int, occ float64) (*mat.SymDense, error) {
	switch cfg.Guess {
	case GuessDensity:
		if cfg.InitialDensity == nil {
			return nil, fmt.Errorf("density guess requested but no initial density provided")
		}
		if err := checkShape("initial density", cfg.InitialDensity.SymmetricDim(), set.N); err != nil {
			return nil, err
		}
		d := mat.NewSymDense(set.N, nil)
		d.CopySym(cfg.InitialDensity)
		return d, nil
	default:
		orbs, err := orth.solve(set.Hcore)
		if err != nil {
			return nil, err
		}
		return densityMatrix(orbs, nocc, occ), nil
	}
}

// saveSnapshot writes a checkpoint if one is configured. Mid-solve
// saves are time-throttled; the final save always goes through.
func saveSnapshot(cp *checkpoint.IO, e float64, d *mat.SymDense, it int, final bool) {
	if cp == nil || (!final && !cp.Old()) {
		return
	}
	n := d.SymmetricDim()
	raw := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			raw[i*n+j] = d.At(i, j)
		}
	}
	if err := cp.Save(&checkpoint.Data{
		Energy: e, Density: raw, N: n, Iteration: it, Converged: final, Final: final,
	}); err != nil {
		log.Errorf("checkpoint save failed: %v", err)
	}
}
