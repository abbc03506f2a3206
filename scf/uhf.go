package scf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/goscf/goscf/chem"
	"github.com/goscf/goscf/integral"
)

// SolveUHF runs an unrestricted SCF solve with separate alpha and
// beta spin channels. The two Fock matrices share one DIIS
// extrapolation coefficient set, with the spin error vectors
// concatenated.
func SolveUHF(mol *chem.Molecule, set *integral.Set, cfg Config) (*Result, error) {
	na, nb, err := mol.SpinElectrons()
	if err != nil {
		return nil, err
	}

	orth, err := newOrthogonalizer(set.S, cfg.LinDepThreshold)
	if err != nil {
		return nil, err
	}
	if orth.m < na {
		return nil, fmt.Errorf("only %d orthogonal basis directions left for %d occupied orbitals", orth.m, na)
	}

	da, db, err := initialSpinDensities(set, cfg, orth, na, nb)
	if err != nil {
		return nil, err
	}

	acc := newDIIS(cfg.DIISCapacity, cfg.DIISStart)
	res := &Result{DroppedFunctions: orth.dropped()}
	var orbsA, orbsB *Orbitals
	ePrev := 0.0
	a := cfg.ExactExchange

	for it := 1; it <= cfg.MaxIterations; it++ {
		dt := mat.NewSymDense(set.N, nil)
		dt.CopySym(da)
		addScaled(dt, 1, db)

		j := coulomb(set, dt)
		ka := exchange(set, da)
		kb := exchange(set, db)

		exc := 0.0
		var vxc *mat.SymDense
		if cfg.XC != nil {
			exc, vxc, err = cfg.XC.EnergyAndPotential(dt)
			if err != nil {
				return nil, err
			}
			if err := checkShape("XC potential", vxc.SymmetricDim(), set.N); err != nil {
				return nil, err
			}
		}

		fa := spinFock(set, j, ka, vxc, a)
		fb := spinFock(set, j, kb, vxc, a)

		e := TraceProduct(dt, set.Hcore) + 0.5*TraceProduct(dt, j) -
			0.5*a*(TraceProduct(da, ka)+TraceProduct(db, kb)) + exc + set.Vnn

		eva := errorVector(fa, da, set.S, orth)
		evb := errorVector(fb, db, set.S, orth)
		ev := append(append([]float64{}, eva...), evb...)
		errNorm := rms(ev)
		dE := e - ePrev
		ePrev = e

		res.Trajectory = append(res.Trajectory, IterationStat{
			Iteration: it, Energy: e, DeltaE: dE, ErrorNorm: errNorm,
		})
		log.Infof("iteration %3d  E = %.10f  dE = %+.3e  rms = %.3e", it, e, dE, errNorm)
		saveSnapshot(cfg.Checkpoint, e, dt, it, false)

		if it > 1 && math.Abs(dE) < cfg.EnergyTolerance && errNorm < cfg.DensityTolerance {
			if orbsA, err = orth.solve(fa); err != nil {
				return nil, err
			}
			if orbsB, err = orth.solve(fb); err != nil {
				return nil, err
			}
			res.Energy = e
			res.Electronic = e - set.Vnn
			res.Density = dt
			res.DensityAlpha = da
			res.DensityBeta = db
			res.Orbitals = orbsA
			res.OrbitalsBeta = orbsB
			res.Status = StatusConverged
			res.Converged = true
			res.Iterations = it
			log.Noticef("SCF converged after %d iterations, E = %.10f", it, e)
			saveSnapshot(cfg.Checkpoint, e, dt, it, true)
			return res, nil
		}

		acc.add([]*mat.SymDense{fa, fb}, ev)
		if fx, ok := acc.extrapolate(it); ok {
			fa, fb = fx[0], fx[1]
		}

		if orbsA, err = orth.solve(fa); err != nil {
			return nil, err
		}
		if orbsB, err = orth.solve(fb); err != nil {
			return nil, err
		}
		da = densityMatrix(orbsA, na, 1)
		db = densityMatrix(orbsB, nb, 1)

		res.Energy = e
		res.Electronic = e - set.Vnn
		res.Iterations = it
	}

	log.Warningf("SCF did not converge within %d iterations", cfg.MaxIterations)
	dt := mat.NewSymDense(set.N, nil)
	dt.CopySym(da)
	addScaled(dt, 1, db)
	res.Density = dt
	res.DensityAlpha = da
	res.DensityBeta = db
	res.Orbitals = orbsA
	res.OrbitalsBeta = orbsB
	res.Status = StatusMaxIterations
	res.Converged = false
	return res, nil
}

// spinFock assembles one spin channel's Fock matrix:
// F = H + J(D_total) - a K(D_spin) + Vxc.
func spinFock(set *integral.Set, j, k, vxc *mat.SymDense, a float64) *mat.SymDense {
	f := mat.NewSymDense(set.N, nil)
	f.CopySym(set.Hcore)
	addScaled(f, 1, j)
	addScaled(f, -a, k)
	if vxc != nil {
		addScaled(f, 1, vxc)
	}
	return f
}

// initialSpinDensities builds the starting alpha and beta densities.
func initialSpinDensities(set *integral.Set, cfg Config, orth *orthogonalizer, na, nb int) (*mat.SymDense, *mat.SymDense, error) {
	if cfg.Guess == GuessDensity {
		if cfg.InitialAlpha == nil || cfg.InitialBeta == nil {
			return nil, nil, fmt.Errorf("density guess requested but spin densities not provided")
		}
		for _, d := range []*mat.SymDense{cfg.InitialAlpha, cfg.InitialBeta} {
			if err := checkShape("initial spin density", d.SymmetricDim(), set.N); err != nil {
				return nil, nil, err
			}
		}
		da := mat.NewSymDense(set.N, nil)
		da.CopySym(cfg.InitialAlpha)
		db := mat.NewSymDense(set.N, nil)
		db.CopySym(cfg.InitialBeta)
		return da, db, nil
	}
	orbs, err := orth.solve(set.Hcore)
	if err != nil {
		return nil, nil, err
	}
	return densityMatrix(orbs, na, 1), densityMatrix(orbs, nb, 1), nil
}
