package scf

import "gonum.org/v1/gonum/mat"

// Status is the terminal state of a solve.
type Status int

const (
	// StatusConverged means both the energy and the density error
	// satisfied their tolerances.
	StatusConverged Status = iota
	// StatusMaxIterations means the iteration cap was reached; the
	// result carries the last (non-self-consistent) state for
	// diagnostics.
	StatusMaxIterations
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusMaxIterations:
		return "maximum iterations exceeded"
	}
	return "unknown"
}

// Orbitals holds the eigensolution of one Fock matrix: energies in
// ascending order and coefficients orthonormal in the overlap metric
// (C^T S C = I). With linear dependencies dropped, C is rectangular.
type Orbitals struct {
	Energies []float64
	C        *mat.Dense
}

// IterationStat is one row of the convergence trajectory.
type IterationStat struct {
	Iteration int
	Energy    float64
	DeltaE    float64
	ErrorNorm float64
}

// Result is the outcome of a solve. A non-converged solve is reported
// through Status, never through an error, so batch callers can inspect
// partial state without exception handling in the hot path.
type Result struct {
	// Energy is the total energy: electronic plus nuclear
	// repulsion.
	Energy     float64
	Electronic float64

	// Density is the total density matrix; for unrestricted solves
	// the per-spin matrices are carried alongside.
	Density      *mat.SymDense
	DensityAlpha *mat.SymDense
	DensityBeta  *mat.SymDense

	Orbitals     *Orbitals
	OrbitalsBeta *Orbitals

	Status     Status
	Converged  bool
	Iterations int

	Trajectory []IterationStat

	// DroppedFunctions counts overlap eigendirections removed due
	// to near linear dependence of the basis.
	DroppedFunctions int
}
