package scf

import (
	"gonum.org/v1/gonum/mat"

	"github.com/goscf/goscf/checkpoint"
)

// Guess selects the initial-density strategy.
type Guess int

const (
	// GuessCore diagonalizes the core Hamiltonian.
	GuessCore Guess = iota
	// GuessDensity starts from a provided density matrix.
	GuessDensity
)

// Config holds the knobs of one SCF solve.
type Config struct {
	// EnergyTolerance and DensityTolerance must both be satisfied
	// for convergence: |dE| below the former, the RMS of the DIIS
	// error vector below the latter.
	EnergyTolerance  float64
	DensityTolerance float64
	// MaxIterations caps the iteration count; reaching it is a
	// reported failure, not an error.
	MaxIterations int

	// DIISCapacity bounds the extrapolation history (FIFO);
	// DIISStart is the first iteration extrapolation is applied on.
	DIISCapacity int
	DIISStart    int

	// ExactExchange is the fraction of exact exchange in the
	// effective Hamiltonian: 1 for Hartree-Fock, 0 for pure
	// density functionals, intermediate for global hybrids.
	ExactExchange float64

	// XC is an optional exchange-correlation functional.
	XC Functional

	// LinDepThreshold drops overlap eigendirections below it.
	LinDepThreshold float64

	Guess          Guess
	InitialDensity *mat.SymDense
	// InitialAlpha/InitialBeta seed the spin densities of an
	// unrestricted solve; both must be set to take effect.
	InitialAlpha *mat.SymDense
	InitialBeta  *mat.SymDense

	// Checkpoint, when set, receives time-throttled mid-solve
	// snapshots and the final state.
	Checkpoint *checkpoint.IO
}

// NewConfig returns a Config with the default settings.
func NewConfig() Config {
	return Config{
		EnergyTolerance:  1e-8,
		DensityTolerance: 1e-6,
		MaxIterations:    100,
		DIISCapacity:     8,
		DIISStart:        2,
		ExactExchange:    1,
		LinDepThreshold:  1e-8,
		Guess:            GuessCore,
	}
}
