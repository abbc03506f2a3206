package main

import "github.com/goscf/goscf/scf"

// RunSummary is the machine-readable record of one invocation.
type RunSummary struct {
	// Version stores goscf version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Basis is the basis set name.
	Basis string `json:"basis"`
	// Method is the SCF method.
	Method string `json:"method"`
	// TotalTime is the computations time in seconds.
	TotalTime float64 `json:"time"`

	// Energy is the total energy in hartree.
	Energy float64 `json:"energy"`
	// Electronic is the electronic part of the energy.
	Electronic float64 `json:"electronic"`
	// Converged reports whether the SCF solve converged.
	Converged bool `json:"converged"`
	// Status is the solver's terminal state.
	Status string `json:"status"`
	// Iterations is the number of SCF iterations performed.
	Iterations int `json:"iterations"`
	// SCFTime is the solve time in seconds.
	SCFTime float64 `json:"scfTime"`
	// DroppedFunctions counts basis directions removed due to near
	// linear dependence.
	DroppedFunctions int `json:"droppedFunctions,omitempty"`
	// Trajectory is the per-iteration convergence record.
	Trajectory []scf.IterationStat `json:"trajectory,omitempty"`

	// Gradient is the nuclear gradient in hartree/bohr (-grad).
	Gradient []float64 `json:"gradient,omitempty"`

	// Optimization is the geometry optimization record (-opt).
	Optimization *OptimizationSummary `json:"optimization,omitempty"`
}

// OptimizationSummary records a geometry optimization run.
type OptimizationSummary struct {
	// Energy is the energy at the final geometry.
	Energy float64 `json:"energy"`
	// Coordinates are the final nuclear coordinates in bohr.
	Coordinates []float64 `json:"coordinates"`
	// Gradient is the residual gradient at the final geometry.
	Gradient []float64 `json:"gradient"`
	// Iterations is the number of geometry steps taken.
	Iterations int `json:"iterations"`
	// Converged reports whether the gradient tolerance was reached.
	Converged bool `json:"converged"`
}

func (s *RunSummary) fillSCF(res *scf.Result, seconds float64) {
	s.Energy = res.Energy
	s.Electronic = res.Electronic
	s.Converged = res.Converged
	s.Status = res.Status.String()
	s.Iterations = res.Iterations
	s.SCFTime = seconds
	s.DroppedFunctions = res.DroppedFunctions
	s.Trajectory = res.Trajectory
}
