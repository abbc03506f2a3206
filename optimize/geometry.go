package optimize

import (
	"fmt"

	"github.com/goscf/goscf/basis"
	"github.com/goscf/goscf/chem"
	"github.com/goscf/goscf/deriv"
	"github.com/goscf/goscf/integral"
	"github.com/goscf/goscf/scf"
)

// Geometry is a Problem over a molecule's nuclear coordinates: each
// evaluation rebuilds the basis, solves the SCF equations and returns
// the total energy with its analytic gradient. Consecutive
// evaluations warm-start from the previous converged density.
type Geometry struct {
	Mol    *chem.Molecule
	Basis  string
	Config scf.Config

	last *scf.Result
}

// NewGeometry wraps a molecule for minimization.
func NewGeometry(mol *chem.Molecule, basisName string, cfg scf.Config) *Geometry {
	return &Geometry{Mol: mol, Basis: basisName, Config: cfg}
}

func (g *Geometry) Evaluate(x []float64) (float64, []float64, error) {
	mol := g.Mol.WithCoordinates(x)
	b, err := basis.Build(mol, g.Basis)
	if err != nil {
		return 0, nil, err
	}
	set := integral.Compute(b)

	cfg := g.Config
	if g.last != nil && g.last.Converged {
		cfg.Guess = scf.GuessDensity
		cfg.InitialDensity = g.last.Density
	}
	res, err := scf.Solve(mol, set, cfg)
	if err != nil {
		return 0, nil, err
	}
	if !res.Converged {
		return 0, nil, fmt.Errorf("SCF did not converge at displaced geometry: %v", res.Status)
	}
	g.last = res

	grad, err := deriv.Gradient(mol, b, res)
	if err != nil {
		return 0, nil, err
	}
	return res.Energy, grad, nil
}

// Last returns the SCF result of the most recent evaluation, nil
// before the first.
func (g *Geometry) Last() *scf.Result { return g.last }
