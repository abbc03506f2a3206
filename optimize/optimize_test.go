package optimize

import (
	"math"
	"testing"

	"github.com/goscf/goscf/chem"
	"github.com/goscf/goscf/scf"
)

// quadratic is a Problem with minimum energy 3 at (1, -2).
type quadratic struct{}

func (quadratic) Evaluate(x []float64) (float64, []float64, error) {
	dx, dy := x[0]-1, x[1]+2
	e := 3 + dx*dx + 2*dy*dy
	return e, []float64{2 * dx, 4 * dy}, nil
}

func TestMinimizeQuadratic(t *testing.T) {
	for _, method := range []Method{MethodLBFGS, MethodGradientDescent} {
		s := NewSettings()
		s.Method = method
		s.GradientTolerance = 1e-8
		res, err := Minimize(quadratic{}, []float64{5, 5}, s)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Converged {
			t.Fatalf("method %v did not converge", method)
		}
		if math.Abs(res.X[0]-1) > 1e-6 || math.Abs(res.X[1]+2) > 1e-6 {
			t.Errorf("method %v minimum at %v, want (1, -2)", method, res.X)
		}
		if math.Abs(res.Energy-3) > 1e-10 {
			t.Errorf("method %v energy %v, want 3", method, res.Energy)
		}
	}
}

type failing struct{}

func (failing) Evaluate(x []float64) (float64, []float64, error) {
	return 0, nil, errTest
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "evaluation failed" }

func TestMinimizePropagatesError(t *testing.T) {
	_, err := Minimize(failing{}, []float64{0}, NewSettings())
	if err == nil {
		t.Fatal("expected evaluation error to propagate")
	}
}

func TestGeometryH2Bond(t *testing.T) {
	mol, err := chem.NewMolecule([]chem.Atom{
		{Z: 1, Position: [3]float64{0, 0, 0}},
		{Z: 1, Position: [3]float64{0, 0, 1.4}},
	}, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	g := NewGeometry(mol, "sto-3g", scf.NewConfig())
	res, err := Minimize(g, mol.Coordinates(), NewSettings())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged {
		t.Fatal("geometry optimization did not converge")
	}

	opt := mol.WithCoordinates(res.X)
	var bond float64
	for axis := 0; axis < 3; axis++ {
		d := opt.Atoms[1].Position[axis] - opt.Atoms[0].Position[axis]
		bond += d * d
	}
	bond = math.Sqrt(bond)
	if bond < 1.33 || bond > 1.36 {
		t.Errorf("optimized bond length %v bohr, want about 1.346", bond)
	}

	for i, gi := range res.Gradient {
		if math.Abs(gi) > 1e-3 {
			t.Errorf("residual gradient component %d = %v", i, gi)
		}
	}

	if g.Last() == nil || !g.Last().Converged {
		t.Error("missing converged SCF result from the last evaluation")
	}
}
