package basis

import (
	"math"
	"testing"

	"github.com/goscf/goscf/chem"
)

func TestLookup(t *testing.T) {
	if _, err := Lookup("STO-3G"); err != nil {
		t.Error("case-insensitive lookup failed:", err)
	}
	if _, err := Lookup("cc-pvqz"); err == nil {
		t.Error("expected error for unknown basis set")
	}
}

func TestRegister(t *testing.T) {
	Register("test-1s", map[int][]Shell{
		1: {{L: 0, Exps: []float64{1.0}, Coefs: []float64{1.0}}},
	})
	shells, err := Lookup("test-1s")
	if err != nil {
		t.Fatal(err)
	}
	if len(shells[1]) != 1 {
		t.Errorf("got %d shells, want 1", len(shells[1]))
	}
}

func TestBuildH2(t *testing.T) {
	mol := &chem.Molecule{Atoms: []chem.Atom{
		{Z: 1, Position: [3]float64{0, 0, 0}},
		{Z: 1, Position: [3]float64{0, 0, 1.4}},
	}, Multiplicity: 1}
	set, err := Build(mol, "sto-3g")
	if err != nil {
		t.Fatal(err)
	}
	if set.Size() != 2 {
		t.Fatalf("H2/STO-3G should have 2 functions, got %d", set.Size())
	}
	if set.Funcs[1].Atom != 1 || set.Funcs[1].Center[2] != 1.4 {
		t.Error("second function not centered on second atom")
	}
}

func TestBuildShellExpansion(t *testing.T) {
	mol := &chem.Molecule{Atoms: []chem.Atom{{Z: 8}}, Multiplicity: 3}
	set, err := Build(mol, "sto-3g")
	if err != nil {
		t.Fatal(err)
	}
	// O/STO-3G: 1s, 2s and three 2p components.
	if set.Size() != 5 {
		t.Fatalf("O/STO-3G should have 5 functions, got %d", set.Size())
	}
	p := set.Funcs[2]
	if p.L != [3]int{1, 0, 0} {
		t.Errorf("first p component should be x, got %v", p.L)
	}
}

func TestBuildUnknownElement(t *testing.T) {
	mol := &chem.Molecule{Atoms: []chem.Atom{{Z: 6}}, Multiplicity: 1}
	if _, err := Build(mol, "6-31g"); err == nil {
		t.Error("expected error: 6-31g data only covers H and He here")
	}
}

// Self-overlap of every contracted function must be one. The explicit
// sum duplicates the same-center overlap formula used in normalize, so
// this additionally pins down the double-factorial bookkeeping for p
// functions.
func TestNormalization(t *testing.T) {
	mol := &chem.Molecule{Atoms: []chem.Atom{{Z: 8}}, Multiplicity: 3}
	set, err := Build(mol, "sto-3g")
	if err != nil {
		t.Fatal(err)
	}
	for fi, f := range set.Funcs {
		lsum := float64(f.L[0] + f.L[1] + f.L[2])
		dfp := doubleFactorial(2*f.L[0]-1) * doubleFactorial(2*f.L[1]-1) *
			doubleFactorial(2*f.L[2]-1)
		var s float64
		for _, a := range f.Prims {
			for _, b := range f.Prims {
				gamma := a.Alpha + b.Alpha
				s += a.Coef * b.Coef * dfp *
					math.Pow(math.Pi/gamma, 1.5) / math.Pow(2*gamma, lsum)
			}
		}
		if math.Abs(s-1) > 1e-10 {
			t.Errorf("function %d: self-overlap %v, want 1", fi, s)
		}
	}
}

func TestCartesianComponents(t *testing.T) {
	if n := len(cartesianComponents(2)); n != 6 {
		t.Errorf("d shell should have 6 Cartesian components, got %d", n)
	}
}
