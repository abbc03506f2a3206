package basis

import (
	"fmt"
	"math"

	"github.com/goscf/goscf/chem"
)

// Gaussian is a single primitive in a contracted function. Coef
// includes the primitive and contraction normalization factors.
type Gaussian struct {
	Alpha float64
	Coef  float64
}

// Function is a normalized contracted Cartesian Gaussian basis
// function centered on an atom.
type Function struct {
	Atom   int
	Center [3]float64
	L      [3]int
	Prims  []Gaussian
}

// Set is a molecule expanded over a named basis: the list of atomic
// orbital basis functions integrals are computed over.
type Set struct {
	Name  string
	Mol   *chem.Molecule
	Funcs []Function
}

// Size returns the number of basis functions.
func (s *Set) Size() int { return len(s.Funcs) }

// Build expands a molecule over a registered basis set. Shells are
// expanded into Cartesian components (s: 1, p: 3, ...) and every
// contracted function is normalized to unit self-overlap.
func Build(mol *chem.Molecule, name string) (*Set, error) {
	shells, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	set := &Set{Name: name, Mol: mol}
	for i, atom := range mol.Atoms {
		atomShells, ok := shells[atom.Z]
		if !ok {
			return nil, fmt.Errorf("basis set %q has no functions for element %s",
				name, chem.Elements[atom.Z].Symbol)
		}
		for _, sh := range atomShells {
			for _, lmn := range cartesianComponents(sh.L) {
				f := Function{Atom: i, Center: atom.Position, L: lmn}
				f.Prims = make([]Gaussian, len(sh.Exps))
				for k, alpha := range sh.Exps {
					f.Prims[k] = Gaussian{
						Alpha: alpha,
						Coef:  sh.Coefs[k] * primitiveNorm(alpha, lmn),
					}
				}
				normalize(&f)
				set.Funcs = append(set.Funcs, f)
			}
		}
	}
	return set, nil
}

// cartesianComponents enumerates the Cartesian angular momentum
// triples of a shell in canonical order (x highest first).
func cartesianComponents(l int) [][3]int {
	var out [][3]int
	for i := l; i >= 0; i-- {
		for j := l - i; j >= 0; j-- {
			out = append(out, [3]int{i, j, l - i - j})
		}
	}
	return out
}

// primitiveNorm is the normalization constant of a single Cartesian
// Gaussian primitive.
func primitiveNorm(alpha float64, lmn [3]int) float64 {
	l, m, n := lmn[0], lmn[1], lmn[2]
	num := math.Pow(2*alpha/math.Pi, 0.75) * math.Pow(4*alpha, 0.5*float64(l+m+n))
	den := math.Sqrt(doubleFactorial(2*l-1) * doubleFactorial(2*m-1) * doubleFactorial(2*n-1))
	return num / den
}

// normalize scales the contraction coefficients so the contracted
// function has unit self-overlap.
func normalize(f *Function) {
	l, m, n := f.L[0], f.L[1], f.L[2]
	lsum := float64(l + m + n)
	df := doubleFactorial(2*l-1) * doubleFactorial(2*m-1) * doubleFactorial(2*n-1)
	var s float64
	for _, a := range f.Prims {
		for _, b := range f.Prims {
			gamma := a.Alpha + b.Alpha
			s += a.Coef * b.Coef * df *
				math.Pow(math.Pi/gamma, 1.5) / math.Pow(2*gamma, lsum)
		}
	}
	scale := 1 / math.Sqrt(s)
	for k := range f.Prims {
		f.Prims[k].Coef *= scale
	}
}

func doubleFactorial(n int) float64 {
	out := 1.0
	for ; n > 1; n -= 2 {
		out *= float64(n)
	}
	return out
}
