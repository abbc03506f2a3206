package integral

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/dual"

	"github.com/goscf/goscf/basis"
	"github.com/goscf/goscf/chem"
)

func h2(r float64) *chem.Molecule {
	return &chem.Molecule{Atoms: []chem.Atom{
		{Z: 1, Position: [3]float64{0, 0, 0}},
		{Z: 1, Position: [3]float64{0, 0, r}},
	}, Multiplicity: 1}
}

func h2Set(t *testing.T, r float64) *basis.Set {
	t.Helper()
	b, err := basis.Build(h2(r), "sto-3g")
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestBoysAgainstErf(t *testing.T) {
	// F_0(x) = 1/2 sqrt(pi/x) erf(sqrt(x)), checked on both the
	// series and the incomplete-gamma branches.
	for _, x := range []float64{1e-8, 1e-3, 0.05, 0.5, 3, 20} {
		want := 0.5 * math.Sqrt(math.Pi/x) * math.Erf(math.Sqrt(x))
		if got := boys(0, x); math.Abs(got-want) > 1e-12 {
			t.Errorf("F_0(%v) = %v, want %v", x, got, want)
		}
	}
	if got := boys(0, 0); math.Abs(got-1) > 1e-14 {
		t.Errorf("F_0(0) = %v, want 1", got)
	}
	if got := boys(2, 0); math.Abs(got-0.2) > 1e-14 {
		t.Errorf("F_2(0) = %v, want 1/5", got)
	}
}

func TestBoysRecursion(t *testing.T) {
	// (2 nu + 1) F_nu(x) = 2x F_{nu+1}(x) + exp(-x)
	for _, x := range []float64{0.02, 0.7, 5, 30} {
		for nu := 0; nu < 4; nu++ {
			lhs := float64(2*nu+1) * boys(nu, x)
			rhs := 2*x*boys(nu+1, x) + math.Exp(-x)
			if math.Abs(lhs-rhs) > 1e-11 {
				t.Errorf("recursion broken at nu=%d x=%v: %v != %v", nu, x, lhs, rhs)
			}
		}
	}
}

func TestBoysDual(t *testing.T) {
	const h = 1e-6
	for _, x := range []float64{0.04, 2.5} {
		d := boysDual(1, dual.Number{Real: x, Emag: 1})
		fd := (boys(1, x+h) - boys(1, x-h)) / (2 * h)
		if math.Abs(d.Emag-fd) > 1e-8 {
			t.Errorf("dF_1/dx at %v: dual %v, finite difference %v", x, d.Emag, fd)
		}
	}
}

// Reference values from Szabo & Ostlund, Modern Quantum Chemistry,
// for H2/STO-3G at R = 1.4 bohr.
func TestH2ReferenceIntegrals(t *testing.T) {
	set := Compute(h2Set(t, 1.4))

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"S11", set.S.At(0, 0), 1.0},
		{"S12", set.S.At(0, 1), 0.6593},
		{"T11", set.T.At(0, 0), 0.7600},
		{"T12", set.T.At(0, 1), 0.2365},
		{"H11", set.Hcore.At(0, 0), -1.1204},
		{"H12", set.Hcore.At(0, 1), -0.9584},
		{"(11|11)", set.ERIAt(0, 0, 0, 0), 0.7746},
		{"(11|22)", set.ERIAt(0, 0, 1, 1), 0.5697},
		{"(21|11)", set.ERIAt(1, 0, 0, 0), 0.4441},
		{"(21|21)", set.ERIAt(1, 0, 1, 0), 0.2970},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 2e-4 {
			t.Errorf("%s = %.6f, want %.4f", c.name, c.got, c.want)
		}
	}
	if math.Abs(set.Vnn-1.0/1.4) > 1e-12 {
		t.Errorf("Vnn = %v, want %v", set.Vnn, 1.0/1.4)
	}
}

// The general angular-momentum kernels must reduce to the s-orbital
// closed forms (Szabo & Ostlund appendix A) for s functions.
func TestSOrbitalClosedForms(t *testing.T) {
	mol := &chem.Molecule{Atoms: []chem.Atom{
		{Z: 2, Position: [3]float64{0, 0, 0}},
		{Z: 1, Position: [3]float64{0, 0, 1.4632}},
	}, Charge: 1, Multiplicity: 1}
	b, err := basis.Build(mol, "sto-3g")
	if err != nil {
		t.Fatal(err)
	}
	set := Compute(b)
	n := b.Size()

	sRef := func(a, b basis.Gaussian, ra, rb [3]float64) float64 {
		g := a.Alpha + b.Alpha
		r2 := dist2(ra, rb)
		return a.Coef * b.Coef * math.Pow(math.Pi/g, 1.5) * math.Exp(-a.Alpha*b.Alpha*r2/g)
	}
	tRef := func(a, b basis.Gaussian, ra, rb [3]float64) float64 {
		g := a.Alpha + b.Alpha
		r2 := dist2(ra, rb)
		red := a.Alpha * b.Alpha / g
		return red * (3 - 2*red*r2) * sRef(a, b, ra, rb)
	}
	vRef := func(a, b basis.Gaussian, ra, rb, rc [3]float64, z float64) float64 {
		g := a.Alpha + b.Alpha
		r2 := dist2(ra, rb)
		var p [3]float64
		for ax := 0; ax < 3; ax++ {
			p[ax] = (a.Alpha*ra[ax] + b.Alpha*rb[ax]) / g
		}
		return -a.Coef * b.Coef * 2 * math.Pi / g * z *
			math.Exp(-a.Alpha*b.Alpha*r2/g) * boys(0, g*dist2(p, rc))
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			fi, fj := b.Funcs[i], b.Funcs[j]
			var s, k, v float64
			for _, pa := range fi.Prims {
				for _, pb := range fj.Prims {
					s += sRef(pa, pb, fi.Center, fj.Center)
					k += tRef(pa, pb, fi.Center, fj.Center)
					for _, at := range mol.Atoms {
						v += vRef(pa, pb, fi.Center, fj.Center, at.Position, float64(at.Z))
					}
				}
			}
			if math.Abs(set.S.At(i, j)-s) > 1e-11 {
				t.Errorf("S[%d,%d]: THO %v, closed form %v", i, j, set.S.At(i, j), s)
			}
			if math.Abs(set.T.At(i, j)-k) > 1e-11 {
				t.Errorf("T[%d,%d]: THO %v, closed form %v", i, j, set.T.At(i, j), k)
			}
			if math.Abs(set.V.At(i, j)-v) > 1e-11 {
				t.Errorf("V[%d,%d]: THO %v, closed form %v", i, j, set.V.At(i, j), v)
			}
		}
	}
}

func dist2(a, b [3]float64) float64 {
	var r2 float64
	for ax := 0; ax < 3; ax++ {
		d := a[ax] - b[ax]
		r2 += d * d
	}
	return r2
}

// Single-primitive expectation values with known closed forms:
// <T> = 3a/2 for s, 5a/2 for p; <V> at the nucleus scales by 2/3 from
// s to p; (ss|ss) = 2 sqrt(a/pi).
func TestSinglePrimitiveExpectations(t *testing.T) {
	const alpha = 1.75
	basis.Register("prim-sp", map[int][]basis.Shell{
		1: {
			{L: 0, Exps: []float64{alpha}, Coefs: []float64{1}},
			{L: 1, Exps: []float64{alpha}, Coefs: []float64{1}},
		},
	})
	mol := &chem.Molecule{Atoms: []chem.Atom{{Z: 1}}, Multiplicity: 2}
	b, err := basis.Build(mol, "prim-sp")
	if err != nil {
		t.Fatal(err)
	}
	set := Compute(b)

	for i := 0; i < set.N; i++ {
		if math.Abs(set.S.At(i, i)-1) > 1e-12 {
			t.Errorf("S[%d,%d] = %v, want 1", i, i, set.S.At(i, i))
		}
	}
	if got, want := set.T.At(0, 0), 1.5*alpha; math.Abs(got-want) > 1e-12 {
		t.Errorf("<s|T|s> = %v, want %v", got, want)
	}
	if got, want := set.T.At(1, 1), 2.5*alpha; math.Abs(got-want) > 1e-12 {
		t.Errorf("<p|T|p> = %v, want %v", got, want)
	}
	if got, want := set.V.At(1, 1), set.V.At(0, 0)*2.0/3.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("<p|V|p> = %v, want 2/3 of <s|V|s> = %v", got, want)
	}
	if got, want := set.ERIAt(0, 0, 0, 0), 2*math.Sqrt(alpha/math.Pi); math.Abs(got-want) > 1e-12 {
		t.Errorf("(ss|ss) = %v, want %v", got, want)
	}
}

func TestERIPermutationSymmetry(t *testing.T) {
	mol := &chem.Molecule{Atoms: []chem.Atom{
		{Z: 2, Position: [3]float64{0, 0, 0}},
		{Z: 1, Position: [3]float64{0.1, -0.2, 1.5}},
	}, Charge: 1, Multiplicity: 1}
	b, err := basis.Build(mol, "sto-3g")
	if err != nil {
		t.Fatal(err)
	}
	set := Compute(b)
	n := set.N
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					v := set.ERIAt(i, j, k, l)
					for _, p := range [][4]int{
						{j, i, k, l}, {i, j, l, k}, {k, l, i, j}, {l, k, j, i},
					} {
						if w := set.ERIAt(p[0], p[1], p[2], p[3]); v != w {
							t.Fatalf("ERI symmetry broken at %d%d%d%d", i, j, k, l)
						}
					}
				}
			}
		}
	}
}

// Dual-number coordinate derivatives must agree with central finite
// differences of the plain integrals.
func TestCoordinateDerivative(t *testing.T) {
	const r, h = 1.4, 1e-5
	der := CoordinateDerivative(h2Set(t, r), 1, 2)
	plus := Compute(h2Set(t, r+h))
	minus := Compute(h2Set(t, r-h))

	fdS := (plus.S.At(0, 1) - minus.S.At(0, 1)) / (2 * h)
	if math.Abs(der.S.At(0, 1)-fdS) > 1e-8 {
		t.Errorf("dS12/dz: dual %v, finite difference %v", der.S.At(0, 1), fdS)
	}
	fdH := (plus.Hcore.At(0, 1) - minus.Hcore.At(0, 1)) / (2 * h)
	if math.Abs(der.Hcore.At(0, 1)-fdH) > 1e-8 {
		t.Errorf("dH12/dz: dual %v, finite difference %v", der.Hcore.At(0, 1), fdH)
	}
	fdE := (plus.ERIAt(0, 0, 1, 1) - minus.ERIAt(0, 0, 1, 1)) / (2 * h)
	if math.Abs(der.ERIAt(0, 0, 1, 1)-fdE) > 1e-8 {
		t.Errorf("d(11|22)/dz: dual %v, finite difference %v", der.ERIAt(0, 0, 1, 1), fdE)
	}

	// The diagonal overlap is geometry independent; its derivative
	// must vanish identically.
	if der.S.At(0, 0) != 0 {
		t.Errorf("dS11/dz = %v, want exactly 0", der.S.At(0, 0))
	}
}
