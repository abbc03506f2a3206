package chem

import (
	"fmt"
	"math"
)

// Atom is a nucleus: atomic number and position in bohr.
type Atom struct {
	Z        int
	Position [3]float64
}

// Molecule describes a molecular system: nuclei, total charge and spin
// multiplicity. It is treated as immutable once constructed; operations
// that change the geometry return a new Molecule.
type Molecule struct {
	Atoms        []Atom
	Charge       int
	Multiplicity int
}

// ElectronCountError reports a charge/multiplicity combination
// inconsistent with the atomic composition.
type ElectronCountError struct {
	Electrons    int
	Multiplicity int
}

func (e *ElectronCountError) Error() string {
	return fmt.Sprintf("invalid electron count: %d electrons incompatible with multiplicity %d",
		e.Electrons, e.Multiplicity)
}

// NewMolecule creates a molecule and validates its electron count.
func NewMolecule(atoms []Atom, charge, multiplicity int) (*Molecule, error) {
	m := &Molecule{Atoms: atoms, Charge: charge, Multiplicity: multiplicity}
	if _, err := m.NElectrons(); err != nil {
		return nil, err
	}
	return m, nil
}

// NElectrons returns the number of electrons. It fails if the count is
// negative or if the spin multiplicity has the wrong parity for it.
func (m *Molecule) NElectrons() (int, error) {
	n := -m.Charge
	for _, a := range m.Atoms {
		n += a.Z
	}
	mult := m.Multiplicity
	if mult < 1 {
		mult = 1
	}
	if n < 0 || n < mult-1 || (n-(mult-1))%2 != 0 {
		return 0, &ElectronCountError{Electrons: n, Multiplicity: mult}
	}
	return n, nil
}

// SpinElectrons returns the number of alpha and beta electrons for the
// molecule's multiplicity.
func (m *Molecule) SpinElectrons() (na, nb int, err error) {
	n, err := m.NElectrons()
	if err != nil {
		return 0, 0, err
	}
	mult := m.Multiplicity
	if mult < 1 {
		mult = 1
	}
	na = (n + mult - 1) / 2
	nb = n - na
	return na, nb, nil
}

// WithPosition returns a copy of the molecule with one atomic
// coordinate replaced.
func (m *Molecule) WithPosition(atom, axis int, value float64) *Molecule {
	atoms := make([]Atom, len(m.Atoms))
	copy(atoms, m.Atoms)
	atoms[atom].Position[axis] = value
	return &Molecule{Atoms: atoms, Charge: m.Charge, Multiplicity: m.Multiplicity}
}

// Coordinates returns the 3N nuclear coordinates as a flat slice.
func (m *Molecule) Coordinates() []float64 {
	x := make([]float64, 3*len(m.Atoms))
	for i, a := range m.Atoms {
		copy(x[3*i:], a.Position[:])
	}
	return x
}

// WithCoordinates returns a copy of the molecule with all nuclear
// coordinates replaced from a flat 3N slice.
func (m *Molecule) WithCoordinates(x []float64) *Molecule {
	atoms := make([]Atom, len(m.Atoms))
	copy(atoms, m.Atoms)
	for i := range atoms {
		copy(atoms[i].Position[:], x[3*i:3*i+3])
	}
	return &Molecule{Atoms: atoms, Charge: m.Charge, Multiplicity: m.Multiplicity}
}

// NuclearRepulsion returns the Coulomb energy of the nuclei, the
// pairwise sum over all atom pairs.
func (m *Molecule) NuclearRepulsion() float64 {
	var e float64
	for i := range m.Atoms {
		for j := i + 1; j < len(m.Atoms); j++ {
			e += float64(m.Atoms[i].Z*m.Atoms[j].Z) / m.distance(i, j)
		}
	}
	return e
}

// NuclearRepulsionGradient returns the derivative of the
// nuclear-repulsion energy with respect to every nuclear coordinate.
func (m *Molecule) NuclearRepulsionGradient() []float64 {
	g := make([]float64, 3*len(m.Atoms))
	for i := range m.Atoms {
		for j := i + 1; j < len(m.Atoms); j++ {
			r := m.distance(i, j)
			zz := float64(m.Atoms[i].Z * m.Atoms[j].Z)
			for ax := 0; ax < 3; ax++ {
				d := m.Atoms[i].Position[ax] - m.Atoms[j].Position[ax]
				f := -zz * d / (r * r * r)
				g[3*i+ax] += f
				g[3*j+ax] -= f
			}
		}
	}
	return g
}

func (m *Molecule) distance(i, j int) float64 {
	var r2 float64
	for ax := 0; ax < 3; ax++ {
		d := m.Atoms[i].Position[ax] - m.Atoms[j].Position[ax]
		r2 += d * d
	}
	return math.Sqrt(r2)
}
