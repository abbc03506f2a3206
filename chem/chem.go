// Package chem provides the molecular geometry descriptor: elements,
// atoms, charge and spin bookkeeping, and the nuclear-repulsion terms.
package chem

// Bohr is the Bohr radius in angstrom; XYZ files carry angstrom,
// everything downstream works in atomic units.
const Bohr = 0.52917721092

// Element stores periodic-table data for a single element.
type Element struct {
	Z      int
	Symbol string
	Name   string
	Mass   float64
}

// Elements maps an atomic number to its periodic-table entry. The
// table covers the elements the bundled basis sets know about.
var Elements = map[int]Element{
	1:  {1, "H", "Hydrogen", 1.008},
	2:  {2, "He", "Helium", 4.0026},
	3:  {3, "Li", "Lithium", 6.94},
	4:  {4, "Be", "Beryllium", 9.0122},
	5:  {5, "B", "Boron", 10.81},
	6:  {6, "C", "Carbon", 12.011},
	7:  {7, "N", "Nitrogen", 14.007},
	8:  {8, "O", "Oxygen", 15.999},
	9:  {9, "F", "Fluorine", 18.998},
	10: {10, "Ne", "Neon", 20.180},
}

// symbolZ maps an element symbol to its atomic number.
var symbolZ map[string]int

func init() {
	symbolZ = make(map[string]int, len(Elements))
	for z, e := range Elements {
		symbolZ[e.Symbol] = z
	}
}

// AtomicNumber returns the atomic number for an element symbol, 0 if
// the symbol is unknown.
func AtomicNumber(symbol string) int {
	return symbolZ[symbol]
}
