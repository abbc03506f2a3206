package chem

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseXYZ reads a molecule in XYZ format. Coordinates are expected in
// angstrom and converted to bohr. The comment line may carry
// "charge=N" and "multiplicity=N" fields; both default to neutral
// singlet when absent.
func ParseXYZ(r io.Reader) (*Molecule, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return nil, fmt.Errorf("xyz: missing atom count line")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("xyz: bad atom count: %v", err)
	}

	charge, mult := 0, 1
	if !scanner.Scan() {
		return nil, fmt.Errorf("xyz: missing comment line")
	}
	for _, field := range strings.Fields(scanner.Text()) {
		switch {
		case strings.HasPrefix(field, "charge="):
			charge, err = strconv.Atoi(strings.TrimPrefix(field, "charge="))
		case strings.HasPrefix(field, "multiplicity="):
			mult, err = strconv.Atoi(strings.TrimPrefix(field, "multiplicity="))
		}
		if err != nil {
			return nil, fmt.Errorf("xyz: bad comment field %q: %v", field, err)
		}
	}

	atoms := make([]Atom, 0, n)
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("xyz: expected %d atoms, got %d", n, i)
		}
		words := strings.Fields(scanner.Text())
		if len(words) < 4 {
			return nil, fmt.Errorf("xyz: bad atom line %q", scanner.Text())
		}
		z := AtomicNumber(words[0])
		if z == 0 {
			return nil, fmt.Errorf("xyz: unknown element %q", words[0])
		}
		var pos [3]float64
		for ax := 0; ax < 3; ax++ {
			v, err := strconv.ParseFloat(words[ax+1], 64)
			if err != nil {
				return nil, fmt.Errorf("xyz: bad coordinate %q: %v", words[ax+1], err)
			}
			pos[ax] = v / Bohr
		}
		atoms = append(atoms, Atom{Z: z, Position: pos})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NewMolecule(atoms, charge, mult)
}
