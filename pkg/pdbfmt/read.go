// Reading ATOM records back in, by column position. Enough for the
// torsion tooling to round-trip what WriteConformer produced and to
// look at backbones from elsewhere.

package pdbfmt

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"confgen/pkg/geom"
)

// Atom is one parsed ATOM record.
type Atom struct {
	Name    string
	ResName string
	ResNum  int
	Coord   geom.Vec3
}

// ReadAtoms parses the ATOM records of a file in order. Anything that
// is not an ATOM record is skipped.
func ReadAtoms(fname string) ([]Atom, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	var atoms []Atom
	scnnr := bufio.NewScanner(fp)
	for lineNo := 1; scnnr.Scan(); lineNo++ {
		line := scnnr.Text()
		if !strings.HasPrefix(line, "ATOM") {
			continue
		}
		if len(line) < 54 {
			return nil, fmt.Errorf("%s line %d: ATOM record too short", fname, lineNo)
		}
		a := Atom{
			Name:    strings.TrimSpace(line[12:16]),
			ResName: strings.TrimSpace(line[17:20]),
		}
		if a.ResNum, err = strconv.Atoi(strings.TrimSpace(line[22:26])); err != nil {
			return nil, fmt.Errorf("%s line %d: residue number: %w", fname, lineNo, err)
		}
		if a.Coord.X, err = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64); err != nil {
			return nil, fmt.Errorf("%s line %d: x: %w", fname, lineNo, err)
		}
		if a.Coord.Y, err = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64); err != nil {
			return nil, fmt.Errorf("%s line %d: y: %w", fname, lineNo, err)
		}
		if a.Coord.Z, err = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64); err != nil {
			return nil, fmt.Errorf("%s line %d: z: %w", fname, lineNo, err)
		}
		atoms = append(atoms, a)
	}
	if err := scnnr.Err(); err != nil {
		return nil, err
	}
	return atoms, nil
}

// BackboneOf filters N, CA and C atoms from parsed records, in file
// order, which is the chain torsion angles are taken over.
func BackboneOf(atoms []Atom) (coords []geom.Vec3, names []string) {
	for _, a := range atoms {
		switch a.Name {
		case "N", "CA", "C":
			coords = append(coords, a.Coord)
			names = append(names, a.Name)
		}
	}
	return coords, names
}
