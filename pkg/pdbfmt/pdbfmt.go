// Package pdbfmt writes built conformers as fixed-column ATOM records
// and reads them back. The column layout is the classic PDB one and
// must stay byte-for-byte stable, other tools parse it by position.

package pdbfmt

import (
	"fmt"
	"io"
	"os"

	"confgen/pkg/chain"
)

// atomLine is the fixed-column ATOM record: record type, serial, atom
// name (pre-formatted to four columns), altloc, residue name, chain,
// residue number, insertion code, x, y, z, occupancy, b factor, segid,
// element, charge.
const atomLine = "%-6s%5d %s%-1s%-3s %-1s%4d%-1s   %8.3f%8.3f%8.3f%6.2f%6.2f      %-4s%2s%-2s"

// FormatAtomName pads an atom name into its four columns. Names of
// one-letter elements are offset one column right unless they already
// fill all four.
func FormatAtomName(atom, element string) (string, error) {
	switch len(element) {
	case 1:
		if len(atom) < 4 {
			return fmt.Sprintf(" %-3s", atom), nil
		}
		return fmt.Sprintf("%-4s", atom), nil
	case 2:
		return fmt.Sprintf("%-2s  ", atom), nil
	}
	return "", fmt.Errorf("cannot format atom %q of element %q", atom, element)
}

// aa1to3 maps one-letter residue codes to the three-letter names that
// go in the ATOM record.
var aa1to3 = map[byte]string{
	'A': "ALA", 'R': "ARG", 'N': "ASN", 'D': "ASP", 'C': "CYS",
	'E': "GLU", 'Q': "GLN", 'G': "GLY", 'H': "HIS", 'I': "ILE",
	'L': "LEU", 'K': "LYS", 'M': "MET", 'F': "PHE", 'P': "PRO",
	'S': "SER", 'T': "THR", 'W': "TRP", 'Y': "TYR", 'V': "VAL",
}

// ResName3 gives the three-letter residue name for a one-letter code.
func ResName3(c byte) (string, error) {
	if r, ok := aa1to3[c]; ok {
		return r, nil
	}
	return "", fmt.Errorf("unknown residue code %q", string(c))
}

// WriteConformer writes one conformer for the given one-letter
// sequence, serial numbers from 1, chain A. Occupancy and the b factor
// are zero, nobody has measured anything here.
func WriteConformer(w io.Writer, seq string, cf *chain.Conformer) error {
	for i := range cf.Coords {
		resNum := cf.ResNums[i]
		if resNum < 1 || resNum > len(seq) {
			return fmt.Errorf("atom %d: residue number %d outside the sequence", i, resNum)
		}
		resName, err := ResName3(seq[resNum-1])
		if err != nil {
			return err
		}
		element := cf.Kinds[i].Element()
		name, err := FormatAtomName(cf.Kinds[i].String(), element)
		if err != nil {
			return err
		}
		v := cf.Coords[i]
		_, err = fmt.Fprintf(w, atomLine+"\n",
			"ATOM", i+1, name, "", resName, "A", resNum, "",
			v.X, v.Y, v.Z, 0.0, 0.0, "", element, "")
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveConformer writes the conformer to a file.
func SaveConformer(fname, seq string, cf *chain.Conformer) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := WriteConformer(fp, seq, cf); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
