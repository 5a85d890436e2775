// torsions reads backbone PDB files and prints their phi, psi and
// omega angles in degrees. Used to verify built conformers against the
// database angles they were grown from.

package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path"

	"confgen/pkg/geom"
	"confgen/pkg/pdbfmt"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "file.pdb [more files]")
	flag.PrintDefaults()
}

func deg(x float64) float64 { return x * 180 / math.Pi }

// onefile prints the torsion table for one backbone file.
func onefile(fname string) error {
	atoms, err := pdbfmt.ReadAtoms(fname)
	if err != nil {
		return err
	}
	coords, names := pdbfmt.BackboneOf(atoms)
	if diag := geom.ValidateBackboneForTorsion(names); diag != "" {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", fname, diag)
	}
	tors, err := geom.TorsionAngles(coords)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}

	// torsions come out interleaved psi, omega, phi starting at the
	// first residue's psi
	fmt.Printf("# %s\n#%4s %9s %9s %9s\n", fname, "res", "phi", "psi", "omega")
	nRes := len(coords) / 3
	for i := 0; i < nRes; i++ {
		phi, psi, omega := math.NaN(), math.NaN(), math.NaN()
		if i > 0 {
			phi = deg(tors[3*i-1])
		}
		if 3*i < len(tors) {
			psi = deg(tors[3*i])
		}
		if 3*i+1 < len(tors) {
			omega = deg(tors[3*i+1])
		}
		fmt.Printf("%5d %9.3f %9.3f %9.3f\n", i+1, phi, psi, omega)
	}
	return nil
}

func mymain() int {
	flag.Usage = usage
	flag.Parse()
	if len(flag.Args()) < 1 {
		usage()
		return exitFailure
	}
	for _, fname := range flag.Args() {
		if err := onefile(fname); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return exitFailure
		}
	}
	return exitSuccess
}

func main() { os.Exit(mymain()) }
