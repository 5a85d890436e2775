// Package rama pulls the phi/psi pairs out of a backbone and draws
// the Ramachandran scatter. Handy as a sanity check that conformers
// actually sample the region their fragments came from.

package rama

import (
	"math"

	"confgen/pkg/geom"
)

// PhiPsi returns one (phi, psi) pair in degrees per interior residue
// of an N, CA, C backbone. The first residue has no phi and the last
// no psi, so a chain of n residues yields n-2 pairs.
func PhiPsi(coords []geom.Vec3) ([][2]float64, error) {
	tors, err := geom.TorsionAngles(coords)
	if err != nil {
		return nil, err
	}
	nRes := (len(coords)) / 3
	var pairs [][2]float64
	for i := 1; i <= nRes-2; i++ {
		phi := tors[3*i-1]
		psi := tors[3*i]
		pairs = append(pairs, [2]float64{deg(phi), deg(psi)})
	}
	return pairs, nil
}

func deg(x float64) float64 { return x * 180 / math.Pi }
