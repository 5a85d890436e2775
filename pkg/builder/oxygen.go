// Carbonyl oxygens are not part of the growth cycle. They are placed
// after the backbone is done, one per residue, hanging off the C atom
// in the peptide plane: the torsion that points the O anti to the next
// residue's N is psi plus pi. The final residue has no psi, its O gets
// a null torsion.

package builder

import (
	"fmt"
	"math"

	"confgen/pkg/chain"
	"confgen/pkg/geom"
)

// AddCarbonyls computes one oxygen per complete residue of a built
// backbone. The chain itself is left untouched; the oxygens are
// returned for assembly at serialisation time.
func (b *Builder) AddCarbonyls(bb *chain.Backbone) ([]geom.Vec3, error) {
	nRes := bb.NResPlaced()
	if nRes == 0 {
		return nil, nil
	}
	var psi []float64
	if bb.Len() >= 4 {
		tors, err := geom.TorsionAngles(bb.Coords())
		if err != nil {
			return nil, fmt.Errorf("carbonyls: %w", err)
		}
		psi = tors
	}

	bend := math.Pi - b.consts.AngCaCO
	oxy := make([]geom.Vec3, nRes)
	for r := 0; r < nRes; r++ {
		iC := 3*r + 2
		torsion := 0.0
		if idx := 3 * r; idx < len(psi) { // psi of residue r, absent for the last
			torsion = psi[idx] + math.Pi
		}
		v, err := geom.PlaceAtom(bend, torsion, b.consts.DistCO,
			bb.At(iC), bb.At(iC-1), bb.At(iC-2))
		if err != nil {
			return nil, fmt.Errorf("carbonyl of residue %d: %w", r+1, err)
		}
		oxy[r] = v
	}
	return oxy, nil
}
