// Assembling a finished chain and its carbonyl oxygens into the flat
// atom list a serializer wants.

package chain

import (
	"fmt"

	"confgen/pkg/bgeo"
	"confgen/pkg/geom"
)

// Conformer is the flat, serialisation-ready view of a built chain:
// parallel coordinate, atom kind and residue number slices with atoms
// in canonical order N, CA, C, O within each residue. Residue numbers
// start at 1.
type Conformer struct {
	Coords  []geom.Vec3
	Kinds   []bgeo.AtomKind
	ResNums []int
}

// Assemble interleaves a backbone with its carbonyl oxygens, one O per
// complete residue. Pass a nil oxygens slice for a bare N, CA, C
// conformer. A partly built chain can be assembled too; trailing atoms
// of an incomplete residue keep their backbone order and the residue
// simply has no oxygen.
func Assemble(bb *Backbone, oxygens []geom.Vec3) (*Conformer, error) {
	if len(oxygens) > 0 && len(oxygens) != bb.NResPlaced() {
		return nil, fmt.Errorf("assemble: %d oxygens for %d complete residues",
			len(oxygens), bb.NResPlaced())
	}
	n := bb.Len() + len(oxygens)
	cf := &Conformer{
		Coords:  make([]geom.Vec3, 0, n),
		Kinds:   make([]bgeo.AtomKind, 0, n),
		ResNums: make([]int, 0, n),
	}
	for i := 0; i < bb.Len(); i++ {
		cf.push(bb.At(i), bb.Kind(i), bb.ResIndex(i)+1)
		if bb.Kind(i) == bgeo.C && len(oxygens) > 0 {
			cf.push(oxygens[bb.ResIndex(i)], bgeo.O, bb.ResIndex(i)+1)
		}
	}
	return cf, nil
}

func (cf *Conformer) push(v geom.Vec3, k bgeo.AtomKind, resNum int) {
	cf.Coords = append(cf.Coords, v)
	cf.Kinds = append(cf.Kinds, k)
	cf.ResNums = append(cf.ResNums, resNum)
}

// AtomNames is the kind sequence as strings, the form the torsion
// pre-validation wants.
func (cf *Conformer) AtomNames() []string {
	names := make([]string, len(cf.Kinds))
	for i, k := range cf.Kinds {
		names[i] = k.String()
	}
	return names
}

// BackboneCoords filters out the N, CA and C atoms, dropping oxygens,
// which is the chain torsion angles are taken over.
func (cf *Conformer) BackboneCoords() []geom.Vec3 {
	out := make([]geom.Vec3, 0, len(cf.Coords))
	for i, k := range cf.Kinds {
		if k != bgeo.O {
			out = append(out, cf.Coords[i])
		}
	}
	return out
}
