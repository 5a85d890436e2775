// Package chain has the backbone chain being grown and the label and
// numbering helpers around it. A chain only ever grows by appending or
// shrinks by explicit rollback to an earlier length. Atoms already
// placed are never edited in place.

package chain

import (
	"fmt"

	"confgen/pkg/bgeo"
	"confgen/pkg/geom"
)

const atomsPerRes = len(bgeo.BackboneCycle)

// Backbone is an append-only run of backbone atoms. The atom kind and
// residue number of position i follow from i alone, since the kinds
// cycle strictly N, CA, C. The chain is sized for a fixed number of
// residues at creation and will not grow past that budget.
type Backbone struct {
	coords []geom.Vec3
	nRes   int // residue budget, fixed at creation
}

// NewBackbone makes an empty chain budgeted for nRes residues.
func NewBackbone(nRes int) *Backbone {
	return &Backbone{
		coords: make([]geom.Vec3, 0, nRes*atomsPerRes),
		nRes:   nRes,
	}
}

// Len is the number of atoms placed so far.
func (bb *Backbone) Len() int { return len(bb.coords) }

// Budget is the total number of atoms a complete chain will hold.
func (bb *Backbone) Budget() int { return bb.nRes * atomsPerRes }

// NRes is the residue budget.
func (bb *Backbone) NRes() int { return bb.nRes }

// Full says whether the atom budget is filled exactly.
func (bb *Backbone) Full() bool { return len(bb.coords) == bb.Budget() }

// Append places the next atom. The caller must have checked Full
// first; appending past the budget is a programming error.
func (bb *Backbone) Append(v geom.Vec3) {
	if bb.Full() {
		panic("chain: append past the atom budget")
	}
	bb.coords = append(bb.coords, v)
}

// Rollback shrinks the chain to n atoms, discarding everything placed
// after that point. Used to reject a clashing fragment.
func (bb *Backbone) Rollback(n int) {
	if n < 0 || n > len(bb.coords) {
		panic(fmt.Sprintf("chain: rollback to %d of %d atoms", n, len(bb.coords)))
	}
	bb.coords = bb.coords[:n]
}

// At returns the coordinate of atom i.
func (bb *Backbone) At(i int) geom.Vec3 { return bb.coords[i] }

// Kind gives the atom kind at position i, from the canonical cycle.
func (bb *Backbone) Kind(i int) bgeo.AtomKind {
	return bgeo.BackboneCycle[i%atomsPerRes]
}

// ResIndex gives the zero-based residue an atom belongs to.
func (bb *Backbone) ResIndex(i int) int { return i / atomsPerRes }

// NResPlaced is the number of complete residues placed so far.
func (bb *Backbone) NResPlaced() int { return len(bb.coords) / atomsPerRes }

// Last3 hands back the three most recently placed atoms, most recent
// first, which are the reference points for the next placement.
func (bb *Backbone) Last3() (parent, xPoint, yPoint geom.Vec3) {
	i := len(bb.coords)
	return bb.coords[i-1], bb.coords[i-2], bb.coords[i-3]
}

// Coords returns the atom positions placed so far. The slice aliases
// the chain's storage; treat it as read only.
func (bb *Backbone) Coords() []geom.Vec3 { return bb.coords }

// Segment copies out the atoms of residues [fromRes, toRes) together
// with their kinds. toRes may point into a partly placed residue's
// worth of atoms; whatever exists is included. An empty segment comes
// back as zero-length slices.
func (bb *Backbone) Segment(fromRes, toRes int) ([]geom.Vec3, []bgeo.AtomKind) {
	lo := fromRes * atomsPerRes
	hi := toRes * atomsPerRes
	if hi > len(bb.coords) {
		hi = len(bb.coords)
	}
	if lo < 0 {
		lo = 0
	}
	if lo >= hi {
		return nil, nil
	}
	coords := make([]geom.Vec3, hi-lo)
	kinds := make([]bgeo.AtomKind, hi-lo)
	for i := lo; i < hi; i++ {
		coords[i-lo] = bb.coords[i]
		kinds[i-lo] = bb.Kind(i)
	}
	return coords, kinds
}
