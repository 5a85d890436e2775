// Package clash decides whether two already-placed groups of atoms
// overlap sterically. Two atoms clash when they sit strictly closer
// than the sum of their van der Waals radii. There are two
// implementations of the one predicate: a batched form building the
// full cross-distance matrix and an incremental form walking residue
// blocks with early exit. They must agree on every input; tests hold
// them against each other.
//
// The predicate is only meaningful for groups that are not covalently
// bonded to one another. Callers must trim the residues adjacent to
// the settled/new boundary before asking, or every peptide bond would
// read as a clash.

package clash

import (
	"gonum.org/v1/gonum/mat"

	"confgen/pkg/bgeo"
	"confgen/pkg/geom"
)

// Group is a run of atoms with their kinds, usually a residue window
// cut from a growing chain.
type Group struct {
	Coords []geom.Vec3
	Kinds  []bgeo.AtomKind
}

// Len is the number of atoms in the group.
func (g Group) Len() int { return len(g.Coords) }

// residueStarts finds the index of each residue's first atom. An N
// marks the start of a residue; a group not starting at an N keeps its
// leading partial residue as a block of its own.
func (g Group) residueStarts() []int {
	var starts []int
	for i, k := range g.Kinds {
		if i == 0 || k == bgeo.N {
			starts = append(starts, i)
		}
	}
	return starts
}

// Validator holds the contact table. Safe for concurrent use, it never
// changes after construction.
type Validator struct {
	table *bgeo.ClashTable
}

// NewValidator wraps a contact table.
func NewValidator(t *bgeo.ClashTable) *Validator { return &Validator{table: t} }

// HasClashBatched reports steric overlap between the settled and the
// fresh group by building the full pairwise distance matrix and the
// matching allowed-distance matrix, then looking for any pair below
// its allowance. The allowed matrix is the 4x4 radius-sum table spread
// over the atom kind cycle of each group, so a terminal residue of
// only three atoms needs no special case, the matrix is simply that
// much smaller.
func (v *Validator) HasClashBatched(settled, fresh Group) bool {
	m, n := settled.Len(), fresh.Len()
	if m == 0 || n == 0 {
		return false
	}
	dist := mat.NewDense(m, n, nil)
	allowed := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			dist.Set(i, j, geom.Dist(settled.Coords[i], fresh.Coords[j]))
			allowed.Set(i, j, v.table.MinDist(settled.Kinds[i], fresh.Kinds[j]))
		}
	}
	var slack mat.Dense
	slack.Sub(allowed, dist)
	// a positive entry means strictly closer than allowed
	return mat.Max(&slack) > 0
}

// HasClashIncremental answers the same question residue block by
// residue block, returning on the first violating pair. Semantically
// identical to HasClashBatched; this form wins when a clash is likely,
// the batched form when most comparisons are clean.
func (v *Validator) HasClashIncremental(settled, fresh Group) bool {
	if settled.Len() == 0 || fresh.Len() == 0 {
		return false
	}
	sStarts := append(settled.residueStarts(), settled.Len())
	fStarts := append(fresh.residueStarts(), fresh.Len())
	for si := 0; si+1 < len(sStarts); si++ {
		for fi := 0; fi+1 < len(fStarts); fi++ {
			if v.blockClash(settled, sStarts[si], sStarts[si+1],
				fresh, fStarts[fi], fStarts[fi+1]) {
				return true
			}
		}
	}
	return false
}

// blockClash compares one settled residue block against one fresh one.
func (v *Validator) blockClash(s Group, sLo, sHi int, f Group, fLo, fHi int) bool {
	for i := sLo; i < sHi; i++ {
		for j := fLo; j < fHi; j++ {
			if geom.Dist(s.Coords[i], f.Coords[j]) < v.table.MinDist(s.Kinds[i], f.Kinds[j]) {
				return true
			}
		}
	}
	return false
}
