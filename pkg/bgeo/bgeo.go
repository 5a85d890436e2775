// Package bgeo holds the physical parameters of the peptide backbone:
// bond lengths, bend angles and the van der Waals contact table.
// Build the structures once at startup and pass them around by
// pointer. Nothing in here changes after construction.

package bgeo

import "math"

// AtomKind enumerates the backbone atom kinds in their canonical
// within-residue order.
type AtomKind uint8

const (
	N AtomKind = iota
	CA
	C
	O
	NKinds = 4 // kinds that take part in clash testing
)

// BackboneCycle is the repeating atom order during chain growth.
// Carbonyl oxygens are placed after the backbone completes, so they
// are not part of the cycle.
var BackboneCycle = [3]AtomKind{N, CA, C}

func (k AtomKind) String() string {
	switch k {
	case N:
		return "N"
	case CA:
		return "CA"
	case C:
		return "C"
	case O:
		return "O"
	}
	return "?"
}

// Element gives the one letter element symbol for an atom kind.
func (k AtomKind) Element() string {
	if k == CA {
		return "C"
	}
	return k.String()
}

func deg(x float64) float64 { return x * math.Pi / 180 }

// Constants are the bond lengths (angstrom) and bend angles (radians)
// used for every placed atom. Values are the standard ones of Engh and
// Huber refined protein geometry.
type Constants struct {
	DistNCa  float64 // N-CA
	DistCaC  float64 // CA-C
	DistCNp1 float64 // C-N of the following residue
	DistCO   float64 // C=O carbonyl

	AngNCaC   float64 // at CA
	AngCaCNp1 float64 // at C, toward the next N
	AngCm1NCa float64 // at N, from the previous C
	AngCaCO   float64 // at C, toward the carbonyl O
	AngNp1CO  float64 // at C, carbonyl against the next N
}

// DefaultConstants builds the one Constants everybody shares.
func DefaultConstants() *Constants {
	return &Constants{
		DistNCa:   1.458,
		DistCaC:   1.525,
		DistCNp1:  1.329,
		DistCO:    1.231,
		AngNCaC:   deg(111.2),
		AngCaCNp1: deg(116.2),
		AngCm1NCa: deg(121.7),
		AngCaCO:   deg(120.8),
		AngNp1CO:  deg(123.0),
	}
}

// van der Waals radii in angstrom, indexed by AtomKind. CA carries the
// aliphatic carbon radius.
var vdwRadius = [NKinds]float64{1.55, 1.70, 1.70, 1.52}

// ClashTable is the symmetric lookup of allowed minimum distances, the
// sum of the van der Waals radii of the two kinds. Computed once.
type ClashTable struct {
	sum [NKinds][NKinds]float64
}

// NewClashTable fills the radius-sum table.
func NewClashTable() *ClashTable {
	var t ClashTable
	for i := 0; i < NKinds; i++ {
		for j := 0; j < NKinds; j++ {
			t.sum[i][j] = vdwRadius[i] + vdwRadius[j]
		}
	}
	return &t
}

// MinDist is the smallest separation two atom kinds may have without
// counting as a steric clash. A pair exactly at this distance is not a
// clash, only strictly closer pairs are.
func (t *ClashTable) MinDist(a, b AtomKind) float64 { return t.sum[a][b] }
