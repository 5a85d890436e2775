// Torsion (dihedral) angles from a cartesian chain. This is the
// inverse of PlaceAtom and must keep the same sign convention, or
// chains built from database angles will not reproduce them.

package geom

import "math"

// TorsionAngles takes a chain of n >= 4 sequential points and returns
// the n-3 signed dihedral angles in radians, one for each interior
// bond. For bond vectors q_k = coords[k+1] - coords[k] the angle about
// bond k+1 is resolved with atan2 from the unit normals of the two
// planes either side of the bond.
//
// For a backbone of N, CA and C atoms starting at the N terminus, the
// angles come out interleaved so that psi angles sit at indices 0, 3,
// 6..., omega at 1, 4, 7... and phi at 2, 5, 8...
//
// ErrBadTorsionInput is returned for fewer than four points and
// ErrDegenerateGeometry if three consecutive points are collinear, an
// arrangement with no defined dihedral.
func TorsionAngles(coords []Vec3) ([]float64, error) {
	if len(coords) < 4 {
		return nil, ErrBadTorsionInput
	}

	qVecs := make([]Vec3, len(coords)-1)
	for i := range qVecs {
		qVecs[i] = sub(coords[i+1], coords[i])
	}

	normals := make([]Vec3, len(qVecs)-1)
	for i := range normals {
		n := norMaybe(vecProd(qVecs[i], qVecs[i+1]))
		if n.IsZero() {
			return nil, ErrDegenerateGeometry
		}
		normals[i] = n
	}

	torsions := make([]float64, len(coords)-3)
	for k := range torsions {
		u0 := normals[k]
		u1 := normals[k+1]
		u3 := norMaybe(qVecs[k+1]) // cannot be zero, its normals were not
		u2 := vecProd(u3, u1)
		torsions[k] = -math.Atan2(sclrProd(u0, u2), sclrProd(u0, u1))
	}
	return torsions, nil
}

// ValidateBackboneForTorsion is advisory pre-validation for database
// tooling. It checks the atom name sequence looks like a backbone we
// can take torsions from: starts at N and holds whole N, CA, C
// triplets. The returned string describes the problem and is empty for
// a valid backbone. It deliberately does not return an error, callers
// decide how loud to be.
func ValidateBackboneForTorsion(names []string) string {
	if len(names) == 0 || names[0] != "N" {
		return "the first atom is not N, it should be"
	}
	if len(names)%3 != 0 {
		return "number of backbone atoms is not a multiple of 3"
	}
	return ""
}
