// Package geom has the vector primitives for turning internal
// coordinates (bond length, bend angle, torsion) into cartesian
// positions and back again. Everything here is a pure function.
// Coordinates are float64. We once tried float32 to save space, but
// the round trip through torsion angles loses a digit we want to keep.

package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrDegenerateGeometry means coincident or collinear reference
	// points gave us a frame vector of zero length.
	ErrDegenerateGeometry = Error("degenerate geometry, reference points coincident or collinear")
	// ErrBadTorsionInput means the coordinate list was too short.
	ErrBadTorsionInput = Error("torsion angles need at least four points")
)

// Vec3 is a point or direction in space.
type Vec3 struct{ X, Y, Z float64 }

func sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// vecProd returns the vector product of two vectors
func vecProd(u, v Vec3) Vec3 {
	return Vec3{
		X: u.Y*v.Z - u.Z*v.Y,
		Y: u.Z*v.X - u.X*v.Z,
		Z: u.X*v.Y - u.Y*v.X,
	}
}

// sclrProd returns the dot / scalar product of two vectors
func sclrProd(u, v Vec3) float64 { return u.X*v.X + u.Y*v.Y + u.Z*v.Z }

func vecLen(v Vec3) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsZero says if a vector has exactly zero length. A frame vector of
// zero length is the degenerate geometry signal from AxisFrame.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Dist returns the distance between two points.
func Dist(a, b Vec3) float64 { return vecLen(sub(a, b)) }

// norMaybe normalises a vector unless it has zero length, in which
// case it is handed back untouched. Callers must check for the zero
// vector and treat it as degenerate input. We do not panic or make up
// a direction here.
func norMaybe(v Vec3) Vec3 {
	l := vecLen(v)
	if l > 0.0 {
		return Vec3{v.X / l, v.Y / l, v.Z / l}
	}
	return v
}

// AxisFrame builds a right-handed orthonormal frame from three ordered
// points A, B, C. xAxis points from B to A, normal is perpendicular to
// the ABC plane and perp completes the frame within the plane. If the
// points are coincident or collinear, the vectors that cannot be
// normalised come back with zero length.
func AxisFrame(a, b, c Vec3) (normal, xAxis, perp Vec3) {
	abVec := sub(a, b)
	normal = vecProd(abVec, sub(c, b)) // perpendicular to the ABC plane
	perp = vecProd(abVec, normal)      // in-plane, perpendicular to AB

	xAxis = norMaybe(abVec)
	normal = norMaybe(normal)
	perp = norMaybe(perp)
	return normal, xAxis, perp
}

// RotationToFrame gives the 3x3 matrix whose columns are the local
// frame at A, with the x axis along B->A and the ABC plane normal as
// the third axis. Multiplying a local offset by this matrix moves it
// into the frame of the three reference points. The second error
// return says if the frame was degenerate.
func RotationToFrame(a, b, c Vec3) (*mat.Dense, error) {
	normal, xAxis, perp := AxisFrame(a, b, c)
	if normal.IsZero() || xAxis.IsZero() || perp.IsZero() {
		return nil, ErrDegenerateGeometry
	}
	r := mat.NewDense(3, 3, []float64{
		xAxis.X, -perp.X, normal.X,
		xAxis.Y, -perp.Y, normal.Y,
		xAxis.Z, -perp.Z, normal.Z,
	})
	return r, nil
}

// PlaceAtom makes one cartesian coordinate from internal coordinates.
// The new atom sits at bond length dist from parent. bend is the
// complement of the bond angle (callers pass pi minus the angle at
// parent) and torsion is the dihedral about the previous bond.
// xPoint is the atom bonded to parent, yPoint the one before that, so
// calls during chain growth reference the three most recent atoms as
// (parent, xPoint, yPoint).
// The three reference points must be distinct and not collinear.
// ErrDegenerateGeometry comes back otherwise and no coordinate is
// produced.
func PlaceAtom(bend, torsion, dist float64, parent, xPoint, yPoint Vec3) (Vec3, error) {
	rot, err := RotationToFrame(parent, xPoint, yPoint)
	if err != nil {
		return Vec3{}, err
	}
	local := mat.NewVecDense(3, []float64{
		dist * math.Cos(bend),
		dist * math.Sin(bend) * math.Cos(torsion),
		dist * math.Sin(bend) * math.Sin(torsion),
	})
	var out mat.VecDense
	out.MulVec(rot, local)
	return add(parent, Vec3{out.AtVec(0), out.AtVec(1), out.AtVec(2)}), nil
}
