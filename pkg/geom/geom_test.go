package geom_test

import (
	"math"
	"testing"

	. "confgen/pkg/geom"
)

func notApproxEqual(x, y, tol float64) bool {
	diff := math.Abs(x - y)
	if math.IsNaN(diff) {
		return true
	}
	return diff > tol
}

func vecApproxEqual(a, b Vec3, tol float64) bool {
	return !notApproxEqual(a.X, b.X, tol) &&
		!notApproxEqual(a.Y, b.Y, tol) &&
		!notApproxEqual(a.Z, b.Z, tol)
}

// The worked example from the database tooling: three atoms in the xy
// plane and the frame they define.
func TestAxisFrame(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{1.458, 0, 0}
	c := Vec3{2.009, 1.420, 0}
	normal, xAxis, perp := AxisFrame(a, b, c)
	const tol = 1e-12
	if !vecApproxEqual(normal, Vec3{0, 0, -1}, tol) {
		t.Errorf("normal got %v", normal)
	}
	if !vecApproxEqual(xAxis, Vec3{-1, 0, 0}, tol) {
		t.Errorf("xAxis got %v", xAxis)
	}
	if !vecApproxEqual(perp, Vec3{0, -1, 0}, tol) {
		t.Errorf("perp got %v", perp)
	}
}

var degenerateFrames = []struct {
	name    string
	a, b, c Vec3
}{
	{"collinear", Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{2, 0, 0}},
	{"coincident ab", Vec3{1, 1, 1}, Vec3{1, 1, 1}, Vec3{2, 0, 0}},
	{"coincident bc", Vec3{0, 0, 0}, Vec3{1, 1, 0}, Vec3{1, 1, 0}},
	{"all same", Vec3{3, 3, 3}, Vec3{3, 3, 3}, Vec3{3, 3, 3}},
}

// Collinear or coincident reference points must come back with a
// zero-length normal, the degeneracy signal, and never a made-up
// direction.
func TestAxisFrameDegenerate(t *testing.T) {
	for _, test := range degenerateFrames {
		normal, _, perp := AxisFrame(test.a, test.b, test.c)
		if !normal.IsZero() {
			t.Errorf("%s: normal %v, wanted the zero vector", test.name, normal)
		}
		if !perp.IsZero() {
			t.Errorf("%s: perp %v, wanted the zero vector", test.name, perp)
		}
		if _, err := PlaceAtom(1, 1, 1.5, test.a, test.b, test.c); err != ErrDegenerateGeometry {
			t.Errorf("%s: PlaceAtom err %v, wanted ErrDegenerateGeometry", test.name, err)
		}
	}
}

// With the reference points (0,1,0), (0,0,0), (1,0,0) and a bend
// complement of pi/2, the new atom lands at (1, cos t, sin t) for
// torsion t. Worked out by hand once, now pinned here.
var placeTests = []struct {
	torsion float64
	want    Vec3
}{
	{0, Vec3{1, 1, 0}},
	{math.Pi / 2, Vec3{1, 0, 1}},
	{-math.Pi / 2, Vec3{1, 0, -1}},
	{math.Pi, Vec3{1, -1, 0}},
	{math.Pi / 4, Vec3{1, math.Sqrt2 / 2, math.Sqrt2 / 2}},
}

func TestPlaceAtom(t *testing.T) {
	parent := Vec3{1, 0, 0}
	xPoint := Vec3{0, 0, 0}
	yPoint := Vec3{0, 1, 0}
	for _, test := range placeTests {
		got, err := PlaceAtom(math.Pi/2, test.torsion, 1, parent, xPoint, yPoint)
		if err != nil {
			t.Fatalf("torsion %g: %v", test.torsion, err)
		}
		if !vecApproxEqual(got, test.want, 1e-12) {
			t.Errorf("torsion %g: got %v wanted %v", test.torsion, got, test.want)
		}
		if d := Dist(got, parent); notApproxEqual(d, 1, 1e-12) {
			t.Errorf("torsion %g: bond length %g, wanted 1", test.torsion, d)
		}
	}
}

// PlaceAtom then TorsionAngles must reproduce the torsion that was fed
// in, whatever the bend. This is the contract that lets chains built
// from database angles give those angles back.
func TestPlaceTorsionRoundTrip(t *testing.T) {
	torsions := []float64{0.3, -2.9, 3.0, 1.5707, -0.0001, 2.2, -1.1, 0.9}
	bends := []float64{1.2, 0.9, 1.1}
	dists := []float64{1.329, 1.458, 1.525}

	coords := []Vec3{{0, 0, 0}, {1.458, 0, 0}, {1.96, 1.42, 0}}
	for i, torsion := range torsions {
		v, err := PlaceAtom(bends[i%3], torsion, dists[i%3],
			coords[len(coords)-1], coords[len(coords)-2], coords[len(coords)-3])
		if err != nil {
			t.Fatalf("placing atom %d: %v", i, err)
		}
		coords = append(coords, v)
	}
	got, err := TorsionAngles(coords)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(torsions) {
		t.Fatalf("got %d torsions, wanted %d", len(got), len(torsions))
	}
	for i := range got {
		if notApproxEqual(got[i], torsions[i], 1e-6) {
			t.Errorf("torsion %d: got %.8f wanted %.8f", i, got[i], torsions[i])
		}
	}
}
