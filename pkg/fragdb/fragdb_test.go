package fragdb_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "confgen/pkg/fragdb"
)

// record builds the flat per-residue database record for nRes residues
// with recognisable torsion values: residue r holds base+r+0.1,
// base+r+0.2, base+r+0.3.
func record(nRes int, base float64) []float64 {
	var rec []float64
	for r := 0; r < nRes; r++ {
		rec = append(rec, 0, 0, 0, // x y z unused here
			base+float64(r)+0.1, base+float64(r)+0.2, base+float64(r)+0.3,
			0) // chi1
	}
	return rec
}

func testDB() RawDB {
	return RawDB{
		"L": {"lfragA": record(4, 10), "lfragB": record(2, 20)},
		"H": {"hfrag": record(3, 30)},
	}
}

// a fixed sequence of draws
type scriptedRand []int

func (s *scriptedRand) Intn(n int) int {
	v := (*s)[0] % n
	*s = (*s)[1:]
	return v
}

func TestNewPool(t *testing.T) {
	pool, err := NewPool(testDB())
	if err != nil {
		t.Fatal(err)
	}
	// 3 + 4 + 2 residues and two spacer rows between three fragments
	if pool.NRes() != 11 {
		t.Fatalf("pool has %d rows, wanted 11", pool.NRes())
	}
}

var windowTests = []struct {
	name    string
	pattern string
	want    []Window
}{
	// labels are H H H | L L L L | L L with fragments sorted by
	// label then key
	{"plain", "L{2,3}", []Window{{4, 3}, {5, 3}, {6, 2}, {9, 2}}},
	{"lookahead form", "(?=(L{2,3}))", []Window{{4, 3}, {5, 3}, {6, 2}, {9, 2}}},
	{"helix", "H{3}", []Window{{0, 3}}},
	{"alternative", "H{2}|L{4}", []Window{{0, 2}, {1, 2}, {4, 4}}},
}

func TestFragmentsMatching(t *testing.T) {
	pool, err := NewPool(testDB())
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range windowTests {
		got, err := pool.FragmentsMatching(test.pattern)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s: windows wrong (-want +got):\n%s", test.name, diff)
		}
	}
	if _, err := pool.FragmentsMatching("E{2}"); err != ErrNoFragments {
		t.Errorf("pattern with no windows: err %v, wanted ErrNoFragments", err)
	}
	if _, err := pool.FragmentsMatching("L{2,"); err == nil {
		t.Error("broken pattern accepted")
	}
}

// A window can never span the join between two source fragments, even
// when the pattern could match the spacer.
func TestWindowsRespectJoins(t *testing.T) {
	pool, err := NewPool(testDB())
	if err != nil {
		t.Fatal(err)
	}
	ws, err := pool.FragmentsMatching(".{4}")
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range ws {
		if w.Start <= 3 && w.Start+w.N > 3 {
			t.Errorf("window %v spans the first fragment join", w)
		}
		if w.Start <= 8 && w.Start+w.N > 8 {
			t.Errorf("window %v spans the second fragment join", w)
		}
	}
}

func TestFragmentAndInterior(t *testing.T) {
	pool, err := NewPool(testDB())
	if err != nil {
		t.Fatal(err)
	}
	f := pool.Fragment(Window{Start: 4, N: 3}) // first 3 residues of lfragA
	if f.Label != 'L' || f.Source != "lfragA" {
		t.Fatalf("fragment labelled %c from %q", f.Label, f.Source)
	}
	want := []float64{10.1, 10.2, 10.3, 11.1, 11.2, 11.3, 12.1, 12.2, 12.3}
	if len(f.Torsions) != len(want) {
		t.Fatalf("%d torsions, wanted %d", len(f.Torsions), len(want))
	}
	for i := range want {
		// values went through float32 storage
		if math.Abs(f.Torsions[i]-want[i]) > 1e-5 {
			t.Errorf("torsion %d: got %g wanted %g", i, f.Torsions[i], want[i])
		}
	}
	interior := f.Interior()
	if len(interior) != 6 {
		t.Fatalf("interior has %d torsions, wanted 6", len(interior))
	}
	if interior[0] != f.Torsions[1] || interior[5] != f.Torsions[6] {
		t.Error("interior did not trim the leading phi and trailing psi, omega")
	}

	short := &Fragment{Torsions: []float64{1, 2, 3}}
	if short.Interior() != nil {
		t.Error("a one-residue fragment has no interior")
	}
}

func TestDraw(t *testing.T) {
	pool, err := NewPool(testDB())
	if err != nil {
		t.Fatal(err)
	}
	ws, err := pool.FragmentsMatching("L{2,3}")
	if err != nil {
		t.Fatal(err)
	}
	rng := scriptedRand{3}
	f := pool.Draw(ws, &rng)
	if f.Source != "lfragB" {
		t.Errorf("draw 3 gave %q, wanted lfragB", f.Source)
	}
}

func TestBadRecords(t *testing.T) {
	if _, err := NewPool(RawDB{"L": {"bad": []float64{1, 2, 3}}}); err == nil {
		t.Error("record length not a multiple of the stride accepted")
	}
	if _, err := NewPool(RawDB{}); err == nil {
		t.Error("empty database accepted")
	}
	if _, err := NewPool(RawDB{"XX": {"k": record(2, 0)}}); err == nil {
		t.Error("two-letter label accepted")
	}
}
