package pdbfmt_test

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"confgen/pkg/chain"
	"confgen/pkg/geom"
	. "confgen/pkg/pdbfmt"
)

func TestFormatAtomName(t *testing.T) {
	var tests = []struct {
		atom, element string
		want          string
	}{
		{"N", "N", " N  "},
		{"CA", "C", " CA "},
		{"C", "C", " C  "},
		{"O", "O", " O  "},
		{"HG11", "H", "HG11"},
		{"FE", "FE", "FE  "},
	}
	for _, tt := range tests {
		got, err := FormatAtomName(tt.atom, tt.element)
		if err != nil {
			t.Fatalf("%s/%s: %v", tt.atom, tt.element, err)
		}
		if got != tt.want {
			t.Errorf("%s/%s: got %q wanted %q", tt.atom, tt.element, got, tt.want)
		}
	}
	if _, err := FormatAtomName("X", "XXX"); err == nil {
		t.Error("three-letter element slipped through")
	}
}

func TestResName3(t *testing.T) {
	for c, want := range map[byte]string{'A': "ALA", 'G': "GLY", 'W': "TRP", 'P': "PRO"} {
		got, err := ResName3(c)
		if err != nil || got != want {
			t.Errorf("%c: got %q, %v", c, got, err)
		}
	}
	if _, err := ResName3('Z'); err == nil {
		t.Error("Z is not a residue")
	}
}

// a two-residue backbone plus one oxygen per residue
func testConformer(t *testing.T) *chain.Conformer {
	t.Helper()
	bb := chain.NewBackbone(2)
	for _, v := range []geom.Vec3{
		{X: 0.0636, Y: -0.79573, Z: 1.21644},
		{X: 1.458},
		{X: 2.009, Y: 1.42},
		{X: 3.3, Y: 1.7, Z: 0.2},
		{X: 4.7, Y: 2.1, Z: 0.4},
		{X: 5.9, Y: 3.0, Z: 0.6},
	} {
		bb.Append(v)
	}
	cf, err := chain.Assemble(bb, []geom.Vec3{
		{X: 2.2, Y: 2.1, Z: -0.9},
		{X: 6.1, Y: 4.2, Z: 0.5},
	})
	if err != nil {
		t.Fatal(err)
	}
	return cf
}

func TestWriteConformer(t *testing.T) {
	var sb strings.Builder
	if err := WriteConformer(&sb, "AG", testConformer(t)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("%d lines, wanted 8", len(lines))
	}
	const golden = "ATOM      1  N   ALA A   1       0.064  -0.796   1.216  0.00  0.00           N  "
	if lines[0] != golden {
		t.Errorf("first record\n got %q\nwant %q", lines[0], golden)
	}
	for i, line := range lines {
		if len(line) != 80 {
			t.Errorf("line %d is %d columns, wanted 80", i+1, len(line))
		}
	}
	// the oxygen of residue 1 sits after its C, still numbered 1
	if !strings.Contains(lines[3], " O   ALA A   1 ") {
		t.Errorf("fourth record is not the first carbonyl oxygen: %q", lines[3])
	}
	if !strings.Contains(lines[4], " N   GLY A   2 ") {
		t.Errorf("fifth record is not the glycine N: %q", lines[4])
	}
}

func TestWriteConformerBadResidue(t *testing.T) {
	if err := WriteConformer(&strings.Builder{}, "A", testConformer(t)); err == nil {
		t.Error("residue number past the sequence end was accepted")
	}
	if err := WriteConformer(&strings.Builder{}, "AZ", testConformer(t)); err == nil {
		t.Error("unknown residue code was accepted")
	}
}

func TestRoundTrip(t *testing.T) {
	cf := testConformer(t)
	fname := filepath.Join(t.TempDir(), "out.pdb")
	if err := SaveConformer(fname, "AG", cf); err != nil {
		t.Fatal(err)
	}
	atoms, err := ReadAtoms(fname)
	if err != nil {
		t.Fatal(err)
	}
	if len(atoms) != len(cf.Coords) {
		t.Fatalf("read %d atoms, wrote %d", len(atoms), len(cf.Coords))
	}
	for i, a := range atoms {
		if a.Name != cf.Kinds[i].String() {
			t.Errorf("atom %d name %q, wanted %q", i, a.Name, cf.Kinds[i])
		}
		if a.ResNum != cf.ResNums[i] {
			t.Errorf("atom %d residue %d, wanted %d", i, a.ResNum, cf.ResNums[i])
		}
		for _, d := range []float64{
			a.Coord.X - cf.Coords[i].X,
			a.Coord.Y - cf.Coords[i].Y,
			a.Coord.Z - cf.Coords[i].Z,
		} {
			if math.Abs(d) > 5e-4 { // three decimals on the way out
				t.Errorf("atom %d drifted %g on the round trip", i, d)
			}
		}
	}
}

func TestBackboneOf(t *testing.T) {
	cf := testConformer(t)
	fname := filepath.Join(t.TempDir(), "bb.pdb")
	if err := SaveConformer(fname, "AG", cf); err != nil {
		t.Fatal(err)
	}
	atoms, err := ReadAtoms(fname)
	if err != nil {
		t.Fatal(err)
	}
	coords, names := BackboneOf(atoms)
	if len(coords) != 6 || len(names) != 6 {
		t.Fatalf("backbone has %d atoms, wanted 6 without the oxygens", len(coords))
	}
	wantNames := []string{"N", "CA", "C", "N", "CA", "C"}
	for i, n := range names {
		if n != wantNames[i] {
			t.Errorf("backbone atom %d is %q, wanted %q", i, n, wantNames[i])
		}
	}
	if msg := geom.ValidateBackboneForTorsion(names); msg != "" {
		t.Errorf("filtered backbone fails validation: %s", msg)
	}
}
