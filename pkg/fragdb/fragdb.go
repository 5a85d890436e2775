// Package fragdb is the fragment pool: the torsion angle database read
// from disk, aligned into one big table, and queried for windows whose
// secondary structure labels match a pattern. The chain builder treats
// it as an opaque supplier of angle fragments.
//
// The database file maps a secondary structure label to fragments, and
// each fragment to one flat numeric record per residue holding
// x, y, z, phi, psi, omega and chi1. Only the three torsions matter
// here; the rest ride along from the database build.

package fragdb

import (
	"fmt"
	"math"
	"sort"

	"github.com/andrew-torda/matrix"
)

type Error string

func (e Error) Error() string { return string(e) }

// ErrNoFragments means nothing in the pool matches the requested
// pattern. Recoverable: widen the pattern or fail the request.
const ErrNoFragments = Error("no fragments match the requested pattern")

// recordStride is the number of values stored per residue in the
// database: x y z phi psi omega chi1.
const recordStride = 7

// spacer separates fragments in the aligned label string so a search
// window can never span two source fragments.
const spacer = '|'

// RawDB is the database file once decoded: secondary structure label
// to fragment key to flat per-residue records.
type RawDB map[string]map[string][]float64

// Window is an index window into the pool: N consecutive residues
// starting at row Start of the aligned table.
type Window struct {
	Start, N int
}

// Fragment is one drawn angle fragment, immutable once handed out.
// Torsions is flat per residue: phi, psi, omega, phi, psi, omega...
type Fragment struct {
	Torsions []float64
	Label    byte   // the secondary structure label of the run
	Source   string // fragment key it was cut from
}

// Interior drops the boundary torsions that lack full four-atom
// support in the source fragment: the leading phi and the trailing psi
// and omega. What remains is what the builder consumes, in order.
func (f *Fragment) Interior() []float64 {
	if len(f.Torsions) < 4 {
		return nil
	}
	return f.Torsions[1 : len(f.Torsions)-2]
}

// Rand is the injectable uniform choice used for fragment draws. A
// *rand.Rand satisfies it; tests substitute something predictable.
type Rand interface {
	Intn(n int) int
}

// Pool is the aligned database: one row of torsions per residue, a
// parallel label string and the source key of every row. Built once,
// then read-only, so a single Pool serves any number of concurrent
// builds.
type Pool struct {
	angles *matrix.FMatrix2d // nrows x 3: phi, psi, omega
	labels []byte            // ss label per row, spacer at fragment joins
	source []string          // fragment key per row
}

// NewPool aligns a decoded database. Fragment order is fixed by
// sorting labels and keys, so the same database always yields the same
// pool and seeded builds reproduce.
func NewPool(db RawDB) (*Pool, error) {
	labels := make([]string, 0, len(db))
	for l := range db {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	nRows := 0
	nFrags := 0
	for _, l := range labels {
		for key, rec := range db[l] {
			if len(rec) == 0 || len(rec)%recordStride != 0 {
				return nil, fmt.Errorf("fragdb: fragment %q: record length %d not a multiple of %d",
					key, len(rec), recordStride)
			}
			nRows += len(rec) / recordStride
			nFrags++
		}
	}
	if nFrags == 0 {
		return nil, Error("fragdb: empty database")
	}
	nRows += nFrags - 1 // spacer rows between fragments

	p := &Pool{
		angles: matrix.NewFMatrix2d(nRows, 3),
		labels: make([]byte, 0, nRows),
		source: make([]string, 0, nRows),
	}

	row := 0
	for _, l := range labels {
		if len(l) != 1 {
			return nil, fmt.Errorf("fragdb: secondary structure label %q is not one letter", l)
		}
		keys := make([]string, 0, len(db[l]))
		for k := range db[l] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if row > 0 {
				p.spacerRow(row)
				row++
			}
			rec := db[l][key]
			for i := 0; i < len(rec); i += recordStride {
				p.angles.Mat[row][0] = float32(rec[i+3]) // phi
				p.angles.Mat[row][1] = float32(rec[i+4]) // psi
				p.angles.Mat[row][2] = float32(rec[i+5]) // omega
				p.labels = append(p.labels, l[0])
				p.source = append(p.source, key)
				row++
			}
		}
	}
	return p, nil
}

func (p *Pool) spacerRow(row int) {
	nan := float32(math.NaN())
	p.angles.Mat[row][0] = nan
	p.angles.Mat[row][1] = nan
	p.angles.Mat[row][2] = nan
	p.labels = append(p.labels, spacer)
	p.source = append(p.source, "")
}

// NRes is the number of residue rows in the pool, spacers included.
func (p *Pool) NRes() int { return len(p.labels) }

// Fragment cuts the window out of the aligned table as an immutable
// angle fragment.
func (p *Pool) Fragment(w Window) *Fragment {
	f := &Fragment{
		Torsions: make([]float64, 0, w.N*3),
		Label:    p.labels[w.Start],
		Source:   p.source[w.Start],
	}
	for r := w.Start; r < w.Start+w.N; r++ {
		f.Torsions = append(f.Torsions,
			float64(p.angles.Mat[r][0]),
			float64(p.angles.Mat[r][1]),
			float64(p.angles.Mat[r][2]))
	}
	return f
}

// Draw picks one window uniformly at random and cuts its fragment.
func (p *Pool) Draw(ws []Window, rng Rand) *Fragment {
	return p.Fragment(ws[rng.Intn(len(ws))])
}
