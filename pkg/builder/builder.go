// Package builder grows one backbone conformer at a time: seed three
// atoms deterministically, then keep drawing angle fragments from the
// pool and turning their torsions into atoms until the residue budget
// is filled. Every accepted fragment has to pass the steric clash gate
// first; a clashing fragment is rolled back and redrawn, up to a retry
// bound.

package builder

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"confgen/pkg/bgeo"
	"confgen/pkg/chain"
	"confgen/pkg/clash"
	"confgen/pkg/fragdb"
	"confgen/pkg/geom"
)

type Error string

func (e Error) Error() string { return string(e) }

// ErrRetriesExhausted means no clash-free fragment was found within
// the retry bound for one growth step. The build failed, the process
// is fine.
const ErrRetriesExhausted = Error("no clash-free fragment found within the retry bound")

// State is where a build ended up.
type State uint8

const (
	Seeded     State = iota // first residue placed, nothing drawn yet
	Growing                 // consuming fragments
	Completed               // atom budget filled exactly
	Exhausted               // a fragment overflowed the budget; partial chain
	Degenerate              // placement hit degenerate geometry; partial chain
	Stuck                   // retry bound exceeded at the clash gate
)

func (s State) String() string {
	switch s {
	case Seeded:
		return "seeded"
	case Growing:
		return "growing"
	case Completed:
		return "completed"
	case Exhausted:
		return "exhausted"
	case Degenerate:
		return "degenerate"
	case Stuck:
		return "stuck"
	}
	return "unknown"
}

// Options steer one builder. The zero value is usable apart from the
// pattern, which New defaults for loops.
type Options struct {
	Pattern    string // label pattern fragments must match
	MaxRetries int    // clash-gate redraws per growth step
	Batched    bool   // use the batched clash predicate instead of the incremental one
	Vbsty      int    // 0 quiet, 1 chat, 2 per-fragment detail
	Log        *log.Logger
}

const (
	PatternDflt    = "L{2,6}"
	maxRetriesDflt = 50
)

// Builder is immutable once made and safe to share between goroutines;
// each Build owns its chain and takes its own random source.
type Builder struct {
	consts  *bgeo.Constants
	pool    *fragdb.Pool
	valid   *clash.Validator
	windows []fragdb.Window
	opts    Options
}

// Result is what a build hands back. Chain is never nil; on the
// failure states it holds whatever was placed, kept for diagnostics.
type Result struct {
	Chain    *chain.Backbone
	State    State
	NFrags   int // fragments accepted
	Rejected int // fragments thrown out by the clash gate
}

// New resolves the candidate windows for the pattern up front. An
// empty pool for the pattern surfaces here as fragdb.ErrNoFragments,
// before any build starts.
func New(consts *bgeo.Constants, pool *fragdb.Pool, opts *Options) (*Builder, error) {
	b := &Builder{consts: consts, pool: pool, valid: clash.NewValidator(bgeo.NewClashTable())}
	if opts != nil {
		b.opts = *opts
	}
	if b.opts.Pattern == "" {
		b.opts.Pattern = PatternDflt
	}
	if b.opts.MaxRetries == 0 {
		b.opts.MaxRetries = maxRetriesDflt
	}
	if b.opts.Log == nil {
		b.opts.Log = log.New(io.Discard, "", 0)
	}
	var err error
	if b.windows, err = pool.FragmentsMatching(b.opts.Pattern); err != nil {
		return nil, err
	}
	if b.opts.Vbsty > 0 {
		b.opts.Log.Printf("%d candidate windows for pattern %q", len(b.windows), b.opts.Pattern)
	}
	return b, nil
}

// bondCycle is the repeating (bond length, bend complement) pairs
// consumed one per placed atom, in the order C->N, N->CA, CA->C. The
// index into the cycle follows from the atom position alone, so a
// rollback needs no bookkeeping here.
func (b *Builder) bondCycle() (lens, bends [3]float64) {
	lens = [3]float64{b.consts.DistCNp1, b.consts.DistNCa, b.consts.DistCaC}
	bends = [3]float64{
		math.Pi - b.consts.AngCaCNp1,
		math.Pi - b.consts.AngCm1NCa,
		math.Pi - b.consts.AngNCaC,
	}
	return lens, bends
}

// Build grows one conformer for the sequence. On Completed the error
// is nil. Exhausted also returns a nil error: the chain is complete up
// to the last fragment boundary and flagged by its state, the caller
// decides whether a short chain is acceptable. Degenerate and Stuck
// come back with the matching error and the partial chain. A
// cancelled context abandons the chain entirely.
func (b *Builder) Build(ctx context.Context, seq string, rng fragdb.Rand) (*Result, error) {
	if len(seq) == 0 {
		return nil, Error("build: empty sequence")
	}
	res := &Result{Chain: chain.NewBackbone(len(seq)), State: Seeded}
	bb := res.Chain
	if err := b.seed(bb); err != nil {
		res.State = Degenerate
		return res, err
	}

	lens, bends := b.bondCycle()
	retries := 0
	for !bb.Full() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		res.State = Growing

		frag := b.pool.Draw(b.windows, rng)
		tors := frag.Interior()
		pre := bb.Len()

		overflow := false
		for _, torsion := range tors {
			if bb.Full() {
				overflow = true
				break
			}
			i := bb.Len()
			parent, xPoint, yPoint := bb.Last3()
			v, err := geom.PlaceAtom(bends[(i-3)%3], torsion, lens[(i-3)%3],
				parent, xPoint, yPoint)
			if err != nil {
				res.State = Degenerate
				return res, fmt.Errorf("growing atom %d from fragment %s: %w",
					i, frag.Source, err)
			}
			bb.Append(v)
		}

		if overflow {
			// The fragment does not fit the remaining budget. The
			// partly placed piece is rolled back to the fragment
			// boundary so the chain always ends on an accepted
			// fragment.
			bb.Rollback(pre)
			res.State = Exhausted
			if b.opts.Vbsty > 0 {
				b.opts.Log.Printf("exhausted at %d of %d residues",
					bb.NResPlaced(), bb.NRes())
			}
			return res, nil
		}

		if bb.Len() == pre { // a one-residue window has no interior
			retries++
			if retries > b.opts.MaxRetries {
				res.State = Stuck
				return res, ErrRetriesExhausted
			}
			continue
		}

		if b.gateClash(bb, pre) {
			bb.Rollback(pre)
			res.Rejected++
			retries++
			if b.opts.Vbsty > 1 {
				b.opts.Log.Printf("clash: rejected fragment %s at %d atoms (retry %d)",
					frag.Source, pre, retries)
			}
			if retries > b.opts.MaxRetries {
				res.State = Stuck
				return res, ErrRetriesExhausted
			}
			continue
		}

		retries = 0
		res.NFrags++
		if b.opts.Vbsty > 1 {
			b.opts.Log.Printf("accepted fragment %s, %d of %d atoms",
				frag.Source, bb.Len(), bb.Budget())
		}
	}
	res.State = Completed
	return res, nil
}

// seed places the first residue without consulting the pool: N at the
// origin, CA on the x axis one bond length out, and C from the bend
// angle at CA with a null torsion against a dummy reference point off
// the axis.
func (b *Builder) seed(bb *chain.Backbone) error {
	bb.Append(geom.Vec3{})
	bb.Append(geom.Vec3{X: b.consts.DistNCa})
	dummy := geom.Vec3{Y: b.consts.DistNCa}
	c, err := geom.PlaceAtom(math.Pi-b.consts.AngNCaC, 0, b.consts.DistCaC,
		bb.At(1), bb.At(0), dummy)
	if err != nil {
		return fmt.Errorf("seeding: %w", err)
	}
	bb.Append(c)
	return nil
}

// gateClash asks the validator whether the freshly appended segment
// hits the chain placed before it. Residues covalently tied to the
// boundary are left out of both groups: the two settled residues
// behind the boundary and the first fresh residue. Without that
// windowing every peptide bond would read as a clash.
func (b *Builder) gateClash(bb *chain.Backbone, preAtoms int) bool {
	preRes := preAtoms / 3
	sc, sk := bb.Segment(0, preRes-2)
	fc, fk := bb.Segment(preRes+1, bb.NRes())
	if len(sc) == 0 || len(fc) == 0 {
		return false // nothing far enough from the boundary to compare
	}
	settled := clash.Group{Coords: sc, Kinds: sk}
	fresh := clash.Group{Coords: fc, Kinds: fk}
	if b.opts.Batched {
		return b.valid.HasClashBatched(settled, fresh)
	}
	return b.valid.HasClashIncremental(settled, fresh)
}
