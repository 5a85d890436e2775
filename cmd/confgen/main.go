// confgen builds backbone conformers for a disordered sequence from a
// torsion angle database and writes them as PDB files.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"

	"confgen/pkg/bgeo"
	"confgen/pkg/builder"
	"confgen/pkg/chain"
	"confgen/pkg/fragdb"
	"confgen/pkg/pdbfmt"
	"confgen/pkg/rama"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]),
		"-db database -seq sequence [options]")
	flag.PrintDefaults()
}

func mymain() int {
	dbFname := flag.String("db", "", "torsion angle database file (json, maybe gzipped)")
	seq := flag.String("seq", "", "one-letter residue sequence to build")
	nConfs := flag.Int("n", 1, "number of conformers to build")
	pattern := flag.String("pattern", builder.PatternDflt,
		"secondary structure pattern fragments must match")
	outPfx := flag.String("o", "conformer", "output file prefix")
	seed := flag.Int64("seed", 1, "base random seed")
	retries := flag.Int("retries", 0, "clash-gate retries per growth step (0 = default)")
	batched := flag.Bool("batched", false, "use the batched clash check")
	ramaFname := flag.String("rama", "", "also write a ramachandran plot to this file")
	vbsty := flag.Int("v", 1, "verbosity, 0 silences progress")
	flag.Usage = usage
	flag.Parse()

	if *dbFname == "" || *seq == "" {
		usage()
		return exitFailure
	}
	lgr := log.New(os.Stderr, "", 0)

	db, err := fragdb.ReadDB(*dbFname)
	if err != nil {
		lgr.Println("fatal:", err)
		return exitFailure
	}
	pool, err := fragdb.NewPool(db)
	if err != nil {
		lgr.Println("fatal:", err)
		return exitFailure
	}
	if *vbsty > 0 {
		lgr.Printf("database %s: %d residue rows", *dbFname, pool.NRes())
	}

	bldr, err := builder.New(bgeo.DefaultConstants(), pool, &builder.Options{
		Pattern:    *pattern,
		MaxRetries: *retries,
		Batched:    *batched,
		Vbsty:      *vbsty,
		Log:        lgr,
	})
	if err != nil {
		lgr.Println("fatal:", err)
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, errs := bldr.BuildMany(ctx, *seq, *nConfs, *seed)

	var pairs [][2]float64
	nOK := 0
	for i, res := range results {
		if errs[i] != nil {
			lgr.Printf("conformer %d failed: %v", i, errs[i])
			continue
		}
		if res == nil {
			continue // cancelled before this one started
		}
		if res.State != builder.Completed && *vbsty > 0 {
			lgr.Printf("conformer %d is %s at %d of %d residues",
				i, res.State, res.Chain.NResPlaced(), res.Chain.NRes())
		}
		oxy, err := bldr.AddCarbonyls(res.Chain)
		if err != nil {
			lgr.Printf("conformer %d: %v", i, err)
			continue
		}
		cf, err := chain.Assemble(res.Chain, oxy)
		if err != nil {
			lgr.Printf("conformer %d: %v", i, err)
			continue
		}
		fname := fmt.Sprintf("%s_%d.pdb", *outPfx, i)
		if err := pdbfmt.SaveConformer(fname, *seq, cf); err != nil {
			lgr.Printf("writing %s: %v", fname, err)
			continue
		}
		nOK++
		if *ramaFname != "" {
			pp, err := rama.PhiPsi(res.Chain.Coords())
			if err == nil {
				pairs = append(pairs, pp...)
			}
		}
	}
	if *ramaFname != "" && len(pairs) > 0 {
		if err := rama.SavePlot(*ramaFname, pairs); err != nil {
			lgr.Println("plot:", err)
			return exitFailure
		}
	}
	if *vbsty > 0 {
		lgr.Printf("wrote %d of %d conformers", nOK, *nConfs)
	}
	if nOK == 0 {
		return exitFailure
	}
	return exitSuccess
}

func main() { os.Exit(mymain()) }
