// Building independent conformers in parallel. The builder and the
// pool are read-only, so the only per-task state is the chain and the
// random source. Each conformer index gets its own seeded source,
// which makes a run reproducible no matter how the work is scheduled.

package builder

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
)

// BuildMany grows n conformers for seq concurrently and returns them
// in index order. Conformer i is built with a source seeded baseSeed+i.
// Failed builds carry their error in the parallel error slice; a
// cancelled context leaves the remaining entries nil.
func (b *Builder) BuildMany(ctx context.Context, seq string, n int, baseSeed int64) ([]*Result, []error) {
	results := make([]*Result, n)
	errs := make([]error, n)

	nWorkers := runtime.NumCPU()
	if nWorkers > n {
		nWorkers = n
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rng := rand.New(rand.NewSource(baseSeed + int64(i)))
				results[i], errs[i] = b.Build(ctx, seq, rng)
			}
		}()
	}

loop:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break loop
		}
	}
	close(jobs)
	wg.Wait()
	return results, errs
}
