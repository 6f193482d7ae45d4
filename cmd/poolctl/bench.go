package main

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/tinypool/internal/memregion"
	"github.com/joshuapare/tinypool/pool"
)

var (
	benchSize    int
	benchAlign   int
	benchOps     int
	benchWorkers int
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchSize, "size", 1<<20, "Region size in bytes per worker")
	cmd.Flags().IntVar(&benchAlign, "align", 16, "Allocation alignment in bytes")
	cmd.Flags().IntVar(&benchOps, "ops", 1_000_000, "Operations per worker")
	cmd.Flags().IntVar(&benchWorkers, "workers", runtime.GOMAXPROCS(0), "Concurrent workers, one pool each")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a synthetic allocation workload",
		Long: `The bench command runs a randomized alloc/free workload against one
pool per worker and reports aggregate throughput. Pools are single-owner,
so concurrency comes from independent pools rather than a shared one.

Example:
  poolctl bench --ops 5000000
  poolctl bench --size 65536 --workers 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
	return cmd
}

type benchResult struct {
	Workers  int     `json:"workers"`
	Ops      int     `json:"ops"`
	Failed   int     `json:"failed"`
	Elapsed  string  `json:"elapsed"`
	OpsPerMs float64 `json:"ops_per_ms"`
}

func runBench() error {
	printVerbose("Starting %d workers, %d ops each\n", benchWorkers, benchOps)

	fails := make([]int, benchWorkers)
	start := time.Now()

	var g errgroup.Group
	for w := 0; w < benchWorkers; w++ {
		w := w
		g.Go(func() error {
			region, cleanup, err := memregion.Alloc(benchSize)
			if err != nil {
				return fmt.Errorf("worker %d: failed to map region: %w", w, err)
			}
			defer cleanup()

			p, err := pool.New(region, benchAlign, nil)
			if err != nil {
				return fmt.Errorf("worker %d: failed to initialize pool: %w", w, err)
			}
			defer p.Close()

			rng := rand.New(rand.NewSource(int64(w) + 1))
			var refs []pool.Ref
			for op := 0; op < benchOps; op++ {
				if len(refs) > 0 && rng.Intn(5) < 2 {
					i := rng.Intn(len(refs))
					if err := p.Free(refs[i]); err != nil {
						return fmt.Errorf("worker %d: free: %w", w, err)
					}
					refs[i] = refs[len(refs)-1]
					refs = refs[:len(refs)-1]
					continue
				}
				ref, _, err := p.Malloc(1 + rng.Intn(256))
				if err != nil {
					fails[w]++
					continue
				}
				refs = append(refs, ref)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	totalOps := benchWorkers * benchOps
	totalFails := 0
	for _, f := range fails {
		totalFails += f
	}

	res := benchResult{
		Workers:  benchWorkers,
		Ops:      totalOps,
		Failed:   totalFails,
		Elapsed:  elapsed.String(),
		OpsPerMs: float64(totalOps) / float64(elapsed.Milliseconds()+1),
	}
	if jsonOut {
		return printJSON(res)
	}
	printInfo("workers:   %d\n", res.Workers)
	printInfo("ops:       %d (%d failed allocs)\n", res.Ops, res.Failed)
	printInfo("elapsed:   %s\n", res.Elapsed)
	printInfo("ops/ms:    %.0f\n", res.OpsPerMs)
	return nil
}
