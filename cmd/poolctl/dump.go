package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/tinypool/internal/memregion"
	"github.com/joshuapare/tinypool/pool"
	"github.com/joshuapare/tinypool/pool/printer"
)

var (
	dumpSize  int
	dumpAlign int
	dumpFill  int
	dumpSeed  int64
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpSize, "size", 1<<16, "Region size in bytes")
	cmd.Flags().IntVar(&dumpAlign, "align", 16, "Allocation alignment in bytes")
	cmd.Flags().IntVar(&dumpFill, "fill", 50, "Target occupancy percentage")
	cmd.Flags().Int64Var(&dumpSeed, "seed", 1, "Workload seed")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump bitmap state after a synthetic workload",
		Long: `The dump command fills a pool to a target occupancy with a seeded
random workload and prints the resulting head and body bitmaps. Useful for
eyeballing fragmentation behavior at different fill levels.

Example:
  poolctl dump --fill 75
  poolctl dump --size 4096 --fill 90 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump()
		},
	}
	return cmd
}

func runDump() error {
	if dumpFill < 0 || dumpFill > 100 {
		return fmt.Errorf("fill must be in [0, 100], got %d", dumpFill)
	}

	region, cleanup, err := memregion.Alloc(dumpSize)
	if err != nil {
		return fmt.Errorf("failed to map region: %w", err)
	}
	defer cleanup()

	p, err := pool.New(region, dumpAlign, &pool.Config{TrackStats: true})
	if err != nil {
		return fmt.Errorf("failed to initialize pool: %w", err)
	}
	defer p.Close()

	// Overshoot with small allocations, then free random ones until the
	// target occupancy is reached. This leaves realistic fragmentation.
	rng := rand.New(rand.NewSource(dumpSeed))
	var refs []pool.Ref
	for {
		ref, _, err := p.Malloc(1 + rng.Intn(4*p.Step()))
		if err != nil {
			break
		}
		refs = append(refs, ref)
	}
	target := p.DataSize() * dumpFill / 100
	for p.Stats().Used > target && len(refs) > 0 {
		i := rng.Intn(len(refs))
		if err := p.Free(refs[i]); err != nil {
			return err
		}
		refs[i] = refs[len(refs)-1]
		refs = refs[:len(refs)-1]
	}
	printVerbose("%d live allocations, %d bytes used\n", len(refs), p.Stats().Used)

	snap, err := p.Snapshot()
	if err != nil {
		return err
	}
	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	return printer.New(os.Stdout, opts).Print(snap)
}
