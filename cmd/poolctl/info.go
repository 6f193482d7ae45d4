package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/tinypool/internal/memregion"
	"github.com/joshuapare/tinypool/pool"
	"github.com/joshuapare/tinypool/pool/printer"
)

var (
	infoSize  int
	infoAlign int
)

func init() {
	cmd := newInfoCmd()
	cmd.Flags().IntVar(&infoSize, "size", 1<<20, "Region size in bytes")
	cmd.Flags().IntVar(&infoAlign, "align", 16, "Allocation alignment in bytes")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the geometry a region yields",
		Long: `The info command initializes a pool over an anonymous memory region
and reports the resulting geometry: chunk count, step, data size, and the
largest single allocation.

Example:
  poolctl info --size 1048576
  poolctl info --size 4096 --align 64 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
	return cmd
}

func runInfo() error {
	printVerbose("Mapping %d-byte region\n", infoSize)

	region, cleanup, err := memregion.Alloc(infoSize)
	if err != nil {
		return fmt.Errorf("failed to map region: %w", err)
	}
	defer cleanup()

	p, err := pool.New(region, infoAlign, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize pool: %w", err)
	}
	defer p.Close()

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
