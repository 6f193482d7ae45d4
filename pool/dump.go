package pool

import (
	"fmt"
	"io"

	"github.com/joshuapare/tinypool/internal/format"
)

// ChunkBits is the literal bitmap state of one occupied chunk.
type ChunkBits struct {
	Index int
	Head  uint
	Body  uint
}

// Snapshot is a point-in-time, side-effect-free view of a pool: geometry,
// flags, counters, and the bitmap words of every chunk with any occupancy.
// It is plain data, safe to hand to printers and tools.
type Snapshot struct {
	Align       int
	Step        int
	ChunkCount  int
	ChunkBlocks int
	DataSize    int
	MaxAlloc    int

	Full bool

	StatsEnabled bool
	Stats        Stats

	Chunks []ChunkBits
}

// Snapshot captures the pool's current state. Purely observational.
func (p *Pool) Snapshot() (Snapshot, error) {
	if err := p.check(); err != nil {
		return Snapshot{}, err
	}

	s := Snapshot{
		Align:        p.lay.align,
		Step:         p.lay.step,
		ChunkCount:   p.lay.chunkCount,
		ChunkBlocks:  format.ChunkBlocks,
		DataSize:     p.lay.dataSize(),
		MaxAlloc:     p.lay.maxAlloc(),
		Full:         p.full,
		StatsEnabled: p.cfg.TrackStats,
		Stats:        p.stats,
	}
	for i := 0; i < p.lay.chunkCount; i++ {
		if body := p.bodyWord(i); body != 0 {
			s.Chunks = append(s.Chunks, ChunkBits{
				Index: i,
				Head:  p.headWord(i),
				Body:  body,
			})
		}
	}
	return s, nil
}

// Dump writes a plain-text diagnostic report to w: geometry, the full
// flag, usage counters (when enabled), and the head/body bit patterns of
// every occupied chunk. No side effects.
func (p *Pool) Dump(w io.Writer) error {
	s, err := p.Snapshot()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "pool: align: %d\n", s.Align)
	fmt.Fprintf(w, "pool: step: %d\n", s.Step)
	fmt.Fprintf(w, "pool: chunks: %d\n", s.ChunkCount)
	fmt.Fprintf(w, "pool: size: %d\n", s.DataSize)
	fmt.Fprintf(w, "pool: full: %v\n", s.Full)
	if s.StatsEnabled {
		fmt.Fprintf(w, "pool: used: %d\n", s.Stats.Used)
		fmt.Fprintf(w, "pool: peak: %d\n", s.Stats.Peak)
		fmt.Fprintf(w, "pool: wast: %d%%\n", s.Stats.wastePct())
		fmt.Fprintf(w, "pool: fail: %d\n", s.Stats.Fails)
		fmt.Fprintf(w, "pool: pred: %d%%\n", s.Stats.predPct())
	}
	for _, c := range s.Chunks {
		fmt.Fprintf(w, "\tpool: [%d]: head: %0*b, body: %0*b\n",
			c.Index, s.ChunkBlocks, c.Head, s.ChunkBlocks, c.Body)
	}
	return nil
}
