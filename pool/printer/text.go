package printer

import (
	"fmt"

	"github.com/joshuapare/tinypool/pool"
)

// printText renders a snapshot as a human-readable report. Byte counts are
// digit-grouped for readability on large regions.
func (p *Printer) printText(s pool.Snapshot) error {
	w := p.writer

	p.msg.Fprintf(w, "alignment:    %d bytes\n", s.Align)
	p.msg.Fprintf(w, "step:         %d bytes\n", s.Step)
	p.msg.Fprintf(w, "chunks:       %d x %d blocks\n", s.ChunkCount, s.ChunkBlocks)
	p.msg.Fprintf(w, "data size:    %d bytes\n", s.DataSize)
	p.msg.Fprintf(w, "max alloc:    %d bytes\n", s.MaxAlloc)
	fmt.Fprintf(w, "full:         %v\n", s.Full)

	if p.opts.ShowStats && s.StatsEnabled {
		st := s.Stats
		p.msg.Fprintf(w, "used:         %d bytes\n", st.Used)
		p.msg.Fprintf(w, "peak:         %d bytes\n", st.Peak)
		p.msg.Fprintf(w, "requested:    %d bytes\n", st.Need)
		p.msg.Fprintf(w, "granted:      %d bytes\n", st.Real)
		waste := 0
		if st.Real > 0 {
			waste = (st.Real - st.Need) * 100 / st.Real
		}
		fmt.Fprintf(w, "waste:        %d%%\n", waste)
		p.msg.Fprintf(w, "allocations:  %d (%d failed)\n", st.Allocs, st.Fails)
	}

	if p.opts.ShowChunks {
		for _, c := range s.Chunks {
			fmt.Fprintf(w, "  chunk %4d: head %0*b\n", c.Index, s.ChunkBlocks, c.Head)
			fmt.Fprintf(w, "              body %0*b\n", s.ChunkBlocks, c.Body)
		}
	}
	return nil
}
