package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/tinypool/pool"
)

// jsonSnapshot mirrors pool.Snapshot with bitmap words rendered as binary
// strings, since 64-bit words do not survive a trip through JSON numbers.
type jsonSnapshot struct {
	Align       int         `json:"align"`
	Step        int         `json:"step"`
	ChunkCount  int         `json:"chunk_count"`
	ChunkBlocks int         `json:"chunk_blocks"`
	DataSize    int         `json:"data_size"`
	MaxAlloc    int         `json:"max_alloc"`
	Full        bool        `json:"full"`
	Stats       *jsonStats  `json:"stats,omitempty"`
	Chunks      []jsonChunk `json:"chunks,omitempty"`
}

type jsonStats struct {
	Used   int `json:"used"`
	Peak   int `json:"peak"`
	Need   int `json:"need"`
	Real   int `json:"real"`
	Fails  int `json:"fails"`
	Allocs int `json:"allocs"`
}

type jsonChunk struct {
	Index int    `json:"index"`
	Head  string `json:"head"`
	Body  string `json:"body"`
}

// printJSON renders a snapshot as indented JSON.
func (p *Printer) printJSON(s pool.Snapshot) error {
	out := jsonSnapshot{
		Align:       s.Align,
		Step:        s.Step,
		ChunkCount:  s.ChunkCount,
		ChunkBlocks: s.ChunkBlocks,
		DataSize:    s.DataSize,
		MaxAlloc:    s.MaxAlloc,
		Full:        s.Full,
	}

	if p.opts.ShowStats && s.StatsEnabled {
		out.Stats = &jsonStats{
			Used:   s.Stats.Used,
			Peak:   s.Stats.Peak,
			Need:   s.Stats.Need,
			Real:   s.Stats.Real,
			Fails:  s.Stats.Fails,
			Allocs: s.Stats.Allocs,
		}
	}

	if p.opts.ShowChunks {
		for _, c := range s.Chunks {
			out.Chunks = append(out.Chunks, jsonChunk{
				Index: c.Index,
				Head:  fmt.Sprintf("%0*b", s.ChunkBlocks, c.Head),
				Body:  fmt.Sprintf("%0*b", s.ChunkBlocks, c.Body),
			})
		}
	}

	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
