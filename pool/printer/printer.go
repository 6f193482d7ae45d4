// Package printer renders pool snapshots as human-readable text or JSON
// reports. It consumes the plain pool.Snapshot data and never touches a
// live pool, so printing can happen long after the pool is gone.
package printer

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/tinypool/pool"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs a human-readable report.
	FormatText Format = "text"

	// FormatJSON outputs JSON.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowChunks includes per-chunk head/body bit patterns.
	// Default: true
	ShowChunks bool

	// ShowStats includes usage counters when the snapshot carries them.
	// Default: true
	ShowStats bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:     FormatText,
		ShowChunks: true,
		ShowStats:  true,
	}
}

// Printer handles formatted output of pool snapshots.
type Printer struct {
	opts   Options
	writer io.Writer
	msg    *message.Printer
}

// New creates a new Printer writing to w.
func New(w io.Writer, opts Options) *Printer {
	return &Printer{
		opts:   opts,
		writer: w,
		msg:    message.NewPrinter(language.English),
	}
}

// Print renders the snapshot in the configured format.
func (p *Printer) Print(s pool.Snapshot) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(s)
	case FormatText, "":
		return p.printText(s)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}
