// Package output provides guide table output formatters.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/bescan/bescan/internal/guide"
)

// Columns is the guide table header, in output order.
var Columns = []string{
	"sgRNA_seq",
	"starting_frame",
	"chr_pos",
	"gene_pos",
	"coding_seq",
	"exon",
	"sgRNA_strand",
	"gene_strand",
	"editing_window",
	"gene",
	"win_overlap",
}

// CSVWriter writes annotated guides as CSV rows.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a guide table CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the column header row.
func (cw *CSVWriter) WriteHeader() error {
	return cw.w.Write(Columns)
}

// Write writes a single guide row.
func (cw *CSVWriter) Write(g guide.Guide) error {
	row := []string{
		g.Seq,
		strconv.Itoa(g.StartingFrame),
		strconv.Itoa(g.ChrPos),
		strconv.Itoa(g.GenePos),
		g.CodingSeq,
		strconv.Itoa(g.Exon),
		string(g.Strand),
		g.GeneStrand,
		fmt.Sprintf("(%d, %d)", g.WindowStart, g.WindowEnd),
		g.Gene,
		g.WinOverlap,
	}
	return cw.w.Write(row)
}

// WriteAll writes the header and every guide, then flushes.
func (cw *CSVWriter) WriteAll(guides []guide.Guide) error {
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	for _, g := range guides {
		if err := cw.Write(g); err != nil {
			return err
		}
	}
	return cw.Flush()
}

// Flush flushes any buffered rows to the underlying writer.
func (cw *CSVWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
