package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bescan/bescan/internal/guide"
)

func TestCSVWriterHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	assert.Equal(t,
		"sgRNA_seq,starting_frame,chr_pos,gene_pos,coding_seq,exon,sgRNA_strand,gene_strand,editing_window,gene,win_overlap",
		strings.TrimSpace(buf.String()))
}

func TestCSVWriterRow(t *testing.T) {
	g := guide.Guide{
		Seq:           "ACGTacgtACGTACGTACGT",
		StartingFrame: 2,
		ChrPos:        1042,
		GenePos:       42,
		CodingSeq:     "ACGTacgtACGTACGTACGT",
		Exon:          3,
		Strand:        guide.Sense,
		GeneStrand:    "minus",
		WindowStart:   1046,
		WindowEnd:     1050,
		Gene:          "DNMT3A",
		WinOverlap:    "Exon/Intron",
	}

	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.Write(g))
	require.NoError(t, w.Flush())

	// The editing window is a python-style tuple, so the field gets quoted.
	assert.Equal(t,
		`ACGTacgtACGTACGTACGT,2,1042,42,ACGTacgtACGTACGTACGT,3,sense,minus,"(1046, 1050)",DNMT3A,Exon/Intron`,
		strings.TrimSpace(buf.String()))
}

func TestCSVWriterWriteAll(t *testing.T) {
	guides := []guide.Guide{
		{Seq: "AAAA", CodingSeq: "AAAA", Strand: guide.Sense, GeneStrand: "plus", Gene: "G", WinOverlap: "Exon"},
		{Seq: "CCCC", CodingSeq: "GGGG", Strand: guide.Antisense, GeneStrand: "plus", Gene: "G", WinOverlap: "Exon"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(&buf).WriteAll(guides))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows
	assert.True(t, strings.HasPrefix(lines[1], "AAAA,"))
	assert.True(t, strings.HasPrefix(lines[2], "CCCC,"))
}
