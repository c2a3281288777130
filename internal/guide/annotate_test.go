package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bescan/bescan/internal/gene"
)

func TestAnnotateSense(t *testing.T) {
	g := mustGene(t, "AACCTAGGTT")
	g.Offset = 1000
	win := Window{0, 3}

	c := gene.Candidate{Seq: "CCTA", Frame: 2, Anchor: 2, Exon: 0, PAM: "GG"}
	ann, err := Annotate(c, g, Sense, win)
	require.NoError(t, err)

	assert.Equal(t, "CCTA", ann.Seq)
	assert.Equal(t, 2, ann.StartingFrame)
	assert.Equal(t, 1002, ann.ChrPos)
	assert.Equal(t, 2, ann.GenePos)
	assert.Equal(t, "CCTA", ann.CodingSeq, "sense coding seq is the guide itself")
	assert.Equal(t, Sense, ann.Strand)
	assert.Equal(t, "plus", ann.GeneStrand)
	assert.Equal(t, 1002, ann.WindowStart)
	assert.Equal(t, 1005, ann.WindowEnd)
	assert.Equal(t, "TEST", ann.Gene)
	assert.Equal(t, "Exon", ann.WinOverlap)
}

func TestAnnotateAntisense(t *testing.T) {
	g := mustGene(t, "AACCTAGGTT")
	win := Window{1, 3}

	// Antisense candidate anchored at its 5' end (gene position 7).
	c := gene.Candidate{Seq: "CCTA", Frame: 1, Anchor: 7, Exon: 0, PAM: "GG"}
	ann, err := Annotate(c, g, Antisense, win)
	require.NoError(t, err)

	assert.Equal(t, "CCTA", ann.Seq)
	assert.Equal(t, "TAGG", ann.CodingSeq, "antisense coding seq is the reverse complement")
	assert.Equal(t, Antisense, ann.Strand)

	// Directional interval: antisense windows run downward from the anchor
	// and stay unnormalized so consumers can infer strand from the order.
	assert.Equal(t, 6, ann.WindowStart)
	assert.Equal(t, 4, ann.WindowEnd)
}

func TestClassifyOverlap(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		win  Window
		want string
	}{
		{"all exonic", "ACGT", Window{0, 3}, "Exon"},
		{"all intronic", "acgt", Window{0, 3}, "Exon/Intron"},
		{"mixed", "ACgt", Window{0, 3}, "Exon/Intron"},
		{"window avoids intron", "ACgt", Window{0, 1}, "Exon"},
		{"window hits intron", "ACgt", Window{2, 3}, "Exon/Intron"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyOverlap(tt.seq, tt.win))
		})
	}
}

func TestDropAmbiguous(t *testing.T) {
	guides := []Guide{
		{Seq: "AAAA", CodingSeq: "AAAA", Strand: Sense},
		{Seq: "CCCC", CodingSeq: "GGGG", Strand: Sense},
		{Seq: "TTTT", CodingSeq: "AAAA", Strand: Antisense}, // collides with first
		{Seq: "GGGG", CodingSeq: "CCCC", Strand: Antisense},
	}

	kept := DropAmbiguous(guides)
	require.Len(t, kept, 2, "both colliding rows are dropped, not collapsed")
	assert.Equal(t, "GGGG", kept[0].CodingSeq)
	assert.Equal(t, "CCCC", kept[1].CodingSeq)
}

// Dropping is symmetric: the surviving count shrinks by the full collision
// group size.
func TestDropAmbiguousCounts(t *testing.T) {
	guides := []Guide{
		{CodingSeq: "AAAA"},
		{CodingSeq: "AAAA"},
		{CodingSeq: "CCCC"},
	}
	kept := DropAmbiguous(guides)
	assert.Len(t, kept, len(guides)-2)
}

func TestDropAmbiguousNoCollisions(t *testing.T) {
	guides := []Guide{{CodingSeq: "AAAA"}, {CodingSeq: "CCCC"}}
	assert.Equal(t, guides, DropAmbiguous(guides))
}
