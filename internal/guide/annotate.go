package guide

import (
	"fmt"

	"github.com/bescan/bescan/internal/gene"
	"github.com/bescan/bescan/internal/seq"
)

// Strand labels a guide's orientation relative to the gene sequence.
type Strand string

const (
	Sense     Strand = "sense"
	Antisense Strand = "antisense"
)

// Guide is a fully annotated surviving candidate. Immutable once built.
type Guide struct {
	Seq           string // guide sequence in guide orientation
	StartingFrame int    // coding frame at the anchor, -1 for intronic
	ChrPos        int    // genomic position of the anchor
	GenePos       int    // gene position of the anchor
	CodingSeq     string // sense-strand orientation of the guide sequence
	Exon          int    // exon index at the anchor
	Strand        Strand // sense or antisense
	GeneStrand    string // plus or minus
	WindowStart   int    // genomic position of editing window bound w0
	WindowEnd     int    // genomic position of editing window bound w1
	Gene          string
	WinOverlap    string // "Exon" or "Exon/Intron"
}

// Annotate builds the full record for one surviving candidate.
//
// The editing-window interval is directional: for antisense guides it runs
// (anchor-w0, anchor-w1) and is deliberately not normalized to low/high
// order, so downstream consumers can infer strand from interval order.
func Annotate(c gene.Candidate, g *gene.Gene, strand Strand, win Window) (Guide, error) {
	coding := c.Seq
	chrPos := g.GenomicAt(c.Anchor)
	winStart := chrPos + win.Start
	winEnd := chrPos + win.End

	if strand == Antisense {
		rc, err := seq.ReverseComplement(c.Seq)
		if err != nil {
			return Guide{}, fmt.Errorf("annotate guide at %d: %w", c.Anchor, err)
		}
		coding = rc
		winStart = chrPos - win.Start
		winEnd = chrPos - win.End
	}

	return Guide{
		Seq:           c.Seq,
		StartingFrame: c.Frame,
		ChrPos:        chrPos,
		GenePos:       c.Anchor,
		CodingSeq:     coding,
		Exon:          c.Exon,
		Strand:        strand,
		GeneStrand:    g.Strand,
		WindowStart:   winStart,
		WindowEnd:     winEnd,
		Gene:          g.Name,
		WinOverlap:    classifyOverlap(c.Seq, win),
	}, nil
}

// classifyOverlap reports whether the editing window of the guide sequence
// sits entirely in exonic (uppercase) bases.
func classifyOverlap(guideSeq string, win Window) string {
	for i := win.Start; i <= win.End && i < len(guideSeq); i++ {
		b := guideSeq[i]
		if b >= 'a' && b <= 'z' {
			return "Exon/Intron"
		}
	}
	return "Exon"
}

// DropAmbiguous removes every guide whose coding sequence appears more than
// once across the combined forward and reverse results. Guides hitting the
// same protospacer from both strands are excluded entirely rather than
// collapsed, since their edits cannot be attributed to one site.
func DropAmbiguous(guides []Guide) []Guide {
	counts := make(map[string]int, len(guides))
	for _, g := range guides {
		counts[g.CodingSeq]++
	}
	out := guides[:0:0]
	for _, g := range guides {
		if counts[g.CodingSeq] == 1 {
			out = append(out, g)
		}
	}
	return out
}
