// Package gene models a single gene sequence with case-encoded exon/intron
// structure and enumerates candidate guide windows across it.
package gene

import (
	"errors"
	"fmt"

	"github.com/bescan/bescan/internal/seq"
)

// ErrEmptySequence is returned when a gene record contains no sequence data.
var ErrEmptySequence = errors.New("empty gene sequence")

// SegmentKind distinguishes exonic from intronic runs.
type SegmentKind int

const (
	Exon SegmentKind = iota
	Intron
)

// String returns the segment kind label.
func (k SegmentKind) String() string {
	if k == Exon {
		return "Exon"
	}
	return "Intron"
}

// Segment is a maximal run of exonic or intronic bases.
// Start and End are gene positions, half-open [Start, End).
// Index is the exon number for exon segments; intron segments carry the
// index of the preceding exon (0 for an intron before the first exon).
type Segment struct {
	Kind  SegmentKind
	Start int
	End   int
	Index int
}

// Gene is a parsed gene record. The raw sequence uses letter case to encode
// exon/intron membership (uppercase = exon). ParseExons and ExtractMetadata
// must run, in that order, before guide enumeration; after that the Gene is
// read-only.
type Gene struct {
	Name   string
	Strand string // "plus" or "minus"
	Offset int    // genomic position of gene position 0

	sequence string
	revComp  string // reverse complement of sequence, case-preserving
	segments []Segment
	frames   []int // coding frame per position: 0/1/2 exonic, -1 intronic
	exons    []int // exon index per position
}

// New creates a gene from an in-memory sequence. The sequence must contain
// only ACGT bases (either case).
func New(name, strand, sequence string) (*Gene, error) {
	if err := seq.ValidateSequence(sequence); err != nil {
		return nil, fmt.Errorf("gene %s: %w", name, err)
	}
	if strand == "" {
		strand = "plus"
	}
	if strand != "plus" && strand != "minus" {
		return nil, fmt.Errorf("gene %s: strand must be plus or minus, got %q", name, strand)
	}
	return &Gene{Name: name, Strand: strand, sequence: sequence}, nil
}

// Len returns the sequence length in bases.
func (g *Gene) Len() int {
	return len(g.sequence)
}

// Sequence returns the raw case-encoded sequence.
func (g *Gene) Sequence() string {
	return g.sequence
}

// Segments returns the ordered exon/intron segment list built by ParseExons.
func (g *Gene) Segments() []Segment {
	return g.segments
}

// ExonCount returns the number of exon segments.
func (g *Gene) ExonCount() int {
	n := 0
	for _, s := range g.segments {
		if s.Kind == Exon {
			n++
		}
	}
	return n
}

// ParseExons splits the sequence into maximal uppercase (exon) and lowercase
// (intron) runs. Exon numbering counts uppercase runs only; an intron carries
// the index of the exon before it, so the per-position exon index is
// monotonically non-decreasing.
func (g *Gene) ParseExons() error {
	if len(g.sequence) == 0 {
		return fmt.Errorf("gene %s: %w", g.Name, ErrEmptySequence)
	}

	g.segments = g.segments[:0]
	exonIdx := -1
	start := 0
	kind := kindOf(g.sequence[0])

	for i := 1; i <= len(g.sequence); i++ {
		if i < len(g.sequence) && kindOf(g.sequence[i]) == kind {
			continue
		}
		idx := exonIdx
		if kind == Exon {
			exonIdx++
			idx = exonIdx
		}
		if idx < 0 {
			idx = 0 // intron before the first exon
		}
		g.segments = append(g.segments, Segment{Kind: kind, Start: start, End: i, Index: idx})
		if i < len(g.sequence) {
			start = i
			kind = kindOf(g.sequence[i])
		}
	}
	return nil
}

// ExtractMetadata computes per-position coding frame and exon index, and the
// reverse complement used for antisense enumeration. The coding frame cycles
// 0,1,2 across exonic bases only; intronic positions are marked -1.
// ParseExons must have run first.
func (g *Gene) ExtractMetadata() error {
	if g.segments == nil {
		return fmt.Errorf("gene %s: exons not parsed", g.Name)
	}

	n := len(g.sequence)
	g.frames = make([]int, n)
	g.exons = make([]int, n)

	coding := 0
	for _, s := range g.segments {
		for i := s.Start; i < s.End; i++ {
			g.exons[i] = s.Index
			if s.Kind == Exon {
				g.frames[i] = coding % 3
				coding++
			} else {
				g.frames[i] = -1
			}
		}
	}

	rc, err := seq.ReverseComplement(g.sequence)
	if err != nil {
		return fmt.Errorf("gene %s: %w", g.Name, err)
	}
	g.revComp = rc
	return nil
}

// FrameAt returns the coding frame at a gene position (-1 for intronic).
func (g *Gene) FrameAt(pos int) int {
	return g.frames[pos]
}

// ExonAt returns the exon index at a gene position.
func (g *Gene) ExonAt(pos int) int {
	return g.exons[pos]
}

// GenomicAt maps a gene position to its genomic position.
func (g *Gene) GenomicAt(pos int) int {
	return g.Offset + pos
}

func kindOf(b byte) SegmentKind {
	if b >= 'A' && b <= 'Z' {
		return Exon
	}
	return Intron
}
