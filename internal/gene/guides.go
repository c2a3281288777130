package gene

import "iter"

// Candidate is one fixed-length guide window slid across the gene.
//
// Seq is the window in guide orientation (5'→3' on the guide's own strand),
// case-preserved. PAM is the adjacent context the PAM pattern is matched
// against, also in guide orientation. Anchor is the gene position of the
// first base for forward candidates and of the last base for reverse
// candidates; Frame and Exon are sampled at the anchor.
type Candidate struct {
	Seq    string
	Frame  int
	Anchor int
	Exon   int
	PAM    string
}

// ForwardGuides returns a lazy, restartable sequence of every sense-strand
// candidate of the given length. The PAM context is the pamLen bases
// immediately 3' of the window; windows without full PAM context are not
// produced.
func (g *Gene) ForwardGuides(length, pamLen int) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		n := len(g.sequence)
		for s := 0; s+length+pamLen <= n; s++ {
			c := Candidate{
				Seq:    g.sequence[s : s+length],
				Frame:  g.frames[s],
				Anchor: s,
				Exon:   g.exons[s],
				PAM:    g.sequence[s+length : s+length+pamLen],
			}
			if !yield(c) {
				return
			}
		}
	}
}

// ReverseGuides returns a lazy, restartable sequence of every antisense
// candidate of the given length. A reverse guide occupying gene positions
// [s, s+length) reads 3'→5' in gene orientation, so its sequence is the
// reverse complement of the gene slice and its anchor is the window's last
// gene position (the guide's 5' end). The PAM context is 5' of the window in
// gene coordinates, reverse complemented into guide orientation.
func (g *Gene) ReverseGuides(length, pamLen int) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		n := len(g.sequence)
		for s := pamLen; s+length <= n; s++ {
			anchor := s + length - 1
			c := Candidate{
				// revComp[i] complements sequence[n-1-i], so the window
				// sequence[s:s+length] maps to revComp[n-s-length:n-s].
				Seq:    g.revComp[n-s-length : n-s],
				Frame:  g.frames[anchor],
				Anchor: anchor,
				Exon:   g.exons[anchor],
				PAM:    g.revComp[n-s : n-s+pamLen],
			}
			if !yield(c) {
				return
			}
		}
	}
}
