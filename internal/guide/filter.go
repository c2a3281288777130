// Package guide filters enumerated guide candidates and annotates the
// survivors into the final guide table records.
package guide

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bescan/bescan/internal/gene"
	"github.com/bescan/bescan/internal/seq"
)

// Sentinel errors for guide parameter validation.
var (
	ErrInvalidWindow   = errors.New("invalid editing window")
	ErrInvalidEditPair = errors.New("invalid edit pair")
)

// Window is the inclusive range of guide positions where base editing is
// chemically effective, 0-indexed into the guide sequence.
type Window struct {
	Start int
	End   int
}

// Validate checks the window ordering and range invariants against the
// guide length.
func (w Window) Validate(guideLength int) error {
	if w.Start < 0 {
		return fmt.Errorf("%w: start %d is negative", ErrInvalidWindow, w.Start)
	}
	if w.End < w.Start {
		return fmt.Errorf("%w: end %d before start %d", ErrInvalidWindow, w.End, w.Start)
	}
	if w.End >= guideLength {
		return fmt.Errorf("%w: end %d exceeds guide length %d", ErrInvalidWindow, w.End, guideLength)
	}
	return nil
}

// EditPair is the base conversion a base editor performs (e.g. A→G).
type EditPair struct {
	From byte
	To   byte
}

// Validate checks that both edit bases are single ACGT characters.
func (e EditPair) Validate() error {
	if !seq.IsBase(e.From) {
		return fmt.Errorf("%w: edit-from %q is not an ACGT base", ErrInvalidEditPair, e.From)
	}
	if !seq.IsBase(e.To) {
		return fmt.Errorf("%w: edit-to %q is not an ACGT base", ErrInvalidEditPair, e.To)
	}
	return nil
}

// Filter reports whether a candidate survives: its adjacent context must
// match the PAM pattern, and at least one base inside the editing window of
// the guide sequence must equal the edit-from base. Matching is
// case-insensitive since intronic bases are still editable. Pure predicate.
func Filter(c gene.Candidate, pam *seq.PAM, edit EditPair, win Window) bool {
	if !pam.Match(c.PAM) {
		return false
	}
	if win.End >= len(c.Seq) {
		return false
	}
	slice := strings.ToUpper(c.Seq[win.Start : win.End+1])
	from := strings.ToUpper(string(edit.From))
	return strings.Contains(slice, from)
}

// FilterRepeats removes exact duplicate candidates within one strand's
// collection, keyed by (sequence, anchor). Overlapping PAM matches can
// otherwise produce the same guide twice. Order is preserved.
func FilterRepeats(candidates []gene.Candidate) []gene.Candidate {
	type key struct {
		seq    string
		anchor int
	}
	seen := make(map[key]bool, len(candidates))
	out := candidates[:0:0]
	for _, c := range candidates {
		k := key{c.Seq, c.Anchor}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}
