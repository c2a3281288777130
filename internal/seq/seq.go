// Package seq provides nucleotide sequence primitives: base validation,
// case-preserving complementation, and PAM pattern handling.
package seq

import (
	"errors"
	"fmt"
)

// Sentinel errors for sequence and PAM validation failures.
var (
	ErrInvalidBase    = errors.New("invalid base")
	ErrInvalidPAM     = errors.New("invalid PAM specification")
	ErrUnknownCasType = errors.New("unknown cas type")
)

// Bases is the accepted sequence alphabet. Ambiguity codes are only valid
// inside PAM specifications, never in sequence data.
const Bases = "ACGT"

// IsBase reports whether b is one of A, C, G, T (either case).
func IsBase(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', 'a', 'c', 'g', 't':
		return true
	}
	return false
}

// Complement returns the complement of a single base, preserving case.
// ok is false for characters outside the ACGT alphabet.
func Complement(base byte) (c byte, ok bool) {
	switch base {
	case 'A':
		return 'T', true
	case 'T':
		return 'A', true
	case 'G':
		return 'C', true
	case 'C':
		return 'G', true
	case 'a':
		return 't', true
	case 't':
		return 'a', true
	case 'g':
		return 'c', true
	case 'c':
		return 'g', true
	}
	return 0, false
}

// ReverseComplement returns the reverse complement of a DNA sequence,
// preserving the case of each base. Case carries exon/intron membership
// through strand flips, so it must survive the transform.
func ReverseComplement(s string) (string, error) {
	n := len(s)
	result := make([]byte, n)
	for i := 0; i < n; i++ {
		c, ok := Complement(s[n-1-i])
		if !ok {
			return "", fmt.Errorf("%w: %q at position %d", ErrInvalidBase, s[n-1-i], n-1-i)
		}
		result[i] = c
	}
	return string(result), nil
}

// ValidateSequence checks that every character of s is an ACGT base.
func ValidateSequence(s string) error {
	for i := 0; i < len(s); i++ {
		if !IsBase(s[i]) {
			return fmt.Errorf("%w: %q at position %d", ErrInvalidBase, s[i], i)
		}
	}
	return nil
}
