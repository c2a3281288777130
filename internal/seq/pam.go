package seq

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// iupacClass maps IUPAC nucleotide codes to the set of bases they stand for.
// Ambiguity codes are unions of the canonical bases (e.g. R = A/G).
var iupacClass = map[byte]string{
	'A': "A",
	'C': "C",
	'G': "G",
	'T': "T",
	'R': "AG",
	'Y': "CT",
	'S': "CG",
	'W': "AT",
	'K': "GT",
	'M': "AC",
	'B': "CGT",
	'D': "AGT",
	'H': "ACT",
	'V': "ACG",
	'N': "ACGT",
}

// casPAMs maps recognized Cas variants to their default PAM requirement.
var casPAMs = map[string]string{
	"Sp":         "NGG",
	"SpG":        "NGN",
	"SpRY":       "NNN",
	"SpCas9-NG":  "NG",
	"SaCas9":     "NNGRRT",
	"SaCas9-KKH": "NNNRRT",
}

// casGuideLengths maps Cas variants to their protospacer length.
// Variants absent from the map use DefaultGuideLength.
var casGuideLengths = map[string]int{
	"SaCas9":     21,
	"SaCas9-KKH": 21,
}

// DefaultGuideLength is the protospacer length for SpCas9-family variants.
const DefaultGuideLength = 20

// CasTypes returns the recognized Cas type names in sorted order.
func CasTypes() []string {
	names := make([]string, 0, len(casPAMs))
	for name := range casPAMs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GuideLength returns the protospacer length for a Cas type.
func GuideLength(casType string) int {
	if n, ok := casGuideLengths[casType]; ok {
		return n
	}
	return DefaultGuideLength
}

// ResolveCasOrPAM resolves the PAM specification to use. An explicit PAM
// takes precedence over the Cas type lookup.
func ResolveCasOrPAM(casType, explicitPAM string) (string, error) {
	if explicitPAM != "" {
		return explicitPAM, nil
	}
	if pam, ok := casPAMs[casType]; ok {
		return pam, nil
	}
	return "", fmt.Errorf("%w: %q (options are %s)",
		ErrUnknownCasType, casType, strings.Join(CasTypes(), ", "))
}

// PAM is a compiled PAM pattern matched against the fixed-length window of
// bases immediately adjacent to a candidate guide.
type PAM struct {
	Spec string
	re   *regexp.Regexp
}

// Len returns the number of bases the PAM occupies.
func (p *PAM) Len() int {
	return len(p.Spec)
}

// Match reports whether the adjacent window matches the PAM pattern.
// Matching is case-insensitive: a PAM may sit in intronic sequence.
func (p *PAM) Match(window string) bool {
	if len(window) != len(p.Spec) {
		return false
	}
	return p.re.MatchString(strings.ToUpper(window))
}

// CompilePAM translates an IUPAC ambiguity-coded PAM string into a compiled
// positional matcher.
func CompilePAM(spec string) (*PAM, error) {
	if spec == "" {
		return nil, fmt.Errorf("%w: empty spec", ErrInvalidPAM)
	}
	var pattern strings.Builder
	pattern.WriteByte('^')
	upper := strings.ToUpper(spec)
	for i := 0; i < len(upper); i++ {
		class, ok := iupacClass[upper[i]]
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d in %q", ErrInvalidPAM, spec[i], i, spec)
		}
		if len(class) == 1 {
			pattern.WriteString(class)
		} else {
			pattern.WriteByte('[')
			pattern.WriteString(class)
			pattern.WriteByte(']')
		}
	}
	pattern.WriteByte('$')

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPAM, spec, err)
	}
	return &PAM{Spec: upper, re: re}, nil
}
