package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bescan/bescan/internal/gene"
	"github.com/bescan/bescan/internal/seq"
)

func mustGene(t *testing.T, sequence string) *gene.Gene {
	t.Helper()
	g, err := gene.New("TEST", "plus", sequence)
	require.NoError(t, err)
	require.NoError(t, g.ParseExons())
	require.NoError(t, g.ExtractMetadata())
	return g
}

func mustPAM(t *testing.T, spec string) *seq.PAM {
	t.Helper()
	pam, err := seq.CompilePAM(spec)
	require.NoError(t, err)
	return pam
}

func TestWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		win     Window
		wantErr bool
	}{
		{"default", Window{4, 8}, false},
		{"full guide", Window{0, 19}, false},
		{"single position", Window{5, 5}, false},
		{"reversed bounds", Window{8, 4}, true},
		{"negative start", Window{-1, 4}, true},
		{"end past guide", Window{4, 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.win.Validate(20)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWindow)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEditPairValidate(t *testing.T) {
	assert.NoError(t, EditPair{'A', 'G'}.Validate())
	assert.NoError(t, EditPair{'C', 'T'}.Validate())
	assert.ErrorIs(t, EditPair{'N', 'G'}.Validate(), ErrInvalidEditPair)
	assert.ErrorIs(t, EditPair{'A', 'X'}.Validate(), ErrInvalidEditPair)
	assert.ErrorIs(t, EditPair{0, 'G'}.Validate(), ErrInvalidEditPair)
}

// Sliding length-4 windows over an exon-intron-exon gene with a GG PAM:
// no position has a PAM-adjacent GG, so nothing survives on either strand.
func TestFilterNoPAMSites(t *testing.T) {
	g := mustGene(t, "ACGTacgtACGT")
	pam := mustPAM(t, "GG")
	edit := EditPair{'A', 'G'}
	win := Window{0, 3}

	enumerated := 0
	for c := range g.ForwardGuides(4, pam.Len()) {
		enumerated++
		assert.False(t, Filter(c, pam, edit, win), "candidate %+v", c)
	}
	for c := range g.ReverseGuides(4, pam.Len()) {
		enumerated++
		assert.False(t, Filter(c, pam, edit, win), "candidate %+v", c)
	}
	assert.Equal(t, 14, enumerated)
}

// One forward window (CCTA at position 2) is both GG-adjacent and carries an
// editable A inside the window; it must be the only forward survivor.
func TestFilterSelectsPAMSites(t *testing.T) {
	g := mustGene(t, "AACCTAGGTT")
	pam := mustPAM(t, "GG")
	edit := EditPair{'A', 'G'}
	win := Window{0, 3}

	var kept []gene.Candidate
	for c := range g.ForwardGuides(4, pam.Len()) {
		if Filter(c, pam, edit, win) {
			kept = append(kept, c)
		}
	}

	require.Len(t, kept, 1)
	assert.Equal(t, "CCTA", kept[0].Seq)
	assert.Equal(t, 2, kept[0].Anchor)
}

func TestFilterRequiresEditableBase(t *testing.T) {
	g := mustGene(t, "CCCCTTGGTT")
	pam := mustPAM(t, "GG")
	win := Window{0, 3}

	// The GG-adjacent window CCTT has no A, so A→G finds nothing;
	// C→T accepts it.
	var keptA, keptC int
	for c := range g.ForwardGuides(4, pam.Len()) {
		if Filter(c, pam, EditPair{'A', 'G'}, win) {
			keptA++
		}
		if Filter(c, pam, EditPair{'C', 'T'}, win) {
			keptC++
		}
	}
	assert.Equal(t, 0, keptA)
	assert.Equal(t, 1, keptC)
}

func TestFilterWindowRestriction(t *testing.T) {
	g := mustGene(t, "ACCCCCGGTT")
	pam := mustPAM(t, "GG")
	edit := EditPair{'A', 'G'}

	// Window ACCC at position 0 is not PAM adjacent; CCCC at 1 is but only
	// has an A upstream of it. Narrowing the window to position 3 only must
	// reject everything.
	for c := range g.ForwardGuides(4, pam.Len()) {
		assert.False(t, Filter(c, pam, edit, Window{3, 3}), "candidate %+v", c)
	}
}

func TestFilterLowercaseEditBase(t *testing.T) {
	// Editable base sits in an intron: matching is case-insensitive.
	g := mustGene(t, "CCCCaTGGTT")
	pam := mustPAM(t, "GG")

	var kept int
	for c := range g.ForwardGuides(4, pam.Len()) {
		if Filter(c, pam, EditPair{'A', 'G'}, Window{0, 3}) {
			kept++
		}
	}
	assert.Equal(t, 1, kept)
}

func TestFilterRepeats(t *testing.T) {
	a := gene.Candidate{Seq: "ACGT", Anchor: 0}
	b := gene.Candidate{Seq: "ACGT", Anchor: 4} // same seq, different site
	c := gene.Candidate{Seq: "TTTT", Anchor: 8}

	got := FilterRepeats([]gene.Candidate{a, b, a, c, b})
	assert.Equal(t, []gene.Candidate{a, b, c}, got)
}

func TestFilterRepeatsEmpty(t *testing.T) {
	assert.Empty(t, FilterRepeats(nil))
}
