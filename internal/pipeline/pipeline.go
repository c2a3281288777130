// Package pipeline drives guide generation end to end: gene parsing,
// candidate enumeration, filtering, annotation, deduplication, and export.
package pipeline

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/bescan/bescan/internal/gene"
	"github.com/bescan/bescan/internal/guide"
	"github.com/bescan/bescan/internal/output"
	"github.com/bescan/bescan/internal/seq"
)

// Stage names one step of the generation pipeline. Transitions are strictly
// sequential; a failure at any stage aborts the run with no output written.
type Stage string

const (
	StageInit             Stage = "Init"
	StageGeneParsed       Stage = "GeneParsed"
	StageGuidesEnumerated Stage = "GuidesEnumerated"
	StageGuidesFiltered   Stage = "GuidesFiltered"
	StageDeduplicated     Stage = "Deduplicated"
	StageExported         Stage = "Exported"
)

// StageError reports which pipeline stage failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func fail(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// Params are the validated inputs to one guide generation run.
type Params struct {
	GenePath string // path to the gene FASTA file
	GeneName string // overrides the FASTA header name when set
	CasType  string // e.g. "Sp"; ignored when PAM is set
	PAM      string // explicit PAM spec, supersedes CasType
	EditFrom byte
	EditTo   byte
	Window   guide.Window
	Offset   int    // genomic position of gene position 0
	Output   string // output CSV path; empty skips export
}

// Result holds the deduplicated annotated guide table and per-stage counts.
type Result struct {
	Guides     []guide.Guide
	Enumerated int // candidates on both strands before filtering
	Filtered   int // survivors of PAM/window filtering, both strands
}

// Pipeline generates base-editing guides for a gene.
type Pipeline struct {
	logger *zap.Logger
}

// New creates a pipeline with a no-op logger.
func New() *Pipeline {
	return &Pipeline{logger: zap.NewNop()}
}

// SetLogger sets the logger for progress and warning messages.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Run executes the full pipeline for the given parameters.
// All validation happens up front, before the gene is read or any
// enumeration starts.
func (p *Pipeline) Run(params Params) (*Result, error) {
	pam, edit, err := p.validate(params)
	if err != nil {
		return nil, fail(StageInit, err)
	}

	g, err := gene.ReadFASTA(params.GenePath)
	if err != nil {
		return nil, fail(StageGeneParsed, err)
	}
	if params.GeneName != "" {
		g.Name = params.GeneName
	}
	g.Offset = params.Offset

	if err := g.ParseExons(); err != nil {
		return nil, fail(StageGeneParsed, err)
	}
	if err := g.ExtractMetadata(); err != nil {
		return nil, fail(StageGeneParsed, err)
	}
	p.logger.Info("gene parsed",
		zap.String("gene", g.Name),
		zap.Int("length", g.Len()),
		zap.Int("exons", g.ExonCount()))

	res, err := p.generate(g, pam, edit, params.Window, seq.GuideLength(params.CasType))
	if err != nil {
		return nil, err
	}

	if params.Output != "" {
		if err := p.export(res.Guides, params.Output); err != nil {
			return nil, fail(StageExported, err)
		}
		p.logger.Info("guides exported", zap.String("path", params.Output))
	}

	return res, nil
}

// validate resolves the PAM and checks edit pair and window invariants.
func (p *Pipeline) validate(params Params) (*seq.PAM, guide.EditPair, error) {
	spec, err := seq.ResolveCasOrPAM(params.CasType, params.PAM)
	if err != nil {
		return nil, guide.EditPair{}, err
	}
	pam, err := seq.CompilePAM(spec)
	if err != nil {
		return nil, guide.EditPair{}, err
	}

	edit := guide.EditPair{From: params.EditFrom, To: params.EditTo}
	if err := edit.Validate(); err != nil {
		return nil, guide.EditPair{}, err
	}

	if err := params.Window.Validate(seq.GuideLength(params.CasType)); err != nil {
		return nil, guide.EditPair{}, err
	}

	return pam, edit, nil
}

// generate runs enumeration, filtering, annotation, and deduplication over a
// prepared gene.
func (p *Pipeline) generate(g *gene.Gene, pam *seq.PAM, edit guide.EditPair, win guide.Window, length int) (*Result, error) {
	if g.Len() < length+pam.Len() {
		return nil, fail(StageGuidesEnumerated,
			fmt.Errorf("gene length %d shorter than guide window %d", g.Len(), length+pam.Len()))
	}

	enumerated := 0
	var fwd, rev []gene.Candidate
	for c := range g.ForwardGuides(length, pam.Len()) {
		enumerated++
		if guide.Filter(c, pam, edit, win) {
			fwd = append(fwd, c)
		}
	}
	for c := range g.ReverseGuides(length, pam.Len()) {
		enumerated++
		if guide.Filter(c, pam, edit, win) {
			rev = append(rev, c)
		}
	}
	p.logger.Info("candidates enumerated", zap.Int("count", enumerated))

	fwd = guide.FilterRepeats(fwd)
	rev = guide.FilterRepeats(rev)
	filtered := len(fwd) + len(rev)
	p.logger.Info("candidates filtered",
		zap.Int("forward", len(fwd)),
		zap.Int("reverse", len(rev)))

	guides := make([]guide.Guide, 0, filtered)
	for _, c := range fwd {
		ann, err := guide.Annotate(c, g, guide.Sense, win)
		if err != nil {
			return nil, fail(StageGuidesFiltered, err)
		}
		guides = append(guides, ann)
	}
	for _, c := range rev {
		ann, err := guide.Annotate(c, g, guide.Antisense, win)
		if err != nil {
			return nil, fail(StageGuidesFiltered, err)
		}
		guides = append(guides, ann)
	}

	guides = guide.DropAmbiguous(guides)
	p.logger.Info("guides deduplicated",
		zap.Int("kept", len(guides)),
		zap.Int("dropped", filtered-len(guides)))

	return &Result{Guides: guides, Enumerated: enumerated, Filtered: filtered}, nil
}

// export writes the guide table to a CSV file. The file is only created
// after the full table is computed, and is removed again on a write error so
// a failed run leaves no partial output behind.
func (p *Pipeline) export(guides []guide.Guide, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	w := output.NewCSVWriter(f)
	if err := w.WriteAll(guides); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write guide table: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}
