package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Comparison is one pairwise contrast, computed as Treatment - Control.
// The result is stored in a new column named Name.
type Comparison struct {
	Name      string
	Treatment string
	Control   string
}

// ReadComparisons loads a comparisons CSV with columns name,treatment,control.
// A header row matching those names is skipped.
func ReadComparisons(path string) ([]Comparison, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open comparisons file: %w", err)
	}
	defer f.Close()
	return ParseComparisons(f)
}

// ParseComparisons parses comparison rows from CSV content.
func ParseComparisons(r io.Reader) ([]Comparison, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	var comps []Comparison
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read comparisons: %w", err)
		}
		if len(record) != 3 {
			return nil, fmt.Errorf("comparison row needs 3 fields (name,treatment,control), got %d", len(record))
		}
		if strings.EqualFold(record[0], "name") {
			continue // header
		}
		comps = append(comps, Comparison{
			Name:      record[0],
			Treatment: record[1],
			Control:   record[2],
		})
	}
	if len(comps) == 0 {
		return nil, fmt.Errorf("no comparisons found")
	}
	return comps, nil
}

// Compare adds one column per comparison to the conditions table, holding
// treatment - control for every row.
func (s *Store) Compare(table string, comps []Comparison) error {
	for _, c := range comps {
		add := fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s DOUBLE`,
			quoteIdent(table), quoteIdent(c.Name))
		if _, err := s.db.Exec(add); err != nil {
			return fmt.Errorf("add comparison column %s: %w", c.Name, err)
		}
		set := fmt.Sprintf(`UPDATE %s SET %s = %s - %s`,
			quoteIdent(table), quoteIdent(c.Name),
			quoteIdent(c.Treatment), quoteIdent(c.Control))
		if _, err := s.db.Exec(set); err != nil {
			return fmt.Errorf("compute comparison %s: %w", c.Name, err)
		}
	}
	return nil
}

// CompareConditions is the file-to-file form: load the conditions table,
// apply every comparison, and export the augmented table.
func (s *Store) CompareConditions(condsPath, comparisonsPath, outPath string) error {
	comps, err := ReadComparisons(comparisonsPath)
	if err != nil {
		return err
	}
	const table = "conds"
	if err := s.LoadCSV(table, condsPath); err != nil {
		return err
	}
	if err := s.Compare(table, comps); err != nil {
		return err
	}
	return s.ExportCSV(table, outPath)
}
