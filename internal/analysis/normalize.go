package analysis

import (
	"fmt"
)

// ControlStats summarizes one comparison column over the negative-control
// rows. TwoStdev is carried for plotting cutoff lines downstream.
type ControlStats struct {
	Comparison string
	Count      int
	Mean       float64
	Stdev      float64
	TwoStdev   float64
}

// NegativeControlStats computes count, mean, and standard deviation of each
// comparison column over rows whose category column equals the
// negative-control label.
func (s *Store) NegativeControlStats(table, categoryCol, label string, comparisons []string) ([]ControlStats, error) {
	stats := make([]ControlStats, 0, len(comparisons))
	for _, comp := range comparisons {
		q := fmt.Sprintf(
			`SELECT COUNT(%[1]s), COALESCE(AVG(%[1]s), 0), COALESCE(STDDEV_SAMP(%[1]s), 0) FROM %[2]s WHERE %[3]s = %[4]s`,
			quoteIdent(comp), quoteIdent(table), quoteIdent(categoryCol), quoteString(label))

		var st ControlStats
		st.Comparison = comp
		if err := s.db.QueryRow(q).Scan(&st.Count, &st.Mean, &st.Stdev); err != nil {
			return nil, fmt.Errorf("negative control stats for %s: %w", comp, err)
		}
		if st.Count == 0 {
			return nil, fmt.Errorf("no negative control rows (%s = %q) for %s", categoryCol, label, comp)
		}
		st.TwoStdev = 2 * st.Stdev
		stats = append(stats, st)
	}
	return stats, nil
}

// NormalizeToControls centers each comparison column on its negative-control
// mean, so negative-control guides score zero on average.
func (s *Store) NormalizeToControls(table string, stats []ControlStats) error {
	for _, st := range stats {
		q := fmt.Sprintf(`UPDATE %s SET %s = %s - %v`,
			quoteIdent(table), quoteIdent(st.Comparison), quoteIdent(st.Comparison), st.Mean)
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("normalize %s: %w", st.Comparison, err)
		}
	}
	return nil
}

// NormalizeConditions is the file-to-file form: load a scored table, center
// the given comparison columns on the negative-control mean, and export.
// It returns the control stats used for the normalization.
func (s *Store) NormalizeConditions(inPath, outPath, categoryCol, label string, comparisons []string) ([]ControlStats, error) {
	const table = "scores"
	if err := s.LoadCSV(table, inPath); err != nil {
		return nil, err
	}
	stats, err := s.NegativeControlStats(table, categoryCol, label, comparisons)
	if err != nil {
		return nil, err
	}
	if err := s.NormalizeToControls(table, stats); err != nil {
		return nil, err
	}
	if err := s.ExportCSV(table, outPath); err != nil {
		return nil, err
	}
	return stats, nil
}
