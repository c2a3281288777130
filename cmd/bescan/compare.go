package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bescan/bescan/internal/analysis"
)

func newCompareCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "compare <conditions.csv> <comparisons.csv>",
		Short: "Compute pairwise treatment-control comparison columns",
		Long: `Given a conditions score table and a comparisons file with
name,treatment,control rows, add one column per comparison holding
treatment - control and export the augmented table.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := analysis.Open("")
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.CompareConditions(args[0], args[1], outputPath); err != nil {
				return err
			}
			logger.Info("comparisons complete", zap.String("output", outputPath))
			fmt.Fprintf(cmd.OutOrStdout(), "comparisons written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "agg_comps.csv", "Output CSV path")
	return cmd
}

func newNormalizeCmd() *cobra.Command {
	var (
		outputPath  string
		categoryCol string
		negCtrl     string
		comparisons []string
	)

	cmd := &cobra.Command{
		Use:   "normalize <scores.csv>",
		Short: "Normalize comparison columns to negative controls",
		Long: `Center each comparison column on the mean of the rows whose
category column equals the negative-control label, so negative-control
guides score zero on average.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := analysis.Open("")
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.NormalizeConditions(args[0], outputPath, categoryCol, negCtrl, comparisons)
			if err != nil {
				return err
			}
			for _, st := range stats {
				logger.Info("negative control stats",
					zap.String("comparison", st.Comparison),
					zap.Int("count", st.Count),
					zap.Float64("mean", st.Mean),
					zap.Float64("stdev", st.Stdev))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "normalized scores written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "normalized.csv", "Output CSV path")
	cmd.Flags().StringVar(&categoryCol, "category-col", "Gene", "Column identifying the guide category")
	cmd.Flags().StringVar(&negCtrl, "neg-ctrl", "NON-GENE", "Negative control category label")
	cmd.Flags().StringSliceVar(&comparisons, "comparisons", nil, "Comparison columns to normalize")
	cmd.MarkFlagRequired("comparisons")

	return cmd
}
