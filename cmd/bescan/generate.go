package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bescan/bescan/internal/guide"
	"github.com/bescan/bescan/internal/pipeline"
	"github.com/bescan/bescan/internal/seq"
)

func newGenerateCmd() *cobra.Command {
	var (
		geneName    string
		casType     string
		pam         string
		editFrom    string
		editTo      string
		windowStart int
		windowEnd   int
		offset      int
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "generate <gene.fasta>",
		Short: "Generate and filter base-editing guides for a gene",
		Long: `Generate candidate guides from a gene FASTA file (uppercase = exon,
lowercase = intron), filter them by PAM match and editable-base
availability in the editing window, and write the annotated guide table.`,
		Example: `  bescan generate --edit-from A --edit-to G DNMT3A.fasta
  bescan generate --cas SpRY --window-start 3 --window-end 9 -o guides.csv gene.fa
  bescan generate --pam NGN --edit-from C --edit-to T gene.fa`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Config file supplies defaults for flags not set explicitly.
			if !cmd.Flags().Changed("cas") {
				casType = viper.GetString("cas")
			}
			if !cmd.Flags().Changed("window-start") {
				windowStart = viper.GetInt("window.start")
			}
			if !cmd.Flags().Changed("window-end") {
				windowEnd = viper.GetInt("window.end")
			}

			params := pipeline.Params{
				GenePath: args[0],
				GeneName: geneName,
				CasType:  casType,
				PAM:      strings.ToUpper(pam),
				EditFrom: singleBase(editFrom),
				EditTo:   singleBase(editTo),
				Window:   guide.Window{Start: windowStart, End: windowEnd},
				Offset:   offset,
				Output:   outputPath,
			}

			p := pipeline.New()
			p.SetLogger(logger)

			res, err := p.Run(params)
			if err != nil {
				return err
			}
			logger.Info("generation complete",
				zap.Int("enumerated", res.Enumerated),
				zap.Int("filtered", res.Filtered),
				zap.Int("exported", len(res.Guides)))
			fmt.Fprintf(cmd.OutOrStdout(), "%d guides written to %s\n", len(res.Guides), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&geneName, "gene-name", "", "Gene name (default: FASTA header)")
	cmd.Flags().StringVar(&casType, "cas", "Sp", "Cas type: "+strings.Join(seq.CasTypes(), ", "))
	cmd.Flags().StringVar(&pam, "pam", "", "Explicit PAM spec (IUPAC codes allowed), supersedes --cas")
	cmd.Flags().StringVar(&editFrom, "edit-from", "", "Base to edit from (ACGT)")
	cmd.Flags().StringVar(&editTo, "edit-to", "", "Base to edit to (ACGT)")
	cmd.Flags().IntVar(&windowStart, "window-start", 4, "Editing window start (0-indexed, inclusive)")
	cmd.Flags().IntVar(&windowEnd, "window-end", 8, "Editing window end (0-indexed, inclusive)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Genomic position of the first gene base")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "guides.csv", "Output CSV path")
	cmd.MarkFlagRequired("edit-from")
	cmd.MarkFlagRequired("edit-to")

	return cmd
}

// singleBase converts a flag value to a single base byte. Anything other
// than a one-character string comes back zero, which fails edit-pair
// validation with the proper error.
func singleBase(s string) byte {
	if len(s) != 1 {
		return 0
	}
	return strings.ToUpper(s)[0]
}
