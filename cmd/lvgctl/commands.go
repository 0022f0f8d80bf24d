package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"love-vs-grades-go/internal/aggregator"
	"love-vs-grades-go/internal/archetype"
	"love-vs-grades-go/internal/config"
	"love-vs-grades-go/internal/dataset"
	"love-vs-grades-go/internal/ingest"
	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/pipeline"
	"love-vs-grades-go/internal/sheets"
	"love-vs-grades-go/internal/types"
)

type sourceFlags struct {
	sheetURL string
	dataset  string
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	src := &sourceFlags{sheetURL: cfg.SheetURL, dataset: cfg.DatasetPath}

	root := &cobra.Command{
		Use:          "lvgctl",
		Short:        "Offline tools for the Love vs Grades survey",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&src.sheetURL, "sheet-url", src.sheetURL, "sheet script endpoint (defaults to SHEET_URL)")
	root.PersistentFlags().StringVar(&src.dataset, "dataset", src.dataset, "exported responses workbook (defaults to DATASET_PATH)")

	root.AddCommand(newClassifyCmd(), newSummarizeCmd(src, cfg), newExportCmd(src, cfg))
	return root
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [answers.json]",
		Short: "Classify one answer set read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			var answers types.AnswerSet
			if err := json.NewDecoder(in).Decode(&answers); err != nil {
				return fmt.Errorf("decode answers: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), archetype.Classify(answers))
		},
	}
}

func newSummarizeCmd(src *sourceFlags, cfg config.Config) *cobra.Command {
	var grade string
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Fetch responses and print the insights dashboard as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := src.load(cmd, cfg)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), aggregator.BuildDashboard(subs, grade))
		},
	}
	cmd.Flags().StringVar(&grade, "grade", aggregator.AllGrades, "grade filter")
	return cmd
}

func newExportCmd(src *sourceFlags, cfg config.Config) *cobra.Command {
	var (
		grade string
		out   string
		raw   bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard report, or the normalized responses, to an xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := src.load(cmd, cfg)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if raw {
				err = dataset.WriteSubmissions(f, aggregator.Filter(subs, grade))
			} else {
				err = dataset.WriteReport(f, aggregator.BuildDashboard(subs, grade))
			}
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&grade, "grade", aggregator.AllGrades, "grade filter")
	cmd.Flags().StringVarP(&out, "out", "o", "love-vs-grades-report.xlsx", "output file")
	cmd.Flags().BoolVar(&raw, "raw", false, "export normalized responses instead of the report")
	return cmd
}

// load prefers the workbook when both sources are set.
func (s *sourceFlags) load(cmd *cobra.Command, cfg config.Config) ([]types.Submission, error) {
	log := logger.New()
	log.Logger.SetOutput(cmd.ErrOrStderr()) // stdout carries the JSON
	var src pipeline.Source
	switch {
	case s.dataset != "":
		src = dataset.NewXLSXSource(s.dataset, log)
	case s.sheetURL != "":
		src = sheets.New(s.sheetURL, cfg.IPLookupURL, cfg.IPLookupTimeout, cfg.HTTPTimeout, log)
	default:
		return nil, fmt.Errorf("no source: pass --dataset or --sheet-url")
	}
	rows, err := src.Fetch(cmd.Context())
	if err != nil {
		return nil, err
	}
	return ingest.NewNormalizer(log).Normalize(rows), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
