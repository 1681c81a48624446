package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/blaisecz/sleep-dashboard/internal/analysis"
	"github.com/blaisecz/sleep-dashboard/internal/config"
	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/internal/service"
)

func uploadCmd(opts *rootOptions, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Analyse a sleep data file",
		Long:  "Uploads a raw EEG/wearable export (.csv or .txt) to the analysis API and prints the report.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !service.IsDataFile(path) {
				return fmt.Errorf("%s: unsupported file type, want one of %v", filepath.Base(path), service.DataFileExtensions)
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			client := opts.client(analysis.WithUploadTimeout(cfg.AnalysisUploadTimeout))
			report, err := client.Upload(cmd.Context(), filepath.Base(path), f)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return renderReport(cmd.OutOrStdout(), report)
		},
	}
}

func renderReport(w io.Writer, report *domain.SleepReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Report\t%s\n", report.ID)
	fmt.Fprintf(tw, "Date\t%s\n", report.Date)
	fmt.Fprintf(tw, "Total sleep\t%s\n", domain.FormatMinutes(int(report.Summary.TotalSleepTime)))
	fmt.Fprintf(tw, "Efficiency\t%g%%\n", report.Summary.SleepEfficiency)
	if report.SleepScore != nil {
		fmt.Fprintf(tw, "Score\t%g\n", *report.SleepScore)
	}
	s := report.Summary.Stages
	fmt.Fprintf(tw, "Stages\tW %g%%  REM %g%%  Light %g%%  Deep %g%%\n", s.Wake, s.REM, s.Light, s.Deep)
	if report.AnalysisInfo.ModelName != "" {
		fmt.Fprintf(tw, "Model\t%s (%g%%)\n", report.AnalysisInfo.ModelName, report.AnalysisInfo.Accuracy)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Stages) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "START\tEND\tSTAGE\tCONFIDENCE")
		for _, seg := range report.Stages {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", seg.StartTime, seg.EndTime, seg.Stage, seg.Confidence)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if report.AICoaching != "" {
		fmt.Fprintf(w, "\n%s\n", report.AICoaching)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := go_json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
