package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/internal/pattern"
)

func patternsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Show history statistics, trend and heatmap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := opts.client().History(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch history: %w", err)
			}

			records, err := pattern.Parse(body)
			if err != nil {
				return err
			}
			p := pattern.Aggregate(records)

			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			return renderPattern(cmd.OutOrStdout(), p)
		},
	}
}

var tierGlyphs = map[domain.Tier]string{
	domain.TierNoData:    "·",
	domain.TierBad:       "░",
	domain.TierGood:      "▒",
	domain.TierExcellent: "█",
}

func renderPattern(w io.Writer, p domain.Pattern) error {
	s := p.Stats
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Nights\t%d\n", s.Count)
	fmt.Fprintf(tw, "Average sleep\t%s\n", s.AverageSleepDisplay)
	fmt.Fprintf(tw, "Average efficiency\t%d%%\n", s.AverageEfficiency)
	fmt.Fprintf(tw, "Average score\t%d (%s)\n", s.AverageScore, s.ScoreVerdict)
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(p.Chart) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DATE\tTOTAL h\tDEEP h\tEFF %\tSCORE\t")
	for _, pt := range p.Chart {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%g\t%g\t\n", pt.Label, pt.TotalSleepHours, pt.DeepSleepHours, pt.Efficiency, pt.Score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	var b strings.Builder
	for i, cell := range p.Heatmap {
		if i > 0 && i%7 == 0 {
			b.WriteByte('\n')
		}
		b.WriteString(tierGlyphs[cell.Tier])
	}
	fmt.Fprintf(w, "\n%s\n", b.String())
	return nil
}
