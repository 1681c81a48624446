// Command sleepctl talks to the sleep analysis API from the terminal.
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/blaisecz/sleep-dashboard/internal/analysis"
	"github.com/blaisecz/sleep-dashboard/internal/config"
)

type rootOptions struct {
	apiURL      string
	historyPath string
	jsonOutput  bool
}

func main() {
	_ = godotenv.Load()

	if err := fang.Execute(context.Background(), rootCmd(), fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "sleepctl",
		Short:        "Sleep analysis from your terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", cfg.AnalysisAPIURL, "analysis API base URL")
	root.PersistentFlags().StringVar(&opts.historyPath, "history-path", cfg.AnalysisHistoryPath, "history endpoint path")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print raw JSON")

	root.AddCommand(uploadCmd(opts, cfg))
	root.AddCommand(patternsCmd(opts))
	root.AddCommand(askCmd(opts, cfg))
	root.AddCommand(langfuseCmd(cfg))
	return root
}

func (o *rootOptions) client(opts ...analysis.Option) *analysis.Client {
	return analysis.New(o.apiURL, append([]analysis.Option{analysis.WithHistoryPath(o.historyPath)}, opts...)...)
}
