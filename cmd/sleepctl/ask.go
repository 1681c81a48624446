package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blaisecz/sleep-dashboard/internal/config"
	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/internal/llm"
	"github.com/blaisecz/sleep-dashboard/internal/service"
)

func askCmd(opts *rootOptions, cfg *config.Config) *cobra.Command {
	var reportFile string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the sleep coach",
		Long:  "Answers with the LLM coach when OPENAI_API_KEY is set, otherwise from the scripted topics.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return errors.New("question is empty")
			}

			var report *domain.SleepReport
			if reportFile != "" {
				r, err := readReport(reportFile)
				if err != nil {
					return err
				}
				report = r
			}

			if client := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAICoachModel); client != nil {
				reply, err := client.GenerateReply(cmd.Context(), llm.CoachInput{Question: question, Report: report})
				if err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), reply)
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "llm unavailable (%v), using scripted reply\n", err)
			}

			_, reply := service.ScriptedReply(question, report)
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
	cmd.Flags().StringVar(&reportFile, "report", "", "report JSON (as printed by upload --json) to ground the answer on")
	return cmd
}
