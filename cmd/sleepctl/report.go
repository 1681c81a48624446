package main

import (
	"fmt"
	"os"

	go_json "github.com/goccy/go-json"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
)

func readReport(path string) (*domain.SleepReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var report domain.SleepReport
	if err := go_json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%s: invalid report: %w", path, err)
	}
	return &report, nil
}
