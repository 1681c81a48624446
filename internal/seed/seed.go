// Package seed holds the demo data served by the local mock analysis API.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
)

const (
	// HistoryDays is the number of nights in the seeded history.
	HistoryDays = 30

	minScore = 60
	maxScore = 100
)

// DemoReport returns the report of the reference night the dashboard was built around.
func DemoReport() *domain.SleepReport {
	score := 85.0
	return &domain.SleepReport{
		ID:   "report_2025_grad",
		Date: "2025-05-20",
		AnalysisInfo: domain.AnalysisInfo{
			ModelName:    "Hybrid CNN-LSTM Network",
			Accuracy:     82.4,
			UsedChannels: []string{"EEG Fpz-Cz", "EEG Pz-Oz"},
			TotalEpochs:  939,
		},
		Summary: domain.ReportSummary{
			TotalSleepTime:  450,
			SleepEfficiency: 88,
			Stages:          domain.StageBreakdown{Wake: 15, REM: 22, Light: 45, Deep: 18},
		},
		AICoaching: "EEG Fpz-Cz channel analysis shows a stable share of delta waves in N3/N4. " +
			"The sleep cycle predicted by the CNN-LSTM model matches a typical healthy pattern by 82%.",
		Stages: []domain.StageSegment{
			{StartTime: "23:00", EndTime: "23:15", Stage: domain.StageWake, Level: 5, Confidence: 0.98},
			{StartTime: "23:15", EndTime: "23:45", Stage: domain.StageN1, Level: 3, Confidence: 0.85},
			{StartTime: "23:45", EndTime: "00:30", Stage: domain.StageN2, Level: 2, Confidence: 0.92},
			{StartTime: "00:30", EndTime: "01:00", Stage: domain.StageN3, Level: 1, Confidence: 0.88},
			{StartTime: "01:00", EndTime: "01:30", Stage: domain.StageN4, Level: 0, Confidence: 0.91},
			{StartTime: "01:30", EndTime: "02:00", Stage: domain.StageREM, Level: 4, Confidence: 0.89},
			{StartTime: "02:00", EndTime: "03:00", Stage: domain.StageN2, Level: 2, Confidence: 0.94},
			{StartTime: "03:00", EndTime: "03:30", Stage: domain.StageN3, Level: 1, Confidence: 0.82},
			{StartTime: "03:30", EndTime: "04:00", Stage: domain.StageREM, Level: 4, Confidence: 0.90},
			{StartTime: "04:00", EndTime: "05:30", Stage: domain.StageN2, Level: 2, Confidence: 0.93},
			{StartTime: "05:30", EndTime: "06:00", Stage: domain.StageREM, Level: 4, Confidence: 0.88},
			{StartTime: "06:00", EndTime: "06:30", Stage: domain.StageWake, Level: 5, Confidence: 0.99},
		},
		SleepScore: &score,
	}
}

// HistoryRecord is one history entry as the analysis API returns it. Older entries
// carry the score as sleep_score, newer ones as sleepScore.
type HistoryRecord struct {
	ID               string               `json:"id"`
	Date             string               `json:"date"`
	Summary          domain.ReportSummary `json:"summary"`
	SleepScore       *float64             `json:"sleepScore,omitempty"`
	LegacySleepScore *float64             `json:"sleep_score,omitempty"`
}

// History generates days nights of history ending the day before end, newest first.
func History(end time.Time, days int, rng *rand.Rand) []HistoryRecord {
	records := make([]HistoryRecord, 0, days)
	for i := 1; i <= days; i++ {
		night := end.AddDate(0, 0, -i)
		score := float64(minScore + rng.Intn(maxScore-minScore))
		total := float64(330 + rng.Intn(210))
		deep := float64(8 + rng.Intn(15))
		rem := float64(15 + rng.Intn(10))
		wake := float64(3 + rng.Intn(12))

		rec := HistoryRecord{
			ID:   fmt.Sprintf("report_%s", night.Format("20060102")),
			Date: night.Format("2006-01-02"),
			Summary: domain.ReportSummary{
				TotalSleepTime:  total,
				SleepEfficiency: float64(72 + rng.Intn(25)),
				Stages: domain.StageBreakdown{
					Wake:  wake,
					REM:   rem,
					Deep:  deep,
					Light: 100 - wake - rem - deep,
				},
			},
		}
		if i%2 == 0 {
			rec.LegacySleepScore = &score
		} else {
			rec.SleepScore = &score
		}
		records = append(records, rec)
	}
	return records
}

// FromReport turns an analysed report into its history entry.
func FromReport(report *domain.SleepReport) HistoryRecord {
	return HistoryRecord{
		ID:         report.ID,
		Date:       report.Date,
		Summary:    report.Summary,
		SleepScore: report.SleepScore,
	}
}
