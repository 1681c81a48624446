package pattern

import (
	"math"
	"slices"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
)

// maxExactInt bounds rounded values to the range a float64 represents exactly.
const maxExactInt = 1 << 53

// Normalize returns the records in ascending date order. The sort is stable and only
// moves records whose date parses: undated records keep their original index.
func Normalize(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)

	var slots []int
	var dated []Record
	for i, rec := range out {
		if rec.Dated {
			slots = append(slots, i)
			dated = append(dated, rec)
		}
	}

	slices.SortStableFunc(dated, func(a, b Record) int {
		return a.When.Compare(b.When)
	})
	for i, slot := range slots {
		out[slot] = dated[i]
	}
	return out
}

// ComputeStats averages sleep time, efficiency and score over the records.
// Means are rounded half-up to integers; an empty set yields all zeros.
func ComputeStats(records []Record) domain.AggregateStats {
	stats := domain.AggregateStats{Count: len(records)}
	if stats.Count > 0 {
		var sleep, efficiency, score float64
		for _, rec := range records {
			sleep += rec.TotalSleepTime
			efficiency += rec.SleepEfficiency
			score += rec.Score
		}
		n := float64(stats.Count)
		stats.AverageSleepMinutes = roundInt(sleep / n)
		stats.AverageEfficiency = roundInt(efficiency / n)
		stats.AverageScore = roundInt(score / n)
	}
	stats.AverageSleepDisplay = domain.FormatMinutes(stats.AverageSleepMinutes)
	stats.ScoreVerdict = domain.ScoreVerdict(stats.AverageScore)
	return stats
}

// ProjectChart maps sorted records to trend chart points, preserving order.
func ProjectChart(sorted []Record) []domain.ChartPoint {
	points := make([]domain.ChartPoint, 0, len(sorted))
	for _, rec := range sorted {
		points = append(points, domain.ChartPoint{
			Label:           FormatLabel(rec.Date),
			TotalSleepHours: RoundTenth(rec.TotalSleepTime / 60),
			DeepSleepHours:  RoundTenth(rec.TotalSleepTime * (rec.DeepPercent / 100) / 60),
			Efficiency:      rec.SleepEfficiency,
			Score:           rec.Score,
		})
	}
	return points
}

// ProjectHeatmap maps records to heatmap cells in the order they were fetched.
func ProjectHeatmap(display []Record) []domain.HeatCell {
	cells := make([]domain.HeatCell, 0, len(display))
	for _, rec := range display {
		cells = append(cells, domain.HeatCell{
			Date:  rec.Date,
			Label: FormatLabel(rec.Date),
			Score: rec.Score,
			Tier:  domain.TierFor(rec.Score),
		})
	}
	return cells
}

// Aggregate derives the full pattern from records in fetch order: statistics and chart
// use date order, the heatmap keeps fetch order.
func Aggregate(records []Record) domain.Pattern {
	sorted := Normalize(records)
	return domain.Pattern{
		Stats:   ComputeStats(sorted),
		Chart:   ProjectChart(sorted),
		Heatmap: ProjectHeatmap(records),
	}
}

// roundHalfUp rounds to the nearest integer with ties going up, the same way for
// negative inputs as for positive ones.
func roundHalfUp(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Floor(x + 0.5)
}

// RoundTenth rounds x half-up to one decimal place. Non-finite results become 0.
func RoundTenth(x float64) float64 {
	r := roundHalfUp(x*10) / 10
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func roundInt(x float64) int {
	r := roundHalfUp(x)
	switch {
	case r > maxExactInt:
		return maxExactInt
	case r < -maxExactInt:
		return -maxExactInt
	}
	return int(r)
}
