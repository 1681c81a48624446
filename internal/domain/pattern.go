package domain

// Tier is the heatmap bucket derived from a sleep score.
// @Description Heatmap tier: no_data (score 0), bad (<70), good (70-89), excellent (>=90).
type Tier string

const (
	TierNoData    Tier = "no_data"
	TierBad       Tier = "bad"
	TierGood      Tier = "good"
	TierExcellent Tier = "excellent"
)

const (
	// GoodScoreThreshold is the lowest score rendered as TierGood.
	GoodScoreThreshold = 70
	// ExcellentScoreThreshold is the lowest score rendered as TierExcellent.
	ExcellentScoreThreshold = 90
	// VeryGoodAverageScore is the average score above which the summary reads "very good".
	VeryGoodAverageScore = 80
)

// TierFor buckets a normalized score. A score of zero (or below) cannot be told apart
// from a missing score and renders as TierNoData.
func TierFor(score float64) Tier {
	switch {
	case score >= ExcellentScoreThreshold:
		return TierExcellent
	case score >= GoodScoreThreshold:
		return TierGood
	case score > 0:
		return TierBad
	default:
		return TierNoData
	}
}

// AggregateStats summarizes a set of historical reports.
// @Description Averages across all fetched reports, rounded half-up to integers.
type AggregateStats struct {
	// Mean total sleep time in minutes
	AverageSleepMinutes int `json:"average_sleep_minutes" example:"450"`
	// Mean total sleep time rendered as hours and minutes
	AverageSleepDisplay string `json:"average_sleep_display" example:"7h 30m"`
	// Mean sleep efficiency in percent
	AverageEfficiency int `json:"average_efficiency" example:"85"`
	// Mean sleep score
	AverageScore int `json:"average_score" example:"90"`
	// Summary verdict for the average score
	ScoreVerdict string `json:"score_verdict" example:"very good"`
	// Number of reports
	Count int `json:"count" example:"2"`
}

// ScoreVerdict returns the verdict shown under the average score card.
func ScoreVerdict(averageScore int) string {
	if averageScore > VeryGoodAverageScore {
		return "very good"
	}
	return "needs care"
}

// ChartPoint is one bar/line group of the trend chart.
// @Description Chronologically ordered trend chart point.
type ChartPoint struct {
	// Date formatted as MM-DD (raw date when unparseable)
	Label string `json:"label" example:"05-01"`
	// Total sleep in hours, one decimal
	TotalSleepHours float64 `json:"total_sleep_hours" example:"7.5"`
	// Deep sleep in hours derived from the deep percentage, one decimal
	DeepSleepHours float64 `json:"deep_sleep_hours" example:"1.4"`
	// Sleep efficiency in percent
	Efficiency float64 `json:"efficiency" example:"88"`
	// Normalized sleep score
	Score float64 `json:"score" example:"85"`
}

// HeatCell is one cell of the monthly consistency heatmap.
// @Description Heatmap cell in fetch order.
type HeatCell struct {
	// Raw report date
	Date string `json:"date" example:"2025-05-01"`
	// Date formatted as MM-DD (raw date when unparseable)
	Label string `json:"label" example:"05-01"`
	// Normalized sleep score
	Score float64 `json:"score" example:"85"`
	// Presentation tier
	Tier Tier `json:"tier" example:"good"`
}

// Tooltip is the transient hover content of a heatmap cell.
// @Description Hover tooltip for a heatmap cell.
type Tooltip struct {
	Index int     `json:"index" example:"0"`
	Date  string  `json:"date" example:"05-01"`
	Score float64 `json:"score" example:"85"`
}

// Pattern is everything derived from one history fetch.
type Pattern struct {
	Stats   AggregateStats `json:"stats"`
	Chart   []ChartPoint   `json:"chart"`
	Heatmap []HeatCell     `json:"heatmap"`
}

// PatternStatus describes how the current pattern was obtained.
type PatternStatus string

const (
	PatternStatusEmpty       PatternStatus = "empty"
	PatternStatusReady       PatternStatus = "ready"
	PatternStatusUnavailable PatternStatus = "unavailable"
)

// PatternView is the rendered state of the pattern page.
// @Description Pattern page state: statistics, chart series, heatmap and tooltip.
type PatternView struct {
	// ready when a fetch succeeded, unavailable after a failed fetch, empty before any fetch
	Status PatternStatus `json:"status" example:"ready"`
	Pattern
	// Tooltip currently shown, if any
	Tooltip *Tooltip `json:"tooltip,omitempty"`
}

// EmptyPattern returns a pattern with zero statistics and empty, non-nil series.
func EmptyPattern() Pattern {
	return Pattern{
		Stats:   AggregateStats{AverageSleepDisplay: FormatMinutes(0), ScoreVerdict: ScoreVerdict(0)},
		Chart:   []ChartPoint{},
		Heatmap: []HeatCell{},
	}
}
