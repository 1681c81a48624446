package domain

import "fmt"

// SleepStage is one of the six classes predicted per 30-second epoch.
// @Description Sleep stage: W (wake), N1-N4 (non-REM, N3+N4 deep), R (REM).
type SleepStage string

const (
	StageWake SleepStage = "W"
	StageN1   SleepStage = "N1"
	StageN2   SleepStage = "N2"
	StageN3   SleepStage = "N3"
	StageN4   SleepStage = "N4"
	StageREM  SleepStage = "R"
)

// StageLevel returns the hypnogram height of a stage (W=5, R=4, N1=3, N2=2, N3=1, N4=0).
// Unknown stages map to -1.
func StageLevel(s SleepStage) int {
	switch s {
	case StageWake:
		return 5
	case StageREM:
		return 4
	case StageN1:
		return 3
	case StageN2:
		return 2
	case StageN3:
		return 1
	case StageN4:
		return 0
	default:
		return -1
	}
}

// IsDeep reports whether the stage counts towards deep sleep.
func (s SleepStage) IsDeep() bool {
	return s == StageN3 || s == StageN4
}

// AnalysisInfo describes the model run that produced a report.
// @Description Metadata about the classification model run.
type AnalysisInfo struct {
	// Model architecture name
	ModelName string `json:"modelName" example:"Hybrid CNN-LSTM Network"`
	// Prediction accuracy in percent
	Accuracy float64 `json:"accuracy" example:"82.4"`
	// EEG channels used for the analysis
	UsedChannels []string `json:"usedChannels" example:"EEG Fpz-Cz,EEG Pz-Oz"`
	// Number of 30-second epochs analysed
	TotalEpochs int `json:"totalEpochs" example:"939"`
}

// StageBreakdown holds the share of total sleep time per stage group, in percent.
type StageBreakdown struct {
	Wake  float64 `json:"wake" example:"15"`
	REM   float64 `json:"rem" example:"22"`
	Light float64 `json:"light" example:"45"`
	Deep  float64 `json:"deep" example:"18"`
}

// ReportSummary is the night-level summary of a report.
// @Description Night-level sleep summary.
type ReportSummary struct {
	// Total sleep time in minutes
	TotalSleepTime float64 `json:"totalSleepTime" example:"450"`
	// Sleep efficiency in percent (0-100)
	SleepEfficiency float64 `json:"sleepEfficiency" example:"88"`
	// Stage shares in percent
	Stages StageBreakdown `json:"stages"`
}

// StageSegment is one contiguous block of the hypnogram.
type StageSegment struct {
	StartTime  string     `json:"startTime" example:"23:00"`
	EndTime    string     `json:"endTime" example:"23:15"`
	Stage      SleepStage `json:"stage" validate:"omitempty,oneof=W N1 N2 N3 N4 R" example:"W"`
	Level      int        `json:"level" example:"5"`
	Confidence float64    `json:"confidence" example:"0.98"`
}

// SleepReport is the complete analysis result returned by the analysis API.
// @Description Sleep analysis report for one night.
type SleepReport struct {
	// Report identifier assigned by the analysis API
	ID string `json:"id" validate:"required" example:"report_2025_grad"`
	// Night the report belongs to (YYYY-MM-DD)
	Date string `json:"date" validate:"required" example:"2025-05-20"`
	// Model metadata
	AnalysisInfo AnalysisInfo `json:"analysisInfo"`
	// Night summary
	Summary ReportSummary `json:"summary"`
	// Hypnogram segments
	Stages []StageSegment `json:"stages" validate:"dive"`
	// Coaching text produced by the analysis API
	AICoaching string `json:"aiCoaching" example:"EEG Fpz-Cz channel shows stable delta activity."`
	// Sleep score (0-100) when the analysis API provides one
	SleepScore *float64 `json:"sleepScore,omitempty" example:"85"`
}

// Clone returns a deep copy so callers cannot mutate a stored report.
func (r *SleepReport) Clone() *SleepReport {
	if r == nil {
		return nil
	}
	c := *r
	c.AnalysisInfo.UsedChannels = append([]string(nil), r.AnalysisInfo.UsedChannels...)
	c.Stages = append([]StageSegment(nil), r.Stages...)
	if r.SleepScore != nil {
		v := *r.SleepScore
		c.SleepScore = &v
	}
	return &c
}

// FormatMinutes renders a minute count the way the stats cards show it, e.g. "7h 30m".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
