package service

import (
	"fmt"
	"regexp"

	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/internal/pattern"
)

const (
	greetingText = "Hello, I'm the Sleep Care 365 AI coach. Based on your EEG data, your deep sleep (N3) " +
		"stage was shorter than usual. Would you like me to explain it in more detail?"

	fallbackText = "That one is hard for me to answer. Ask me about your sleep stages or sleep habits " +
		"and I'll answer from your data."
)

// scriptedTopic is one keyword-triggered answer. Korean keywords match anywhere in the
// question; ASCII keywords match whole words, case-insensitively.
type scriptedTopic struct {
	name    string
	pattern *regexp.Regexp
	reply   func(report *domain.SleepReport) string
}

var scriptedTopics = []scriptedTopic{
	{
		name:    "deep_sleep",
		pattern: regexp.MustCompile(`(?i)깊은\s*잠|깊은\s*수면|\bn3\b|\bn4\b|\bdeep\s+sleep\b|\bslow[- ]wave\b`),
		reply: func(report *domain.SleepReport) string {
			text := "Deep sleep (N3) is essential for physical recovery."
			if report != nil {
				text += fmt.Sprintf(" In your latest report deep sleep made up %s%% of the night.", formatPercent(report.Summary.Stages.Deep))
			} else {
				text += " Yesterday's data showed a low share of delta waves."
			}
			return text + " Getting more physical activity during the day can help."
		},
	},
	{
		name:    "rem",
		pattern: regexp.MustCompile(`(?i)꿈|\brem\b|\bdreams?\b|\bdreaming\b`),
		reply: func(report *domain.SleepReport) string {
			text := "REM sleep is important for memory consolidation and emotional processing."
			if report != nil {
				return text + fmt.Sprintf(" Your current REM share is %s%%.", formatPercent(report.Summary.Stages.REM))
			}
			return text + " Your current REM share is 22%, which is a very healthy level."
		},
	},
}

// ScriptedReply answers a question from the fixed topic table. The first matching
// topic wins; questions matching no topic get the fallback answer.
func ScriptedReply(question string, report *domain.SleepReport) (topic, reply string) {
	for _, t := range scriptedTopics {
		if t.pattern.MatchString(question) {
			return t.name, t.reply(report)
		}
	}
	return "fallback", fallbackText
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%g", pattern.RoundTenth(v))
}

// defaultDiagnosis is the diagnosis card shown next to the chat.
var defaultDiagnosis = domain.Diagnosis{
	Status: "Warning",
	Title:  "Lack of deep sleep (N3) and frequent awakenings",
	Summary: "The CNN-LSTM model detected many high-frequency beta waves on the Fpz-Cz channel that " +
		"interfere with sleep maintenance. Total sleep time is sufficient, but sleep quality needs improvement.",
	Prescriptions: []domain.Prescription{
		{
			ID:       1,
			Category: "Sleep Stage",
			Issue:    "N3 (deep sleep) share below 8%",
			Cause:    "Likely high body temperature and smartphone use before bed",
			Solution: "Block blue light two hours before bed and take a warm foot bath",
			Impact:   domain.ImpactHigh,
		},
		{
			ID:       2,
			Category: "Latency",
			Issue:    "Sleep latency delayed by 45 minutes",
			Cause:    "Circadian rhythm imbalance from an irregular sleep schedule",
			Solution: "Get at least 30 minutes of sunlight every morning to regulate melatonin",
			Impact:   domain.ImpactMedium,
		},
	},
}
