// Package pattern turns the raw sleep-report history returned by the analysis API
// into the data behind the pattern page: aggregate statistics, a chronological trend
// series and a heatmap in fetch order.
//
// Upstream records are loosely shaped. Every numeric field may be missing, null or a
// non-numeric string, and the score appears as either "sleepScore" or "sleep_score".
// None of that is an error here: missing or malformed values become zero.
package pattern

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrMalformedHistory is returned when the history body is not a JSON array.
var ErrMalformedHistory = errors.New("history payload is not a JSON array")

const (
	pathDate            = "date"
	pathTotalSleepTime  = "summary.totalSleepTime"
	pathSleepEfficiency = "summary.sleepEfficiency"
	pathDeepPercent     = "summary.stages.deep"
	pathScore           = "sleepScore"
	pathScoreLegacy     = "sleep_score"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// Record is a history entry with its fields resolved to canonical names and numbers.
type Record struct {
	// Date is the raw date as sent upstream.
	Date string
	// When is the parsed date; only meaningful when Dated is true.
	When  time.Time
	Dated bool

	TotalSleepTime  float64 // minutes
	SleepEfficiency float64 // percent
	DeepPercent     float64 // percent of total sleep time
	Score           float64
}

// Parse decodes a JSON array of report records. Elements that are not objects still
// yield a (zero-valued) record so the count matches the upstream list.
func Parse(raw []byte) ([]Record, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformedHistory
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, ErrMalformedHistory
	}

	items := doc.Array()
	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, recordFrom(item))
	}
	return records, nil
}

func recordFrom(item gjson.Result) Record {
	rec := Record{
		Date:            dateString(item.Get(pathDate)),
		TotalSleepTime:  toNumber(item.Get(pathTotalSleepTime)),
		SleepEfficiency: toNumber(item.Get(pathSleepEfficiency)),
		DeepPercent:     toNumber(item.Get(pathDeepPercent)),
		Score:           resolveScore(item),
	}
	rec.When, rec.Dated = parseDate(rec.Date)
	return rec
}

// resolveScore applies the dual-name fallback: sleepScore ?? sleep_score ?? 0.
// A present but malformed primary value resolves to 0; it does not fall through.
func resolveScore(item gjson.Result) float64 {
	for _, path := range []string{pathScore, pathScoreLegacy} {
		if v := item.Get(path); present(v) {
			return toNumber(v)
		}
	}
	return 0
}

func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

// toNumber coerces a JSON value to a finite number, falling back to 0.
func toNumber(v gjson.Result) float64 {
	var n float64
	switch v.Type {
	case gjson.Number:
		n = v.Num
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		n = parsed
	case gjson.True:
		n = 1
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func dateString(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Null:
		return ""
	default:
		return v.Raw
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatLabel renders a date as MM-DD, or returns it untouched when it does not parse.
func FormatLabel(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return date
	}
	return t.Format("01-02")
}
