package analytics

import (
	"time"

	"SentiPnL/internal/domain/models"
)

// Range returns the min/max day of keys; zero when keys is empty.
func Range(keys []time.Time) models.DateRange {
	var r models.DateRange
	for i, k := range keys {
		if i == 0 || k.Before(r.From) {
			r.From = k
		}
		if i == 0 || k.After(r.To) {
			r.To = k
		}
	}
	return r
}

// TradeRange is Range over the trade date keys.
func TradeRange(set *models.TradeSet) models.DateRange {
	keys := make([]time.Time, len(set.Records))
	for i, r := range set.Records {
		keys[i] = r.DateKey
	}
	return Range(keys)
}

// SentimentRange is Range over the sentiment date keys.
func SentimentRange(set *models.SentimentSet) models.DateRange {
	keys := make([]time.Time, len(set.Points))
	for i, p := range set.Points {
		keys[i] = p.DateKey
	}
	return Range(keys)
}

// Overlaps reports whether two day ranges share at least one day.
func Overlaps(a, b models.DateRange) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return !a.To.Before(b.From) && !a.From.After(b.To)
}

// MergedColumns is the trade column order followed by sentiment columns not already present.
func MergedColumns(trades, sentiment []string) []string {
	seen := make(map[string]struct{}, len(trades))
	out := make([]string, 0, len(trades)+len(sentiment))
	for _, c := range trades {
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, c := range sentiment {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Merge inner-joins trades with sentiment points on the calendar day.
// A day carrying k sentiment rows yields k copies of each of its trades.
// Output follows trade order, then sentiment order within a day.
func Merge(trades *models.TradeSet, sentiment *models.SentimentSet) []models.MergedRow {
	byDay := make(map[time.Time][]models.SentimentPoint)
	for _, p := range sentiment.Points {
		byDay[p.DateKey] = append(byDay[p.DateKey], p)
	}

	out := make([]models.MergedRow, 0, len(trades.Records))
	for _, tr := range trades.Records {
		for _, p := range byDay[tr.DateKey] {
			row := make(map[string]string, len(tr.Row)+len(p.Row))
			for k, v := range p.Row {
				row[k] = v
			}
			for k, v := range tr.Row {
				row[k] = v
			}
			out = append(out, models.MergedRow{Row: row, DateKey: tr.DateKey, Bucket: models.BucketUnknown})
		}
	}
	return out
}
