package analytics

import (
	"sort"
	"time"

	"SentiPnL/internal/domain/models"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

type bucketAcc struct {
	trades   int
	wins     int
	pnl      []float64
	total    decimal.Decimal
	leverage []float64
}

// Aggregate computes per-bucket statistics in BucketOrder, skipping empty buckets
// and Unknown. MeanPnL averages parsed PnL only; WinRate divides wins (PnL > 0)
// by every row in the bucket, so rows with unparsable PnL count as non-wins.
func Aggregate(rows []models.MergedRow) []models.BucketStats {
	acc := make(map[models.Bucket]*bucketAcc, len(models.BucketOrder))
	for _, r := range rows {
		if r.Bucket == models.BucketUnknown {
			continue
		}
		a := acc[r.Bucket]
		if a == nil {
			a = &bucketAcc{}
			acc[r.Bucket] = a
		}
		a.trades++
		if r.PnL != nil {
			a.pnl = append(a.pnl, *r.PnL)
			a.total = a.total.Add(decimal.NewFromFloat(*r.PnL))
			if *r.PnL > 0 {
				a.wins++
			}
		}
		if r.Leverage != nil {
			a.leverage = append(a.leverage, *r.Leverage)
		}
	}

	out := make([]models.BucketStats, 0, len(acc))
	for _, b := range models.BucketOrder {
		a, ok := acc[b]
		if !ok {
			continue
		}
		s := models.BucketStats{
			Bucket:     b,
			Trades:     a.trades,
			PnLSamples: len(a.pnl),
			Wins:       a.wins,
			WinRate:    float64(a.wins) / float64(a.trades),
			TotalPnL:   a.total.String(),
		}
		if len(a.pnl) > 0 {
			s.MeanPnL = stat.Mean(a.pnl, nil)
		}
		if len(a.leverage) > 0 {
			m := stat.Mean(a.leverage, nil)
			s.MeanLeverage = &m
		}
		out = append(out, s)
	}
	return out
}

// LeveragePoints returns (index value, leverage) pairs for rows carrying both.
func LeveragePoints(rows []models.MergedRow) []models.LeveragePoint {
	var out []models.LeveragePoint
	for _, r := range rows {
		if r.Leverage == nil || r.SentimentValue == nil {
			continue
		}
		out = append(out, models.LeveragePoint{Value: *r.SentimentValue, Leverage: *r.Leverage})
	}
	return out
}

// Correlate computes Pearson coefficients between the index value and PnL,
// per row and per day (summed PnL against the day's value).
func Correlate(rows []models.MergedRow) models.Correlations {
	var xs, ys []float64
	type day struct {
		value float64
		pnl   float64
	}
	days := make(map[time.Time]*day)
	for _, r := range rows {
		if r.SentimentValue == nil || r.PnL == nil {
			continue
		}
		xs = append(xs, *r.SentimentValue)
		ys = append(ys, *r.PnL)

		d := days[r.DateKey]
		if d == nil {
			d = &day{value: *r.SentimentValue}
			days[r.DateKey] = d
		}
		d.pnl += *r.PnL
	}

	keys := make([]time.Time, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	dx := make([]float64, len(keys))
	dy := make([]float64, len(keys))
	for i, k := range keys {
		dx[i], dy[i] = days[k].value, days[k].pnl
	}

	return models.Correlations{
		ValueVsPnL:      pearson(xs, ys),
		ValueVsDailyPnL: pearson(dx, dy),
		Days:            len(keys),
	}
}

// pearson returns nil when the coefficient is undefined.
func pearson(x, y []float64) *float64 {
	if len(x) < 2 || len(x) != len(y) {
		return nil
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return nil
	}
	c := stat.Correlation(x, y, nil)
	return &c
}
