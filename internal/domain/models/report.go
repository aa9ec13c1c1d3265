package models

import "time"

// MergedRow is a trade joined with the sentiment reading of its day.
// Columns are the union of both sides, trade columns winning on collision.
type MergedRow struct {
	Row            map[string]string
	DateKey        time.Time
	PnL            *float64
	Leverage       *float64
	SentimentValue *float64
	Bucket         Bucket
}

// ColumnMapping records which merged columns were picked for each metric.
type ColumnMapping struct {
	PnL      string `json:"pnl,omitempty"`
	Leverage string `json:"leverage,omitempty"`
	Value    string `json:"value,omitempty"`
}

type BucketStats struct {
	Bucket       Bucket   `json:"bucket"`
	Trades       int      `json:"trades"`
	PnLSamples   int      `json:"pnl_samples"`
	Wins         int      `json:"wins"`
	MeanPnL      float64  `json:"mean_pnl"`
	WinRate      float64  `json:"win_rate"`
	TotalPnL     string   `json:"total_pnl"` // exact decimal sum
	MeanLeverage *float64 `json:"mean_leverage,omitempty"`
}

// Correlations holds Pearson coefficients; nil means not computable.
type Correlations struct {
	ValueVsPnL      *float64 `json:"value_vs_pnl,omitempty"`
	ValueVsDailyPnL *float64 `json:"value_vs_daily_pnl,omitempty"`
	Days            int      `json:"days"`
}

type LeveragePoint struct {
	Value    float64 `json:"value"`
	Leverage float64 `json:"leverage"`
}

// Report is the outcome of one analysis run.
type Report struct {
	ID             string          `json:"id"`
	GeneratedAt    time.Time       `json:"generated_at"`
	TraderSource   string          `json:"trader_source"`
	SentimentSrc   string          `json:"sentiment_source"`
	TraderRange    DateRange       `json:"trader_range"`
	SentimentRange DateRange       `json:"sentiment_range"`
	Overlap        bool            `json:"overlap"`
	TradeRows      int             `json:"trade_rows"`
	SentimentRows  int             `json:"sentiment_rows"`
	MergedRows     int             `json:"merged_rows"`
	Mapping        ColumnMapping   `json:"mapping"`
	Buckets        []BucketStats   `json:"buckets"`
	Correlations   Correlations    `json:"correlations"`
	Leverage       []LeveragePoint `json:"leverage,omitempty"`
	Charts         []string        `json:"charts,omitempty"`
}

// Bucket returns stats for b, or false when the bucket had no rows.
func (r *Report) Bucket(b Bucket) (BucketStats, bool) {
	for _, s := range r.Buckets {
		if s.Bucket == b {
			return s, true
		}
	}
	return BucketStats{}, false
}
