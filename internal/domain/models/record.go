package models

import "time"

// TradeRecord is one fill from the trader export. Row is keyed by normalized header.
type TradeRecord struct {
	Row     map[string]string
	Time    time.Time
	DateKey time.Time
}

// SentimentPoint is one day of the Fear & Greed series.
type SentimentPoint struct {
	Row     map[string]string
	DateKey time.Time
}

// TradeSet is a loaded trader file with its column order preserved.
type TradeSet struct {
	Source  string
	Columns []string
	Records []TradeRecord
	Dropped int // rows without a parsable time
}

// SentimentSet is a loaded sentiment series with its column order preserved.
type SentimentSet struct {
	Source  string
	Columns []string
	Points  []SentimentPoint
	Dropped int
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// IsZero reports whether the range was computed from no data.
func (r DateRange) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }
