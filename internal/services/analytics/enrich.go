package analytics

import (
	"SentiPnL/internal/domain/models"
	"SentiPnL/pkg/util"
)

// Enrich fills the numeric fields of each row from the mapped columns, in place.
// Cells that do not parse stay nil; a row without a value column stays Unknown.
func Enrich(rows []models.MergedRow, m models.ColumnMapping) {
	for i := range rows {
		r := &rows[i]
		if m.PnL != "" {
			if d, err := util.ParseMoney(r.Row[m.PnL]); err == nil {
				f := d.InexactFloat64()
				r.PnL = &f
			}
		}
		if m.Leverage != "" {
			if f, ok := util.ParseNumber(r.Row[m.Leverage]); ok {
				r.Leverage = &f
			}
		}
		if m.Value != "" {
			raw := r.Row[m.Value]
			if f, ok := util.ParseNumber(raw); ok {
				r.SentimentValue = &f
			}
			r.Bucket = ClassifyString(raw)
		}
	}
}
