package analytics

import (
	"strings"

	"SentiPnL/internal/domain/models"
)

// MapColumns picks the PnL, leverage and sentiment value columns by name,
// taking the first match in column order.
func MapColumns(columns []string) models.ColumnMapping {
	var m models.ColumnMapping
	m.PnL = firstContaining(columns, "pnl", "")
	m.Leverage = firstContaining(columns, "leverage", "")
	m.Value = firstContaining(columns, "value", "size")
	return m
}

func firstContaining(columns []string, needle, exclude string) string {
	for _, c := range columns {
		if !strings.Contains(c, needle) {
			continue
		}
		if exclude != "" && strings.Contains(c, exclude) {
			continue
		}
		return c
	}
	return ""
}
